// Copyright 2026 The WebGuard Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// 	https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package urlcheck validates iframe source URLs against transport and
// scheme policy before they are ever assigned to a frame.
package urlcheck

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-webguard/webguard/config"
	"github.com/go-webguard/webguard/origin"
)

// Result is the verdict for one URL. Reason is empty when Valid.
type Result struct {
	Valid  bool
	Reason string
}

// scriptSchemes execute in the embedding page rather than load a document.
var scriptSchemes = map[string]bool{
	"javascript": true,
	"vbscript":   true,
	"livescript": true,
}

func invalid(reason string) Result { return Result{Reason: reason} }

// Validate decides whether rawurl is acceptable as a frame source under
// opts. Path-relative URLs are accepted as-is: their transport security is
// inherited from the embedding page and cannot be checked here, so
// RequireHTTPS does not apply to them.
func Validate(rawurl string, opts config.Options) Result {
	if rawurl == "" {
		return invalid("URL cannot be null or empty")
	}
	if strings.HasPrefix(rawurl, "/") {
		return Result{Valid: true}
	}
	lower := strings.ToLower(rawurl)
	if strings.HasPrefix(lower, "data:") || strings.HasPrefix(lower, "blob:") {
		// No network fetch is implied; the embedded document is inert data.
		return Result{Valid: true}
	}

	u, err := url.Parse(rawurl)
	if err != nil {
		return invalid(fmt.Sprintf("Invalid URL format: %v", err))
	}
	if u.Scheme == "" {
		return invalid("Invalid URL format: missing scheme")
	}

	if scriptSchemes[u.Scheme] {
		if opts.AllowScriptProtocols {
			return Result{Valid: true}
		}
		return invalid(fmt.Sprintf("Script protocol '%s' is not allowed. Enable AllowScriptProtocols if this is intended.", u.Scheme))
	}
	if !origin.ValidScheme(u.Scheme) {
		return invalid(fmt.Sprintf("URL scheme '%s' is not allowed. Allowed schemes: http, https, data, blob", u.Scheme))
	}
	if u.Scheme == "http" && opts.RequireHTTPS && !opts.AllowInsecureConnections {
		return invalid("HTTPS is required but URL uses HTTP protocol. Set AllowInsecureConnections=true to allow HTTP in development scenarios.")
	}
	return Result{Valid: true}
}
