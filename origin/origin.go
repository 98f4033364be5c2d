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

// Package origin derives and classifies web origins from URL strings.
//
// An origin is the scheme + host + (optional) port tuple that browsers use
// as the unit of same-origin comparison. See
// https://developer.mozilla.org/en-US/docs/Glossary/Origin for more info.
package origin

import (
	"net/url"
	"strings"
)

// schemes is the set of URL schemes an embedded frame may legitimately be
// served from. Everything else has no meaningful origin for our purposes.
var schemes = map[string]bool{
	"http":  true,
	"https": true,
	"data":  true,
	"blob":  true,
}

// ValidScheme reports whether scheme identifies a URL the frame boundary
// can reason about. The comparison is case-insensitive.
func ValidScheme(scheme string) bool {
	return schemes[strings.ToLower(scheme)]
}

// Extract returns the normalized origin of rawurl as "scheme://host[:port]",
// or the empty string when no origin can be determined.
//
// Path-relative URLs ("/frame.html") yield "": resolving them would require
// the embedding page's own origin, which this package does not have. Data and
// blob URLs yield the literal "data:" and "blob:" origins. An explicit port
// in the URL text is preserved even when it equals the scheme default, so
// "https://example.com:443/x" and "https://example.com/x" produce distinct
// origins; this mirrors how the values will later be compared against a
// caller-supplied allow-list of literal origin strings.
//
// Extract never fails: malformed input and unsupported schemes both yield "".
func Extract(rawurl string) string {
	if rawurl == "" || strings.HasPrefix(rawurl, "/") {
		return ""
	}
	lower := strings.ToLower(rawurl)
	if strings.HasPrefix(lower, "data:") {
		return "data:"
	}
	if strings.HasPrefix(lower, "blob:") {
		return "blob:"
	}

	u, err := url.Parse(rawurl)
	if err != nil {
		return ""
	}
	if !schemes[u.Scheme] || u.Host == "" {
		return ""
	}
	// url.Parse lowercases the scheme; the host is normalized here so that
	// origins compare byte-for-byte.
	return u.Scheme + "://" + strings.ToLower(u.Host)
}

// Contains reports whether o is present in allowed, compared
// case-insensitively. An empty allow-list contains nothing.
func Contains(allowed []string, o string) bool {
	for _, a := range allowed {
		if strings.EqualFold(a, o) {
			return true
		}
	}
	return false
}
