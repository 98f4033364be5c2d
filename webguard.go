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

// Package webguard validates the communication surface between a host page
// and an embedded untrusted iframe: inbound and outbound messages, frame
// source URLs, the sandbox attribute, and the Content-Security-Policy the
// host should serve.
//
// The subpackages are pure functions and can be used directly; this package
// bundles them behind a Guard that tracks the one piece of state a host
// needs: the origin allow-list derived from the current frame source.
// Guard performs no I/O. It classifies and builds; sending messages,
// setting headers and writing DOM attributes stay with the host.
package webguard

import (
	"fmt"

	"github.com/google/safehtml"

	"github.com/go-webguard/webguard/config"
	"github.com/go-webguard/webguard/contentfilter"
	"github.com/go-webguard/webguard/csp"
	"github.com/go-webguard/webguard/message"
	"github.com/go-webguard/webguard/origin"
	"github.com/go-webguard/webguard/sandbox"
	"github.com/go-webguard/webguard/urlcheck"
)

// Guard mediates one embedded frame. Validation calls on a Guard are pure;
// SetSrc mutates the cached allow-list and must not race with them. A Guard
// is typically owned by a single host component, mirroring the single
// iframe it protects.
type Guard struct {
	security config.Options
	policy   csp.PolicyConfig
	msg      message.Validator

	src     string
	allowed []string
}

// New builds a Guard from validated options. Configuration errors are
// returned; warnings and suggestions are not (fetch them with Diagnostics
// and surface them through the host's own logging).
func New(security config.Options, policy csp.PolicyConfig) (*Guard, error) {
	if r := config.Validate(security); !r.Valid() {
		return nil, fmt.Errorf("unusable security options: %v", r.Errors)
	}
	g := &Guard{security: security, policy: policy}
	g.recomputeAllowed()
	return g, nil
}

// SetFilter substitutes the content-filter engine used for messages. A nil
// filter restores the default denylist.
func (g *Guard) SetFilter(f contentfilter.Filter) {
	g.msg.Filter = f
}

// SetSrc validates url as the frame's new source and, on success, adopts it
// and recomputes the origin allow-list: the source's origin unioned with the
// configured AllowedOrigins. On failure the previous source and allow-list
// are kept and the rejection reason is returned.
func (g *Guard) SetSrc(url string) error {
	if r := urlcheck.Validate(url, g.security); !r.Valid {
		return fmt.Errorf("rejected frame source: %s", r.Reason)
	}
	g.src = url
	g.recomputeAllowed()
	return nil
}

// Src returns the currently adopted frame source, or "" before any
// successful SetSrc.
func (g *Guard) Src() string { return g.src }

// AllowedOrigins returns the allow-list in effect for message validation.
func (g *Guard) AllowedOrigins() []string {
	return append([]string(nil), g.allowed...)
}

func (g *Guard) recomputeAllowed() {
	allowed := append([]string(nil), g.security.AllowedOrigins...)
	if o := origin.Extract(g.src); o != "" && !origin.Contains(allowed, o) {
		allowed = append(allowed, o)
	}
	g.allowed = allowed
}

// Inbound classifies a message delivered by the transport.
func (g *Guard) Inbound(senderOrigin, raw string) message.Validated {
	return g.msg.Validate(senderOrigin, raw, g.allowed, g.security)
}

// Outbound classifies a message the host is about to send, applying the
// same pipeline to the target origin and serialized payload. Hosts call
// this before invoking the transport's send primitive so that outbound
// traffic obeys the same policy as inbound.
func (g *Guard) Outbound(targetOrigin, payload string) message.Validated {
	return g.msg.Validate(targetOrigin, payload, g.allowed, g.security)
}

// SandboxAttr returns the iframe sandbox attribute value, or "" when the
// attribute should be omitted.
func (g *Guard) SandboxAttr() string {
	return sandbox.Resolve(g.security)
}

// Iframe renders the frame element for the current source.
func (g *Guard) Iframe() (safehtml.HTML, error) {
	return sandbox.Iframe(g.src, g.security)
}

// ContentSecurityPolicy builds the recommended CSP header for the current
// frame source.
func (g *Guard) ContentSecurityPolicy() csp.Header {
	if g.src == "" {
		return csp.Build(g.policy)
	}
	return csp.Build(g.policy, g.src)
}

// Diagnostics re-validates the security options and lints the CSP
// configuration. Hosts surface the results through their own logging or
// violation events.
func (g *Guard) Diagnostics() (config.Result, csp.Findings) {
	return config.Validate(g.security), csp.Lint(g.policy)
}
