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

// Package csp assembles Content-Security-Policy headers for pages embedding
// untrusted frames.
//
// The package only decides header content; putting the header on the wire,
// or the equivalent meta tag into a document, is the caller's job. See
// https://developer.mozilla.org/en-US/docs/Web/HTTP/Headers/Content-Security-Policy
// for the directive semantics.
package csp

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sort"
	"strings"

	"github.com/google/safehtml"
	"github.com/google/safehtml/template"

	"github.com/go-webguard/webguard/origin"
)

// Directive names used by this package. Constants avoid typos in custom
// directive maps.
const (
	DirectiveFrameSrc       = "frame-src"
	DirectiveChildSrc       = "child-src"
	DirectiveScriptSrc      = "script-src"
	DirectiveFrameAncestors = "frame-ancestors"
	DirectiveReportURI      = "report-uri"
)

// Common source keywords, pre-quoted as CSP requires.
const (
	SourceSelf          = "'self'"
	SourceNone          = "'none'"
	SourceUnsafeInline  = "'unsafe-inline'"
	SourceUnsafeEval    = "'unsafe-eval'"
	SourceStrictDynamic = "'strict-dynamic'"
)

var randReader = rand.Reader

// nonceSize is the size of the nonces in bytes. According to the CSP3 spec it
// should be larger than 16 bytes. 20 bytes was picked to be future proof.
// https://www.w3.org/TR/CSP3/#security-nonces
const nonceSize = 20

// GenerateNonce returns a fresh base64-encoded script nonce.
func GenerateNonce() string {
	b := make([]byte, nonceSize)
	_, err := randReader.Read(b)
	if err != nil {
		panic(fmt.Errorf("failed to generate entropy using crypto/rand/RandReader: %v", err))
	}
	return base64.StdEncoding.EncodeToString(b)
}

// NonceSource formats nonce as a script-src source token.
func NonceSource(nonce string) string {
	return "'nonce-" + nonce + "'"
}

// PolicyConfig declares the policy to build. Slices keep their order in the
// emitted header (first occurrence wins on duplicates).
type PolicyConfig struct {
	// FrameSrc lists sources allowed to be embedded as frames.
	FrameSrc []string
	// ChildSrc is the legacy fallback for frame-src; emitted verbatim when
	// non-empty, independent of AutoDeriveFrameSrc.
	ChildSrc []string
	// ScriptSrc lists allowed script sources.
	ScriptSrc []string
	// FrameAncestors lists pages allowed to embed this one.
	FrameAncestors []string
	// CustomDirectives adds arbitrary directives. Names are emitted in
	// sorted order so the header is deterministic.
	CustomDirectives map[string][]string

	// AutoDeriveFrameSrc adds the origins of the frame sources passed to
	// Build to frame-src.
	AutoDeriveFrameSrc bool
	// AllowInlineScripts adds 'unsafe-inline' to script-src.
	AllowInlineScripts bool
	// AllowEval adds 'unsafe-eval' to script-src.
	AllowEval bool
	// UseStrictDynamic adds 'strict-dynamic' to script-src.
	UseStrictDynamic bool

	// ScriptNonce, when set, adds 'nonce-...' to script-src. Mint one per
	// response with GenerateNonce.
	ScriptNonce string

	// ReportOnly selects the report-only header name.
	ReportOnly bool
	// ReportURI, when set, appends a report-uri directive.
	ReportURI string
}

// Directive is one named directive with its source tokens, duplicate-free in
// first-seen order.
type Directive struct {
	Name    string
	Sources []string
}

// Header is a built policy, ready to hand to whatever layer controls actual
// response headers or document markup.
type Header struct {
	// Name is "Content-Security-Policy" or its Report-Only variant.
	Name string
	// Value is the serialized policy, empty when no directives were
	// configured.
	Value string
	// ReportOnly mirrors PolicyConfig.ReportOnly.
	ReportOnly bool
	// Directives lists the emitted directives in header order.
	Directives []Directive
}

const (
	headerEnforce    = "Content-Security-Policy"
	headerReportOnly = "Content-Security-Policy-Report-Only"
)

// Build assembles the policy described by cfg. frameSources are the frame
// URLs the caller is about to embed; their origins join frame-src when
// AutoDeriveFrameSrc is set. An empty configuration builds an empty header
// value, which is not an error.
func Build(cfg PolicyConfig, frameSources ...string) Header {
	var dirs []Directive
	add := func(name string, sources []string) {
		if d := dedupe(sources); len(d) > 0 {
			dirs = append(dirs, Directive{Name: name, Sources: d})
		}
	}

	frameSrc := append([]string(nil), cfg.FrameSrc...)
	if cfg.AutoDeriveFrameSrc {
		for _, src := range frameSources {
			if o := origin.Extract(src); o != "" {
				frameSrc = append(frameSrc, o)
			}
		}
	}
	add(DirectiveFrameSrc, frameSrc)
	add(DirectiveChildSrc, cfg.ChildSrc)

	scriptSrc := append([]string(nil), cfg.ScriptSrc...)
	if cfg.ScriptNonce != "" {
		scriptSrc = append(scriptSrc, NonceSource(cfg.ScriptNonce))
	}
	if cfg.AllowInlineScripts {
		scriptSrc = append(scriptSrc, SourceUnsafeInline)
	}
	if cfg.AllowEval {
		scriptSrc = append(scriptSrc, SourceUnsafeEval)
	}
	if cfg.UseStrictDynamic {
		scriptSrc = append(scriptSrc, SourceStrictDynamic)
	}
	add(DirectiveScriptSrc, scriptSrc)
	add(DirectiveFrameAncestors, cfg.FrameAncestors)

	names := make([]string, 0, len(cfg.CustomDirectives))
	for name, sources := range cfg.CustomDirectives {
		if name != "" && len(sources) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		add(name, cfg.CustomDirectives[name])
	}

	if cfg.ReportURI != "" {
		dirs = append(dirs, Directive{Name: DirectiveReportURI, Sources: []string{cfg.ReportURI}})
	}

	name := headerEnforce
	if cfg.ReportOnly {
		name = headerReportOnly
	}
	return Header{
		Name:       name,
		Value:      serialize(dirs),
		ReportOnly: cfg.ReportOnly,
		Directives: dirs,
	}
}

func dedupe(sources []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, s := range sources {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func serialize(dirs []Directive) string {
	var b strings.Builder
	for i, d := range dirs {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(d.Name)
		for _, s := range d.Sources {
			b.WriteByte(' ')
			b.WriteString(s)
		}
	}
	return b.String()
}

// Directive returns the sources of the named directive and whether it was
// emitted.
func (h Header) Directive(name string) ([]string, bool) {
	for _, d := range h.Directives {
		if d.Name == name {
			return d.Sources, true
		}
	}
	return nil, false
}

// String returns the header as it would appear on the wire.
func (h Header) String() string {
	return h.Name + ": " + h.Value
}

var metaTmpl = template.Must(template.New("cspmeta").Parse(
	`<meta http-equiv="Content-Security-Policy" content="{{.}}">`))

// MetaTag renders the policy as a meta element. The enforcing header name is
// always used: <meta> delivery does not support report-only policies, so a
// report-only configuration still renders as an enforced one here.
func (h Header) MetaTag() (safehtml.HTML, error) {
	return metaTmpl.ExecuteToHTML(h.Value)
}

// InjectorScript renders a JavaScript snippet that installs the policy as a
// meta element, for hosts that can only reach the document through script.
// Quotes and backslashes in the policy value are escaped for the embedding
// string literal.
func (h Header) InjectorScript() string {
	escaped := strings.ReplaceAll(h.Value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	var b strings.Builder
	b.WriteString("var meta = document.createElement('meta');\n")
	b.WriteString(`meta.httpEquiv = "Content-Security-Policy";` + "\n")
	b.WriteString(`meta.content = "` + escaped + `";` + "\n")
	b.WriteString("document.head.appendChild(meta);")
	return b.String()
}
