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

// Package contentfilter screens raw cross-frame message text for script
// injection markers.
//
// The engines here are heuristics, not parsers: a flagged message may be a
// false positive (legitimate text that merely mentions a marker) and a clean
// verdict is not a proof of safety. Callers that need a different tradeoff
// implement Filter themselves or pick one of the alternative engines.
package contentfilter

import "strings"

// Filter decides whether raw message text may cross the frame boundary.
type Filter interface {
	// Flagged reports whether raw contains content that must be rejected.
	Flagged(raw string) bool
}

// denylist is the default set of markers. All entries are lowercase; matching
// lowercases the input first.
var denylist = []string{
	"<script",
	"javascript:",
	"vbscript:",
	"onload=",
	"onerror=",
	"eval(",
	"function(",
	"settimeout(",
	"setinterval(",
}

// Denylist flags text containing any of a fixed set of dangerous substrings.
// Comment spans are stripped before matching so that markers cannot be
// smuggled past the filter in pieces ("<scr/**/ipt").
type Denylist struct {
	patterns []string
}

// NewDenylist returns a Denylist with the built-in markers plus any extra
// patterns, which are matched case-insensitively as given.
func NewDenylist(extra ...string) *Denylist {
	d := &Denylist{patterns: append([]string(nil), denylist...)}
	for _, p := range extra {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			d.patterns = append(d.patterns, p)
		}
	}
	return d
}

// Flagged implements Filter.
func (d *Denylist) Flagged(raw string) bool {
	text := strings.ToLower(stripComments(raw))
	for _, p := range d.patterns {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// stripComments removes /* */ block spans and // line spans from s. An
// unterminated block comment swallows the rest of the input, matching how a
// browser's script parser would treat it.
func stripComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] == '/' && i+1 < len(s) {
			switch s[i+1] {
			case '*':
				end := strings.Index(s[i+2:], "*/")
				if end < 0 {
					return b.String()
				}
				i += 2 + end + 2
				continue
			case '/':
				nl := strings.IndexByte(s[i+2:], '\n')
				if nl < 0 {
					return b.String()
				}
				i += 2 + nl
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}
