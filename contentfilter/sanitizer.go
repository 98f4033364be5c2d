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

package contentfilter

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer flags text that a strict HTML sanitizer would alter. A message
// that survives bluemonday's strict policy unchanged carries no markup at
// all; anything the sanitizer had to strip is treated as an injection
// attempt.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer returns a Sanitizer backed by bluemonday's StrictPolicy,
// which strips every HTML element and attribute.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// Flagged implements Filter. The sanitizer output is entity-unescaped before
// comparing so that plain text containing "&" or quotes is not misflagged.
func (s *Sanitizer) Flagged(raw string) bool {
	return html.UnescapeString(s.policy.Sanitize(raw)) != raw
}
