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
	"strings"

	"golang.org/x/net/html"
)

// scriptTags are elements that load or execute active content.
var scriptTags = map[string]bool{
	"script": true,
	"iframe": true,
	"object": true,
	"embed":  true,
}

// HTMLSniffer flags text that tokenizes into active HTML: script-capable
// elements, on* event handler attributes, or script-protocol attribute
// values. It is stricter than Denylist about markup and more lenient about
// plain text that merely mentions a marker.
//
// The zero value is ready to use.
type HTMLSniffer struct{}

// Flagged implements Filter.
func (HTMLSniffer) Flagged(raw string) bool {
	z := html.NewTokenizer(strings.NewReader(raw))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// Includes io.EOF: the input was consumed without a hit.
			return false
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if scriptTags[tok.Data] {
				return true
			}
			for _, attr := range tok.Attr {
				if strings.HasPrefix(attr.Key, "on") {
					return true
				}
				val := strings.ToLower(strings.TrimSpace(attr.Val))
				if strings.HasPrefix(val, "javascript:") || strings.HasPrefix(val, "vbscript:") {
					return true
				}
			}
		}
	}
}
