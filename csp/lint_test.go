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

package csp

import (
	"strings"
	"testing"
)

func TestLint(t *testing.T) {
	tests := []struct {
		name            string
		cfg             PolicyConfig
		wantWarnings    []string
		wantSuggestions []string
	}{
		{
			name: "clean config",
			cfg: PolicyConfig{
				FrameSrc:    []string{SourceSelf},
				ScriptNonce: "abc",
			},
		},
		{
			name:            "no frame directives at all",
			cfg:             PolicyConfig{},
			wantSuggestions: []string{"frame-src or child-src"},
		},
		{
			name: "auto-derivation counts as frame coverage",
			cfg: PolicyConfig{
				AutoDeriveFrameSrc: true,
			},
		},
		{
			name: "unsafe-inline",
			cfg: PolicyConfig{
				FrameSrc:           []string{SourceSelf},
				AllowInlineScripts: true,
			},
			wantWarnings: []string{"'unsafe-inline'"},
		},
		{
			name: "unsafe-eval",
			cfg: PolicyConfig{
				FrameSrc:  []string{SourceSelf},
				AllowEval: true,
			},
			wantWarnings: []string{"'unsafe-eval'"},
		},
		{
			name: "nonce makes unsafe-inline redundant",
			cfg: PolicyConfig{
				FrameSrc:           []string{SourceSelf},
				ScriptNonce:        "abc",
				AllowInlineScripts: true,
			},
			wantWarnings:    []string{"'unsafe-inline'"},
			wantSuggestions: []string{"redundant"},
		},
		{
			name: "strict-dynamic with unsafe flags",
			cfg: PolicyConfig{
				FrameSrc:         []string{SourceSelf},
				UseStrictDynamic: true,
				AllowEval:        true,
			},
			wantWarnings: []string{"'unsafe-eval'", "'strict-dynamic'"},
		},
		{
			name: "strict-dynamic alone is fine",
			cfg: PolicyConfig{
				FrameSrc:         []string{SourceSelf},
				UseStrictDynamic: true,
			},
		},
		{
			name: "report-only without report-uri",
			cfg: PolicyConfig{
				FrameSrc:   []string{SourceSelf},
				ReportOnly: true,
			},
			wantSuggestions: []string{"report-uri"},
		},
		{
			name: "report-only with report-uri",
			cfg: PolicyConfig{
				FrameSrc:   []string{SourceSelf},
				ReportOnly: true,
				ReportURI:  "https://example.com/collector",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lint(tt.cfg)

			if !got.Valid() {
				t.Errorf("Lint() got errors: %v want: none (all checks are advisory)", got.Errors)
			}
			if len(got.Warnings) != len(tt.wantWarnings) {
				t.Errorf("Lint() warnings got: %v want %d entries", got.Warnings, len(tt.wantWarnings))
			}
			for _, want := range tt.wantWarnings {
				if !anyContains(got.Warnings, want) {
					t.Errorf("Lint() warnings %v missing %q", got.Warnings, want)
				}
			}
			if len(got.Suggestions) != len(tt.wantSuggestions) {
				t.Errorf("Lint() suggestions got: %v want %d entries", got.Suggestions, len(tt.wantSuggestions))
			}
			for _, want := range tt.wantSuggestions {
				if !anyContains(got.Suggestions, want) {
					t.Errorf("Lint() suggestions %v missing %q", got.Suggestions, want)
				}
			}
		})
	}
}

func anyContains(list []string, substr string) bool {
	for _, s := range list {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}
