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

package config

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidateDefaults(t *testing.T) {
	r := Validate(Default())
	if !r.Valid() {
		t.Fatalf("Validate(Default()) got errors: %v", r.Errors)
	}
	if len(r.Warnings) != 0 {
		t.Errorf("Validate(Default()) got warnings: %v want: none", r.Warnings)
	}
}

func TestValidateErrors(t *testing.T) {
	o := Default()
	o.MaxMessageSize = 0
	o.MaxJSONDepth = -1
	o.MaxObjectProperties = 0
	o.MaxArrayElements = 0

	r := Validate(o)
	if r.Valid() {
		t.Fatal("Validate() got: valid want: invalid")
	}
	if len(r.Errors) != 4 {
		t.Errorf("Validate() got %d errors want 4: %v", len(r.Errors), r.Errors)
	}
}

func TestValidateFindings(t *testing.T) {
	tests := []struct {
		name           string
		mutate         func(*Options)
		wantWarning    string
		wantSuggestion string
	}{
		{
			name: "contradictory transport flags",
			mutate: func(o *Options) {
				o.AllowInsecureConnections = true
			},
			wantWarning:    "AllowInsecureConnections",
			wantSuggestion: "transport policy",
		},
		{
			name: "explicit sandbox with flag off",
			mutate: func(o *Options) {
				o.EnableSandbox = false
				o.Sandbox = "allow-scripts"
			},
			wantWarning: "still applied",
		},
		{
			name: "preset with flag off",
			mutate: func(o *Options) {
				o.EnableSandbox = false
				o.SandboxPreset = PresetParanoid
			},
			wantWarning: "Paranoid",
		},
		{
			name: "oversized message limit",
			mutate: func(o *Options) {
				o.MaxMessageSize = 20 * 1024 * 1024
			},
			wantWarning: "denial-of-service",
		},
		{
			name: "excessive JSON depth",
			mutate: func(o *Options) {
				o.MaxJSONDepth = 100
			},
			wantWarning: "deep nesting",
		},
		{
			name: "script protocols",
			mutate: func(o *Options) {
				o.AllowScriptProtocols = true
			},
			wantWarning: "javascript:",
		},
		{
			name: "strict validation off",
			mutate: func(o *Options) {
				o.EnableStrictValidation = false
			},
			wantWarning: "EnableStrictValidation",
		},
		{
			name: "production config without sandbox",
			mutate: func(o *Options) {
				o.EnableSandbox = false
			},
			wantSuggestion: "production configuration",
		},
		{
			name: "development heuristic",
			mutate: func(o *Options) {
				o.AllowInsecureConnections = true
			},
			wantSuggestion: "development configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Default()
			tt.mutate(&o)
			r := Validate(o)

			if !r.Valid() {
				t.Fatalf("Validate() got unexpected errors: %v", r.Errors)
			}
			if tt.wantWarning != "" && !containsSubstring(r.Warnings, tt.wantWarning) {
				t.Errorf("Validate() warnings %v missing %q", r.Warnings, tt.wantWarning)
			}
			if tt.wantSuggestion != "" && !containsSubstring(r.Suggestions, tt.wantSuggestion) {
				t.Errorf("Validate() suggestions %v missing %q", r.Suggestions, tt.wantSuggestion)
			}
		})
	}
}

// TestValidateDevelopmentHeuristicRequiresBothFlags pins the historical
// behavior: the development suggestion only fires when RequireHTTPS is set
// together with a condition that tolerates insecure transport.
func TestValidateDevelopmentHeuristicRequiresBothFlags(t *testing.T) {
	o := Default()
	o.RequireHTTPS = false

	r := Validate(o)
	if containsSubstring(r.Suggestions, "development configuration") {
		t.Errorf("Validate() suggestions %v should not contain the development hint without RequireHTTPS", r.Suggestions)
	}
}

func TestValidateIdempotent(t *testing.T) {
	o := Default()
	o.AllowInsecureConnections = true
	o.MaxJSONDepth = 0

	first := Validate(o)
	second := Validate(o)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Validate() not idempotent (-first +second):\n%s", diff)
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    SandboxPreset
		wantErr bool
	}{
		{"None", PresetNone, false},
		{"", PresetNone, false},
		{"Basic", PresetBasic, false},
		{"Permissive", PresetPermissive, false},
		{"Strict", PresetStrict, false},
		{"Paranoid", PresetParanoid, false},
		{"paranoid", PresetNone, true},
		{"Custom", PresetNone, true},
	}

	for _, tt := range tests {
		got, err := ParsePreset(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParsePreset(%q) got: (%v, %v) want: (%v, wantErr=%v)", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("WGTEST_MAX_MESSAGE_SIZE", "1024")
	t.Setenv("WGTEST_SANDBOX_PRESET", "Paranoid")
	t.Setenv("WGTEST_REQUIRE_HTTPS", "false")
	t.Setenv("WGTEST_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	o, err := FromEnv("WGTEST")
	if err != nil {
		t.Fatalf("FromEnv() got err: %v", err)
	}
	if o.MaxMessageSize != 1024 {
		t.Errorf("MaxMessageSize got: %d want: 1024", o.MaxMessageSize)
	}
	if o.SandboxPreset != PresetParanoid {
		t.Errorf("SandboxPreset got: %v want: Paranoid", o.SandboxPreset)
	}
	if o.RequireHTTPS {
		t.Error("RequireHTTPS got: true want: false")
	}
	if diff := cmp.Diff([]string{"https://a.example", "https://b.example"}, o.AllowedOrigins); diff != "" {
		t.Errorf("AllowedOrigins mismatch (-want +got):\n%s", diff)
	}
	// Unset variables keep defaults.
	if o.MaxJSONDepth != Default().MaxJSONDepth {
		t.Errorf("MaxJSONDepth got: %d want default %d", o.MaxJSONDepth, Default().MaxJSONDepth)
	}
}

func TestFromEnvBadPreset(t *testing.T) {
	t.Setenv("WGBAD_SANDBOX_PRESET", "Weird")
	if _, err := FromEnv("WGBAD"); err == nil {
		t.Error("FromEnv() got: nil error want: preset error")
	}
}

func containsSubstring(list []string, substr string) bool {
	for _, s := range list {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}
