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

import "fmt"

const (
	// maxSaneMessageSize is the message-size ceiling above which Validate
	// warns about denial-of-service exposure.
	maxSaneMessageSize = 10 * 1024 * 1024
	// maxSaneJSONDepth is the nesting ceiling above which Validate warns.
	maxSaneJSONDepth = 50
)

// Result is the outcome of validating an Options value. Errors make the
// configuration unusable and callers should refuse to proceed; warnings and
// suggestions are advisory and never block operation.
type Result struct {
	Errors      []string
	Warnings    []string
	Suggestions []string
}

// Valid reports whether the configuration can be used as intended.
func (r Result) Valid() bool { return len(r.Errors) == 0 }

// Validate cross-checks o for contradictions, unusable limits and risky
// settings. It is pure: the same options always produce the same result.
func Validate(o Options) Result {
	var r Result

	if o.RequireHTTPS && o.AllowInsecureConnections {
		r.Warnings = append(r.Warnings, "RequireHTTPS and AllowInsecureConnections are both set; insecure connections will be allowed")
		r.Suggestions = append(r.Suggestions, "Pick one transport policy per environment: RequireHTTPS for production, AllowInsecureConnections for development")
	}

	if !o.EnableSandbox && o.Sandbox != "" {
		r.Warnings = append(r.Warnings, "Sandbox is set but EnableSandbox is false; the explicit sandbox value is still applied")
		r.Suggestions = append(r.Suggestions, "Set EnableSandbox=true or clear Sandbox to make the intent explicit")
	}
	if !o.EnableSandbox && o.SandboxPreset != PresetNone {
		r.Warnings = append(r.Warnings, fmt.Sprintf("SandboxPreset %s is set but EnableSandbox is false; the preset is ignored", o.SandboxPreset))
		r.Suggestions = append(r.Suggestions, "Set EnableSandbox=true for the preset to take effect")
	}

	if o.MaxMessageSize <= 0 {
		r.Errors = append(r.Errors, "MaxMessageSize must be greater than zero")
	}
	if o.MaxJSONDepth <= 0 {
		r.Errors = append(r.Errors, "MaxJSONDepth must be greater than zero")
	}
	if o.MaxObjectProperties <= 0 {
		r.Errors = append(r.Errors, "MaxObjectProperties must be greater than zero")
	}
	if o.MaxArrayElements <= 0 {
		r.Errors = append(r.Errors, "MaxArrayElements must be greater than zero")
	}

	if o.MaxMessageSize > maxSaneMessageSize {
		r.Warnings = append(r.Warnings, fmt.Sprintf("MaxMessageSize of %d bytes is very large and increases denial-of-service exposure", o.MaxMessageSize))
		r.Suggestions = append(r.Suggestions, "Reduce MaxMessageSize to the largest payload the frame actually sends")
	}
	if o.MaxJSONDepth > maxSaneJSONDepth {
		r.Warnings = append(r.Warnings, fmt.Sprintf("MaxJSONDepth of %d permits very deep nesting and increases denial-of-service exposure", o.MaxJSONDepth))
	}

	if o.AllowScriptProtocols {
		r.Warnings = append(r.Warnings, "AllowScriptProtocols permits javascript: frame sources, which execute in the embedding page")
		r.Suggestions = append(r.Suggestions, "Disable AllowScriptProtocols unless a script: source is genuinely required")
	}
	if !o.EnableStrictValidation {
		r.Warnings = append(r.Warnings, "EnableStrictValidation is off; message payload structure will not be checked")
	}

	// Production-looking configuration without any sandbox.
	if o.RequireHTTPS && o.EnableStrictValidation && !o.AllowInsecureConnections {
		if !o.EnableSandbox && o.Sandbox == "" && o.SandboxPreset == PresetNone {
			r.Suggestions = append(r.Suggestions, "This looks like a production configuration; consider enabling the iframe sandbox")
		}
	}

	// Development-looking configuration. The RequireHTTPS condition inside
	// this branch only fires together with AllowInsecureConnections, i.e.
	// exactly the contradictory pairing warned about above; kept as-is for
	// compatibility with existing configurations.
	if o.AllowInsecureConnections || !o.RequireHTTPS {
		if o.RequireHTTPS {
			r.Suggestions = append(r.Suggestions, "This looks like a development configuration; consider dropping RequireHTTPS or removing AllowInsecureConnections before deploying")
		}
	}

	return r
}
