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

// Package config holds the security options governing an embedded frame and
// validates them for cross-field consistency.
//
// Options are trusted input: validation here exists to catch configuration
// mistakes, not to defend against a malicious configurer.
package config

import "fmt"

// SandboxPreset selects a predefined iframe sandbox capability set.
type SandboxPreset int

const (
	// PresetNone applies no preset; other sandbox settings decide.
	PresetNone SandboxPreset = iota
	// PresetBasic allows scripts and same-origin access.
	PresetBasic
	// PresetPermissive additionally allows forms and popups.
	PresetPermissive
	// PresetStrict currently resolves to the same tokens as PresetBasic.
	// Tightening it to drop allow-same-origin would better match its name,
	// but existing deployments depend on the current tokens.
	PresetStrict
	// PresetParanoid allows scripts only.
	PresetParanoid
)

// String returns the preset's configuration name.
func (p SandboxPreset) String() string {
	switch p {
	case PresetNone:
		return "None"
	case PresetBasic:
		return "Basic"
	case PresetPermissive:
		return "Permissive"
	case PresetStrict:
		return "Strict"
	case PresetParanoid:
		return "Paranoid"
	default:
		return fmt.Sprintf("SandboxPreset(%d)", int(p))
	}
}

// ParsePreset converts a configuration name to a SandboxPreset,
// case-sensitively.
func ParsePreset(s string) (SandboxPreset, error) {
	switch s {
	case "", "None":
		return PresetNone, nil
	case "Basic":
		return PresetBasic, nil
	case "Permissive":
		return PresetPermissive, nil
	case "Strict":
		return PresetStrict, nil
	case "Paranoid":
		return PresetParanoid, nil
	default:
		return PresetNone, fmt.Errorf("unknown sandbox preset %q", s)
	}
}

// CustomValidator is a caller-supplied hook consulted after the built-in
// message checks. Returning false rejects the message; returning an error
// rejects it with the error's message attached. The message pipeline
// additionally recovers panics from the hook, so a misbehaving validator can
// only ever reject messages, never crash the caller.
type CustomValidator func(origin, raw string) (bool, error)

// Options configures message, URL and sandbox validation for one embedded
// frame. The zero value is unusable; start from Default.
type Options struct {
	// AllowedOrigins is the explicit origin allow-list for inbound messages.
	// When empty, callers typically derive one from the frame's source URL.
	AllowedOrigins []string

	// EnableStrictValidation turns on JSON parsing and structural checks for
	// message payloads.
	EnableStrictValidation bool
	// MaxMessageSize is the maximum message length in bytes.
	MaxMessageSize int
	// MaxJSONDepth caps payload nesting depth under strict validation.
	MaxJSONDepth int
	// MaxObjectProperties caps members per JSON object under strict validation.
	MaxObjectProperties int
	// MaxArrayElements caps elements per JSON array under strict validation.
	MaxArrayElements int

	// AllowScriptProtocols permits javascript:/vbscript:/livescript: frame
	// source URLs. Almost never what you want.
	AllowScriptProtocols bool
	// CustomValidator, when set, runs as the final message check.
	CustomValidator CustomValidator

	// Sandbox, when non-empty, is used verbatim as the iframe sandbox
	// attribute and overrides both SandboxPreset and EnableSandbox.
	Sandbox string
	// SandboxPreset selects a predefined sandbox capability set.
	SandboxPreset SandboxPreset
	// EnableSandbox applies PresetBasic when no explicit value or preset is
	// configured.
	EnableSandbox bool

	// RequireHTTPS rejects plain-HTTP frame source URLs.
	RequireHTTPS bool
	// AllowInsecureConnections suspends RequireHTTPS, for development
	// environments only.
	AllowInsecureConnections bool
}

// Default returns the recommended production options: strict validation on,
// HTTPS required, sandboxing enabled, and conservative structural limits.
func Default() Options {
	return Options{
		EnableStrictValidation: true,
		MaxMessageSize:         64 * 1024,
		MaxJSONDepth:           10,
		MaxObjectProperties:    100,
		MaxArrayElements:       1000,
		EnableSandbox:          true,
		RequireHTTPS:           true,
	}
}
