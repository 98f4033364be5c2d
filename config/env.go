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
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// envOptions mirrors Options with envconfig tags. Unset variables fall back
// to the Default values, so an empty environment yields Default().
type envOptions struct {
	AllowedOrigins           []string `envconfig:"ALLOWED_ORIGINS"`
	StrictValidation         *bool    `envconfig:"STRICT_VALIDATION"`
	MaxMessageSize           *int     `envconfig:"MAX_MESSAGE_SIZE"`
	MaxJSONDepth             *int     `envconfig:"MAX_JSON_DEPTH"`
	MaxObjectProperties      *int     `envconfig:"MAX_OBJECT_PROPERTIES"`
	MaxArrayElements         *int     `envconfig:"MAX_ARRAY_ELEMENTS"`
	AllowScriptProtocols     bool     `envconfig:"ALLOW_SCRIPT_PROTOCOLS"`
	Sandbox                  string   `envconfig:"SANDBOX"`
	SandboxPreset            string   `envconfig:"SANDBOX_PRESET"`
	EnableSandbox            *bool    `envconfig:"ENABLE_SANDBOX"`
	RequireHTTPS             *bool    `envconfig:"REQUIRE_HTTPS"`
	AllowInsecureConnections bool     `envconfig:"ALLOW_INSECURE_CONNECTIONS"`
}

// FromEnv builds Options from environment variables carrying the given
// prefix (e.g. prefix "WEBGUARD" reads WEBGUARD_MAX_MESSAGE_SIZE). Unset
// variables keep their Default values. The returned options are not
// validated; call Validate separately.
func FromEnv(prefix string) (Options, error) {
	var e envOptions
	if err := envconfig.Process(prefix, &e); err != nil {
		return Options{}, fmt.Errorf("reading %s_* environment: %w", prefix, err)
	}

	o := Default()
	if len(e.AllowedOrigins) > 0 {
		o.AllowedOrigins = e.AllowedOrigins
	}
	if e.StrictValidation != nil {
		o.EnableStrictValidation = *e.StrictValidation
	}
	if e.MaxMessageSize != nil {
		o.MaxMessageSize = *e.MaxMessageSize
	}
	if e.MaxJSONDepth != nil {
		o.MaxJSONDepth = *e.MaxJSONDepth
	}
	if e.MaxObjectProperties != nil {
		o.MaxObjectProperties = *e.MaxObjectProperties
	}
	if e.MaxArrayElements != nil {
		o.MaxArrayElements = *e.MaxArrayElements
	}
	o.AllowScriptProtocols = e.AllowScriptProtocols
	o.Sandbox = e.Sandbox
	if e.SandboxPreset != "" {
		p, err := ParsePreset(e.SandboxPreset)
		if err != nil {
			return Options{}, err
		}
		o.SandboxPreset = p
	}
	if e.EnableSandbox != nil {
		o.EnableSandbox = *e.EnableSandbox
	}
	if e.RequireHTTPS != nil {
		o.RequireHTTPS = *e.RequireHTTPS
	}
	o.AllowInsecureConnections = e.AllowInsecureConnections
	return o, nil
}
