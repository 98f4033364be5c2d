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

// Package sandbox derives the iframe sandbox attribute from layered
// configuration.
//
// Three settings can influence the attribute: an explicit token string, a
// preset, and a bare enable flag. Precedence is an ordered rule table
// evaluated top-down; the first matching rule decides.
package sandbox

import (
	"github.com/google/safehtml"
	"github.com/google/safehtml/template"

	"github.com/go-webguard/webguard/config"
)

// presetTokens maps each preset to its sandbox token string.
// PresetStrict and PresetBasic intentionally share tokens; see the
// config.PresetStrict doc comment.
var presetTokens = map[config.SandboxPreset]string{
	config.PresetBasic:      "allow-scripts allow-same-origin",
	config.PresetPermissive: "allow-scripts allow-same-origin allow-forms allow-popups",
	config.PresetStrict:     "allow-scripts allow-same-origin",
	config.PresetParanoid:   "allow-scripts",
}

// rule pairs a predicate with the sandbox value it yields. The first
// matching rule wins.
type rule struct {
	when  func(config.Options) bool
	value func(config.Options) string
}

var rules = []rule{
	{
		// Sandboxing fully disabled.
		when: func(o config.Options) bool {
			return !o.EnableSandbox && o.Sandbox == "" && o.SandboxPreset == config.PresetNone
		},
		value: func(config.Options) string { return "" },
	},
	{
		// Explicit value wins over everything, even a disabled flag. This is
		// an escape hatch; config.Validate warns when it is used that way.
		when:  func(o config.Options) bool { return o.Sandbox != "" },
		value: func(o config.Options) string { return o.Sandbox },
	},
	{
		when:  func(o config.Options) bool { return o.SandboxPreset != config.PresetNone },
		value: func(o config.Options) string { return presetTokens[o.SandboxPreset] },
	},
	{
		// Bare enable flag defaults to the Basic capability set.
		when:  func(o config.Options) bool { return o.EnableSandbox },
		value: func(config.Options) string { return presetTokens[config.PresetBasic] },
	},
}

// Resolve returns the effective sandbox attribute value for o, or "" when
// the attribute should be omitted entirely.
func Resolve(o config.Options) string {
	for _, r := range rules {
		if r.when(o) {
			return r.value(o)
		}
	}
	return ""
}

var iframeTmpl = template.Must(template.New("iframe").Parse(
	`<iframe src="{{.Src}}"{{if .Sandbox}} sandbox="{{.Sandbox}}"{{end}}></iframe>`))

// Iframe renders a frame element for src with the sandbox attribute derived
// from o, omitting the attribute when sandboxing is fully disabled. The
// template's contextual escaping applies safehtml's URL sanitization to src,
// so a script-protocol src renders as an innocuous placeholder rather than
// live code; use urlcheck.Validate to reject such URLs outright.
func Iframe(src string, o config.Options) (safehtml.HTML, error) {
	return iframeTmpl.ExecuteToHTML(struct {
		Src     string
		Sandbox string
	}{Src: src, Sandbox: Resolve(o)})
}
