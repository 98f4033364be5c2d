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

// Findings is the outcome of linting a PolicyConfig. All current checks are
// advisory: they populate Warnings and Suggestions only, so Valid holds for
// every configuration today. Errors exists so structural checks can be added
// without changing the result shape.
type Findings struct {
	Errors      []string
	Warnings    []string
	Suggestions []string
}

// Valid reports whether the configuration is structurally usable.
func (f Findings) Valid() bool { return len(f.Errors) == 0 }

// Lint statically analyzes cfg for weakened or redundant policy settings.
// Lint never inspects a built header; it works from the declared intent, so
// it can run once per configuration change rather than per render.
func Lint(cfg PolicyConfig) Findings {
	var f Findings

	if cfg.AllowInlineScripts {
		f.Warnings = append(f.Warnings, "'unsafe-inline' in script-src allows any inline script to run and defeats most of CSP's XSS protection")
	}
	if cfg.AllowEval {
		f.Warnings = append(f.Warnings, "'unsafe-eval' in script-src allows eval() and string-to-code APIs")
	}
	if len(cfg.FrameSrc) == 0 && len(cfg.ChildSrc) == 0 && !cfg.AutoDeriveFrameSrc {
		f.Suggestions = append(f.Suggestions, "No frame-src or child-src is configured; add one (or enable AutoDeriveFrameSrc) so the policy constrains embeddable frames")
	}
	if cfg.ScriptNonce != "" && cfg.AllowInlineScripts {
		f.Suggestions = append(f.Suggestions, "A script nonce is configured; nonce-aware browsers ignore 'unsafe-inline', so AllowInlineScripts is redundant")
	}
	if cfg.UseStrictDynamic && (cfg.AllowInlineScripts || cfg.AllowEval) {
		f.Warnings = append(f.Warnings, "'strict-dynamic' causes browsers to ignore 'unsafe-inline' and 'unsafe-eval' in script-src")
	}
	if cfg.ReportOnly && cfg.ReportURI == "" {
		f.Suggestions = append(f.Suggestions, "Report-only mode without a report-uri discards all violation reports; set ReportURI to collect them")
	}

	return f
}
