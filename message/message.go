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

// Package message classifies cross-frame messages as safe or unsafe.
//
// Validation is a fixed pipeline; checks run in a deterministic order and
// the first failure wins, so the same message always yields the same
// rejection reason. Rejections are ordinary return values, never errors:
// hostile input is the expected case, not the exceptional one.
package message

import (
	"fmt"

	"github.com/go-webguard/webguard/config"
	"github.com/go-webguard/webguard/contentfilter"
	"github.com/go-webguard/webguard/jsonguard"
	"github.com/go-webguard/webguard/origin"
)

// Validated is the verdict for one message. When Valid is true, Reason is
// empty; when false, Reason holds a human-readable rejection cause. Type is
// the payload's declared message type, when the payload is a JSON object
// carrying one.
type Validated struct {
	Origin  string
	RawData string
	Valid   bool
	Reason  string
	Type    string
}

// Validator runs the message pipeline. The zero value uses the default
// denylist content filter; set Filter to substitute a different engine.
type Validator struct {
	Filter contentfilter.Filter
}

var defaultFilter = contentfilter.NewDenylist()

// Validate classifies one message. Checks run in order: origin presence,
// data presence, size, content filter, origin allow-list, strict JSON
// structure, custom hook. It never panics, even when the custom hook does.
func (v *Validator) Validate(msgOrigin, raw string, allowed []string, opts config.Options) Validated {
	reject := func(reason string) Validated {
		return Validated{Origin: msgOrigin, RawData: raw, Reason: reason}
	}

	if msgOrigin == "" {
		return reject("Origin is null or empty")
	}
	if raw == "" {
		return reject("Message data is null or empty")
	}
	if len(raw) > opts.MaxMessageSize {
		return reject(fmt.Sprintf("Message size (%d bytes) exceeds maximum allowed size (%d bytes)", len(raw), opts.MaxMessageSize))
	}

	filter := v.Filter
	if filter == nil {
		filter = defaultFilter
	}
	if filter.Flagged(raw) {
		return reject("Message contains potentially malicious content")
	}

	if !origin.Contains(allowed, msgOrigin) {
		return reject(fmt.Sprintf("Origin '%s' is not in the allowed origins list", msgOrigin))
	}

	var msgType string
	if opts.EnableStrictValidation {
		val, err := jsonguard.Decode(raw, opts.MaxJSONDepth)
		if err != nil {
			return reject(fmt.Sprintf("Invalid JSON format: %v", err))
		}
		limits := jsonguard.Limits{
			MaxDepth:            opts.MaxJSONDepth,
			MaxObjectProperties: opts.MaxObjectProperties,
			MaxArrayElements:    opts.MaxArrayElements,
		}
		if err := jsonguard.Check(val, limits); err != nil {
			return reject("JSON structure is too complex or deeply nested")
		}
		if t, ok := jsonguard.MessageType(val); ok {
			if !jsonguard.WellFormedType(t) {
				return reject(fmt.Sprintf("Invalid message type: %s", t))
			}
			msgType = t
		}
	}

	if opts.CustomValidator != nil {
		ok, err := runCustom(opts.CustomValidator, msgOrigin, raw)
		if err != nil {
			return reject(fmt.Sprintf("Custom validation error: %v", err))
		}
		if !ok {
			return reject("Custom validation failed")
		}
	}

	return Validated{Origin: msgOrigin, RawData: raw, Valid: true, Type: msgType}
}

// Validate classifies one message using the default content filter.
func Validate(msgOrigin, raw string, allowed []string, opts config.Options) Validated {
	var v Validator
	return v.Validate(msgOrigin, raw, allowed, opts)
}

// runCustom invokes the caller-supplied hook, converting a panic into an
// error so that nothing escapes the pipeline.
func runCustom(hook config.CustomValidator, msgOrigin, raw string) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			err = fmt.Errorf("%v", r)
		}
	}()
	return hook(msgOrigin, raw)
}
