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

// Package jsonguard parses untrusted JSON payloads under structural limits.
//
// The parse itself is depth-bounded: nesting past the limit aborts decoding
// before the value tree is ever materialized, so a pathological payload
// cannot exhaust the stack on its way to being rejected.
package jsonguard

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Limits caps the structural complexity of a decoded JSON value. All fields
// must be strictly positive; enforcing that is configuration validation, not
// this package's job.
type Limits struct {
	// MaxDepth is the deepest allowed nesting of objects and arrays. A bare
	// scalar has depth 0, "{}" has depth 1.
	MaxDepth int
	// MaxObjectProperties caps the number of members of any single object.
	MaxObjectProperties int
	// MaxArrayElements caps the length of any single array.
	MaxArrayElements int
}

// ErrTooComplex is returned by Check when the value tree violates any limit.
var ErrTooComplex = errors.New("json structure exceeds configured limits")

// Decode parses raw as a single JSON value, failing as soon as nesting
// exceeds maxDepth. Trailing non-whitespace after the value is an error.
func Decode(raw string, maxDepth int) (interface{}, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	v, err := decodeValue(dec, 0, maxDepth)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after JSON value")
	}
	return v, nil
}

// decodeValue consumes one value from dec. Objects decode to
// map[string]interface{}, arrays to []interface{}, scalars to the token
// itself. Recursion depth is bounded by maxDepth, which callers keep small.
func decodeValue(dec *json.Decoder, depth, maxDepth int) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, errors.New("unexpected end of JSON input")
		}
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	if depth+1 > maxDepth {
		return nil, fmt.Errorf("maximum nesting depth of %d exceeded", maxDepth)
	}

	switch delim {
	case '{':
		obj := map[string]interface{}{}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("object key is not a string: %v", keyTok)
			}
			val, err := decodeValue(dec, depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			obj[key] = val
		}
		if _, err := dec.Token(); err != nil { // closing '}'
			return nil, err
		}
		return obj, nil
	case '[':
		var arr []interface{}
		for dec.More() {
			val, err := decodeValue(dec, depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.Token(); err != nil { // closing ']'
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %v", delim)
	}
}

// Check walks a decoded value tree and verifies it against limits. Depth is
// re-verified even though Decode already bounds it, so Check can be used on
// values obtained from other decoders.
func Check(v interface{}, limits Limits) error {
	return check(v, 0, limits)
}

func check(v interface{}, depth int, limits Limits) error {
	switch val := v.(type) {
	case map[string]interface{}:
		if depth+1 > limits.MaxDepth {
			return ErrTooComplex
		}
		if len(val) > limits.MaxObjectProperties {
			return ErrTooComplex
		}
		for _, member := range val {
			if err := check(member, depth+1, limits); err != nil {
				return err
			}
		}
	case []interface{}:
		if depth+1 > limits.MaxDepth {
			return ErrTooComplex
		}
		if len(val) > limits.MaxArrayElements {
			return ErrTooComplex
		}
		for _, elem := range val {
			if err := check(elem, depth+1, limits); err != nil {
				return err
			}
		}
	}
	return nil
}

var typePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// MessageType returns the "type" member of a decoded payload, when the root
// is an object carrying one as a string. The second result reports presence;
// a present type that fails WellFormedType is still returned so callers can
// include it in a rejection reason.
func MessageType(v interface{}) (string, bool) {
	obj, ok := v.(map[string]interface{})
	if !ok {
		return "", false
	}
	raw, ok := obj["type"]
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	if !ok {
		return "", false
	}
	return s, true
}

// WellFormedType reports whether t is a legal message type: one or more
// characters from [A-Za-z0-9._-].
func WellFormedType(t string) bool {
	return typePattern.MatchString(t)
}
