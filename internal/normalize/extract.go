// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize maps raw heterogeneous provider records onto the
// canonical option types. Upstream schemas carry no guarantees, so every
// field goes through an ordered list of typed extractor strategies; the
// first success wins. Malformed records are skipped, never fatal.
// Implements: prd001-normalization (R1-R5);
//
//	docs/ARCHITECTURE § Normalization.
package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MalformedRecordError reports a raw record that could not be coerced into
// an option. Callers skip the record; the error is never surfaced past the
// assembler.
type MalformedRecordError struct {
	Field  string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record: field %q: %s", e.Field, e.Reason)
}

func malformed(field, format string, args ...any) error {
	return &MalformedRecordError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// nestedNumberKeys are the sub-keys probed, in priority order, when a price
// candidate turns out to be an object rather than a scalar.
var nestedNumberKeys = []string{"extracted_lowest", "value", "lowest", "total", "amount"}

// numberExtractor attempts to coerce one raw value into a float64.
type numberExtractor func(v any) (float64, bool)

// numberExtractors is the strategy table for numeric coercion. Order
// matters: plain numbers, then numeric strings, then nested objects.
var numberExtractors = []numberExtractor{
	numberFromScalar,
	numberFromString,
	numberFromNested,
}

// Number coerces v into a finite float64 using the extractor table.
func Number(v any) (float64, bool) {
	for _, extract := range numberExtractors {
		if n, ok := extract(v); ok {
			return n, true
		}
	}
	return 0, false
}

func numberFromScalar(v any) (float64, bool) {
	var n float64
	switch t := v.(type) {
	case float64:
		n = t
	case float32:
		n = float64(t)
	case int:
		n = float64(t)
	case int64:
		n = float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// numberFromString strips every non-digit, non-decimal-point character
// ("₹50,000" → "50000") and parses the remainder.
func numberFromString(v any) (float64, bool) {
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// numberFromNested probes known sub-keys of an object-valued candidate.
// Sub-values may themselves be numbers or numeric strings, but nesting
// stops at one level.
func numberFromNested(v any) (float64, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return 0, false
	}
	for _, key := range nestedNumberKeys {
		sub, present := m[key]
		if !present {
			continue
		}
		if n, ok := numberFromScalar(sub); ok {
			return n, true
		}
		if n, ok := numberFromString(sub); ok {
			return n, true
		}
	}
	return 0, false
}

// NumberAt tries each dotted path in order against rec and returns the
// first value the extractor table accepts. Path elements index nested
// maps; a numeric element indexes a list ("itineraries.0.duration").
func NumberAt(rec map[string]any, paths ...string) (float64, bool) {
	for _, path := range paths {
		if v, ok := valueAt(rec, path); ok {
			if n, ok := Number(v); ok {
				return n, true
			}
		}
	}
	return 0, false
}

// StringAt tries each dotted path in order and returns the first non-empty
// string value.
func StringAt(rec map[string]any, paths ...string) (string, bool) {
	for _, path := range paths {
		v, ok := valueAt(rec, path)
		if !ok {
			continue
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s), true
		}
	}
	return "", false
}

// BoolAt tries each dotted path in order and returns the first boolean,
// accepting the string forms "true"/"false"/"yes"/"no" as well.
func BoolAt(rec map[string]any, paths ...string) (bool, bool) {
	for _, path := range paths {
		v, ok := valueAt(rec, path)
		if !ok {
			continue
		}
		switch t := v.(type) {
		case bool:
			return t, true
		case string:
			switch strings.ToLower(strings.TrimSpace(t)) {
			case "true", "yes":
				return true, true
			case "false", "no":
				return false, true
			}
		}
	}
	return false, false
}

// ListAt tries each dotted path in order and returns the first list value.
func ListAt(rec map[string]any, paths ...string) ([]any, bool) {
	for _, path := range paths {
		if v, ok := valueAt(rec, path); ok {
			if l, ok := v.([]any); ok {
				return l, true
			}
		}
	}
	return nil, false
}

// Rating coerces an optional rating-like value (numeric, numeric string,
// or nested {value: ...}) and clamps it to [0, max]. Missing or unusable
// ratings yield the domain default instead of failing.
func Rating(v any, def, max float64) float64 {
	n, ok := Number(v)
	if !ok {
		return def
	}
	if n < 0 {
		return 0
	}
	if n > max {
		return max
	}
	return n
}

// valueAt walks a dotted path through nested maps and lists.
func valueAt(rec map[string]any, path string) (any, bool) {
	var cur any = rec
	for _, part := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[part]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			idx, err := strconv.Atoi(part)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			cur = node[idx]
		default:
			return nil, false
		}
	}
	return cur, true
}
