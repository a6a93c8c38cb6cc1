package fields

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/custodia-labs/tingsync/internal/core/domain"
)

// Resolve tries each path in order and returns the first present value.
// A present JSON null wins and stops the search.
func Resolve(raw domain.RawRecord, paths []string) (any, bool) {
	for _, p := range paths {
		if v, ok := raw.Lookup(p); ok {
			return v, true
		}
	}
	return nil, false
}

// String resolves a field as trimmed text. Numbers keep their textual form.
// Empty strings and any other type yield nil.
func String(raw domain.RawRecord, paths []string) *string {
	v, ok := Resolve(raw, paths)
	if !ok {
		return nil
	}
	return toString(v)
}

// Date resolves a field and normalises it with NormaliseDate.
func Date(raw domain.RawRecord, paths []string) *string {
	v, ok := Resolve(raw, paths)
	if !ok {
		return nil
	}
	return NormaliseDate(v)
}

// Bool resolves a field as a boolean. Accepts JSON booleans, the strings
// "true"/"false" and the numbers 1/0.
func Bool(raw domain.RawRecord, paths []string) *bool {
	v, ok := Resolve(raw, paths)
	if !ok {
		return nil
	}

	var b bool
	switch t := v.(type) {
	case bool:
		b = t
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(t))
		if err != nil {
			return nil
		}
		b = parsed
	case json.Number:
		switch t.String() {
		case "1":
			b = true
		case "0":
			b = false
		default:
			return nil
		}
	case float64:
		switch t {
		case 1:
			b = true
		case 0:
			b = false
		default:
			return nil
		}
	default:
		return nil
	}
	return &b
}

// ID resolves the external identifier. Returns "" when absent.
func ID(raw domain.RawRecord, paths []string) string {
	if s := String(raw, paths); s != nil {
		return *s
	}
	return ""
}

func toString(v any) *string {
	var s string
	switch t := v.(type) {
	case string:
		s = strings.TrimSpace(t)
	case json.Number:
		s = t.String()
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return nil
	}
	if s == "" {
		return nil
	}
	return &s
}
