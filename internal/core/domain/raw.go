package domain

import "strings"

// RawRecord is an untyped record as decoded from the upstream API.
// Any field may appear under several names depending on the upstream
// API version. It only lives for one fetch cycle.
type RawRecord map[string]any

// Lookup resolves a dotted path such as "parti.navn".
// The second result is false when any segment is absent or a
// non-terminal segment is not an object. A present JSON null is found.
func (r RawRecord) Lookup(path string) (any, bool) {
	if r == nil || path == "" {
		return nil, false
	}

	var cur any = map[string]any(r)
	for _, seg := range strings.Split(path, ".") {
		obj, ok := asObject(cur)
		if !ok {
			return nil, false
		}
		cur, ok = obj[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case RawRecord:
		return m, true
	default:
		return nil, false
	}
}
