package fields

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical calendar date format.
const DateLayout = "2006-01-02"

// wrappedEpoch matches the legacy /Date(<millis><±HHMM>?)/ token.
var wrappedEpoch = regexp.MustCompile(`^/Date\((-?\d+)([+-]\d{4})?\)/$`)

// NormaliseDate converts an upstream date value to a YYYY-MM-DD string.
//
// Two encodings are understood:
//
//   - /Date(<millis><±HHMM>?)/ is read as an instant and truncated to its
//     UTC calendar date. The offset only disambiguates wall-clock time and
//     is discarded.
//   - An ISO-8601 string with a time component is cut at the date/time
//     separator.
//
// Instants outside the years 0000-9999 and everything else, including
// date-only strings, yield nil. The mapping is
// total and deterministic.
func NormaliseDate(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)

	if m := wrappedEpoch.FindStringSubmatch(s); m != nil {
		ms, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return nil
		}
		t := time.UnixMilli(ms).UTC()
		if t.Year() < 0 || t.Year() > 9999 {
			return nil
		}
		d := t.Format(DateLayout)
		return &d
	}

	idx := strings.IndexAny(s, "T ")
	if idx <= 0 {
		return nil
	}
	d := s[:idx]
	if _, err := time.Parse(DateLayout, d); err != nil {
		return nil
	}
	return &d
}
