package records

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/araddon/dateparse"
)

// isoLayout matches the millisecond UTC form produced for every instant.
const isoLayout = "2006-01-02T15:04:05.000Z"

// maxEpochMillis bounds representable instants to ±100,000,000 days.
const maxEpochMillis = 8.64e15

// DefaultDisplayLayout is used when a Formatter has no layout configured.
const DefaultDisplayLayout = "2006-01-02 15:04:05"

type asTimer interface {
	AsTime() time.Time
}

type timer interface {
	Time() time.Time
}

// NormalizeTimestamp converts a stored timestamp of unknown shape into an
// ISO-8601 string. Checks run in order: falsy values yield ""; strings are
// returned unmodified; date-convertible values are converted; maps with a
// numeric "seconds" entry are read as epoch seconds; numbers are read as
// epoch milliseconds. Anything else, including a panic during conversion,
// yields "".
func NormalizeTimestamp(v any) (iso string) {
	defer func() {
		if recover() != nil {
			iso = ""
		}
	}()

	if isFalsy(v) {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case time.Time:
		return formatInstant(t)
	case *time.Time:
		return formatInstant(*t)
	case asTimer:
		return formatInstant(t.AsTime())
	case timer:
		return formatInstant(t.Time())
	case map[string]any:
		if secs, ok := number(t["seconds"]); ok {
			return formatMillis(secs * 1000)
		}
		return ""
	}
	if ms, ok := number(v); ok {
		return formatMillis(ms)
	}
	return ""
}

// Instant re-normalizes a raw timestamp and parses it into its canonical
// UTC instant. ok is false when the value normalizes to "" or the resulting
// string cannot be parsed.
func Instant(raw any) (t time.Time, ok bool) {
	iso := NormalizeTimestamp(raw)
	if iso == "" {
		return time.Time{}, false
	}
	parsed, err := parseInstant(iso)
	if err != nil {
		return time.Time{}, false
	}
	return parsed.UTC(), true
}

// Formatter renders canonical ISO timestamps for display.
type Formatter struct {
	Layout   string
	Location *time.Location
}

// NewFormatter returns a formatter for the given layout and time zone name.
// An empty zone means the local zone.
func NewFormatter(layout, zone string) (Formatter, error) {
	f := Formatter{Layout: layout}
	if zone != "" {
		loc, err := time.LoadLocation(zone)
		if err != nil {
			return Formatter{}, fmt.Errorf("load time zone %q: %w", zone, err)
		}
		f.Location = loc
	}
	return f, nil
}

// Format renders iso in the formatter's layout and zone. Empty input gives
// empty output; input that does not parse is returned unchanged.
func (f Formatter) Format(iso string) string {
	if iso == "" {
		return ""
	}
	t, err := parseInstant(iso)
	if err != nil {
		return iso
	}
	layout := f.Layout
	if layout == "" {
		layout = DefaultDisplayLayout
	}
	loc := f.Location
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(layout)
}

// parseInstant reads RFC 3339 first and falls back to a lenient parser.
// Strings without an offset are read as UTC.
func parseInstant(s string) (t time.Time, err error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	defer func() {
		if r := recover(); r != nil {
			t, err = time.Time{}, fmt.Errorf("parse %q: %v", s, r)
		}
	}()
	return dateparse.ParseIn(s, time.UTC)
}

func formatInstant(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return formatMillis(float64(t.UnixMilli()))
}

func formatMillis(ms float64) string {
	if math.IsNaN(ms) || math.IsInf(ms, 0) || math.Abs(ms) > maxEpochMillis {
		return ""
	}
	t := time.UnixMilli(int64(ms)).UTC()
	if y := t.Year(); y < 0 || y > 9999 {
		return fmt.Sprintf("%+07d", y) + t.Format("-01-02T15:04:05.000Z")
	}
	return t.Format(isoLayout)
}

// isFalsy reports whether v counts as "no value": nil, empty string, false,
// zero or NaN numbers, and the zero time.
func isFalsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case time.Time:
		return t.IsZero()
	}
	if n, ok := number(v); ok {
		return n == 0 || math.IsNaN(n)
	}
	return false
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
