package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// CalendarDate is a timezone-free calendar date, always derived in UTC.
type CalendarDate struct {
	Day   int
	Month int
	Year  int
}

// DateOf converts a time to its UTC calendar date.
func DateOf(t time.Time) CalendarDate {
	u := t.UTC()
	return CalendarDate{Day: u.Day(), Month: int(u.Month()), Year: u.Year()}
}

// Equal compares two calendar dates numerically.
func (d CalendarDate) Equal(o CalendarDate) bool {
	return d.Day == o.Day && d.Month == o.Month && d.Year == o.Year
}

// String formats the date as DD-MM-YYYY, the display format used in
// authentication messages.
func (d CalendarDate) String() string {
	return fmt.Sprintf("%02d-%02d-%04d", d.Day, d.Month, d.Year)
}

// FlexTime is a timestamp that collaborators write in one of several shapes:
// a seconds-since-epoch container ({"seconds": N} or {"_seconds": N}), a
// string (RFC 3339 or date-only), or a raw epoch-milliseconds number. The raw
// JSON is kept as stored; Resolve normalizes it once, trying each shape in a
// fixed order and taking the first that yields a valid time.
type FlexTime struct {
	raw json.RawMessage
}

// FlexTimeFromSeconds builds a seconds-container FlexTime.
func FlexTimeFromSeconds(sec int64) FlexTime {
	return FlexTime{raw: json.RawMessage(fmt.Sprintf(`{"seconds":%d}`, sec))}
}

// FlexTimeFromString builds a string-shaped FlexTime.
func FlexTimeFromString(s string) FlexTime {
	b, _ := json.Marshal(s)
	return FlexTime{raw: b}
}

// FlexTimeFromMillis builds a raw epoch-milliseconds FlexTime.
func FlexTimeFromMillis(ms int64) FlexTime {
	return FlexTime{raw: json.RawMessage(strconv.FormatInt(ms, 10))}
}

// IsZero reports whether no value is stored.
func (t FlexTime) IsZero() bool {
	if len(t.raw) == 0 {
		return true
	}
	return string(t.raw) == "null"
}

// secondsContainer covers the object shapes collaborators write: a plain
// seconds field or the underscore-prefixed accessor-style pair.
type secondsContainer struct {
	Seconds      *int64 `json:"seconds"`
	USeconds     *int64 `json:"_seconds"`
	Nanoseconds  int64  `json:"nanoseconds"`
	UNanoseconds int64  `json:"_nanoseconds"`
}

// Resolve normalizes the stored value to a time. The second return is false
// when no shape parses.
func (t FlexTime) Resolve() (time.Time, bool) {
	if t.IsZero() {
		return time.Time{}, false
	}

	// Shape 1: seconds container object.
	var sc secondsContainer
	if err := json.Unmarshal(t.raw, &sc); err == nil {
		if sc.Seconds != nil {
			return time.Unix(*sc.Seconds, sc.Nanoseconds).UTC(), true
		}
		if sc.USeconds != nil {
			return time.Unix(*sc.USeconds, sc.UNanoseconds).UTC(), true
		}
	}

	// Shape 2: string in a known layout.
	var s string
	if err := json.Unmarshal(t.raw, &s); err == nil {
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
			if parsed, perr := time.Parse(layout, s); perr == nil {
				return parsed.UTC(), true
			}
		}
		return time.Time{}, false
	}

	// Shape 3: raw number, epoch milliseconds.
	var ms int64
	if err := json.Unmarshal(t.raw, &ms); err == nil {
		return time.UnixMilli(ms).UTC(), true
	}

	return time.Time{}, false
}

// Date resolves the value to its UTC calendar date.
func (t FlexTime) Date() (CalendarDate, bool) {
	resolved, ok := t.Resolve()
	if !ok {
		return CalendarDate{}, false
	}
	return DateOf(resolved), true
}

func (t FlexTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return t.raw, nil
}

func (t *FlexTime) UnmarshalJSON(b []byte) error {
	t.raw = append(t.raw[:0], b...)
	return nil
}

// Value implements driver.Valuer for JSONB columns.
func (t FlexTime) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return []byte(t.raw), nil
}

// Scan implements sql.Scanner for JSONB columns.
func (t *FlexTime) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		t.raw = nil
		return nil
	case []byte:
		t.raw = append(t.raw[:0], v...)
		return nil
	case string:
		t.raw = []byte(v)
		return nil
	default:
		return fmt.Errorf("FlexTime.Scan: unsupported source type %T", src)
	}
}
