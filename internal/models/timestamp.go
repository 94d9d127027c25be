// ABOUTME: Lenient timestamp type for backend date fields.
// ABOUTME: Accepts zone-less LocalDateTime strings and RFC 3339, keeping raw text on failure.
package models

import (
	"encoding/json"
	"time"
)

// DisplayLayout is how timestamps are rendered to users.
const DisplayLayout = "2006-01-02 15:04:05"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp holds a backend date value. Raw is always preserved; Time is zero
// when the value could not be parsed.
type Timestamp struct {
	Raw  string
	Time time.Time
}

// ParseTimestamp parses s with the known backend layouts. Zone-less values are
// taken as local time.
func ParseTimestamp(s string) Timestamp {
	ts := Timestamp{Raw: s}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			ts.Time = t
			break
		}
	}
	return ts
}

// UnmarshalJSON accepts strings, null, and epoch milliseconds. It never fails.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = ParseTimestamp(s)
		return nil
	}
	var ms int64
	if err := json.Unmarshal(data, &ms); err == nil {
		*t = Timestamp{Raw: string(data), Time: time.UnixMilli(ms)}
		return nil
	}
	*t = Timestamp{}
	return nil
}

// MarshalJSON writes the raw value back out.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Raw == "" {
		return []byte("null"), nil
	}
	return json.Marshal(t.Raw)
}

// IsZero reports whether no value was received.
func (t Timestamp) IsZero() bool {
	return t.Raw == "" && t.Time.IsZero()
}

// Display renders "-" for missing values, the raw text for unparseable ones,
// and DisplayLayout otherwise.
func (t Timestamp) Display() string {
	if t.IsZero() {
		return "-"
	}
	if t.Time.IsZero() {
		return t.Raw
	}
	return t.Time.Format(DisplayLayout)
}
