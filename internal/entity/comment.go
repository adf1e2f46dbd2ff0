package entity

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Comment is a single student review.
type Comment struct {
	Text    string     `json:"text"`
	Upvotes int        `json:"upvotes"`
	Date    *Timestamp `json:"date,omitempty"`
	Author  string     `json:"author,omitempty"`
}

// Timestamp decodes the loosely formatted ISO dates the review API emits.
// Values that cannot be parsed decode as the zero Timestamp.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		// Non-string dates are treated as missing rather than failing the payload.
		return nil
	}

	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}

// HasDate reports whether the comment has a usable date.
func (c Comment) HasDate() bool {
	return c.Date != nil && !c.Date.IsZero()
}
