// Package admin holds the entities the admin API returns and accepts.
// The backend is loose with JSON types, so a few fields decode through
// tolerant helper types.
package admin

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// FlexString decodes a JSON string or number into its textual form.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// Float parses the value as a number; ok is false for empty or non-numeric text.
func (f FlexString) Float() (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(string(f)), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (f FlexString) String() string { return string(f) }

// Timestamp is an ISO-8601 string from the API. It is kept as text and parsed
// on demand so unexpected formats never fail a whole list decode.
type Timestamp string

// Time parses the timestamp, reporting false when it is empty or malformed.
func (t Timestamp) Time() (time.Time, bool) {
	if t == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if v, err := time.Parse(layout, string(t)); err == nil {
			return v, true
		}
	}
	return time.Time{}, false
}

// Format renders the timestamp with layout, falling back to the raw text.
func (t Timestamp) Format(layout string) string {
	if v, ok := t.Time(); ok {
		return v.Format(layout)
	}
	return string(t)
}
