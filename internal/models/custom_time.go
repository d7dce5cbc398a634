package models

import (
	"encoding/json"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// FlexibleDate accepts both RFC3339 and "YYYY-MM-DD" input and is written back
// as a plain date, which is all a valuation as-of date carries.
type FlexibleDate struct {
	time.Time
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexibleDate) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		f.Time = time.Time{}
		return nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		f.Time = t.UTC().Truncate(24 * time.Hour)
		return nil
	}

	t, err = time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	f.Time = t
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (f FlexibleDate) MarshalJSON() ([]byte, error) {
	if f.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(f.Format(dateLayout))
}
