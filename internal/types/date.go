package types

import (
	"fmt"
	"strings"
	"time"
)

const dateOnlyLayout = "2006-01-02"

// DateOnly is a calendar date with no time component, serialized as
// "YYYY-MM-DD". Trip boundaries and itinerary days are dates, not
// instants; the zero value is the zero time.
type DateOnly struct {
	t time.Time
}

// NewDateOnly truncates t to its UTC calendar date.
func NewDateOnly(t time.Time) DateOnly {
	u := t.UTC()
	return DateOnly{t: time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDateOnly parses a "YYYY-MM-DD" string.
func ParseDateOnly(s string) (DateOnly, error) {
	t, err := time.Parse(dateOnlyLayout, s)
	if err != nil {
		return DateOnly{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return DateOnly{t: t}, nil
}

// Time returns the date as a UTC midnight instant.
func (d DateOnly) Time() time.Time { return d.t }

func (d DateOnly) IsZero() bool { return d.t.IsZero() }

func (d DateOnly) Before(other DateOnly) bool { return d.t.Before(other.t) }

func (d DateOnly) String() string { return d.t.Format(dateOnlyLayout) }

// MarshalJSON implements json.Marshaler.
func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.t.Format(dateOnlyLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *DateOnly) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = DateOnly{}
		return nil
	}
	parsed, err := ParseDateOnly(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
