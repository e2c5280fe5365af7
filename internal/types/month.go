// Package types implements value types shared by the ledger and its API.
package types

import (
	"fmt"
	"strings"
	"time"
)

// Month is a calendar month in a specific year, always in UTC.
type Month time.Time

// NewMonth returns a new Month.
func NewMonth(year int, month time.Month) Month {
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// MonthOf returns the Month in which t occurs.
func MonthOf(t time.Time) Month {
	year, month, _ := t.Date()
	return NewMonth(year, month)
}

// ParseMonth parses a "YYYY-MM" string and returns the Month value it represents.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return Month{}, fmt.Errorf("%q is not a month in YYYY-MM format: %w", s, err)
	}

	return MonthOf(t), nil
}

// String returns the month formatted as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", time.Time(m).Year(), time.Time(m).Month())
}

// MarshalJSON implements the json.Marshaler interface.
func (m Month) MarshalJSON() ([]byte, error) {
	return time.Time(m).MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// It accepts "YYYY-MM", "YYYY-MM-DD" and RFC3339 strings and keeps only year and month.
func (m *Month) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	var t time.Time
	var err error
	for _, layout := range []string{"2006-01", "2006-01-02", time.RFC3339} {
		t, err = time.Parse(layout, value)
		if err == nil {
			break
		}
	}

	if err != nil {
		return fmt.Errorf("%q is not a valid month: %w", value, err)
	}

	*m = NewMonth(t.Year(), t.Month())
	return nil
}

// IsZero reports if the month is the zero value.
func (m Month) IsZero() bool {
	return time.Time(m).IsZero()
}

// AddDate adds a specified amount of years and months.
func (m Month) AddDate(years, months int) Month {
	return Month(time.Time(m).AddDate(years, months, 0))
}

// Contains reports whether the time instant is in the month.
func (m Month) Contains(t time.Time) bool {
	t = t.In(time.UTC)
	return t.Year() == time.Time(m).Year() && t.Month() == time.Time(m).Month()
}
