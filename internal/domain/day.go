package domain

import (
	"fmt"
	"time"
)

const dayLayout = "20060102"

// Day is a calendar-day key. Two instants fall on the same Day when they
// share year, month and day in the location they were observed in.
type Day struct {
	Date time.Time
}

// DayOf returns the calendar day t falls on in t's own location.
func DayOf(t time.Time) Day {
	return Day{Date: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDay parses a key produced by DateString
func ParseDay(s string) (Day, error) {
	date, err := time.Parse(dayLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid day key %q: %w", s, err)
	}
	return Day{Date: date}, nil
}

// DateString returns date in YYYYMMDD format
func (d Day) DateString() string {
	return d.Date.Format(dayLayout)
}

// Equal reports whether both keys name the same calendar day
func (d Day) Equal(other Day) bool {
	return d.DateString() == other.DateString()
}

// IsZero reports whether d names no day at all
func (d Day) IsZero() bool {
	return d.Date.IsZero()
}

// Before reports whether d is an earlier calendar day than other
func (d Day) Before(other Day) bool {
	return d.Date.Before(other.Date)
}

// DaysUntil returns the number of whole calendar days from d to later.
// The result is negative when later is actually earlier.
func (d Day) DaysUntil(later Day) int {
	return int(later.Date.Sub(d.Date).Hours() / 24)
}

// DayCount renders n with the singular or plural noun, as in "1 day" or "3 days"
func DayCount(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// DisplayString returns a user-friendly date relative to today
func (d Day) DisplayString(today Day) string {
	switch d.DaysUntil(today) {
	case 0:
		return "Today"
	case 1:
		return "Yesterday"
	}
	return d.Date.Format("2 Jan 2006")
}

// MarshalText implements encoding.TextMarshaler
func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.DateString()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Day) UnmarshalText(text []byte) error {
	parsed, err := ParseDay(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
