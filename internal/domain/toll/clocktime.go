package toll

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ClockTime is a time of day expressed as minutes since midnight, with no
// date or timezone component.
type ClockTime int

// NewClockTime creates a ClockTime from an hour and minute.
func NewClockTime(hour, minute int) ClockTime {
	return ClockTime(hour*60 + minute)
}

// ClockTimeOf extracts the time-of-day component of an instant.
func ClockTimeOf(t time.Time) ClockTime {
	return NewClockTime(t.Hour(), t.Minute())
}

// ParseClockTime parses a "HH:MM" string into a ClockTime. Anything beyond
// the two numeric fields is rejected.
func ParseClockTime(s string) (ClockTime, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("invalid clock time %q: want HH:MM", s)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid clock time %q: out of range", s)
	}
	return NewClockTime(hour, minute), nil
}

// MustParseClockTime parses a "HH:MM" string and panics on failure. Intended
// for static tariff declarations.
func MustParseClockTime(s string) ClockTime {
	ct, err := ParseClockTime(s)
	if err != nil {
		panic(err)
	}
	return ct
}

// Hour returns the hour component.
func (c ClockTime) Hour() int { return int(c) / 60 }

// Minute returns the minute component.
func (c ClockTime) Minute() int { return int(c) % 60 }

// String returns the "HH:MM" representation.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}
