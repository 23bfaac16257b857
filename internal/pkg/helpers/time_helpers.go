package helpers

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for date-only fields (internship and OD windows).
const DateLayout = "2006-01-02"

// ParseDate parses a date-only string in UTC.
func ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", value, err)
	}
	return t, nil
}

// FormatDate renders a time as a date-only string.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseDuration parses a duration string, falling back to a default on error.
func ParseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
