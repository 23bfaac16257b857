package validation

import (
	"regexp"
	"time"
)

// Validation rule patterns
var (
	// EmailPattern validates email addresses
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// RegisterNumberPattern validates student register numbers - 2 letters followed by 8 digits
	RegisterNumberPattern = `^[A-Z]{2}\d{8}$`

	// PasswordMinLength is the minimum accepted password length
	PasswordMinLength = 8

	// PurposeMinLength is the minimum accepted OD purpose length
	PurposeMinLength = 10
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email          *regexp.Regexp
	RegisterNumber *regexp.Regexp
}{
	Email:          regexp.MustCompile(EmailPattern),
	RegisterNumber: regexp.MustCompile(RegisterNumberPattern),
}

// ValidDateOrder reports whether start does not come after end.
func ValidDateOrder(start, end time.Time) bool {
	return !start.After(end)
}

// WithinWindow reports whether the [start, end] interval is fully contained
// in the [windowStart, windowEnd] interval.
func WithinWindow(start, end, windowStart, windowEnd time.Time) bool {
	return !start.Before(windowStart) && !end.After(windowEnd)
}
