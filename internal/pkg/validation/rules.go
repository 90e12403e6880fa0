package validation

import (
	"regexp"
	"strings"
	"time"
)

// PasswordMinLength is the shortest password accepted for a staff account
const PasswordMinLength = 8

var (
	// digits with an optional leading plus and common separators
	phonePattern = regexp.MustCompile(`^\+?[0-9(][0-9\s\-()]{6,19}$`)

	// 24h HH:MM wall-clock time
	clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday resolves an English weekday name, ignoring case and padding.
func ParseWeekday(name string) (time.Weekday, bool) {
	d, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
	return d, ok
}

// IsWeekday reports whether name is an English weekday name.
func IsWeekday(name string) bool {
	_, ok := ParseWeekday(name)
	return ok
}

// IsClock reports whether s is a valid HH:MM time.
func IsClock(s string) bool {
	return clockPattern.MatchString(s)
}

// IsPhone reports whether s looks like a dialable phone number.
func IsPhone(s string) bool {
	return phonePattern.MatchString(strings.TrimSpace(s))
}
