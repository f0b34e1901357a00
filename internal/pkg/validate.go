package pkg

import (
	"regexp"
	"time"
)

// DMYLayout date format used on public forms.
const DMYLayout = "02-01-2006"

var (
	phoneRe   = regexp.MustCompile(`^\d{10}$`)
	aadhaarRe = regexp.MustCompile(`^\d{12}$`)
	lettersRe = regexp.MustCompile(`^[a-zA-Z\s]+$`)
)

// IsPhone exactly 10 digits.
func IsPhone(s string) bool { return phoneRe.MatchString(s) }

// IsAadhaar exactly 12 digits.
func IsAadhaar(s string) bool { return aadhaarRe.MatchString(s) }

// IsLetters ASCII letters and whitespace only.
func IsLetters(s string) bool { return lettersRe.MatchString(s) }

// ParseDMY parses dd-mm-yyyy as a UTC date.
func ParseDMY(s string) (time.Time, error) {
	return time.ParseInLocation(DMYLayout, s, time.UTC)
}
