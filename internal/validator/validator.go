// Package validator holds the pure field checks the directory applies before
// touching any state. Every check is side-effect free and never panics on
// odd input.
package validator

import (
	"regexp"
	"time"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z]{2,}(?:\.[a-zA-Z]{2,})*$`)

// Phone reports whether s is non-empty and every character is a decimal
// digit.
func Phone(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Age reports whether a lies inside the open interval (0, 100).
func Age(a int) bool { return a > 0 && a < 100 }

// DOB reports whether s is a YYYY-MM-DD calendar date and the age it implies
// as of today also passes Age.
func DOB(s string) bool {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return false
	}
	return Age(ageAt(d, time.Now().UTC()))
}

func ageAt(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

// Email reports whether s has the local@domain.tld shape: local of
// letters/digits/underscore/dot/plus/minus, domain of letters/digits/hyphen,
// and one or more TLD segments of two-plus letters.
func Email(s string) bool { return emailRe.MatchString(s) }
