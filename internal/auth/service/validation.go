package service

import (
	"regexp"
	"strings"
	"unicode/utf16"
)

// MinPasswordLength is the shortest password accepted at registration and login.
const MinPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail is a shape check only; deliverability is never verified.
func ValidEmail(email string) bool {
	if !emailPattern.MatchString(email) {
		return false
	}
	for _, bad := range []string{"..", "@.", ".@", " "} {
		if strings.Contains(email, bad) {
			return false
		}
	}
	return !strings.HasPrefix(email, "@") && !strings.HasSuffix(email, "@")
}

// ValidPassword measures length in UTF-16 code units, the unit browsers use
// for String.length, so client-side and server-side checks agree. A
// character outside the BMP counts twice.
func ValidPassword(password string) bool {
	n := 0
	for _, r := range password {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n >= MinPasswordLength
}
