package utils

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const minPasswordLength = 8

// ValidateEmail reports whether an address is plausible enough to store on
// an applicant, company contact, or user record.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePassword checks an account password against the minimum policy.
// The second return is the rejection message sent back to the client.
func ValidatePassword(password string) (bool, string) {
	if len(password) < minPasswordLength {
		return false, "Password must be at least 8 characters long"
	}
	return true, ""
}

// SanitizeInput normalizes free-text form input before it is stored:
// surrounding whitespace and NUL bytes are stripped. Applicant form values
// pass through here on every admin edit.
func SanitizeInput(input string) string {
	return strings.ReplaceAll(strings.TrimSpace(input), "\x00", "")
}
