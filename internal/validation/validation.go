// Package validation provides input validation for registration and login forms.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRegex = regexp.MustCompile(`^\d{10}$`)
)

// ValidateEmail checks the local@domain.tld shape of an email address.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("email must look like name@example.com")
	}
	return nil
}

// ValidatePhone checks that a phone number is exactly 10 ASCII digits.
func ValidatePhone(phone string) error {
	if !phoneRegex.MatchString(phone) {
		return fmt.Errorf("phone must be exactly 10 digits")
	}
	return nil
}

// ValidateRequired checks that every named field has a non-blank value.
// Field order is preserved so the first missing field is reported.
func ValidateRequired(fields ...[2]string) error {
	for _, f := range fields {
		if strings.TrimSpace(f[1]) == "" {
			return fmt.Errorf("%s is required", f[0])
		}
	}
	return nil
}
