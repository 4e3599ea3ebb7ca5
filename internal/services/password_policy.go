package services

import (
	"errors"
	"fmt"
	"unicode"
)

var ErrWeakPassword = errors.New("weak password")

var (
	errPasswordTooShort     = fmt.Errorf("%w: at least 8 characters required", ErrWeakPassword)
	errPasswordMissingUpper = fmt.Errorf("%w: an uppercase letter is required", ErrWeakPassword)
	errPasswordMissingLower = fmt.Errorf("%w: a lowercase letter is required", ErrWeakPassword)
	errPasswordMissingDigit = fmt.Errorf("%w: a digit is required", ErrWeakPassword)
)

// ValidatePasswordStrength returns an error wrapping ErrWeakPassword that
// names the first rule the password breaks.
func ValidatePasswordStrength(password string) error {
	if len([]rune(password)) < 8 {
		return errPasswordTooShort
	}

	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}

	switch {
	case !hasUpper:
		return errPasswordMissingUpper
	case !hasLower:
		return errPasswordMissingLower
	case !hasDigit:
		return errPasswordMissingDigit
	}
	return nil
}
