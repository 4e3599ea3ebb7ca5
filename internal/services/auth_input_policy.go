package services

import (
	"errors"
	"net/mail"
	"strings"
)

var (
	ErrAuthCredentialsInvalid       = errors.New("auth credentials invalid")
	ErrRegistrationInvalidInput     = errors.New("registration invalid input")
	ErrRegistrationPasswordMismatch = errors.New("registration password mismatch")
)

const maxFullNameLength = 100

type RegistrationInput struct {
	FullName        string
	Email           string
	Password        string
	ConfirmPassword string
}

func NormalizeAuthEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ""
	}
	return email
}

func NormalizeCredentialsInput(emailRaw string, passwordRaw string) (string, string, error) {
	email := NormalizeAuthEmail(emailRaw)
	password := strings.TrimSpace(passwordRaw)
	if email == "" || password == "" {
		return "", "", ErrAuthCredentialsInvalid
	}
	return email, password, nil
}

func NormalizeFullName(raw string) (string, bool) {
	name := strings.Join(strings.Fields(raw), " ")
	if name == "" || len([]rune(name)) > maxFullNameLength {
		return "", false
	}
	return name, true
}

// NormalizeRegistrationInput returns the cleaned input or the first rule it breaks.
func NormalizeRegistrationInput(input RegistrationInput) (RegistrationInput, error) {
	fullName, ok := NormalizeFullName(input.FullName)
	if !ok {
		return RegistrationInput{}, ErrRegistrationInvalidInput
	}
	email, password, err := NormalizeCredentialsInput(input.Email, input.Password)
	if err != nil {
		return RegistrationInput{}, ErrRegistrationInvalidInput
	}
	if password != strings.TrimSpace(input.ConfirmPassword) {
		return RegistrationInput{}, ErrRegistrationPasswordMismatch
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return RegistrationInput{}, err
	}

	return RegistrationInput{
		FullName:        fullName,
		Email:           email,
		Password:        password,
		ConfirmPassword: password,
	}, nil
}
