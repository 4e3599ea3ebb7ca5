package services

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalizeAuthEmail(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "normalizes case and spaces", raw: " USER@EXAMPLE.COM ", want: "user@example.com"},
		{name: "invalid email returns empty", raw: "not-email", want: ""},
		{name: "empty returns empty", raw: "   ", want: ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			if got := NormalizeAuthEmail(testCase.raw); got != testCase.want {
				t.Fatalf("NormalizeAuthEmail(%q) = %q, want %q", testCase.raw, got, testCase.want)
			}
		})
	}
}

func TestNormalizeCredentialsInput(t *testing.T) {
	email, password, err := NormalizeCredentialsInput(" USER@EXAMPLE.COM ", "  StrongPass1  ")
	if err != nil {
		t.Fatalf("expected valid credentials input, got %v", err)
	}
	if email != "user@example.com" || password != "StrongPass1" {
		t.Fatalf("unexpected normalized credentials %q / %q", email, password)
	}

	for _, raw := range [][2]string{{"not-email", "StrongPass1"}, {"user@example.com", " "}} {
		if _, _, err := NormalizeCredentialsInput(raw[0], raw[1]); !errors.Is(err, ErrAuthCredentialsInvalid) {
			t.Fatalf("NormalizeCredentialsInput(%q, %q) error = %v, want ErrAuthCredentialsInvalid", raw[0], raw[1], err)
		}
	}
}

func TestNormalizeFullName(t *testing.T) {
	name, ok := NormalizeFullName("  Ann   Lee ")
	if !ok || name != "Ann Lee" {
		t.Fatalf("NormalizeFullName collapsed to %q (ok=%v), want %q", name, ok, "Ann Lee")
	}
	if _, ok := NormalizeFullName("   "); ok {
		t.Fatal("expected blank name to be rejected")
	}
	if _, ok := NormalizeFullName(strings.Repeat("a", maxFullNameLength+1)); ok {
		t.Fatal("expected overlong name to be rejected")
	}
}

func TestNormalizeRegistrationInput(t *testing.T) {
	valid := RegistrationInput{
		FullName:        " Ann Lee ",
		Email:           "ANN@example.com",
		Password:        "StrongPass1",
		ConfirmPassword: "StrongPass1",
	}

	normalized, err := NormalizeRegistrationInput(valid)
	if err != nil {
		t.Fatalf("expected valid registration, got %v", err)
	}
	if normalized.Email != "ann@example.com" || normalized.FullName != "Ann Lee" {
		t.Fatalf("unexpected normalized input %+v", normalized)
	}

	mismatch := valid
	mismatch.ConfirmPassword = "StrongPass2"
	if _, err := NormalizeRegistrationInput(mismatch); !errors.Is(err, ErrRegistrationPasswordMismatch) {
		t.Fatalf("expected ErrRegistrationPasswordMismatch, got %v", err)
	}

	weak := valid
	weak.Password, weak.ConfirmPassword = "weakpass", "weakpass"
	if _, err := NormalizeRegistrationInput(weak); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}

	missingName := valid
	missingName.FullName = ""
	if _, err := NormalizeRegistrationInput(missingName); !errors.Is(err, ErrRegistrationInvalidInput) {
		t.Fatalf("expected ErrRegistrationInvalidInput, got %v", err)
	}
}
