package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/terraincognita07/vitalog/internal/services"
)

// PasswordReader returns one line typed by the operator.
type PasswordReader func() ([]byte, error)

// TerminalPasswordReader reads from stdin with terminal echo turned off.
func TerminalPasswordReader(stdin *os.File) PasswordReader {
	return func() ([]byte, error) {
		return readPasswordNoEcho(stdin)
	}
}

var errPasswordConfirmationMismatch = errors.New("passwords do not match")

// RunSetPasswordCommand prompts twice for a new password, checks it against
// the password policy and stores it for the account registered under email.
func RunSetPasswordCommand(ctx context.Context, users UserStore, email string, read PasswordReader, out io.Writer) error {
	user, err := lookupUser(ctx, users, email)
	if err != nil {
		return err
	}

	fmt.Fprint(out, "New password: ")
	password, err := read()
	fmt.Fprintln(out)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	fmt.Fprint(out, "Repeat password: ")
	confirmation, err := read()
	fmt.Fprintln(out)
	if err != nil {
		return fmt.Errorf("read password confirmation: %w", err)
	}

	if string(password) != string(confirmation) {
		return errPasswordConfirmationMismatch
	}
	if err := services.ValidatePasswordStrength(string(password)); err != nil {
		return err
	}
	if err := storePassword(ctx, users, user, string(password)); err != nil {
		return err
	}

	fmt.Fprintf(out, "Password updated for %s\n", user.Email)
	return nil
}
