package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/terraincognita07/vitalog/internal/models"
	"github.com/terraincognita07/vitalog/internal/security"
	"github.com/terraincognita07/vitalog/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const temporaryPasswordLength = 14

// UserStore is the slice of the user repository the operator commands need.
type UserStore interface {
	FindByNormalizedEmail(ctx context.Context, email string) (models.User, error)
	UpdatePasswordHash(ctx context.Context, userID uint, passwordHash string) error
}

// RunResetPasswordCommand replaces the password of the account registered
// under email with a random temporary one and prints it to out.
func RunResetPasswordCommand(ctx context.Context, users UserStore, email string, out io.Writer) error {
	user, err := lookupUser(ctx, users, email)
	if err != nil {
		return err
	}

	temporaryPassword, err := security.TemporaryPassword(temporaryPasswordLength)
	if err != nil {
		return fmt.Errorf("generate temporary password: %w", err)
	}
	if err := storePassword(ctx, users, user, temporaryPassword); err != nil {
		return err
	}

	fmt.Fprintf(out, "Password reset for %s\n", user.Email)
	fmt.Fprintf(out, "Temporary password: %s\n", temporaryPassword)
	fmt.Fprintln(out, "Ask the user to change it after signing in.")
	return nil
}

func lookupUser(ctx context.Context, users UserStore, email string) (models.User, error) {
	normalizedEmail := services.NormalizeAuthEmail(email)
	if normalizedEmail == "" {
		return models.User{}, fmt.Errorf("invalid email address %q", email)
	}

	user, err := users.FindByNormalizedEmail(ctx, normalizedEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, fmt.Errorf("user %s not found", normalizedEmail)
		}
		return models.User{}, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

func storePassword(ctx context.Context, users UserStore, user models.User, password string) error {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := users.UpdatePasswordHash(ctx, user.ID, string(passwordHash)); err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	return nil
}
