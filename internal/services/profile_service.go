package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/vitalog/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrProfileNameInvalid             = errors.New("profile name invalid")
	ErrPasswordChangeInvalidInput     = errors.New("password change invalid input")
	ErrPasswordChangeMismatch         = errors.New("password change mismatch")
	ErrPasswordChangeInvalidCurrent   = errors.New("password change invalid current password")
	ErrPasswordChangeNewMustDiffer    = errors.New("password change new password must differ")
	ErrAccountDeletePasswordMissing   = errors.New("account delete password missing")
	ErrAccountDeletePasswordIncorrect = errors.New("account delete password incorrect")
)

type ProfileUserRepository interface {
	FindByID(ctx context.Context, userID uint) (models.User, error)
	UpdateFullName(ctx context.Context, userID uint, fullName string) error
	UpdatePasswordHash(ctx context.Context, userID uint, passwordHash string) error
	DeleteAccountAndRelatedData(ctx context.Context, userID uint) error
}

type ProfileService struct {
	users ProfileUserRepository
}

func NewProfileService(users ProfileUserRepository) *ProfileService {
	return &ProfileService{users: users}
}

func (service *ProfileService) GetProfile(ctx context.Context, userID uint) (models.User, error) {
	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return models.User{}, storageError("load profile", err)
	}
	return user, nil
}

func (service *ProfileService) UpdateFullName(ctx context.Context, userID uint, rawName string) (string, error) {
	fullName, ok := NormalizeFullName(rawName)
	if !ok {
		return "", ErrProfileNameInvalid
	}
	if err := service.users.UpdateFullName(ctx, userID, fullName); err != nil {
		return "", storageError("update full name", err)
	}
	return fullName, nil
}

func ValidatePasswordChange(passwordHash string, currentPassword string, newPassword string, confirmPassword string) error {
	currentPassword = strings.TrimSpace(currentPassword)
	newPassword = strings.TrimSpace(newPassword)
	confirmPassword = strings.TrimSpace(confirmPassword)

	if currentPassword == "" || newPassword == "" || confirmPassword == "" {
		return ErrPasswordChangeInvalidInput
	}
	if newPassword != confirmPassword {
		return ErrPasswordChangeMismatch
	}
	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(currentPassword)) != nil {
		return ErrPasswordChangeInvalidCurrent
	}
	if currentPassword == newPassword {
		return ErrPasswordChangeNewMustDiffer
	}
	return ValidatePasswordStrength(newPassword)
}

func (service *ProfileService) ChangePassword(ctx context.Context, userID uint, currentPassword string, newPassword string, confirmPassword string) error {
	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return storageError("load user", err)
	}
	if err := ValidatePasswordChange(user.PasswordHash, currentPassword, newPassword, confirmPassword); err != nil {
		return err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(newPassword)), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return storageError("update password", service.users.UpdatePasswordHash(ctx, userID, string(passwordHash)))
}

// DeleteAccount removes the user and everything they own once the password
// has been confirmed.
func (service *ProfileService) DeleteAccount(ctx context.Context, userID uint, rawPassword string) error {
	password := strings.TrimSpace(rawPassword)
	if password == "" {
		return ErrAccountDeletePasswordMissing
	}

	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return storageError("load user", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return ErrAccountDeletePasswordIncorrect
	}
	return storageError("delete account", service.users.DeleteAccountAndRelatedData(ctx, userID))
}
