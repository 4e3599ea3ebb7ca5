package cli

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/vitalog/internal/models"
	"github.com/terraincognita07/vitalog/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type stubUserStore struct {
	users     map[string]models.User
	findErr   error
	updateErr error
	updated   map[uint]string
}

func newStubUserStore(users ...models.User) *stubUserStore {
	store := &stubUserStore{
		users:   make(map[string]models.User, len(users)),
		updated: make(map[uint]string),
	}
	for _, user := range users {
		store.users[user.Email] = user
	}
	return store
}

func (store *stubUserStore) FindByNormalizedEmail(_ context.Context, email string) (models.User, error) {
	if store.findErr != nil {
		return models.User{}, store.findErr
	}
	user, ok := store.users[email]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (store *stubUserStore) UpdatePasswordHash(_ context.Context, userID uint, passwordHash string) error {
	if store.updateErr != nil {
		return store.updateErr
	}
	store.updated[userID] = passwordHash
	return nil
}

var temporaryPasswordLine = regexp.MustCompile(`Temporary password: (\S+)`)

func TestRunResetPasswordCommandStoresTemporaryPassword(t *testing.T) {
	t.Parallel()

	store := newStubUserStore(models.User{ID: 7, Email: "ann@example.com"})
	var out bytes.Buffer

	err := RunResetPasswordCommand(context.Background(), store, "  Ann@Example.com ", &out)
	require.NoError(t, err)

	matches := temporaryPasswordLine.FindStringSubmatch(out.String())
	require.Len(t, matches, 2, "output: %s", out.String())
	password := matches[1]
	assert.Len(t, password, temporaryPasswordLength)
	assert.NoError(t, services.ValidatePasswordStrength(password))

	hash, ok := store.updated[7]
	require.True(t, ok)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)))
}

func TestRunResetPasswordCommandErrors(t *testing.T) {
	t.Parallel()

	t.Run("invalid email", func(t *testing.T) {
		err := RunResetPasswordCommand(context.Background(), newStubUserStore(), "not-an-email", &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid email address")
	})

	t.Run("unknown user", func(t *testing.T) {
		err := RunResetPasswordCommand(context.Background(), newStubUserStore(), "ghost@example.com", &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "user ghost@example.com not found")
	})

	t.Run("lookup failure", func(t *testing.T) {
		store := newStubUserStore()
		store.findErr = errors.New("disk I/O error")
		err := RunResetPasswordCommand(context.Background(), store, "ann@example.com", &bytes.Buffer{})
		require.Error(t, err)
		assert.ErrorIs(t, err, store.findErr)
	})

	t.Run("update failure", func(t *testing.T) {
		store := newStubUserStore(models.User{ID: 1, Email: "ann@example.com"})
		store.updateErr = errors.New("database is locked")
		var out bytes.Buffer
		err := RunResetPasswordCommand(context.Background(), store, "ann@example.com", &out)
		require.Error(t, err)
		assert.ErrorIs(t, err, store.updateErr)
		assert.NotContains(t, out.String(), "Temporary password")
	})
}
