package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/vitalog/internal/models"
	"github.com/terraincognita07/vitalog/internal/services"
	"golang.org/x/crypto/bcrypt"
)

func scriptedReader(lines ...string) PasswordReader {
	index := 0
	return func() ([]byte, error) {
		if index >= len(lines) {
			return nil, errors.New("no more input")
		}
		line := lines[index]
		index++
		return []byte(line), nil
	}
}

func TestRunSetPasswordCommandStoresPassword(t *testing.T) {
	t.Parallel()

	store := newStubUserStore(models.User{ID: 3, Email: "ann@example.com"})
	var out bytes.Buffer

	err := RunSetPasswordCommand(context.Background(), store, "ann@example.com", scriptedReader("Fresh1Pass", "Fresh1Pass"), &out)
	require.NoError(t, err)

	hash, ok := store.updated[3]
	require.True(t, ok)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("Fresh1Pass")))
	assert.Contains(t, out.String(), "Password updated for ann@example.com")
}

func TestRunSetPasswordCommandRejectsMismatch(t *testing.T) {
	t.Parallel()

	store := newStubUserStore(models.User{ID: 3, Email: "ann@example.com"})
	err := RunSetPasswordCommand(context.Background(), store, "ann@example.com", scriptedReader("Fresh1Pass", "Fresh2Pass"), &bytes.Buffer{})

	assert.ErrorIs(t, err, errPasswordConfirmationMismatch)
	assert.Empty(t, store.updated)
}

func TestRunSetPasswordCommandRejectsWeakPassword(t *testing.T) {
	t.Parallel()

	store := newStubUserStore(models.User{ID: 3, Email: "ann@example.com"})
	err := RunSetPasswordCommand(context.Background(), store, "ann@example.com", scriptedReader("password", "password"), &bytes.Buffer{})

	assert.ErrorIs(t, err, services.ErrWeakPassword)
	assert.Empty(t, store.updated)
}

func TestRunSetPasswordCommandReportsReadFailure(t *testing.T) {
	t.Parallel()

	store := newStubUserStore(models.User{ID: 3, Email: "ann@example.com"})
	err := RunSetPasswordCommand(context.Background(), store, "ann@example.com", scriptedReader(), &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read password")
}
