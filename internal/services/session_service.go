package services

import (
	"context"
	"time"
)

type RevokedTokenRepository interface {
	Revoke(ctx context.Context, jti string, userID uint, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// SessionService tracks bearer tokens that were logged out before expiry.
type SessionService struct {
	tokens RevokedTokenRepository
}

func NewSessionService(tokens RevokedTokenRepository) *SessionService {
	return &SessionService{tokens: tokens}
}

func (service *SessionService) Revoke(ctx context.Context, jti string, userID uint, expiresAt time.Time) error {
	return storageError("revoke token", service.tokens.Revoke(ctx, jti, userID, expiresAt))
}

func (service *SessionService) IsRevoked(ctx context.Context, jti string) (bool, error) {
	revoked, err := service.tokens.IsRevoked(ctx, jti)
	if err != nil {
		return false, storageError("check token revocation", err)
	}
	return revoked, nil
}

func (service *SessionService) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	purged, err := service.tokens.PurgeExpired(ctx, now)
	if err != nil {
		return 0, storageError("purge revoked tokens", err)
	}
	return purged, nil
}
