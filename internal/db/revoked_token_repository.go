package db

import (
	"context"
	"time"

	"github.com/terraincognita07/vitalog/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RevokedTokenRepository struct {
	database *gorm.DB
}

func NewRevokedTokenRepository(database *gorm.DB) *RevokedTokenRepository {
	return &RevokedTokenRepository{database: database}
}

// Revoke is idempotent: revoking the same jti twice keeps a single row.
func (repo *RevokedTokenRepository) Revoke(ctx context.Context, jti string, userID uint, expiresAt time.Time) error {
	token := models.RevokedToken{JTI: jti, UserID: userID, ExpiresAt: expiresAt.UTC().Truncate(time.Second)}
	return repo.database.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&token).Error
}

func (repo *RevokedTokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var matched int64
	if err := repo.database.WithContext(ctx).Model(&models.RevokedToken{}).
		Where("jti = ?", jti).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

// PurgeExpired drops revocations for tokens that can no longer be presented.
// Both sides are truncated to seconds so the stored text compares in order.
func (repo *RevokedTokenRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	result := repo.database.WithContext(ctx).
		Where("expires_at <= ?", now.UTC().Truncate(time.Second)).
		Delete(&models.RevokedToken{})
	return result.RowsAffected, result.Error
}
