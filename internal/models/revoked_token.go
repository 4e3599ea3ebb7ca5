package models

import "time"

// RevokedToken blacklists a bearer token by its jti until it would have
// expired on its own.
type RevokedToken struct {
	JTI       string    `gorm:"column:jti;primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	ExpiresAt time.Time `gorm:"not null;index"`
}
