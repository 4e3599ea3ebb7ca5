package models

import "time"

// Goal is a free-form (type, target, period) goal. A user may hold any number
// of them, including duplicates. Type and Period are stored as raw strings so
// that a row with an unknown value still loads.
type Goal struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"not null;index"`
	Type        string    `gorm:"not null"`
	TargetValue float64   `gorm:"not null"`
	Period      string    `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}
