package models

import (
	"time"
)

// Settings is a singleton row holding canteen-wide presentation settings.
type Settings struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CanteenName string    `json:"canteenName" gorm:"not null;default:'Green University Canteen'"`
	LogoURL     string    `json:"logoUrl"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
