package models

import (
	"time"
)

type Order struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	UserID     uint        `json:"userId" gorm:"not null;index"`
	UserName   string      `json:"userName" gorm:"not null"` // snapshot at order time
	Items      []OrderItem `json:"items" gorm:"constraint:OnDelete:CASCADE"`
	TotalPrice float64     `json:"totalPrice" gorm:"not null"`
	Status     string      `json:"status" gorm:"not null;default:'Pending'"`
	OTP        string      `json:"otp,omitempty" gorm:"column:otp"` // 5-digit code, set while Ready for Pickup
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// OrderItem is a line item with name and unit price snapshotted at order time.
// Totals are never recomputed from current menu prices.
type OrderItem struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	OrderID    uint    `json:"order_id" gorm:"not null;index"`
	MenuItemID uint    `json:"menuItemId" gorm:"not null"`
	Name       string  `json:"name" gorm:"not null"`
	Price      float64 `json:"price" gorm:"not null"` // unit price after discount
	Quantity   int     `json:"quantity" gorm:"not null"`
}

type OrderStatus string

const (
	StatusPending        OrderStatus = "Pending"
	StatusPreparing      OrderStatus = "Preparing"
	StatusReadyForPickup OrderStatus = "Ready for Pickup"
	StatusCompleted      OrderStatus = "Completed"
)

// statusSequence is the only legal order of states; transitions move exactly
// one step forward and Completed is terminal.
var statusSequence = []OrderStatus{
	StatusPending,
	StatusPreparing,
	StatusReadyForPickup,
	StatusCompleted,
}

// NextStatus returns the status that legally follows from, and false when
// from is terminal or unknown.
func NextStatus(from string) (string, bool) {
	for i, s := range statusSequence {
		if string(s) == from && i+1 < len(statusSequence) {
			return string(statusSequence[i+1]), true
		}
	}
	return "", false
}

// ValidStatus reports whether status is one of the four order states.
func ValidStatus(status string) bool {
	for _, s := range statusSequence {
		if string(s) == status {
			return true
		}
	}
	return false
}
