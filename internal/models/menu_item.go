package models

import (
	"time"
)

type MenuItem struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Name            string    `json:"name" gorm:"not null"`
	Description     string    `json:"description" gorm:"type:text;not null"`
	Price           float64   `json:"price" gorm:"not null"`
	Category        string    `json:"category" gorm:"not null"` // Main Course, Snacks, Dessert, Drinks
	ImageURL        string    `json:"imageUrl"`
	IsSpecial       bool      `json:"isSpecial" gorm:"default:false"`
	StockQuantity   int       `json:"stockQuantity" gorm:"not null;default:0"`
	DiscountPercent float64   `json:"discountPercent" gorm:"default:0"` // 0-100
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type MenuCategory string

const (
	CategoryMainCourse MenuCategory = "Main Course"
	CategorySnacks     MenuCategory = "Snacks"
	CategoryDessert    MenuCategory = "Dessert"
	CategoryDrinks     MenuCategory = "Drinks"
)

// ValidCategory reports whether category is one of the fixed menu categories.
func ValidCategory(category string) bool {
	switch MenuCategory(category) {
	case CategoryMainCourse, CategorySnacks, CategoryDessert, CategoryDrinks:
		return true
	}
	return false
}

// DiscountedPrice returns the unit price after applying the item's discount.
func (m *MenuItem) DiscountedPrice() float64 {
	return m.Price - m.Price*m.DiscountPercent/100
}
