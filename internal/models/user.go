package models

import (
	"time"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"unique;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         string    `json:"role" gorm:"not null"` // student, faculty, others, kitchen, admin
	Name         string    `json:"name" gorm:"not null"`
	StudentID    string    `json:"studentId,omitempty"` // required for student role only
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleFaculty UserRole = "faculty"
	RoleOthers  UserRole = "others"
	RoleKitchen UserRole = "kitchen"
	RoleAdmin   UserRole = "admin"
)

// IsStaff reports whether the role may view all orders and drive status transitions.
func IsStaff(role string) bool {
	return role == string(RoleKitchen) || role == string(RoleAdmin)
}

// ValidRole reports whether role is one of the known user roles.
func ValidRole(role string) bool {
	switch UserRole(role) {
	case RoleStudent, RoleFaculty, RoleOthers, RoleKitchen, RoleAdmin:
		return true
	}
	return false
}
