package models

import (
	"time"
)

// Staff roles
const (
	RoleAdmin  = "admin"
	RoleServer = "server"
	RoleCook   = "cook"
)

// Staff represents a staff account (admin, server or cook)
type Staff struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	DisplayName  string     `gorm:"not null" json:"display_name"`
	Role         string     `gorm:"not null;default:'server'" json:"role"`
	Active       bool       `gorm:"not null;default:true" json:"active"` // soft delete
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName specifies the table name for the Staff model
func (Staff) TableName() string {
	return "staff"
}

// ValidRole reports whether r is a recognized staff role.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleServer, RoleCook:
		return true
	}
	return false
}
