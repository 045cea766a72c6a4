package models

import (
	"time"
)

// Table occupancy states. A table is released back to available only when
// an order holding it is delivered, cancelled or deleted, or when staff
// override the state directly.
const (
	TableAvailable = "available"
	TableOccupied  = "occupied"
	TableReserved  = "reserved"
)

// Table represents a physical table in the dining room
type Table struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Number    int       `gorm:"not null;index" json:"number"` // unique among active tables, enforced in the registry
	Capacity  int       `gorm:"not null;check:capacity > 0" json:"capacity"`
	Location  string    `json:"location"` // e.g. "terraza", "salón principal"
	State     string    `gorm:"not null;default:'available'" json:"state"`
	Active    bool      `gorm:"not null;default:true" json:"active"` // soft delete
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Table model
func (Table) TableName() string {
	return "tables"
}

// ValidTableState reports whether s is a recognized occupancy state.
func ValidTableState(s string) bool {
	switch s {
	case TableAvailable, TableOccupied, TableReserved:
		return true
	}
	return false
}
