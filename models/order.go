package models

import (
	"time"
)

// Order statuses. pending is the initial status; delivered and cancelled
// are terminal and release the attached table.
const (
	StatusPending   = "pending"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// Order represents a customer's placed order with its lifecycle status
type Order struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	CustomerName  string     `gorm:"not null" json:"customer_name"`
	CustomerPhone string     `json:"customer_phone"`
	TableID       *uint      `gorm:"index" json:"table_id"` // nullable, take-away orders have no table
	Table         *Table     `gorm:"foreignKey:TableID" json:"table,omitempty"`
	Status        string     `gorm:"not null;default:'pending'" json:"status"`
	Total         float64    `gorm:"not null;default:0" json:"total"` // derived, always equals the sum of line subtotals
	Notes         string     `gorm:"type:text" json:"notes"`
	TakenByID     uint       `gorm:"not null;index" json:"taken_by_id"` // staff member who took the order
	TakenBy       Staff      `gorm:"foreignKey:TakenByID" json:"taken_by"`
	PreparedByID  *uint      `gorm:"index" json:"prepared_by_id"` // nullable, first cook to start preparing
	PreparedBy    *Staff     `gorm:"foreignKey:PreparedByID" json:"prepared_by,omitempty"`
	LineItems     []LineItem `gorm:"foreignKey:OrderID" json:"line_items"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// ValidOrderStatus reports whether s is one of the five recognized statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// TerminalStatus reports whether s ends the order lifecycle.
func TerminalStatus(s string) bool {
	return s == StatusDelivered || s == StatusCancelled
}
