package models

import (
	"time"
)

// LineItem represents one menu-item-and-quantity entry within an order.
// UnitPrice is captured when the order is created and does not follow
// later catalog price changes.
type LineItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `gorm:"not null;index" json:"order_id"`
	MenuItemID uint      `gorm:"not null;index" json:"menu_item_id"`
	MenuItem   MenuItem  `gorm:"foreignKey:MenuItemID" json:"menu_item"`
	Quantity   int       `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice  float64   `gorm:"not null" json:"unit_price"`
	Subtotal   float64   `gorm:"not null" json:"subtotal"` // quantity * unit_price
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName specifies the table name for the LineItem model
func (LineItem) TableName() string {
	return "line_items"
}
