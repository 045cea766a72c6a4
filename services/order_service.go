package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/marco-valdez/la-comanda-api/models"
)

// OrderItemInput is one requested line in a new order.
type OrderItemInput struct {
	MenuItemID uint   `json:"menu_item_id" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required"`
	Notes      string `json:"notes"`
}

// CreateOrderInput is the validated DTO the order engine consumes.
// TableNumber is the human handle for the table; it is resolved to the
// table id inside the creation transaction.
type CreateOrderInput struct {
	CustomerName  string           `json:"customer_name" binding:"required"`
	CustomerPhone string           `json:"customer_phone"`
	TableNumber   *int             `json:"table_number"`
	Notes         string           `json:"notes"`
	Items         []OrderItemInput `json:"items"`
}

// lockForUpdate adds a row lock so two concurrent order creations cannot
// both pass the occupancy check. SQLite rejects FOR UPDATE and runs
// single-writer anyway, so the clause is applied on postgres only.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// CreateOrder validates the input and persists a new pending order with
// its line items in one transaction. Unit prices are captured from the
// catalog at this moment and never follow later price edits. If a table
// number is given, the table must not be occupied and is marked occupied
// as part of the same transaction.
func CreateOrder(db *gorm.DB, input CreateOrderInput, actor Actor) (*models.Order, error) {
	if strings.TrimSpace(input.CustomerName) == "" {
		return nil, &ValidationError{Message: "customer name is required"}
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, &ValidationError{Message: "line item quantity must be greater than zero"}
		}
	}

	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var table *models.Table
		if input.TableNumber != nil {
			var t models.Table
			err := lockForUpdate(tx).
				Where("number = ? AND active = ?", *input.TableNumber, true).
				First(&t).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &ValidationError{Message: "referenced table does not exist"}
			}
			if err != nil {
				return err
			}
			if t.State == models.TableOccupied {
				return &TableConflictError{TableNumber: t.Number}
			}
			table = &t
		}

		order = models.Order{
			CustomerName:  strings.TrimSpace(input.CustomerName),
			CustomerPhone: input.CustomerPhone,
			Notes:         input.Notes,
			Status:        models.StatusPending,
			TakenByID:     actor.ID,
		}
		if table != nil {
			order.TableID = &table.ID
		}

		// The order must be persisted first so line items can reference
		// its id.
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		total := 0.0
		for _, item := range input.Items {
			var menuItem models.MenuItem
			err := tx.First(&menuItem, item.MenuItemID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &ValidationError{Message: "referenced menu item does not exist"}
			}
			if err != nil {
				return err
			}
			if !menuItem.Available {
				return &ValidationError{Message: "menu item \"" + menuItem.Name + "\" is not available"}
			}

			line := models.LineItem{
				OrderID:    order.ID,
				MenuItemID: menuItem.ID,
				Quantity:   item.Quantity,
				UnitPrice:  menuItem.Price,
				Subtotal:   float64(item.Quantity) * menuItem.Price,
				Notes:      item.Notes,
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
			total += line.Subtotal
		}

		if err := tx.Model(&order).Update("total", total).Error; err != nil {
			return err
		}

		if table != nil {
			if err := tx.Model(table).Update("state", models.TableOccupied).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return loadOrder(db, order.ID)
}

// UpdateOrderStatus moves an order to the given status. Any recognized
// target is accepted regardless of the current status, but two targets
// carry side effects, committed atomically with the status change:
//   - preparing, applied by a cook: the order's prepared-by is set to
//     that cook.
//   - delivered or cancelled: the attached table, if any, is released
//     back to available. This is the only path that frees a table short
//     of deleting the order or a direct staff override.
func UpdateOrderStatus(db *gorm.DB, orderID uint, status string, actor Actor) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, &InvalidStatusError{Status: status}
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		err := tx.First(&order, orderID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "order", ID: orderID}
		}
		if err != nil {
			return err
		}

		previous := order.Status
		order.Status = status
		if status == models.StatusPreparing && actor.Role == models.RoleCook {
			order.PreparedByID = &actor.ID
		}
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		// Release the table only on the first transition into a terminal
		// status. Repeating a terminal transition must not free a table
		// that may have been reseated since.
		if models.TerminalStatus(status) && !models.TerminalStatus(previous) && order.TableID != nil {
			err := tx.Model(&models.Table{}).
				Where("id = ?", *order.TableID).
				Update("state", models.TableAvailable).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	order, err := loadOrder(db, orderID)
	if err != nil {
		return nil, err
	}
	NotifyOrderStatus(order)
	return order, nil
}

// DeleteOrder removes an order and its line items. Line items have no
// existence outside their order, so the cascade is unconditional. A table
// still held by the order is released in the same transaction.
func DeleteOrder(db *gorm.DB, orderID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		err := tx.First(&order, orderID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "order", ID: orderID}
		}
		if err != nil {
			return err
		}

		if err := tx.Where("order_id = ?", order.ID).Delete(&models.LineItem{}).Error; err != nil {
			return err
		}

		// A terminal order released its table when it reached that
		// status; the table may have been reseated since, so only
		// orders still in flight free it here.
		if !models.TerminalStatus(order.Status) && order.TableID != nil {
			err := tx.Model(&models.Table{}).
				Where("id = ?", *order.TableID).
				Update("state", models.TableAvailable).Error
			if err != nil {
				return err
			}
		}

		return tx.Delete(&order).Error
	})
}

// RecalculateTotal re-derives the order total from its live line items
// and persists it. Used defensively whenever line items are mutated
// outside the create path.
func RecalculateTotal(db *gorm.DB, orderID uint) (*models.Order, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		err := tx.First(&order, orderID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "order", ID: orderID}
		}
		if err != nil {
			return err
		}

		var total float64
		err = tx.Model(&models.LineItem{}).
			Where("order_id = ?", order.ID).
			Select("COALESCE(SUM(subtotal), 0)").
			Scan(&total).Error
		if err != nil {
			return err
		}

		return tx.Model(&order).Update("total", total).Error
	})
	if err != nil {
		return nil, err
	}

	return loadOrder(db, orderID)
}

// GetOrder fetches a single order with its relationships.
func GetOrder(db *gorm.DB, orderID uint) (*models.Order, error) {
	return loadOrder(db, orderID)
}

// loadOrder fetches an order with its relationships for responses.
func loadOrder(db *gorm.DB, orderID uint) (*models.Order, error) {
	var order models.Order
	err := db.Preload("Table").
		Preload("TakenBy").
		Preload("PreparedBy").
		Preload("LineItems").
		Preload("LineItems.MenuItem").
		First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "order", ID: orderID}
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}
