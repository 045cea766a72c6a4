package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/marco-valdez/la-comanda-api/models"
)

// ItemSales is one row of the top-selling-items ranking.
type ItemSales struct {
	MenuItemID uint    `json:"menu_item_id"`
	Name       string  `json:"name"`
	Quantity   int64   `json:"quantity"`
	Revenue    float64 `json:"revenue"`
}

// ServerSales is one row of the per-server performance breakdown.
type ServerSales struct {
	StaffID       uint    `json:"staff_id"`
	DisplayName   string  `json:"display_name"`
	OrderCount    int64   `json:"order_count"`
	Revenue       float64 `json:"revenue"`
	AverageTicket float64 `json:"average_ticket"`
}

// SalesReport aggregates order data over a date range. Cancelled orders
// are counted but excluded from revenue figures.
type SalesReport struct {
	From              time.Time     `json:"from"`
	To                time.Time     `json:"to"`
	OrderCount        int64         `json:"order_count"`
	CancelledCount    int64         `json:"cancelled_count"`
	Revenue           float64       `json:"revenue"`
	AverageTicket     float64       `json:"average_ticket"`
	TopItems          []ItemSales   `json:"top_items"`
	ServerPerformance []ServerSales `json:"server_performance"`
}

// topItemsLimit bounds the top-selling ranking.
const topItemsLimit = 5

// BuildSalesReport computes the aggregate figures for orders created in
// [from, to). Pure aggregation: every figure equals a direct recomputation
// over the same date-filtered order set.
func BuildSalesReport(db *gorm.DB, from, to time.Time) (*SalesReport, error) {
	report := &SalesReport{From: from, To: to}

	inRange := func(q *gorm.DB) *gorm.DB {
		return q.Where("orders.created_at >= ? AND orders.created_at < ?", from, to)
	}

	err := inRange(db.Model(&models.Order{})).Count(&report.OrderCount).Error
	if err != nil {
		return nil, err
	}

	err = inRange(db.Model(&models.Order{})).
		Where("status = ?", models.StatusCancelled).
		Count(&report.CancelledCount).Error
	if err != nil {
		return nil, err
	}

	err = inRange(db.Model(&models.Order{})).
		Where("status <> ?", models.StatusCancelled).
		Select("COALESCE(SUM(total), 0)").
		Scan(&report.Revenue).Error
	if err != nil {
		return nil, err
	}

	billable := report.OrderCount - report.CancelledCount
	if billable > 0 {
		report.AverageTicket = report.Revenue / float64(billable)
	}

	err = inRange(db.Model(&models.LineItem{}).
		Joins("JOIN orders ON orders.id = line_items.order_id").
		Joins("JOIN menu_items ON menu_items.id = line_items.menu_item_id")).
		Where("orders.status <> ?", models.StatusCancelled).
		Select("line_items.menu_item_id AS menu_item_id, menu_items.name AS name, SUM(line_items.quantity) AS quantity, SUM(line_items.subtotal) AS revenue").
		Group("line_items.menu_item_id, menu_items.name").
		Order("quantity DESC").
		Limit(topItemsLimit).
		Scan(&report.TopItems).Error
	if err != nil {
		return nil, err
	}

	err = inRange(db.Model(&models.Order{}).
		Joins("JOIN staff ON staff.id = orders.taken_by_id")).
		Where("orders.status <> ?", models.StatusCancelled).
		Select("orders.taken_by_id AS staff_id, staff.display_name AS display_name, COUNT(orders.id) AS order_count, COALESCE(SUM(orders.total), 0) AS revenue, COALESCE(AVG(orders.total), 0) AS average_ticket").
		Group("orders.taken_by_id, staff.display_name").
		Order("revenue DESC").
		Scan(&report.ServerPerformance).Error
	if err != nil {
		return nil, err
	}

	return report, nil
}

// statusCount is a scan target for the per-status breakdown.
type statusCount struct {
	Status string
	Count  int64
}

// OrderStatusCounts returns the number of orders per status.
func OrderStatusCounts(db *gorm.DB) (map[string]int64, error) {
	var rows []statusCount
	err := db.Model(&models.Order{}).
		Select("status, COUNT(id) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// DashboardStats is the landing-page summary.
type DashboardStats struct {
	TotalOrders    int64          `json:"total_orders"`
	TotalMenuItems int64          `json:"total_menu_items"`
	RecentOrders   []models.Order `json:"recent_orders"`
}

// BuildDashboardStats computes overall totals plus the five most recent
// orders.
func BuildDashboardStats(db *gorm.DB) (*DashboardStats, error) {
	stats := &DashboardStats{}

	if err := db.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.MenuItem{}).Count(&stats.TotalMenuItems).Error; err != nil {
		return nil, err
	}

	err := db.Preload("Table").Preload("TakenBy").
		Order("created_at DESC").
		Limit(5).
		Find(&stats.RecentOrders).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}
