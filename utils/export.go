package utils

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/marco-valdez/la-comanda-api/services"
)

// WriteReportCSV renders a sales report as CSV: a summary block, the
// top-selling items and the per-server breakdown, separated by blank rows.
func WriteReportCSV(w io.Writer, report *services.SalesReport) error {
	cw := csv.NewWriter(w)

	rows := [][]string{
		{"from", "to", "orders", "cancelled", "revenue", "average_ticket"},
		{
			report.From.Format("2006-01-02"),
			report.To.Format("2006-01-02"),
			fmt.Sprintf("%d", report.OrderCount),
			fmt.Sprintf("%d", report.CancelledCount),
			fmt.Sprintf("%.2f", report.Revenue),
			fmt.Sprintf("%.2f", report.AverageTicket),
		},
		{},
		{"top_items"},
		{"menu_item_id", "name", "quantity", "revenue"},
	}
	for _, item := range report.TopItems {
		rows = append(rows, []string{
			fmt.Sprintf("%d", item.MenuItemID),
			item.Name,
			fmt.Sprintf("%d", item.Quantity),
			fmt.Sprintf("%.2f", item.Revenue),
		})
	}

	rows = append(rows,
		[]string{},
		[]string{"server_performance"},
		[]string{"staff_id", "display_name", "order_count", "revenue", "average_ticket"},
	)
	for _, server := range report.ServerPerformance {
		rows = append(rows, []string{
			fmt.Sprintf("%d", server.StaffID),
			server.DisplayName,
			fmt.Sprintf("%d", server.OrderCount),
			fmt.Sprintf("%.2f", server.Revenue),
			fmt.Sprintf("%.2f", server.AverageTicket),
		})
	}

	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
