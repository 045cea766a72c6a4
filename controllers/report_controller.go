package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marco-valdez/la-comanda-api/config"
	"github.com/marco-valdez/la-comanda-api/services"
	"github.com/marco-valdez/la-comanda-api/utils"
)

const reportDateLayout = "2006-01-02"

// parseReportRange reads the from/to query parameters. Both are inclusive
// dates; the default range is the last 30 days.
func parseReportRange(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if s := c.Query("from"); s != "" {
		parsed, err := time.Parse(reportDateLayout, s)
		if err != nil {
			return from, to, fmt.Errorf("invalid 'from' date, expected YYYY-MM-DD")
		}
		from = parsed
	}
	if s := c.Query("to"); s != "" {
		parsed, err := time.Parse(reportDateLayout, s)
		if err != nil {
			return from, to, fmt.Errorf("invalid 'to' date, expected YYYY-MM-DD")
		}
		// Inclusive end date: the range covers the whole day.
		to = parsed.AddDate(0, 0, 1)
	}

	if !from.Before(to) {
		return from, to, fmt.Errorf("'from' must be before 'to'")
	}
	return from, to, nil
}

// GetSalesReport handles GET /api/v1/reports/sales (admin only)
func GetSalesReport(c *gin.Context) {
	from, to, err := parseReportRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	report, err := services.BuildSalesReport(config.GetDB(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to build sales report",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    report,
	})
}

// ExportSalesReport handles GET /api/v1/reports/sales/export (admin only) -
// same figures as GetSalesReport, rendered as a CSV download
func ExportSalesReport(c *gin.Context) {
	from, to, err := parseReportRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	report, err := services.BuildSalesReport(config.GetDB(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to build sales report",
			},
		})
		return
	}

	filename := fmt.Sprintf("sales_%s_%s.csv",
		from.Format(reportDateLayout), to.Format(reportDateLayout))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	if err := utils.WriteReportCSV(c.Writer, report); err != nil {
		// Headers are already out; nothing useful left to send.
		c.Abort()
	}
}

// GetDashboard handles GET /api/v1/reports/dashboard - overall totals and
// recent orders for the landing screen
func GetDashboard(c *gin.Context) {
	stats, err := services.BuildDashboardStats(config.GetDB())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to build dashboard stats",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}
