package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/marco-valdez/la-comanda-api/config"
	"github.com/marco-valdez/la-comanda-api/models"
	"github.com/marco-valdez/la-comanda-api/services"
)

// CreateTableRequest represents the request body for registering a table
type CreateTableRequest struct {
	Number   int    `json:"number" binding:"required,gt=0"`
	Capacity int    `json:"capacity" binding:"required,gt=0"`
	Location string `json:"location"`
}

// UpdateTableRequest represents the request body for editing a table
type UpdateTableRequest struct {
	Number   *int   `json:"number" binding:"omitempty,gt=0"`
	Capacity *int   `json:"capacity" binding:"omitempty,gt=0"`
	Location string `json:"location"`
}

// SetTableStateRequest represents the request body for a direct occupancy
// override by staff
type SetTableStateRequest struct {
	State string `json:"state" binding:"required"`
}

// CreateTable handles POST /api/v1/tables (admin only). Rejects a number
// already used by another active table.
func CreateTable(c *gin.Context) {
	var req CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()

	var existing int64
	if err := db.Model(&models.Table{}).Where("number = ? AND active = ?", req.Number, true).Count(&existing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to check table number",
			},
		})
		return
	}
	if existing > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TABLE_NUMBER_TAKEN",
				"message": "An active table with this number already exists",
			},
		})
		return
	}

	table := models.Table{
		Number:   req.Number,
		Capacity: req.Capacity,
		Location: req.Location,
		State:    models.TableAvailable,
		Active:   true,
	}

	if err := db.Create(&table).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create table",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    table,
	})
}

// ListTables handles GET /api/v1/tables - active tables with occupancy
func ListTables(c *gin.Context) {
	db := config.GetDB()
	query := db.Model(&models.Table{}).Where("active = ?", true)

	if state := c.Query("state"); state != "" {
		query = query.Where("state = ?", state)
	}

	var tables []models.Table
	if err := query.Order("number").Find(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tables,
	})
}

// GetTable handles GET /api/v1/tables/:id
func GetTable(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid table id",
			},
		})
		return
	}

	db := config.GetDB()
	var table models.Table
	if err := db.Where("active = ?", true).First(&table, uint(id)).Error; err != nil {
		handleServiceError(c, &services.NotFoundError{Resource: "table", ID: uint(id)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    table,
	})
}

// UpdateTable handles PUT /api/v1/tables/:id (admin only). A rename to a
// number used by another active table is rejected.
func UpdateTable(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid table id",
			},
		})
		return
	}

	var req UpdateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	var table models.Table
	if err := db.Where("active = ?", true).First(&table, uint(id)).Error; err != nil {
		handleServiceError(c, &services.NotFoundError{Resource: "table", ID: uint(id)})
		return
	}

	if req.Number != nil && *req.Number != table.Number {
		var existing int64
		err := db.Model(&models.Table{}).
			Where("number = ? AND active = ? AND id <> ?", *req.Number, true, table.ID).
			Count(&existing).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to check table number",
				},
			})
			return
		}
		if existing > 0 {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "TABLE_NUMBER_TAKEN",
					"message": "An active table with this number already exists",
				},
			})
			return
		}
		table.Number = *req.Number
	}
	if req.Capacity != nil {
		table.Capacity = *req.Capacity
	}
	if req.Location != "" {
		table.Location = req.Location
	}

	if err := db.Save(&table).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update table",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    table,
	})
}

// SetTableState handles PUT /api/v1/tables/:id/state - a direct occupancy
// override by staff, validated against the state enum
func SetTableState(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid table id",
			},
		})
		return
	}

	var req SetTableStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "State is required",
				"details": err.Error(),
			},
		})
		return
	}

	if !models.ValidTableState(req.State) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATE",
				"message": "State must be available, occupied or reserved",
			},
		})
		return
	}

	db := config.GetDB()
	var table models.Table
	if err := db.Where("active = ?", true).First(&table, uint(id)).Error; err != nil {
		handleServiceError(c, &services.NotFoundError{Resource: "table", ID: uint(id)})
		return
	}

	if err := db.Model(&table).Update("state", req.State).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update table state",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    table,
	})
}

// DeleteTable handles DELETE /api/v1/tables/:id (admin only). Blocked
// while any order, active or historical, references the table.
func DeleteTable(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid table id",
			},
		})
		return
	}

	db := config.GetDB()
	var table models.Table
	if err := db.Where("active = ?", true).First(&table, uint(id)).Error; err != nil {
		handleServiceError(c, &services.NotFoundError{Resource: "table", ID: uint(id)})
		return
	}

	var references int64
	if err := db.Model(&models.Order{}).Where("table_id = ?", table.ID).Count(&references).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to check order history",
			},
		})
		return
	}
	if references > 0 {
		handleServiceError(c, &services.IntegrityError{
			Message: "Table has order history and cannot be deleted",
		})
		return
	}

	if err := db.Model(&table).Update("active", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete table",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"message": "Table deleted",
		},
	})
}
