package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/marco-valdez/la-comanda-api/config"
	"github.com/marco-valdez/la-comanda-api/middleware"
	"github.com/marco-valdez/la-comanda-api/models"
	"github.com/marco-valdez/la-comanda-api/services"
)

// CreateStaffRequest represents the request body for creating a staff account
type CreateStaffRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name" binding:"required"`
	Role        string `json:"role" binding:"required"`
}

// UpdateStaffRequest represents the request body for updating a staff account
type UpdateStaffRequest struct {
	Email       string `json:"email" binding:"omitempty,email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	Active      *bool  `json:"active"`
}

// CreateStaff handles POST /api/v1/staff - creates a staff account (admin only)
func CreateStaff(c *gin.Context) {
	var req CreateStaffRequest
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

	if !models.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Role must be admin, server or cook",
			},
		})
		return
	}

	hash, err := services.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "HASH_ERROR",
				"message": "Failed to hash password",
			},
		})
		return
	}

	staff := models.Staff{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		DisplayName:  req.DisplayName,
		Role:         req.Role,
		Active:       true,
	}

	db := config.GetDB()
	if err := db.Create(&staff).Error; err != nil {
		// Check for duplicate username or email (works with both PostgreSQL and SQLite)
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "duplicate") ||
			strings.Contains(errMsg, "unique constraint") ||
			strings.Contains(errMsg, "unique") {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "STAFF_EXISTS",
					"message": "A staff account with this username or email already exists",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create staff account",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    staff,
	})
}

// ListStaff handles GET /api/v1/staff - lists staff accounts (admin only)
func ListStaff(c *gin.Context) {
	db := config.GetDB()
	query := db.Model(&models.Staff{})

	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if c.Query("active") != "" {
		query = query.Where("active = ?", c.Query("active") == "true")
	}

	var staff []models.Staff
	if err := query.Order("username").Find(&staff).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list staff accounts",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    staff,
	})
}

// GetStaff handles GET /api/v1/staff/:id (admin only)
func GetStaff(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid staff id",
			},
		})
		return
	}

	db := config.GetDB()
	var staff models.Staff
	if err := db.First(&staff, uint(id)).Error; err != nil {
		handleServiceError(c, &services.NotFoundError{Resource: "staff account", ID: uint(id)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    staff,
	})
}

// UpdateStaff handles PUT /api/v1/staff/:id (admin only)
func UpdateStaff(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid staff id",
			},
		})
		return
	}

	var req UpdateStaffRequest
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

	if req.Role != "" && !models.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Role must be admin, server or cook",
			},
		})
		return
	}

	db := config.GetDB()
	var staff models.Staff
	if err := db.First(&staff, uint(id)).Error; err != nil {
		handleServiceError(c, &services.NotFoundError{Resource: "staff account", ID: uint(id)})
		return
	}

	if req.Email != "" {
		staff.Email = req.Email
	}
	if req.DisplayName != "" {
		staff.DisplayName = req.DisplayName
	}
	if req.Role != "" {
		staff.Role = req.Role
	}
	if req.Active != nil {
		staff.Active = *req.Active
	}

	if err := db.Save(&staff).Error; err != nil {
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "unique") || strings.Contains(errMsg, "duplicate") {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "STAFF_EXISTS",
					"message": "A staff account with this email already exists",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update staff account",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    staff,
	})
}

// DeleteStaff handles DELETE /api/v1/staff/:id - deactivates a staff
// account (admin only). Blocked for the requesting admin themselves and
// for accounts that own orders as taker or preparer.
func DeleteStaff(c *gin.Context) {
	actor, err := middleware.GetActor(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract actor information",
			},
		})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid staff id",
			},
		})
		return
	}

	if uint(id) == actor.ID {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTEGRITY_VIOLATION",
				"message": "You cannot delete your own account",
			},
		})
		return
	}

	db := config.GetDB()
	var staff models.Staff
	if err := db.First(&staff, uint(id)).Error; err != nil {
		handleServiceError(c, &services.NotFoundError{Resource: "staff account", ID: uint(id)})
		return
	}

	var owned int64
	err = db.Model(&models.Order{}).
		Where("taken_by_id = ? OR prepared_by_id = ?", staff.ID, staff.ID).
		Count(&owned).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to check order ownership",
			},
		})
		return
	}
	if owned > 0 {
		handleServiceError(c, &services.IntegrityError{
			Message: "Staff account owns orders as taker or preparer; deactivate it instead",
		})
		return
	}

	if err := db.Model(&staff).Update("active", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete staff account",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"message": "Staff account deactivated",
		},
	})
}
