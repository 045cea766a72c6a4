package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marco-valdez/la-comanda-api/config"
	"github.com/marco-valdez/la-comanda-api/models"
	"github.com/marco-valdez/la-comanda-api/services"
)

// LoginRequest represents the request body for staff login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/v1/auth/login - verifies credentials and issues
// a session token
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Username and password are required",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	var staff models.Staff
	if err := db.Where("username = ? AND active = ?", req.Username, true).First(&staff).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_CREDENTIALS",
				"message": "Username or password is incorrect",
			},
		})
		return
	}

	if !services.VerifyPassword(req.Password, staff.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_CREDENTIALS",
				"message": "Username or password is incorrect",
			},
		})
		return
	}

	tokens := services.NewTokenService(config.GetConfig())
	token, err := tokens.Generate(&staff)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TOKEN_ERROR",
				"message": "Failed to issue session token",
			},
		})
		return
	}

	now := time.Now()
	staff.LastLoginAt = &now
	if err := db.Model(&staff).Update("last_login_at", now).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to record login",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"token": token,
			"staff": staff,
		},
	})
}
