package testutil

import (
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/marco-valdez/la-comanda-api/config"
	"github.com/marco-valdez/la-comanda-api/models"
	"github.com/marco-valdez/la-comanda-api/services"
)

// ActorMiddleware stores an actor in the Gin context exactly as the real
// RequireAuth middleware does after validating a token.
func ActorMiddleware(actor services.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("actor", actor)
		c.Next()
	}
}

// CreateStaffAccount persists a staff row with a real password hash and
// returns it, for login-based tests.
func CreateStaffAccount(t *testing.T, db *gorm.DB, username, password, role string) models.Staff {
	t.Helper()

	hash, err := services.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	staff := models.Staff{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		DisplayName:  username,
		Role:         role,
		Active:       true,
	}
	if err := db.Create(&staff).Error; err != nil {
		t.Fatalf("Failed to create staff account: %v", err)
	}
	return staff
}

// IssueToken signs a real session token for the given staff account.
func IssueToken(t *testing.T, cfg *config.Config, staff *models.Staff) string {
	t.Helper()

	token, err := services.NewTokenService(cfg).Generate(staff)
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return token
}
