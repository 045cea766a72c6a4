package services

import (
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"

	"github.com/marco-valdez/la-comanda-api/config"
	"github.com/marco-valdez/la-comanda-api/models"
)

func testTokenService() *TokenService {
	return NewTokenService(&config.Config{
		JWTSecret:     "test-secret-do-not-use",
		TokenTTLHours: 1,
	})
}

func TestTokenRoundTrip(t *testing.T) {
	svc := testTokenService()
	staff := models.Staff{Username: "carla", Role: models.RoleServer}
	staff.ID = 42

	signed, err := svc.Generate(&staff)
	assert.NoError(t, err)
	assert.NotEmpty(t, signed)

	claims, err := svc.Validate(signed)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.StaffID)
	assert.Equal(t, "carla", claims.Username)
	assert.Equal(t, models.RoleServer, claims.Role)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	svc := testTokenService()
	other := NewTokenService(&config.Config{JWTSecret: "another-secret", TokenTTLHours: 1})

	staff := models.Staff{Username: "carla", Role: models.RoleServer}
	signed, err := other.Generate(&staff)
	assert.NoError(t, err)

	_, err = svc.Validate(signed)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := testTokenService()

	claims := TokenClaims{
		StaffID:  1,
		Username: "carla",
		Role:     models.RoleServer,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(-time.Hour).Unix(),
			IssuedAt:  time.Now().Add(-2 * time.Hour).Unix(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("test-secret-do-not-use"))
	assert.NoError(t, err)

	_, err = svc.Validate(signed)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := testTokenService()

	_, err := svc.Validate("not-a-token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	assert.NoError(t, err)
	assert.NotEqual(t, "hunter2hunter2", hash)

	assert.True(t, VerifyPassword("hunter2hunter2", hash))
	assert.False(t, VerifyPassword("wrong-password", hash))
	assert.False(t, VerifyPassword("hunter2hunter2", "not-a-bcrypt-hash"))
}
