package utils

import (
	"testing"
	"time"

	"salesreport-web/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUser = models.User{ID: 7, Username: "budi", Role: "manager"}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	token, err := GenerateAccessToken(testUser, "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "budi", claims.Username)
	assert.Equal(t, "manager", claims.Role)
	assert.Equal(t, "access", claims.Type)
}

func TestRefreshTokenCarriesRefreshType(t *testing.T) {
	token, err := GenerateRefreshToken(testUser, "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims.Type)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(testUser, "secret", time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	token, err := GenerateAccessToken(testUser, "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token, "secret")
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("not.a.token", "secret")
	assert.Error(t, err)
}
