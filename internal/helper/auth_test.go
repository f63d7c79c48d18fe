package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	auth := SetupAuth("secret")

	token, err := auth.GenerateToken(7, "agent@example.com")
	require.NoError(t, err)

	claims, err := auth.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "agent@example.com", claims.Email)

	claims, err = auth.VerifyToken("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	token, err := SetupAuth("secret-a").GenerateToken(7, "agent@example.com")
	require.NoError(t, err)

	_, err = SetupAuth("secret-b").VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyToken_Missing(t *testing.T) {
	_, err := SetupAuth("secret").VerifyToken("  ")
	assert.Error(t, err)
}

func TestHashAndVerifyPassword(t *testing.T) {
	auth := SetupAuth("secret")

	hash, err := auth.HashPassword("longenough1", OwnerHashCost)
	require.NoError(t, err)
	assert.NotEqual(t, "longenough1", hash)

	assert.NoError(t, auth.VerifyPassword("longenough1", hash))
	assert.Error(t, auth.VerifyPassword("wrongpass1", hash))
}

func TestValidateStruct_CollectsAllViolations(t *testing.T) {
	type sample struct {
		Token       string `json:"token" validate:"required"`
		NewPassword string `json:"new_password" validate:"required,min=8"`
	}

	violations := ValidateStruct(sample{Token: "", NewPassword: "short"})
	assert.Len(t, violations, 2)
	assert.Contains(t, violations, "token is required")
	assert.Contains(t, violations, "new_password must be at least 8 characters")

	assert.Nil(t, ValidateStruct(sample{Token: "x", NewPassword: "longenough1"}))
}
