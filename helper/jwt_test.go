package helper

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hari-dev-003/Achieve/app/model"
	"github.com/hari-dev-003/Achieve/config"
)

func testUser() model.User {
	return model.User{
		ID:    uuid.New(),
		Email: "arun@college.edu",
		Role:  model.RoleStudent,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	config.Env.JWTSecret = "test-secret"

	user := testUser()
	token, err := GenerateToken(user)
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Role, claims.Role)
	assert.Equal(t, "access", claims.Type)
}

func TestRefreshTokenCarriesRefreshType(t *testing.T) {
	config.Env.JWTSecret = "test-secret"

	token, err := GenerateRefreshToken(testUser())
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims.Type)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	config.Env.JWTSecret = "test-secret"
	token, err := GenerateToken(testUser())
	require.NoError(t, err)

	config.Env.JWTSecret = "a-different-secret"
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	config.Env.JWTSecret = "test-secret"
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}
