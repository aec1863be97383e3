package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewJWTService("test-secret", 24)
	userID := uuid.New()

	token, err := svc.Generate(userID, "ex@acme.com", "exhibitor")
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "ex@acme.com", claims.Email)
	assert.Equal(t, "exhibitor", claims.Role)
	assert.NotEmpty(t, claims.ID)
	assert.Greater(t, claims.TTL(), 23*time.Hour)
}

func TestValidateWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a", 24).Generate(uuid.New(), "ex@acme.com", "exhibitor")
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", 24).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateGarbage(t *testing.T) {
	_, err := NewJWTService("secret", 24).Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUniqueTokenIDs(t *testing.T) {
	svc := NewJWTService("secret", 24)
	id := uuid.New()
	t1, err := svc.Generate(id, "ex@acme.com", "exhibitor")
	require.NoError(t, err)
	t2, err := svc.Generate(id, "ex@acme.com", "exhibitor")
	require.NoError(t, err)

	c1, err := svc.Validate(t1)
	require.NoError(t, err)
	c2, err := svc.Validate(t2)
	require.NoError(t, err)
	assert.NotEqual(t, c1.ID, c2.ID)
}
