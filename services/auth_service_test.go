package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashing(t *testing.T) {
	svc := &AuthService{cost: bcrypt.MinCost}

	_, err := svc.HashPassword("short")
	assert.ErrorIs(t, err, ErrWeakPassword)

	hash, err := svc.HashPassword("supersecret")
	require.NoError(t, err)
	assert.NotEqual(t, "supersecret", hash)
	assert.True(t, svc.VerifyPassword(hash, "supersecret"))
	assert.False(t, svc.VerifyPassword(hash, "supersecreT"))
	assert.False(t, svc.VerifyPassword("not-a-hash", "supersecret"))
}

func TestTokens(t *testing.T) {
	svc := NewAuthService()

	a, err := svc.GenerateToken()
	require.NoError(t, err)
	b, err := svc.GenerateToken()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
	assert.Len(t, svc.HashToken(a), 64)
	assert.Equal(t, svc.HashToken(a), svc.HashToken(a))
	assert.NotEqual(t, svc.HashToken(a), svc.HashToken(b))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "rina@example.com", NormalizeEmail("  Rina@Example.COM "))
	assert.Equal(t, "", NormalizeEmail("   "))
}
