package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_PasswordHashRoundTrip(t *testing.T) {
	svc := NewAuthService("test-secret", time.Hour)

	hash, err := svc.HashPassword("matkhau123")
	require.NoError(t, err)
	assert.NotEqual(t, "matkhau123", hash)

	assert.True(t, svc.CheckPasswordHash("matkhau123", hash))
	assert.False(t, svc.CheckPasswordHash("saimatkhau", hash))
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	svc := NewAuthService("test-secret", time.Hour)
	driverID := uuid.New()

	token, err := svc.GenerateToken(driverID)
	require.NoError(t, err)

	got, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, driverID, got)
}

func TestAuthService_RejectsForeignToken(t *testing.T) {
	issuer := NewAuthService("secret-a", time.Hour)
	verifier := NewAuthService("secret-b", time.Hour)

	token, err := issuer.GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestAuthService_RejectsExpiredToken(t *testing.T) {
	svc := NewAuthService("test-secret", -time.Minute)

	token, err := svc.GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestAuthService_RejectsGarbage(t *testing.T) {
	svc := NewAuthService("test-secret", time.Hour)

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
