package services

import (
	"testing"
	"time"

	"partner-growth-system/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(st store.Store) *AuthService {
	return NewAuthService(st, "test-secret", time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	st := store.NewMemoryStore()
	auth := newAuthService(st)

	partner, token, err := auth.Register("Priya Singh", "priya.singh@example.com", "9876543210", "password")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "password", partner.PasswordHash)

	_, _, err = auth.Register("Other", "priya.singh@example.com", "9", "password")
	assert.ErrorIs(t, err, ErrEmailTaken)

	logged, token, err := auth.Login("priya.singh@example.com", "password")
	require.NoError(t, err)
	assert.Equal(t, partner.ID, logged.ID)
	assert.NotEmpty(t, token)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	st := store.NewMemoryStore()
	auth := newAuthService(st)
	_, _, err := auth.Register("Priya Singh", "priya.singh@example.com", "9876543210", "password")
	require.NoError(t, err)

	_, _, err = auth.Login("priya.singh@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = auth.Login("nobody@example.com", "password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPartnerFromToken(t *testing.T) {
	st := store.NewMemoryStore()
	auth := newAuthService(st)
	partner, token, err := auth.Register("Priya Singh", "priya.singh@example.com", "9876543210", "password")
	require.NoError(t, err)

	resolved, err := auth.PartnerFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, partner.ID, resolved.ID)

	_, err = auth.PartnerFromToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Token signed with a different secret must not verify.
	foreign, err := NewAuthService(st, "other-secret", time.Hour).GenerateToken(partner.ID)
	require.NoError(t, err)
	_, err = auth.PartnerFromToken(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredTokenRejected(t *testing.T) {
	st := store.NewMemoryStore()
	auth := NewAuthService(st, "test-secret", -time.Minute)
	_, token, err := auth.Register("Priya Singh", "priya.singh@example.com", "9876543210", "password")
	require.NoError(t, err)

	_, err = auth.PartnerFromToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
