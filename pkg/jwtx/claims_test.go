package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/authapp/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestNewSessionClaims(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c := jwtx.NewSessionClaims(42, "alice@example.com", "authapp", jwtx.SessionTokenTTL, now)

	require.Equal(t, "42", c.Subject)
	require.Equal(t, int64(42), c.UserID)
	require.Equal(t, "alice@example.com", c.Email)
	require.Equal(t, "authapp", c.Issuer)
	require.Equal(t, now, c.IssuedAt.Time)
	require.Equal(t, now.Add(7*24*time.Hour), c.ExpiresAt.Time)
	require.NotEmpty(t, c.ID, "jti should be set")

	other := jwtx.NewSessionClaims(42, "alice@example.com", "authapp", jwtx.SessionTokenTTL, now)
	require.NotEqual(t, c.ID, other.ID)
}

func TestValidateIssuer(t *testing.T) {
	c := &jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer: "authapp",
		},
	}

	t.Run("matching issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer("authapp"))
	})

	t.Run("empty expected issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer(""))
	})

	t.Run("mismatched issuer", func(t *testing.T) {
		require.ErrorIs(t, c.ValidateIssuer("other"), jwtx.ErrIssuer)
	})
}

func TestValidateSubject(t *testing.T) {
	c := jwtx.NewSessionClaims(7, "a@b.io", "", time.Hour, time.Now())
	require.NoError(t, c.ValidateSubject())

	c.Subject = "8"
	require.ErrorIs(t, c.ValidateSubject(), jwtx.ErrInvalidClaim)

	c = jwtx.NewSessionClaims(0, "a@b.io", "", time.Hour, time.Now())
	require.ErrorIs(t, c.ValidateSubject(), jwtx.ErrInvalidClaim)
}

func TestValidateExpiry(t *testing.T) {
	now := time.Now().UTC()
	c := jwtx.NewSessionClaims(1, "a@b.io", "", time.Minute, now)

	t.Run("valid token", func(t *testing.T) {
		require.NoError(t, c.ValidateExpiry(now))
		require.NoError(t, c.ValidateExpiry(now.Add(59*time.Second)))
	})

	t.Run("expired at exp", func(t *testing.T) {
		require.ErrorIs(t, c.ValidateExpiry(now.Add(time.Minute)), jwtx.ErrExpired)
	})

	t.Run("not yet valid", func(t *testing.T) {
		require.ErrorIs(t, c.ValidateExpiry(now.Add(-time.Second)), jwtx.ErrNotYetValid)
	})

	t.Run("missing exp", func(t *testing.T) {
		var empty jwtx.Claims
		require.ErrorIs(t, empty.ValidateExpiry(now), jwtx.ErrInvalidClaim)
	})
}
