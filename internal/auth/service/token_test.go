package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/authapp/internal/auth/domain"
	"github.com/aussiebroadwan/authapp/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newClockedTokenService(t *testing.T, secret string, now *time.Time) *TokenService {
	t.Helper()

	signer, err := jwtx.NewSignerHS256([]byte(secret))
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256([]byte(secret), "authapp")
	require.NoError(t, err)

	clock := func() time.Time { return *now }
	verifier.Now = clock

	return &TokenService{
		Signer:   signer,
		Verifier: verifier,
		Issuer:   "authapp",
		TTL:      jwtx.SessionTokenTTL,
		Now:      clock,
	}
}

func TestTokenService_RoundTrip(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	ts := newClockedTokenService(t, "secret", &now)

	token, err := ts.Issue(domain.User{ID: 42, Email: "alice@example.com"})
	require.NoError(t, err)

	id, err := ts.Validate(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, domain.Identity{ID: 42, Email: "alice@example.com"}, id)
}

func TestTokenService_Expiry(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	ts := newClockedTokenService(t, "secret", &now)

	token, err := ts.Issue(domain.User{ID: 1, Email: "a@b.co"})
	require.NoError(t, err)

	now = now.Add(jwtx.SessionTokenTTL - time.Second)
	_, err = ts.Validate(context.Background(), token)
	require.NoError(t, err)

	now = now.Add(time.Second)
	_, err = ts.Validate(context.Background(), token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Rejects(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	ts := newClockedTokenService(t, "secret", &now)
	other := newClockedTokenService(t, "different", &now)

	foreign, err := other.Issue(domain.User{ID: 1, Email: "a@b.co"})
	require.NoError(t, err)

	for name, token := range map[string]string{
		"empty":        "",
		"garbage":      "not-a-jwt",
		"wrong secret": foreign,
		"truncated":    foreign[:len(foreign)-4],
		"alg none":     "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0.eyJpZCI6MSwic3ViIjoiMSJ9.",
		"dots only":    "..",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ts.Validate(context.Background(), token)
			require.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
