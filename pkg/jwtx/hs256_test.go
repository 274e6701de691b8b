package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/authapp/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const exampleIssuer = "authapp"

var exampleSecret = []byte("0123456789abcdef0123456789abcdef")

func TestHS256SignAndVerify(t *testing.T) {
	signer, err := jwtx.NewSignerHS256(exampleSecret)
	require.NoError(t, err)
	require.Equal(t, "HS256", signer.Alg())

	now := time.Now().UTC()
	claims := jwtx.NewSessionClaims(99, "bob@example.com", exampleIssuer, jwtx.SessionTokenTTL, now)

	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.Len(t, strings.Split(token, "."), 3)

	verifier, err := jwtx.NewVerifierHS256(exampleSecret, exampleIssuer)
	require.NoError(t, err)

	parsed, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, int64(99), parsed.UserID)
	require.Equal(t, "bob@example.com", parsed.Email)
	require.Equal(t, "99", parsed.Subject)
	require.Equal(t, claims.ID, parsed.ID)
}

func TestHS256VerifyFailures(t *testing.T) {
	signer, err := jwtx.NewSignerHS256(exampleSecret)
	require.NoError(t, err)

	now := time.Now().UTC()
	token, err := signer.Sign(jwtx.NewSessionClaims(1, "a@b.io", exampleIssuer, time.Hour, now))
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		v, err := jwtx.NewVerifierHS256([]byte("another-secret"), exampleIssuer)
		require.NoError(t, err)
		_, err = v.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		v, err := jwtx.NewVerifierHS256(exampleSecret, "someone-else")
		require.NoError(t, err)
		_, err = v.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("expired", func(t *testing.T) {
		v, err := jwtx.NewVerifierHS256(exampleSecret, exampleIssuer)
		require.NoError(t, err)
		v.Now = func() time.Time { return now.Add(time.Hour) }
		_, err = v.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("malformed", func(t *testing.T) {
		v, err := jwtx.NewVerifierHS256(exampleSecret, exampleIssuer)
		require.NoError(t, err)
		for _, bad := range []string{"", "not-a-token", "a.b.c"} {
			_, err = v.Verify(bad)
			require.Error(t, err, "token %q", bad)
		}
	})

	t.Run("tampered payload", func(t *testing.T) {
		other, err := signer.Sign(jwtx.NewSessionClaims(2, "evil@b.io", exampleIssuer, time.Hour, now))
		require.NoError(t, err)

		parts := strings.Split(token, ".")
		forged := parts[0] + "." + strings.Split(other, ".")[1] + "." + parts[2]

		v, err := jwtx.NewVerifierHS256(exampleSecret, exampleIssuer)
		require.NoError(t, err)
		_, err = v.Verify(forged)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("other algorithm", func(t *testing.T) {
		c := jwtx.NewSessionClaims(1, "a@b.io", exampleIssuer, time.Hour, now)
		hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, c).SignedString(exampleSecret)
		require.NoError(t, err)

		v, err := jwtx.NewVerifierHS256(exampleSecret, exampleIssuer)
		require.NoError(t, err)
		_, err = v.Verify(hs512)
		require.Error(t, err)
	})
}

func TestHS256EmptySecret(t *testing.T) {
	_, err := jwtx.NewSignerHS256(nil)
	require.Error(t, err)

	_, err = jwtx.NewVerifierHS256([]byte{}, "")
	require.Error(t, err)
}
