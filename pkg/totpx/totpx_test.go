package totpx_test

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/authapp/pkg/totpx"
	"github.com/stretchr/testify/require"
)

// RFC 6238 appendix B SHA1 seed "12345678901234567890" in base32.
const rfcSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

func fixedEngine(t time.Time) *totpx.Engine {
	e := totpx.NewEngine("AuthApp")
	e.Now = func() time.Time { return t }
	return e
}

func TestGenerateSecret(t *testing.T) {
	e := totpx.NewEngine("AuthApp")

	enr, err := e.GenerateSecret("alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, enr.Secret)
	require.True(t, strings.HasPrefix(enr.QRCode, "data:image/png;base64,"))

	u, err := url.Parse(enr.URL)
	require.NoError(t, err)
	require.Equal(t, "otpauth", u.Scheme)
	require.Equal(t, "totp", u.Host)
	require.Equal(t, "/AuthApp:alice@example.com", u.Path)
	require.Equal(t, enr.Secret, u.Query().Get("secret"))
	require.Equal(t, "AuthApp", u.Query().Get("issuer"))

	other, err := e.GenerateSecret("alice@example.com")
	require.NoError(t, err)
	require.NotEqual(t, enr.Secret, other.Secret)
}

func TestCodeAt_RFC6238Vector(t *testing.T) {
	e := totpx.NewEngine("AuthApp")

	// T = 59s => 94287082 with 8 digits; the 6 digit truncation is 287082.
	code, err := e.CodeAt(rfcSecret, time.Unix(59, 0))
	require.NoError(t, err)
	require.Equal(t, "287082", code)

	code, err = e.CodeAt(rfcSecret, time.Unix(1111111109, 0))
	require.NoError(t, err)
	require.Equal(t, "081804", code)
}

func TestVerify_Window(t *testing.T) {
	base := time.Unix(1_700_000_010, 0) // well inside a step
	e := fixedEngine(base)

	current, err := e.CurrentCode(rfcSecret)
	require.NoError(t, err)
	require.True(t, e.Verify(rfcSecret, current))

	prev, err := e.CodeAt(rfcSecret, base.Add(-totpx.Period))
	require.NoError(t, err)
	require.True(t, e.Verify(rfcSecret, prev), "previous step accepted")

	next, err := e.CodeAt(rfcSecret, base.Add(totpx.Period))
	require.NoError(t, err)
	require.True(t, e.Verify(rfcSecret, next), "next step accepted")

	stale, err := e.CodeAt(rfcSecret, base.Add(-2*totpx.Period))
	require.NoError(t, err)
	if stale != current && stale != prev && stale != next {
		require.False(t, e.Verify(rfcSecret, stale), "two steps back rejected")
	}
}

func TestVerify_Rejects(t *testing.T) {
	e := fixedEngine(time.Unix(1_700_000_010, 0))

	current, err := e.CurrentCode(rfcSecret)
	require.NoError(t, err)

	if current != "000000" {
		require.False(t, e.Verify(rfcSecret, "000000"))
	}
	require.False(t, e.Verify(rfcSecret, ""))
	require.False(t, e.Verify(rfcSecret, "12345"))
	require.False(t, e.Verify(rfcSecret, "abcdef"))
	require.False(t, e.Verify("", current))
	require.False(t, e.Verify("not base32 !!", current))
}
