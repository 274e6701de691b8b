package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@sub.example.co",
		"a+tag@b.io",
	}
	for _, e := range valid {
		require.True(t, ValidEmail(e), e)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@example.com",
		"user@",
		"user@example",
		"user@@example.com",
		"user@.example.com",
		"user.@example.com",
		"us..er@example.com",
		"user name@example.com",
		"user@exa mple.com",
	}
	for _, e := range invalid {
		require.False(t, ValidEmail(e), e)
	}
}

func TestValidPassword(t *testing.T) {
	require.False(t, ValidPassword(""))
	require.False(t, ValidPassword("1234567"))
	require.True(t, ValidPassword("12345678"))
	require.True(t, ValidPassword("pässwörd"))
	require.False(t, ValidPassword("pässwör"))

	// Astral characters are two code units each.
	require.True(t, ValidPassword("😀😀😀😀"))
	require.False(t, ValidPassword("😀😀😀"))
	require.True(t, ValidPassword("😀😀😀ab"))
	require.False(t, ValidPassword("😀😀😀a"))
}

func TestKindOf(t *testing.T) {
	require.Equal(t, KindRateLimit, KindOf(ErrRateLimited))
	require.Equal(t, KindConflict, KindOf(ErrRegistrationFailed))
	require.Equal(t, KindInternal, KindOf(nil))
	require.Equal(t, "not_found", KindOf(ErrUserNotFound).String())
}
