package idx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/authapp/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewAndParse(t *testing.T) {
	id := idx.New()
	require.False(t, id.IsZero())

	parsed, err := idx.Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestOrdering(t *testing.T) {
	a := idx.NewAt(time.Unix(1, 0).UTC())
	b := idx.NewAt(time.Unix(2, 0).UTC())

	// ULID strings sort by time.
	require.Less(t, a.String(), b.String())
}

func TestTimeExtraction(t *testing.T) {
	tm := time.Unix(1700000000, 0).UTC()
	id := idx.NewAt(tm)

	require.WithinDuration(t, tm, id.Time(), time.Millisecond)
	require.True(t, idx.Zero.Time().IsZero())
}

func TestFromHeader(t *testing.T) {
	const valid = "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV"

	require.Equal(t, idx.RequestID(valid), idx.FromHeader(valid))
	require.Equal(t, idx.RequestID(valid), idx.FromHeader("  "+valid+" "))

	for _, in := range []string{"", "not-a-ulid", "abc\ninjected=1"} {
		got := idx.FromHeader(in)
		require.False(t, got.IsZero())
		require.NotEqual(t, in, got.String())
	}
}
