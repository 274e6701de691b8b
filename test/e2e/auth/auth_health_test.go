//go:build e2e

package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestHealthEndpoint verifies the liveness endpoint works on a fresh database.
func TestHealthEndpoint(t *testing.T) {
	client, cleanup := setupAuthContainer(t)
	defer cleanup()

	health, err := client.GetHealth(t.Context())
	require.NoError(t, err)
	require.Equal(t, "healthy", health.Status)
	require.Equal(t, "test", health.Environment)
	require.False(t, health.Timestamp.IsZero())

	t.Logf("Health endpoint reports uptime %.2fs", health.Uptime)
}

// TestReadyzEndpoint verifies the readiness endpoint reports the database.
func TestReadyzEndpoint(t *testing.T) {
	client, cleanup := setupAuthContainer(t)
	defer cleanup()

	ready, err := client.GetReadiness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Checks["database"])
}
