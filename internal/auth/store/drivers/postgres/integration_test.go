//go:build integration

package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/authapp/internal/auth/store"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgres(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "auth",
			"POSTGRES_PASSWORD": "auth",
			"POSTGRES_DB":       "auth",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	url := fmt.Sprintf("postgres://auth:auth@%s:%s/auth?sslmode=disable", host, port.Port())
	s, err := NewStore(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations(ctx))
	require.NoError(t, s.ApplyMigrations(ctx), "migrations are idempotent")
	return s
}

func TestPostgres_UserLifecycle(t *testing.T) {
	ctx := context.Background()
	s := setupPostgres(t)

	id, err := s.Users().CreateUser(ctx, "pg@example.com", "hash")
	require.NoError(t, err)

	_, err = s.Users().CreateUser(ctx, "pg@example.com", "hash")
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	require.ErrorIs(t, s.Users().EnableTOTP(ctx, id), store.ErrNotFound)
	require.NoError(t, s.Users().SetTOTPSecret(ctx, id, "JBSWY3DPEHPK3PXP"))
	require.NoError(t, s.Users().EnableTOTP(ctx, id))

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.Users().UpdateLastLogin(ctx, id, at))

	u, err := s.Users().GetUserByEmail(ctx, "pg@example.com")
	require.NoError(t, err)
	require.True(t, u.TOTPEnabled)
	require.True(t, at.Equal(*u.LastLogin))

	require.NoError(t, s.Users().DisableTOTP(ctx, id))
	u, err = s.Users().GetUserByID(ctx, id)
	require.NoError(t, err)
	require.False(t, u.TOTPEnabled)
	require.Nil(t, u.TOTPSecret)
}

func TestPostgres_ConcurrentDuplicateRegistration(t *testing.T) {
	ctx := context.Background()
	s := setupPostgres(t)

	const n = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		oks  int
		dups int
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Users().CreateUser(ctx, "race@example.com", "hash")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				oks++
			} else if errors.Is(err, store.ErrAlreadyExists) {
				dups++
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, oks)
	require.Equal(t, n-1, dups)
}
