//go:build e2e

package auth_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/authapp/pkg/authsdk"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for auth service end-to-end tests.
 * This includes container setup, service operations, and assertions.
 */

const (
	testImageName = "authapp-auth-test:latest"
	servicePort   = "3001/tcp"

	jwtSecret    = "e2e-test-secret-do-not-use"
	testPassword = "correct horse battery"
)

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Auth Service Docker image...")

	// Build the Docker image once before all tests
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	// Run all tests
	exitCode := m.Run()

	// Clean up the Docker image after all tests complete
	fmt.Fprintf(os.Stdout, "Cleaning up Auth Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

// buildDockerImage builds the test Docker image if it doesn't exist.
func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/auth/Dockerfile",
		"../../../")
	cmd.Dir = "." // Ensure we're in the test directory
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

// cleanupDockerImage removes the test Docker image.
func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// relaxedLimits keeps the fixed-window limiter out of the way of tests that
// make many requests from one client.
func relaxedLimits() map[string]string {
	return map[string]string{
		"RATE_LIMIT_REGISTER_MAX":  "1000",
		"RATE_LIMIT_LOGIN_MAX":     "1000",
		"RATE_LIMIT_LOGIN_2FA_MAX": "1000",
	}
}

// setupAuthContainer starts the auth service with relaxed rate limits and
// returns an SDK client pointed at its API prefix.
func setupAuthContainer(t *testing.T) (*authsdk.SDKClient, func()) {
	t.Helper()
	return startContainer(t, relaxedLimits())
}

// setupAuthContainerWithDefaultRateLimits starts the auth service with DEFAULT rate limits.
// This is specifically for testing that rate limiting actually works.
func setupAuthContainerWithDefaultRateLimits(t *testing.T) (*authsdk.SDKClient, func()) {
	t.Helper()
	return startContainer(t, nil)
}

func startContainer(t *testing.T, extraEnv map[string]string) (*authsdk.SDKClient, func()) {
	t.Helper()
	ctx := context.Background()

	env := map[string]string{
		"ENV":             "test",
		"AUTH_JWT_SECRET": jwtSecret,
		"DATABASE_PATH":   "/data/auth.sqlite",
		"LOG_LEVEL":       "info",
		"LOG_FORMAT":      "json",
	}
	for k, v := range extraEnv {
		env[k] = v
	}

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{servicePort},
		Env:          env,
		WaitingFor: wait.ForHTTP("/api/health").
			WithPort(servicePort).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	// Get the mapped port
	mappedPort, err := container.MappedPort(ctx, servicePort)
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	client := authsdk.NewSDKClient(fmt.Sprintf("http://%s:%s/api", host, mappedPort.Port()))

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return client, cleanup
}

// registerAndLogin creates an account and returns a logged in session.
func registerAndLogin(t *testing.T, client *authsdk.SDKClient, email string) *authsdk.Session {
	t.Helper()

	require.NoError(t, client.Register(t.Context(), email, testPassword), "Registration should succeed")

	session, err := client.Login(t.Context(), email, testPassword)
	require.NoError(t, err, "Login should succeed")
	require.NotEmpty(t, session.Token())

	return session
}

// enableTOTP runs setup and verify and returns the secret.
func enableTOTP(t *testing.T, session *authsdk.Session) string {
	t.Helper()

	setup, err := session.SetupTOTP(t.Context())
	require.NoError(t, err)
	require.NotEmpty(t, setup.Secret)

	require.NoError(t, session.VerifyTOTP(t.Context(), currentCode(t, setup.Secret)))
	return setup.Secret
}

func currentCode(t *testing.T, secret string) string {
	t.Helper()
	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)
	return code
}

// assertStatus checks that err is an *authsdk.APIError with the given status and message.
func assertStatus(t *testing.T, err error, code int, msg string) {
	t.Helper()
	require.Error(t, err)
	require.True(t, authsdk.IsStatus(err, code), "expected HTTP %d, got: %v", code, err)
	if msg != "" {
		require.ErrorContains(t, err, msg)
	}
}
