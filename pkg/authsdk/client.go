package authsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the authentication service.
// It provides access to unauthenticated operations and creates authenticated Sessions.
type SDKClient struct {
	// BaseURL includes the API prefix, e.g. "http://localhost:3001/api".
	BaseURL    string
	HTTPClient *http.Client

	// ClientID, when set, is sent as X-Forwarded-For so that the server's
	// per-client rate limits can be exercised from a single process.
	ClientID string
}

// NewSDKClient creates a new auth service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates an account.
func (c *SDKClient) Register(ctx context.Context, email, password string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/register", "", RegisterRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return err
	}
	return expectSuccess(resp)
}

// Login authenticates with email and password.
// Returns ErrTOTPRequired if the account has 2FA enabled.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*Session, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/login", "", LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	if out.RequiresTOTP {
		return nil, ErrTOTPRequired
	}

	return newSession(c, &out), nil
}

// LoginWithTOTP authenticates with email, password and a current TOTP code.
func (c *SDKClient) LoginWithTOTP(ctx context.Context, email, password, code string) (*Session, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/login-2fa", "", Login2FARequest{
		Email:    email,
		Password: password,
		TOTPCode: code,
	})
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return newSession(c, &out), nil
}

// NewSessionFromToken wraps an existing session token, e.g. one persisted by a
// previous process.
func (c *SDKClient) NewSessionFromToken(token string) *Session {
	return &Session{client: c, token: token}
}
