package authsdk

import (
	"context"
	"net/http"
)

// Session is an authenticated session holding a bearer token.
// Tokens are not refreshed; once expired every call returns a 401 *APIError.
type Session struct {
	client *SDKClient
	token  string
	user   *UserSummary
}

// newSession creates a session from a successful login response.
func newSession(client *SDKClient, resp *LoginResponse) *Session {
	return &Session{
		client: client,
		token:  resp.Token,
		user:   resp.User,
	}
}

// Token returns the raw session token.
func (s *Session) Token() string {
	return s.token
}

// User returns the user summary from the login response, or nil for sessions
// built with NewSessionFromToken.
func (s *Session) User() *UserSummary {
	return s.user
}

// Me returns the current user's profile.
func (s *Session) Me(ctx context.Context) (*MeResponse, error) {
	resp, err := s.client.doRequest(ctx, http.MethodGet, "/me", s.token, nil)
	if err != nil {
		return nil, err
	}

	var me MeResponse
	if err := decodeJSON(resp, &me, http.StatusOK); err != nil {
		return nil, err
	}

	return &me, nil
}

// SetupTOTP starts 2FA enrollment and returns the pending secret.
// 2FA stays disabled until VerifyTOTP succeeds.
func (s *Session) SetupTOTP(ctx context.Context) (*SetupResponse, error) {
	resp, err := s.client.doRequest(ctx, http.MethodPost, "/2fa/setup", s.token, nil)
	if err != nil {
		return nil, err
	}

	var setup SetupResponse
	if err := decodeJSON(resp, &setup, http.StatusOK); err != nil {
		return nil, err
	}

	return &setup, nil
}

// VerifyTOTP confirms the pending secret with a code and enables 2FA.
func (s *Session) VerifyTOTP(ctx context.Context, code string) error {
	resp, err := s.client.doRequest(ctx, http.MethodPost, "/2fa/verify", s.token, VerifyRequest{Token: code})
	if err != nil {
		return err
	}
	return expectSuccess(resp)
}

// DisableTOTP turns 2FA off and discards the secret.
func (s *Session) DisableTOTP(ctx context.Context) error {
	resp, err := s.client.doRequest(ctx, http.MethodPost, "/2fa/disable", s.token, nil)
	if err != nil {
		return err
	}
	return expectSuccess(resp)
}
