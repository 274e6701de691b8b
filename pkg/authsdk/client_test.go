package authsdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, h http.HandlerFunc) *SDKClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewSDKClient(srv.URL + "/api/")
}

func TestNewSDKClientTrimsSlash(t *testing.T) {
	t.Parallel()

	c := NewSDKClient("http://localhost:3001/api/")
	require.Equal(t, "http://localhost:3001/api", c.BaseURL)
	require.Equal(t, "http://localhost:3001/api/me", c.url("/me"))
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("returns session", func(t *testing.T) {
		t.Parallel()
		c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/api/login", r.URL.Path)
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var req LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Equal(t, "a@b.co", req.Email)

			_ = json.NewEncoder(w).Encode(LoginResponse{
				Token: "tok",
				User:  &UserSummary{Email: "a@b.co"},
			})
		})

		s, err := c.Login(context.Background(), "a@b.co", "password1")
		require.NoError(t, err)
		require.Equal(t, "tok", s.Token())
		require.Equal(t, "a@b.co", s.User().Email)
	})

	t.Run("requires totp", func(t *testing.T) {
		t.Parallel()
		c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"requiresTOTP":true}`))
		})

		_, err := c.Login(context.Background(), "a@b.co", "password1")
		require.ErrorIs(t, err, ErrTOTPRequired)
	})

	t.Run("api error", func(t *testing.T) {
		t.Parallel()
		c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Invalid credentials"}`))
		})

		_, err := c.Login(context.Background(), "a@b.co", "nope")
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		require.Equal(t, "Invalid credentials", apiErr.Message)
		require.True(t, IsStatus(err, http.StatusUnauthorized))
	})
}

func TestSessionSendsBearer(t *testing.T) {
	t.Parallel()

	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
			return
		}
		switch r.URL.Path {
		case "/api/me":
			_, _ = w.Write([]byte(`{"email":"a@b.co","totpEnabled":true,"lastLogin":null}`))
		case "/api/2fa/verify":
			var req VerifyRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.Token != "123456" {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":"Invalid code"}`))
				return
			}
			_, _ = w.Write([]byte(`{"success":true}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	s := c.NewSessionFromToken("tok")
	me, err := s.Me(context.Background())
	require.NoError(t, err)
	require.True(t, me.TOTPEnabled)
	require.Nil(t, me.LastLogin)

	require.NoError(t, s.VerifyTOTP(context.Background(), "123456"))
	require.True(t, IsStatus(s.VerifyTOTP(context.Background(), "000000"), http.StatusBadRequest))

	_, err = c.NewSessionFromToken("bad").Me(context.Background())
	require.True(t, IsStatus(err, http.StatusUnauthorized))
}

func TestClientIDHeader(t *testing.T) {
	t.Parallel()

	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "10.0.0.7", r.Header.Get("X-Forwarded-For"))
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	c.ClientID = "10.0.0.7"

	require.NoError(t, c.Register(context.Background(), "a@b.co", "password1"))
}

func TestParseErrorResponseFallback(t *testing.T) {
	t.Parallel()

	resp := &http.Response{StatusCode: http.StatusBadGateway}
	err := parseErrorResponse(resp, []byte("<html>"))
	require.Equal(t, &APIError{StatusCode: http.StatusBadGateway, Message: "Bad Gateway"}, err)

	require.NoError(t, parseErrorResponse(&http.Response{StatusCode: http.StatusOK}, nil))
}
