package http

import (
	"net/http"

	"github.com/aussiebroadwan/authapp/internal/auth/service"
	"github.com/aussiebroadwan/authapp/pkg/authsdk"
	"github.com/aussiebroadwan/authapp/pkg/httpx"
	"github.com/aussiebroadwan/authapp/pkg/ratelimit"
	"github.com/aussiebroadwan/authapp/pkg/slogx"
)

// AuthHandler handles registration and both login steps.
type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleRegister handles POST /register
//
//	@Summary		Register an account
//	@Description	Creates a user with a hashed password. Limited to 5 attempts per client per minute by default.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RegisterRequest	true	"Email and password (8+ characters)"
//	@Success		200		{object}	authsdk.SuccessResponse
//	@Failure		400		{object}	authsdk.ErrorResponse	"Invalid request body, invalid email or password, or registration failed"
//	@Failure		429		{object}	authsdk.ErrorResponse	"Too many requests"
//	@Router			/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RegisterRequest
	if !h.decodeCounted(w, r, &req, h.AuthService.Limits.Register, nil) {
		return
	}

	if _, err := h.AuthService.Register(r.Context(), ratelimit.ClientIdentifier(r), req.Email, req.Password); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.SuccessResponse{Success: true})
}

// HandleLogin handles POST /login
//
//	@Summary		Log in with email and password
//	@Description	Returns a session token, or {"requiresTOTP": true} when the account has 2FA enabled.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	authsdk.LoginResponse
//	@Failure		401		{object}	authsdk.ErrorResponse	"Invalid credentials"
//	@Failure		429		{object}	authsdk.ErrorResponse	"Too many requests"
//	@Router			/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req authsdk.LoginRequest
	if !h.decodeCounted(w, r, &req, h.AuthService.Limits.Login, service.ErrInvalidCredentials) {
		return
	}

	res, err := h.AuthService.Login(r.Context(), ratelimit.ClientIdentifier(r), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeLoginResult(w, res)
}

// HandleLogin2FA handles POST /login-2fa
//
//	@Summary		Log in with email, password and TOTP code
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.Login2FARequest	true	"Credentials and 6 digit code"
//	@Success		200		{object}	authsdk.LoginResponse
//	@Failure		400		{object}	authsdk.ErrorResponse	"2FA not enabled"
//	@Failure		401		{object}	authsdk.ErrorResponse	"Invalid credentials or 2FA code"
//	@Failure		429		{object}	authsdk.ErrorResponse	"Too many requests"
//	@Router			/login-2fa [post].
func (h *AuthHandler) HandleLogin2FA(w http.ResponseWriter, r *http.Request) {
	var req authsdk.Login2FARequest
	if !h.decodeCounted(w, r, &req, h.AuthService.Limits.Login2FA, service.ErrInvalidCredentials) {
		return
	}

	res, err := h.AuthService.LoginWithTOTP(r.Context(), ratelimit.ClientIdentifier(r), req.Email, req.Password, req.TOTPCode)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeLoginResult(w, res)
}

// decodeCounted decodes the body like decodeBody, except that an undecodable
// body still spends one attempt of rule for the client. Once the limit is
// hit the client gets 429 whatever it sends. Otherwise the answer is
// invalid, or 400 "Invalid request body" when invalid is nil.
func (h *AuthHandler) decodeCounted(w http.ResponseWriter, r *http.Request, v any, rule ratelimit.Rule, invalid error) bool {
	err := httpx.DecodeJSON(w, r, v)
	if err == nil {
		return true
	}
	slogx.FromContext(r.Context()).Debug("bad request body", "err", err, "action", rule.Action)

	if err := h.AuthService.CheckRate(r.Context(), rule, ratelimit.ClientIdentifier(r)); err != nil {
		writeServiceError(w, r, err)
		return false
	}

	if invalid == nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	writeServiceError(w, r, invalid)
	return false
}

func writeLoginResult(w http.ResponseWriter, res service.LoginResult) {
	if res.RequiresTOTP {
		httpx.WriteJSON(w, http.StatusOK, authsdk.LoginResponse{RequiresTOTP: true})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.LoginResponse{
		Token: res.Token,
		User: &authsdk.UserSummary{
			Email:       res.User.Email,
			TOTPEnabled: res.User.TOTPEnabled,
		},
	})
}
