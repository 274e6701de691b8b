package authsdk

import "time"

// ============================================================================
// Requests
// ============================================================================

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login2FARequest is the body of POST /login-2fa.
type Login2FARequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TOTPCode string `json:"totpCode"`
}

// VerifyRequest is the body of POST /2fa/verify. Token is the 6 digit code
// from the authenticator app.
type VerifyRequest struct {
	Token string `json:"token"`
}

// ============================================================================
// Responses
// ============================================================================

// UserSummary is the user shape embedded in a successful login.
type UserSummary struct {
	Email       string `json:"email"`
	TOTPEnabled bool   `json:"totpEnabled"`
}

// LoginResponse is returned by /login and /login-2fa.
//
// When the account has a second factor enabled, /login only sets
// RequiresTOTP and leaves Token and User empty.
type LoginResponse struct {
	Token        string       `json:"token,omitempty"`
	User         *UserSummary `json:"user,omitempty"`
	RequiresTOTP bool         `json:"requiresTOTP,omitempty"`
}

// SetupResponse is returned by POST /2fa/setup.
type SetupResponse struct {
	// Secret is the base32 TOTP secret for manual entry.
	Secret string `json:"secret"`

	// QRCode is a data:image/png;base64 URL of the provisioning URI.
	QRCode string `json:"qrCode"`
}

// SuccessResponse is the body returned by mutation endpoints.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// MeResponse is returned by GET /me.
type MeResponse struct {
	Email       string     `json:"email"`
	TOTPEnabled bool       `json:"totpEnabled"`
	LastLogin   *time.Time `json:"lastLogin"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	// Status is always "healthy" while the process serves requests.
	Status string `json:"status"`

	// Timestamp is the server time the response was produced.
	Timestamp time.Time `json:"timestamp"`

	// Uptime is the process uptime in seconds.
	Uptime float64 `json:"uptime"`

	Environment string `json:"environment"`
}

// ReadyResponse is returned by GET /readyz.
type ReadyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}
