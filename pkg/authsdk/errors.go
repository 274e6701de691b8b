package authsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrTOTPRequired is returned by Login when the account has a second factor
// enabled. Retry with LoginWithTOTP.
var ErrTOTPRequired = errors.New("authsdk: 2FA code required")

// APIError is a non-2xx response from the service.
type APIError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// Message is the "error" field of the body, or the status text when the
	// body could not be decoded.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("authsdk: %d: %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an *APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// parseErrorResponse converts a non-2xx response body into an *APIError.
// Returns nil for 2xx status codes.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}
}
