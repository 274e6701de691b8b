package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/authapp/internal/auth/service"
	"github.com/aussiebroadwan/authapp/pkg/httpx"
	"github.com/aussiebroadwan/authapp/pkg/slogx"
)

const (
	msgInvalidBody = "Invalid request body"
	msgInternal    = "Internal server error"
)

var kindStatus = map[service.Kind]int{
	service.KindValidation:     http.StatusBadRequest,
	service.KindAuthentication: http.StatusUnauthorized,
	service.KindConflict:       http.StatusBadRequest,
	service.KindState:          http.StatusBadRequest,
	service.KindNotFound:       http.StatusNotFound,
	service.KindRateLimit:      http.StatusTooManyRequests,
}

// writeServiceError maps a service error to its status and message. Anything
// that is not a *service.Error is logged and hidden behind a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var se *service.Error
	if errors.As(err, &se) {
		if code, ok := kindStatus[se.Kind]; ok {
			httpx.WriteError(w, code, se.Message)
			return
		}
	}

	slogx.FromContext(r.Context()).Error("request failed", "err", err)
	httpx.WriteError(w, http.StatusInternalServerError, msgInternal)
}

// decodeBody decodes the request body and answers 400 on failure.
// It reports whether the handler should continue.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := httpx.DecodeJSON(w, r, v); err != nil {
		slogx.FromContext(r.Context()).Debug("bad request body", "err", err)
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	return true
}
