package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/authapp/pkg/slogx"
)

const bearerPrefix = "Bearer "

// Authenticator turns a raw bearer token into a principal.
type Authenticator[P any] func(ctx context.Context, token string) (P, error)

// AuthedHandlerFunc is a handler that receives the authenticated principal
// as an argument instead of reading it from the request context.
type AuthedHandlerFunc[P any] func(w http.ResponseWriter, r *http.Request, principal P)

// RequireBearer authenticates the Authorization header before calling h.
//
// A missing header or one without the "Bearer " prefix yields 401
// "Unauthorized". A token the authenticator rejects yields 401 "Invalid token".
func RequireBearer[P any](authn Authenticator[P], h AuthedHandlerFunc[P]) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := slogx.FromContext(ctx)

		authz := r.Header.Get("Authorization")
		if !strings.HasPrefix(authz, bearerPrefix) {
			writeBearerError(w, "", "Unauthorized")
			return
		}

		principal, err := authn(ctx, authz[len(bearerPrefix):])
		if err != nil {
			log.Debug("bearer token rejected", "err", err)
			writeBearerError(w, "invalid_token", "Invalid token")
			return
		}

		h(w, r, principal)
	})
}

// RFC 6750-compliant challenge plus the JSON error body.
func writeBearerError(w http.ResponseWriter, code, msg string) {
	challenge := "Bearer"
	if code != "" {
		challenge += ` error="` + code + `"`
	}
	w.Header().Set("WWW-Authenticate", challenge)
	WriteError(w, http.StatusUnauthorized, msg)
}
