package http

import (
	"net/http"

	"github.com/aussiebroadwan/authapp/internal/auth/domain"
	"github.com/aussiebroadwan/authapp/internal/auth/service"
	"github.com/aussiebroadwan/authapp/pkg/authsdk"
	"github.com/aussiebroadwan/authapp/pkg/httpx"
)

type MeHandler struct {
	AuthService *service.AuthService
}

// HandleMe returns the authenticated user's profile.
//
//	@Summary		Get the current user
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.MeResponse		"email, totpEnabled, lastLogin"
//	@Failure		401	{object}	authsdk.ErrorResponse	"Invalid or missing token"
//	@Failure		404	{object}	authsdk.ErrorResponse	"User not found"
//	@Router			/me [get].
func (h *MeHandler) HandleMe(w http.ResponseWriter, r *http.Request, id domain.Identity) {
	user, err := h.AuthService.CurrentUser(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MeResponse{
		Email:       user.Email,
		TOTPEnabled: user.TOTPEnabled,
		LastLogin:   user.LastLogin,
	})
}
