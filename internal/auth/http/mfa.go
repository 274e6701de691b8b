package http

import (
	"net/http"

	"github.com/aussiebroadwan/authapp/internal/auth/domain"
	"github.com/aussiebroadwan/authapp/internal/auth/service"
	"github.com/aussiebroadwan/authapp/pkg/authsdk"
	"github.com/aussiebroadwan/authapp/pkg/httpx"
)

// MFAHandler handles all 2FA endpoints. Every handler runs behind RequireBearer.
type MFAHandler struct {
	AuthService *service.AuthService
}

// HandleSetup handles POST /2fa/setup
//
//	@Summary		Start TOTP enrollment
//	@Description	Generates a new pending secret for the authenticated user and returns it with a QR code data URL.
//	@Description	2FA stays disabled until /2fa/verify succeeds.
//	@Tags			2FA
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.SetupResponse	"Secret and QR code"
//	@Failure		401	{object}	authsdk.ErrorResponse	"Invalid or missing token"
//	@Failure		404	{object}	authsdk.ErrorResponse	"User not found"
//	@Failure		500	{object}	authsdk.ErrorResponse	"Internal server error"
//	@Router			/2fa/setup [post].
func (h *MFAHandler) HandleSetup(w http.ResponseWriter, r *http.Request, id domain.Identity) {
	enr, err := h.AuthService.SetupTOTP(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.SetupResponse{
		Secret: enr.Secret,
		QRCode: enr.QRCode,
	})
}

// HandleVerify handles POST /2fa/verify
//
//	@Summary		Confirm TOTP enrollment
//	@Description	Verifies a code against the pending secret and enables 2FA.
//	@Tags			2FA
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.VerifyRequest	true	"Code from the authenticator app"
//	@Success		200		{object}	authsdk.SuccessResponse
//	@Failure		400		{object}	authsdk.ErrorResponse	"No 2FA setup in progress, or invalid code"
//	@Failure		401		{object}	authsdk.ErrorResponse	"Invalid or missing token"
//	@Router			/2fa/verify [post].
func (h *MFAHandler) HandleVerify(w http.ResponseWriter, r *http.Request, id domain.Identity) {
	var req authsdk.VerifyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.AuthService.VerifyTOTP(r.Context(), id, req.Token); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.SuccessResponse{Success: true})
}

// HandleDisable handles POST /2fa/disable
//
//	@Summary		Disable 2FA
//	@Description	Clears the enabled flag and the stored secret.
//	@Tags			2FA
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.SuccessResponse
//	@Failure		401	{object}	authsdk.ErrorResponse	"Invalid or missing token"
//	@Failure		404	{object}	authsdk.ErrorResponse	"User not found"
//	@Router			/2fa/disable [post].
func (h *MFAHandler) HandleDisable(w http.ResponseWriter, r *http.Request, id domain.Identity) {
	if err := h.AuthService.DisableTOTP(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.SuccessResponse{Success: true})
}
