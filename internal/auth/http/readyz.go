package http

import (
	"net/http"

	"github.com/aussiebroadwan/authapp/internal/auth/store"
	"github.com/aussiebroadwan/authapp/pkg/authsdk"
	"github.com/aussiebroadwan/authapp/pkg/httpx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe reporting whether the database is reachable
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.ReadyResponse	"status, checks"
//	@Failure		503	{object}	authsdk.ReadyResponse	"status, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{"database": "ok"}
		overallStatus := "ok"
		statusCode := http.StatusOK

		// Check database connectivity
		if err := st.Ping(r.Context()); err != nil {
			checks["database"] = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, authsdk.ReadyResponse{
			Status: overallStatus,
			Checks: checks,
		})
	}
}
