package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/authapp/pkg/authsdk"
	"github.com/aussiebroadwan/authapp/pkg/httpx"
)

// HealthHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness probe returning status, server time, uptime in seconds and environment.
//	@Description	This endpoint always returns 200 OK if the service is running
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, timestamp, uptime, environment"
//	@Router			/health [get].
func HealthHandler(startTime time.Time, environment string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := authsdk.HealthResponse{
			Status:      "healthy",
			Timestamp:   time.Now().UTC(),
			Uptime:      time.Since(startTime).Seconds(),
			Environment: environment,
		}
		httpx.WriteJSON(w, http.StatusOK, response)
	}
}
