package web

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/cmsadmin/pkg/httpx"
)

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks holds one entry per dependency: "ok", "skipped" or an error.
type HealthChecks struct {
	Store    string `json:"store"`
	CMS      string `json:"cms"`
	Platform string `json:"platform"`
}

const readyzTimeout = 3 * time.Second

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness probe endpoint returning basic service health status, uptime, and version information
//	@Description	This endpoint always returns 200 OK if the service is running
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	web.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		}
		httpx.WriteJSON(w, http.StatusOK, response)
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe checking the session store and both backend APIs
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	web.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	web.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st Pinger,
	cms, platform HealthChecker,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyzTimeout)
		defer cancel()

		checks := &HealthChecks{Store: "skipped", CMS: "skipped", Platform: "skipped"}
		overallStatus := "ok"
		statusCode := http.StatusOK

		degrade := func(field *string, msg string) {
			*field = msg
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if st != nil {
			checks.Store = "ok"
			if err := st.Ping(ctx); err != nil {
				degrade(&checks.Store, "error: "+err.Error())
			}
		}
		if cms != nil {
			checks.CMS = "ok"
			if !cms.Healthy(ctx) {
				degrade(&checks.CMS, "error: unreachable")
			}
		}
		if platform != nil {
			checks.Platform = "ok"
			if !platform.Healthy(ctx) {
				degrade(&checks.Platform, "error: unreachable")
			}
		}

		response := HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		}
		httpx.WriteJSON(w, statusCode, response)
	}
}
