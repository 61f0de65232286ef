package web

import (
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/cmsadmin/pkg/httpx"
)

// Vital is one Web Vitals beacon as sent by the console.
type Vital struct {
	Name           string  `json:"name" example:"LCP"`
	Value          float64 `json:"value" example:"1834.5"`
	Rating         string  `json:"rating" example:"good"`
	ID             string  `json:"id" example:"v4-1700000000000-123"`
	Delta          float64 `json:"delta,omitempty"`
	NavigationType string  `json:"navigationType,omitempty"`
}

var (
	knownVitals  = map[string]bool{"CLS": true, "FCP": true, "FID": true, "INP": true, "LCP": true, "TTFB": true}
	knownRatings = map[string]bool{"good": true, "needs-improvement": true, "poor": true}
)

func (v Vital) validate() string {
	switch {
	case !knownVitals[v.Name]:
		return "unknown metric name"
	case v.Rating != "" && !knownRatings[v.Rating]:
		return "rating must be good, needs-improvement or poor"
	case v.Value < 0:
		return "value must not be negative"
	}
	return ""
}

type VitalsHandler struct {
	Logger *slog.Logger
}

// ServeHTTP godoc
//
//	@Summary		Record a Web Vitals beacon
//	@Description	Logs one Core Web Vitals measurement reported by the console.
//	@Tags			Telemetry
//	@Accept			json
//	@Param			vital	body	web.Vital	true	"measurement"
//	@Success		204
//	@Failure		400	{object}	httpx.ErrorBody
//	@Failure		429	{object}	httpx.ErrorBody
//	@Router			/api/vitals [post].
func (h *VitalsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var v Vital
	if err := httpx.DecodeJSON(w, r, &v); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if msg := v.validate(); msg != "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", msg)
		return
	}

	level := slog.LevelInfo
	if v.Rating == "poor" {
		level = slog.LevelWarn
	}
	h.Logger.Log(r.Context(), level, "web vital",
		"metric", v.Name,
		"value", v.Value,
		"rating", v.Rating,
		"vital_id", v.ID,
		"navigation_type", v.NavigationType,
	)

	w.WriteHeader(http.StatusNoContent)
}
