package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/almanacai/almanac/internal/models"
	"github.com/almanacai/almanac/internal/service"
)

const version = "1.0.0"

// HealthHandler handles GET /health with optional dependency checks
type HealthHandler struct {
	geo *service.GeocodingService
}

func NewHealthHandler(geo *service.GeocodingService) *HealthHandler {
	return &HealthHandler{geo: geo}
}

// Health handles GET /health. The geocoding upstream stands in for the
// Open-Meteo family as a connectivity probe; Wikipedia is deliberately not
// pinged on every check.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"server": "ok"}
	overallStatus := "healthy"

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if h.geo != nil {
		if err := h.geo.TestConnection(ctx); err != nil {
			checks["geocoding"] = "unavailable: " + err.Error()
			overallStatus = "degraded"
		} else {
			checks["geocoding"] = "ok"
		}
	} else {
		checks["geocoding"] = "disabled"
	}

	statusCode := http.StatusOK
	if overallStatus == "degraded" {
		statusCode = http.StatusServiceUnavailable
	}

	models.WriteJSON(w, statusCode, models.HealthResponse{
		Status:  overallStatus,
		Version: version,
		Checks:  checks,
	})
}
