package handlers

import (
	"net/http"

	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/service"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService *service.SystemService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Provider string `json:"provider"`
	Error    string `json:"error,omitempty"`
}

// Health checks system health: symbol-cache database connectivity and
// whether a provider credential is configured. A missing credential makes
// the service degraded, not down, since health and version stay reachable.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	provider := "configured"
	if !h.systemService.ProviderConfigured() {
		provider = "unconfigured"
	}

	if err := h.systemService.CheckHealth(); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
			Provider: provider,
			Error:    err.Error(),
		})
		return
	}

	status := "healthy"
	if provider == "unconfigured" {
		status = "degraded"
	}
	respondJSON(w, http.StatusOK, HealthResponse{
		Status:   status,
		Database: "connected",
		Provider: provider,
	})
}

// VersionResponse represents the version check response
type VersionResponse struct {
	AppVersion string `json:"app_version"`
}

// Version handles GET requests to retrieve the application version.
//
// Endpoint: GET /api/system/version
// Response: 200 OK with VersionResponse
func (h *SystemHandler) Version(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, VersionResponse{
		AppVersion: h.systemService.CheckVersion(),
	})
}
