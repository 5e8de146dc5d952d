package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"code-converter/backend/internal/config"
	"code-converter/backend/internal/features/conversion/application"
)

// reportedStrategies always appear in the health payload, loaded or not.
var reportedStrategies = []string{"remote", "local", application.PlaceholderStrategyName}

// HealthHandler reports which conversion strategies are configured.
type HealthHandler struct {
	service     application.ConversionService
	localDevice string
}

// NewHealthHandler creates a new HealthHandler. localDevice is empty when the
// local model runner is not initialized.
func NewHealthHandler(service application.ConversionService, localDevice string) *HealthHandler {
	return &HealthHandler{service: service, localDevice: localDevice}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status      string          `json:"status"`
	Service     string          `json:"service"`
	Version     string          `json:"version"`
	Strategies  map[string]bool `json:"strategies"`
	LocalDevice string          `json:"local_device"`
}

// Health always answers 200; the placeholder strategy keeps text conversion
// working even with no model configured.
func (h *HealthHandler) Health(c *gin.Context) {
	strategies := make(map[string]bool, len(reportedStrategies))
	for _, name := range reportedStrategies {
		strategies[name] = false
	}
	for _, s := range h.service.Strategies() {
		strategies[s.Name] = s.Available
	}

	device := h.localDevice
	if device == "" {
		device = "none"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:      "healthy",
		Service:     config.ServiceName,
		Version:     config.Version,
		Strategies:  strategies,
		LocalDevice: device,
	})
}
