package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"code-converter/backend/internal/features/config/application"
	"code-converter/backend/internal/features/config/domain"
)

// ProfileHandler holds the config service.
type ProfileHandler struct {
	configService application.ConfigService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(configService application.ConfigService) *ProfileHandler {
	return &ProfileHandler{
		configService: configService,
	}
}

// ProfileResponse pairs the running profile with the stored one.
type ProfileResponse struct {
	Path   string                    `json:"path"`
	Active domain.GenerationProfile  `json:"active"`
	Stored *domain.GenerationProfile `json:"stored"`
}

// RegisterRoutes mounts the profile endpoints on group.
func (h *ProfileHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/profile", h.GetProfileHandler)
	group.POST("/profile", h.SaveProfileHandler)
}

// GetProfileHandler handles fetching the generation profile.
func (h *ProfileHandler) GetProfileHandler(c *gin.Context) {
	stored, err := h.configService.StoredProfile()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load generation profile: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{
		Path:   h.configService.ProfilePath(),
		Active: h.configService.ActiveProfile(),
		Stored: stored,
	})
}

// SaveProfileHandler handles saving the generation profile. Saved changes are
// picked up by the local model runner on the next start.
func (h *ProfileHandler) SaveProfileHandler(c *gin.Context) {
	var profile domain.GenerationProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	restartRequired, err := h.configService.SaveProfile(profile)
	if errors.Is(err, application.ErrInvalidProfile) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save generation profile: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          "Generation profile saved successfully",
		"restart_required": restartRequired,
	})
}
