package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gameplan-service/internal/models"
	"gameplan-service/internal/repositories"
	"gameplan-service/internal/telemetry"
)

// SettingsHandler serves the per-member settings screen.
type SettingsHandler struct {
	repo    repositories.SettingsRepository
	emitter *telemetry.AuditEmitter
}

func NewSettingsHandler(repo repositories.SettingsRepository, emitter *telemetry.AuditEmitter) *SettingsHandler {
	return &SettingsHandler{repo: repo, emitter: emitter}
}

type settingsResponse struct {
	models.Settings
	StatusColor string `json:"status_color"`
}

func (h *SettingsHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	s, err := h.repo.GetSettings(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, settingsResponse{Settings: s, StatusColor: models.StatusColor(s.Status)})
}

func (h *SettingsHandler) Put(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req struct {
		DisplayName          string `json:"display_name"`
		Status               string `json:"status"`
		Bio                  string `json:"bio"`
		NotificationsEnabled *bool  `json:"notifications_enabled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s := models.DefaultSettings(userID)
	s.DisplayName = strings.TrimSpace(req.DisplayName)
	s.Bio = req.Bio
	if req.Status != "" {
		s.Status = req.Status
	}
	switch s.Status {
	case models.StatusOnline, models.StatusAway, models.StatusOffline:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be online, away or offline"})
		return
	}
	if req.NotificationsEnabled != nil {
		s.NotificationsEnabled = *req.NotificationsEnabled
	}

	saved, err := h.repo.SaveSettings(c.Request.Context(), s)
	if err != nil {
		writeFailed(c, "save settings", err)
		return
	}

	audit(c, h.emitter, "INFO", "settings updated", "settings:"+userID)
	c.JSON(http.StatusOK, settingsResponse{Settings: saved, StatusColor: models.StatusColor(saved.Status)})
}

func requireUser(c *gin.Context) (string, bool) {
	userID := userIDFromContext(c)
	if userID == nil || strings.TrimSpace(*userID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing X-User-ID header"})
		return "", false
	}
	return strings.TrimSpace(*userID), true
}
