package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"gameplan-service/internal/calendar"
	"gameplan-service/internal/display"
	"gameplan-service/internal/models"
	"gameplan-service/internal/repositories"
	"gameplan-service/internal/telemetry"
)

// AnnouncementHandler serves the announcements board.
type AnnouncementHandler struct {
	repo    repositories.AnnouncementRepository
	emitter *telemetry.AuditEmitter
	loc     *time.Location
	now     func() time.Time
}

func NewAnnouncementHandler(repo repositories.AnnouncementRepository, emitter *telemetry.AuditEmitter, loc *time.Location) *AnnouncementHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &AnnouncementHandler{repo: repo, emitter: emitter, loc: loc, now: time.Now}
}

// List returns announcements newest first. With ?grouped=true they come in
// sections keyed by the day each one refers to.
func (h *AnnouncementHandler) List(c *gin.Context) {
	list, err := h.repo.ListAnnouncements(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load announcements"})
		return
	}

	if c.Query("grouped") == "true" {
		sections := display.Sections(display.GroupByDay(list, func(a models.Announcement) string { return a.Day }))
		c.JSON(http.StatusOK, gin.H{"sections": sections})
		return
	}
	c.JSON(http.StatusOK, gin.H{"announcements": list})
}

func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Day         string `json:"day"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please enter a title"})
		return
	}
	day := strings.TrimSpace(req.Day)
	if day == "" {
		day = calendar.Today(h.now(), h.loc)
	} else if _, err := time.Parse(display.DayLayout, day); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid day %q", day)})
		return
	}

	a, err := h.repo.CreateAnnouncement(c.Request.Context(), title, req.Description, day)
	if err != nil {
		writeFailed(c, "post announcement", err)
		return
	}

	audit(c, h.emitter, "INFO", "announcement posted: "+a.Title, fmt.Sprintf("announcement:%d", a.ID))
	c.JSON(http.StatusCreated, a)
}

func (h *AnnouncementHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "announcement_id", "announcement")
	if !ok {
		return
	}

	if err := h.repo.DeleteAnnouncement(c.Request.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrAnnouncementNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "announcement not found"})
			return
		}
		writeFailed(c, "delete announcement", err)
		return
	}

	audit(c, h.emitter, "INFO", "announcement deleted", fmt.Sprintf("announcement:%d", id))
	c.Status(http.StatusNoContent)
}

// BatchDelete removes every selected announcement; failures do not stop the rest.
func (h *AnnouncementHandler) BatchDelete(c *gin.Context) {
	var req batchDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, deleted := deleteBatch(c.Request.Context(), req.IDs, h.repo.DeleteAnnouncement)
	if deleted > 0 {
		audit(c, h.emitter, "INFO", fmt.Sprintf("%d announcements deleted", deleted), "announcements")
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}
