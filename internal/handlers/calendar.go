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

// CalendarHandler serves the agenda, event creation and the ICS feed.
type CalendarHandler struct {
	eventRepo   repositories.EventRepository
	emitter     *telemetry.AuditEmitter
	loc         *time.Location
	horizonDays int
	feedName    string
	now         func() time.Time
}

func NewCalendarHandler(eventRepo repositories.EventRepository, emitter *telemetry.AuditEmitter, loc *time.Location, horizonDays int, feedName string) *CalendarHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &CalendarHandler{
		eventRepo:   eventRepo,
		emitter:     emitter,
		loc:         loc,
		horizonDays: horizonDays,
		feedName:    feedName,
		now:         time.Now,
	}
}

// Agenda returns occurrences keyed by day for ?from=&to=.
func (h *CalendarHandler) Agenda(c *gin.Context) {
	agenda, ok := h.buildAgenda(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, agenda)
}

// ICS exports the same window as an iCalendar feed.
func (h *CalendarHandler) ICS(c *gin.Context) {
	agenda, ok := h.buildAgenda(c)
	if !ok {
		return
	}

	body, err := calendar.ExportICS(agenda, h.feedName, h.loc, h.now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export calendar"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="gameplan.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}

func (h *CalendarHandler) buildAgenda(c *gin.Context) (calendar.Agenda, bool) {
	window, err := calendar.NewWindow(c.Query("from"), c.Query("to"), h.horizonDays, h.now(), h.loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return calendar.Agenda{}, false
	}

	events, err := h.eventRepo.ListEvents(c.Request.Context(), window.FromDay(), window.ToDay())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load events"})
		return calendar.Agenda{}, false
	}
	return calendar.Build(events, window, h.loc), true
}

// CreateEvent stores an event on a day, today when none is given.
func (h *CalendarHandler) CreateEvent(c *gin.Context) {
	var req struct {
		Day        string `json:"day"`
		Name       string `json:"name"`
		Location   string `json:"location"`
		Recurrence string `json:"recurrence"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please enter an event name"})
		return
	}
	day := strings.TrimSpace(req.Day)
	if day == "" {
		day = calendar.Today(h.now(), h.loc)
	} else if _, err := time.Parse(display.DayLayout, day); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid day %q", day)})
		return
	}
	rule := strings.TrimSpace(req.Recurrence)
	if err := calendar.ValidateRecurrence(rule); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.eventRepo.CreateEvent(c.Request.Context(), models.CalendarEvent{
		Day:        day,
		Name:       name,
		Location:   req.Location,
		Recurrence: rule,
	})
	if err != nil {
		writeFailed(c, "add event", err)
		return
	}

	audit(c, h.emitter, "INFO", "event created: "+event.Name, fmt.Sprintf("event:%d", event.ID))
	c.JSON(http.StatusCreated, event)
}

// DeleteEvent removes an event and all its occurrences.
func (h *CalendarHandler) DeleteEvent(c *gin.Context) {
	eventID, ok := parseID(c, "event_id", "event")
	if !ok {
		return
	}

	if err := h.eventRepo.DeleteEvent(c.Request.Context(), eventID); err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		writeFailed(c, "delete event", err)
		return
	}

	audit(c, h.emitter, "INFO", "event deleted", fmt.Sprintf("event:%d", eventID))
	c.Status(http.StatusNoContent)
}
