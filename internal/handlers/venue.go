package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gameplan-service/internal/calendar"
	"gameplan-service/internal/models"
	"gameplan-service/internal/venues"
)

// VenueCatalog is the read side of the venue catalog.
type VenueCatalog interface {
	All() []models.Venue
	Get(id int) (models.Venue, error)
	Search(query string) []models.Venue
	Nearby(lat, lng float64, limit int) []models.VenueDistance
}

// VenueHandler serves the finder screen.
type VenueHandler struct {
	catalog VenueCatalog
	loc     *time.Location
	now     func() time.Time
}

func NewVenueHandler(catalog VenueCatalog, loc *time.Location) *VenueHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &VenueHandler{catalog: catalog, loc: loc, now: time.Now}
}

// List returns the whole catalog, or the matches for ?q= when present.
func (h *VenueHandler) List(c *gin.Context) {
	if q, ok := c.GetQuery("q"); ok {
		c.JSON(http.StatusOK, gin.H{"venues": h.catalog.Search(q)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"venues": h.catalog.All()})
}

// Nearby orders venues by distance from ?lat=&lng=. Without a usable
// position the finder still works, so the plain catalog is returned.
func (h *VenueHandler) Nearby(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil || math.IsNaN(lat) || math.IsNaN(lng) || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		c.JSON(http.StatusOK, gin.H{"location_available": false, "venues": h.catalog.All()})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	c.JSON(http.StatusOK, gin.H{"location_available": true, "venues": h.catalog.Nearby(lat, lng, limit)})
}

// Get returns one venue and the map region centred on it.
func (h *VenueHandler) Get(c *gin.Context) {
	venue, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"venue": venue, "region": venues.RegionFor(venue)})
}

// Plan hands off to the calendar with an event form prefilled for today at
// the venue.
func (h *VenueHandler) Plan(c *gin.Context) {
	venue, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.Route{
		Screen: models.ScreenCalendar,
		Params: models.RouteParams{
			Day:                  calendar.Today(h.now(), h.loc),
			Location:             venue.Name,
			ShowCreateEventModal: true,
		},
	})
}

func (h *VenueHandler) lookup(c *gin.Context) (models.Venue, bool) {
	id, ok := parseID(c, "venue_id", "venue")
	if !ok {
		return models.Venue{}, false
	}
	venue, err := h.catalog.Get(id)
	if err != nil {
		if errors.Is(err, venues.ErrVenueNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "venue not found"})
			return models.Venue{}, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load venue"})
		return models.Venue{}, false
	}
	return venue, true
}
