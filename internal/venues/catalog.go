// Package venues serves the static venue catalog behind the finder map.
package venues

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"gameplan-service/internal/display"
	"gameplan-service/internal/models"
)

// RegionDelta is the span of the map viewport around a selected point.
const RegionDelta = 0.005

const earthRadiusMeters = 6371000.0

var ErrVenueNotFound = errors.New("venue not found")

//go:embed catalog.yaml
var defaultCatalog []byte

type catalogFile struct {
	Venues []models.Venue `yaml:"venues"`
}

// Catalog is an immutable list of venues loaded once at start-up.
type Catalog struct {
	venues []models.Venue
	byID   map[int]models.Venue
}

// Load reads the catalog from path, or the built-in catalog when path is empty.
func Load(path string) (*Catalog, error) {
	data := defaultCatalog
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read venue catalog: %w", err)
		}
		data = raw
	}
	return Parse(data)
}

// Parse decodes a YAML catalog and checks ids are unique.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode venue catalog: %w", err)
	}
	return New(file.Venues)
}

// New builds a catalog from venues.
func New(venues []models.Venue) (*Catalog, error) {
	byID := make(map[int]models.Venue, len(venues))
	for _, v := range venues {
		if _, dup := byID[v.ID]; dup {
			return nil, fmt.Errorf("duplicate venue id %d", v.ID)
		}
		if v.Name == "" {
			return nil, fmt.Errorf("venue %d has no name", v.ID)
		}
		byID[v.ID] = v
	}
	list := make([]models.Venue, len(venues))
	copy(list, venues)
	return &Catalog{venues: list, byID: byID}, nil
}

// All returns every venue in catalog order.
func (c *Catalog) All() []models.Venue {
	out := make([]models.Venue, len(c.venues))
	copy(out, c.venues)
	return out
}

// Get returns a venue by id.
func (c *Catalog) Get(id int) (models.Venue, error) {
	v, ok := c.byID[id]
	if !ok {
		return models.Venue{}, ErrVenueNotFound
	}
	return v, nil
}

// Search returns venues whose name contains query. An empty query clears the results.
func (c *Catalog) Search(query string) []models.Venue {
	return display.Filter(c.venues, query, func(v models.Venue) string { return v.Name })
}

// Nearby orders venues by distance from the given point. limit <= 0 means all.
func (c *Catalog) Nearby(lat, lng float64, limit int) []models.VenueDistance {
	out := make([]models.VenueDistance, 0, len(c.venues))
	for _, v := range c.venues {
		out = append(out, models.VenueDistance{
			Venue:          v,
			DistanceMeters: Distance(lat, lng, v.Latitude, v.Longitude),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceMeters < out[j].DistanceMeters
	})
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}

// RegionFor centres the map on v.
func RegionFor(v models.Venue) models.Region {
	return models.Region{
		Latitude:       v.Latitude,
		Longitude:      v.Longitude,
		LatitudeDelta:  RegionDelta,
		LongitudeDelta: RegionDelta,
	}
}

// Distance is the great-circle distance in metres between two points.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLng := (lng2 - lng1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(a)))
}
