package models

// Venue is a bookable place from the static catalog.
type Venue struct {
	ID           int     `yaml:"id" json:"id"`
	Name         string  `yaml:"name" json:"name"`
	Latitude     float64 `yaml:"latitude" json:"latitude"`
	Longitude    float64 `yaml:"longitude" json:"longitude"`
	Description  string  `yaml:"description" json:"description"`
	Category     string  `yaml:"category" json:"category"`
	Availability string  `yaml:"availability" json:"availability,omitempty"`
	Phone        string  `yaml:"phone" json:"phone,omitempty"`
}

// Region is the map viewport centred on a coordinate.
type Region struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	LatitudeDelta  float64 `json:"latitude_delta"`
	LongitudeDelta float64 `json:"longitude_delta"`
}

// VenueDistance pairs a venue with its distance from the caller in metres.
type VenueDistance struct {
	Venue
	DistanceMeters float64 `json:"distance_meters"`
}
