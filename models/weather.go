package models

import (
	"fmt"
	"time"
)

// Location is the fixed point the dashboard reports on
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// String formats the location for log lines
func (l Location) String() string {
	return fmt.Sprintf("%.4f,%.4f", l.Lat, l.Lon)
}

// WeatherSnapshot represents the current conditions from a provider
type WeatherSnapshot struct {
	Provider    string    `json:"provider"`
	Temperature float64   `json:"temperature"` // in the provider's configured units
	Timestamp   time.Time `json:"timestamp"`   // observation time reported by the provider
}
