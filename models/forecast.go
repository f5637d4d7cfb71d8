package models

// ForecastDay represents one day of the daily forecast.
// A forecast is an ordered slice: index 0 is today, 1 tomorrow, 2 the day after.
type ForecastDay struct {
	High        float64 `json:"high"`        // daily maximum
	Low         float64 `json:"low"`         // daily minimum
	Description string  `json:"description"` // short condition text, e.g. "light rain"
}

// ForecastDays is the number of daily entries the dashboard needs
const ForecastDays = 3
