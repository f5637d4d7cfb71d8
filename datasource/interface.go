package datasource

import (
	"context"
	"errors"
	"fmt"

	"weather-dashboard/models"
)

// WeatherProvider is an interface for services that can fetch current weather data
type WeatherProvider interface {
	// GetWeather fetches current conditions for a location
	GetWeather(ctx context.Context, loc models.Location) (models.WeatherSnapshot, error)

	// Name returns the provider's name
	Name() string
}

// ForecastSource is an interface for services that can fetch daily forecasts
type ForecastSource interface {
	// FetchForecast fetches at least the requested number of daily entries, today first
	FetchForecast(ctx context.Context, loc models.Location, days int) ([]models.ForecastDay, error)

	// Name returns the source's name
	Name() string
}

// Provider is a service that offers both current conditions and daily forecasts
type Provider interface {
	WeatherProvider
	ForecastSource
}

// FetchCurrentAndForecast issues the current-conditions request and then the
// forecast request. The forecast is requested even when the current request
// failed, so the returned error reports both causes. Either failure discards
// the other result.
func FetchCurrentAndForecast(ctx context.Context, p Provider, loc models.Location) (models.WeatherSnapshot, []models.ForecastDay, error) {
	current, currentErr := p.GetWeather(ctx, loc)
	days, forecastErr := p.FetchForecast(ctx, loc, models.ForecastDays)

	if err := errors.Join(currentErr, forecastErr); err != nil {
		return models.WeatherSnapshot{}, nil, err
	}
	return current, days, nil
}

// NewProvider builds the named provider ("openweathermap" or "weatherapi")
func NewProvider(name, apiKey string, opts ...Option) (Provider, error) {
	switch name {
	case "", "openweathermap":
		return NewOpenWeatherMapProvider(apiKey, opts...), nil
	case "weatherapi":
		return NewWeatherAPIProvider(apiKey, opts...), nil
	default:
		return nil, fmt.Errorf("unknown weather provider %q", name)
	}
}
