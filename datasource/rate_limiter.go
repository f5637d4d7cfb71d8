package datasource

import (
	"context"
	"fmt"

	"weather-dashboard/models"

	"golang.org/x/time/rate"
)

// RateLimitedProvider wraps a Provider with a single limiter shared by the
// current and forecast endpoints. The limiter holds one token, so the second
// request of a cycle waits 1/rps after the first.
type RateLimitedProvider struct {
	provider Provider
	limiter  *rate.Limiter
	name     string
}

// NewRateLimitedProvider creates a provider that waits for limiter permission before each request.
// rps is the maximum requests per second allowed (can be fractional for less than 1 request per second)
func NewRateLimitedProvider(provider Provider, rps float64) *RateLimitedProvider {
	return &RateLimitedProvider{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), 1),
		name:     fmt.Sprintf("%s [Rate Limited]", provider.Name()),
	}
}

func (r *RateLimitedProvider) wait(ctx context.Context, endpoint string) error {
	// Wait for rate limiter permission or context cancellation
	if err := r.limiter.Wait(ctx); err != nil {
		return &FetchError{
			Provider: r.name, Endpoint: endpoint,
			Err: fmt.Errorf("rate limit wait canceled: %w", err),
		}
	}
	return nil
}

// GetWeather implements WeatherProvider interface with rate limiting
func (r *RateLimitedProvider) GetWeather(ctx context.Context, loc models.Location) (models.WeatherSnapshot, error) {
	if err := r.wait(ctx, "current"); err != nil {
		return models.WeatherSnapshot{}, err
	}
	return r.provider.GetWeather(ctx, loc)
}

// FetchForecast implements ForecastSource interface with rate limiting
func (r *RateLimitedProvider) FetchForecast(ctx context.Context, loc models.Location, days int) ([]models.ForecastDay, error) {
	if err := r.wait(ctx, "forecast"); err != nil {
		return nil, err
	}
	return r.provider.FetchForecast(ctx, loc, days)
}

// Name returns the provider name
func (r *RateLimitedProvider) Name() string {
	return r.name
}

// Verify that our rate limited type implements the required interfaces
var _ Provider = (*RateLimitedProvider)(nil)
