package datasource

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"weather-dashboard/models"
)

// countingProvider is a Provider that returns canned data and counts calls
type countingProvider struct {
	current, forecast int
}

func (c *countingProvider) GetWeather(ctx context.Context, loc models.Location) (models.WeatherSnapshot, error) {
	c.current++
	return models.WeatherSnapshot{Provider: c.Name(), Temperature: 50}, nil
}

func (c *countingProvider) FetchForecast(ctx context.Context, loc models.Location, days int) ([]models.ForecastDay, error) {
	c.forecast++
	return make([]models.ForecastDay, days), nil
}

func (c *countingProvider) Name() string { return "Counting" }

func TestRateLimitedProvider_Forwards(t *testing.T) {
	inner := &countingProvider{}
	p := NewRateLimitedProvider(inner, 100)

	if !strings.HasSuffix(p.Name(), "[Rate Limited]") {
		t.Fatalf("name=%q", p.Name())
	}
	current, days, err := FetchCurrentAndForecast(context.Background(), p, testLocation)
	if err != nil {
		t.Fatal(err)
	}
	if current.Temperature != 50 || len(days) != models.ForecastDays {
		t.Fatalf("got %+v %+v", current, days)
	}
	if inner.current != 1 || inner.forecast != 1 {
		t.Fatalf("calls current=%d forecast=%d", inner.current, inner.forecast)
	}
}

func TestRateLimitedProvider_CanceledWait(t *testing.T) {
	inner := &countingProvider{}
	// one token per hour: the second request has to wait
	p := NewRateLimitedProvider(inner, 1.0/3600)

	if _, err := p.GetWeather(context.Background(), testLocation); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.GetWeather(ctx, testLocation)
	if !errors.Is(err, ErrNoWeatherData) {
		t.Fatalf("want ErrNoWeatherData, got %v", err)
	}
	if inner.current != 1 {
		t.Fatalf("inner provider called %d times", inner.current)
	}
}

func TestRateLimitedProvider_PacesForecastAfterCurrent(t *testing.T) {
	inner := &countingProvider{}
	// 20 requests per second: the forecast waits about 50ms for the token
	p := NewRateLimitedProvider(inner, 20)

	start := time.Now()
	if _, _, err := FetchCurrentAndForecast(context.Background(), p, testLocation); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Fatalf("second request was not delayed, cycle took %v", elapsed)
	}
	if inner.current != 1 || inner.forecast != 1 {
		t.Fatalf("calls current=%d forecast=%d", inner.current, inner.forecast)
	}
}

func TestRateLimitedProvider_SharedLimiter(t *testing.T) {
	inner := &countingProvider{}
	p := NewRateLimitedProvider(inner, 1.0/3600)

	if _, err := p.GetWeather(context.Background(), testLocation); err != nil {
		t.Fatal(err)
	}

	// the current request used the only token, so the forecast cannot run
	// before the deadline
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := p.FetchForecast(ctx, testLocation, models.ForecastDays)
	if !errors.Is(err, ErrNoWeatherData) {
		t.Fatalf("want ErrNoWeatherData, got %v", err)
	}
	if inner.forecast != 0 {
		t.Fatalf("inner forecast called %d times", inner.forecast)
	}
}
