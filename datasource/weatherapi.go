package datasource

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"weather-dashboard/models"
)

// DefaultWeatherAPIURL is the base of the WeatherAPI v1 endpoints
const DefaultWeatherAPIURL = "https://api.weatherapi.com/v1"

// WeatherAPIProvider implements both WeatherProvider and ForecastSource interfaces
type WeatherAPIProvider struct {
	apiKey string
	providerOptions
}

// NewWeatherAPIProvider creates a new WeatherAPI provider
func NewWeatherAPIProvider(apiKey string, opts ...Option) *WeatherAPIProvider {
	return &WeatherAPIProvider{
		apiKey:          apiKey,
		providerOptions: newProviderOptions(DefaultWeatherAPIURL, opts),
	}
}

// Name returns the provider name
func (p *WeatherAPIProvider) Name() string {
	return "WeatherAPI"
}

// pick selects the configured scale. WeatherAPI returns both Celsius and
// Fahrenheit; "standard" (Kelvin) is derived from Celsius.
func (p *WeatherAPIProvider) pick(c, f float64) float64 {
	switch p.units {
	case "imperial":
		return f
	case "standard":
		return c + 273.15
	default:
		return c
	}
}

func (p *WeatherAPIProvider) params(loc models.Location) url.Values {
	params := url.Values{}
	params.Add("q", strconv.FormatFloat(loc.Lat, 'f', -1, 64)+","+strconv.FormatFloat(loc.Lon, 'f', -1, 64))
	params.Add("key", p.apiKey)
	return params
}

// GetWeather fetches current conditions for a location
func (p *WeatherAPIProvider) GetWeather(ctx context.Context, loc models.Location) (models.WeatherSnapshot, error) {
	endpoint := fmt.Sprintf("%s/current.json", p.baseURL)

	var response struct {
		Current *struct {
			TempC            float64 `json:"temp_c"`
			TempF            float64 `json:"temp_f"`
			LastUpdatedEpoch int64   `json:"last_updated_epoch"`
		} `json:"current"`
	}
	if err := getJSON(ctx, p.httpClient, p.Name(), endpoint, p.params(loc), &response); err != nil {
		return models.WeatherSnapshot{}, err
	}

	if response.Current == nil {
		return models.WeatherSnapshot{}, &FetchError{
			Provider: p.Name(), Endpoint: endpoint, StatusCode: http.StatusOK,
			Err: fmt.Errorf("response missing current"),
		}
	}

	timestamp := time.Now()
	if response.Current.LastUpdatedEpoch > 0 {
		timestamp = time.Unix(response.Current.LastUpdatedEpoch, 0)
	}

	return models.WeatherSnapshot{
		Provider:    p.Name(),
		Temperature: p.pick(response.Current.TempC, response.Current.TempF),
		Timestamp:   timestamp,
	}, nil
}

// FetchForecast fetches the daily forecast for a location
func (p *WeatherAPIProvider) FetchForecast(ctx context.Context, loc models.Location, days int) ([]models.ForecastDay, error) {
	endpoint := fmt.Sprintf("%s/forecast.json", p.baseURL)
	params := p.params(loc)
	params.Add("days", strconv.Itoa(days))

	var response struct {
		Forecast struct {
			ForecastDay []struct {
				Date string `json:"date"`
				Day  *struct {
					MaxTempC  *float64 `json:"maxtemp_c"`
					MaxTempF  *float64 `json:"maxtemp_f"`
					MinTempC  *float64 `json:"mintemp_c"`
					MinTempF  *float64 `json:"mintemp_f"`
					Condition *struct {
						Text string `json:"text"`
					} `json:"condition"`
				} `json:"day"`
			} `json:"forecastday"`
		} `json:"forecast"`
	}
	if err := getJSON(ctx, p.httpClient, p.Name(), endpoint, params, &response); err != nil {
		return nil, err
	}

	malformed := func(format string, args ...interface{}) error {
		return &FetchError{
			Provider: p.Name(), Endpoint: endpoint, StatusCode: http.StatusOK,
			Err: fmt.Errorf(format, args...),
		}
	}

	entries := response.Forecast.ForecastDay
	if len(entries) < days {
		return nil, malformed("response has %d forecast days, need %d", len(entries), days)
	}

	forecast := make([]models.ForecastDay, 0, days)
	for i, entry := range entries[:days] {
		day := entry.Day
		switch {
		case day == nil:
			return nil, malformed("forecastday[%d] missing day", i)
		case day.MaxTempC == nil || day.MaxTempF == nil || day.MinTempC == nil || day.MinTempF == nil:
			return nil, malformed("forecastday[%d] missing temperatures", i)
		case day.Condition == nil:
			return nil, malformed("forecastday[%d] missing condition", i)
		}

		forecast = append(forecast, models.ForecastDay{
			High:        p.pick(*day.MaxTempC, *day.MaxTempF),
			Low:         p.pick(*day.MinTempC, *day.MinTempF),
			Description: day.Condition.Text,
		})
	}

	return forecast, nil
}

var _ Provider = (*WeatherAPIProvider)(nil)
