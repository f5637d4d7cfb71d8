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

// DefaultOpenWeatherMapURL is the base of the 2.5 API family
const DefaultOpenWeatherMapURL = "https://api.openweathermap.org/data/2.5"

// OpenWeatherMapProvider implements both WeatherProvider and ForecastSource interfaces
type OpenWeatherMapProvider struct {
	apiKey string
	providerOptions
}

// NewOpenWeatherMapProvider creates a new OpenWeatherMap provider.
// Requests carry no timeout of their own; they end with the caller's context.
func NewOpenWeatherMapProvider(apiKey string, opts ...Option) *OpenWeatherMapProvider {
	return &OpenWeatherMapProvider{
		apiKey:          apiKey,
		providerOptions: newProviderOptions(DefaultOpenWeatherMapURL, opts),
	}
}

// Name returns the provider name
func (p *OpenWeatherMapProvider) Name() string {
	return "OpenWeatherMap"
}

func (p *OpenWeatherMapProvider) params(loc models.Location) url.Values {
	params := url.Values{}
	params.Add("lat", strconv.FormatFloat(loc.Lat, 'f', -1, 64))
	params.Add("lon", strconv.FormatFloat(loc.Lon, 'f', -1, 64))
	params.Add("appid", p.apiKey)
	params.Add("units", p.units)
	return params
}

// owmCurrentResponse is the subset of /weather the dashboard reads
type owmCurrentResponse struct {
	Main struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
	Dt int64 `json:"dt"`
}

// GetWeather fetches current conditions for a location
func (p *OpenWeatherMapProvider) GetWeather(ctx context.Context, loc models.Location) (models.WeatherSnapshot, error) {
	endpoint := fmt.Sprintf("%s/weather", p.baseURL)

	var response owmCurrentResponse
	if err := getJSON(ctx, p.httpClient, p.Name(), endpoint, p.params(loc), &response); err != nil {
		return models.WeatherSnapshot{}, err
	}

	if response.Main.Temp == nil {
		return models.WeatherSnapshot{}, &FetchError{
			Provider: p.Name(), Endpoint: endpoint, StatusCode: http.StatusOK,
			Err: fmt.Errorf("response missing main.temp"),
		}
	}

	timestamp := time.Now()
	if response.Dt > 0 {
		timestamp = time.Unix(response.Dt, 0)
	}

	return models.WeatherSnapshot{
		Provider:    p.Name(),
		Temperature: *response.Main.Temp,
		Timestamp:   timestamp,
	}, nil
}

// owmOneCallResponse is the subset of /onecall the dashboard reads
type owmOneCallResponse struct {
	Daily []struct {
		Dt   int64 `json:"dt"`
		Temp *struct {
			Min float64 `json:"min"`
			Max float64 `json:"max"`
		} `json:"temp"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"daily"`
}

// FetchForecast fetches the daily One Call forecast for a location.
// A body with fewer than days usable entries is treated as malformed.
func (p *OpenWeatherMapProvider) FetchForecast(ctx context.Context, loc models.Location, days int) ([]models.ForecastDay, error) {
	endpoint := fmt.Sprintf("%s/onecall", p.baseURL)
	params := p.params(loc)
	params.Add("exclude", "minutely,alerts")

	var response owmOneCallResponse
	if err := getJSON(ctx, p.httpClient, p.Name(), endpoint, params, &response); err != nil {
		return nil, err
	}

	malformed := func(format string, args ...interface{}) error {
		return &FetchError{
			Provider: p.Name(), Endpoint: endpoint, StatusCode: http.StatusOK,
			Err: fmt.Errorf(format, args...),
		}
	}

	if len(response.Daily) < days {
		return nil, malformed("response has %d daily entries, need %d", len(response.Daily), days)
	}

	// Convert response to our model
	forecast := make([]models.ForecastDay, 0, days)
	for i := 0; i < days; i++ {
		item := response.Daily[i]
		if item.Temp == nil {
			return nil, malformed("daily[%d] missing temp", i)
		}
		if len(item.Weather) == 0 {
			return nil, malformed("daily[%d] missing weather", i)
		}

		forecast = append(forecast, models.ForecastDay{
			High:        item.Temp.Max,
			Low:         item.Temp.Min,
			Description: item.Weather[0].Description,
		})
	}

	return forecast, nil
}

// Verify that the provider implements both interfaces
var _ Provider = (*OpenWeatherMapProvider)(nil)
