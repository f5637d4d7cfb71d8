// Package config loads the dashboard configuration from a JSON file and the
// process environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"weather-dashboard/models"

	"github.com/joho/godotenv"
)

// Fixed locations read at startup
const (
	DefaultConfigFile = "config.json"
	DefaultEnvFile    = ".env"
)

// Display drivers understood by the program
const (
	DriverEPaper = "epaper"
	DriverPNG    = "png"
)

// Config represents the application configuration
type Config struct {
	// Weather provider configuration
	Provider struct {
		Name      string  `json:"name"` // "openweathermap" or "weatherapi"
		APIKey    string  `json:"apiKey"`
		BaseURL   string  `json:"baseURL"`
		Units     string  `json:"units"` // "standard", "metric" or "imperial"
		RateLimit float64 `json:"rateLimit"` // requests per second, 0 disables
	} `json:"provider"`

	// Location the dashboard reports on
	Location models.Location `json:"location"`

	// Font files, relative to Dir unless absolute
	Fonts struct {
		Dir        string  `json:"dir"`
		Title      string  `json:"title"`
		TitleSize  float64 `json:"titleSize"`
		Text       string  `json:"text"`
		TextSize   float64 `json:"textSize"`
		Update     string  `json:"update"`
		UpdateSize float64 `json:"updateSize"`
	} `json:"fonts"`

	// Display output
	Display struct {
		Driver     string `json:"driver"`
		SPIPort    string `json:"spiPort"`
		OutputPath string `json:"outputPath"`
		Width      int    `json:"width"`
		Height     int    `json:"height"`
	} `json:"display"`

	// TimeLayout formats the "Last Updated" footer
	TimeLayout string `json:"timeLayout"`

	// latSet and lonSet record whether a coordinate was configured at all;
	// 0,0 is a valid position and cannot mark absence
	latSet, lonSet bool
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	config := &Config{}
	config.Provider.Name = "openweathermap"
	config.Provider.Units = "imperial"
	config.Provider.RateLimit = 1.0
	config.Fonts.Dir = "pic"
	config.Fonts.Title = "DejaVuSans-Bold.ttf"
	config.Fonts.TitleSize = 25
	config.Fonts.Text = "DejaVuSans.ttf"
	config.Fonts.TextSize = 21
	config.Fonts.Update = "DejaVuSans.ttf"
	config.Fonts.UpdateSize = 12
	config.Display.Driver = DriverEPaper
	config.Display.OutputPath = "dashboard.png"
	config.Display.Width = 360
	config.Display.Height = 240
	config.TimeLayout = "1/2/2006 3:04"
	return config
}

// LoadConfig loads configuration from a JSON file on top of the defaults
func LoadConfig(filename string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	var present struct {
		Location struct {
			Lat *float64 `json:"lat"`
			Lon *float64 `json:"lon"`
		} `json:"location"`
	}
	if err := json.Unmarshal(data, &present); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	config.latSet = present.Location.Lat != nil
	config.lonSet = present.Location.Lon != nil

	return config, nil
}

// Load reads the optional env file and config file, then applies environment
// overrides and validates the result. Missing files are not an error.
func Load(configFile, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	config, err := LoadConfig(configFile)
	if errors.Is(err, os.ErrNotExist) {
		config, err = DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	if err := config.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overrides fields from environment variables looked up with lookup
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	float := func(key string, dst *float64) error {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", key, err)
			}
			*dst = f
		}
		return nil
	}

	str("WEATHER_PROVIDER", &c.Provider.Name)
	str("OPENWEATHERMAP_API_KEY", &c.Provider.APIKey)
	str("OPENWEATHERMAP_UNITS", &c.Provider.Units)
	str("FONT_DIR", &c.Fonts.Dir)
	str("DISPLAY_DRIVER", &c.Display.Driver)
	str("DISPLAY_SPI_PORT", &c.Display.SPIPort)
	str("DISPLAY_OUTPUT", &c.Display.OutputPath)
	str("DASHBOARD_TIME_LAYOUT", &c.TimeLayout)

	if c.Provider.Name == "weatherapi" {
		str("WEATHERAPI_KEY", &c.Provider.APIKey)
		str("WEATHERAPI_BASE_URL", &c.Provider.BaseURL)
	} else {
		str("OPENWEATHERMAP_BASE_URL", &c.Provider.BaseURL)
	}

	for key, dst := range map[string]*float64{
		"OPENWEATHERMAP_RPS": &c.Provider.RateLimit,
		"WEATHER_LAT":        &c.Location.Lat,
		"WEATHER_LON":        &c.Location.Lon,
	} {
		if err := float(key, dst); err != nil {
			return err
		}
	}

	if v, ok := lookup("WEATHER_LAT"); ok && strings.TrimSpace(v) != "" {
		c.latSet = true
	}
	if v, ok := lookup("WEATHER_LON"); ok && strings.TrimSpace(v) != "" {
		c.lonSet = true
	}
	return nil
}

// Validate reports every problem that would stop a refresh cycle
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Provider.APIKey) == "" {
		problems = append(problems, "API key is required")
	}
	switch c.Provider.Name {
	case "openweathermap", "weatherapi":
	default:
		problems = append(problems, fmt.Sprintf("unknown provider %q", c.Provider.Name))
	}
	switch c.Provider.Units {
	case "standard", "metric", "imperial":
	default:
		problems = append(problems, fmt.Sprintf("unknown units %q", c.Provider.Units))
	}
	if c.Provider.RateLimit < 0 {
		problems = append(problems, "rate limit must not be negative")
	}
	if !c.latSet {
		problems = append(problems, "latitude is required")
	} else if c.Location.Lat < -90 || c.Location.Lat > 90 {
		problems = append(problems, fmt.Sprintf("latitude %v out of range", c.Location.Lat))
	}
	if !c.lonSet {
		problems = append(problems, "longitude is required")
	} else if c.Location.Lon < -180 || c.Location.Lon > 180 {
		problems = append(problems, fmt.Sprintf("longitude %v out of range", c.Location.Lon))
	}
	switch c.Display.Driver {
	case DriverEPaper:
	case DriverPNG:
		if strings.TrimSpace(c.Display.OutputPath) == "" {
			problems = append(problems, "png driver needs an output path")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown display driver %q", c.Display.Driver))
	}
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		problems = append(problems, "display size must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// SetLocation configures both coordinates
func (c *Config) SetLocation(loc models.Location) {
	c.Location = loc
	c.latSet, c.lonSet = true, true
}

// FontPath resolves a font file name against the font directory
func (c *Config) FontPath(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Fonts.Dir, name)
}

// MaskedAPIKey returns the API key with all but the last four characters hidden
func (c *Config) MaskedAPIKey() string {
	key := c.Provider.APIKey
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
