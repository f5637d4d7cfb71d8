package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"weather-dashboard/config"
	"weather-dashboard/dashboard"
	"weather-dashboard/datasource"
	"weather-dashboard/display"
	"weather-dashboard/display/epaper"
	"weather-dashboard/models"
	"weather-dashboard/render"
)

// exitInterrupted is the conventional status for a SIGINT-terminated process
const exitInterrupted = 130

func main() {
	os.Exit(realMain())
}

func realMain() int {
	// Load configuration from config.json and .env
	cfg, err := config.Load(config.DefaultConfigFile, config.DefaultEnvFile)
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider, err := newProvider(cfg)
	if err != nil {
		log.Printf("Failed to create weather provider: %v", err)
		return 1
	}

	driver, err := newDriver(cfg)
	if err != nil {
		log.Printf("Failed to create display driver: %v", err)
		return 1
	}

	log.Println("Setting up fonts...")
	fonts := render.LoadFontSet(
		render.FontSpec{Path: cfg.FontPath(cfg.Fonts.Title), Size: cfg.Fonts.TitleSize},
		render.FontSpec{Path: cfg.FontPath(cfg.Fonts.Text), Size: cfg.Fonts.TextSize},
		render.FontSpec{Path: cfg.FontPath(cfg.Fonts.Update), Size: cfg.Fonts.UpdateSize},
	)

	c := &cycle{
		provider: provider,
		location: cfg.Location,
		renderer: dashboard.NewRenderer(fonts, cfg.Provider.Units, cfg.TimeLayout),
		driver:   driver,
		width:    cfg.Display.Width,
		height:   cfg.Display.Height,
		now:      time.Now,
	}

	err = c.run(ctx)
	if ctx.Err() != nil {
		log.Println("Script interrupted by user")
		return exitInterrupted
	}
	if err != nil {
		log.Printf("Error: %v", err)
		return 1
	}
	log.Println("Refresh complete")
	return 0
}

// newProvider builds the configured weather provider, rate limited unless the
// configured rate is zero
func newProvider(cfg *config.Config) (datasource.Provider, error) {
	provider, err := datasource.NewProvider(cfg.Provider.Name, cfg.Provider.APIKey,
		datasource.WithBaseURL(cfg.Provider.BaseURL),
		datasource.WithUnits(cfg.Provider.Units),
	)
	if err != nil {
		return nil, err
	}
	log.Printf("Using %s API key: %s", provider.Name(), cfg.MaskedAPIKey())

	if cfg.Provider.RateLimit > 0 {
		provider = datasource.NewRateLimitedProvider(provider, cfg.Provider.RateLimit)
		log.Printf("Applied rate limiting to %s provider", provider.Name())
	}
	return provider, nil
}

// newDriver builds the configured display driver
func newDriver(cfg *config.Config) (display.Driver, error) {
	switch cfg.Display.Driver {
	case config.DriverEPaper:
		return epaper.New(cfg.Display.SPIPort), nil
	case config.DriverPNG:
		return display.NewPNGSink(cfg.Display.OutputPath), nil
	default:
		return nil, fmt.Errorf("unknown display driver %q", cfg.Display.Driver)
	}
}

// cycle is one fetch, render and display pass
type cycle struct {
	provider datasource.Provider
	location models.Location
	renderer *dashboard.Renderer
	driver   display.Driver
	width    int
	height   int
	now      func() time.Time
}

// run performs the refresh. The display is put to sleep on every return path,
// including a recovered panic.
func (c *cycle) run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Error in refresh: %v\n%s", r, debug.Stack())
			err = fmt.Errorf("refresh panicked: %v", r)
		}
	}()

	sess, err := display.Open(c.driver)
	if err != nil {
		return fmt.Errorf("failed to open display: %w", err)
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			log.Printf("Failed to put the display to sleep: %v", cerr)
			if err == nil {
				err = cerr
			}
		}
	}()

	log.Printf("Fetching weather data for %s from %s...", c.location, c.provider.Name())
	current, days, err := datasource.FetchCurrentAndForecast(ctx, c.provider, c.location)
	if err != nil {
		log.Println("Failed to fetch weather data.")
		return fmt.Errorf("failed to fetch weather data: %w", err)
	}
	log.Printf("Current temperature %.1f, %d forecast days", current.Temperature, len(days))

	canvas := render.NewCanvas(c.width, c.height)
	c.renderer.Render(canvas, dashboard.Report{
		Current:  current,
		Forecast: days,
		Updated:  c.now(),
	})

	log.Println("Displaying the image on the display...")
	if err := sess.Show(canvas.Bitmap()); err != nil {
		return fmt.Errorf("failed to show dashboard: %w", err)
	}
	return nil
}
