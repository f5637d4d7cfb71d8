// Command preview renders the dashboard to a PNG file without a panel.
// By default it draws a built-in sample report; -live fetches real data using
// the same configuration as the main program.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"weather-dashboard/config"
	"weather-dashboard/dashboard"
	"weather-dashboard/datasource"
	"weather-dashboard/display"
	"weather-dashboard/models"
	"weather-dashboard/render"
)

func main() {
	out := flag.String("out", "preview.png", "Output PNG file")
	fontDir := flag.String("fonts", "pic", "Directory holding the DejaVu fonts")
	units := flag.String("units", "imperial", "Temperature units of the sample report")
	live := flag.Bool("live", false, "Fetch real weather data using config.json and .env")
	flag.Parse()

	report := sampleReport()
	if *live {
		cfg, err := config.Load(config.DefaultConfigFile, config.DefaultEnvFile)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		*units = cfg.Provider.Units

		provider, err := datasource.NewProvider(cfg.Provider.Name, cfg.Provider.APIKey,
			datasource.WithBaseURL(cfg.Provider.BaseURL),
			datasource.WithUnits(cfg.Provider.Units),
		)
		if err != nil {
			log.Fatalf("Failed to create weather provider: %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		fmt.Printf("Fetching weather data for %s from %s...\n", cfg.Location, provider.Name())
		current, days, err := datasource.FetchCurrentAndForecast(ctx, provider, cfg.Location)
		if err != nil {
			log.Fatalf("Failed to fetch weather data: %v", err)
		}
		report = dashboard.Report{Current: current, Forecast: days, Updated: time.Now()}
	}

	fonts := render.LoadFontSet(
		render.FontSpec{Path: filepath.Join(*fontDir, "DejaVuSans-Bold.ttf"), Size: 25},
		render.FontSpec{Path: filepath.Join(*fontDir, "DejaVuSans.ttf"), Size: 21},
		render.FontSpec{Path: filepath.Join(*fontDir, "DejaVuSans.ttf"), Size: 12},
	)

	canvas := render.NewCanvas(dashboard.Width, dashboard.Height)
	dashboard.NewRenderer(fonts, *units, "").Render(canvas, report)

	sess, err := display.Open(display.NewPNGSink(*out))
	if err != nil {
		log.Fatalf("Failed to open output: %v", err)
	}
	showErr := sess.Show(canvas.Bitmap())
	if err := sess.Close(); err != nil {
		log.Printf("Failed to close output: %v", err)
	}
	if showErr != nil {
		log.Printf("Failed to write preview: %v", showErr)
		os.Exit(1)
	}
}

func sampleReport() dashboard.Report {
	return dashboard.Report{
		Current: models.WeatherSnapshot{Provider: "sample", Temperature: 68.4, Timestamp: time.Now()},
		Forecast: []models.ForecastDay{
			{High: 75, Low: 60, Description: "clear sky"},
			{High: 70, Low: 55, Description: "scattered clouds and light wind expected this afternoon"},
			{High: 65, Low: 50, Description: "sunny"},
		},
		Updated: time.Now(),
	}
}
