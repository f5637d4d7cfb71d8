// Package dashboard lays weather data out on the 360x240 e-paper grid.
package dashboard

import (
	"image"
	"time"

	"weather-dashboard/layout"
	"weather-dashboard/models"
	"weather-dashboard/render"
)

// DefaultTimeLayout formats the footer timestamp, e.g. "3/7/2025 9:05"
const DefaultTimeLayout = "1/2/2006 3:04"

// Width and Height are the canvas size the grid is drawn for
const (
	Width  = 360
	Height = 240
)

const separatorThickness = 2

// Fixed positions on the grid
var (
	nowTitle = image.Pt(0, 0)
	nowTemp  = image.Pt(0, 30)

	todayTitle = image.Pt(100, 0)
	todayHigh  = image.Pt(100, 30)
	todayLow   = image.Pt(225, 30)
	todayDesc  = image.Pt(100, 60)

	footer = image.Pt(70, 225)
)

// column is one of the two lower forecast panels
type column struct {
	title string
	head  image.Point
	high  image.Point
	low   image.Point
	desc  layout.Box
}

var columns = [2]column{
	{
		title: "Tomorrow",
		head:  image.Pt(0, 95),
		high:  image.Pt(0, 125),
		low:   image.Pt(0, 150),
		desc:  layout.Box{X: 0, Y: 175, W: 170, H: 45},
	},
	{
		title: "Next Day",
		head:  image.Pt(180, 95),
		high:  image.Pt(180, 125),
		low:   image.Pt(180, 150),
		desc:  layout.Box{X: 180, Y: 175, W: 170, H: 45},
	},
}

// Report is everything one refresh cycle draws
type Report struct {
	Current  models.WeatherSnapshot
	Forecast []models.ForecastDay
	Updated  time.Time
}

// Renderer draws a Report onto a render.Surface
type Renderer struct {
	fonts      render.FontSet
	units      string
	timeLayout string
}

// NewRenderer creates a renderer. An empty timeLayout uses DefaultTimeLayout.
func NewRenderer(fonts render.FontSet, units, timeLayout string) *Renderer {
	if timeLayout == "" {
		timeLayout = DefaultTimeLayout
	}
	return &Renderer{fonts: fonts, units: units, timeLayout: timeLayout}
}

// Render draws the full dashboard. Forecast days that are missing are left
// blank.
func (r *Renderer) Render(s render.Surface, report Report) {
	s.DrawHLine(0, 90, Width, separatorThickness)
	s.DrawVLine(85, 0, 90, separatorThickness)
	s.DrawVLine(175, 90, 120, separatorThickness)

	s.DrawText(nowTitle, "Now", r.fonts.Title)
	s.DrawText(nowTemp, FormatTemp(report.Current.Temperature, r.units), r.fonts.Text)

	if len(report.Forecast) > 0 {
		today := report.Forecast[0]
		s.DrawText(todayTitle, "Today", r.fonts.Title)
		s.DrawText(todayHigh, r.high(today), r.fonts.Text)
		s.DrawText(todayLow, r.low(today), r.fonts.Text)
		s.DrawText(todayDesc, Capitalize(today.Description), r.fonts.Text)
	}

	for i, col := range columns {
		if i+1 >= len(report.Forecast) {
			break
		}
		day := report.Forecast[i+1]
		s.DrawText(col.head, col.title, r.fonts.Title)
		s.DrawText(col.high, r.high(day), r.fonts.Text)
		s.DrawText(col.low, r.low(day), r.fonts.Text)
		render.DrawWrapped(s, col.desc, Capitalize(day.Description), r.fonts.Text)
	}

	s.DrawText(footer, "Last Updated: "+report.Updated.Format(r.timeLayout), r.fonts.Update)
}

func (r *Renderer) high(d models.ForecastDay) string {
	return "High: " + FormatTemp(d.High, r.units)
}

func (r *Renderer) low(d models.ForecastDay) string {
	return "Low: " + FormatTemp(d.Low, r.units)
}
