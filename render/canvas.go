// Package render composes the dashboard bitmap.
//
// Every drawing primitive is total: bad input draws nothing rather than
// failing, so one bad field never blanks the rest of the dashboard.
package render

import (
	"image"
	"image/color"

	"weather-dashboard/layout"

	"github.com/fogleman/gg"
)

// ink is the foreground colour; the canvas background is white
var ink = color.RGBA{A: 0xFF}

// threshold splits anti-aliased grey into black and white
const threshold = 0x80

// Surface is the set of drawing primitives the dashboard is composed with
type Surface interface {
	// DrawText draws a single line with its top-left corner at p
	DrawText(p image.Point, text string, f Font)
	// DrawHLine draws a horizontal bar of length pixels starting at x
	DrawHLine(x, y, length, thickness int)
	// DrawVLine draws a vertical bar of length pixels starting at y
	DrawVLine(x, y, length, thickness int)
}

// Canvas is an in-memory bitmap with a white background
type Canvas struct {
	dc *gg.Context
}

// NewCanvas creates a white canvas of the given size
func NewCanvas(width, height int) *Canvas {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()
	return &Canvas{dc: dc}
}

// Bounds returns the canvas rectangle
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.dc.Width(), c.dc.Height())
}

// DrawText draws text at an exact pixel position. Nothing is wrapped; pixels
// outside the canvas are discarded.
func (c *Canvas) DrawText(p image.Point, text string, f Font) {
	if text == "" {
		return
	}
	if f == nil {
		f = DefaultFont
	}
	f.draw(c, p, text)
}

// DrawHLine draws a horizontal separator centred on row y
func (c *Canvas) DrawHLine(x, y, length, thickness int) {
	c.fillRect(x, y-thickness/2, length, thickness)
}

// DrawVLine draws a vertical separator centred on column x
func (c *Canvas) DrawVLine(x, y, length, thickness int) {
	c.fillRect(x-thickness/2, y, thickness, length)
}

func (c *Canvas) fillRect(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.dc.SetColor(ink)
	c.dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	c.dc.Fill()
}

// Bitmap returns the canvas as a two-tone grayscale image: every pixel is
// either 0 (black) or 255 (white).
func (c *Canvas) Bitmap() *image.Gray {
	src := c.dc.Image()
	bounds := src.Bounds()
	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			g := color.GrayModel.Convert(src.At(x, y)).(color.Gray)
			if g.Y < threshold {
				out.SetGray(x, y, color.Gray{Y: 0})
			} else {
				out.SetGray(x, y, color.Gray{Y: 0xFF})
			}
		}
	}
	return out
}

// Size implements drivers.Displayer
func (c *Canvas) Size() (x, y int16) {
	return int16(c.dc.Width()), int16(c.dc.Height())
}

// SetPixel implements drivers.Displayer
func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	if !image.Pt(int(x), int(y)).In(c.Bounds()) {
		return
	}
	c.dc.SetColor(col)
	c.dc.SetPixel(int(x), int(y))
}

// Display implements drivers.Displayer; the canvas has nothing to flush
func (c *Canvas) Display() error {
	return nil
}

// DrawWrapped word-wraps text into box and draws the lines top-down
func DrawWrapped(s Surface, box layout.Box, text string, f Font) {
	if f == nil {
		f = DefaultFont
	}
	lineHeight := layout.LineHeight(f.Measure)
	lines := layout.Wrap(text, f.Measure, box.W, box.H)
	for i, p := range layout.Place(box, lines, lineHeight) {
		s.DrawText(p, lines[i], f)
	}
}
