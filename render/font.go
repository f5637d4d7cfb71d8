package render

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freesans"
)

// Font measures and draws single lines of text.
type Font interface {
	// Measure returns the width of s and the height from the top of the line
	// to the lowest inked pixel of s.
	Measure(s string) (width, height int)

	// Ascent is the distance from the top of a line to its baseline.
	Ascent() int

	draw(c *Canvas, p image.Point, s string)
}

// DefaultFont is used wherever a nil Font is passed.
var DefaultFont Font = FaceFont(basicfont.Face7x13)

// faceFont draws a golang.org/x/image font face
type faceFont struct {
	face   font.Face
	ascent int
}

// FaceFont adapts a font.Face
func FaceFont(face font.Face) Font {
	return &faceFont{face: face, ascent: face.Metrics().Ascent.Ceil()}
}

// LoadTrueType parses a TrueType or OpenType file and returns a face of
// size pixels.
func LoadTrueType(path string, size float64) (Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face from %s: %w", path, err)
	}
	return FaceFont(face), nil
}

func (f *faceFont) Measure(s string) (int, int) {
	if s == "" {
		return 0, 0
	}
	bounds, advance := font.BoundString(f.face, s)
	height := f.ascent
	if bottom := bounds.Max.Y.Ceil(); bottom > 0 {
		height += bottom
	}
	return advance.Ceil(), height
}

func (f *faceFont) Ascent() int {
	return f.ascent
}

func (f *faceFont) draw(c *Canvas, p image.Point, s string) {
	c.dc.SetFontFace(f.face)
	c.dc.SetColor(color.Black)
	c.dc.DrawString(s, float64(p.X), float64(p.Y+f.ascent))
}

// bitmapFont draws a tinyfont bitmap font
type bitmapFont struct {
	font *tinyfont.Font
}

// BitmapFont adapts a tinyfont font. These fonts need no files, so they back
// every TrueType face that fails to load.
func BitmapFont(f *tinyfont.Font) Font {
	return &bitmapFont{font: f}
}

func (f *bitmapFont) Measure(s string) (int, int) {
	if s == "" {
		return 0, 0
	}
	_, outbox := tinyfont.LineWidth(f.font, s)
	return int(outbox), int(f.font.YAdvance)
}

// Ascent approximates the baseline at three quarters of the line advance
func (f *bitmapFont) Ascent() int {
	return int(f.font.YAdvance) * 3 / 4
}

func (f *bitmapFont) draw(c *Canvas, p image.Point, s string) {
	tinyfont.WriteLine(c, f.font, int16(p.X), int16(p.Y+f.Ascent()), s, ink)
}

// FontSpec names a font file and its pixel size
type FontSpec struct {
	Path string
	Size float64
}

// FontSet holds the three faces of the dashboard
type FontSet struct {
	Title  Font
	Text   Font
	Update Font
}

// LoadFontSet loads the title, text and update faces. A face that cannot be
// loaded is logged and replaced by a built-in bitmap font, so the returned
// set is always complete.
func LoadFontSet(title, text, update FontSpec) FontSet {
	load := func(role string, spec FontSpec, fallback *tinyfont.Font) Font {
		f, err := LoadTrueType(spec.Path, spec.Size)
		if err != nil {
			log.Printf("Warning: %s font unavailable, using built-in bitmap font: %v", role, err)
			return BitmapFont(fallback)
		}
		return f
	}

	return FontSet{
		Title:  load("title", title, &freesans.Bold12pt7b),
		Text:   load("text", text, &freesans.Regular9pt7b),
		Update: load("update", update, &tinyfont.TomThumb),
	}
}
