package render

import (
	"image"
	"image/color"
	"testing"

	"weather-dashboard/layout"
)

func black(img *image.Gray, x, y int) bool {
	return img.GrayAt(x, y).Y == 0
}

func countBlack(img *image.Gray, r image.Rectangle) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if black(img, x, y) {
				n++
			}
		}
	}
	return n
}

func TestNewCanvas_White(t *testing.T) {
	c := NewCanvas(360, 240)
	if c.Bounds() != image.Rect(0, 0, 360, 240) {
		t.Fatalf("bounds=%v", c.Bounds())
	}
	img := c.Bitmap()
	if n := countBlack(img, img.Bounds()); n != 0 {
		t.Fatalf("fresh canvas has %d black pixels", n)
	}
}

func TestCanvas_BitmapIsTwoTone(t *testing.T) {
	c := NewCanvas(100, 40)
	c.DrawText(image.Pt(2, 2), "Light rain", nil)
	c.DrawHLine(0, 30, 100, 3)
	img := c.Bitmap()
	for i, v := range img.Pix {
		if v != 0 && v != 0xFF {
			t.Fatalf("pixel %d has grey value %d", i, v)
		}
	}
}

func TestCanvas_DrawHLine(t *testing.T) {
	c := NewCanvas(360, 240)
	c.DrawHLine(0, 90, 360, 2)
	img := c.Bitmap()

	for x := 0; x < 360; x++ {
		if !black(img, x, 89) || !black(img, x, 90) {
			t.Fatalf("pixel (%d,89..90) should be black", x)
		}
	}
	if black(img, 10, 88) || black(img, 10, 91) {
		t.Fatal("line is thicker than 2px")
	}
}

func TestCanvas_DrawVLine(t *testing.T) {
	c := NewCanvas(360, 240)
	c.DrawVLine(85, 0, 90, 2)
	img := c.Bitmap()

	for y := 0; y < 90; y++ {
		if !black(img, 84, y) || !black(img, 85, y) {
			t.Fatalf("pixel (84..85,%d) should be black", y)
		}
	}
	if black(img, 85, 90) {
		t.Fatal("line is longer than 90px")
	}
	if black(img, 83, 10) || black(img, 86, 10) {
		t.Fatal("line is thicker than 2px")
	}
}

func TestCanvas_InvalidInputsDrawNothing(t *testing.T) {
	c := NewCanvas(50, 50)
	c.DrawHLine(0, 10, 0, 2)
	c.DrawHLine(0, 10, 20, 0)
	c.DrawVLine(10, 0, -5, 2)
	c.DrawText(image.Pt(0, 0), "", nil)
	c.DrawHLine(500, 500, 20, 2) // off canvas
	img := c.Bitmap()
	if n := countBlack(img, img.Bounds()); n != 0 {
		t.Fatalf("%d pixels drawn", n)
	}
}

func TestCanvas_DrawTextAtPosition(t *testing.T) {
	c := NewCanvas(200, 100)
	c.DrawText(image.Pt(50, 20), "X", nil)
	img := c.Bitmap()

	if black(img, 0, 0) {
		t.Error("origin should be empty when drawing at an offset")
	}
	w, h := DefaultFont.Measure("X")
	if n := countBlack(img, image.Rect(50, 20, 50+w, 20+h)); n == 0 {
		t.Error("text at (50,20) should ink pixels inside its measured box")
	}
	// allow one pixel of resampling bleed around the box
	grown := image.Rect(49, 19, 51+w, 21+h)
	outside := countBlack(img, img.Bounds()) - countBlack(img, grown)
	if outside != 0 {
		t.Errorf("%d pixels inked outside the measured box", outside)
	}
}

func TestCanvas_Displayer(t *testing.T) {
	c := NewCanvas(20, 10)
	if x, y := c.Size(); x != 20 || y != 10 {
		t.Fatalf("size=%dx%d", x, y)
	}
	c.SetPixel(3, 4, color.RGBA{A: 0xFF})
	c.SetPixel(-1, 4, color.RGBA{A: 0xFF})
	c.SetPixel(3, 40, color.RGBA{A: 0xFF})
	if err := c.Display(); err != nil {
		t.Fatal(err)
	}
	img := c.Bitmap()
	if !black(img, 3, 4) {
		t.Error("pixel (3,4) should be black")
	}
	if n := countBlack(img, img.Bounds()); n != 1 {
		t.Errorf("%d black pixels, want 1", n)
	}
}

// recorder is a Surface that keeps the text it is asked to draw
type recorder struct {
	texts  []string
	points []image.Point
}

func (r *recorder) DrawText(p image.Point, text string, f Font) {
	r.texts = append(r.texts, text)
	r.points = append(r.points, p)
}
func (r *recorder) DrawHLine(x, y, length, thickness int) {}
func (r *recorder) DrawVLine(x, y, length, thickness int) {}

func TestDrawWrapped(t *testing.T) {
	rec := &recorder{}
	// basicfont 7x13: 7px per rune, 13px line height
	box := layout.Box{X: 180, Y: 175, W: 70, H: 30}
	DrawWrapped(rec, box, "scattered clouds and light wind", nil)

	want := []string{"scattered", "clouds and"}
	if len(rec.texts) != len(want) {
		t.Fatalf("drew %q, want %q", rec.texts, want)
	}
	for i := range want {
		if rec.texts[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, rec.texts[i], want[i])
		}
		if p := image.Pt(180, 175+13*i); rec.points[i] != p {
			t.Errorf("line %d at %v, want %v", i, rec.points[i], p)
		}
	}
}

func TestDrawWrapped_Empty(t *testing.T) {
	rec := &recorder{}
	DrawWrapped(rec, layout.Box{W: 100, H: 100}, "", nil)
	if len(rec.texts) != 0 {
		t.Fatalf("drew %q", rec.texts)
	}
}
