package epaper

import (
	"image"
	"image/color"
	"testing"
)

func gray(img image.Image, x, y int) uint8 {
	return color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
}

func TestRotate(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 2))
	for i := range src.Pix {
		src.Pix[i] = 0xFF
	}
	src.SetGray(0, 0, color.Gray{})

	dst := rotate(src)
	if dst.Bounds() != image.Rect(0, 0, 2, 4) {
		t.Fatalf("bounds = %v", dst.Bounds())
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 2; x++ {
			want := uint8(0xFF)
			if x == 1 && y == 0 {
				want = 0
			}
			if got := dst.GrayAt(x, y).Y; got != want {
				t.Errorf("(%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestFit(t *testing.T) {
	panel := image.Rect(0, 0, 122, 250)

	// left half black, right half white
	src := image.NewGray(image.Rect(0, 0, 360, 240))
	for y := 0; y < 240; y++ {
		for x := 0; x < 360; x++ {
			if x >= 180 {
				src.SetGray(x, y, color.Gray{Y: 0xFF})
			}
		}
	}

	out := Fit(src, panel)
	if out.Bounds() != panel {
		t.Fatalf("bounds = %v, want %v", out.Bounds(), panel)
	}
	// rotated to 240x360 and scaled to 122x183, centred 33 rows down.
	// The left half of the landscape frame ends up on top.
	if gray(out, 60, 10) != 0xFF {
		t.Error("letterbox above the frame should be white")
	}
	if gray(out, 60, 50) != 0 {
		t.Error("top of the frame should be black")
	}
	if gray(out, 60, 200) != 0xFF {
		t.Error("bottom of the frame should be white")
	}
	if gray(out, 60, 240) != 0xFF {
		t.Error("letterbox below the frame should be white")
	}
}

func TestFit_SameOrientation(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 50, 100))
	out := Fit(src, image.Rect(0, 0, 122, 250))
	if gray(out, 60, 125) != 0 {
		t.Error("black frame should stay black")
	}
	// 50x100 fills the width, leaving 3 white rows at each end
	if gray(out, 60, 0) != 0xFF || gray(out, 60, 249) != 0xFF {
		t.Error("letterbox rows should be white")
	}
}

func TestLetterbox(t *testing.T) {
	tests := []struct {
		size   image.Point
		bounds image.Rectangle
		want   image.Rectangle
	}{
		{image.Pt(240, 360), image.Rect(0, 0, 122, 250), image.Rect(0, 33, 122, 216)},
		{image.Pt(360, 240), image.Rect(0, 0, 360, 240), image.Rect(0, 0, 360, 240)},
		{image.Pt(100, 100), image.Rect(0, 0, 200, 100), image.Rect(50, 0, 150, 100)},
		{image.Pt(0, 10), image.Rect(0, 0, 10, 10), image.Rectangle{}},
	}
	for _, tt := range tests {
		got := letterbox(tt.size, tt.bounds)
		if got != tt.want {
			t.Errorf("letterbox(%v, %v) = %v, want %v", tt.size, tt.bounds, got, tt.want)
		}
		// width and height keep the source ratio to within a pixel
		if !got.Empty() {
			if d := got.Dx()*tt.size.Y - got.Dy()*tt.size.X; d < -tt.size.X || d > tt.size.X {
				t.Errorf("letterbox(%v) = %v distorts the aspect ratio", tt.size, got)
			}
		}
	}
}

func TestPanel_RequiresInit(t *testing.T) {
	p := New("")
	if err := p.Clear(); err == nil {
		t.Error("Clear before Init should fail")
	}
	if err := p.Render(image.NewGray(image.Rect(0, 0, 1, 1))); err == nil {
		t.Error("Render before Init should fail")
	}
	if err := p.Sleep(); err != nil {
		t.Errorf("Sleep before Init: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close before Init: %v", err)
	}
}
