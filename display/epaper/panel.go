// Package epaper drives a Waveshare e-paper HAT over SPI.
package epaper

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"

	"weather-dashboard/display"

	xdraw "golang.org/x/image/draw"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/devices/v3/waveshare2in13v4"
	"periph.io/x/host/v3"
)

// Panel is a display.Driver for the Waveshare 2.13" V4 HAT
type Panel struct {
	portName string
	port     spi.PortCloser
	dev      *waveshare2in13v4.Dev
	frame    *image1bit.VerticalLSB
}

var _ display.Driver = (*Panel)(nil)

// New creates a panel on the named SPI port; "" selects the first port.
// Nothing touches the hardware until Init.
func New(portName string) *Panel {
	return &Panel{portName: portName}
}

func (p *Panel) Init() error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("failed to initialize host: %w", err)
	}
	port, err := spireg.Open(p.portName)
	if err != nil {
		return fmt.Errorf("failed to open SPI port %q: %w", p.portName, err)
	}
	opts := waveshare2in13v4.EPD2in13v4
	dev, err := waveshare2in13v4.NewHat(port, &opts)
	if err != nil {
		port.Close()
		return fmt.Errorf("failed to create e-paper device: %w", err)
	}
	p.port, p.dev = port, dev

	log.Printf("E-paper panel ready on %s, %v", port, dev.Bounds().Size())
	return dev.Init()
}

func (p *Panel) Clear() error {
	if p.dev == nil {
		return errNotInitialized
	}
	return p.dev.Clear(color.White)
}

// Render converts img to the panel's 1-bit format
func (p *Panel) Render(img image.Image) error {
	if p.dev == nil {
		return errNotInitialized
	}
	p.frame = Fit(img, p.dev.Bounds())
	return nil
}

// Refresh pushes the converted frame with a full refresh
func (p *Panel) Refresh() error {
	if p.dev == nil {
		return errNotInitialized
	}
	if p.frame == nil {
		return errors.New("nothing rendered")
	}
	return p.dev.Draw(p.dev.Bounds(), p.frame, image.Point{})
}

func (p *Panel) Sleep() error {
	if p.dev == nil {
		return nil
	}
	return p.dev.Sleep()
}

func (p *Panel) Close() error {
	var errs []error
	if p.dev != nil {
		errs = append(errs, p.dev.Halt())
		p.dev = nil
	}
	if p.port != nil {
		errs = append(errs, p.port.Close())
		p.port = nil
	}
	return errors.Join(errs...)
}

var errNotInitialized = errors.New("e-paper panel not initialized")

// Fit rotates img a quarter turn when its orientation differs from bounds,
// scales it to fit inside bounds keeping its aspect ratio, centres it on a
// white background and converts it to 1-bit
func Fit(img image.Image, bounds image.Rectangle) *image1bit.VerticalLSB {
	src := img
	sb := img.Bounds()
	if (sb.Dx() > sb.Dy()) != (bounds.Dx() > bounds.Dy()) {
		src = rotate(img)
	}

	scaled := image.NewGray(bounds)
	draw.Draw(scaled, bounds, image.White, image.Point{}, draw.Src)
	if target := letterbox(src.Bounds().Size(), bounds); !target.Empty() {
		xdraw.ApproxBiLinear.Scale(scaled, target, src, src.Bounds(), draw.Src, nil)
	}

	out := image1bit.NewVerticalLSB(bounds)
	draw.Draw(out, bounds, scaled, bounds.Min, draw.Src)
	return out
}

// letterbox returns the largest rectangle of the same aspect ratio as size
// that fits in bounds, centred
func letterbox(size image.Point, bounds image.Rectangle) image.Rectangle {
	if size.X <= 0 || size.Y <= 0 {
		return image.Rectangle{}
	}
	bw, bh := bounds.Dx(), bounds.Dy()
	w, h := bw, size.Y*bw/size.X
	if h > bh {
		w, h = size.X*bh/size.Y, bh
	}
	origin := bounds.Min.Add(image.Pt((bw-w)/2, (bh-h)/2))
	return image.Rectangle{Min: origin, Max: origin.Add(image.Pt(w, h))}
}

// rotate turns img a quarter turn clockwise
func rotate(img image.Image) *image.Gray {
	sb := img.Bounds()
	w, h := sb.Dx(), sb.Dy()
	dst := image.NewGray(image.Rect(0, 0, h, w))
	for y := 0; y < w; y++ {
		for x := 0; x < h; x++ {
			c := color.GrayModel.Convert(img.At(sb.Min.X+y, sb.Min.Y+h-1-x)).(color.Gray)
			dst.SetGray(x, y, c)
		}
	}
	return dst
}
