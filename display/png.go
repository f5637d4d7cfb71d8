package display

import (
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/fogleman/gg"
)

// PNGSink is a Driver that writes each refreshed frame to a PNG file
type PNGSink struct {
	Path  string
	frame image.Image
}

// NewPNGSink creates a sink writing to path
func NewPNGSink(path string) *PNGSink {
	return &PNGSink{Path: path}
}

var _ Driver = (*PNGSink)(nil)

func (p *PNGSink) Init() error {
	if p.Path == "" {
		return errors.New("no output path configured")
	}
	return nil
}

func (p *PNGSink) Clear() error {
	p.frame = nil
	return nil
}

func (p *PNGSink) Render(img image.Image) error {
	if img == nil {
		return errors.New("nil image")
	}
	p.frame = img
	return nil
}

func (p *PNGSink) Refresh() error {
	if p.frame == nil {
		return errors.New("nothing rendered")
	}
	if err := gg.SavePNG(p.Path, p.frame); err != nil {
		return fmt.Errorf("failed to write %s: %w", p.Path, err)
	}
	log.Printf("Wrote dashboard to %s", p.Path)
	return nil
}

func (p *PNGSink) Sleep() error {
	return nil
}

func (p *PNGSink) Close() error {
	p.frame = nil
	return nil
}
