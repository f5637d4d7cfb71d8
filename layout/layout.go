// Package layout fits text into fixed boxes on the dashboard.
package layout

import (
	"image"
	"strings"
)

// ReferenceGlyph is measured to derive the height of one line of text
const ReferenceGlyph = "A"

// MeasureFunc returns the rendered width and height of s in pixels
type MeasureFunc func(s string) (width, height int)

// Box is a bounded region of the canvas, X/Y being its top-left corner
type Box struct {
	X, Y int
	W, H int
}

// Min returns the top-left corner of the box
func (b Box) Min() image.Point {
	return image.Pt(b.X, b.Y)
}

// LineHeight returns the height of the reference glyph under measure
func LineHeight(measure MeasureFunc) int {
	_, h := measure(ReferenceGlyph)
	return h
}

// MaxLines returns how many lines of the given height fit in maxHeight
func MaxLines(maxHeight, lineHeight int) int {
	if lineHeight <= 0 || maxHeight <= 0 {
		return 0
	}
	return maxHeight / lineHeight
}

// Wrap greedily fills lines no wider than maxWidth, keeping at most
// maxHeight/lineHeight of them. Words are never split: a word wider than
// maxWidth gets a line of its own and overflows. Text past the last line is
// dropped without an ellipsis.
func Wrap(text string, measure MeasureFunc, maxWidth, maxHeight int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	maxLines := MaxLines(maxHeight, LineHeight(measure))
	if maxLines == 0 {
		return nil
	}

	var lines []string
	line := ""
	for _, word := range words {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}

		if w, _ := measure(candidate); w <= maxWidth {
			line = candidate
			continue
		}

		if line != "" {
			lines = append(lines, line)
			if len(lines) == maxLines {
				return lines
			}
		}
		line = word
	}

	if line != "" && len(lines) < maxLines {
		lines = append(lines, line)
	}
	return lines
}

// Place returns the top-left point of each line drawn down from the top of
// box, stopping before a line whose bottom would fall below the box.
func Place(box Box, lines []string, lineHeight int) []image.Point {
	if lineHeight <= 0 {
		return nil
	}

	points := make([]image.Point, 0, len(lines))
	y := box.Y
	for range lines {
		if y+lineHeight > box.Y+box.H {
			break
		}
		points = append(points, image.Pt(box.X, y))
		y += lineHeight
	}
	return points
}
