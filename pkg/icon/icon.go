// Package icon renders the category marker pins. Exactly one pin is built
// per category, once, at startup; every source shares its category's pin.
// Drawing is plain stdlib image code, all in-memory.
package icon

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
)

// Size is the edge length of the square pin image in pixels.
const Size = 28

// Icon is one pre-rendered category pin.
type Icon struct {
	Category string
	PNG      []byte
}

// Render draws a filled disc with a darker rim and a white core in the
// given hex color and encodes it as PNG.
func Render(category, hexColor string) (*Icon, error) {
	fill, err := parseHexColor(hexColor)
	if err != nil {
		return nil, fmt.Errorf("failed to render icon for %q: %w", category, err)
	}
	rim := darken(fill, 0.65)
	core := color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}

	img := image.NewRGBA(image.Rect(0, 0, Size, Size))
	cx, cy := float64(Size)/2, float64(Size)/2
	const (
		outer = float64(Size)/2 - 1.5
		inner = outer - 2.0
		dot   = 3.0
	)

	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			var c color.RGBA
			switch {
			case d <= dot:
				c = core
			case d <= inner:
				c = fill
			case d <= outer:
				c = rim
			default:
				continue // transparent
			}
			// 1px soft edge against the transparent background.
			if a := outer + 1 - d; a < 1 {
				c = scaleAlpha(c, a)
			}
			img.SetRGBA(x, y, c)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode icon for %q: %w", category, err)
	}
	return &Icon{Category: category, PNG: buf.Bytes()}, nil
}

func parseHexColor(s string) (color.RGBA, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{r, g, b, 0xFF}, nil
}

func darken(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}

func scaleAlpha(c color.RGBA, a float64) color.RGBA {
	if a < 0 {
		a = 0
	}
	// Premultiplied alpha, as image.RGBA expects.
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}
