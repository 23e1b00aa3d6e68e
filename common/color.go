// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
	"golang.org/x/image/colornames"
)

// Color represents an RGBA color with each component in the range [0, 1].
// This is the color type used for surface clear values throughout the engine.
type Color struct {
	R, G, B, A float64
}

// NewColor creates an opaque Color from RGB components in the range [0, 1].
//
// Parameters:
//   - r, g, b: red, green, and blue components
//
// Returns:
//   - Color: the opaque color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1.0}
}

// ToWGPU converts the Color to a wgpu.Color suitable for use as a render pass clear value.
//
// Returns:
//   - wgpu.Color: the equivalent wgpu color
func (c Color) ToWGPU() wgpu.Color {
	return wgpu.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// FromColor converts a standard color.Color to a Color.
//
// Parameters:
//   - c: the source color
//
// Returns:
//   - Color: the converted color with components in [0, 1]
func FromColor(c color.Color) Color {
	r, g, b, a := c.RGBA()
	return Color{
		R: float64(r) / 65535,
		G: float64(g) / 65535,
		B: float64(b) / 65535,
		A: float64(a) / 65535,
	}
}

// ParseColor parses a color from a string. Accepts "#RGB", "#RRGGBB", and
// "#RRGGBBAA" hex forms as well as SVG 1.1 color names ("cornflowerblue").
// Names are matched case-insensitively.
//
// Parameters:
//   - s: the color string to parse
//
// Returns:
//   - Color: the parsed color
//   - error: an error if the string is not a recognized color
func ParseColor(s string) (Color, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Color{}, fmt.Errorf("empty color string")
	}

	if trimmed[0] == '#' {
		return parseHexColor(trimmed[1:])
	}

	if named, ok := colornames.Map[strings.ToLower(trimmed)]; ok {
		return FromColor(named), nil
	}

	return Color{}, fmt.Errorf("unrecognized color %q", s)
}

// parseHexColor parses the hex digits of a color string (without the leading '#').
func parseHexColor(hex string) (Color, error) {
	var r, g, b uint32
	a := uint32(255)

	switch len(hex) {
	case 3:
		if err := parseHexComponents(hex, 1, &r, &g, &b, nil); err != nil {
			return Color{}, err
		}
		r, g, b = r*17, g*17, b*17
	case 6:
		if err := parseHexComponents(hex, 2, &r, &g, &b, nil); err != nil {
			return Color{}, err
		}
	case 8:
		if err := parseHexComponents(hex, 2, &r, &g, &b, &a); err != nil {
			return Color{}, err
		}
	default:
		return Color{}, fmt.Errorf("invalid hex color length %d", len(hex))
	}

	return Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}, nil
}

// parseHexComponents parses consecutive fixed-width hex components into the provided slots.
// The alpha slot may be nil for formats without an alpha component.
func parseHexComponents(hex string, width int, r, g, b, a *uint32) error {
	slots := []*uint32{r, g, b}
	if a != nil {
		slots = append(slots, a)
	}
	for i, slot := range slots {
		var v uint32
		for _, ch := range hex[i*width : (i+1)*width] {
			var d uint32
			switch {
			case ch >= '0' && ch <= '9':
				d = uint32(ch - '0')
			case ch >= 'a' && ch <= 'f':
				d = uint32(ch-'a') + 10
			case ch >= 'A' && ch <= 'F':
				d = uint32(ch-'A') + 10
			default:
				return fmt.Errorf("invalid hex digit %q", ch)
			}
			v = v*16 + d
		}
		*slot = v
	}
	return nil
}
