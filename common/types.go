// package common contains small value types and numeric helpers shared across the engine. They are plain structs
// and functions, not interface-wrapped.
package common

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a linear RGB triple with components nominally in [0, 1].
// All color interpolation in the engine happens in this single space.
type Color [3]float32

// ColorFromHex converts a packed 0xRRGGBB value into a Color.
//
// Parameters:
//   - hex: the packed color
//
// Returns:
//   - Color: the unpacked color
func ColorFromHex(hex uint32) Color {
	return Color{
		float32((hex>>16)&0xff) / 255,
		float32((hex>>8)&0xff) / 255,
		float32(hex&0xff) / 255,
	}
}

// ParseColor parses "#rrggbb" or "0xrrggbb" notation as used in config and shot files.
//
// Parameters:
//   - s: the textual color
//
// Returns:
//   - Color: the parsed color
//   - error: error if the string is not a 6-digit hex color
func ParseColor(s string) (Color, error) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(s), "#"), "0x")
	if len(trimmed) != 6 {
		return Color{}, fmt.Errorf("invalid color %q: expected 6 hex digits", s)
	}
	v, err := strconv.ParseUint(trimmed, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return ColorFromHex(uint32(v)), nil
}

// Hex packs the color back into 0xRRGGBB, clamping each component.
func (c Color) Hex() uint32 {
	r := uint32(Clamp01(c[0])*255 + 0.5)
	g := uint32(Clamp01(c[1])*255 + 0.5)
	b := uint32(Clamp01(c[2])*255 + 0.5)
	return r<<16 | g<<8 | b
}

// String renders the color as #rrggbb.
func (c Color) String() string {
	return fmt.Sprintf("#%06x", c.Hex())
}

// Lerp interpolates component-wise toward other.
//
// Parameters:
//   - other: the color at t = 1
//   - t: interpolation factor
//
// Returns:
//   - Color: the mixed color
func (c Color) Lerp(other Color, t float32) Color {
	return Color{
		Lerp(c[0], other[0], t),
		Lerp(c[1], other[1], t),
		Lerp(c[2], other[2], t),
	}
}

// Scale multiplies every component by s.
func (c Color) Scale(s float32) Color {
	return Color{c[0] * s, c[1] * s, c[2] * s}
}

// MarshalYAML writes the color as a hex string.
func (c Color) MarshalYAML() (any, error) {
	return c.String(), nil
}

// UnmarshalYAML reads a hex string into the color.
func (c *Color) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
