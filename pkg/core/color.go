package core

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// saturate clamps a single channel to [0, 1]. NaN saturates to 1.
func saturate(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c < 1 {
		return c
	}
	return 1
}

// Saturate clamps every channel to [0, 1]
func (v Vec3) Saturate() Vec3 {
	return Vec3{saturate(v.X), saturate(v.Y), saturate(v.Z)}
}

// GammaCorrect encodes linear color for display by raising each channel to 1/gamma
func (v Vec3) GammaCorrect(gamma float64) Vec3 {
	invGamma := 1.0 / gamma
	return Vec3{
		X: math.Pow(v.X, invGamma),
		Y: math.Pow(v.Y, invGamma),
		Z: math.Pow(v.Z, invGamma),
	}
}

// GammaDecode converts display-encoded color back to linear by raising each channel to gamma
func (v Vec3) GammaDecode(gamma float64) Vec3 {
	return Vec3{
		X: math.Pow(v.X, gamma),
		Y: math.Pow(v.Y, gamma),
		Z: math.Pow(v.Z, gamma),
	}
}

// toChannel truncates 255.99*c rather than rounding so 1.0 maps to 255, never 256
func toChannel(c float64) uint8 {
	return uint8(255.99 * saturate(c))
}

// ToRGB converts the color to 8-bit channels
func (v Vec3) ToRGB() [3]uint8 {
	return [3]uint8{toChannel(v.X), toChannel(v.Y), toChannel(v.Z)}
}

// ToRGBA converts the color to an opaque color.RGBA
func (v Vec3) ToRGBA() color.RGBA {
	rgb := v.ToRGB()
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}
}

// ColorFromRGB creates a linear color from 8-bit channels
func ColorFromRGB(r, g, b uint8) Color {
	return Color{float64(r) / 255.0, float64(g) / 255.0, float64(b) / 255.0}
}

// ColorFromHex parses a "rrggbb" hex string, with or without a leading '#'
func ColorFromHex(hex string) (Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid hex color %q: expected 6 digits", hex)
	}
	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return ColorFromRGB(uint8(value>>16), uint8(value>>8), uint8(value)), nil
}

// ColorFromStd converts any image/color value, such as the entries of
// golang.org/x/image/colornames, to a Color. Alpha is ignored.
func ColorFromStd(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return Color{float64(r) / 65535.0, float64(g) / 65535.0, float64(b) / 65535.0}
}
