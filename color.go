package shade

import "image/color"

// PackedColor is a vertex color with 8 bits per channel, packed RGBA.
// This is the wire format the host uploads in vertex buffers; the
// vertex stage normalizes it to floats in [0, 1].
type PackedColor struct {
	R, G, B, A uint8
}

// Normalize converts the packed bytes to normalized float channels.
// Each output channel is byte/255.0, always in [0, 1].
func (c PackedColor) Normalize() [4]float32 {
	return [4]float32{
		float32(c.R) / 255.0,
		float32(c.G) / 255.0,
		float32(c.B) / 255.0,
		float32(c.A) / 255.0,
	}
}

// Color converts the packed color to the standard color.Color interface.
func (c PackedColor) Color() color.Color {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// PackColor converts a standard color.Color to a PackedColor.
func PackColor(c color.Color) PackedColor {
	r, g, b, a := c.RGBA()
	// Components are 0-65535; shift by 8 to get 0-255.
	return PackedColor{
		R: uint8(r >> 8), //nolint:gosec // r>>8 is always in range [0, 255]
		G: uint8(g >> 8),
		B: uint8(b >> 8),
		A: uint8(a >> 8),
	}
}
