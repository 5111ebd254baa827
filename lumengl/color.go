package lumengl

// Color is an RGBA color in 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color     { return Color{R: r, G: g, B: b, A: 0xFF} }
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// Hex builds an opaque color from a packed 0xRRGGBB value.
func Hex(v uint32) Color {
	return Color{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xFF,
	}
}

// Scale multiplies the color channels by an intensity in [0,1].
func (c Color) Scale(s float32) Color {
	s = Clamp01(s)
	t := uint32(s * 255)
	mul := func(ch uint8) uint8 {
		return uint8((uint32(ch) * t) / 255)
	}
	return Color{R: mul(c.R), G: mul(c.G), B: mul(c.B), A: c.A}
}

// AddScaled adds a white highlight of strength s in [0,1], clamping channels.
func (c Color) AddScaled(s float32) Color {
	s = Clamp01(s)
	add := uint32(s * 255)
	bump := func(ch uint8) uint8 {
		v := uint32(ch) + add
		if v > 0xFF {
			v = 0xFF
		}
		return uint8(v)
	}
	return Color{R: bump(c.R), G: bump(c.G), B: bump(c.B), A: c.A}
}

func (c Color) WithAlpha(a uint8) Color { c.A = a; return c }
