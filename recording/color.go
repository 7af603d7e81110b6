package recording

// Color is an RGBA color with unpremultiplied float64 components
// in the range [0, 1].
type Color struct {
	R, G, B, A float64
}

// RGB returns a fully opaque color.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGBA returns a color with the given alpha.
func RGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Premultiply returns the color with RGB components multiplied by alpha.
func (c Color) Premultiply() Color {
	return Color{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}
