package recording

// Paint describes how a drawing command is rendered.
// A zero Paint is opaque black with antialiasing enabled.
type Paint struct {
	Color     Color
	AntiAlias bool
	LineWidth float64
}

// DefaultPaint returns the paint used by a fresh canvas: opaque black,
// antialiased, with a 1px stroke width.
func DefaultPaint() Paint {
	return Paint{
		Color:     RGB(0, 0, 0),
		AntiAlias: true,
		LineWidth: 1,
	}
}
