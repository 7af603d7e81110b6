package recording

import "math"

// circleK is the distance from an arc endpoint to its cubic Bezier
// control point, as a fraction of the radius, for a 90 degree arc.
const circleK = 0.5522847498307936

// Canvas records drawing operations into a single render pass. It
// mirrors an immediate-mode 2D API: build a path with MoveTo/LineTo
// and friends, then Fill or Stroke it with the current paint.
//
// Transforms are applied when points are recorded, so commands carry
// device-space coordinates only. A Canvas becomes inert once its
// recorder snaps; all methods turn into no-ops.
//
// The Canvas is not safe for concurrent use.
type Canvas struct {
	pass     *pass
	width    float64
	height   float64
	commands []Command

	path      *Path
	paint     Paint
	transform Matrix
	fontSize  float64
	stack     []canvasState

	sealed bool
}

type canvasState struct {
	paint     Paint
	transform Matrix
	fontSize  float64
}

func newCanvas(p *pass, width, height float64) *Canvas {
	return &Canvas{
		pass:      p,
		width:     width,
		height:    height,
		path:      &Path{},
		paint:     DefaultPaint(),
		transform: Identity(),
		fontSize:  16,
	}
}

// Width returns the target width in pixels.
func (c *Canvas) Width() float64 { return c.width }

// Height returns the target height in pixels.
func (c *Canvas) Height() float64 { return c.height }

// Seal makes the canvas inert. Called by Recorder.Snap; every drawing
// method on a sealed canvas is a no-op.
func (c *Canvas) Seal() {
	c.sealed = true
}

// Sealed reports whether the canvas has been sealed.
func (c *Canvas) Sealed() bool { return c.sealed }

func (c *Canvas) record(cmd Command) {
	if c.sealed {
		return
	}
	c.commands = append(c.commands, cmd)
}

// Clear fills the whole target with the given color, discarding any
// previously recorded commands in this pass.
func (c *Canvas) Clear(color Color) {
	if c.sealed {
		return
	}
	c.commands = c.commands[:0]
	c.record(ClearCommand{Color: color})
}

// Push saves the current paint, transform and font size.
func (c *Canvas) Push() {
	if c.sealed {
		return
	}
	c.stack = append(c.stack, canvasState{
		paint:     c.paint,
		transform: c.transform,
		fontSize:  c.fontSize,
	})
}

// Pop restores the most recently pushed state. Popping an empty stack
// does nothing.
func (c *Canvas) Pop() {
	if c.sealed || len(c.stack) == 0 {
		return
	}
	s := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.paint = s.paint
	c.transform = s.transform
	c.fontSize = s.fontSize
}

// Translate prepends a translation to the current transform.
func (c *Canvas) Translate(x, y float64) {
	if c.sealed {
		return
	}
	c.transform = c.transform.Multiply(Translate(x, y))
}

// Scale prepends a scale to the current transform.
func (c *Canvas) Scale(sx, sy float64) {
	if c.sealed {
		return
	}
	c.transform = c.transform.Multiply(Scale(sx, sy))
}

// Rotate prepends a rotation (radians) to the current transform.
func (c *Canvas) Rotate(angle float64) {
	if c.sealed {
		return
	}
	c.transform = c.transform.Multiply(Rotate(angle))
}

// SetRGB sets the paint color to an opaque RGB value.
func (c *Canvas) SetRGB(r, g, b float64) {
	c.paint.Color = RGB(r, g, b)
}

// SetRGBA sets the paint color with alpha.
func (c *Canvas) SetRGBA(r, g, b, a float64) {
	c.paint.Color = RGBA(r, g, b, a)
}

// SetColor sets the paint color.
func (c *Canvas) SetColor(color Color) {
	c.paint.Color = color
}

// SetAntiAlias toggles antialiasing for subsequent commands.
func (c *Canvas) SetAntiAlias(aa bool) {
	c.paint.AntiAlias = aa
}

// SetLineWidth sets the stroke width for subsequent strokes.
func (c *Canvas) SetLineWidth(w float64) {
	c.paint.LineWidth = w
}

// SetFontSize sets the size used by DrawString.
func (c *Canvas) SetFontSize(size float64) {
	c.fontSize = size
}

// MoveTo starts a new contour at (x, y) in user space.
func (c *Canvas) MoveTo(x, y float64) {
	if c.sealed {
		return
	}
	tx, ty := c.transform.TransformPoint(x, y)
	c.path.MoveTo(tx, ty)
}

// LineTo adds a line segment to (x, y) in user space.
func (c *Canvas) LineTo(x, y float64) {
	if c.sealed {
		return
	}
	tx, ty := c.transform.TransformPoint(x, y)
	c.path.LineTo(tx, ty)
}

// QuadraticTo adds a quadratic Bezier segment.
func (c *Canvas) QuadraticTo(cx, cy, x, y float64) {
	if c.sealed {
		return
	}
	tcx, tcy := c.transform.TransformPoint(cx, cy)
	tx, ty := c.transform.TransformPoint(x, y)
	c.path.QuadraticTo(tcx, tcy, tx, ty)
}

// CubicTo adds a cubic Bezier segment.
func (c *Canvas) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	if c.sealed {
		return
	}
	t1x, t1y := c.transform.TransformPoint(c1x, c1y)
	t2x, t2y := c.transform.TransformPoint(c2x, c2y)
	tx, ty := c.transform.TransformPoint(x, y)
	c.path.CubicTo(t1x, t1y, t2x, t2y, tx, ty)
}

// ClosePath closes the current contour.
func (c *Canvas) ClosePath() {
	if c.sealed {
		return
	}
	c.path.ClosePath()
}

// Fill fills the current path with the current paint and clears the
// path. Axis-aligned rectangular paths are recorded as FillRect.
func (c *Canvas) Fill() {
	c.FillPreserve()
	if !c.sealed {
		c.path = &Path{}
	}
}

// FillPreserve fills the current path but keeps it for further use.
func (c *Canvas) FillPreserve() {
	if c.sealed || c.path.IsEmpty() {
		return
	}
	if rect, ok := detectRect(c.path); ok {
		c.record(FillRectCommand{Rect: rect, Paint: c.paint})
		return
	}
	c.record(FillPathCommand{Path: c.path.Clone(), Paint: c.paint})
}

// Stroke strokes the current path outline and clears the path.
func (c *Canvas) Stroke() {
	c.StrokePreserve()
	if !c.sealed {
		c.path = &Path{}
	}
}

// StrokePreserve strokes the current path but keeps it.
func (c *Canvas) StrokePreserve() {
	if c.sealed || c.path.IsEmpty() {
		return
	}
	c.record(StrokePathCommand{Path: c.path.Clone(), Paint: c.paint})
}

// DrawRectangle adds a rectangle contour to the current path.
func (c *Canvas) DrawRectangle(x, y, w, h float64) {
	c.MoveTo(x, y)
	c.LineTo(x+w, y)
	c.LineTo(x+w, y+h)
	c.LineTo(x, y+h)
	c.ClosePath()
}

// DrawRoundedRectangle adds a rectangle with circular corners of
// radius r to the current path.
func (c *Canvas) DrawRoundedRectangle(x, y, w, h, r float64) {
	if r <= 0 {
		c.DrawRectangle(x, y, w, h)
		return
	}
	if max := math.Min(w, h) / 2; r > max {
		r = max
	}
	k := circleK * r
	c.MoveTo(x+r, y)
	c.LineTo(x+w-r, y)
	c.CubicTo(x+w-r+k, y, x+w, y+r-k, x+w, y+r)
	c.LineTo(x+w, y+h-r)
	c.CubicTo(x+w, y+h-r+k, x+w-r+k, y+h, x+w-r, y+h)
	c.LineTo(x+r, y+h)
	c.CubicTo(x+r-k, y+h, x, y+h-r+k, x, y+h-r)
	c.LineTo(x, y+r)
	c.CubicTo(x, y+r-k, x+r-k, y, x+r, y)
	c.ClosePath()
}

// DrawCircle adds a circle contour built from four cubic Beziers.
func (c *Canvas) DrawCircle(cx, cy, r float64) {
	k := circleK * r
	c.MoveTo(cx+r, cy)
	c.CubicTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	c.CubicTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	c.CubicTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	c.CubicTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	c.ClosePath()
}

// DrawString records a text run anchored at the baseline (x, y) in
// user space, using the current font size and paint.
func (c *Canvas) DrawString(s string, x, y float64) {
	if c.sealed || s == "" {
		return
	}
	tx, ty := c.transform.TransformPoint(x, y)
	c.record(DrawTextCommand{Text: s, X: tx, Y: ty, Size: c.fontSize, Paint: c.paint})
}

// detectRect reports whether the path is a single axis-aligned
// rectangular contour and returns it if so.
func detectRect(p *Path) (Rect, bool) {
	elems := p.Elements()
	// MoveTo, three LineTo, optional fourth LineTo back to start, Close.
	if len(elems) < 5 || len(elems) > 6 {
		return Rect{}, false
	}
	if elems[0].Kind != ElementMoveTo || elems[len(elems)-1].Kind != ElementClose {
		return Rect{}, false
	}
	pts := make([]Point, 0, 5)
	pts = append(pts, elems[0].P0)
	for _, e := range elems[1 : len(elems)-1] {
		if e.Kind != ElementLineTo {
			return Rect{}, false
		}
		pts = append(pts, e.P0)
	}
	if len(pts) == 5 {
		if pts[4] != pts[0] {
			return Rect{}, false
		}
		pts = pts[:4]
	}
	// Consecutive edges must alternate horizontal/vertical.
	for i := 0; i < 4; i++ {
		a, b := pts[i], pts[(i+1)%4]
		if a.X != b.X && a.Y != b.Y {
			return Rect{}, false
		}
	}
	minX := math.Min(math.Min(pts[0].X, pts[1].X), math.Min(pts[2].X, pts[3].X))
	maxX := math.Max(math.Max(pts[0].X, pts[1].X), math.Max(pts[2].X, pts[3].X))
	minY := math.Min(math.Min(pts[0].Y, pts[1].Y), math.Min(pts[2].Y, pts[3].Y))
	maxY := math.Max(math.Max(pts[0].Y, pts[1].Y), math.Max(pts[2].Y, pts[3].Y))
	if maxX <= minX || maxY <= minY {
		return Rect{}, false
	}
	return NewRect(minX, minY, maxX-minX, maxY-minY), true
}
