package recording

// Point is a point in 2D space.
type Point struct {
	X, Y float64
}

// PathElementType identifies the kind of a path element.
type PathElementType uint8

const (
	// ElementMoveTo starts a new subpath at a point.
	ElementMoveTo PathElementType = iota
	// ElementLineTo adds a straight segment.
	ElementLineTo
	// ElementQuadTo adds a quadratic Bezier segment.
	ElementQuadTo
	// ElementCubicTo adds a cubic Bezier segment.
	ElementCubicTo
	// ElementClose closes the current subpath.
	ElementClose
)

// PathElement is a single verb of a path together with its points.
// MoveTo and LineTo use P0. QuadTo uses P0 (control) and P1 (end).
// CubicTo uses P0, P1 (controls) and P2 (end). Close uses no points.
type PathElement struct {
	Kind       PathElementType
	P0, P1, P2 Point
}

// Path is a sequence of path elements describing one or more contours.
// All points are in device space; transforms are applied when the
// path is recorded, not when it is replayed.
type Path struct {
	elements []PathElement
	start    Point
	current  Point
	hasStart bool
}

// MoveTo starts a new contour at (x, y).
func (p *Path) MoveTo(x, y float64) {
	p.elements = append(p.elements, PathElement{Kind: ElementMoveTo, P0: Point{x, y}})
	p.start = Point{x, y}
	p.current = p.start
	p.hasStart = true
}

// LineTo adds a line segment to (x, y). If no contour is open a
// MoveTo to (x, y) is recorded instead.
func (p *Path) LineTo(x, y float64) {
	if !p.hasStart {
		p.MoveTo(x, y)
		return
	}
	p.elements = append(p.elements, PathElement{Kind: ElementLineTo, P0: Point{x, y}})
	p.current = Point{x, y}
}

// QuadraticTo adds a quadratic Bezier with control (cx, cy) ending at (x, y).
func (p *Path) QuadraticTo(cx, cy, x, y float64) {
	if !p.hasStart {
		p.MoveTo(cx, cy)
	}
	p.elements = append(p.elements, PathElement{
		Kind: ElementQuadTo,
		P0:   Point{cx, cy},
		P1:   Point{x, y},
	})
	p.current = Point{x, y}
}

// CubicTo adds a cubic Bezier with controls (c1x, c1y), (c2x, c2y)
// ending at (x, y).
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	if !p.hasStart {
		p.MoveTo(c1x, c1y)
	}
	p.elements = append(p.elements, PathElement{
		Kind: ElementCubicTo,
		P0:   Point{c1x, c1y},
		P1:   Point{c2x, c2y},
		P2:   Point{x, y},
	})
	p.current = Point{x, y}
}

// ClosePath closes the current contour back to its starting point.
func (p *Path) ClosePath() {
	if !p.hasStart {
		return
	}
	p.elements = append(p.elements, PathElement{Kind: ElementClose})
	p.current = p.start
}

// Elements returns the recorded path elements.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// IsEmpty reports whether the path contains no elements.
func (p *Path) IsEmpty() bool {
	return len(p.elements) == 0
}

// Current returns the current pen position.
func (p *Path) Current() Point {
	return p.current
}

// Clone returns an independent copy of the path.
func (p *Path) Clone() *Path {
	c := &Path{
		start:    p.start,
		current:  p.current,
		hasStart: p.hasStart,
	}
	c.elements = append(c.elements, p.elements...)
	return c
}
