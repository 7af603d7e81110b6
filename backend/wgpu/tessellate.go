package wgpu

import (
	"math"

	"github.com/gogpu/frame/recording"
)

// flattenTolerance is the maximum allowed deviation between a curve
// and its linear approximation, in pixels.
const flattenTolerance = 0.25

// vertexWriter accumulates cover vertices for one render pass. Input
// coordinates are pixels; emitted vertices are NDC with the current
// premultiplied color attached.
type vertexWriter struct {
	data   []float32
	width  float64
	height float64
	color  [4]float32
}

func newVertexWriter(width, height uint32) *vertexWriter {
	return &vertexWriter{
		data:   make([]float32, 0, 256),
		width:  float64(width),
		height: float64(height),
	}
}

// setColor sets the premultiplied color attached to emitted vertices.
func (w *vertexWriter) setColor(c recording.Color) {
	p := c.Premultiply()
	w.color = [4]float32{float32(p.R), float32(p.G), float32(p.B), float32(p.A)}
}

// vertexCount returns the number of emitted vertices.
func (w *vertexWriter) vertexCount() int {
	return len(w.data) / 6
}

// emitVertex appends one vertex, converting pixels to NDC with the
// Y axis flipped.
func (w *vertexWriter) emitVertex(x, y float64) {
	nx := (x/w.width)*2 - 1
	ny := 1 - (y/w.height)*2
	w.data = append(w.data, float32(nx), float32(ny),
		w.color[0], w.color[1], w.color[2], w.color[3])
}

// emitTriangle appends a triangle, skipping degenerates.
func (w *vertexWriter) emitTriangle(x0, y0, x1, y1, x2, y2 float64) {
	ax, ay := x1-x0, y1-y0
	bx, by := x2-x0, y2-y0
	if ax*by-ay*bx == 0 {
		return
	}
	w.emitVertex(x0, y0)
	w.emitVertex(x1, y1)
	w.emitVertex(x2, y2)
}

// fillRect emits two triangles covering an axis-aligned rectangle.
func (w *vertexWriter) fillRect(r recording.Rect) {
	w.emitTriangle(r.X, r.Y, r.X+r.W, r.Y, r.X+r.W, r.Y+r.H)
	w.emitTriangle(r.X, r.Y, r.X+r.W, r.Y+r.H, r.X, r.Y+r.H)
}

// fillPath tessellates a path into fan triangles.
//
// For each contour the first vertex becomes the fan center and every
// subsequent edge emits a (center, prev, next) triangle. Curves are
// adaptively flattened first. Fan triangulation is exact for convex
// contours; concave shapes overdraw where triangles overlap, which is
// invisible for opaque fills.
func (w *vertexWriter) fillPath(path *recording.Path) {
	var (
		fanX, fanY     float64
		prevX, prevY   float64
		contourStarted bool
	)
	for _, e := range path.Elements() {
		switch e.Kind {
		case recording.ElementMoveTo:
			fanX, fanY = e.P0.X, e.P0.Y
			prevX, prevY = fanX, fanY
			contourStarted = true
		case recording.ElementLineTo:
			if !contourStarted {
				continue
			}
			w.emitTriangle(fanX, fanY, prevX, prevY, e.P0.X, e.P0.Y)
			prevX, prevY = e.P0.X, e.P0.Y
		case recording.ElementQuadTo:
			if !contourStarted {
				continue
			}
			w.flattenQuadFan(fanX, fanY, prevX, prevY, e.P0.X, e.P0.Y, e.P1.X, e.P1.Y)
			prevX, prevY = e.P1.X, e.P1.Y
		case recording.ElementCubicTo:
			if !contourStarted {
				continue
			}
			w.flattenCubicFan(fanX, fanY, prevX, prevY,
				e.P0.X, e.P0.Y, e.P1.X, e.P1.Y, e.P2.X, e.P2.Y)
			prevX, prevY = e.P2.X, e.P2.Y
		case recording.ElementClose:
			if !contourStarted {
				continue
			}
			if prevX != fanX || prevY != fanY {
				w.emitTriangle(fanX, fanY, prevX, prevY, fanX, fanY)
			}
			prevX, prevY = fanX, fanY
			contourStarted = false
		}
	}
}

// strokePath emits one quad per flattened segment, offset by half the
// line width perpendicular to the segment. Joins are left unfilled;
// at typical stroke widths the gap is under a pixel.
func (w *vertexWriter) strokePath(path *recording.Path, lineWidth float64) {
	if lineWidth <= 0 {
		lineWidth = 1
	}
	half := lineWidth / 2
	for _, contour := range flattenContours(path) {
		for i := 0; i+1 < len(contour); i++ {
			a, b := contour[i], contour[i+1]
			dx, dy := b.X-a.X, b.Y-a.Y
			length := math.Hypot(dx, dy)
			if length == 0 {
				continue
			}
			// Unit normal.
			nx, ny := -dy/length*half, dx/length*half
			w.emitTriangle(a.X+nx, a.Y+ny, b.X+nx, b.Y+ny, b.X-nx, b.Y-ny)
			w.emitTriangle(a.X+nx, a.Y+ny, b.X-nx, b.Y-ny, a.X-nx, a.Y-ny)
		}
	}
}

// flattenQuadFan flattens a quadratic Bezier and emits fan triangles.
// Uses recursive de Casteljau subdivision.
func (w *vertexWriter) flattenQuadFan(fanX, fanY, x0, y0, cx, cy, x1, y1 float64) {
	midX := 0.25*x0 + 0.5*cx + 0.25*x1
	midY := 0.25*y0 + 0.5*cy + 0.25*y1
	dx := midX - 0.5*(x0+x1)
	dy := midY - 0.5*(y0+y1)
	if dx*dx+dy*dy <= flattenTolerance*flattenTolerance {
		w.emitTriangle(fanX, fanY, x0, y0, x1, y1)
		return
	}
	ax, ay := 0.5*(x0+cx), 0.5*(y0+cy)
	bx, by := 0.5*(cx+x1), 0.5*(cy+y1)
	mx, my := 0.5*(ax+bx), 0.5*(ay+by)
	w.flattenQuadFan(fanX, fanY, x0, y0, ax, ay, mx, my)
	w.flattenQuadFan(fanX, fanY, mx, my, bx, by, x1, y1)
}

// flattenCubicFan flattens a cubic Bezier and emits fan triangles.
// The factor of 16 is the cubic approximation error bound.
func (w *vertexWriter) flattenCubicFan(fanX, fanY, x0, y0, c1x, c1y, c2x, c2y, x1, y1 float64) {
	ux := 3*c1x - 2*x0 - x1
	uy := 3*c1y - 2*y0 - y1
	vx := 3*c2x - x0 - 2*x1
	vy := 3*c2y - y0 - 2*y1
	if math.Max(ux*ux+uy*uy, vx*vx+vy*vy) <= 16*flattenTolerance*flattenTolerance {
		w.emitTriangle(fanX, fanY, x0, y0, x1, y1)
		return
	}
	ab1x, ab1y := 0.5*(x0+c1x), 0.5*(y0+c1y)
	ab2x, ab2y := 0.5*(c1x+c2x), 0.5*(c1y+c2y)
	ab3x, ab3y := 0.5*(c2x+x1), 0.5*(c2y+y1)
	bc1x, bc1y := 0.5*(ab1x+ab2x), 0.5*(ab1y+ab2y)
	bc2x, bc2y := 0.5*(ab2x+ab3x), 0.5*(ab2y+ab3y)
	mx, my := 0.5*(bc1x+bc2x), 0.5*(bc1y+bc2y)
	w.flattenCubicFan(fanX, fanY, x0, y0, ab1x, ab1y, bc1x, bc1y, mx, my)
	w.flattenCubicFan(fanX, fanY, mx, my, bc2x, bc2y, ab3x, ab3y, x1, y1)
}

// flattenContours converts a path into per-contour polylines, with
// curves flattened to line segments.
func flattenContours(path *recording.Path) [][]recording.Point {
	var (
		contours [][]recording.Point
		current  []recording.Point
	)
	flush := func() {
		if len(current) > 1 {
			contours = append(contours, current)
		}
		current = nil
	}
	for _, e := range path.Elements() {
		switch e.Kind {
		case recording.ElementMoveTo:
			flush()
			current = append(current, e.P0)
		case recording.ElementLineTo:
			current = append(current, e.P0)
		case recording.ElementQuadTo:
			if len(current) == 0 {
				current = append(current, e.P0)
			}
			last := current[len(current)-1]
			current = appendFlatQuad(current, last, e.P0, e.P1)
		case recording.ElementCubicTo:
			if len(current) == 0 {
				current = append(current, e.P0)
			}
			last := current[len(current)-1]
			current = appendFlatCubic(current, last, e.P0, e.P1, e.P2)
		case recording.ElementClose:
			if len(current) > 1 && current[0] != current[len(current)-1] {
				current = append(current, current[0])
			}
			flush()
		}
	}
	flush()
	return contours
}

func appendFlatQuad(dst []recording.Point, p0, c, p1 recording.Point) []recording.Point {
	midX := 0.25*p0.X + 0.5*c.X + 0.25*p1.X
	midY := 0.25*p0.Y + 0.5*c.Y + 0.25*p1.Y
	dx := midX - 0.5*(p0.X+p1.X)
	dy := midY - 0.5*(p0.Y+p1.Y)
	if dx*dx+dy*dy <= flattenTolerance*flattenTolerance {
		return append(dst, p1)
	}
	a := recording.Point{X: 0.5 * (p0.X + c.X), Y: 0.5 * (p0.Y + c.Y)}
	b := recording.Point{X: 0.5 * (c.X + p1.X), Y: 0.5 * (c.Y + p1.Y)}
	m := recording.Point{X: 0.5 * (a.X + b.X), Y: 0.5 * (a.Y + b.Y)}
	dst = appendFlatQuad(dst, p0, a, m)
	return appendFlatQuad(dst, m, b, p1)
}

func appendFlatCubic(dst []recording.Point, p0, c1, c2, p1 recording.Point) []recording.Point {
	ux := 3*c1.X - 2*p0.X - p1.X
	uy := 3*c1.Y - 2*p0.Y - p1.Y
	vx := 3*c2.X - p0.X - 2*p1.X
	vy := 3*c2.Y - p0.Y - 2*p1.Y
	if math.Max(ux*ux+uy*uy, vx*vx+vy*vy) <= 16*flattenTolerance*flattenTolerance {
		return append(dst, p1)
	}
	ab1 := recording.Point{X: 0.5 * (p0.X + c1.X), Y: 0.5 * (p0.Y + c1.Y)}
	ab2 := recording.Point{X: 0.5 * (c1.X + c2.X), Y: 0.5 * (c1.Y + c2.Y)}
	ab3 := recording.Point{X: 0.5 * (c2.X + p1.X), Y: 0.5 * (c2.Y + p1.Y)}
	bc1 := recording.Point{X: 0.5 * (ab1.X + ab2.X), Y: 0.5 * (ab1.Y + ab2.Y)}
	bc2 := recording.Point{X: 0.5 * (ab2.X + ab3.X), Y: 0.5 * (ab2.Y + ab3.Y)}
	m := recording.Point{X: 0.5 * (bc1.X + bc2.X), Y: 0.5 * (bc1.Y + bc2.Y)}
	dst = appendFlatCubic(dst, p0, ab1, bc1, m)
	return appendFlatCubic(dst, m, bc2, ab3, p1)
}
