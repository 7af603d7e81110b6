package recording

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestIdentity(t *testing.T) {
	m := Identity()
	x, y := m.TransformPoint(3, 7)
	if x != 3 || y != 7 {
		t.Errorf("Identity transform moved point: got (%v, %v)", x, y)
	}
	if !m.IsIdentity() {
		t.Error("Identity().IsIdentity() = false")
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(10, -5)
	x, y := m.TransformPoint(1, 2)
	if x != 11 || y != -3 {
		t.Errorf("Translate(10,-5) of (1,2) = (%v, %v), want (11, -3)", x, y)
	}
}

func TestScale(t *testing.T) {
	m := Scale(2, 3)
	x, y := m.TransformPoint(4, 5)
	if x != 8 || y != 15 {
		t.Errorf("Scale(2,3) of (4,5) = (%v, %v), want (8, 15)", x, y)
	}
}

func TestRotate(t *testing.T) {
	m := Rotate(math.Pi / 2)
	x, y := m.TransformPoint(1, 0)
	if !almostEqual(x, 0) || !almostEqual(y, 1) {
		t.Errorf("Rotate(90deg) of (1,0) = (%v, %v), want (0, 1)", x, y)
	}
}

func TestMultiplyOrder(t *testing.T) {
	// Translate then scale is not scale then translate.
	ts := Translate(10, 0).Multiply(Scale(2, 2))
	x, y := ts.TransformPoint(1, 1)
	if x != 12 || y != 2 {
		t.Errorf("translate*scale of (1,1) = (%v, %v), want (12, 2)", x, y)
	}

	st := Scale(2, 2).Multiply(Translate(10, 0))
	x, y = st.TransformPoint(1, 1)
	if x != 22 || y != 2 {
		t.Errorf("scale*translate of (1,1) = (%v, %v), want (22, 2)", x, y)
	}
}

func TestMultiplyIdentity(t *testing.T) {
	m := Translate(3, 4).Multiply(Rotate(0.5))
	got := m.Multiply(Identity())
	if got != m {
		t.Errorf("m * I = %+v, want %+v", got, m)
	}
	got = Identity().Multiply(m)
	if got != m {
		t.Errorf("I * m = %+v, want %+v", got, m)
	}
}
