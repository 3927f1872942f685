package softgl

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

const floatTolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= floatTolerance
}

func TestIdentity(t *testing.T) {
	v := VecW{X: 1, Y: -2, Z: 3, W: 4}
	if got := Identity().MulVecW(v); got != v {
		t.Errorf("Identity().MulVecW(%v) = %v", v, got)
	}
}

func TestMatrixMulOrder(t *testing.T) {
	scale := Identity()
	scale[0][0], scale[1][1], scale[2][2] = 2, 2, 2
	translate := Identity()
	translate[0][3], translate[1][3], translate[2][3] = 1, 2, 3

	// translate.Mul(scale) scales first, then translates.
	got := translate.Mul(scale).MulPositionW(v3.Vec{X: 1, Y: 1, Z: 1})
	want := VecW{X: 3, Y: 4, Z: 5, W: 1}
	if got != want {
		t.Errorf("translate*scale applied to (1,1,1) = %v, want %v", got, want)
	}
}

func TestDehomogenize(t *testing.T) {
	got := VecW{X: 2, Y: 4, Z: 6, W: 2}.Dehomogenize()
	want := v3.Vec{X: 1, Y: 2, Z: 3}
	if got != want {
		t.Errorf("Dehomogenize = %v, want %v", got, want)
	}
}

func TestViewportCenter(t *testing.T) {
	// The normalized origin maps to the image center at half depth.
	got := Viewport(100, 100).MulPositionW(v3.Vec{}).Dehomogenize()
	want := v3.Vec{X: 50, Y: 50, Z: 127.5}
	if got != want {
		t.Errorf("Viewport(100,100) applied to origin = %v, want %v", got, want)
	}
}

func TestViewportCorner(t *testing.T) {
	got := Viewport(200, 100).MulPositionW(v3.Vec{X: 1, Y: 1, Z: 1}).Dehomogenize()
	want := v3.Vec{X: 200, Y: 100, Z: 255}
	if got != want {
		t.Errorf("Viewport(200,100) applied to (1,1,1) = %v, want %v", got, want)
	}
}

func TestProjection(t *testing.T) {
	const c = 4.0
	m := Projection(c)
	if m[3][2] != -1/c {
		t.Errorf("Projection(%v)[3][2] = %v, want %v", c, m[3][2], -1/c)
	}
	// A point at depth z picks up w = 1 - z/c.
	got := m.MulPositionW(v3.Vec{X: 1, Y: 1, Z: 2})
	if !almostEqual(got.W, 1-2.0/c) {
		t.Errorf("projected w = %v, want %v", got.W, 1-2.0/c)
	}
}

func TestLookAtBasis(t *testing.T) {
	eye := v3.Vec{X: 3, Y: -2, Z: 5}
	center := v3.Vec{X: 0, Y: 1, Z: 0}
	m := LookAt(eye, center, v3.Vec{Z: 1})

	rows := [3]v3.Vec{
		{X: m[0][0], Y: m[0][1], Z: m[0][2]},
		{X: m[1][0], Y: m[1][1], Z: m[1][2]},
		{X: m[2][0], Y: m[2][1], Z: m[2][2]},
	}
	for i, r := range rows {
		if !almostEqual(r.Length(), 1) {
			t.Errorf("basis row %d has length %v", i, r.Length())
		}
		for j := i + 1; j < 3; j++ {
			if d := r.Dot(rows[j]); !almostEqual(d, 0) {
				t.Errorf("basis rows %d and %d not orthogonal: dot = %v", i, j, d)
			}
		}
	}

	// The eye maps to the camera-space origin.
	got := m.MulPositionW(eye).Dehomogenize()
	if !almostEqual(got.X, 0) || !almostEqual(got.Y, 0) || !almostEqual(got.Z, 0) {
		t.Errorf("LookAt applied to eye = %v, want origin", got)
	}

	// The target sits straight ahead on the -Z axis.
	dist := eye.Sub(center).Length()
	gotCenter := m.MulPositionW(center).Dehomogenize()
	if !almostEqual(gotCenter.X, 0) || !almostEqual(gotCenter.Y, 0) || !almostEqual(gotCenter.Z, -dist) {
		t.Errorf("LookAt applied to center = %v, want (0,0,%v)", gotCenter, -dist)
	}
}
