package softgl

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// VecW is a point in homogeneous coordinates, the output type of the vertex
// stage. 2D and 3D vectors come from the sdfx vec packages; VecW only adds
// what they lack: the fourth component and dehomogenization.
type VecW struct {
	X, Y, Z, W float64
}

// Dehomogenize projects v back to 3D by dividing by its W component.
func (v VecW) Dehomogenize() v3.Vec {
	return v3.Vec{X: v.X / v.W, Y: v.Y / v.W, Z: v.Z / v.W}
}

// Matrix is a row-major 4x4 homogeneous transform matrix.
type Matrix [4][4]float64

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Mul returns the matrix product a*b, so that (a.Mul(b)).MulVecW(v) applies b
// first and a second.
func (a Matrix) Mul(b Matrix) Matrix {
	var m Matrix
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				m[i][j] += a[i][k] * b[k][j]
			}
		}
	}
	return m
}

// MulVecW returns the matrix-vector product a*v.
func (a Matrix) MulVecW(v VecW) VecW {
	return VecW{
		X: a[0][0]*v.X + a[0][1]*v.Y + a[0][2]*v.Z + a[0][3]*v.W,
		Y: a[1][0]*v.X + a[1][1]*v.Y + a[1][2]*v.Z + a[1][3]*v.W,
		Z: a[2][0]*v.X + a[2][1]*v.Y + a[2][2]*v.Z + a[2][3]*v.W,
		W: a[3][0]*v.X + a[3][1]*v.Y + a[3][2]*v.Z + a[3][3]*v.W,
	}
}

// MulPositionW embeds p as the homogeneous point (x, y, z, 1) and returns a*p
// without dehomogenizing, so the perspective divide can happen later.
func (a Matrix) MulPositionW(p v3.Vec) VecW {
	return a.MulVecW(VecW{X: p.X, Y: p.Y, Z: p.Z, W: 1})
}
