package softgl

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// depthUnits is the size of the depth range the viewport transform maps the
// normalized z axis onto.
const depthUnits = 255

// Viewport returns the matrix scaling normalized device coordinates to a
// width by height pixel grid, with z mapped onto [0, depthUnits] and the
// origin moved to the viewport center.
func Viewport(width, height int) Matrix {
	m := Identity()
	m[0][0] = float64(width) / 2
	m[1][1] = float64(height) / 2
	m[2][2] = depthUnits / 2.
	m[0][3] = float64(width) / 2
	m[1][3] = float64(height) / 2
	m[2][3] = depthUnits / 2.
	return m
}

// Projection returns a perspective matrix for a camera at distance c from the
// origin along the view axis.
func Projection(c float64) Matrix {
	m := Identity()
	m[3][2] = -1 / c
	return m
}

// LookAt builds the world-to-camera matrix for a camera at eye looking at
// center. The basis degenerates (NaNs) when up is parallel to eye-center;
// callers pick a different up vector in that case.
func LookAt(eye, center, up v3.Vec) Matrix {
	forward := eye.Sub(center).Normalize()
	right := up.Cross(forward).Normalize()
	trueUp := forward.Cross(right)
	rot := Identity()
	rot[0][0], rot[0][1], rot[0][2] = right.X, right.Y, right.Z
	rot[1][0], rot[1][1], rot[1][2] = trueUp.X, trueUp.Y, trueUp.Z
	rot[2][0], rot[2][1], rot[2][2] = forward.X, forward.Y, forward.Z
	tr := Identity()
	tr[0][3] = -eye.X
	tr[1][3] = -eye.Y
	tr[2][3] = -eye.Z
	return rot.Mul(tr)
}
