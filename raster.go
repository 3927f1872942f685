package softgl

import (
	"math"

	"github.com/deadsy/sdfx/vec/v2i"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// degenerateEps is the doubled-screen-area threshold under which a triangle
// is rejected as degenerate.
const degenerateEps = 1e-6

// barycentric returns the weights of pixel p with respect to the screen-space
// triangle abc. Degenerate triangles yield a negative first weight, which
// rejects every pixel. The first weight is derived as 1-(u.x+u.y)/u.z rather
// than 1-u-v: the former keeps shared edges of adjacent triangles free of
// one-pixel gaps.
func barycentric(a, b, c v3.Vec, p v2i.Vec) v3.Vec {
	u := v3.Vec{X: c.X - a.X, Y: b.X - a.X, Z: a.X - float64(p.X)}.
		Cross(v3.Vec{X: c.Y - a.Y, Y: b.Y - a.Y, Z: a.Y - float64(p.Y)})
	if math.Abs(u.Z) < degenerateEps {
		return v3.Vec{X: -1, Y: 1, Z: 1}
	}
	return v3.Vec{X: 1 - (u.X+u.Y)/u.Z, Y: u.Y / u.Z, Z: u.X / u.Z}
}

// rasterizeFace is one unit of work: it runs the whole per-triangle pipeline
// for a single face against the device-resident buffers.
func (d *device) rasterizeFace(shader Shader, face int) {
	var screen [3]v3.Vec
	for i := 0; i < 3; i++ {
		screen[i] = shader.Vertex(face, i).Dehomogenize()
	}

	// Cull faces whose normal points away from the view direction (0,0,1).
	n := screen[1].Sub(screen[0]).Cross(screen[2].Sub(screen[0]))
	if n.Dot(v3.Vec{Z: 1}) < 0 {
		return
	}

	minX := clampInt(int(math.Floor(min3(screen[0].X, screen[1].X, screen[2].X))), 0, d.width-1)
	maxX := clampInt(int(math.Ceil(max3(screen[0].X, screen[1].X, screen[2].X))), 0, d.width-1)
	minY := clampInt(int(math.Floor(min3(screen[0].Y, screen[1].Y, screen[2].Y))), 0, d.height-1)
	maxY := clampInt(int(math.Ceil(max3(screen[0].Y, screen[1].Y, screen[2].Y))), 0, d.height-1)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			bc := barycentric(screen[0], screen[1], screen[2], v2i.Vec{X: x, Y: y})
			if bc.X < 0 || bc.Y < 0 || bc.Z < 0 {
				continue
			}
			z := screen[0].Z*bc.X + screen[1].Z*bc.Y + screen[2].Z*bc.Z
			idx := y*d.width + x

			// Early depth test without the lock, re-checked below.
			if d.depth[idx] > z {
				continue
			}
			mu := &d.locks[(x+y)&(depthLockShards-1)]
			mu.Lock()
			if d.depth[idx] > z {
				mu.Unlock()
				continue
			}
			// The depth slot is claimed before the fragment stage runs, so a
			// discarded fragment still reserves its depth.
			d.depth[idx] = z
			if c, keep := shader.Fragment(bc); keep {
				d.frame.SetRGBA(x, y, c)
			}
			mu.Unlock()
		}
	}
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
