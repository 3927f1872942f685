package softgl

import (
	"image"
	"image/color"
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Shader is the programmable half of the pipeline. Vertex maps vertex vert
// (0..2) of the given face to a homogeneous clip position, normally by
// applying a model/view/projection/viewport product the shader owns.
// Fragment turns interpolated barycentric weights into a pixel color;
// returning false discards the fragment.
//
// Render relocates the shader (one deep copy per worker) before drawing, so
// per-draw varyings written by Vertex are safe to read back in Fragment, and
// the caller's instance is never touched. The relocation requires plain
// data: exported fields only, no funcs, channels or unsafe pointers anywhere
// in the value graph.
type Shader interface {
	Vertex(face, vert int) VecW
	Fragment(bc v3.Vec) (color.RGBA, bool)
}

// ScaleColor scales the color channels of c by k, leaving alpha untouched.
// k is clamped to [0,1].
func ScaleColor(c color.RGBA, k float64) color.RGBA {
	k = math.Max(0, math.Min(1, k))
	return color.RGBA{
		R: uint8(float64(c.R) * k),
		G: uint8(float64(c.G) * k),
		B: uint8(float64(c.B) * k),
		A: c.A,
	}
}

// SolidColorShader fills front-facing triangles with a constant color.
type SolidColorShader struct {
	Matrix Matrix
	Mesh   *Mesh
	Color  color.RGBA
}

func NewSolidColorShader(matrix Matrix, mesh *Mesh, c color.RGBA) *SolidColorShader {
	return &SolidColorShader{Matrix: matrix, Mesh: mesh, Color: c}
}

func (s *SolidColorShader) Vertex(face, vert int) VecW {
	return s.Matrix.MulPositionW(s.Mesh.Position(face, vert))
}

func (s *SolidColorShader) Fragment(v3.Vec) (color.RGBA, bool) {
	return s.Color, true
}

// GouraudShader lights a base color with a single directional light sampled
// at the vertices and interpolated across the face.
type GouraudShader struct {
	Matrix Matrix
	Mesh   *Mesh
	Light  v3.Vec // normalized light direction
	Color  color.RGBA

	// Intensity is the per-vertex varying written by the vertex stage. Each
	// worker renders with its own shader replica, one face at a time.
	Intensity [3]float64
}

func NewGouraudShader(matrix Matrix, mesh *Mesh, light v3.Vec, c color.RGBA) *GouraudShader {
	return &GouraudShader{Matrix: matrix, Mesh: mesh, Light: light.Normalize(), Color: c}
}

func (s *GouraudShader) Vertex(face, vert int) VecW {
	s.Intensity[vert] = math.Max(0, s.Mesh.Normal(face, vert).Dot(s.Light))
	return s.Matrix.MulPositionW(s.Mesh.Position(face, vert))
}

func (s *GouraudShader) Fragment(bc v3.Vec) (color.RGBA, bool) {
	k := s.Intensity[0]*bc.X + s.Intensity[1]*bc.Y + s.Intensity[2]*bc.Z
	return ScaleColor(s.Color, k), true
}

// NormalShader colors each fragment with the absolute value of its
// interpolated normal, useful for inspecting geometry.
type NormalShader struct {
	Matrix Matrix
	Mesh   *Mesh

	Normals [3]v3.Vec // per-vertex varying
}

func NewNormalShader(matrix Matrix, mesh *Mesh) *NormalShader {
	return &NormalShader{Matrix: matrix, Mesh: mesh}
}

func (s *NormalShader) Vertex(face, vert int) VecW {
	s.Normals[vert] = s.Mesh.Normal(face, vert)
	return s.Matrix.MulPositionW(s.Mesh.Position(face, vert))
}

func (s *NormalShader) Fragment(bc v3.Vec) (color.RGBA, bool) {
	n := s.Normals[0].MulScalar(bc.X).
		Add(s.Normals[1].MulScalar(bc.Y)).
		Add(s.Normals[2].MulScalar(bc.Z))
	return color.RGBA{
		R: uint8(math.Abs(n.X) * 255),
		G: uint8(math.Abs(n.Y) * 255),
		B: uint8(math.Abs(n.Z) * 255),
		A: 255,
	}, true
}

// TextureShader samples a diffuse texture at the interpolated UV coordinates
// and lights it like GouraudShader. Fully transparent texels are discarded.
// Texture sampling lives entirely in shader code; the pipeline itself knows
// nothing about textures.
type TextureShader struct {
	Matrix  Matrix
	Mesh    *Mesh
	Light   v3.Vec
	Texture image.Image

	UV        [3]v2.Vec  // per-vertex varying
	Intensity [3]float64 // per-vertex varying
}

func NewTextureShader(matrix Matrix, mesh *Mesh, light v3.Vec, texture image.Image) *TextureShader {
	return &TextureShader{Matrix: matrix, Mesh: mesh, Light: light.Normalize(), Texture: texture}
}

func (s *TextureShader) Vertex(face, vert int) VecW {
	s.UV[vert] = s.Mesh.TexCoord(face, vert)
	s.Intensity[vert] = math.Max(0, s.Mesh.Normal(face, vert).Dot(s.Light))
	return s.Matrix.MulPositionW(s.Mesh.Position(face, vert))
}

func (s *TextureShader) Fragment(bc v3.Vec) (color.RGBA, bool) {
	uv := s.UV[0].MulScalar(bc.X).Add(s.UV[1].MulScalar(bc.Y)).Add(s.UV[2].MulScalar(bc.Z))
	b := s.Texture.Bounds()
	// Nearest-neighbor sample; v grows upwards in UV space, downwards in
	// image space.
	tx := b.Min.X + clampInt(int(uv.X*float64(b.Dx())), 0, b.Dx()-1)
	ty := b.Min.Y + clampInt(int((1-uv.Y)*float64(b.Dy())), 0, b.Dy()-1)
	r, g, bl, a := s.Texture.At(tx, ty).RGBA()
	if a == 0 {
		return color.RGBA{}, false
	}
	k := s.Intensity[0]*bc.X + s.Intensity[1]*bc.Y + s.Intensity[2]*bc.Z
	return ScaleColor(color.RGBA{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(bl >> 8),
		A: uint8(a >> 8),
	}, k), true
}
