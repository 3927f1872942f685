package softgl

import (
	"image"
	"image/color"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

func TestScaleColor(t *testing.T) {
	c := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	tests := []struct {
		k    float64
		want color.RGBA
	}{
		{1, color.RGBA{R: 200, G: 100, B: 50, A: 255}},
		{0.5, color.RGBA{R: 100, G: 50, B: 25, A: 255}},
		{0, color.RGBA{A: 255}},
		{-3, color.RGBA{A: 255}},                         // clamped low
		{7, color.RGBA{R: 200, G: 100, B: 50, A: 255}},   // clamped high
	}
	for _, tt := range tests {
		if got := ScaleColor(c, tt.k); got != tt.want {
			t.Errorf("ScaleColor(%v, %v) = %v, want %v", c, tt.k, got, tt.want)
		}
	}
}

func singleFaceMesh(normal v3.Vec) *Mesh {
	return &Mesh{Faces: [][3]MeshVertex{{
		{Position: v3.Vec{X: 0, Y: 0}, Normal: normal, UV: v2.Vec{X: 0, Y: 0}},
		{Position: v3.Vec{X: 10, Y: 0}, Normal: normal, UV: v2.Vec{X: 1, Y: 0}},
		{Position: v3.Vec{X: 0, Y: 10}, Normal: normal, UV: v2.Vec{X: 0, Y: 1}},
	}}}
}

func TestGouraudShaderLighting(t *testing.T) {
	base := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	// Weights that sum to exactly 1 in floating point.
	centroid := v3.Vec{X: 0.5, Y: 0.25, Z: 0.25}

	// Normal facing the light: full intensity everywhere.
	s := NewGouraudShader(Identity(), singleFaceMesh(v3.Vec{Z: 1}), v3.Vec{Z: 1}, base)
	for i := 0; i < 3; i++ {
		s.Vertex(0, i)
	}
	if got, _ := s.Fragment(centroid); got != base {
		t.Errorf("lit fragment = %v, want %v", got, base)
	}

	// Normal perpendicular to the light: black, alpha preserved.
	s = NewGouraudShader(Identity(), singleFaceMesh(v3.Vec{X: 1}), v3.Vec{Z: 1}, base)
	for i := 0; i < 3; i++ {
		s.Vertex(0, i)
	}
	if got, _ := s.Fragment(centroid); got != (color.RGBA{A: 255}) {
		t.Errorf("unlit fragment = %v, want opaque black", got)
	}
}

func TestNormalShaderColors(t *testing.T) {
	mesh := &Mesh{Faces: [][3]MeshVertex{{
		{Position: v3.Vec{X: 0, Y: 0}, Normal: v3.Vec{X: 1}},
		{Position: v3.Vec{X: 10, Y: 0}, Normal: v3.Vec{Y: 1}},
		{Position: v3.Vec{X: 0, Y: 10}, Normal: v3.Vec{Z: -1}},
	}}}
	s := NewNormalShader(Identity(), mesh)
	for i := 0; i < 3; i++ {
		s.Vertex(0, i)
	}

	tests := []struct {
		bc   v3.Vec
		want color.RGBA
	}{
		{v3.Vec{X: 1}, color.RGBA{R: 255, A: 255}},
		{v3.Vec{Y: 1}, color.RGBA{G: 255, A: 255}},
		{v3.Vec{Z: 1}, color.RGBA{B: 255, A: 255}}, // negative z shows as |z|
	}
	for _, tt := range tests {
		if got, keep := s.Fragment(tt.bc); !keep || got != tt.want {
			t.Errorf("Fragment(%v) = %v, want %v", tt.bc, got, tt.want)
		}
	}
}

func TestTextureShaderSampling(t *testing.T) {
	// 2x2 texture: red top-left, green top-right, blue bottom-left, and a
	// fully transparent bottom-right texel.
	tex := image.NewRGBA(image.Rect(0, 0, 2, 2))
	tex.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	tex.SetRGBA(1, 0, color.RGBA{G: 255, A: 255})
	tex.SetRGBA(0, 1, color.RGBA{B: 255, A: 255})

	mesh := singleFaceMesh(v3.Vec{Z: 1})
	s := NewTextureShader(Identity(), mesh, v3.Vec{Z: 1}, tex)
	for i := 0; i < 3; i++ {
		s.Vertex(0, i)
	}

	// UV (0,1) is the top-left of the image: full v points at row 0.
	s.UV = [3]v2.Vec{{X: 0, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 1}}
	if got, keep := s.Fragment(v3.Vec{X: 1}); !keep || got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("sample at uv(0,1) = %v, want red", got)
	}

	// UV (0,0) lands on the bottom row.
	s.UV = [3]v2.Vec{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 0}}
	if got, keep := s.Fragment(v3.Vec{X: 1}); !keep || got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("sample at uv(0,0) = %v, want blue", got)
	}

	// The transparent texel discards the fragment.
	s.UV = [3]v2.Vec{{X: 1, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 0}}
	if _, keep := s.Fragment(v3.Vec{X: 1}); keep {
		t.Error("transparent texel not discarded")
	}
}

func TestSolidColorShader(t *testing.T) {
	want := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	s := NewSolidColorShader(Identity(), singleFaceMesh(v3.Vec{Z: 1}), want)
	pos := s.Vertex(0, 1).Dehomogenize()
	if pos != (v3.Vec{X: 10}) {
		t.Errorf("Vertex(0,1) = %v, want (10,0,0)", pos)
	}
	if got, keep := s.Fragment(v3.Vec{X: 1}); !keep || got != want {
		t.Errorf("Fragment = %v, want %v", got, want)
	}
}
