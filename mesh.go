package softgl

import (
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/fogleman/fauxgl"
)

// Model is the mesh contract of the pipeline: the orchestrator only needs the
// face count, everything else flows through the shader's vertex stage.
type Model interface {
	NumFaces() int
}

// MeshVertex is one corner of a mesh face.
type MeshVertex struct {
	Position v3.Vec
	Normal   v3.Vec
	UV       v2.Vec
}

// Mesh is a flat triangle list addressed by (face, vertex) pairs, the way
// shaders index it.
type Mesh struct {
	Faces [][3]MeshVertex
}

func (m *Mesh) NumFaces() int {
	return len(m.Faces)
}

// Position returns the position of vertex vert (0..2) of the given face.
func (m *Mesh) Position(face, vert int) v3.Vec {
	return m.Faces[face][vert].Position
}

func (m *Mesh) Normal(face, vert int) v3.Vec {
	return m.Faces[face][vert].Normal
}

func (m *Mesh) TexCoord(face, vert int) v2.Vec {
	return m.Faces[face][vert].UV
}

// BoundingBox returns the axis-aligned bounds of the mesh, or a zero box for
// an empty mesh.
func (m *Mesh) BoundingBox() sdf.Box3 {
	if len(m.Faces) == 0 {
		return sdf.Box3{}
	}
	box := sdf.Box3{Min: m.Faces[0][0].Position, Max: m.Faces[0][0].Position}
	for _, f := range m.Faces {
		for _, v := range f {
			box.Min = box.Min.Min(v.Position)
			box.Max = box.Max.Max(v.Position)
		}
	}
	return box
}

// NewMeshFromOBJ loads a Wavefront OBJ file. Parsing is delegated to fauxgl;
// only positions, normals and texture coordinates are kept.
func NewMeshFromOBJ(path string) (*Mesh, error) {
	fm, err := fauxgl.LoadOBJ(path)
	if err != nil {
		return nil, err
	}
	return newMeshFromFauxgl(fm), nil
}

// NewMeshFromSDF meshes a signed distance field with the given generator and
// smooths normals between faces meeting below the given angle.
func NewMeshFromSDF(s sdf.SDF3, generator render.Render3, smoothNormalsRadians float64) *Mesh {
	var triangles []*fauxgl.Triangle
	triChan := make(chan []*render.Triangle3)
	go func() {
		generator.Render(s, triChan)
		close(triChan)
	}()
	for tris := range triChan {
		for _, tri := range tris {
			triangles = append(triangles, toFauxglTriangle(tri))
		}
	}
	fm := fauxgl.NewTriangleMesh(triangles)
	fm.SmoothNormalsThreshold(smoothNormalsRadians)
	return newMeshFromFauxgl(fm)
}

func newMeshFromFauxgl(fm *fauxgl.Mesh) *Mesh {
	m := &Mesh{Faces: make([][3]MeshVertex, 0, len(fm.Triangles))}
	for _, t := range fm.Triangles {
		m.Faces = append(m.Faces, [3]MeshVertex{
			fromFauxglVertex(t.V1),
			fromFauxglVertex(t.V2),
			fromFauxglVertex(t.V3),
		})
	}
	return m
}

func fromFauxglVertex(v fauxgl.Vertex) MeshVertex {
	return MeshVertex{
		Position: v3.Vec{X: v.Position.X, Y: v.Position.Y, Z: v.Position.Z},
		Normal:   v3.Vec{X: v.Normal.X, Y: v.Normal.Y, Z: v.Normal.Z},
		UV:       v2.Vec{X: v.Texture.X, Y: v.Texture.Y},
	}
}

func toFauxglTriangle(tri *render.Triangle3) *fauxgl.Triangle {
	normal := tri.Normal()
	n := fauxgl.Vector{X: normal.X, Y: normal.Y, Z: normal.Z}
	return &fauxgl.Triangle{
		V1: fauxgl.Vertex{Position: fauxgl.Vector{X: tri.V[0].X, Y: tri.V[0].Y, Z: tri.V[0].Z}, Normal: n, Color: fauxgl.Gray(1)},
		V2: fauxgl.Vertex{Position: fauxgl.Vector{X: tri.V[1].X, Y: tri.V[1].Y, Z: tri.V[1].Z}, Normal: n, Color: fauxgl.Gray(1)},
		V3: fauxgl.Vertex{Position: fauxgl.Vector{X: tri.V[2].X, Y: tri.V[2].Y, Z: tri.V[2].Z}, Normal: n, Color: fauxgl.Gray(1)},
	}
}
