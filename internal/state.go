package internal

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ViewerState is the mutable camera and display state shared by the viewer
// files. Guarded by the viewer's state lock.
type ViewerState struct {
	// Arc-ball camera: rotation angles around CamCenter and the distance
	// from it.
	CamCenter                 v3.Vec
	CamYaw, CamPitch, CamDist float64
	// ShaderMode selects which built-in shader draws the mesh.
	ShaderMode int
}
