package softgl

import (
	"image"
	"image/color"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/subchen/go-trylock/v2"

	"github.com/softgl/softgl/internal"
)

// Option configures a Viewer before it starts running.
type Option func(*Viewer)

// OptBackground sets the color drawn behind the mesh.
func OptBackground(c color.RGBA) Option {
	return func(v *Viewer) {
		v.background = c
	}
}

// OptSurfaceColor sets the base color of the lit shader modes.
func OptSurfaceColor(c color.RGBA) Option {
	return func(v *Viewer) {
		v.surfaceColor = c
	}
}

// OptLightDir sets the directional light used by the lit shader modes.
func OptLightDir(dir v3.Vec) Option {
	return func(v *Viewer) {
		v.lightDir = dir.Normalize()
	}
}

// OptCamera sets the default camera transform (pivot center, angles and
// distance, in normalized mesh space).
func OptCamera(center v3.Vec, pitch, yaw, dist float64) Option {
	return func(v *Viewer) {
		v.state.CamCenter = center
		v.state.CamPitch = pitch
		v.state.CamYaw = yaw
		v.state.CamDist = dist
	}
}

// OptShaderMode selects the initial shader (see Viewer.shaderModes).
func OptShaderMode(mode int) Option {
	return func(v *Viewer) {
		v.state.ShaderMode = mode
	}
}

// OptWorkers caps the parallelism of each render call.
func OptWorkers(n int) Option {
	return func(v *Viewer) {
		v.workers = n
	}
}

// OptTexture enables the textured shader mode with the given diffuse map.
func OptTexture(img image.Image) Option {
	return func(v *Viewer) {
		v.texture = img
	}
}

// OptWatchOBJ reloads the mesh from the given OBJ file whenever it changes on
// disk, so the viewer follows an external editor or exporter.
func OptWatchOBJ(path string) Option {
	return func(v *Viewer) {
		v.watchPath = path
	}
}

// NewViewer creates an interactive arc-ball preview of mesh. Window placement
// (title, size, resizing) is left to the caller via the ebiten package.
func NewViewer(mesh *Mesh, opts ...Option) *Viewer {
	v := &Viewer{
		mesh:          mesh,
		state:         &internal.ViewerState{},
		background:    color.RGBA{R: 50, G: 100, B: 150, A: 255},
		surfaceColor:  color.RGBA{R: 235, G: 215, B: 175, A: 255},
		lightDir:      v3.Vec{X: -1, Y: 1, Z: 1}.Normalize(),
		renderingLock: trylock.New(),
	}
	v.resetCamera()
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Run opens the viewer window and blocks until it is closed.
func (v *Viewer) Run() error {
	if v.watchPath != "" {
		v.startWatcher(v.watchPath)
	}
	defer func() {
		if v.watchClose != nil {
			v.watchClose()
		}
	}()
	return ebiten.RunGame(v)
}

func (v *Viewer) resetCamera() {
	// The mesh is drawn through its fit matrix, so the camera always works
	// in normalized space: pivot at the origin, looking from 45 degrees up
	// and to the side.
	v.state.CamCenter = v3.Vec{}
	v.state.CamDist = 3
	v.state.CamPitch = -math.Pi / 4
	v.state.CamYaw = -math.Pi / 4
}
