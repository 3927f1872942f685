package softgl

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"log"
	"math"
	"sync"

	"github.com/deadsy/sdfx/vec/v2i"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/subchen/go-trylock/v2"

	"github.com/softgl/softgl/internal"
)

// Viewer is an interactive preview of a mesh: it renders through the softgl
// pipeline off the game loop and displays the cached frame with ebiten.
type Viewer struct {
	mesh     *Mesh
	meshLock sync.RWMutex

	state     *internal.ViewerState
	stateLock sync.RWMutex

	background   color.RGBA
	surfaceColor color.RGBA
	lightDir     v3.Vec
	texture      image.Image
	workers      int

	cachedRender     *ebiten.Image
	cachedRenderLock sync.RWMutex

	// renderingLock is held for the duration of each render so the UI can
	// tell whether one is in flight without blocking on it.
	renderingLock    trylock.TryLocker
	renderCancel     context.CancelFunc
	renderCancelLock sync.Mutex

	screenSize v2i.Vec
	dragFrom   v2i.Vec
	dragging   bool

	watchPath  string
	watchClose func()
}

// shaderModes returns how many shader modes the C key cycles through.
func (v *Viewer) shaderModes() int {
	if v.texture != nil {
		return 4
	}
	return 3
}

// rerender cancels any in-flight render and starts a new one for the current
// state. Safe to call from any goroutine.
func (v *Viewer) rerender() {
	v.renderCancelLock.Lock()
	if v.renderCancel != nil {
		v.renderCancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	v.renderCancel = cancel
	v.renderCancelLock.Unlock()

	v.stateLock.RLock()
	state := *v.state
	size := v.screenSize
	v.stateLock.RUnlock()
	v.meshLock.RLock()
	mesh := v.mesh
	v.meshLock.RUnlock()
	if size.X <= 0 || size.Y <= 0 || mesh == nil {
		return
	}

	go func() {
		if !v.renderingLock.TryLock(ctx) { // Wait for the cancelled render to stop
			return
		}
		defer v.renderingLock.Unlock()
		img := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
		draw.Draw(img, img.Bounds(), image.NewUniform(v.background), image.Point{}, draw.Src)
		err := Render(&RenderArgs{
			Ctx:     ctx,
			Model:   mesh,
			Shader:  v.buildShader(mesh, &state, size.X, size.Y),
			Output:  img,
			Workers: v.workers,
		})
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				log.Println("[softgl] render:", err)
			}
			return
		}
		frame := ebiten.NewImageFromImage(img)
		v.cachedRenderLock.Lock()
		v.cachedRender = frame
		v.cachedRenderLock.Unlock()
	}()
}

// buildShader composes the full transform for the given state and wraps it in
// the shader selected by the current mode.
func (v *Viewer) buildShader(mesh *Mesh, s *internal.ViewerState, width, height int) Shader {
	eye := cameraEye(s)
	matrix := Viewport(width, height).
		Mul(Projection(s.CamDist)).
		Mul(LookAt(eye, s.CamCenter, v3.Vec{Z: 1})).
		Mul(fitMatrix(mesh))
	switch s.ShaderMode {
	case 1:
		return NewNormalShader(matrix, mesh)
	case 2:
		return NewSolidColorShader(matrix, mesh, v.surfaceColor)
	case 3:
		return NewTextureShader(matrix, mesh, v.lightDir, v.texture)
	default:
		return NewGouraudShader(matrix, mesh, v.lightDir, v.surfaceColor)
	}
}

// cameraEye places the camera on the arc-ball sphere: the -Y axis rotated by
// pitch around X and yaw around Z, scaled to the camera distance.
func cameraEye(s *internal.ViewerState) v3.Vec {
	offset := v3.Vec{
		X: s.CamDist * math.Cos(s.CamPitch) * math.Sin(s.CamYaw),
		Y: -s.CamDist * math.Cos(s.CamPitch) * math.Cos(s.CamYaw),
		Z: -s.CamDist * math.Sin(s.CamPitch),
	}
	return s.CamCenter.Add(offset)
}

// fitMatrix centers the mesh on the origin and scales its largest extent to
// the [-1, 1] range the projection expects.
func fitMatrix(m *Mesh) Matrix {
	box := m.BoundingBox()
	center := box.Center()
	size := box.Size()
	ext := max3(size.X, size.Y, size.Z)
	if ext == 0 {
		ext = 1
	}
	k := 2 / ext
	fit := Identity()
	fit[0][0], fit[1][1], fit[2][2] = k, k, k
	fit[0][3], fit[1][3], fit[2][3] = -center.X*k, -center.Y*k, -center.Z*k
	return fit
}
