package softgl

import (
	"math"

	"github.com/deadsy/sdfx/vec/v2i"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// onUpdateInputs handles inputs once per game tick.
func (v *Viewer) onUpdateInputs() {
	// Shader mode
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		v.stateLock.Lock()
		v.state.ShaderMode = (v.state.ShaderMode + 1) % v.shaderModes()
		v.stateLock.Unlock()
		v.rerender()
	}
	// Reset camera transform
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.stateLock.Lock()
		v.resetCamera()
		v.stateLock.Unlock()
		v.rerender()
	}
	// Zooming
	if _, wheel := ebiten.Wheel(); wheel != 0 {
		v.stateLock.Lock()
		scale := 1 - wheel*0.1
		scale = math.Max(0.5, math.Min(2, scale)) // Zoom limits per tick
		v.state.CamDist *= scale
		v.stateLock.Unlock()
		v.rerender()
	}
	v.onUpdateOrbit()
}

// onUpdateOrbit applies the arc-ball rotation when a mouse drag ends.
func (v *Viewer) onUpdateOrbit() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		cx, cy := ebiten.CursorPosition()
		v.dragFrom = v2i.Vec{X: cx, Y: cy}
		v.dragging = true
	}
	if v.dragging && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		cx, cy := ebiten.CursorPosition()
		v.dragging = false
		v.stateLock.Lock()
		v.state.CamYaw -= float64(cx-v.dragFrom.X) / 100
		if v.state.CamYaw < -math.Pi {
			v.state.CamYaw += 2 * math.Pi // Limits (wrap around)
		} else if v.state.CamYaw > math.Pi {
			v.state.CamYaw -= 2 * math.Pi
		}
		v.state.CamPitch -= float64(cy-v.dragFrom.Y) / 100
		v.state.CamPitch = math.Max(-(math.Pi/2 - 1e-5), math.Min(math.Pi/2-1e-5, v.state.CamPitch))
		v.stateLock.Unlock()
		v.rerender()
	}
}
