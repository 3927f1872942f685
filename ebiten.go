package softgl

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/deadsy/sdfx/vec/v2i"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

var defaultFont font.Face = basicfont.Face7x13

func (v *Viewer) Update() error {
	v.onUpdateInputs()
	return nil
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(v.background)
	v.cachedRenderLock.RLock()
	frame := v.cachedRender
	v.cachedRenderLock.RUnlock()
	if frame != nil {
		screen.DrawImage(frame, nil)
	}
	v.drawUI(screen)
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	newSize := v2i.Vec{X: outsideWidth, Y: outsideHeight}
	v.stateLock.Lock()
	changed := v.screenSize != newSize
	v.screenSize = newSize
	v.stateLock.Unlock()
	if changed {
		v.rerender()
	}
	return outsideWidth, outsideHeight
}

func (v *Viewer) drawUI(screen *ebiten.Image) {
	// Notify when rendering
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	if v.renderingLock.RTryLock(ctx) {
		v.renderingLock.RUnlock()
	} else {
		drawTextWithShadow(screen, "Rendering...", 5, 5+defaultFont.Metrics().Height.Ceil(), color.RGBA{R: 255, A: 255})
	}

	v.stateLock.RLock()
	mode := v.state.ShaderMode
	height := v.screenSize.Y
	v.stateLock.RUnlock()
	msg := fmt.Sprintf("Shader: %d/%d [C]\nReset camera [R]\nOrbit [LeftMouse]\nZoom [MouseWheel]", mode, v.shaderModes())
	drawTextWithShadow(screen, msg, 5, height-4*defaultFont.Metrics().Height.Ceil(), color.RGBA{G: 255, A: 255})
}

func drawTextWithShadow(screen *ebiten.Image, msg string, x, y int, c color.RGBA) {
	text.Draw(screen, msg, defaultFont, x+1, y+1, color.RGBA{A: c.A})
	text.Draw(screen, msg, defaultFont, x, y, c)
}
