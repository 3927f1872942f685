package softgl

import (
	"context"
	"fmt"
	"image"
	"math"
	"runtime"
	"sync"

	"github.com/softgl/softgl/internal"
)

// fillGroupSize is the number of depth cells one parallel fill task
// initializes.
const fillGroupSize = 256

// depthLockShards is the number of mutexes striped over the depth buffer.
// Must be a power of two.
const depthLockShards = 256

// RenderArgs bundles everything a single render call needs.
type RenderArgs struct {
	// Ctx cancels the render between faces. Nil means no cancellation.
	Ctx context.Context
	// Model provides the face count. Vertex data reaches the pipeline only
	// through the shader, which indexes its own geometry by (face, vertex).
	Model Model
	// Shader is invoked at the vertex and fragment stages.
	Shader Shader
	// Output is the caller-owned color buffer. It is copied into
	// render-private memory up front, drawn into there, and copied back in
	// place just before Render returns.
	Output *image.RGBA
	// Workers is the number of parallel workers (default runtime.NumCPU()).
	Workers int
	// Depth optionally receives the final depth buffer, indexed y*width+x,
	// when its length is exactly width*height. Cells never written remain
	// -Inf.
	Depth []float64
}

// device holds the render-private buffers of one render call. They live only
// for the duration of the call.
type device struct {
	width, height int
	frame         *image.RGBA
	depth         []float64
	locks         [depthLockShards]sync.Mutex
}

// Render rasterizes every face of args.Model into args.Output with depth
// testing, dispatching one unit of work per face across the worker pool. It
// blocks until the frame is complete (or the context is cancelled) and only
// fails when the draw state cannot be relocated or the context ends early.
func Render(args *RenderArgs) error {
	ctx := args.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	workers := args.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	bounds := args.Output.Bounds()
	dev := &device{
		width:  bounds.Dx(),
		height: bounds.Dy(),
		frame:  image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy())),
		depth:  make([]float64, bounds.Dx()*bounds.Dy()),
	}
	copyFrame(dev.frame, args.Output)

	// One relocated shader replica per worker: the caller's instance stays
	// untouched and per-draw varyings never cross workers.
	shaders := make([]Shader, workers)
	for i := range shaders {
		clone, err := internal.Relocate(args.Shader)
		if err != nil {
			return fmt.Errorf("relocating shader state: %w", err)
		}
		shaders[i] = clone.(Shader)
	}

	dev.clearDepth(workers)

	nfaces := args.Model.NumFaces()
	wg := &sync.WaitGroup{}
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			shader := shaders[w]
			for face := w; face < nfaces; face += workers {
				if ctx.Err() != nil {
					return
				}
				dev.rasterizeFace(shader, face)
			}
		}(w)
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return err
	}

	copyFrame(args.Output, dev.frame)
	if len(args.Depth) == len(dev.depth) {
		copy(args.Depth, dev.depth)
	}
	return nil
}

// copyFrame copies the pixels of src into dst, row by row. The images must
// have equal dimensions but may have different strides and origins, as with a
// sub-image of a larger frame.
func copyFrame(dst, src *image.RGBA) {
	db, sb := dst.Bounds(), src.Bounds()
	rowBytes := 4 * db.Dx()
	for y := 0; y < db.Dy(); y++ {
		do := dst.PixOffset(db.Min.X, db.Min.Y+y)
		so := src.PixOffset(sb.Min.X, sb.Min.Y+y)
		copy(dst.Pix[do:do+rowBytes], src.Pix[so:so+rowBytes])
	}
}

// clearDepth initializes every depth cell to -Inf ("nothing drawn yet") in
// parallel, in fixed-size groups. It returns only once the fill is complete,
// so no rasterization work can observe an uninitialized cell.
func (d *device) clearDepth(workers int) {
	groups := (len(d.depth) + fillGroupSize - 1) / fillGroupSize
	empty := math.Inf(-1)
	wg := &sync.WaitGroup{}
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			for g := w; g < groups; g += workers {
				lo := g * fillGroupSize
				hi := lo + fillGroupSize
				if hi > len(d.depth) {
					hi = len(d.depth)
				}
				for i := lo; i < hi; i++ {
					d.depth[i] = empty
				}
			}
		}(w)
	}
	wg.Wait()
}
