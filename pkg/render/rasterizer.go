package render

import (
	"log/slog"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Presenter receives each finished frame. The buffer is only valid for the
// duration of the call; it becomes the back buffer again two swaps later.
type Presenter interface {
	Present(buf PixelBuffer) error
}

// PresenterFunc adapts a function to a Presenter.
type PresenterFunc func(buf PixelBuffer) error

// Present calls f(buf).
func (f PresenterFunc) Present(buf PixelBuffer) error { return f(buf) }

// Rasterizer draws batches into the back buffer of a double-buffered pair,
// with a 16-bit depth buffer shared by both.
//
// A Rasterizer is not safe for concurrent use. Resize must be called between
// frames.
type Rasterizer struct {
	width, height int
	buffers       [2]PixelBuffer
	current       int // index of the back buffer
	depth         *DepthBuffer

	view     math3d.Mat4
	proj     math3d.Mat4
	viewProj math3d.Mat4
	port     math3d.Mat4

	provider      BufferProvider
	presenter     Presenter
	insideEpsilon float64
	minCoverage   float64
	log           *slog.Logger

	Stats DrawStats // Statistics for debugging/benchmarking
}

// New creates a rasterizer with width x height buffers, identity view and
// projection matrices, and cleared buffers.
func New(width, height int, opts ...Option) (*Rasterizer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger
	if log == nil {
		log = Logger()
	}

	r := &Rasterizer{
		view:          math3d.Identity(),
		proj:          math3d.Identity(),
		viewProj:      math3d.Identity(),
		provider:      o.provider,
		presenter:     o.presenter,
		insideEpsilon: o.insideEpsilon,
		minCoverage:   o.minCoverage,
		log:           log,
	}
	if err := r.Resize(width, height); err != nil {
		return nil, err
	}
	return r, nil
}

// Resize reallocates both colour buffers and the depth buffer and rebuilds
// the viewport. Both colour buffers are cleared to opaque black. On error the
// rasterizer keeps its previous buffers.
func (r *Rasterizer) Resize(width, height int) error {
	if err := validateSize(width, height); err != nil {
		return err
	}
	var bufs [2]PixelBuffer
	for i := range bufs {
		buf, err := allocate(r.provider, width, height)
		if err != nil {
			return err
		}
		fill(buf.Pix(), ColorBlack)
		bufs[i] = buf
	}

	r.width, r.height = width, height
	r.buffers = bufs
	r.current = 0
	r.depth = NewDepthBuffer(width, height)
	r.port = Viewport(width, height)
	r.log.Debug("resized buffers", "width", width, "height", height, "stride", bufs[0].Stride())
	return nil
}

// Width returns the buffer width.
func (r *Rasterizer) Width() int { return r.width }

// Height returns the buffer height.
func (r *Rasterizer) Height() int { return r.height }

// SetViewMatrix sets the view matrix.
func (r *Rasterizer) SetViewMatrix(m math3d.Mat4) {
	r.view = m
	r.viewProj = r.proj.Mul(r.view)
}

// SetProjectionMatrix sets the projection matrix.
func (r *Rasterizer) SetProjectionMatrix(m math3d.Mat4) {
	r.proj = m
	r.viewProj = r.proj.Mul(r.view)
}

// ViewProjection returns projection * view.
func (r *Rasterizer) ViewProjection() math3d.Mat4 { return r.viewProj }

// ClearBuffers fills the back buffer with opaque black and resets every depth
// to MaxDepth.
func (r *Rasterizer) ClearBuffers() {
	fill(r.BackBuffer().Pix(), ColorBlack)
	r.depth.Clear()
}

// SwapBuffers hands the back buffer to the presenter, if any, and makes it
// the front buffer. Presenter errors are logged; the swap happens anyway.
func (r *Rasterizer) SwapBuffers() {
	if r.presenter != nil {
		if err := r.presenter.Present(r.BackBuffer()); err != nil {
			r.log.Warn("present failed", "err", err)
		}
	}
	r.current ^= 1
}

// BackBuffer returns the buffer being drawn to.
func (r *Rasterizer) BackBuffer() PixelBuffer { return r.buffers[r.current] }

// FrontBuffer returns the most recently swapped buffer.
func (r *Rasterizer) FrontBuffer() PixelBuffer { return r.buffers[r.current^1] }

// Depth returns the depth buffer.
func (r *Rasterizer) Depth() *DepthBuffer { return r.depth }

// SetPixel writes c to the back buffer. Writes outside the buffer are
// discarded.
func (r *Rasterizer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return
	}
	buf := r.buffers[r.current]
	buf.Pix()[y*buf.Stride()+x] = c
}

// DepthTest encodes z and tests it against the depth buffer at (x, y),
// storing it when it is nearer or equal.
func (r *Rasterizer) DepthTest(x, y int, z float64) bool {
	return r.depth.Test(x, y, EncodeDepth(z))
}
