package render

import (
	"errors"
	"fmt"
)

// Errors returned when creating or resizing a Rasterizer.
var (
	// ErrInvalidSize is returned for non-positive or overflowing dimensions.
	ErrInvalidSize = errors.New("render: invalid buffer size")
	// ErrBufferSize is returned when a BufferProvider hands back a buffer
	// that does not match the requested dimensions.
	ErrBufferSize = errors.New("render: buffer does not match requested size")
)

// maxPixels bounds width*height so index arithmetic cannot overflow and a bad
// resize request cannot exhaust memory.
const maxPixels = 1 << 28

// BufferProvider allocates colour buffers for a Rasterizer.
type BufferProvider interface {
	Allocate(width, height int) (PixelBuffer, error)
}

// ProviderFunc adapts a function to a BufferProvider.
type ProviderFunc func(width, height int) (PixelBuffer, error)

// Allocate calls f(width, height).
func (f ProviderFunc) Allocate(width, height int) (PixelBuffer, error) {
	return f(width, height)
}

// DefaultProvider allocates tightly packed Framebuffers.
func DefaultProvider() BufferProvider {
	return ProviderFunc(func(width, height int) (PixelBuffer, error) {
		return NewFramebuffer(width, height), nil
	})
}

// StridedProvider allocates Framebuffers whose rows are padded to a multiple
// of align pixels. Display surfaces often require such alignment.
func StridedProvider(align int) BufferProvider {
	return ProviderFunc(func(width, height int) (PixelBuffer, error) {
		if align <= 0 {
			return nil, fmt.Errorf("render: row alignment %d: %w", align, ErrInvalidSize)
		}
		pitch := (width + align - 1) / align * align
		return NewFramebufferPitch(width, height, pitch), nil
	})
}

func validateSize(width, height int) error {
	if width <= 0 || height <= 0 || width > maxPixels/height {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return nil
}

// allocate asks p for a buffer and checks it can hold width x height pixels.
func allocate(p BufferProvider, width, height int) (PixelBuffer, error) {
	buf, err := p.Allocate(width, height)
	if err != nil {
		return nil, fmt.Errorf("render: allocate %dx%d buffer: %w", width, height, err)
	}
	if buf == nil {
		return nil, fmt.Errorf("%w: provider returned nil", ErrBufferSize)
	}
	w, h := buf.Size()
	stride := buf.Stride()
	if w != width || h != height || stride < width || len(buf.Pix()) < stride*(height-1)+width {
		return nil, fmt.Errorf("%w: want %dx%d, got %dx%d stride %d len %d",
			ErrBufferSize, width, height, w, h, stride, len(buf.Pix()))
	}
	return buf, nil
}
