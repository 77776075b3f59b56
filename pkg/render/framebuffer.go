// Package render rasterises vertex batches into double-buffered RGBA colour
// buffers with a 16-bit depth test, and presents the finished frames.
package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// PixelBuffer is a row-major RGBA colour buffer. Rows may be padded: pixel
// (x, y) lives at Pix()[y*Stride()+x].
type PixelBuffer interface {
	Size() (width, height int)
	Stride() int
	Pix() []Color
}

// Framebuffer is the default PixelBuffer. Presenters that draw to a terminal
// use half-block characters, so one terminal row shows two framebuffer rows.
type Framebuffer struct {
	Width  int     // Width in pixels
	Height int     // Height in pixels
	Pitch  int     // Pixels per row, at least Width
	Pixels []Color // Row-major pixel data, Pitch*Height long
}

// NewFramebuffer creates a tightly packed framebuffer.
func NewFramebuffer(width, height int) *Framebuffer {
	return NewFramebufferPitch(width, height, width)
}

// NewFramebufferPitch creates a framebuffer whose rows are pitch pixels apart.
// A pitch smaller than width is raised to width.
func NewFramebufferPitch(width, height, pitch int) *Framebuffer {
	if pitch < width {
		pitch = width
	}
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pitch:  pitch,
		Pixels: make([]Color, pitch*height),
	}
}

// Size returns the visible dimensions.
func (fb *Framebuffer) Size() (width, height int) { return fb.Width, fb.Height }

// Stride returns the distance between rows in pixels.
func (fb *Framebuffer) Stride() int { return fb.Pitch }

// Pix returns the backing pixel slice.
func (fb *Framebuffer) Pix() []Color { return fb.Pixels }

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c Color) {
	fill(fb.Pixels, c)
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Pitch+x] = c
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	return pixelAt(fb, x, y)
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	return ToImage(fb)
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	return writeImage(fb, path, png.Encode)
}

// SaveBMP saves the framebuffer as a BMP file.
func (fb *Framebuffer) SaveBMP(path string) error {
	return writeImage(fb, path, bmp.Encode)
}

// fill sets every element of s to c by copy-doubling.
func fill[T any](s []T, c T) {
	if len(s) == 0 {
		return
	}
	s[0] = c
	for i := 1; i < len(s); i *= 2 {
		copy(s[i:], s[:i])
	}
}

func pixelAt(buf PixelBuffer, x, y int) Color {
	w, h := buf.Size()
	if x < 0 || x >= w || y < 0 || y >= h {
		return Color{}
	}
	return buf.Pix()[y*buf.Stride()+x]
}

// ToImage copies the visible area of buf into an image.RGBA.
func ToImage(buf PixelBuffer) *image.RGBA {
	w, h := buf.Size()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	pix, stride := buf.Pix(), buf.Stride()
	for y := range h {
		row := pix[y*stride : y*stride+w]
		for x, c := range row {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// SaveImage writes buf to path. The format follows the extension: ".png" or
// ".bmp".
func SaveImage(buf PixelBuffer, path string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return writeImage(buf, path, png.Encode)
	case ".bmp":
		return writeImage(buf, path, bmp.Encode)
	default:
		return fmt.Errorf("render: unsupported image format %q", ext)
	}
}

func writeImage(buf PixelBuffer, path string, encode func(io.Writer, image.Image) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return encode(f, ToImage(buf))
}
