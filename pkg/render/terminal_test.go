package render

import (
	"errors"
	"image"
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cellGrid records the cells a presenter writes.
type cellGrid map[[2]int]*uv.Cell

func (g cellGrid) SetCell(x, y int, c *uv.Cell) {
	g[[2]int{x, y}] = c
}

// rowBuffer returns a 2x4 framebuffer whose rows are red, green, blue and
// yellow from top to bottom.
func rowBuffer() *Framebuffer {
	fb := NewFramebuffer(2, 4)
	for x := range 2 {
		fb.SetPixel(x, 0, ColorRed)
		fb.SetPixel(x, 1, ColorGreen)
		fb.SetPixel(x, 2, ColorBlue)
		fb.SetPixel(x, 3, ColorYellow)
	}
	return fb
}

func TestTerminalPresenterPairsRows(t *testing.T) {
	grid := cellGrid{}
	p := NewTerminalPresenter(grid, uv.Rectangle(image.Rect(3, 1, 5, 3)), nil)
	p.FlipY = false

	require.NoError(t, p.Present(rowBuffer()))
	require.Len(t, grid, 4)

	top := grid[[2]int{3, 1}]
	require.NotNil(t, top)
	assert.Equal(t, "▀", top.Content)
	assert.Equal(t, ColorRed, top.Style.Fg)
	assert.Equal(t, ColorGreen, top.Style.Bg)

	bottom := grid[[2]int{4, 2}]
	require.NotNil(t, bottom)
	assert.Equal(t, ColorBlue, bottom.Style.Fg)
	assert.Equal(t, ColorYellow, bottom.Style.Bg)
}

func TestTerminalPresenterFlipY(t *testing.T) {
	grid := cellGrid{}
	p := NewTerminalPresenter(grid, uv.Rectangle(image.Rect(0, 0, 2, 2)), nil)
	require.True(t, p.FlipY)

	require.NoError(t, p.Present(rowBuffer()))

	top := grid[[2]int{0, 0}]
	assert.Equal(t, ColorYellow, top.Style.Fg)
	assert.Equal(t, ColorBlue, top.Style.Bg)

	bottom := grid[[2]int{1, 1}]
	assert.Equal(t, ColorGreen, bottom.Style.Fg)
	assert.Equal(t, ColorRed, bottom.Style.Bg)
}

func TestTerminalPresenterTransparentAndFlush(t *testing.T) {
	grid := cellGrid{}
	boom := errors.New("write failed")
	flushed := 0
	p := NewTerminalPresenter(grid, uv.Rectangle(image.Rect(0, 0, 2, 3)), func() error {
		flushed++
		return boom
	})
	p.FlipY = false

	// The area is taller than the buffer: rows past the end are transparent.
	err := p.Present(rowBuffer())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, flushed)
	assert.Nil(t, grid[[2]int{0, 2}].Style.Fg)
	assert.Nil(t, grid[[2]int{0, 2}].Style.Bg)

	p.SetArea(uv.Rectangle(image.Rect(0, 0, 1, 1)))
	clear(grid)
	require.ErrorIs(t, p.Present(rowBuffer()), boom)
	assert.Len(t, grid, 1)
}
