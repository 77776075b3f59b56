package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// CellWriter is the part of a uv.Screen that a TerminalPresenter draws
// through.
type CellWriter interface {
	SetCell(x, y int, c *uv.Cell)
}

// TerminalPresenter draws frames onto an ultraviolet screen using half-block
// characters: each terminal row shows two buffer rows, the upper one as the
// foreground of ▀ and the lower one as its background.
type TerminalPresenter struct {
	screen CellWriter
	area   uv.Rectangle
	flush  func() error

	// FlipY draws buffer row 0 at the bottom of the area. The viewport maps
	// NDC +y to higher rows, so this keeps +y pointing up on screen.
	FlipY bool
}

// NewTerminalPresenter creates a presenter drawing into area of scr. flush,
// when non-nil, is called after every frame to push the cells out.
func NewTerminalPresenter(scr CellWriter, area uv.Rectangle, flush func() error) *TerminalPresenter {
	return &TerminalPresenter{
		screen: scr,
		area:   area,
		flush:  flush,
		FlipY:  true,
	}
}

// SetArea changes the region drawn into, typically after a terminal resize.
func (p *TerminalPresenter) SetArea(area uv.Rectangle) {
	p.area = area
}

// Present draws buf and flushes the screen.
func (p *TerminalPresenter) Present(buf PixelBuffer) error {
	_, h := buf.Size()
	for row := p.area.Min.Y; row < p.area.Max.Y; row++ {
		topY := (row - p.area.Min.Y) * 2
		botY := topY + 1
		if p.FlipY {
			topY, botY = h-1-topY, h-1-botY
		}

		for col := p.area.Min.X; col < p.area.Max.X; col++ {
			x := col - p.area.Min.X
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(pixelAt(buf, x, topY)),
					Bg: rgbaToColor(pixelAt(buf, x, botY)),
				},
			}
			p.screen.SetCell(col, row, cell)
		}
	}
	if p.flush != nil {
		return p.flush()
	}
	return nil
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c Color) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}
