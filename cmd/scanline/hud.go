package main

import (
	"fmt"
	"io"
	"time"

	"github.com/taigrr/scanline/pkg/render"
)

// HUD renders an overlay with frame rate and draw statistics.
type HUD struct {
	out       io.Writer
	fps       float64
	fpsFrames int
	fpsTime   time.Time
	Show      bool
}

// NewHUD creates a HUD writing ANSI sequences to out.
func NewHUD(out io.Writer) *HUD {
	return &HUD{out: out, fpsTime: time.Now()}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Render draws the HUD overlay directly to the terminal
func (h *HUD) Render(width, height int, stats render.DrawStats) {
	const (
		reset     = "\x1b[0m"
		bgBlack   = "\x1b[40m"
		fgGreen   = "\x1b[92m"
		fgCyan    = "\x1b[96m"
		dim       = "\x1b[2m"
		clearLine = "\x1b[2K"
	)
	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	// Always clear the HUD rows (so toggling off works)
	fmt.Fprint(h.out, moveTo(1, 1)+clearLine)
	fmt.Fprint(h.out, moveTo(height, 1)+clearLine)
	if !h.Show {
		return
	}

	fmt.Fprintf(h.out, "%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)

	statStr := fmt.Sprintf("%s%s %d objects  %d primitives  %d skipped %s",
		bgBlack, fgCyan, stats.Objects, stats.Primitives, stats.Skipped, reset)
	fmt.Fprint(h.out, moveTo(height, 1)+statStr)

	hint := fmt.Sprintf("%s%s A/D turn  W/S move  R reset  Esc quit %s", bgBlack, dim, reset)
	fmt.Fprint(h.out, moveTo(height, max(width-38, 1))+hint)
}
