// scanline - Terminal star map
// Flies a camera through a software-rasterised star field in your terminal.
//
// Controls:
//
//	A/D   - Turn left/right
//	W/S   - Move forward/back
//	R     - Reset camera
//	?     - Toggle HUD overlay
//	Esc   - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
)

func main() {
	fs := flag.NewFlagSet("scanline", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "scanline - Terminal star map\n\n")
		fmt.Fprintf(os.Stderr, "Usage: scanline [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  A/D   - Turn left/right\n")
		fmt.Fprintf(os.Stderr, "  W/S   - Move forward/back\n")
		fmt.Fprintf(os.Stderr, "  R     - Reset camera\n")
		fmt.Fprintf(os.Stderr, "  ?     - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc   - Quit\n")
	}

	cfg, err := parseConfig(fs, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg Config) error {
	if cfg.Log != "" {
		f, err := os.OpenFile(cfg.Log, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
		slog.SetDefault(logger)
		render.SetLogger(logger)
	}

	var ship []*models.Batch
	if cfg.Ship != "" {
		var err error
		if ship, err = LoadShip(cfg.Ship); err != nil {
			return fmt.Errorf("load ship: %w", err)
		}
	}
	scene, err := NewScene(cfg, ship)
	if err != nil {
		return err
	}

	if cfg.Snapshot != "" {
		return snapshot(cfg, scene)
	}
	return interactive(cfg, scene)
}

// newCamera returns the starting camera: at the origin, facing +Z.
func newCamera(cfg Config, width, height int) *render.Camera {
	cam := render.NewCamera(float64(width) / float64(height))
	cam.SetFOV(cfg.FOV * math.Pi / 180)
	cam.SetClipPlanes(cfg.Near, cfg.Far)
	cam.SetRotation(0, math.Pi, 0)
	return cam
}

// snapshot renders one frame and writes it to cfg.Snapshot.
func snapshot(cfg Config, scene *Scene) error {
	r, err := render.New(cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	cam := newCamera(cfg, cfg.Width, cfg.Height)
	cam.Apply(r)
	// Image rows grow downward; flip so +y is up in the file.
	r.SetProjectionMatrix(math3d.Scale(math3d.V3(1, -1, 1)).Mul(cam.ProjectionMatrix()))

	scene.Draw(r)
	r.SwapBuffers()
	if err := render.SaveImage(r.FrontBuffer(), cfg.Snapshot); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	slog.Info("saved snapshot", "path", cfg.Snapshot, "stats", r.Stats)
	return nil
}

func interactive(cfg Config, scene *Scene) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	// Each terminal row shows two buffer rows.
	presenter := render.NewTerminalPresenter(term, uv.Rectangle(image.Rect(0, 0, width, height)), term.Display)
	r, err := render.New(width, height*2, render.WithPresenter(presenter))
	if err != nil {
		return err
	}
	cam := newCamera(cfg, width, height*2)
	controls := NewControls(cfg)
	hud := NewHUD(os.Stdout)

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// The frame loop owns the rasterizer; input only posts events.
	events := make(chan any, 64)
	go func() {
		for ev := range term.Events() {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	targetDuration := time.Second / time.Duration(cfg.FPS)
	lastFrame := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

	drain:
		for {
			select {
			case ev := <-events:
				switch ev := ev.(type) {
				case uv.WindowSizeEvent:
					width, height = ev.Width, ev.Height
					term.Erase()
					term.Resize(width, height)
					if err := r.Resize(width, height*2); err != nil {
						slog.Warn("resize failed", "err", err)
						continue
					}
					presenter.SetArea(uv.Rectangle(image.Rect(0, 0, width, height)))
					cam.SetAspectRatio(float64(width) / float64(height*2))

				case uv.KeyPressEvent:
					switch {
					case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
						cancel()
					case ev.MatchString("a", "left"):
						controls.Turn.Target = 1
					case ev.MatchString("d", "right"):
						controls.Turn.Target = -1
					case ev.MatchString("w", "up"):
						controls.Move.Target = 1
					case ev.MatchString("s", "down"):
						controls.Move.Target = -1
					case ev.MatchString("r"):
						controls.Reset()
						cam = newCamera(cfg, width, height*2)
					case ev.MatchString("?"), ev.MatchString("shift+/"):
						hud.Show = !hud.Show
					}

				case uv.KeyReleaseEvent:
					switch {
					case ev.MatchString("a"), ev.MatchString("left"), ev.MatchString("d"), ev.MatchString("right"):
						controls.Turn.Target = 0
					case ev.MatchString("w"), ev.MatchString("up"), ev.MatchString("s"), ev.MatchString("down"):
						controls.Move.Target = 0
					}
				}
			default:
				break drain
			}
		}

		now := time.Now()
		dt := min(now.Sub(lastFrame).Seconds(), 0.1)
		lastFrame = now

		controls.Step(cam, dt)
		scene.Update(dt)

		cam.Apply(r)
		scene.Draw(r)
		r.SwapBuffers()

		// HUD overlay (always update FPS, render clears lines when HUD off)
		hud.UpdateFPS()
		hud.Render(width, height, r.Stats)

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
