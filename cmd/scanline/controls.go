package main

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/scanline/pkg/render"
)

// Axis is one camera motion axis. Key input sets a target in [-1, 1] and a
// critically damped spring eases the velocity toward it.
type Axis struct {
	Velocity float64
	Target   float64
	spring   harmonica.Spring
	accel    float64 // internal spring velocity (for animating Velocity toward Target)
}

// NewAxis creates an axis with a harmonica spring for smooth starts and stops.
func NewAxis(fps int) Axis {
	return Axis{
		// Frequency 6.0 = quick response, damping 1.0 = critically damped (no overshoot)
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

// Update moves Velocity one frame toward Target and returns it.
func (a *Axis) Update() float64 {
	a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, a.Target)
	return a.Velocity
}

// Controls maps held keys to camera yaw and forward motion.
type Controls struct {
	Turn, Move Axis
	turnSpeed  float64 // radians per second at full input
	moveSpeed  float64
	fps        int
}

// NewControls creates controls for the configured speeds.
func NewControls(cfg Config) *Controls {
	return &Controls{
		Turn:      NewAxis(cfg.FPS),
		Move:      NewAxis(cfg.FPS),
		turnSpeed: cfg.TurnSpeed * math.Pi / 180,
		moveSpeed: cfg.MoveSpeed,
		fps:       cfg.FPS,
	}
}

// Reset stops all motion.
func (c *Controls) Reset() {
	c.Turn = NewAxis(c.fps)
	c.Move = NewAxis(c.fps)
}

// Step applies one frame of motion to cam. Targets decay because key
// release events are not reported by every terminal; key repeat keeps a held
// key's target up.
func (c *Controls) Step(cam *render.Camera, dt float64) {
	yaw := c.Turn.Update() * c.turnSpeed * dt
	move := c.Move.Update() * c.moveSpeed * dt
	if yaw != 0 {
		cam.Rotate(0, yaw, 0)
	}
	if move != 0 {
		cam.MoveForward(move)
	}
	c.Turn.Target *= 0.9
	c.Move.Target *= 0.9
}
