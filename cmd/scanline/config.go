package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the demo settings. It is read from a YAML file and then
// overridden by any flags given on the command line.
type Config struct {
	Width  int `yaml:"width"`  // Snapshot width in pixels
	Height int `yaml:"height"` // Snapshot height in pixels
	FPS    int `yaml:"fps"`

	FOV  float64 `yaml:"fov"` // Vertical field of view in degrees
	Near float64 `yaml:"near"`
	Far  float64 `yaml:"far"`

	Stars int    `yaml:"stars"`
	Seed  uint64 `yaml:"seed"` // Star field seed, 0 picks one from the clock
	Ship  string `yaml:"ship"` // .mesh, .gltf or .glb; empty uses the built-in ship

	TurnSpeed float64 `yaml:"turn_speed"` // Degrees per second
	MoveSpeed float64 `yaml:"move_speed"` // World units per second

	Snapshot string `yaml:"snapshot"` // Render one frame to this .png or .bmp and exit
	Log      string `yaml:"log"`      // Debug log file
}

// DefaultConfig returns the settings of the star map scene.
func DefaultConfig() Config {
	return Config{
		Width:     800,
		Height:    600,
		FPS:       60,
		FOV:       45,
		Near:      1,
		Far:       100,
		Stars:     10000,
		TurnSpeed: 90,
		MoveSpeed: 5,
	}
}

// LoadConfig reads a YAML file over the defaults. Keys missing from the file
// keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports settings the renderer cannot work with.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("size %dx%d must be positive", c.Width, c.Height))
	}
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps %d must be positive", c.FPS))
	}
	if c.FOV <= 0 || c.FOV >= 180 {
		errs = append(errs, fmt.Errorf("fov %g must be in (0, 180)", c.FOV))
	}
	if c.Near <= 0 || c.Far <= c.Near {
		errs = append(errs, fmt.Errorf("clip planes near %g far %g: need 0 < near < far", c.Near, c.Far))
	}
	if c.Stars < 0 {
		errs = append(errs, fmt.Errorf("stars %d must not be negative", c.Stars))
	}
	return errors.Join(errs...)
}

// bindFlags registers a flag for every setting, storing into c.
func bindFlags(fs *flag.FlagSet, c *Config) {
	fs.IntVar(&c.Width, "width", c.Width, "Snapshot width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "Snapshot height in pixels")
	fs.IntVar(&c.FPS, "fps", c.FPS, "Target FPS")
	fs.Float64Var(&c.FOV, "fov", c.FOV, "Vertical field of view in degrees")
	fs.Float64Var(&c.Near, "near", c.Near, "Near clip plane")
	fs.Float64Var(&c.Far, "far", c.Far, "Far clip plane")
	fs.IntVar(&c.Stars, "stars", c.Stars, "Number of stars")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "Star field seed (0 = random)")
	fs.StringVar(&c.Ship, "ship", c.Ship, "Ship model (.mesh, .gltf or .glb)")
	fs.Float64Var(&c.TurnSpeed, "turn", c.TurnSpeed, "Turn speed in degrees per second")
	fs.Float64Var(&c.MoveSpeed, "speed", c.MoveSpeed, "Move speed in units per second")
	fs.StringVar(&c.Snapshot, "snapshot", c.Snapshot, "Render one frame to a .png or .bmp file and exit")
	fs.StringVar(&c.Log, "log", c.Log, "Write debug logs to this file")
}

// applyFlags copies into dst the settings whose flags were set on fs.
func applyFlags(fs *flag.FlagSet, dst *Config, src Config) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			dst.Width = src.Width
		case "height":
			dst.Height = src.Height
		case "fps":
			dst.FPS = src.FPS
		case "fov":
			dst.FOV = src.FOV
		case "near":
			dst.Near = src.Near
		case "far":
			dst.Far = src.Far
		case "stars":
			dst.Stars = src.Stars
		case "seed":
			dst.Seed = src.Seed
		case "ship":
			dst.Ship = src.Ship
		case "turn":
			dst.TurnSpeed = src.TurnSpeed
		case "speed":
			dst.MoveSpeed = src.MoveSpeed
		case "snapshot":
			dst.Snapshot = src.Snapshot
		case "log":
			dst.Log = src.Log
		}
	})
}

// parseConfig parses args, loads the -config file if one is named, and
// applies the remaining flags on top.
func parseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	flags := DefaultConfig()
	var path string
	fs.StringVar(&path, "config", "", "YAML config file")
	bindFlags(fs, &flags)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = LoadConfig(path); err != nil {
			return Config{}, err
		}
	}
	applyFlags(fs, &cfg, flags)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
