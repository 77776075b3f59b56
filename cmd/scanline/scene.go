package main

import (
	"bytes"
	_ "embed"
	"fmt"
	"math"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"time"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
)

//go:embed ship.mesh
var builtinShip []byte

// Scene is the star map: a point field, a planet, a sun, a ship and the
// north star, all in front of a camera that starts out facing +Z.
type Scene struct {
	Objects []render.Object

	ship     []int       // indexes into Objects
	shipFit  math3d.Mat4 // centres and scales the ship model
	shipSpin float64     // radians
}

// Star field extent on every axis.
const starRange = 100

// Largest dimension of the ship after fitting.
const shipSize = 3

// Scene object placement.
var (
	planetCentre = math3d.V3(3.5, 3.5, 30)
	sunCentre    = math3d.V3(-2.7, -2.7, 20)
	shipPosition = math3d.V3(0, -1, 8)
	cubeCentre   = math3d.V3(4, -2, 15)
)

// NewScene builds the scene. ship holds the ship batches; nil loads the
// built-in ship.
func NewScene(cfg Config, ship []*models.Batch) (*Scene, error) {
	if ship == nil {
		b, err := models.ReadMesh(bytes.NewReader(builtinShip))
		if err != nil {
			return nil, fmt.Errorf("built-in ship: %w", err)
		}
		ship = []*models.Batch{b}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))

	s := &Scene{shipFit: FitToSize(ship, shipSize)}
	s.add(math3d.Identity(), models.GeneratePoints(StarField(rng, cfg.Stars)))
	s.add(math3d.Identity(), models.GenerateCircle(planetCentre, 1, 20))
	s.add(math3d.Identity(), models.GenerateDisc(sunCentre, 2, 36, models.Yellow, models.Red))
	s.add(math3d.Identity(), models.GenerateCircle(sunCentre, 2, 36))
	s.add(math3d.Identity(), models.GenerateWireCube(cubeCentre, 1.5, models.Green))
	for _, b := range ship {
		s.ship = append(s.ship, len(s.Objects))
		s.add(math3d.Translate(shipPosition).Mul(s.shipFit), b)
	}
	for _, b := range NorthStar() {
		s.add(math3d.Identity(), b)
	}
	return s, nil
}

func (s *Scene) add(model math3d.Mat4, b *models.Batch) {
	s.Objects = append(s.Objects, render.Object{Model: model, Batch: b})
}

// StarField returns n points spread uniformly over a cube of side 2*starRange
// around the origin.
func StarField(rng *rand.Rand, n int) []math3d.Vec3 {
	stars := make([]math3d.Vec3, n)
	coord := func() float64 { return (rng.Float64()*2 - 1) * starRange }
	for i := range stars {
		stars[i] = math3d.V3(coord(), coord(), coord())
	}
	return stars
}

// NorthStar returns the four crossing lines of the star on the far plane.
func NorthStar() []*models.Batch {
	const z = 100
	return []*models.Batch{
		models.GenerateLine(math3d.V3(1, 0, z), math3d.V3(-1, 0, z)),
		models.GenerateLine(math3d.V3(0, 2, z), math3d.V3(0, -1, z)),
		models.GenerateLine(math3d.V3(0.75, 0.75, z), math3d.V3(-0.75, -0.75, z)),
		models.GenerateLine(math3d.V3(-0.75, 0.75, z), math3d.V3(0.75, -0.75, z)),
	}
}

// Update advances the ship's spin by dt seconds.
func (s *Scene) Update(dt float64) {
	s.shipSpin = math.Mod(s.shipSpin+dt*0.5, 2*math.Pi)
	model := math3d.Translate(shipPosition).Mul(math3d.RotateY(s.shipSpin)).Mul(s.shipFit)
	for _, i := range s.ship {
		s.Objects[i].Model = model
	}
}

// Draw clears the back buffer and draws every object.
func (s *Scene) Draw(r *render.Rasterizer) {
	r.ClearBuffers()
	r.ResetStats()
	for _, o := range s.Objects {
		r.DrawObject(o)
	}
}

// FitToSize returns the transform that centres the combined bounds of
// batches on the origin and scales their largest dimension to size.
func FitToSize(batches []*models.Batch, size float64) math3d.Mat4 {
	var lo, hi math3d.Vec3
	for i, b := range batches {
		blo, bhi := b.Bounds()
		if i == 0 {
			lo, hi = blo, bhi
			continue
		}
		lo, hi = lo.Min(blo), hi.Max(bhi)
	}
	center := lo.Add(hi).Scale(0.5)
	dims := hi.Sub(lo)
	maxDim := math.Max(dims.X, math.Max(dims.Y, dims.Z))
	if maxDim <= 0 {
		return math3d.Translate(center.Negate())
	}
	scale := size / maxDim
	return math3d.Scale(math3d.V3(scale, scale, scale)).Mul(math3d.Translate(center.Negate()))
}

// LoadShip loads ship batches from a text mesh or a glTF file.
func LoadShip(path string) ([]*models.Batch, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mesh":
		b, err := models.LoadMeshFile(path)
		if err != nil {
			return nil, err
		}
		return []*models.Batch{b}, nil
	case ".gltf", ".glb":
		return models.LoadGLTF(path)
	default:
		return nil, fmt.Errorf("unsupported ship format: %s (use .mesh, .gltf or .glb)", ext)
	}
}
