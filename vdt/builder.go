package vdt

import (
	"fmt"
	"time"

	"sdfworld/core"
	"sdfworld/noise"
)

// DefaultSeed seeds the terrain noise used by BuildWorld.
const DefaultSeed = 42

// Builder runs the full pipeline: seed, propagate, convert.
type Builder struct {
	// Density decides which voxels are solid.
	Density core.Density

	// Workers bounds the goroutines used for seeding and conversion.
	// Zero means GOMAXPROCS.
	Workers int
}

// NewBuilder returns a builder for the given density.
func NewBuilder(density core.Density) *Builder {
	return &Builder{Density: density}
}

// Build computes the signed distance field of a w x h x d volume. It blocks
// until the field is complete. The intermediate vector field is released
// before Build returns.
func (b *Builder) Build(dims core.Dims) (*core.DistanceField, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}
	if b.Density == nil {
		return nil, fmt.Errorf("build %s: no density", dims)
	}

	log := core.Logger()
	log.Info("building distance field", "dims", dims.String(), "cells", dims.Len())
	total := time.Now()

	vf := core.NewVectorField(dims)

	stage(vf, "seed", func() { Seed(vf, b.Density, b.Workers) })
	stage(vf, "forward", func() { Forward(vf) })
	stage(vf, "backward", func() { Backward(vf) })

	var (
		field *core.DistanceField
		err   error
	)
	stage(vf, "convert", func() { field, err = Convert(vf, b.Density, b.Workers) })
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", dims, err)
	}

	s := field.Stats()
	log.Info("distance field ready",
		"elapsed", time.Since(total),
		"min", s.Min,
		"max", s.Max,
		"solid", s.SolidFraction())

	return field, nil
}

// stage runs fn and logs how long it took.
func stage(vf *core.VectorField, name string, fn func()) {
	start := time.Now()
	fn()
	core.Logger().Info("stage done", "stage", name, "dims", vf.Dims.String(), "elapsed", time.Since(start))
}

// NewDefaultTerrain returns the terrain density for seed with the default
// noise period.
func NewDefaultTerrain(seed uint32) *core.Terrain {
	return core.NewTerrain(noise.NewPerlin(seed, noise.DefaultPeriod))
}

// BuildWorld builds the default terrain's distance field for a
// width x height x depth volume.
func BuildWorld(width, height, depth int) (*core.DistanceField, error) {
	return NewBuilder(NewDefaultTerrain(DefaultSeed)).Build(core.Dims{W: width, H: height, D: depth})
}
