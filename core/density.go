package core

import (
	"github.com/go-gl/mathgl/mgl32"

	"sdfworld/noise"
)

// Density classifies points of a volume as solid or empty.
// Implementations must be safe for concurrent use.
type Density interface {
	Solid(p mgl32.Vec3, dims Dims) bool
}

// DensityFunc adapts a plain function to Density.
type DensityFunc func(p mgl32.Vec3, dims Dims) bool

// Solid calls fn(p, dims).
func (fn DensityFunc) Solid(p mgl32.Vec3, dims Dims) bool {
	return fn(p, dims)
}

// SolidAt evaluates d at an integer voxel coordinate.
func SolidAt(d Density, p Vec3i, dims Dims) bool {
	return d.Solid(p.Vec3(), dims)
}

// Octave is one noise layer of the terrain: the sample coordinate on each
// axis is Frequency * coord / axisLength.
type Octave struct {
	Frequency float32
	Amplitude float32
}

// DefaultOctaves are the terrain layers, finest first.
var DefaultOctaves = []Octave{
	{128, 2.5},
	{64, 2.5},
	{32, 5},
	{6, 70},
	{4, 100},
	{2, 100},
	{1, 100},
}

// DefaultGroundLevel is the height at which the density crosses zero when
// the noise contributes nothing.
const DefaultGroundLevel = 80

// Terrain is the noise-driven density: y - GroundLevel plus the weighted
// octaves. Points with a negative value are solid.
type Terrain struct {
	Noise       *noise.Perlin
	GroundLevel float32
	Octaves     []Octave

	// ClampSamples clamps each coordinate to [0, dim-1] before sampling.
	// Off by default: points are sampled where they are.
	ClampSamples bool
}

// NewTerrain returns the default terrain driven by gen.
func NewTerrain(gen *noise.Perlin) *Terrain {
	return &Terrain{
		Noise:       gen,
		GroundLevel: DefaultGroundLevel,
		Octaves:     DefaultOctaves,
	}
}

// Value returns the raw density at p.
func (t *Terrain) Value(p mgl32.Vec3, dims Dims) float32 {
	x, y, z := p[0], p[1], p[2]
	if t.ClampSamples {
		x = mgl32.Clamp(x, 0, float32(dims.W-1))
		y = mgl32.Clamp(y, 0, float32(dims.H-1))
		z = mgl32.Clamp(z, 0, float32(dims.D-1))
	}

	w, h, d := float32(dims.W), float32(dims.H), float32(dims.D)
	density := y - t.GroundLevel
	for _, o := range t.Octaves {
		density += t.Noise.Sample(o.Frequency*x/w, o.Frequency*y/h, o.Frequency*z/d) * o.Amplitude
	}
	return density
}

// Solid reports whether the density at p is negative.
func (t *Terrain) Solid(p mgl32.Vec3, dims Dims) bool {
	return t.Value(p, dims) < 0
}
