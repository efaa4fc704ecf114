package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"sdfworld/noise"
)

func TestTerrainValueMatchesOctaveSum(t *testing.T) {
	gen := noise.NewPerlin(42, noise.DefaultPeriod)
	terrain := NewTerrain(gen)
	dims := Dims{64, 128, 32}
	p := mgl32.Vec3{10, 70, 5}

	want := p[1] - 80
	freqs := []float32{128, 64, 32, 6, 4, 2, 1}
	amps := []float32{2.5, 2.5, 5, 70, 100, 100, 100}
	for i, f := range freqs {
		want += gen.Sample(f*p[0]/64, f*p[1]/128, f*p[2]/32) * amps[i]
	}

	assert.Equal(t, want, terrain.Value(p, dims))
	assert.Equal(t, want < 0, terrain.Solid(p, dims))
}

func TestTerrainFarFromGround(t *testing.T) {
	terrain := NewTerrain(noise.NewPerlin(42, noise.DefaultPeriod))
	dims := Dims{256, 256, 256}

	// the octave amplitudes sum to 380 and |noise| <= 2
	assert.False(t, terrain.Solid(mgl32.Vec3{12, 1000, 40}, dims))
	assert.True(t, terrain.Solid(mgl32.Vec3{12, -1000, 40}, dims))
}

func TestTerrainWithoutOctavesIsPlane(t *testing.T) {
	terrain := &Terrain{Noise: noise.NewPerlin(1, 16), GroundLevel: 2}
	dims := Dims{4, 4, 4}

	for y := 0; y < 4; y++ {
		assert.Equal(t, y < 2, SolidAt(terrain, Vec3i{1, y, 3}, dims), "y=%d", y)
	}
	assert.True(t, terrain.Solid(mgl32.Vec3{0, 1.999, 0}, dims))
	assert.False(t, terrain.Solid(mgl32.Vec3{0, 2, 0}, dims))
}

func TestTerrainClampSamples(t *testing.T) {
	gen := noise.NewPerlin(42, noise.DefaultPeriod)
	dims := Dims{16, 16, 16}
	raw := NewTerrain(gen)
	clamped := NewTerrain(gen)
	clamped.ClampSamples = true

	inside := mgl32.Vec3{3.5, 7.25, 9}
	assert.Equal(t, raw.Value(inside, dims), clamped.Value(inside, dims))

	outside := mgl32.Vec3{-4, 30, 20}
	edge := mgl32.Vec3{0, 15, 15}
	assert.Equal(t, raw.Value(edge, dims), clamped.Value(outside, dims))
}

func TestDensityFunc(t *testing.T) {
	var calls int
	d := DensityFunc(func(p mgl32.Vec3, dims Dims) bool {
		calls++
		return p.X() < float32(dims.W)/2
	})

	assert.True(t, SolidAt(d, Vec3i{1, 0, 0}, Dims{4, 1, 1}))
	assert.False(t, SolidAt(d, Vec3i{2, 0, 0}, Dims{4, 1, 1}))
	assert.Equal(t, 2, calls)
}
