package vdt

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sdfworld/core"
	"sdfworld/noise"
)

// flatGround is solid below y = 2.
var flatGround = core.DensityFunc(func(p mgl32.Vec3, _ core.Dims) bool {
	return p.Y() < 2
})

func TestSweepRange(t *testing.T) {
	dims := core.Dims{W: 4, H: 5, D: 6}
	tests := []struct {
		delta  core.Vec3i
		lo, hi core.Vec3i
	}{
		{core.Vec3i{1, 0, 0}, core.Vec3i{0, 0, 0}, core.Vec3i{3, 5, 6}},
		{core.Vec3i{-1, 1, 0}, core.Vec3i{1, 0, 0}, core.Vec3i{4, 4, 6}},
		{core.Vec3i{0, -1, 1}, core.Vec3i{0, 1, 0}, core.Vec3i{4, 5, 5}},
	}
	for _, tc := range tests {
		lo, hi := sweepRange(dims, tc.delta)
		assert.Equal(t, tc.lo, lo, "lo for %v", tc.delta)
		assert.Equal(t, tc.hi, hi, "hi for %v", tc.delta)
	}
}

func TestSeedFlatGround(t *testing.T) {
	dims := core.Dims{W: 4, H: 4, D: 4}
	vf := core.NewVectorField(dims)

	Seed(vf, flatGround, 2)

	const eps = 1.0 / 1024
	for z := 0; z < dims.D; z++ {
		for x := 0; x < dims.W; x++ {
			below := vf.At(x, 1, z)
			assert.InDelta(t, 1, below[0], eps)
			assert.Zero(t, below[1])

			above := vf.At(x, 2, z)
			assert.InDelta(t, 0, above[0], eps)
			assert.Zero(t, above[1])

			assert.Equal(t, core.Unknown, vf.At(x, 0, z))
			assert.Equal(t, core.Unknown, vf.At(x, 3, z))
		}
	}
}

func TestPropagateLine(t *testing.T) {
	vf := core.NewVectorField(core.Dims{W: 5, H: 1, D: 1})
	*vf.Cell(core.Vec3i{2, 0, 0}) = mgl32.Vec3{0.5, 0, 0}

	Propagate(vf)

	want := []float32{2.5, 1.5, 0.5, 1.5, 2.5}
	for x, w := range want {
		assert.Equal(t, mgl32.Vec3{w, 0, 0}, vf.At(x, 0, 0), "x=%d", x)
	}
}

func TestPropagateKeepsOrdering(t *testing.T) {
	dims := core.Dims{W: 12, H: 12, D: 12}
	vf := core.NewVectorField(dims)
	terrain := &core.Terrain{
		Noise:       noise.NewPerlin(5, noise.DefaultPeriod),
		GroundLevel: 6,
		Octaves:     []core.Octave{{Frequency: 2, Amplitude: 20}, {Frequency: 4, Amplitude: 10}},
	}

	Seed(vf, terrain, 0)
	for i, v := range vf.Data {
		require.True(t, core.Ordered(v), "seeded cell %d = %v", i, v)
	}

	Propagate(vf)
	for i, v := range vf.Data {
		require.True(t, core.Ordered(v), "propagated cell %d = %v", i, v)
	}
}

func TestBuildFlatGround(t *testing.T) {
	field, err := NewBuilder(flatGround).Build(core.Dims{W: 4, H: 4, D: 4})
	require.NoError(t, err)

	for z := 0; z < 4; z++ {
		for x := 0; x < 4; x++ {
			col := make([]float32, 4)
			for y := range col {
				col[y] = field.At(x, y, z)
			}

			assert.InDelta(t, -0.3535, col[0], 1e-3)
			assert.InDelta(t, -0.25, col[1], 1e-3)
			assert.InDelta(t, 0, col[2], 1e-3)
			assert.InDelta(t, 0.25, col[3], 1e-3)

			assert.True(t, math32.Signbit(col[0]))
			assert.True(t, math32.Signbit(col[1]))
			assert.False(t, math32.Signbit(col[2]))
			assert.False(t, math32.Signbit(col[3]))

			// magnitude grows away from the surface on both sides
			assert.Greater(t, math32.Abs(col[0]), math32.Abs(col[1]))
			assert.Greater(t, math32.Abs(col[3]), math32.Abs(col[2]))
		}
	}
}

func TestBuildSignMatchesDensity(t *testing.T) {
	dims := core.Dims{W: 16, H: 16, D: 16}
	terrain := NewDefaultTerrain(DefaultSeed)
	terrain.GroundLevel = 8

	field, err := NewBuilder(terrain).Build(dims)
	require.NoError(t, err)

	for z := 0; z < dims.D; z++ {
		for y := 0; y < dims.H; y++ {
			for x := 0; x < dims.W; x++ {
				v := field.At(x, y, z)
				solid := core.SolidAt(terrain, core.Vec3i{x, y, z}, dims)
				require.Equal(t, solid, math32.Signbit(v), "voxel (%d,%d,%d)", x, y, z)
				require.False(t, math32.IsNaN(v))
				require.False(t, math32.IsInf(v, 0))
			}
		}
	}
}

func TestBuildNoUnknownLeft(t *testing.T) {
	dims := core.Dims{W: 6, H: 5, D: 7}
	field, err := NewBuilder(flatGround).Build(dims)
	require.NoError(t, err)

	// Unknown / axis length would be in the tens of thousands
	s := field.Stats()
	assert.Less(t, s.Max, float32(2))
	assert.Greater(t, s.Min, float32(-2))
}

func TestBuildDeterministic(t *testing.T) {
	dims := core.Dims{W: 12, H: 10, D: 9}
	terrain := NewDefaultTerrain(7)
	terrain.GroundLevel = 5

	serial := &Builder{Density: terrain, Workers: 1}
	parallel := &Builder{Density: terrain, Workers: 8}

	a, err := serial.Build(dims)
	require.NoError(t, err)
	b, err := parallel.Build(dims)
	require.NoError(t, err)
	c, err := parallel.Build(dims)
	require.NoError(t, err)

	assert.Equal(t, a.Values(), b.Values())
	assert.Equal(t, b.Values(), c.Values())
}

func TestBuildAnisotropicNormalisation(t *testing.T) {
	// the boundary vector of a cell just below the surface lies along y,
	// but after sorting it sits in the first component and is scaled by W
	dims := core.Dims{W: 8, H: 4, D: 2}
	field, err := NewBuilder(flatGround).Build(dims)
	require.NoError(t, err)

	assert.InDelta(t, -1.0/8, field.At(3, 1, 1), 1e-3)
}

func TestBuildRejectsInvalidDims(t *testing.T) {
	for _, dims := range [][3]int{{0, 4, 4}, {4, -1, 4}, {4, 4, 0}} {
		_, err := BuildWorld(dims[0], dims[1], dims[2])
		assert.ErrorIs(t, err, core.ErrInvalidDims)
	}

	_, err := (&Builder{}).Build(core.Dims{W: 1, H: 1, D: 1})
	assert.Error(t, err)
}

func TestBuildWorldSmall(t *testing.T) {
	field, err := BuildWorld(8, 96, 8)
	require.NoError(t, err)

	assert.Equal(t, core.Dims{W: 8, H: 96, D: 8}, field.Dims())
	assert.Len(t, field.Values(), 8*96*8)
}

func BenchmarkBuild32(b *testing.B) {
	terrain := NewDefaultTerrain(DefaultSeed)
	terrain.GroundLevel = 16
	builder := NewBuilder(terrain)
	dims := core.Dims{W: 32, H: 32, D: 32}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := builder.Build(dims); err != nil {
			b.Fatal(err)
		}
	}
}
