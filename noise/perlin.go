package noise

import (
	"github.com/chewxy/math32"
)

// LCG constants used to build the permutation table.
const (
	lcgMultiplier = 1664525
	lcgIncrement  = 1013904223
)

// DefaultPeriod is the lattice period used by the terrain density.
const DefaultPeriod = 256

// Perlin is a periodic 3D gradient noise generator.
//
// The permutation table is derived from the seed with a fixed linear
// congruential recurrence, never from a platform random source, so two
// generators with the same seed and period produce identical output.
// A Perlin is read-only after construction and safe for concurrent use.
type Perlin struct {
	period int
	perm   []uint32
}

// NewPerlin creates a generator with the given seed and lattice period.
// A period below 1 falls back to DefaultPeriod.
func NewPerlin(seed uint32, period int) *Perlin {
	if period < 1 {
		period = DefaultPeriod
	}
	p := &Perlin{
		period: period,
		perm:   make([]uint32, 2*period),
	}
	state := seed
	for i := range p.perm {
		state = lcgMultiplier*state + lcgIncrement
		p.perm[i] = (state >> 16) % uint32(period)
	}
	return p
}

// Period returns the lattice period on each axis.
func (p *Perlin) Period() int {
	return p.period
}

// Permutation returns a copy of the hash table.
func (p *Perlin) Permutation() []uint32 {
	out := make([]uint32, len(p.perm))
	copy(out, p.perm)
	return out
}

// Sample evaluates the noise at (x, y, z).
func (p *Perlin) Sample(x, y, z float32) float32 {
	fx, fy, fz := math32.Floor(x), math32.Floor(y), math32.Floor(z)

	// unit cube containing the point
	X := p.wrap(int(fx))
	Y := p.wrap(int(fy))
	Z := p.wrap(int(fz))

	// relative position inside the cube
	x -= fx
	y -= fy
	z -= fz

	// hash the 8 corners
	A := int(p.perm[X]) + Y
	AA := int(p.perm[A]) + Z
	AB := int(p.perm[A+1]) + Z
	B := int(p.perm[X+1]) + Y
	BA := int(p.perm[B]) + Z
	BB := int(p.perm[B+1]) + Z

	u := smootherstep(x)
	v := smootherstep(y)
	w := smootherstep(z)

	a := mix(u, grad(p.perm[AA], x, y, z), grad(p.perm[BA], x-1, y, z))
	b := mix(u, grad(p.perm[AB], x, y-1, z), grad(p.perm[BB], x-1, y-1, z))
	ab := mix(v, a, b)

	c := mix(u, grad(p.perm[AA+1], x, y, z-1), grad(p.perm[BA+1], x-1, y, z-1))
	d := mix(u, grad(p.perm[AB+1], x, y-1, z-1), grad(p.perm[BB+1], x-1, y-1, z-1))
	cd := mix(v, c, d)

	return mix(w, ab, cd)
}

// wrap maps a lattice coordinate into [0, period).
func (p *Perlin) wrap(i int) int {
	i %= p.period
	if i < 0 {
		i += p.period
	}
	return i
}

// grad returns the dot product of the gradient selected by hash with (x, y, z).
func grad(hash uint32, x, y, z float32) float32 {
	h := hash & 0xF

	u := y
	if h < 8 {
		u = x
	}

	var v float32
	switch {
	case h < 4:
		v = y
	case h == 12 || h == 14:
		v = x
	default:
		v = z
	}

	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

func smootherstep(t float32) float32 {
	return t * t * t * (t*(t*6-15) + 10)
}

func mix(t, a, b float32) float32 {
	return a + t*(b-a)
}
