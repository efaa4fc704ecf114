package noise

import (
	"github.com/chewxy/math32"
)

// Func is a scalar 3D noise function, e.g. (*Perlin).Sample.
type Func func(x, y, z float32) float32

// Turbulence sums octaves l0 .. lmax-1 of fn. Octave i samples at frequency
// a^i and is weighted by 1/b^i; a and b are independent.
func Turbulence(x, y, z, a, b float32, l0, lmax int, fn Func) float32 {
	var sum float32
	for i := l0; i < lmax; i++ {
		f := math32.Pow(a, float32(i))
		amp := math32.Pow(b, float32(i))
		sum += fn(f*x, f*y, f*z) / amp
	}
	return sum
}
