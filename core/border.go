package core

import "github.com/go-gl/mathgl/mgl32"

// BisectionSteps is the fixed number of refinement steps in FindBorder,
// giving a precision of about 1/1024 of the segment length.
const BisectionSteps = 10

// FindBorder looks for a solid/empty transition on the segment from point to
// point+delta. When the endpoints disagree it bisects a fixed number of times
// and returns the fraction along delta where the transition lies.
func FindBorder(d Density, point, delta Vec3i, dims Dims) (float32, bool) {
	b0 := SolidAt(d, point, dims)
	b1 := SolidAt(d, point.Add(delta), dims)
	if b0 == b1 {
		return 0, false
	}

	step := float32(0.5)
	pos := float32(0.5)
	for i := 0; i < BisectionSteps; i++ {
		sample := Segment(point, delta, pos)
		step *= 0.5
		if d.Solid(sample, dims) == b0 {
			pos += step
		} else {
			pos -= step
		}
	}
	return pos, true
}

// Segment returns the continuous point at fraction t along delta from point.
func Segment(point, delta Vec3i, t float32) mgl32.Vec3 {
	return point.Vec3().Add(delta.Vec3().Mul(t))
}
