package core

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Vec3i is an integer voxel coordinate or offset.
type Vec3i [3]int

// Add returns v + o.
func (v Vec3i) Add(o Vec3i) Vec3i {
	return Vec3i{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

// Vec3 converts v to a continuous point.
func (v Vec3i) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}

// Abs returns the componentwise absolute value as a float vector.
func (v Vec3i) Abs() mgl32.Vec3 {
	return mgl32.Vec3{mgl32.Abs(float32(v[0])), mgl32.Abs(float32(v[1])), mgl32.Abs(float32(v[2]))}
}

// Dims is the size of a voxel volume. Cells are stored row-major with x
// fastest, then y, then z.
type Dims struct {
	W, H, D int
}

// Validate reports ErrInvalidDims if any axis is not positive.
func (d Dims) Validate() error {
	if d.W <= 0 || d.H <= 0 || d.D <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidDims, d)
	}
	return nil
}

// Len returns the number of cells.
func (d Dims) Len() int {
	return d.W * d.H * d.D
}

// Index returns the linear index of (x, y, z).
func (d Dims) Index(x, y, z int) int {
	return z*d.W*d.H + y*d.W + x
}

// Contains reports whether p lies inside the volume.
func (d Dims) Contains(p Vec3i) bool {
	return p[0] >= 0 && p[0] < d.W &&
		p[1] >= 0 && p[1] < d.H &&
		p[2] >= 0 && p[2] < d.D
}

// Size returns the axis lengths as a float vector.
func (d Dims) Size() mgl32.Vec3 {
	return mgl32.Vec3{float32(d.W), float32(d.H), float32(d.D)}
}

func (d Dims) String() string {
	return fmt.Sprintf("%dx%dx%d", d.W, d.H, d.D)
}
