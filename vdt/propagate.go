package vdt

import (
	"sdfworld/core"
)

// Neighbour offsets pulled from during propagation.
var (
	left  = core.Vec3i{-1, 0, 0}
	right = core.Vec3i{1, 0, 0}
	down  = core.Vec3i{0, -1, 0}
	up    = core.Vec3i{0, 1, 0}
	back  = core.Vec3i{0, 0, -1}
	front = core.Vec3i{0, 0, 1}
)

// Propagate spreads the seeded boundary vectors over the whole field with a
// forward and a backward raster pass. Each update reads neighbours that were
// already visited earlier in the same pass, so the scan order is part of the
// result and the passes run on a single goroutine.
func Propagate(f *core.VectorField) {
	Forward(f)
	Backward(f)
}

// Forward runs the ascending pass: slices front to back, and within each
// slice rows bottom to top followed by a top to bottom sweep.
func Forward(f *core.VectorField) {
	for z := 0; z < f.D; z++ {
		for y := 0; y < f.H; y++ {
			for x := 0; x < f.W; x++ {
				p := core.Vec3i{x, y, z}
				core.MinVecBounded(f, p, left)
				core.MinVecBounded(f, p, down)
				core.MinVecBounded(f, p, back)
			}
			for x := f.W - 1; x >= 0; x-- {
				core.MinVecBounded(f, core.Vec3i{x, y, z}, right)
			}
		}
		for y := f.H - 1; y >= 0; y-- {
			for x := f.W - 1; x >= 0; x-- {
				core.MinVecBounded(f, core.Vec3i{x, y, z}, up)
			}
		}
	}
}

// Backward mirrors Forward with every direction reversed.
func Backward(f *core.VectorField) {
	for z := f.D - 1; z >= 0; z-- {
		for y := f.H - 1; y >= 0; y-- {
			for x := f.W - 1; x >= 0; x-- {
				p := core.Vec3i{x, y, z}
				core.MinVecBounded(f, p, right)
				core.MinVecBounded(f, p, up)
				core.MinVecBounded(f, p, front)
			}
			for x := 0; x < f.W; x++ {
				core.MinVecBounded(f, core.Vec3i{x, y, z}, left)
			}
		}
		for y := 0; y < f.H; y++ {
			for x := 0; x < f.W; x++ {
				core.MinVecBounded(f, core.Vec3i{x, y, z}, down)
			}
		}
	}
}
