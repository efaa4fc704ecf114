package vdt

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"sdfworld/core"
)

// SeedOffsets are the directions probed for boundaries, in sweep order.
// Together with their opposites they cover the three axes and the diagonals
// of the xy and yz planes.
var SeedOffsets = []core.Vec3i{
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
	{1, 1, 0},
	{-1, 1, 0},
	{0, 1, 1},
	{0, -1, 1},
}

// Seed writes the first boundary estimates into f. For every offset it
// visits each voxel whose neighbour along the offset is inside the volume;
// where the density changes sign between them, both cells receive the
// offset to the located border.
//
// Slices are processed by up to workers goroutines (GOMAXPROCS when
// workers < 1). An offset with a z component writes into the next slice
// too, so such sweeps run even slices first and odd slices second; no cell
// is ever written by two goroutines and the result does not depend on the
// worker count.
func Seed(f *core.VectorField, density core.Density, workers int) {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	for i, delta := range SeedOffsets {
		sweep(f, density, delta, workers)
		core.Logger().Debug("seed sweep done", "sweep", i+1, "total", len(SeedOffsets), "delta", delta)
	}
}

// sweep runs one directional pass.
func sweep(f *core.VectorField, density core.Density, delta core.Vec3i, workers int) {
	lo, hi := sweepRange(f.Dims, delta)

	stride := 1
	if delta[2] != 0 {
		stride = 2
	}

	for phase := 0; phase < stride; phase++ {
		var g errgroup.Group
		g.SetLimit(workers)
		for z := lo[2] + phase; z < hi[2]; z += stride {
			z := z
			g.Go(func() error {
				sweepSlice(f, density, delta, z, lo, hi)
				return nil
			})
		}
		_ = g.Wait()
	}
}

// sweepSlice seeds the cells of slice z against their neighbours at +delta.
func sweepSlice(f *core.VectorField, density core.Density, delta core.Vec3i, z int, lo, hi core.Vec3i) {
	d := delta.Vec3()
	for y := lo[1]; y < hi[1]; y++ {
		for x := lo[0]; x < hi[0]; x++ {
			p := core.Vec3i{x, y, z}
			t, ok := core.FindBorder(density, p, delta, f.Dims)
			if !ok {
				continue
			}
			core.MinVec(f.Cell(p), d.Mul(t))
			core.MinVec(f.Cell(p.Add(delta)), d.Mul(1-t))
		}
	}
}

// sweepRange returns the half-open box of origins whose +delta neighbour
// stays inside dims.
func sweepRange(dims core.Dims, delta core.Vec3i) (lo, hi core.Vec3i) {
	size := core.Vec3i{dims.W, dims.H, dims.D}
	for i := range delta {
		hi[i] = size[i]
		if delta[i] < 0 {
			lo[i] = -delta[i]
		} else {
			hi[i] -= delta[i]
		}
	}
	return lo, hi
}
