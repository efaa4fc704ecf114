package vdt

import (
	"runtime"

	"github.com/chewxy/math32"
	"golang.org/x/sync/errgroup"

	"sdfworld/core"
)

// Convert turns the propagated vectors into signed distances. Component i of
// each vector is divided by the length of axis i, the length of the result is
// the magnitude, and the sign is negative wherever density is solid at the
// voxel. Slices are converted in parallel by up to workers goroutines.
func Convert(f *core.VectorField, density core.Density, workers int) (*core.DistanceField, error) {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	out := make([]float32, f.Len())
	size := f.Size()
	sliceLen := f.W * f.H

	var g errgroup.Group
	g.SetLimit(workers)
	for z := 0; z < f.D; z++ {
		z := z
		g.Go(func() error {
			base := z * sliceLen
			for y := 0; y < f.H; y++ {
				for x := 0; x < f.W; x++ {
					i := base + y*f.W + x
					v := f.Data[i]
					s0, s1, s2 := v[0]/size[0], v[1]/size[1], v[2]/size[2]
					dist := math32.Sqrt(s0*s0 + s1*s1 + s2*s2)
					if core.SolidAt(density, core.Vec3i{x, y, z}, f.Dims) {
						dist = -dist
					}
					out[i] = dist
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	return core.NewDistanceField(f.Dims, out)
}
