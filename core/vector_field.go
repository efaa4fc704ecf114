package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Unknown is the initial value of every cell: far enough away that any
// boundary estimate replaces it.
var Unknown = mgl32.Vec3{999999, 999999, 999999}

// VectorField stores one offset estimate to the nearest boundary per voxel.
//
// Every stored vector keeps its components ordered by descending absolute
// value (|v[0]| >= |v[1]| >= |v[2]|); MinVec and MinVecBounded restore the
// order after each write.
type VectorField struct {
	Dims
	Data []mgl32.Vec3
}

// NewVectorField allocates a field with every cell set to Unknown.
func NewVectorField(dims Dims) *VectorField {
	f := &VectorField{
		Dims: dims,
		Data: make([]mgl32.Vec3, dims.Len()),
	}
	for i := range f.Data {
		f.Data[i] = Unknown
	}
	return f
}

// At returns the vector stored at (x, y, z).
func (f *VectorField) At(x, y, z int) mgl32.Vec3 {
	return f.Data[f.Index(x, y, z)]
}

// Cell returns a pointer to the vector stored at p.
func (f *VectorField) Cell(p Vec3i) *mgl32.Vec3 {
	return &f.Data[f.Index(p[0], p[1], p[2])]
}

// MinVec replaces dest with cand when cand is strictly shorter, then
// reorders dest by descending magnitude. It reports whether dest changed.
func MinVec(dest *mgl32.Vec3, cand mgl32.Vec3) bool {
	if cand.Dot(cand) >= dest.Dot(*dest) {
		return false
	}
	*dest = SortByMagnitude(cand)
	return true
}

// MinVecBounded relaxes the cell at p against its neighbour at p+delta.
// The neighbour's vector plus |delta| (one more step along that axis) is the
// candidate; the shorter of candidate and current value is stored, sorted by
// descending magnitude. A neighbour outside the volume leaves the cell as is.
func MinVecBounded(f *VectorField, p, delta Vec3i) {
	n := p.Add(delta)
	if !f.Contains(n) {
		return
	}

	cur := f.Cell(p)
	cand := f.Data[f.Index(n[0], n[1], n[2])].Add(delta.Abs())

	v := *cur
	if cand.Dot(cand) <= v.Dot(v) {
		v = cand
	}
	*cur = SortByMagnitude(v)
}

// SortByMagnitude orders the components of v by descending absolute value.
func SortByMagnitude(v mgl32.Vec3) mgl32.Vec3 {
	if mgl32.Abs(v[1]) > mgl32.Abs(v[0]) {
		v[0], v[1] = v[1], v[0]
	}
	if mgl32.Abs(v[2]) > mgl32.Abs(v[1]) {
		v[1], v[2] = v[2], v[1]
	}
	if mgl32.Abs(v[1]) > mgl32.Abs(v[0]) {
		v[0], v[1] = v[1], v[0]
	}
	return v
}

// Ordered reports whether v satisfies the descending magnitude invariant.
func Ordered(v mgl32.Vec3) bool {
	return mgl32.Abs(v[0]) >= mgl32.Abs(v[1]) && mgl32.Abs(v[1]) >= mgl32.Abs(v[2])
}
