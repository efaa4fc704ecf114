package core

import (
	"fmt"

	"github.com/chewxy/math32"
)

// DistanceField is the finished signed distance grid. Values are negative
// inside solid material and positive outside; magnitudes are distances in a
// unit cube where each axis has been divided by its voxel count.
//
// A DistanceField is immutable once built.
type DistanceField struct {
	Width, Height, Depth int

	data []float32
}

// NewDistanceField wraps values laid out row-major with x fastest.
func NewDistanceField(dims Dims, values []float32) (*DistanceField, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}
	if len(values) != dims.Len() {
		return nil, fmt.Errorf("distance field %s needs %d values, got %d", dims, dims.Len(), len(values))
	}
	return &DistanceField{Width: dims.W, Height: dims.H, Depth: dims.D, data: values}, nil
}

// Dims returns the size of the field.
func (f *DistanceField) Dims() Dims {
	return Dims{W: f.Width, H: f.Height, D: f.Depth}
}

// At returns the signed distance at (x, y, z).
func (f *DistanceField) At(x, y, z int) float32 {
	return f.data[z*f.Width*f.Height+y*f.Width+x]
}

// Values returns the backing array, x fastest, then y, then z.
// The slice is shared with the field and must not be modified.
func (f *DistanceField) Values() []float32 {
	return f.data
}

// Axis selects the slicing direction for Slice.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// ParseAxis converts "x", "y" or "z" to an Axis.
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "X":
		return AxisX, nil
	case "y", "Y":
		return AxisY, nil
	case "z", "Z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("unknown axis %q", s)
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// Slice copies the plane perpendicular to axis at index i. It returns the
// plane's width and height (the two remaining axes in x, y, z order) and its
// values with the first remaining axis fastest.
func (f *DistanceField) Slice(axis Axis, i int) (w, h int, values []float32, err error) {
	switch axis {
	case AxisX:
		if i < 0 || i >= f.Width {
			break
		}
		w, h = f.Height, f.Depth
		values = make([]float32, 0, w*h)
		for z := 0; z < f.Depth; z++ {
			for y := 0; y < f.Height; y++ {
				values = append(values, f.At(i, y, z))
			}
		}
		return w, h, values, nil
	case AxisY:
		if i < 0 || i >= f.Height {
			break
		}
		w, h = f.Width, f.Depth
		values = make([]float32, 0, w*h)
		for z := 0; z < f.Depth; z++ {
			row := z*f.Width*f.Height + i*f.Width
			values = append(values, f.data[row:row+f.Width]...)
		}
		return w, h, values, nil
	case AxisZ:
		if i < 0 || i >= f.Depth {
			break
		}
		w, h = f.Width, f.Height
		start := i * f.Width * f.Height
		values = make([]float32, w*h)
		copy(values, f.data[start:start+w*h])
		return w, h, values, nil
	default:
		return 0, 0, nil, fmt.Errorf("unknown axis %d", axis)
	}
	return 0, 0, nil, fmt.Errorf("slice %s=%d outside %s", axis, i, f.Dims())
}

// Stats summarises a field.
type Stats struct {
	Min, Max float32
	Solid    int
	Total    int
}

// SolidFraction returns the share of cells inside solid material.
func (s Stats) SolidFraction() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Solid) / float64(s.Total)
}

// Stats scans the field once.
func (f *DistanceField) Stats() Stats {
	return SummarizeValues(f.data)
}

// SummarizeValues computes Stats over a flat value slice. Cells with the
// sign bit set count as solid.
func SummarizeValues(values []float32) Stats {
	s := Stats{Min: math32.Inf(1), Max: math32.Inf(-1), Total: len(values)}
	for _, v := range values {
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
		if math32.Signbit(v) {
			s.Solid++
		}
	}
	return s
}
