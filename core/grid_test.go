package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDimsValidate(t *testing.T) {
	tests := []struct {
		name    string
		dims    Dims
		wantErr bool
	}{
		{"cube", Dims{4, 4, 4}, false},
		{"single cell", Dims{1, 1, 1}, false},
		{"zero width", Dims{0, 4, 4}, true},
		{"negative height", Dims{4, -1, 4}, true},
		{"zero depth", Dims{4, 4, 0}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.dims.Validate()
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidDims)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestDimsIndexRowMajor(t *testing.T) {
	d := Dims{W: 3, H: 4, D: 5}

	assert.Equal(t, 60, d.Len())
	assert.Equal(t, 0, d.Index(0, 0, 0))
	assert.Equal(t, 1, d.Index(1, 0, 0))
	assert.Equal(t, 3, d.Index(0, 1, 0))
	assert.Equal(t, 12, d.Index(0, 0, 1))
	assert.Equal(t, 59, d.Index(2, 3, 4))
}

func TestDimsContains(t *testing.T) {
	d := Dims{W: 2, H: 3, D: 4}

	assert.True(t, d.Contains(Vec3i{0, 0, 0}))
	assert.True(t, d.Contains(Vec3i{1, 2, 3}))
	assert.False(t, d.Contains(Vec3i{-1, 0, 0}))
	assert.False(t, d.Contains(Vec3i{2, 0, 0}))
	assert.False(t, d.Contains(Vec3i{0, 3, 0}))
	assert.False(t, d.Contains(Vec3i{0, 0, 4}))
}

func TestVec3i(t *testing.T) {
	v := Vec3i{-1, 2, 0}

	assert.Equal(t, Vec3i{0, 3, 1}, v.Add(Vec3i{1, 1, 1}))
	assert.Equal(t, float32(-1), v.Vec3()[0])
	assert.Equal(t, float32(1), v.Abs()[0])
	assert.Equal(t, float32(2), v.Abs()[1])
}
