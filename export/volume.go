// Package export writes a finished distance field as a raw texture volume
// plus a small JSON header, the tuple (width, height, depth, values) that
// texture uploaders consume.
package export

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/x448/float16"

	"sdfworld/core"
)

var (
	// ErrFormat reports an unknown texel format.
	ErrFormat = errors.New("unknown volume format")
	// ErrSize reports a volume whose payload does not match its header.
	ErrSize = errors.New("volume size mismatch")
)

// Format is the texel encoding of an exported volume.
type Format int

const (
	// R32F stores each distance as a little-endian float32.
	R32F Format = iota
	// R16F stores each distance as a little-endian IEEE half float.
	// Magnitudes above MaxHalf become infinities.
	R16F
)

// ParseFormat accepts "r32f" or "r16f" in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "r32f", "":
		return R32F, nil
	case "r16f":
		return R16F, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrFormat, s)
}

func (f Format) String() string {
	switch f {
	case R32F:
		return "r32f"
	case R16F:
		return "r16f"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// TexelSize returns the bytes per voxel.
func (f Format) TexelSize() int {
	if f == R16F {
		return 2
	}
	return 4
}

// MaxHalf is the largest finite R16F value.
const MaxHalf = 65504

// MaxTexels bounds the volume size accepted by Read.
const MaxTexels = 1 << 30

// Layout names the voxel ordering of every exported volume.
const Layout = "x-fastest"

// Header describes a raw volume file.
type Header struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Depth  int     `json:"depth"`
	Format string  `json:"format"`
	Layout string  `json:"layout"`
	Min    float32 `json:"min"`
	Max    float32 `json:"max"`
}

// Dims returns the header's volume size.
func (h Header) Dims() core.Dims {
	return core.Dims{W: h.Width, H: h.Height, D: h.Depth}
}

// NewHeader describes f encoded as format.
func NewHeader(f *core.DistanceField, format Format) Header {
	s := f.Stats()
	return Header{
		Width:  f.Width,
		Height: f.Height,
		Depth:  f.Depth,
		Format: format.String(),
		Layout: Layout,
		Min:    s.Min,
		Max:    s.Max,
	}
}

// Write encodes the field's values to w.
func Write(w io.Writer, f *core.DistanceField, format Format) error {
	bw := bufio.NewWriter(w)
	values := f.Values()

	switch format {
	case R32F:
		if err := binary.Write(bw, binary.LittleEndian, values); err != nil {
			return err
		}
	case R16F:
		halves := make([]uint16, len(values))
		clipped := 0
		for i, v := range values {
			if v > MaxHalf || v < -MaxHalf {
				clipped++
			}
			halves[i] = float16.Fromfloat32(v).Bits()
		}
		if clipped > 0 {
			core.Logger().Warn("distances outside half float range written as infinity",
				"count", clipped, "limit", MaxHalf)
		}
		if err := binary.Write(bw, binary.LittleEndian, halves); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %d", ErrFormat, int(format))
	}
	return bw.Flush()
}

// Read decodes a volume described by h from r.
func Read(r io.Reader, h Header) (*core.DistanceField, error) {
	dims := h.Dims()
	if err := dims.Validate(); err != nil {
		return nil, err
	}
	format, err := ParseFormat(h.Format)
	if err != nil {
		return nil, err
	}
	n, ok := texelCount(dims)
	if !ok {
		return nil, fmt.Errorf("%w: %s exceeds %d texels", ErrSize, dims, MaxTexels)
	}

	br := bufio.NewReader(r)
	values := make([]float32, n)

	switch format {
	case R32F:
		err = binary.Read(br, binary.LittleEndian, values)
	case R16F:
		halves := make([]uint16, len(values))
		err = binary.Read(br, binary.LittleEndian, halves)
		for i, b := range halves {
			values[i] = float16.Frombits(b).Float32()
		}
	}
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: want %d texels of %s", ErrSize, dims.Len(), format)
		}
		return nil, err
	}
	if _, err := br.ReadByte(); err != io.EOF {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: payload longer than %d texels of %s", ErrSize, n, format)
	}

	return core.NewDistanceField(dims, values)
}

// texelCount returns the number of texels in dims, or false when it
// exceeds MaxTexels.
func texelCount(dims core.Dims) (int, bool) {
	n := 1
	for _, l := range []int{dims.W, dims.H, dims.D} {
		if l > MaxTexels/n {
			return 0, false
		}
		n *= l
	}
	return n, true
}

// HeaderPath returns the sidecar header path of a volume file.
func HeaderPath(path string) string {
	return path + ".json"
}

// Save writes the volume to path and its header next to it.
func Save(path string, f *core.DistanceField, format Format) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(out, f, format); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	header, err := json.MarshalIndent(NewHeader(f, format), "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(HeaderPath(path), append(header, '\n'), 0o644); err != nil {
		return err
	}

	core.Logger().Info("exported distance field",
		"path", path,
		"format", format.String(),
		"bytes", f.Dims().Len()*format.TexelSize())
	return nil
}

// Load reads a volume written by Save.
func Load(path string) (*core.DistanceField, Header, error) {
	var h Header
	data, err := os.ReadFile(HeaderPath(path))
	if err != nil {
		return nil, h, err
	}
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, h, fmt.Errorf("error parsing %s: %w", HeaderPath(path), err)
	}
	if h.Layout != "" && h.Layout != Layout {
		return nil, h, fmt.Errorf("unsupported layout %q", h.Layout)
	}

	in, err := os.Open(path)
	if err != nil {
		return nil, h, err
	}
	defer in.Close()

	f, err := Read(in, h)
	if err != nil {
		return nil, h, fmt.Errorf("read %s: %w", path, err)
	}
	return f, h, nil
}
