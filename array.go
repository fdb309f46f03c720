// Package bitinfo implements information-theoretic lossy compression of
// scientific floating-point arrays: per-bit mutual information estimation,
// keep-bits selection, and bit-mask quantisation (shave/set/groom/mask).
//
// The package never performs file I/O; callers supply arrays as MaskedArray
// values and receive analysis results as a narrow, JSON-serialisable
// AnalysisRecord.
package bitinfo

import (
	"fmt"

	"github.com/scigolib/bitinfo/internal/core"
	"github.com/scigolib/bitinfo/internal/utils"
)

// MaskedArray is an ordered N-dimensional array of one SupportedFloat kind,
// stored internally as its unsigned-view words (spec §3: UintView), plus an
// optional parallel validity map. A nil Valid means every element is valid.
type MaskedArray struct {
	kind  core.Kind
	shape []uint64
	words []uint64
	valid []bool
	order core.ByteOrder
}

// NewFloat32Array builds a MaskedArray over data, reinterpreted as its
// unsigned view (spec §3's UintView): the bit patterns are copied unchanged
// into a new word slice, with no value conversion, so later writes to data
// do not reach the array. valid may be nil, meaning every element is valid.
func NewFloat32Array(shape []uint64, data []float32, valid []bool, order core.ByteOrder) (*MaskedArray, error) {
	if err := checkShape(shape, len(data)); err != nil {
		return nil, err
	}
	return &MaskedArray{
		kind:  core.KindFloat32,
		shape: append([]uint64(nil), shape...),
		words: core.WordsFromFloat32(data),
		valid: valid,
		order: order,
	}, nil
}

// NewFloat64Array builds a MaskedArray over float64 data.
func NewFloat64Array(shape []uint64, data []float64, valid []bool, order core.ByteOrder) (*MaskedArray, error) {
	if err := checkShape(shape, len(data)); err != nil {
		return nil, err
	}
	return &MaskedArray{
		kind:  core.KindFloat64,
		shape: append([]uint64(nil), shape...),
		words: core.WordsFromFloat64(data),
		valid: valid,
		order: order,
	}, nil
}

// NewFloat16Array builds a MaskedArray over Float16 data.
func NewFloat16Array(shape []uint64, data []core.Float16, valid []bool, order core.ByteOrder) (*MaskedArray, error) {
	if err := checkShape(shape, len(data)); err != nil {
		return nil, err
	}
	return &MaskedArray{
		kind:  core.KindFloat16,
		shape: append([]uint64(nil), shape...),
		words: core.WordsFromFloat16(data),
		valid: valid,
		order: order,
	}, nil
}

// newArrayFromWords builds a MaskedArray directly from already-reinterpreted
// unsigned-view words, used internally to assemble a Compressor's output
// variable without widening through a typed float slice and back.
func newArrayFromWords(kind core.Kind, shape []uint64, words []uint64, valid []bool, order core.ByteOrder) *MaskedArray {
	return &MaskedArray{
		kind:  kind,
		shape: append([]uint64(nil), shape...),
		words: words,
		valid: valid,
		order: order,
	}
}

func checkShape(shape []uint64, n int) error {
	total, err := utils.CalculateArraySize(shape)
	if err != nil {
		return utils.WrapError("constructing array", err)
	}
	if total != uint64(n) {
		return utils.WrapError("constructing array",
			fmt.Errorf("shape product %d does not match data length %d", total, n))
	}
	return nil
}

// Kind returns the array's float type.
func (m *MaskedArray) Kind() core.Kind { return m.kind }

// Shape returns a copy of the array's dimensions.
func (m *MaskedArray) Shape() []uint64 {
	return append([]uint64(nil), m.shape...)
}

// ByteOrder returns the array's declared storage byte order.
func (m *MaskedArray) ByteOrder() core.ByteOrder { return m.order }

// Words returns the array's unsigned-view storage (spec §3: UintView). The
// returned slice aliases the array's internal storage; callers must not
// mutate it.
func (m *MaskedArray) Words() []uint64 { return m.words }

// Valid returns the validity map, or nil if every element is valid.
func (m *MaskedArray) Valid() []bool { return m.valid }

// Count returns the number of valid elements (spec §3: MaskedArray.count()).
func (m *MaskedArray) Count() uint64 {
	if m.valid == nil {
		return uint64(len(m.words))
	}
	var n uint64
	for _, ok := range m.valid {
		if ok {
			n++
		}
	}
	return n
}

// IsValidAt reports whether the element at flat index i is valid.
func (m *MaskedArray) IsValidAt(i int) bool {
	if m.valid == nil {
		return true
	}
	return m.valid[i]
}

// Float32 widens the array's words back to float32 values.
func (m *MaskedArray) Float32() []float32 { return core.Float32FromWords(m.words) }

// Float64 widens the array's words back to float64 values.
func (m *MaskedArray) Float64() []float64 { return core.Float64FromWords(m.words) }

// Float16 widens the array's words back to Float16 values.
func (m *MaskedArray) Float16() []core.Float16 { return core.Float16FromWords(m.words) }

// strides returns the row-major stride (element count to skip to advance
// one step in that dimension) for each axis of shape.
func strides(shape []uint64) []uint64 {
	s := make([]uint64, len(shape))
	acc := uint64(1)
	for i := len(shape) - 1; i >= 0; i-- {
		s[i] = acc
		acc *= shape[i]
	}
	return s
}

// SliceAxis returns a new MaskedArray restricted to [lo, hi) along axis,
// preserving all other dimensions at full extent. This implements the
// per-axis indexing rule of spec §4.8 (time axis uses [time_start,
// time_end), a level-like axis uses [level, level+1), all others are full
// extent).
func (m *MaskedArray) SliceAxis(axis int, lo, hi uint64) (*MaskedArray, error) {
	if axis < 0 || axis >= len(m.shape) {
		return nil, utils.WrapError("slicing array", fmt.Errorf("axis %d out of range for %d dimensions", axis, len(m.shape)))
	}
	if err := utils.ValidateSliceBounds(lo, hi, m.shape[axis]); err != nil {
		return nil, utils.WrapError("slicing array", err)
	}

	oldStrides := strides(m.shape)
	newShape := append([]uint64(nil), m.shape...)
	newShape[axis] = hi - lo

	total, err := utils.CalculateArraySize(newShape)
	if err != nil {
		return nil, utils.WrapError("slicing array", err)
	}

	newWords := make([]uint64, 0, total)
	var newValid []bool
	if m.valid != nil {
		newValid = make([]bool, 0, total)
	}

	n := len(m.words)
	axisStride := oldStrides[axis]
	axisSize := m.shape[axis]

	for i := 0; i < n; i++ {
		coord := (uint64(i) / axisStride) % axisSize
		if coord < lo || coord >= hi {
			continue
		}
		newWords = append(newWords, m.words[i])
		if newValid != nil {
			newValid = append(newValid, m.valid[i])
		}
	}

	return &MaskedArray{
		kind:  m.kind,
		shape: newShape,
		words: newWords,
		valid: newValid,
		order: m.order,
	}, nil
}

// AxisIndices returns the flat storage indices whose coordinate along axis
// falls in [lo, hi), in the same order SliceAxis uses to build its output.
// The Compressor uses this to write a chunk's quantised words back into the
// correct positions of a full-sized output buffer.
func (m *MaskedArray) AxisIndices(axis int, lo, hi uint64) ([]int, error) {
	if axis < 0 || axis >= len(m.shape) {
		return nil, utils.WrapError("indexing array", fmt.Errorf("axis %d out of range for %d dimensions", axis, len(m.shape)))
	}
	if err := utils.ValidateSliceBounds(lo, hi, m.shape[axis]); err != nil {
		return nil, utils.WrapError("indexing array", err)
	}

	s := strides(m.shape)
	axisStride := s[axis]
	axisSize := m.shape[axis]

	indices := make([]int, 0, len(m.words))
	for i := 0; i < len(m.words); i++ {
		coord := (uint64(i) / axisStride) % axisSize
		if coord < lo || coord >= hi {
			continue
		}
		indices = append(indices, i)
	}
	return indices, nil
}

// AdjacentPairs returns, for the given axis, the two parallel element
// sequences A = X[...,0:-1,...] and B = X[...,1:,...] needed by
// bitinformation (spec §4.5): for every multi-index whose axis-coordinate
// is not the last, A holds that element and B holds its neighbour one step
// further along axis.
func (m *MaskedArray) AdjacentPairs(axis int) (a, b []uint64, validA, validB []bool, err error) {
	if axis < 0 || axis >= len(m.shape) {
		return nil, nil, nil, nil, utils.WrapError("pairing array",
			fmt.Errorf("axis %d out of range for %d dimensions", axis, len(m.shape)))
	}
	if m.shape[axis] < 2 {
		return nil, nil, nil, nil, nil
	}

	s := strides(m.shape)
	axisStride := s[axis]
	axisSize := m.shape[axis]
	n := len(m.words)

	capacity := n - int(n/int(axisSize))
	if capacity < 0 {
		capacity = 0
	}
	a = make([]uint64, 0, capacity)
	b = make([]uint64, 0, capacity)
	var va, vb []bool
	if m.valid != nil {
		va = make([]bool, 0, capacity)
		vb = make([]bool, 0, capacity)
	}

	for i := 0; i < n; i++ {
		coord := (uint64(i) / axisStride) % axisSize
		if coord >= axisSize-1 {
			continue
		}
		j := i + int(axisStride)
		a = append(a, m.words[i])
		b = append(b, m.words[j])
		if va != nil {
			va = append(va, m.valid[i])
			vb = append(vb, m.valid[j])
		}
	}

	return a, b, va, vb, nil
}
