package bitinfo

import (
	"context"
	"fmt"

	"github.com/scigolib/bitinfo/internal/core"
	"github.com/scigolib/bitinfo/internal/utils"
)

// AnalyseOptions configures AnalyseVariable (spec §4.8).
type AnalyseOptions struct {
	// TimeAxis, if >= 0, is the dimension sliced to [TimeStart, TimeEnd).
	TimeAxis  int
	TimeStart uint64
	TimeEnd   uint64

	// LevelAxis, if >= 0, is the dimension sliced to [Level, Level+1).
	LevelAxis int
	Level     uint64

	// Axis is the dimension bitinformation treats as "adjacent" when
	// forming the A/B pair slices.
	Axis int

	// CI is the confidence fraction retained at the KeepBits stage; it is
	// not consumed here but is carried for symmetry with CompressOptions
	// and recorded by callers that embed it in the JSON carrier.
	CI float64

	// Workers bounds BitPairCount's bit-position fan-out; 0 means
	// sequential, the mandated default (spec §5).
	Workers core.Workers

	// Debug requests verbose diagnostics from the caller's logging layer;
	// the core itself never logs (spec's ambient-stack carve-out).
	Debug bool
}

// AnalyseVariable runs the full bitinformation pipeline over arr restricted
// to the slice described by opts, producing an AnalysisRecord the
// Compressor can later consume without re-reading the source data
// (spec §4.8).
//
// 64-bit inputs are rejected at this layer even though the quantisers and
// BitPairCount fully support them (spec §9's open question, resolved in
// SPEC_FULL.md: the restriction is a deliberate Analyser-level policy, not a
// counting-engine limitation).
func AnalyseVariable(ctx context.Context, arr *MaskedArray, opts AnalyseOptions) (*AnalysisRecord, error) {
	if arr.Kind() == core.KindFloat64 {
		return nil, utils.WrapError("analysing variable", utils.ErrUnsupportedType)
	}

	d, err := core.Describe(arr.Kind())
	if err != nil {
		return nil, utils.WrapError("analysing variable", err)
	}

	sliced := arr
	var timeStartOut, timeEndOut, levelOut *uint64

	if opts.TimeAxis >= 0 {
		sliced, err = sliced.SliceAxis(opts.TimeAxis, opts.TimeStart, opts.TimeEnd)
		if err != nil {
			return nil, utils.WrapError("analysing variable: slicing time axis", err)
		}
		ts, te := opts.TimeStart, opts.TimeEnd
		timeStartOut, timeEndOut = &ts, &te
	}

	if opts.LevelAxis >= 0 {
		sliced, err = sliced.SliceAxis(opts.LevelAxis, opts.Level, opts.Level+1)
		if err != nil {
			return nil, utils.WrapError("analysing variable: slicing level axis", err)
		}
		lvl := opts.Level
		levelOut = &lvl
	}

	if opts.Axis < 0 || opts.Axis >= len(sliced.Shape()) {
		return nil, utils.WrapError("analysing variable",
			fmt.Errorf("%w: axis %d out of range", utils.ErrConfigError, opts.Axis))
	}

	a, b, validA, validB, err := sliced.AdjacentPairs(opts.Axis)
	if err != nil {
		return nil, utils.WrapError("analysing variable", err)
	}

	bi, err := core.BitInformation(ctx, a, b, validA, validB, sliced.Kind(), true, 2, opts.Workers)
	if err != nil {
		return nil, utils.WrapError("analysing variable", err)
	}

	order := byteOrderTag(sliced.ByteOrder().Resolve())

	be := core.BitEntropy(validWords(sliced.Words(), sliced.Valid()), 2)

	rec := &AnalysisRecord{
		Type:       typeNameFromKind(sliced.Kind()),
		ItemSize:   d.Width / 8,
		ByteOrder:  order,
		SignBit:    d.SignBitIndex(),
		ManBit:     [2]int{d.Mantissa.Lo, d.Mantissa.Hi},
		ExpBit:     [2]int{d.Exponent.Lo, d.Exponent.Hi},
		Elements:   sliced.Count(),
		BitInfo:    bi,
		TimeStart:  timeStartOut,
		TimeEnd:    timeEndOut,
		Level:      levelOut,
		Axis:       opts.Axis,
		BitEntropy: &be,
	}

	return rec, nil
}

// validWords returns the subset of words whose corresponding valid entry is
// true (or all of words, if valid is empty, meaning "no mask applied").
func validWords(words []uint64, valid []bool) []uint64 {
	if len(valid) == 0 {
		return words
	}
	out := make([]uint64, 0, len(words))
	for i, w := range words {
		if valid[i] {
			out = append(out, w)
		}
	}
	return out
}
