package bitinfo

import "github.com/scigolib/bitinfo/internal/utils"

// Sentinel errors re-exported from internal/utils so callers of this
// package never need to import the internal taxonomy directly.
var (
	// ErrUnsupportedType: array dtype is not IEEE f16/f32/f64, or (at the
	// Analyser layer) exceeds the 64-bit support boundary.
	ErrUnsupportedType = utils.ErrUnsupportedType

	// ErrInconsistentAnalysis: an analysis record lacks a required key or
	// names an unknown dtype.
	ErrInconsistentAnalysis = utils.ErrInconsistentAnalysis

	// ErrConfigError: unknown quantiser method, missing input/output,
	// identical input/output paths, or analysis-file version mismatch.
	ErrConfigError = utils.ErrConfigError
)
