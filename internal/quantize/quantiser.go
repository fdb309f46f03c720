// Package quantize implements the four bit-mask quantisation transforms
// (shave, set, groom, mask) and the chunked streaming and integrity-check
// machinery the Compressor uses to apply them to whole variables.
package quantize

import (
	"fmt"

	"github.com/scigolib/bitinfo/internal/core"
	"github.com/scigolib/bitinfo/internal/utils"
)

// Method names a quantiser, matching the tunable strings of spec §6.
type Method string

const (
	MethodShave Method = "bitshave"
	MethodSet   Method = "bitset"
	MethodGroom Method = "bitgroom"
	MethodMask  Method = "bitmask"
)

// Quantiser is the closed, fixed set of bit-mask transforms a variable can
// be configured with. An instance is immutable after construction and may
// be applied to any number of equally-typed chunks (spec §3: "Lifecycle").
type Quantiser interface {
	// Method returns the configured method tag.
	Method() Method
	// NSB returns the number of significant mantissa bits retained.
	NSB() int
	// KeepMask returns the primary mask applied to the unsigned view, for
	// observability (compression-history annotation, spec §4.9).
	KeepMask() uint64
	// Process applies the quantiser to words (an unsigned-view slice) and
	// returns an equally-shaped output slice. words is borrowed, not
	// mutated.
	Process(words []uint64) []uint64
}

// New constructs a Quantiser of the given method for dtype kind, given the
// already-selected NSB and (for bitmask only) the bit-information vector,
// valid count and confidence used to judge individual mantissa bits.
func New(method Method, kind core.Kind, nsb int, bi []float64, n uint64, ci float64) (Quantiser, error) {
	d, err := core.Describe(kind)
	if err != nil {
		return nil, utils.WrapError("constructing quantiser", err)
	}

	switch method {
	case MethodShave:
		return newShave(d, nsb), nil
	case MethodSet:
		return newSet(d, nsb), nil
	case MethodGroom:
		return newGroom(d, nsb), nil
	case MethodMask:
		return newMask(d, nsb, bi, n, ci), nil
	default:
		return nil, utils.WrapError(
			fmt.Sprintf("constructing quantiser %q", method),
			utils.ErrConfigError,
		)
	}
}

// widthMask returns all-ones truncated to d's storage width.
func widthMask(d core.Descriptor) uint64 {
	if d.Width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(d.Width)) - 1
}
