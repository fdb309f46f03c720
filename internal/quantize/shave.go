package quantize

import "github.com/scigolib/bitinfo/internal/core"

// shaveQuantiser zeroes the discarded low mantissa bits (spec §4.7: Shave).
type shaveQuantiser struct {
	d    core.Descriptor
	nsb  int
	keep uint64
}

func newShave(d core.Descriptor, nsb int) *shaveQuantiser {
	keep := core.SigExpMask(d) | core.ManTruncMask(d, nsb)
	return &shaveQuantiser{d: d, nsb: nsb, keep: keep & widthMask(d)}
}

func (q *shaveQuantiser) Method() Method   { return MethodShave }
func (q *shaveQuantiser) NSB() int         { return q.nsb }
func (q *shaveQuantiser) KeepMask() uint64 { return q.keep }

// Process zeroes every bit outside the keep mask. Applying Process twice
// with the same quantiser is idempotent: the second pass has nothing left
// to clear (spec §8 property 5).
func (q *shaveQuantiser) Process(words []uint64) []uint64 {
	out := make([]uint64, len(words))
	for i, w := range words {
		out[i] = w & q.keep
	}
	return out
}
