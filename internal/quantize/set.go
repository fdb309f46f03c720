package quantize

import "github.com/scigolib/bitinfo/internal/core"

// setQuantiser sets the discarded low mantissa bits to 1 (spec §4.7: Set).
type setQuantiser struct {
	d    core.Descriptor
	nsb  int
	keep uint64
}

func newSet(d core.Descriptor, nsb int) *setQuantiser {
	keep := core.SigExpMask(d) | core.ManTruncMask(d, nsb)
	return &setQuantiser{d: d, nsb: nsb, keep: keep & widthMask(d)}
}

func (q *setQuantiser) Method() Method   { return MethodSet }
func (q *setQuantiser) NSB() int         { return q.nsb }
func (q *setQuantiser) KeepMask() uint64 { return q.keep }

// Process sets every discarded bit (outside the keep mask) to 1.
func (q *setQuantiser) Process(words []uint64) []uint64 {
	discard := ^q.keep & widthMask(q.d)
	out := make([]uint64, len(words))
	for i, w := range words {
		out[i] = (w & q.keep) | discard
	}
	return out
}
