package quantize

import "github.com/scigolib/bitinfo/internal/core"

// groomQuantiser alternates the discarded low mantissa bits 1010... instead
// of driving them all to 0 (shave) or all to 1 (set), avoiding the
// directional rounding bias of either (spec §4.7: Groom).
type groomQuantiser struct {
	d     core.Descriptor
	nsb   int
	keep  uint64
	groom uint64
}

func newGroom(d core.Descriptor, nsb int) *groomQuantiser {
	keep := (core.SigExpMask(d) | core.ManTruncMask(d, nsb)) & widthMask(d)
	groom := core.BitGroomMask(d) & ^keep & widthMask(d)
	return &groomQuantiser{d: d, nsb: nsb, keep: keep, groom: groom}
}

func (q *groomQuantiser) Method() Method   { return MethodGroom }
func (q *groomQuantiser) NSB() int         { return q.nsb }
func (q *groomQuantiser) KeepMask() uint64 { return q.keep }

// Process alternates the discarded bits, except that an exact-zero word
// (sign, exponent, and mantissa all zero) is left at zero: the documented
// contract the source tool's code failed to honour (spec §9).
func (q *groomQuantiser) Process(words []uint64) []uint64 {
	out := make([]uint64, len(words))
	for i, w := range words {
		if w == 0 {
			out[i] = 0
			continue
		}
		out[i] = (w & q.keep) | q.groom
	}
	return out
}
