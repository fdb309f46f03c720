package quantize

import "github.com/scigolib/bitinfo/internal/core"

// maskQuantiser retains each mantissa bit independently, judged by whether
// its own estimated information exceeds the binomial noise floor, rather
// than retaining a single contiguous top-NSB run (spec §4.7: Mask).
type maskQuantiser struct {
	d    core.Descriptor
	nsb  int
	keep uint64
}

func newMask(d core.Descriptor, nsb int, bi []float64, n uint64, ci float64) *maskQuantiser {
	threshold := core.BinomConfidence(n, ci) - 0.5

	keep := core.SigExpMask(d)
	for i := d.Mantissa.Lo; i < d.Mantissa.Hi; i++ {
		if i < len(bi) && bi[i] > threshold {
			keep |= uint64(1) << uint(i)
		}
	}

	return &maskQuantiser{d: d, nsb: nsb, keep: keep & widthMask(d)}
}

func (q *maskQuantiser) Method() Method   { return MethodMask }
func (q *maskQuantiser) NSB() int         { return q.nsb }
func (q *maskQuantiser) KeepMask() uint64 { return q.keep }

// Process clears every mantissa bit not individually judged informative.
func (q *maskQuantiser) Process(words []uint64) []uint64 {
	out := make([]uint64, len(words))
	for i, w := range words {
		out[i] = w & q.keep
	}
	return out
}
