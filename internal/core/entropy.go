package core

import (
	"context"
	"math"
	"sort"
)

// Entropy computes Shannon entropy in the given logarithm base over p,
// summing -p*log_base(p) for entries with 0 < p < 1; entries at exactly 0
// or 1 contribute 0 and never trigger a log(0). p may have any shape; the
// caller flattens it into a single slice.
func Entropy(p []float64, base float64) float64 {
	lnBase := math.Log(base)
	var h float64
	for _, v := range p {
		if v <= 0 || v >= 1 {
			continue
		}
		h -= v * (math.Log(v) / lnBase)
	}
	return h
}

// BitEntropy computes the whole-word Shannon entropy of words in the given
// base: the words are sorted, runs of equal value are counted, and each
// run's frequency contributes -p*log_base(p) to the total. Unlike
// BitInformation (a per-bit-position measure over adjacent pairs), this is a
// single scalar describing how uniformly the raw bit patterns themselves are
// distributed, independent of position or neighbour — a coarser diagnostic
// than per-bit mutual information, useful as a quick sanity check on whether
// an array carries any structure at all before the more expensive per-bit
// pass runs. words is not mutated; the sort operates on a copy.
func BitEntropy(words []uint64, base float64) float64 {
	n := len(words)
	if n == 0 {
		return 0
	}

	sorted := make([]uint64, n)
	copy(sorted, words)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	lnBase := math.Log(base)
	var h float64
	runStart := 0
	for i := 1; i <= n; i++ {
		if i < n && sorted[i] == sorted[runStart] {
			continue
		}
		p := float64(i-runStart) / float64(n)
		h -= p * (math.Log(p) / lnBase)
		runStart = i
	}
	return h
}

// BitInformation estimates the per-bit mutual information between a and its
// adjacency-shifted neighbour b (already sliced [0:-1] / [1:] along the
// analysis axis by the caller), in the given base, returning a length-width
// vector of non-negative reals in [0, 1] (spec §4.5).
//
// If axisConvertExponent is true, a and b are first rewritten through
// RewriteSignedExponent (spec §4.3) before pair counting.
func BitInformation(ctx context.Context, a, b []uint64, validA, validB []bool, kind Kind, axisConvertExponent bool, base float64, workers Workers) ([]float64, error) {
	d, err := Describe(kind)
	if err != nil {
		return nil, err
	}

	if axisConvertExponent {
		a2 := make([]uint64, len(a))
		b2 := make([]uint64, len(b))
		for i, w := range a {
			a2[i] = RewriteSignedExponent(w, d)
		}
		for i, w := range b {
			b2[i] = RewriteSignedExponent(w, d)
		}
		a, b = a2, b2
	}

	pc, err := BitPairCount(ctx, a, b, validA, validB, d.Width, workers)
	if err != nil {
		return nil, err
	}

	totalPairs := uint64(0)
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			totalPairs += pc[x][y][0]
		}
	}

	mi := make([]float64, d.Width)
	if totalPairs == 0 {
		return mi, nil
	}

	lnBase := math.Log(base)
	n := float64(totalPairs)

	for i := 0; i < d.Width; i++ {
		var p [2][2]float64
		for x := 0; x < 2; x++ {
			for y := 0; y < 2; y++ {
				p[x][y] = float64(pc[x][y][i]) / n
			}
		}

		var pa [2]float64
		var pb [2]float64
		for x := 0; x < 2; x++ {
			pa[x] = p[x][0] + p[x][1]
		}
		for y := 0; y < 2; y++ {
			pb[y] = p[0][y] + p[1][y]
		}

		var sum float64
		for x := 0; x < 2; x++ {
			for y := 0; y < 2; y++ {
				if p[x][y] <= 0 {
					continue
				}
				denom := pa[x] * pb[y]
				if denom <= 0 {
					continue
				}
				sum += p[x][y] * (math.Log(p[x][y]/denom) / lnBase)
			}
		}
		mi[i] = math.Abs(sum)
	}

	return mi, nil
}
