package core

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// BitCounts holds, for one variable, a per-bit-position count of valid
// elements whose bit i is 1 (length == width).
type BitCounts []uint64

// PairCounts holds a 2x2xW contingency table: PairCounts[a][b][i] is the
// number of adjacent valid pairs (x, y) for which bit i of x equals a and
// bit i of y equals b.
type PairCounts [2][2][]uint64

// NewPairCounts allocates a zeroed PairCounts table for the given width.
func NewPairCounts(width int) PairCounts {
	var pc PairCounts
	for a := 0; a < 2; a++ {
		for b := 0; b < 2; b++ {
			pc[a][b] = make([]uint64, width)
		}
	}
	return pc
}

// BitCount counts, for each bit position of width, the number of valid
// elements of words whose bit is 1. words and valid must be equal length;
// an element is skipped entirely when valid[i] is false.
func BitCount(words []uint64, valid []bool, width int) BitCounts {
	counts := make(BitCounts, width)
	for i, w := range words {
		if valid != nil && !valid[i] {
			continue
		}
		for b := 0; b < width; b++ {
			counts[b] += (w >> uint(b)) & 1
		}
	}
	return counts
}

// Workers controls the fan-out degree for BitPairCount. The zero value
// means sequential (one worker), which is the mandated default (spec §5).
type Workers int

// BitPairCount computes the 2x2xW contingency table between adjacent
// elements a[i] and b[i] (already aligned: b[i] is a[i]'s neighbour along
// the chosen axis). a, b, and valid must share the same length; a pair is
// counted only when both valid[i] entries (a-side and b-side) hold.
//
// Parallelism, when workers > 1, is a data-parallel fan-out across bit
// positions (spec §5): each bit index accumulates independently with no
// shared mutable state, and results are assembled into the table by fixed
// index, so the output is identical regardless of worker count.
func BitPairCount(ctx context.Context, a, b []uint64, validA, validB []bool, width int, workers Workers) (PairCounts, error) {
	pc := NewPairCounts(width)
	n := len(a)

	compute := func(bitPos int) {
		var local [2][2]uint64
		for i := 0; i < n; i++ {
			if validA != nil && !validA[i] {
				continue
			}
			if validB != nil && !validB[i] {
				continue
			}
			aBit := (a[i] >> uint(bitPos)) & 1
			bBit := (b[i] >> uint(bitPos)) & 1
			local[aBit][bBit]++
		}
		for x := 0; x < 2; x++ {
			for y := 0; y < 2; y++ {
				pc[x][y][bitPos] = local[x][y]
			}
		}
	}

	if workers < 1 {
		workers = 1
	}

	if workers == 1 {
		for bitPos := 0; bitPos < width; bitPos++ {
			compute(bitPos)
		}
		return pc, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(int(workers))
	for bitPos := 0; bitPos < width; bitPos++ {
		bitPos := bitPos
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			compute(bitPos)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return PairCounts{}, err
	}
	return pc, nil
}
