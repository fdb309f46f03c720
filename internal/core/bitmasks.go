package core

import "github.com/scigolib/bitinfo/internal/utils"

// SignMask returns a single 1 bit at the sign position (width-1).
func SignMask(d Descriptor) uint64 {
	return uint64(1) << uint(d.Width-1)
}

// ExpMask returns 1s across the exponent field, 0 elsewhere.
func ExpMask(d Descriptor) uint64 {
	return rangeMask(d.Exponent)
}

// SigExpMask returns SignMask | ExpMask — the base "keep everything above the
// mantissa" mask used by every quantiser; OR-ing it with ManTruncMask(nsb)
// adds the retained top nsb mantissa bits.
func SigExpMask(d Descriptor) uint64 {
	return SignMask(d) | ExpMask(d)
}

// ManTruncMask returns the mask with the top nsb mantissa bits set and the
// low M-nsb mantissa bits cleared. nsb is clamped to [0, M]. Bit indices used
// are [M-nsb, M) within the mantissa field (spec §4.2).
func ManTruncMask(d Descriptor, nsb int) uint64 {
	m := d.MantissaBits()
	if nsb < 0 {
		nsb = 0
	}
	if nsb > m {
		nsb = m
	}
	if nsb == 0 {
		return 0
	}
	lo := d.Mantissa.Hi - nsb
	return rangeMask(BitRange{lo, d.Mantissa.Hi})
}

// BitGroomMask returns the alternating 0xAAAA... pattern across the full
// width of d's unsigned view, starting with a 1 at the MSB.
func BitGroomMask(d Descriptor) uint64 {
	const allOnesOddPositions uint64 = 0xAAAAAAAAAAAAAAAA
	if d.Width == 64 {
		return allOnesOddPositions
	}
	return allOnesOddPositions & ((uint64(1) << uint(d.Width)) - 1)
}

// rangeMask sets bits [r.Lo, r.Hi) and clears all others.
func rangeMask(r BitRange) uint64 {
	if r.Hi <= r.Lo {
		return 0
	}
	width := r.Hi - r.Lo
	var span uint64
	if width >= 64 {
		span = ^uint64(0)
	} else {
		span = (uint64(1) << uint(width)) - 1
	}
	return span << uint(r.Lo)
}

// SwapMaskForByteOrder applies the endianness rule of spec §4.1: a mask is
// always built in host order; if the array's declared byte order differs
// from the host's, the mask is byte-swapped before it is applied so that
// "bit i" continues to refer to the same semantic IEEE-754 bit.
func SwapMaskForByteOrder(mask uint64, width int, arrayOrder ByteOrder) uint64 {
	if arrayOrder.Resolve() == HostByteOrder() {
		return mask
	}
	return utils.SwapWidth(mask, width)
}
