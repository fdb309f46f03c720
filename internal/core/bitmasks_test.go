package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignMask(t *testing.T) {
	d32, _ := Describe(KindFloat32)
	require.Equal(t, uint64(1)<<31, SignMask(d32))

	d64, _ := Describe(KindFloat64)
	require.Equal(t, uint64(1)<<63, SignMask(d64))
}

func TestExpMask(t *testing.T) {
	d32, _ := Describe(KindFloat32)
	require.Equal(t, uint64(0xFF)<<23, ExpMask(d32))
}

func TestManTruncMask(t *testing.T) {
	d32, _ := Describe(KindFloat32)

	tests := []struct {
		name string
		nsb  int
		want uint64
	}{
		{name: "zero nsb clears everything", nsb: 0, want: 0},
		{name: "full mantissa", nsb: 23, want: 0x7FFFFF},
		{name: "clamped above M", nsb: 99, want: 0x7FFFFF},
		{name: "clamped below zero", nsb: -5, want: 0},
		{name: "partial", nsb: 10, want: uint64(0x3FF) << 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ManTruncMask(d32, tt.nsb))
		})
	}
}

func TestSigExpMask_KeepsEverythingAtFullNSB(t *testing.T) {
	d32, _ := Describe(KindFloat32)
	// At NSB=M, SigExpMask | ManTruncMask(M) must be the all-keep mask used
	// by shave (spec §4.2 invariant): retaining the full word.
	full := SigExpMask(d32) | ManTruncMask(d32, d32.MantissaBits())
	require.Equal(t, uint64(0xFFFFFFFF), full)
}

func TestBitGroomMask(t *testing.T) {
	d32, _ := Describe(KindFloat32)
	require.Equal(t, uint64(0xAAAAAAAA), BitGroomMask(d32))

	d16, _ := Describe(KindFloat16)
	require.Equal(t, uint64(0xAAAA), BitGroomMask(d16))

	d64, _ := Describe(KindFloat64)
	require.Equal(t, uint64(0xAAAAAAAAAAAAAAAA), BitGroomMask(d64))
}

func TestSwapMaskForByteOrder(t *testing.T) {
	d32, _ := Describe(KindFloat32)
	mask := ExpMask(d32)

	require.Equal(t, mask, SwapMaskForByteOrder(mask, 32, HostByteOrder()))

	opposite := BigEndian
	if HostByteOrder() == BigEndian {
		opposite = LittleEndian
	}
	swapped := SwapMaskForByteOrder(mask, 32, opposite)
	require.NotEqual(t, mask, swapped)
}

// TestFloat32OfOne_BitLayout checks the canonical bit pattern of 1.0:
// 0 01111111 00000000000000000000000.
func TestFloat32OfOne_BitLayout(t *testing.T) {
	d32, _ := Describe(KindFloat32)
	bits := float32bits(1.0)

	require.Equal(t, uint64(0), bits&SignMask(d32))
	require.Equal(t, uint64(0x7F)<<23, bits&ExpMask(d32))
	require.Equal(t, uint64(0), bits&rangeMask(d32.Mantissa))
}
