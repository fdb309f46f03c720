package core

import (
	"encoding/binary"

	"github.com/scigolib/bitinfo/internal/utils"
)

// Kind identifies a supported IEEE-754 floating-point layout.
type Kind int

const (
	// KindFloat16 is IEEE-754 binary16 (1/5/10 sign/exponent/mantissa).
	KindFloat16 Kind = iota
	// KindFloat32 is IEEE-754 binary32 (1/8/23).
	KindFloat32
	// KindFloat64 is IEEE-754 binary64 (1/11/52).
	KindFloat64
)

// String returns the dtype name used in analysis records (spec §6: "type").
func (k Kind) String() string {
	switch k {
	case KindFloat16:
		return "float16"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	default:
		return "unknown"
	}
}

// BitRange is a half-open bit index range [Lo, Hi) within the unsigned view,
// counted from the LSB (bit 0).
type BitRange struct {
	Lo int
	Hi int
}

// Descriptor exposes the fixed bit layout of one supported float kind: its
// storage width, the three bit ranges, and the exponent bias. All fields are
// immutable after construction and safe to share across goroutines.
type Descriptor struct {
	Kind         Kind
	Width        int // total bits (16/32/64)
	Bias         int64
	Sign         BitRange
	Exponent     BitRange
	Mantissa     BitRange
}

var descriptors = map[Kind]Descriptor{
	KindFloat16: {
		Kind: KindFloat16, Width: 16, Bias: 15,
		Sign:     BitRange{15, 16},
		Exponent: BitRange{10, 15},
		Mantissa: BitRange{0, 10},
	},
	KindFloat32: {
		Kind: KindFloat32, Width: 32, Bias: 127,
		Sign:     BitRange{31, 32},
		Exponent: BitRange{23, 31},
		Mantissa: BitRange{0, 23},
	},
	KindFloat64: {
		Kind: KindFloat64, Width: 64, Bias: 1023,
		Sign:     BitRange{63, 64},
		Exponent: BitRange{52, 63},
		Mantissa: BitRange{0, 52},
	},
}

// Describe returns the Descriptor for kind, or ErrUnsupportedType if kind is
// not one of the three supported IEEE-754 layouts.
func Describe(kind Kind) (Descriptor, error) {
	d, ok := descriptors[kind]
	if !ok {
		return Descriptor{}, utils.WrapError("describing type", utils.ErrUnsupportedType)
	}
	return d, nil
}

// ExponentBits returns the exponent field width E.
func (d Descriptor) ExponentBits() int {
	return d.Exponent.Hi - d.Exponent.Lo
}

// MantissaBits returns the mantissa field width M.
func (d Descriptor) MantissaBits() int {
	return d.Mantissa.Hi - d.Mantissa.Lo
}

// SignBitIndex returns the bit index of the sign bit, matching the
// "signbit" key of the analysis record (spec §6).
func (d Descriptor) SignBitIndex() int {
	return d.Sign.Lo
}

// ByteOrder identifies the declared storage byte order of an array,
// independent of host byte order. Masks are always computed in host order
// (spec §4.1); SwapMaskForByteOrder byte-swaps a mask for an array that
// declares the opposite order. The quantisers do not call it: they apply
// host-order masks to unsigned-view words, which hold the semantic bit
// pattern of each value whatever the declared order.
type ByteOrder byte

const (
	// LittleEndian ('<' in the JSON carrier, spec §6).
	LittleEndian ByteOrder = '<'
	// BigEndian ('>').
	BigEndian ByteOrder = '>'
	// NativeOrder ('=') resolves to the host order at call time; it is
	// never memoised (spec §9: "do not memoise").
	NativeOrder ByteOrder = '='
	// NotApplicable ('|') for byte-order-independent single-byte types;
	// never produced for f16/f32/f64 but retained for carrier completeness.
	NotApplicable ByteOrder = '|'
)

// HostByteOrder returns the running host's byte order, queried fresh on
// every call rather than cached as a package-level singleton.
func HostByteOrder() ByteOrder {
	var probe uint16 = 1
	buf := make([]byte, 2)
	binary.NativeEndian.PutUint16(buf, probe)
	if buf[0] == 1 {
		return LittleEndian
	}
	return BigEndian
}

// Resolve turns NativeOrder into the host's concrete order; any other value
// passes through unchanged.
func (b ByteOrder) Resolve() ByteOrder {
	if b == NativeOrder {
		return HostByteOrder()
	}
	return b
}
