package core

import "math"

// float32bits reinterprets a float32 as its uint32 bit pattern, widened to
// uint64. This is the UintView(A) operation of spec §3 applied to a single
// scalar: a bit-pattern reinterpretation, never a value conversion.
func float32bits(f float32) uint64 {
	return uint64(math.Float32bits(f))
}

// float32FromBits is the inverse of float32bits.
func float32FromBits(bits uint64) float32 {
	return math.Float32frombits(uint32(bits))
}

// float64bits reinterprets a float64 as its uint64 bit pattern.
func float64bits(f float64) uint64 {
	return math.Float64bits(f)
}

// float64FromBits is the inverse of float64bits.
func float64FromBits(bits uint64) float64 {
	return math.Float64frombits(bits)
}

// float16bits reinterprets a Float16 as its bit pattern, widened to uint64.
func float16bits(f Float16) uint64 {
	return uint64(f)
}

// float16FromBits is the inverse of float16bits.
func float16FromBits(bits uint64) Float16 {
	return Float16(bits)
}

// WordsFromFloat32 reinterprets a float32 slice as its unsigned-view words,
// one uint64-widened uint32 per element.
func WordsFromFloat32(vals []float32) []uint64 {
	out := make([]uint64, len(vals))
	for i, v := range vals {
		out[i] = float32bits(v)
	}
	return out
}

// Float32FromWords is the inverse of WordsFromFloat32.
func Float32FromWords(words []uint64) []float32 {
	out := make([]float32, len(words))
	for i, w := range words {
		out[i] = float32FromBits(w)
	}
	return out
}

// WordsFromFloat64 reinterprets a float64 slice as its unsigned-view words.
func WordsFromFloat64(vals []float64) []uint64 {
	out := make([]uint64, len(vals))
	for i, v := range vals {
		out[i] = float64bits(v)
	}
	return out
}

// Float64FromWords is the inverse of WordsFromFloat64.
func Float64FromWords(words []uint64) []float64 {
	out := make([]float64, len(words))
	for i, w := range words {
		out[i] = float64FromBits(w)
	}
	return out
}

// WordsFromFloat16 reinterprets a Float16 slice as its unsigned-view words.
func WordsFromFloat16(vals []Float16) []uint64 {
	out := make([]uint64, len(vals))
	for i, v := range vals {
		out[i] = float16bits(v)
	}
	return out
}

// Float16FromWords is the inverse of WordsFromFloat16.
func Float16FromWords(words []uint64) []Float16 {
	out := make([]Float16, len(words))
	for i, w := range words {
		out[i] = float16FromBits(w)
	}
	return out
}
