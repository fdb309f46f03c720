package core

import "github.com/scigolib/bitinfo/internal/utils"

// RewriteSignedExponent rewrites the exponent field of v (reinterpreted as
// d's unsigned view) from biased to sign-magnitude form.
//
// Biased exponents change value at zero: adjacent small-magnitude floats can
// differ in many exponent bits purely because of the bias offset, which
// artefactually inflates exponent mutual information. Rewriting the exponent
// as (sign_of_e, |e_signed|) removes that artefact before pair counting.
//
// Not an involution: applying this twice does not recover the original
// biased layout. Callers apply it exactly once per analysis, before
// BitPairCount.
func RewriteSignedExponent(v uint64, d Descriptor) uint64 {
	sign := v & rangeMask(d.Sign)
	biased := (v & rangeMask(d.Exponent)) >> uint(d.Exponent.Lo)
	mantissa := v & rangeMask(d.Mantissa)

	signed := int64(biased) - d.Bias

	expSignBit := uint64(0)
	magnitude := uint64(signed)
	if signed < 0 {
		expSignBit = 1
		magnitude = uint64(-signed)
	}

	expWidth := uint(d.ExponentBits())
	magMask := (uint64(1) << (expWidth - 1)) - 1
	magnitude &= magMask

	rewritten := expSignBit<<(expWidth-1) | magnitude
	return sign | (rewritten << uint(d.Exponent.Lo)) | mantissa
}

// RewriteSignedExponentSlice applies RewriteSignedExponent element-wise to a
// slice of unsigned-view words, returning a new slice (the input is not
// mutated, matching the Quantiser convention of borrowing arrays).
func RewriteSignedExponentSlice(words []uint64, kind Kind) ([]uint64, error) {
	d, err := Describe(kind)
	if err != nil {
		return nil, utils.WrapError("rewriting signed exponent", err)
	}
	out := make([]uint64, len(words))
	for i, w := range words {
		out[i] = RewriteSignedExponent(w, d)
	}
	return out, nil
}
