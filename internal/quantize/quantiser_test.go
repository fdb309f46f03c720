package quantize

import (
	"testing"

	"github.com/scigolib/bitinfo/internal/core"
	"github.com/stretchr/testify/require"
)

func TestNew_UnknownMethod(t *testing.T) {
	_, err := New(Method("bogus"), core.KindFloat32, 10, nil, 100, 0.99)
	require.Error(t, err)
}

func TestNew_UnsupportedType(t *testing.T) {
	_, err := New(MethodShave, core.Kind(99), 10, nil, 100, 0.99)
	require.Error(t, err)
}

func TestNew_AllMethodsConstruct(t *testing.T) {
	bi := make([]float64, 23)
	for _, m := range []Method{MethodShave, MethodSet, MethodGroom, MethodMask} {
		q, err := New(m, core.KindFloat32, 10, bi, 1000, 0.99)
		require.NoError(t, err)
		require.Equal(t, m, q.Method())
		require.Equal(t, 10, q.NSB())
	}
}

func TestQuantiserFidelity(t *testing.T) {
	d, _ := core.Describe(core.KindFloat32)
	x := core.WordsFromFloat32([]float32{3.14159265})[0]
	nsb := 10
	discardMask := (uint64(1)<<uint(d.MantissaBits()-nsb) - 1)

	bi := make([]float64, 23)
	for i := range bi {
		bi[i] = 1.0
	}

	shave, err := New(MethodShave, core.KindFloat32, nsb, bi, 1000, 0.99)
	require.NoError(t, err)
	shaved := shave.Process([]uint64{x})[0]
	require.Zero(t, shaved&discardMask, "shave must clear all discarded low mantissa bits")
	require.Equal(t, x&^discardMask, shaved, "shave must not touch bits outside the discard region")

	set, err := New(MethodSet, core.KindFloat32, nsb, bi, 1000, 0.99)
	require.NoError(t, err)
	setResult := set.Process([]uint64{x})[0]
	require.Equal(t, discardMask, setResult&discardMask, "set must raise every discarded bit to 1")

	groom, err := New(MethodGroom, core.KindFloat32, nsb, bi, 1000, 0.99)
	require.NoError(t, err)
	groomed := groom.Process([]uint64{x})[0]
	wantAlternating := uint64(0xAAAAAAAA) & discardMask
	require.Equal(t, wantAlternating, groomed&discardMask, "groom must alternate the discarded bits")

	mask, err := New(MethodMask, core.KindFloat32, nsb, bi, 1000, 0.99)
	require.NoError(t, err)
	masked := mask.Process([]uint64{x})[0]
	require.Equal(t, x&core.SignMask(d), masked&core.SignMask(d), "mask must not touch the sign bit")
	require.Equal(t, x&core.ExpMask(d), masked&core.ExpMask(d), "mask must not touch the exponent field")
	require.Zero(t, masked&^rangeMaskForTest(d.Mantissa.Lo, d.Mantissa.Hi)&^core.SignMask(d)&^core.ExpMask(d),
		"mask must only ever clear bits, never affect anything outside the mantissa range")
}

func TestShave_Idempotent(t *testing.T) {
	bi := make([]float64, 23)
	q, err := New(MethodShave, core.KindFloat32, 10, bi, 1000, 0.99)
	require.NoError(t, err)

	x := core.WordsFromFloat32([]float32{2.71828})
	once := q.Process(x)
	twice := q.Process(once)
	require.Equal(t, once, twice)
}

func TestShave_NSBMonotonicity(t *testing.T) {
	x := float32(1.23456789)
	words := core.WordsFromFloat32([]float32{x})
	bi := make([]float64, 23)

	var prevErr float64 = -1
	for nsb := 0; nsb <= 23; nsb++ {
		q, err := New(MethodShave, core.KindFloat32, nsb, bi, 1000, 0.99)
		require.NoError(t, err)
		shaved := core.Float32FromWords(q.Process(words))[0]
		diff := float64(x) - float64(shaved)
		if diff < 0 {
			diff = -diff
		}
		if prevErr >= 0 {
			require.LessOrEqual(t, diff, prevErr+1e-12, "error must be non-increasing in NSB")
		}
		prevErr = diff
	}
}

func TestGroom_ExactZeroStaysZero(t *testing.T) {
	bi := make([]float64, 23)
	q, err := New(MethodGroom, core.KindFloat32, 10, bi, 1000, 0.99)
	require.NoError(t, err)

	out := q.Process([]uint64{0})
	require.Zero(t, out[0])
}

func TestGroom_MaskRelation(t *testing.T) {
	d, _ := core.Describe(core.KindFloat32)
	bi := make([]float64, 23)
	q, err := New(MethodGroom, core.KindFloat32, 10, bi, 1000, 0.99)
	require.NoError(t, err)
	groomed := q.(*groomQuantiser)

	discard := ^groomed.KeepMask() & widthMask(d)
	require.Zero(t, groomed.groom^(discard&0xAAAAAAAA), "groom bits must equal the alternating pattern within the discarded region")
}

func rangeMaskForTest(lo, hi int) uint64 {
	if hi <= lo {
		return 0
	}
	return ((uint64(1) << uint(hi-lo)) - 1) << uint(lo)
}
