package bitinfo

import (
	"context"
	"fmt"

	"github.com/scigolib/bitinfo/internal/core"
	"github.com/scigolib/bitinfo/internal/quantize"
	"github.com/scigolib/bitinfo/internal/utils"
)

// CompressOptions configures Compress (spec §4.9, §6's tunables).
type CompressOptions struct {
	// Method selects the quantiser; ignored when analysis is nil.
	Method quantize.Method

	// CI is the confidence fraction used both by KeepBits (when analysis
	// has no RetainBits override) and by the bitmask quantiser.
	CI float64

	// TimeAxis, if >= 0, is the dimension streamed in PChunk-sized windows
	// to bound working-set memory. If < 0, the whole variable is processed
	// at once (spec §4.9: "if no time axis exists").
	TimeAxis int
	PChunk   uint64

	// ConvFloatNarrow requests f64->f32 narrowing when the variable has no
	// AnalysisRecord and is copied verbatim.
	ConvFloatNarrow bool

	// InputPath and OutputPath are compared for the identical-path
	// ConfigError check; both may be left empty when not applicable.
	InputPath  string
	OutputPath string

	// AnalysisVersion and ExpectedVersion are compared for the
	// version-mismatch ConfigError check; ExpectedVersion empty disables
	// the check.
	AnalysisVersion string
	ExpectedVersion string

	Workers core.Workers
}

// CompressedVariable is the result of Compress: the quantised (or
// verbatim-copied) output array plus the observability annotations spec
// §4.9 requires (keepbits, method, literal mask, processing history).
type CompressedVariable struct {
	Data       *MaskedArray
	KeepBits   int
	Method     quantize.Method
	Mask       uint64
	MaskBinary string
	History    []string
}

// Compress applies the configured quantiser to in, guided by analysis (or
// copies the variable verbatim if analysis is nil), streaming along
// TimeAxis in PChunk-sized windows when one is configured (spec §4.9).
//
// Configuration failures (version mismatch, identical input/output paths,
// unknown method) are all fatal before any data is touched. Once streaming
// has started, the only errors are context cancellation and a failed
// per-chunk integrity check.
func Compress(ctx context.Context, in *MaskedArray, analysis *AnalysisRecord, opts CompressOptions) (*CompressedVariable, error) {
	if opts.InputPath != "" && opts.InputPath == opts.OutputPath {
		return nil, utils.WrapError("configuring compression",
			fmt.Errorf("%w: input and output paths are identical: %s", utils.ErrConfigError, opts.InputPath))
	}
	if opts.ExpectedVersion != "" && opts.AnalysisVersion != opts.ExpectedVersion {
		return nil, utils.WrapError("configuring compression",
			fmt.Errorf("%w: analysis version %q does not match expected %q",
				utils.ErrConfigError, opts.AnalysisVersion, opts.ExpectedVersion))
	}

	if analysis == nil {
		return compressVerbatim(in, opts)
	}

	d, err := core.Describe(in.Kind())
	if err != nil {
		return nil, utils.WrapError("compressing variable", err)
	}

	nsb := 0
	if analysis.RetainBits != nil {
		nsb = *analysis.RetainBits
	} else {
		nsb = core.KeepBits(analysis.BitInfo, d.Mantissa, analysis.Elements, opts.CI, core.DefaultThresholdPolicy())
	}

	q, err := quantize.New(opts.Method, in.Kind(), nsb, analysis.BitInfo, analysis.Elements, opts.CI)
	if err != nil {
		return nil, utils.WrapError("compressing variable", err)
	}

	outWords := make([]uint64, len(in.Words()))
	copy(outWords, in.Words())

	history := make([]string, 0, 2)

	if opts.TimeAxis >= 0 {
		pchunk := opts.PChunk
		if pchunk == 0 {
			pchunk = 10000
		}
		shape := in.Shape()
		stream, err := quantize.NewChunkStream(shape[opts.TimeAxis], pchunk)
		if err != nil {
			return nil, utils.WrapError("compressing variable", err)
		}

		for c := uint64(0); c < stream.NumChunks(); c++ {
			select {
			case <-ctx.Done():
				return nil, utils.WrapError("compressing variable", ctx.Err())
			default:
			}

			lo, hi := stream.Bounds(c)
			indices, err := in.AxisIndices(opts.TimeAxis, lo, hi)
			if err != nil {
				return nil, utils.WrapError("compressing variable", err)
			}

			chunkWords := make([]uint64, len(indices))
			for i, idx := range indices {
				chunkWords[i] = in.words[idx]
			}

			processed := q.Process(chunkWords)
			for i, idx := range indices {
				outWords[idx] = processed[i]
			}

			// Process is idempotent: re-applying the quantiser to its own
			// output must reproduce it exactly. A checksum mismatch here
			// means the chunk drifted outside its mask during streaming.
			elemSize := d.Width / 8
			buf := utils.GetBuffer(len(processed) * elemSize)
			want := quantize.ChunkChecksum(wordsToBytesInto(buf, processed, elemSize))
			utils.ReleaseBuffer(buf)

			reprocessed := q.Process(processed)
			buf = utils.GetBuffer(len(reprocessed) * elemSize)
			err = quantize.VerifyChunkChecksum(wordsToBytesInto(buf, reprocessed, elemSize), want)
			utils.ReleaseBuffer(buf)
			if err != nil {
				return nil, utils.WrapError(
					fmt.Sprintf("compressing variable: chunk %d", c), err)
			}
		}

		history = append(history, fmt.Sprintf(
			"bitinfo: streamed %d chunks of <=%d along axis %d", stream.NumChunks(), pchunk, opts.TimeAxis))
	} else {
		processed := q.Process(in.Words())
		copy(outWords, processed)
	}

	mask := q.KeepMask()
	history = append(history, fmt.Sprintf(
		"bitinfo: method=%s keepbits=%d mask=%s", q.Method(), q.NSB(), maskBinaryString(mask, d.Width)))

	out := newArrayFromWords(in.Kind(), in.Shape(), outWords, in.Valid(), in.ByteOrder())

	return &CompressedVariable{
		Data:       out,
		KeepBits:   q.NSB(),
		Method:     q.Method(),
		Mask:       mask,
		MaskBinary: maskBinaryString(mask, d.Width),
		History:    history,
	}, nil
}

func compressVerbatim(in *MaskedArray, opts CompressOptions) (*CompressedVariable, error) {
	out := in
	if opts.ConvFloatNarrow && in.Kind() == core.KindFloat64 {
		narrowed := make([]float32, len(in.Words()))
		for i, v := range in.Float64() {
			narrowed[i] = float32(v)
		}
		var err error
		out, err = NewFloat32Array(in.Shape(), narrowed, in.Valid(), in.ByteOrder())
		if err != nil {
			return nil, utils.WrapError("compressing variable: narrowing copy", err)
		}
	}

	return &CompressedVariable{
		Data:    out,
		History: []string{"bitinfo: copied verbatim (no analysis record)"},
	}, nil
}

func maskBinaryString(mask uint64, width int) string {
	return fmt.Sprintf("%0*b", width, mask)
}

// wordsToBytesInto packs words into dst's first len(words)*elemSize bytes,
// little-endian per word, and returns that prefix. dst must have been sized
// by the caller (typically via utils.GetBuffer) to at least that length.
func wordsToBytesInto(dst []byte, words []uint64, elemSize int) []byte {
	n := len(words) * elemSize
	dst = dst[:n]
	for i, w := range words {
		for j := 0; j < elemSize; j++ {
			dst[i*elemSize+j] = byte(w >> uint(8*j))
		}
	}
	return dst
}
