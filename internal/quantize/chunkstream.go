package quantize

import "fmt"

// ChunkStream walks a variable's time axis in pchunk-sized windows so the
// Compressor can bound its working-set memory (spec §4.9) instead of
// materialising the whole variable at once.
//
// Unlike the N-dimensional tiling this is adapted from, a ChunkStream only
// ever partitions a single axis (time): all other dimensions of a chunk are
// the variable's full extent, matching spec §4.8's indexing rule ("all
// others use the full extent").
//
// Example:
//
//	// Time axis length 10000, pchunk 4096.
//	cs, _ := NewChunkStream(10000, 4096)
//	// cs.NumChunks() == 3: [0,4096), [4096,8192), [8192,10000)
type ChunkStream struct {
	totalLen uint64
	pchunk   uint64
}

// NewChunkStream creates a stream over a time axis of length totalLen,
// windowed at pchunk elements per chunk.
func NewChunkStream(totalLen, pchunk uint64) (*ChunkStream, error) {
	if pchunk == 0 {
		return nil, fmt.Errorf("pchunk must be at least 1")
	}
	if totalLen == 0 {
		return nil, fmt.Errorf("time axis length cannot be zero")
	}
	return &ChunkStream{totalLen: totalLen, pchunk: pchunk}, nil
}

// NumChunks returns the total number of chunks, using ceiling division so a
// partial final chunk still counts.
func (cs *ChunkStream) NumChunks() uint64 {
	return (cs.totalLen + cs.pchunk - 1) / cs.pchunk
}

// Bounds returns the half-open [start, end) range along the time axis for
// chunk index, clipped to the axis length for a partial final chunk.
func (cs *ChunkStream) Bounds(index uint64) (start, end uint64) {
	start = index * cs.pchunk
	end = start + cs.pchunk
	if end > cs.totalLen {
		end = cs.totalLen
	}
	return start, end
}

// TotalLen returns the time axis length this stream was constructed over.
func (cs *ChunkStream) TotalLen() uint64 { return cs.totalLen }

// PChunk returns the configured chunk size.
func (cs *ChunkStream) PChunk() uint64 { return cs.pchunk }
