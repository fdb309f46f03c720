// Package main reports how much more compressible a flat binary float32
// file becomes after quantisation, by gzip-compressing it before and after.
//
// This demonstrates the spec §1 claim that quantised output is "highly
// compressible by a downstream lossless codec" without the core package
// itself depending on or implementing a codec (the bitinfo package never
// imports compress/gzip; only this CLI does).
package main

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/scigolib/bitinfo"
	"github.com/scigolib/bitinfo/internal/core"
	"github.com/scigolib/bitinfo/internal/quantize"
)

func main() {
	method := flag.String("method", "bitshave", "quantiser method: bitshave|bitset|bitgroom|bitmask")
	ci := flag.Float64("ci", 0.99, "confidence fraction")
	axis := flag.Int("axis", 0, "adjacency axis for bitinformation")
	level := flag.Int("level", 6, "gzip compression level (1-9)")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Println("Usage: bitinfo-bench [flags] <file.f32>")
		fmt.Println("Flags:")
		flag.PrintDefaults()
		return
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		log.Fatalf("reading input: %v", err)
	}
	vals, err := float32sFromBytes(raw)
	if err != nil {
		log.Fatalf("decoding input: %v", err)
	}

	arr, err := bitinfo.NewFloat32Array([]uint64{uint64(len(vals))}, vals, nil, core.NativeOrder)
	if err != nil {
		log.Fatalf("building array: %v", err)
	}

	ctx := context.Background()
	rec, err := bitinfo.AnalyseVariable(ctx, arr, bitinfo.AnalyseOptions{
		TimeAxis: -1, LevelAxis: -1, Axis: *axis, CI: *ci,
	})
	if err != nil {
		log.Fatalf("analysing variable: %v", err)
	}

	result, err := bitinfo.Compress(ctx, arr, rec, bitinfo.CompressOptions{
		Method: quantize.Method(*method), CI: *ci, TimeAxis: -1,
	})
	if err != nil {
		log.Fatalf("compressing variable: %v", err)
	}

	before, err := gzipSize(raw, *level)
	if err != nil {
		log.Fatalf("gzip baseline: %v", err)
	}
	after, err := gzipSize(bytesFromFloat32s(result.Data.Float32()), *level)
	if err != nil {
		log.Fatalf("gzip quantised: %v", err)
	}

	fmt.Printf("raw bytes:        %d\n", len(raw))
	fmt.Printf("keepbits (NSB):   %d\n", result.KeepBits)
	fmt.Printf("method:           %s\n", result.Method)
	fmt.Printf("gzip before:      %d bytes (ratio %.3f)\n", before, float64(len(raw))/float64(before))
	fmt.Printf("gzip after:       %d bytes (ratio %.3f)\n", after, float64(len(raw))/float64(after))
	fmt.Printf("improvement:      %.3fx\n", float64(before)/float64(after))
}

func gzipSize(data []byte, level int) (int, error) {
	if level < 1 || level > 9 {
		level = 6
	}
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, level)
	if err != nil {
		return 0, err
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	return buf.Len(), nil
}

func float32sFromBytes(raw []byte) ([]float32, error) {
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("file length %d is not a multiple of 4 bytes", len(raw))
	}
	vals := make([]float32, len(raw)/4)
	for i := range vals {
		vals[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return vals, nil
}

func bytesFromFloat32s(vals []float32) []byte {
	buf := make([]byte, len(vals)*4)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}
