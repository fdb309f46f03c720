// Package main provides a command-line front-end that quantises a flat
// binary float32 file using a previously produced analysis document.
package main

import (
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
	analysisPath := flag.String("analysis", "", "path to an analysis JSON document")
	varName := flag.String("var", "variable", "variable name within the analysis document")
	method := flag.String("method", "bitshave", "quantiser method: bitshave|bitset|bitgroom|bitmask")
	ci := flag.Float64("ci", 0.99, "confidence fraction")
	pchunk := flag.Uint64("pchunk", 10000, "chunk size along the time axis")
	timeAxis := flag.Int("time-axis", -1, "time axis index, -1 processes the whole variable at once")
	out := flag.String("out", "", "output file path")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 || *out == "" {
		fmt.Println("Usage: bitinfo-compress [flags] -out <output.f32> <input.f32>")
		fmt.Println("Flags:")
		flag.PrintDefaults()
		return
	}
	in := args[0]

	if in == *out {
		log.Fatalf("input and output paths must differ: %s", in)
	}

	vals, err := readFloat32File(in)
	if err != nil {
		log.Fatalf("reading input: %v", err)
	}

	order := core.NativeOrder
	var rec *bitinfo.AnalysisRecord
	if *analysisPath != "" {
		data, err := os.ReadFile(*analysisPath)
		if err != nil {
			log.Fatalf("reading analysis document: %v", err)
		}
		doc, err := bitinfo.ParseDocument(data)
		if err != nil {
			log.Fatalf("parsing analysis document: %v", err)
		}
		found, ok := doc.Groups[""].Vars[*varName]
		if !ok {
			log.Fatalf("variable %q not found in analysis document", *varName)
		}
		rec = &found
		order = bitinfo.ByteOrderFromTag(found.ByteOrder)
	}

	arr, err := bitinfo.NewFloat32Array([]uint64{uint64(len(vals))}, vals, nil, order)
	if err != nil {
		log.Fatalf("building array: %v", err)
	}

	result, err := bitinfo.Compress(context.Background(), arr, rec, bitinfo.CompressOptions{
		Method:     quantize.Method(*method),
		CI:         *ci,
		TimeAxis:   *timeAxis,
		PChunk:     *pchunk,
		InputPath:  in,
		OutputPath: *out,
	})
	if err != nil {
		log.Fatalf("compressing variable: %v", err)
	}

	if err := writeFloat32File(*out, result.Data.Float32()); err != nil {
		log.Fatalf("writing output: %v", err)
	}

	for _, line := range result.History {
		log.Print(line)
	}
}

func readFloat32File(path string) ([]float32, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("file length %d is not a multiple of 4 bytes", len(raw))
	}
	vals := make([]float32, len(raw)/4)
	for i := range vals {
		vals[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return vals, nil
}

func writeFloat32File(path string, vals []float32) error {
	buf := make([]byte, len(vals)*4)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return os.WriteFile(path, buf, 0o644)
}
