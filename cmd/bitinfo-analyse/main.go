// Package main provides a command-line front-end that runs the
// bitinformation analysis over a flat binary float32 file and prints the
// resulting analysis document as JSON.
package main

import (
	"context"
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/scigolib/bitinfo"
	"github.com/scigolib/bitinfo/internal/core"
)

func main() {
	axis := flag.Int("axis", 0, "adjacency axis for bitinformation")
	ci := flag.Float64("ci", 0.99, "confidence fraction retained by keepbits")
	timeStart := flag.Uint64("time-start", 0, "time axis slice start (requires -time-axis)")
	timeEnd := flag.Uint64("time-end", 0, "time axis slice end, 0 means full extent")
	timeAxis := flag.Int("time-axis", -1, "time axis index, -1 disables slicing")
	workers := flag.Int("workers", 1, "bit-position fan-out worker count")
	debug := flag.Bool("debug", false, "verbose diagnostics")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Println("Usage: bitinfo-analyse [flags] <file.f32>")
		fmt.Println("Flags:")
		flag.PrintDefaults()
		return
	}

	vals, err := readFloat32File(args[0])
	if err != nil {
		log.Fatalf("reading input: %v", err)
	}

	arr, err := bitinfo.NewFloat32Array([]uint64{uint64(len(vals))}, vals, nil, core.NativeOrder)
	if err != nil {
		log.Fatalf("building array: %v", err)
	}

	end := *timeEnd
	if end == 0 {
		end = uint64(len(vals))
	}

	rec, err := bitinfo.AnalyseVariable(context.Background(), arr, bitinfo.AnalyseOptions{
		TimeAxis:  *timeAxis,
		TimeStart: *timeStart,
		TimeEnd:   end,
		LevelAxis: -1,
		Axis:      *axis,
		CI:        *ci,
		Workers:   core.Workers(*workers),
		Debug:     *debug,
	})
	if err != nil {
		log.Fatalf("analysing variable: %v", err)
	}

	doc := &bitinfo.Document{
		Analysis: "BitInformation",
		Date:     time.Now().UTC().Format(time.RFC3339),
		File:     args[0],
		Version:  "1.0",
		Groups: map[string]bitinfo.GroupRecord{
			"": {Vars: map[string]bitinfo.AnalysisRecord{"variable": *rec}},
		},
	}

	data, err := doc.Marshal()
	if err != nil {
		log.Fatalf("marshalling analysis document: %v", err)
	}

	fmt.Println(string(data))
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
		bits := binary.LittleEndian.Uint32(raw[i*4:])
		vals[i] = math.Float32frombits(bits)
	}
	return vals, nil
}
