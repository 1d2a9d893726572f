// Copyright 2025 The go-succinct Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command rrr-dump builds an RRR bitmap from the bits of a file and
// prints statistics about it. The file's bytes are interpreted as a bit
// string, least significant bit of each byte first. Intended for
// inspecting how well a given block width and marker period compress
// real data.
package main

import (
	"fmt"
	"io"
	"math/bits"
	"os"

	"github.com/charmbracelet/log"
	"github.com/edsrzf/mmap-go"
	"github.com/spf13/pflag"

	"github.com/go-succinct/rrr"
	"github.com/go-succinct/rrr/bitvec"
)

func init() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: rrr-dump [options] file1 [file2 [...]]

ex:
 $> rrr-dump -u 15 -s 60 ./data.bin

options:
`,
		)
		pflag.PrintDefaults()
		os.Exit(1)
	}
}

var (
	flagBlock  = pflag.UintP("block", "u", 15, "block width in bits (1..64)")
	flagMarker = pflag.UintP("marker", "s", 60, "marker period in bits (>= block width)")
	flagDump   = pflag.BoolP("dump", "x", false, "dump the internal vectors")
	flagCheck  = pflag.BoolP("check", "q", false, "cross-check queries against the raw bytes")
)

func main() {
	log.SetReportTimestamp(false)
	log.SetPrefix("rrr-dump")

	pflag.Parse()

	if pflag.NArg() < 1 {
		pflag.Usage()
	}

	for _, fname := range pflag.Args() {
		if err := process(os.Stdout, fname); err != nil {
			log.Fatal("processing failed", "file", fname, "err", err)
		}
	}
}

func process(w io.Writer, fname string) error {
	f, err := os.Open(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return err
	}
	defer data.Unmap()

	if len(data) == 0 {
		return fmt.Errorf("%s is empty", fname)
	}

	src := bitvec.FromBytes(data)
	b := rrr.New(src, *flagBlock, *flagMarker)

	raw := src.Len()
	enc := b.EncodedBits()
	fmt.Fprintf(w, "%s: %s\n", fname, b)
	fmt.Fprintf(w, "  input:   %d bits, %d ones, checksum %016x\n", raw, b.Rank(), src.Checksum())
	fmt.Fprintf(w, "  encoded: %d bits (%.3f bits per input bit)\n", enc, float64(enc)/float64(raw))

	if *flagDump {
		if err := b.Dump(w); err != nil {
			return err
		}
	}
	if *flagCheck {
		if err := check(data, b); err != nil {
			return err
		}
		fmt.Fprintf(w, "  check:   ok\n")
	}
	return nil
}

// check compares rank and access results against a direct popcount over
// the mapped bytes at a spread of probe positions.
func check(data []byte, b *rrr.Bitmap) error {
	step := b.Len()/1000 + 1
	var rank uint64
	var at uint64
	for i := uint64(0); i < b.Len(); i += step {
		for ; at < i; at++ {
			rank += uint64(data[at>>3] >> (at & 7) & 1)
		}
		if got := b.Rank1(i); got != rank {
			return fmt.Errorf("rank1(%d) = %d, want %d", i, got, rank)
		}
		if got, want := b.Access(i), data[i>>3]>>(i&7)&1; got != want {
			return fmt.Errorf("access(%d) = %d, want %d", i, got, want)
		}
	}
	var total uint64
	for _, c := range data {
		total += uint64(bits.OnesCount8(c))
	}
	if total != b.Rank() {
		return fmt.Errorf("rank = %d, want %d", b.Rank(), total)
	}
	return nil
}
