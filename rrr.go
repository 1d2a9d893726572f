// Copyright 2025 The go-succinct Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rrr implements the RRR compressed bitmap of Raman, Raman and
// Rao, following the presentation in "Fast, Small, Simple Rank/Select
// on Bitmaps" (https://users.dcc.uchile.cl/~gnavarro/ps/sea12.1.pdf).
//
// The source bit string of length n is divided into blocks of u bits.
// Each block is stored as a pair (class, offset): the class is the
// number of 1-bits in the block, and the offset identifies the block
// among the C(u, class) values of that class, numbered in ascending
// order. A class takes ceil(log2(u+1)) bits; an offset takes
// ceil(log2(C(u, class))) bits, so dense and sparse blocks compress
// well while the worst case stays near the raw size. Rank and offset
// samples taken every s bits ("markers") let queries skip into the
// variable-width offset stream instead of scanning it from the start.
//
// A Bitmap is built once and then queried; it is never modified, so any
// number of goroutines may query one instance concurrently. Queries
// allocate nothing.
package rrr

import (
	"math/bits"

	"github.com/go-succinct/rrr/bitvec"
)

// Bitmap is an immutable compressed bitmap supporting constant-time
// Access, Rank and Select queries. The garbage collector is its
// disposer; it shares no storage with the vector it was built from.
type Bitmap struct {
	size uint64 // length of the source bit string, in bits
	rank uint64 // total number of 1-bits

	blockBits  uint // u: bits per block, 1..64
	markerBits uint // s: bits per marker window, >= u

	nblocks  uint64 // ceil(size / blockBits)
	nmarkers uint64 // ceil(size / markerBits)

	classes       *bitvec.Vector // nblocks records of nbits(u+1) bits
	offsets       *bitvec.Vector // variable-width fields, tightly packed
	markedRanks   *bitvec.Vector // nmarkers records: rank1 at window ends
	markedOffsets *bitvec.Vector // nmarkers records: offset positions at window ends
}

// New builds a Bitmap from the bits of src, dividing them into blocks
// of blockBits bits and sampling rank and offset markers every
// markerBits bits. It panics if blockBits is outside [1, MaxBlockBits],
// if markerBits is smaller than blockBits, or if src is empty. The
// final block is implicitly right-padded with zeros; the padding is
// never observable through queries.
func New(src *bitvec.Vector, blockBits, markerBits uint) *Bitmap {
	if blockBits < 1 || blockBits > MaxBlockBits {
		panic(ErrBlockSize)
	}
	if markerBits < blockBits {
		panic(ErrMarkerSize)
	}
	if src == nil || src.Len() == 0 {
		panic(ErrEmptyInput)
	}
	initBinomials()

	u, s := uint64(blockBits), uint64(markerBits)
	b := &Bitmap{
		size:       src.Len(),
		blockBits:  blockBits,
		markerBits: markerBits,
		nblocks:    (src.Len() + u - 1) / u,
		nmarkers:   (src.Len() + s - 1) / s,
	}

	// The widest offset field belongs to the median class. Offsets are
	// over-provisioned at that width per block and trimmed afterwards.
	maxWidth := uint64(offsetWidth(blockBits, blockBits/2))

	// Classes and offsets alone reproduce the source; the marker
	// vectors are the o(n) on top that buys fast rank and select.
	b.classes = bitvec.NewRecord(nbits(u+1), b.nblocks)
	b.offsets = bitvec.New(b.nblocks * maxWidth)
	b.markedRanks = bitvec.NewRecord(nbits(b.size+1), b.nmarkers)
	b.markedOffsets = bitvec.NewRecord(nbits(b.offsets.Len()+1), b.nmarkers)

	var classAt, offsetAt, markerAt uint64
	markerNeed := s // input bits until the next marker boundary

	// Read and encode the input one block at a time.
	orig := src.RecordBits()
	src.SetRecordBits(blockBits)
	for k := uint64(0); k < b.nblocks; k++ {
		block := src.ReadRecord(k)
		class := uint(bits.OnesCount64(block))

		classAt = b.classes.WriteRecord(classAt, uint64(class))
		offsetAt = b.offsets.Write(offsetAt, offsetWidth(blockBits, class),
			encodeBlock(blockBits, class, block))

		// A marker boundary inside or at the end of this block gets a
		// sample now. At most one fits because markerBits >= blockBits.
		if u >= markerNeed {
			extra := u - markerNeed
			prefix := block
			if markerNeed < 64 {
				prefix = block & lowMask(uint(markerNeed))
			}
			b.markedOffsets.WriteRecord(markerAt, offsetAt)
			b.markedRanks.WriteRecord(markerAt, b.rank+uint64(bits.OnesCount64(prefix)))
			markerAt++

			// The block bits past the boundary count toward the next
			// window.
			markerNeed = s - extra
		} else {
			markerNeed -= u
		}

		b.rank += uint64(class)
	}
	src.SetRecordBits(orig)

	// A trailing marker boundary can fall beyond the padded input and
	// never be crossed above. Fill such samples with the final totals
	// so the select binary search stays monotonic.
	for ; markerAt < b.nmarkers; markerAt++ {
		b.markedOffsets.WriteRecord(markerAt, offsetAt)
		b.markedRanks.WriteRecord(markerAt, b.rank)
	}

	// Give back the offset bits the median-class estimate didn't use.
	b.offsets.Resize(offsetAt)

	logger.Printf("rrr: size=%d rank=%d u=%d s=%d blocks=%d markers=%d offsets=%d bits",
		b.size, b.rank, blockBits, markerBits, b.nblocks, b.nmarkers, offsetAt)

	return b
}

// Len returns the length of the source bit string in bits.
func (b *Bitmap) Len() uint64 { return b.size }

// Rank returns the total number of 1-bits in the bitmap, equal to
// Rank1(Len()).
func (b *Bitmap) Rank() uint64 { return b.rank }

// BlockBits returns the block width u.
func (b *Bitmap) BlockBits() uint { return b.blockBits }

// MarkerBits returns the marker sampling period s.
func (b *Bitmap) MarkerBits() uint { return b.markerBits }

// EncodedBits returns the total size of the four internal vectors in
// bits: the compressed payload plus the marker overhead.
func (b *Bitmap) EncodedBits() uint64 {
	return b.classes.Len() + b.offsets.Len() + b.markedRanks.Len() + b.markedOffsets.Len()
}
