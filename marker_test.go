// Copyright 2025 The go-succinct Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rrr

import (
	"fmt"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-succinct/rrr/bitvec"
)

func buildRandom(n int, u, s uint, seed uint64) (*Bitmap, []bool) {
	src := bitvec.New(uint64(n))
	raw := make([]bool, n)
	state := seed
	for i := 0; i < n; i++ {
		state = state*6364136223846793005 + 1442695040888963407
		if state>>62&1 == 1 {
			raw[i] = true
			src.Write(uint64(i), 1, 1)
		}
	}
	return New(src, u, s), raw
}

// TestMarkerInvariants checks the stored samples directly: marker m
// must hold the rank at its (clamped) window boundary and the offset
// position of the first block starting at or past it.
func TestMarkerInvariants(t *testing.T) {
	for _, tc := range []struct {
		n    int
		u, s uint
	}{
		{50, 4, 8},
		{50, 4, 10},
		{64, 8, 8},
		{100, 7, 10},
		{100, 3, 17},
		{129, 15, 60},
		{10, 2, 8}, // trailing marker boundary past the padded input
	} {
		t.Run(fmt.Sprintf("n=%d/u=%d/s=%d", tc.n, tc.u, tc.s), func(t *testing.T) {
			b, raw := buildRandom(tc.n, tc.u, tc.s, uint64(tc.n*31)+uint64(tc.s))

			rankAt := func(i uint64) uint64 {
				if i > uint64(len(raw)) {
					i = uint64(len(raw))
				}
				var r uint64
				for _, set := range raw[:i] {
					if set {
						r++
					}
				}
				return r
			}

			for m := uint64(0); m < b.nmarkers; m++ {
				boundary := (m + 1) * uint64(b.markerBits)
				assert.Equal(t, rankAt(boundary), b.markedRanks.ReadRecord(m),
					"marked_ranks[%d]", m)

				// Expected offset sample: total width of all blocks
				// starting before the boundary.
				var want uint64
				for k := uint64(0); k < b.nblocks && k*uint64(b.blockBits) < boundary; k++ {
					want += uint64(offsetWidth(b.blockBits, uint(b.classes.ReadRecord(k))))
				}
				assert.Equal(t, want, b.markedOffsets.ReadRecord(m),
					"marked_offsets[%d]", m)
			}
		})
	}
}

// TestClassInvariants checks that each stored class is the population
// count of its block and that the classes sum to the total rank.
func TestClassInvariants(t *testing.T) {
	b, raw := buildRandom(1000, 11, 33, 99)

	var sum uint64
	for k := uint64(0); k < b.nblocks; k++ {
		var block uint64
		for j := 0; j < int(b.blockBits); j++ {
			if i := int(k)*int(b.blockBits) + j; i < len(raw) && raw[i] {
				block |= 1 << j
			}
		}
		class := b.classes.ReadRecord(k)
		assert.Equal(t, uint64(bits.OnesCount64(block)), class, "class of block %d", k)
		sum += class
	}
	assert.Equal(t, b.rank, sum)
}

// TestOffsetsTruncated checks that construction gives back the
// over-provisioned offset space, and that extreme blocks contribute
// nothing at all.
func TestOffsetsTruncated(t *testing.T) {
	// 64 ones then 64 zeros: every block is degenerate, so the whole
	// offset stream vanishes.
	src := bitvec.New(128)
	for i := uint64(0); i < 64; i++ {
		src.Write(i, 1, 1)
	}
	b := New(src, 8, 32)
	assert.Zero(t, b.offsets.Len())

	// Mixed content: the stream is exactly the sum of the per-class
	// widths, never the provisioned maximum.
	b2, _ := buildRandom(1000, 15, 60, 5)
	var want uint64
	for k := uint64(0); k < b2.nblocks; k++ {
		want += uint64(offsetWidth(b2.blockBits, uint(b2.classes.ReadRecord(k))))
	}
	assert.Equal(t, want, b2.offsets.Len())
}

// TestRecordWidthRestored checks that construction leaves the source
// vector's record view as it found it.
func TestRecordWidthRestored(t *testing.T) {
	src := bitvec.New(100)
	src.SetRecordBits(10)
	New(src, 7, 14)
	require.Equal(t, uint(10), src.RecordBits())
}
