// Copyright 2025 The go-succinct Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rrr

import (
	"math/bits"
)

// Marker samples describe window boundaries, which need not coincide
// with block boundaries: marker m's boundary m*s falls inside (or at
// the end of) the block (m*s-1)/u, and markedOffsets[m-1] records the
// offset-stream position just past that crossing block. A query jump
// therefore resumes at the crossing block itself, recovering the
// block's own offset position by subtracting its field width, and
// remembering how many of its leading bits the rank sample has already
// counted. When u divides s the crossing block ends exactly at the
// boundary and the prefix is the whole block.

// seekMarker returns the scan state for the window of marker index m:
// the crossing block's index and offset-stream position, the sampled
// rank, and the number of leading bits of that block the sample covers.
// Marker index 0 means scanning from the very start.
func (b *Bitmap) seekMarker(m uint64) (classAt, offsetAt, rank, pre uint64) {
	if m == 0 {
		return 0, 0, 0, 0
	}

	boundary := m * uint64(b.markerBits)
	classAt = (boundary - 1) / uint64(b.blockBits)
	pre = boundary - classAt*uint64(b.blockBits)

	class := uint(b.classes.ReadRecord(classAt))
	offsetAt = b.markedOffsets.ReadRecord(m-1) - uint64(offsetWidth(b.blockBits, class))
	rank = b.markedRanks.ReadRecord(m - 1)
	return classAt, offsetAt, rank, pre
}

// readBlock decodes the block at index classAt whose offset field
// starts at offsetAt.
func (b *Bitmap) readBlock(classAt, offsetAt uint64) uint64 {
	class := uint(b.classes.ReadRecord(classAt))
	offset := b.offsets.Read(offsetAt, offsetWidth(b.blockBits, class))
	return decodeBlock(b.blockBits, class, offset)
}

// Access returns bit i of the source string, 0 or 1. It panics if i is
// at or past Len.
func (b *Bitmap) Access(i uint64) byte {
	if i >= b.size {
		panic(ErrBitRange)
	}

	u := uint64(b.blockBits)
	classAt, offsetAt, _, _ := b.seekMarker(i / uint64(b.markerBits))

	// Walk the class stream forward to the block holding bit i.
	rem := i - classAt*u
	for ; rem >= u; rem -= u {
		class := uint(b.classes.ReadRecord(classAt))
		offsetAt += uint64(offsetWidth(b.blockBits, class))
		classAt++
	}

	return byte(b.readBlock(classAt, offsetAt) >> rem & 1)
}

// Rank1 returns the number of 1-bits among the first i bits of the
// source string. Arguments at or past Len saturate at Rank.
func (b *Bitmap) Rank1(i uint64) uint64 {
	if i >= b.size {
		return b.rank
	}

	u := uint64(b.blockBits)
	classAt, offsetAt, rank, pre := b.seekMarker(i / uint64(b.markerBits))

	rem := i - classAt*u
	for ; rem >= u; rem -= u {
		class := uint(b.classes.ReadRecord(classAt))
		width := offsetWidth(b.blockBits, class)
		switch {
		case pre == 0:
			rank += uint64(class)
		case pre < u:
			// The sample covers bits [0, pre) of the crossing block;
			// count only its tail.
			offset := b.offsets.Read(offsetAt, width)
			block := decodeBlock(b.blockBits, class, offset)
			rank += uint64(bits.OnesCount64(block &^ lowMask(uint(pre))))
			pre = 0
		default: // pre == u: fully covered by the sample
			pre = 0
		}
		offsetAt += uint64(width)
		classAt++
	}

	block := b.readBlock(classAt, offsetAt)
	return rank + uint64(bits.OnesCount64(block&lowMask(uint(rem))&^lowMask(uint(pre))))
}

// Rank0 returns the number of 0-bits among the first i bits of the
// source string.
func (b *Bitmap) Rank0(i uint64) uint64 {
	return i - b.Rank1(i)
}

// findMarker returns the marker index whose window holds the j-th
// 1-bit: one past the last sample whose rank is still below j, or 0
// when the bit precedes every sample.
func (b *Bitmap) findMarker(j uint64) uint64 {
	lo, hi := int64(0), int64(b.nmarkers)-1
	last := int64(-1)
	for lo <= hi {
		mid := lo + (hi-lo)/2
		if b.markedRanks.ReadRecord(uint64(mid)) < j {
			last = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return uint64(last + 1)
}

// findMarkerZero is findMarker over 0-bits. The zero-rank of marker m
// is its boundary position minus the sampled 1-rank; it is
// non-decreasing because a window holds at most s one-bits.
func (b *Bitmap) findMarkerZero(j uint64) uint64 {
	s := uint64(b.markerBits)
	lo, hi := int64(0), int64(b.nmarkers)-1
	last := int64(-1)
	for lo <= hi {
		mid := lo + (hi-lo)/2
		zrank := (uint64(mid)+1)*s - b.markedRanks.ReadRecord(uint64(mid))
		if zrank < j {
			last = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return uint64(last + 1)
}

// Select1 returns the 1-indexed position of the j-th 1-bit of the
// source string, or 0 when j is 0 or exceeds Rank.
func (b *Bitmap) Select1(j uint64) uint64 {
	if j == 0 || j > b.rank {
		return 0
	}

	u := uint64(b.blockBits)
	classAt, offsetAt, rank, pre := b.seekMarker(b.findMarker(j))

	for ; classAt < b.nblocks; classAt++ {
		class := uint(b.classes.ReadRecord(classAt))
		width := offsetWidth(b.blockBits, class)
		switch {
		case pre == 0:
			if rank+uint64(class) >= j {
				offset := b.offsets.Read(offsetAt, width)
				block := decodeBlock(b.blockBits, class, offset)
				return selectBit(block, rank, j, classAt*u)
			}
			rank += uint64(class)
		case pre < u:
			// Only the crossing block's tail is uncounted.
			offset := b.offsets.Read(offsetAt, width)
			block := decodeBlock(b.blockBits, class, offset) &^ lowMask(uint(pre))
			tail := uint64(bits.OnesCount64(block))
			if rank+tail >= j {
				return selectBit(block, rank, j, classAt*u)
			}
			rank += tail
			pre = 0
		default: // pre == u: nothing beyond the sample in this block
			pre = 0
		}
		offsetAt += uint64(width)
	}
	return 0 // unreachable: j <= rank pins the bit inside some block
}

// Select0 returns the 1-indexed position of the j-th 0-bit of the
// source string, or 0 when j is 0 or exceeds Len - Rank. It mirrors
// Select1 with block zero-counts in place of classes; padding zeros in
// the final block lie past every real zero, so they can never be
// selected for a valid j.
func (b *Bitmap) Select0(j uint64) uint64 {
	if j == 0 || j > b.size-b.rank {
		return 0
	}

	u := uint64(b.blockBits)
	classAt, offsetAt, rank, pre := b.seekMarker(b.findMarkerZero(j))
	zrank := classAt*u + pre - rank // 0-bits before the uncounted tail

	for ; classAt < b.nblocks; classAt++ {
		class := uint(b.classes.ReadRecord(classAt))
		width := offsetWidth(b.blockBits, class)
		switch {
		case pre == 0:
			if zrank+u-uint64(class) >= j {
				offset := b.offsets.Read(offsetAt, width)
				inv := ^decodeBlock(b.blockBits, class, offset) & lowMask(b.blockBits)
				return selectBit(inv, zrank, j, classAt*u)
			}
			zrank += u - uint64(class)
		case pre < u:
			offset := b.offsets.Read(offsetAt, width)
			inv := ^decodeBlock(b.blockBits, class, offset) & lowMask(b.blockBits) &^ lowMask(uint(pre))
			tail := uint64(bits.OnesCount64(inv))
			if zrank+tail >= j {
				return selectBit(inv, zrank, j, classAt*u)
			}
			zrank += tail
			pre = 0
		default:
			pre = 0
		}
		offsetAt += uint64(width)
	}
	return 0 // unreachable: j <= zeros pins the bit inside some block
}

// selectBit locates the (j-rank)-th 1-bit of block by clearing set bits
// from the bottom, and returns its 1-indexed position relative to base.
func selectBit(block, rank, j, base uint64) uint64 {
	var i int
	for ; rank < j; rank++ {
		i = bits.TrailingZeros64(block)
		block &^= 1 << uint(i)
	}
	return base + uint64(i) + 1
}
