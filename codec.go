// Copyright 2025 The go-succinct Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rrr

import (
	"math/bits"
)

// The block codec is a bijection, for each block width u and class c,
// between the C(u, c) distinct u-bit values with exactly c one-bits and
// the interval [0, C(u, c)). Values are numbered in ascending numeric
// order: offset 0 is the smallest member of the class, offset
// C(u, c)-1 the largest.

// encodeBlock returns the offset of value v among the u-bit values of
// class c. The class must be the population count of v.
//
// With u = 5 and c = 2 the members of the class and their offsets are
//
//	0: 00011   4: 01010   8: 10100
//	1: 00101   5: 01100   9: 11000
//	2: 00110   6: 10001
//	3: 01001   7: 10010
//
// C(4, 2) = 6 of them have bit 4 clear, so a value with bit 4 set has
// offset at least 6. Inspecting each 1-bit from the most significant
// down accumulates the count of class members that precede v.
func encodeBlock(u, c uint, v uint64) uint64 {
	if uint(bits.OnesCount64(v)) != c {
		panic(ErrClassMismatch)
	}
	if c == 0 || c == u {
		return 0
	}

	var offset uint64
	cc := int(c)

	// Leading zeros contribute nothing; start at the topmost 1-bit.
	for n := 63 - bits.LeadingZeros64(v); cc > 0 && n >= cc; n-- {
		if v&(1<<uint(n)) != 0 {
			offset += binomial[n][cc]
			cc--
		}
	}
	return offset
}

// decodeBlock returns the u-bit value of class c at the given offset,
// inverting encodeBlock. The offset must be below C(u, c).
//
// Each bit from position u-1 down is decided by comparing the offset
// against the count of class members with that bit clear: if
// C(n, c') <= offset the bit is set and those members are skipped.
// Once only c' one-bits remain to place with exactly c' positions left,
// they occupy the low bits.
func decodeBlock(u, c uint, offset uint64) uint64 {
	if offset >= binomial[u][c] {
		panic(ErrOffsetRange)
	}

	var v uint64
	cc := int(c)

	for n := int(u) - 1; cc <= n && n > 0; n-- {
		if before := binomial[n][cc]; before <= offset {
			v |= 1 << uint(n)
			offset -= before
			cc--
		}
	}
	if cc > 0 {
		v |= lowMask(uint(cc))
	}
	return v
}
