// Copyright 2025 The go-succinct Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bitvec provides a packed vector of bits addressable as
// arbitrary-width fields of up to 64 bits, or as an array of equal-width
// records. Bit 0 of a field is the vector bit at the field's offset; in
// other words fields are stored least-significant-bit first.
package bitvec

import (
	"encoding/binary"
	"errors"

	"github.com/cespare/xxhash/v2"
)

// ErrFieldWidth is used to panic when a field wider than 64 bits is read
// or written.
var ErrFieldWidth = errors.New("bitvec: field width out of range")

// ErrWriteRange is used to panic when a write extends past the end of
// the vector.
var ErrWriteRange = errors.New("bitvec: write past end of vector")

// Vector is a resizable buffer of bits. The zero value is an empty
// vector; New and NewRecord allocate vectors of a given length. All
// storage is zeroed on allocation, and writes mask their value to the
// field width, so bits beyond the vector's length are always zero.
type Vector struct {
	words      []uint64
	size       uint64 // length in bits
	recordBits uint   // field width used by ReadRecord/WriteRecord
}

// New returns a vector of nbits zero bits.
func New(nbits uint64) *Vector {
	return &Vector{
		words: make([]uint64, (nbits+63)/64),
		size:  nbits,
	}
}

// NewRecord returns a vector laid out as count records of width bits
// each. A width of zero is permitted: every record is empty, reads
// return 0 and writes are dropped.
func NewRecord(width uint, count uint64) *Vector {
	if width > 64 {
		panic(ErrFieldWidth)
	}
	v := New(uint64(width) * count)
	v.recordBits = width
	return v
}

// FromBytes returns a vector of len(p)*8 bits backed by a copy of p.
// Bit i of the vector is bit i%8 of byte i/8, so the packing matches
// the little-endian byte order used on the wire by most bit-packed
// formats.
func FromBytes(p []byte) *Vector {
	v := New(uint64(len(p)) * 8)
	for i, w := 0, 0; i < len(p); i, w = i+8, w+1 {
		if len(p)-i >= 8 {
			v.words[w] = binary.LittleEndian.Uint64(p[i:])
			continue
		}
		var buf [8]byte
		copy(buf[:], p[i:])
		v.words[w] = binary.LittleEndian.Uint64(buf[:])
	}
	return v
}

// Len returns the length of the vector in bits.
func (v *Vector) Len() uint64 { return v.size }

// RecordBits returns the configured record width.
func (v *Vector) RecordBits() uint { return v.recordBits }

// SetRecordBits reinterprets the vector as an array of n-bit records.
// It does not move any bits; it only changes how ReadRecord and
// WriteRecord address them.
func (v *Vector) SetRecordBits(n uint) {
	if n > 64 {
		panic(ErrFieldWidth)
	}
	v.recordBits = n
}

// Records returns how many whole records the vector holds, or 0 when no
// record width is configured.
func (v *Vector) Records() uint64 {
	if v.recordBits == 0 {
		return 0
	}
	return v.size / uint64(v.recordBits)
}

// Read returns the width-bit field starting at bit offset off. Bits past
// the end of the vector read as zero, so a field may extend beyond Len.
func (v *Vector) Read(off uint64, width uint) uint64 {
	if width > 64 {
		panic(ErrFieldWidth)
	}
	if width == 0 {
		return 0
	}
	w, r := off>>6, uint(off&63)
	var x uint64
	if w < uint64(len(v.words)) {
		x = v.words[w] >> r
	}
	if r+width > 64 && w+1 < uint64(len(v.words)) {
		x |= v.words[w+1] << (64 - r)
	}
	return x & lowMask(width)
}

// Write stores the low width bits of val at bit offset off and returns
// the offset just past the written field. Bits of val beyond width are
// ignored. The field must lie within the vector.
func (v *Vector) Write(off uint64, width uint, val uint64) uint64 {
	if width > 64 {
		panic(ErrFieldWidth)
	}
	if width == 0 {
		return off
	}
	if off+uint64(width) > v.size {
		panic(ErrWriteRange)
	}
	mask := lowMask(width)
	val &= mask
	w, r := off>>6, uint(off&63)
	v.words[w] = v.words[w]&^(mask<<r) | val<<r
	if r+width > 64 {
		spill := 64 - r
		v.words[w+1] = v.words[w+1]&^(mask>>spill) | val>>spill
	}
	return off + uint64(width)
}

// ReadRecord returns record i at the configured record width.
func (v *Vector) ReadRecord(i uint64) uint64 {
	return v.Read(i*uint64(v.recordBits), v.recordBits)
}

// WriteRecord stores the low RecordBits bits of val as record i and
// returns the next record index.
func (v *Vector) WriteRecord(i uint64, val uint64) uint64 {
	v.Write(i*uint64(v.recordBits), v.recordBits, val)
	return i + 1
}

// Resize changes the length of the vector to nbits. Growing appends
// zero bits. Shrinking discards the tail and clears the vacated bits of
// the boundary word, preserving the invariant that bits beyond Len are
// zero.
func (v *Vector) Resize(nbits uint64) {
	nwords := (nbits + 63) / 64
	switch {
	case nwords > uint64(len(v.words)):
		v.words = append(v.words, make([]uint64, nwords-uint64(len(v.words)))...)
	case nwords < uint64(len(v.words)):
		v.words = v.words[:nwords]
	}
	if r := uint(nbits & 63); r != 0 && nbits < v.size {
		v.words[nwords-1] &= lowMask(r)
	}
	v.size = nbits
}

// Checksum returns a 64-bit fingerprint of the vector's length and
// contents. Two vectors with equal lengths and equal bits have equal
// checksums.
func (v *Vector) Checksum() uint64 {
	d := xxhash.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v.size)
	d.Write(buf[:])
	for _, w := range v.words {
		binary.LittleEndian.PutUint64(buf[:], w)
		d.Write(buf[:])
	}
	return d.Sum64()
}

// String renders the vector as '0' and '1' characters in bit order,
// separated into records when a record width is configured and into
// bytes otherwise. Intended for debugging; the format is not stable.
func (v *Vector) String() string {
	group := v.recordBits
	if group == 0 {
		group = 8
	}
	out := make([]byte, 0, v.size+v.size/uint64(group)+2)
	out = append(out, '[')
	for i := uint64(0); i < v.size; i++ {
		if i > 0 && i%uint64(group) == 0 {
			out = append(out, ' ')
		}
		out = append(out, '0'+byte(v.Read(i, 1)))
	}
	return string(append(out, ']'))
}

func lowMask(n uint) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return 1<<n - 1
}
