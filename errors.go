// Copyright 2025 The go-succinct Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rrr

import (
	"errors"
)

// The engine distinguishes contract violations from domain results.
// Violated preconditions are programming errors: they panic with one of
// the error values below. Out-of-range select arguments are domain
// results and yield the 0 sentinel instead.

// ErrBlockSize is used to panic when a bitmap is constructed with a
// block width outside [1, 64].
var ErrBlockSize = errors.New("rrr: block size must be between 1 and 64 bits")

// ErrMarkerSize is used to panic when the marker period is smaller than
// the block width.
var ErrMarkerSize = errors.New("rrr: marker period must be at least the block size")

// ErrEmptyInput is used to panic when a bitmap is constructed from an
// empty bit vector.
var ErrEmptyInput = errors.New("rrr: input bit vector is empty")

// ErrBitRange is used to panic when Access is called with a bit index
// at or past the end of the bitmap.
var ErrBitRange = errors.New("rrr: bit index out of range")

// ErrClassMismatch is used to panic when a block is encoded with a
// class that is not its population count.
var ErrClassMismatch = errors.New("rrr: class does not match population count")

// ErrOffsetRange is used to panic when a block is decoded from an
// offset with no corresponding member in its class.
var ErrOffsetRange = errors.New("rrr: offset out of range for class")
