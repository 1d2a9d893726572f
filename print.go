// Copyright 2025 The go-succinct Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rrr

import (
	"fmt"
	"io"
)

// String returns a one-line summary of the bitmap. Debugging only; the
// format is not stable.
func (b *Bitmap) String() string {
	return fmt.Sprintf("<rrr size=%d rank=%d u=%d s=%d>",
		b.size, b.rank, b.blockBits, b.markerBits)
}

// Dump writes the bitmap header and all four internal vectors to w in a
// human-readable form. Debugging only; the format is not stable.
func (b *Bitmap) Dump(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"rrr size=%d rank=%d u=%d s=%d nblocks=%d nmarkers=%d encoded=%d bits\n"+
			"  classes=%v\n  offsets=%v\n  marked_ranks=%v\n  marked_offsets=%v\n",
		b.size, b.rank, b.blockBits, b.markerBits, b.nblocks, b.nmarkers,
		b.EncodedBits(),
		b.classes, b.offsets, b.markedRanks, b.markedOffsets)
	return err
}
