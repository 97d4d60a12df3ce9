/*
NAME
  inverse.go

DESCRIPTION
  inverse.go implements the inverse separable 8x8 integer transform,
  structurally symmetric with Forward (two passes of multiplication by the
  transposed tm8 basis) but with its own rounding shifts, since §4.3 leaves
  the exact inverse shift values to the implementation ("same structure
  with symmetric shifts"). Intermediate results are kept in 32-bit lanes
  and the final output is clamped to signed 16-bit, per §4.3.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

package transform

// InverseShifts returns the two rounding shifts used by Inverse for the
// given bit depth. The first pass shift is fixed (inverseShiftPass1); the
// second restores the bit-depth-dependent scaling the forward transform's
// first pass removed.
func InverseShifts(bitDepth int) (is1, is2 int) {
	is1 = inverseShiftPass1
	is2 = 20 - bitDepth
	if is2 < 0 {
		is2 = 0
	}
	return is1, is2
}

// Inverse applies the two-pass separable inverse transform to src
// (coefficients) and writes clamped 16-bit-range samples to dst.
func Inverse(dst, src *Block, bitDepth int) {
	is1, is2 := InverseShifts(bitDepth)
	var tmp Block

	round1 := int32(0)
	if is1 > 0 {
		round1 = 1 << uint(is1-1)
	}
	// Pass 1: inverse-transform columns.
	for col := 0; col < BlockSize; col++ {
		for n := 0; n < BlockSize; n++ {
			var acc int64
			for k := 0; k < BlockSize; k++ {
				acc += int64(tm8[k][n]) * int64(src[k*BlockSize+col])
			}
			tmp[n*BlockSize+col] = shiftRound32(acc, is1, round1)
		}
	}

	round2 := int32(0)
	if is2 > 0 {
		round2 = 1 << uint(is2-1)
	}
	// Pass 2: inverse-transform rows.
	for row := 0; row < BlockSize; row++ {
		for n := 0; n < BlockSize; n++ {
			var acc int64
			for k := 0; k < BlockSize; k++ {
				acc += int64(tm8[k][n]) * int64(tmp[row*BlockSize+k])
			}
			dst[row*BlockSize+n] = int32(clip16(shiftRound32(acc, is2, round2)))
		}
	}
}

// ApplyItransAdjust performs the post-inverse-transform refinement of
// §4.3: it looks up the fixed diff table entry for lastNonzero (the scan
// position of the block's last nonzero coefficient before dequant) and
// adds a small position-dependent correction to every sample, improving
// reconstruction fidelity without touching the encoded bitstream. A block
// whose last nonzero coefficient is the DC (lastNonzero 0), or which has
// none, is flat and is left unchanged.
func ApplyItransAdjust(block *Block, lastNonzero int) {
	if lastNonzero <= 0 {
		return
	}
	if lastNonzero > 63 {
		lastNonzero = 63
	}
	diff := itransDiffTable[lastNonzero]
	for step := 0; step < len(block); step++ {
		adj := (diff*int32(step) + itransAdjustOffset) >> itransAdjustShift
		block[step] = int32(clip16(block[step] + adj))
	}
}
