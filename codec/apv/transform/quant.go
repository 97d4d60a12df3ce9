/*
NAME
  quant.go

DESCRIPTION
  quant.go implements the quant/dequant kernels of §4.3, using an 8x8
  quantization matrix, a qp split into a six-entry scale-table index
  (qp%6) and an octave shift (qp/6), matching the family of scale-table
  quantizers used by block-transform codecs.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

package transform

// QMatrix is an 8x8 quantization matrix in row-major zig-zag-independent
// (natural) order. Values range 1..255; 16 everywhere is the identity
// matrix.
type QMatrix [BlockSize * BlockSize]uint8

// IdentityQMatrix returns a matrix of all-16 entries (the identity
// quantizer), per §3.
func IdentityQMatrix() QMatrix {
	var m QMatrix
	for i := range m {
		m[i] = 16
	}
	return m
}

// quantTransformShift computes the transform-domain shift term shared by
// Quant and Dequant: MAX_TX_DYNAMIC_RANGE - bit_depth - log2_block_size.
func quantTransformShift(bitDepth int) int {
	return maxTxDynamicRange - bitDepth - log2BlockSize
}

// Quant quantizes coef using qMatrix entry m and qp, per §4.3:
//
//	shift = QUANT_SHIFT + (MAX_TX_DYNAMIC_RANGE - bit_depth - log2_size) + qp/6
//	offset = deadzone << (shift-9)
//	lev = ((|coef| * q_matrix_entry + offset) >> shift), sign-extended and
//	      saturated to 16 bits.
func Quant(coef int32, m uint8, qp int, bitDepth int) int16 {
	scale := quantScale6[qp%6] * int32(m)
	shift := quantShift + quantTransformShift(bitDepth) + qp/6

	abs := coef
	neg := false
	if abs < 0 {
		abs = -abs
		neg = true
	}

	var offset int64
	if shift >= 9 {
		offset = int64(defaultDeadzone) << uint(shift-9)
	} else {
		offset = int64(defaultDeadzone) >> uint(9-shift)
	}

	var lev int64
	if shift > 0 {
		lev = (int64(abs)*int64(scale) + offset) >> uint(shift)
	} else {
		lev = (int64(abs)*int64(scale) + offset) << uint(-shift)
	}
	if neg {
		lev = -lev
	}
	return clip16(int32(lev))
}

// Dequant reconstructs an approximate coefficient from a quantized level,
// per §4.3:
//
//	coef = clip16((lev * q_matrix_entry + r) >> s)   when s > 0
//	coef = clip16(lev * q_matrix_entry << -s)        otherwise
func Dequant(lev int16, m uint8, qp int, bitDepth int) int32 {
	scale := dequantScale6[qp%6] * int32(m)
	s := dequantShift - quantTransformShift(bitDepth) - qp/6

	var coef int64
	if s > 0 {
		r := int64(1) << uint(s-1)
		coef = (int64(lev)*int64(scale) + r) >> uint(s)
	} else {
		coef = int64(lev) * int64(scale) << uint(-s)
	}
	return int32(clip16(int32(coef)))
}
