/*
NAME
  rdoq.go

DESCRIPTION
  rdoq.go implements the rate-distortion-optimised quantization engine of
  §4.4: for each coefficient, in scan order, it compares the baseline
  quantized level against baseline±1 and greedily keeps whichever
  minimises D + lambda*R, where D is squared quantization error scaled by
  a per-position error factor and R is the VLC bit-cost estimate from the
  vlc package. State (prev_dc, k_ac, last run) is carried across blocks the
  same way the plain VLC coder carries it, so a lambda of zero reproduces
  the baseline quantizer bit-for-bit.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

// Package rdoq implements the optional Lagrangian rate-distortion search
// over alternative quantized coefficient levels described in §4.4.
package rdoq

import (
	"github.com/ausocean/apv/codec/apv/transform"
	"github.com/ausocean/apv/codec/apv/vlc"
)

// Mirrors of unexported transform package constants needed for the error
// scale formula; kept in sync with transform.maxTxDynamicRange/log2BlockSize.
const (
	maxTxDynamicRangeConst = 15
	log2BlockSizeConst     = 3
)

// Params bundles the inputs RDOQ needs beyond the baseline quantizer's own
// arguments.
type Params struct {
	QMatrix  *transform.QMatrix
	QP       int
	BitDepth int
	Lambda   float64 // Lagrangian multiplier; Lambda == 0 reproduces the baseline quantizer exactly.
}

// OptimizeBlock replaces the baseline-quantized levels in levels (already
// populated by transform.Quant at each position, natural 8x8 order) with
// the RDOQ-selected levels, given the pre-quantization coefficients in the
// same order. state reflects the running coder state (prev_dc, k_dc, k_ac,
// k_run) at block entry; OptimizeBlock does not mutate the caller's copy.
func OptimizeBlock(coeffs *transform.Block, levels *[64]int16, p Params, state vlc.State) {
	if p.Lambda <= 0 {
		return // baseline quantizer stands; §4.4's lambda=0 exact-recovery requirement.
	}

	runLen := 0
	for scan := 0; scan < 64; scan++ {
		pos := vlc.ZigZag[scan]
		m := p.QMatrix[pos]
		errScale := errorScale(p.QP, p.BitDepth, m)
		isDC := pos == 0

		best := levels[pos]
		bestCost := cost(coeffs[pos], best, errScale, isDC, runLen, state, p.Lambda)

		for _, delta := range [2]int16{-1, 1} {
			cand := best + delta
			c := cost(coeffs[pos], cand, errScale, isDC, runLen, state, p.Lambda)
			if c < bestCost {
				bestCost = c
				best = cand
			}
		}
		levels[pos] = best

		if !isDC {
			if best == 0 {
				runLen++
			} else {
				runLen = 0
			}
		}
	}
}

// cost computes D + lambda*R for trying level at the position currently
// being decided, given the original transform coefficient coef, the
// per-position distortion scale errScale, the accumulated zero-run length
// preceding this position (AC only) and the coder state that would be in
// effect when this coefficient is coded.
func cost(coef int32, level int16, errScale float64, isDC bool, runLen int, state vlc.State, lambda float64) float64 {
	diff := float64(coef) - float64(level)
	d := diff * diff * errScale

	var bits int
	switch {
	case isDC:
		delta := int32(level) - state.PrevDC
		bits = vlc.CostUnsigned(absU32(delta), state.KDC)
		if delta != 0 {
			bits++ // sign bit
		}
	case level == 0:
		// A zero AC coefficient defers its cost to the run-continuation
		// symbol charged once a later non-zero level (or block end) is
		// reached; charging it here would double count the run length.
	default:
		abs := level
		if abs < 0 {
			abs = -abs
		}
		bits = vlc.CostUnsigned(uint32(runLen), state.KRun) +
			vlc.CostUnsigned(uint32(abs-1), state.KAC) + 1 // run + level + sign
	}
	return d + lambda*float64(bits)
}

func absU32(v int32) uint32 {
	if v < 0 {
		return uint32(-v)
	}
	return uint32(v)
}

// errorScale computes the per-position distortion scale factor
// 2^(-tr_shift) / q_value used to weigh squared quantization error in the
// Lagrangian cost, per §4.4.
func errorScale(qp, bitDepth int, m uint8) float64 {
	trShift := maxTxDynamicRangeConst - bitDepth - log2BlockSizeConst
	qValue := float64(int(m) * (1 << uint(qp/6)))
	if qValue == 0 {
		qValue = 1
	}
	scale := 1.0
	switch {
	case trShift > 0:
		scale = 1.0 / float64(int64(1)<<uint(trShift))
	case trShift < 0:
		scale = float64(int64(1) << uint(-trShift))
	}
	return scale / qValue
}
