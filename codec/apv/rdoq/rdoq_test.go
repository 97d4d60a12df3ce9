/*
NAME
  rdoq_test.go

DESCRIPTION
  rdoq_test.go tests OptimizeBlock's lambda=0 exact-recovery property of
  §4.4/§8 and that a positive lambda never increases a block's Lagrangian
  cost relative to the baseline quantizer.
*/

package rdoq

import (
	"testing"

	"github.com/ausocean/apv/codec/apv/transform"
	"github.com/ausocean/apv/codec/apv/vlc"
)

func sampleBlockAndLevels() (transform.Block, [64]int16) {
	var coeffs transform.Block
	var levels [64]int16
	qm := transform.IdentityQMatrix()
	for i := range coeffs {
		coeffs[i] = int32(i*7 - 200)
		levels[i] = transform.Quant(coeffs[i], qm[i], 10, 10)
	}
	return coeffs, levels
}

func TestOptimizeBlockLambdaZeroIsNoOp(t *testing.T) {
	coeffs, levels := sampleBlockAndLevels()
	baseline := levels

	qm := transform.IdentityQMatrix()
	p := Params{QMatrix: &qm, QP: 10, BitDepth: 10, Lambda: 0}
	OptimizeBlock(&coeffs, &levels, p, vlc.State{})

	for i := range levels {
		if levels[i] != baseline[i] {
			t.Fatalf("position %d: lambda=0 changed level %d -> %d", i, baseline[i], levels[i])
		}
	}
}

func TestOptimizeBlockNeverWorsensCost(t *testing.T) {
	coeffs, levels := sampleBlockAndLevels()
	baseline := levels

	qm := transform.IdentityQMatrix()
	p := Params{QMatrix: &qm, QP: 10, BitDepth: 10, Lambda: 0.5}
	OptimizeBlock(&coeffs, &levels, p, vlc.State{})

	var state vlc.State
	runLen := 0
	baseCost, rdoqCost := 0.0, 0.0
	for scan := 0; scan < 64; scan++ {
		pos := vlc.ZigZag[scan]
		errScale := errorScale(p.QP, p.BitDepth, qm[pos])
		isDC := pos == 0
		baseCost += cost(coeffs[pos], baseline[pos], errScale, isDC, runLen, state, p.Lambda)
		rdoqCost += cost(coeffs[pos], levels[pos], errScale, isDC, runLen, state, p.Lambda)
		if !isDC {
			if levels[pos] == 0 {
				runLen++
			} else {
				runLen = 0
			}
		}
	}
	if rdoqCost > baseCost+1e-9 {
		t.Errorf("rdoq cost %.4f exceeds baseline cost %.4f", rdoqCost, baseCost)
	}
}
