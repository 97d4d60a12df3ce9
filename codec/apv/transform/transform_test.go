/*
NAME
  transform_test.go

DESCRIPTION
  transform_test.go tests the forward/inverse transform and quant/dequant
  kernels against the round-trip properties of §8.
*/

package transform

import "testing"

func TestQuantDequantIdentityAtQP0(t *testing.T) {
	m := IdentityQMatrix()
	for _, coef := range []int32{0, 1, -1, 100, -100, 2000} {
		lev := Quant(coef, m[0], 0, 10)
		got := Dequant(lev, m[0], 0, 10)
		// qp=0 with identity matrix should reproduce the coefficient,
		// modulo the transform-domain shift rounding at small magnitudes.
		diff := got - coef
		if diff < -2 || diff > 2 {
			t.Errorf("coef %d: quant/dequant round trip got %d, diff %d", coef, got, diff)
		}
	}
}

func TestQuantZero(t *testing.T) {
	m := IdentityQMatrix()
	for qp := 0; qp <= 69; qp += 7 {
		if got := Quant(0, m[0], qp, 12); got != 0 {
			t.Errorf("qp %d: Quant(0) = %d, want 0", qp, got)
		}
	}
}

func TestForwardInverseDCOnly(t *testing.T) {
	var src Block
	for i := range src {
		src[i] = 50 // flat block: only a DC coefficient should be non-zero
	}
	var coeffs, recon Block
	Forward(&coeffs, &src, 10)

	for i := 1; i < len(coeffs); i++ {
		if coeffs[i] != 0 {
			t.Fatalf("expected a flat block to produce only a DC coefficient, got coeffs[%d] = %d", i, coeffs[i])
		}
	}

	Inverse(&recon, &coeffs, 10)
	for i := range recon {
		diff := recon[i] - src[i]
		if diff < -2 || diff > 2 {
			t.Errorf("sample %d: forward/inverse round trip got %d, want close to %d", i, recon[i], src[i])
		}
	}
}

func TestDetectKernelSetAlwaysHasScalarFunctions(t *testing.T) {
	set := DetectKernelSet()
	if set.Forward == nil || set.Inverse == nil || set.Quant == nil || set.Dequant == nil || set.ApplyItransAdjust == nil {
		t.Fatal("DetectKernelSet returned a KernelSet with a nil kernel function")
	}
}

func TestApplyItransAdjustStaysInRange(t *testing.T) {
	var block Block
	for i := range block {
		block[i] = 30000
	}
	ApplyItransAdjust(&block, 63)
	for i, v := range block {
		if v < -32768 || v > 32767 {
			t.Errorf("sample %d: value %d out of int16 range after adjust", i, v)
		}
	}
}
