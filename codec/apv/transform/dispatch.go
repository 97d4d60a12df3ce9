/*
NAME
  dispatch.go

DESCRIPTION
  dispatch.go provides the per-instance kernel vtable described in §9 of
  the format ("Global dispatch tables for SIMD kernels become a
  per-instance vtable populated at construction from a detected-feature
  enum. Avoid static mutable state."). Only the scalar kernel is
  implemented here; ISA-specialised kernels are out of scope (§1), but the
  dispatch contract they would plug into is defined and exercised.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

package transform

import "golang.org/x/sys/cpu"

// ISA identifies a detected instruction-set level a KernelSet was built
// for. The scalar level is always available; AVX2/AVX512 are placeholders
// for the architecture-specific kernels this core only defines the
// dispatch contract for (§1).
type ISA int

const (
	ISAScalar ISA = iota
	ISAAVX2
	ISAAVX512
)

func (i ISA) String() string {
	switch i {
	case ISAScalar:
		return "scalar"
	case ISAAVX2:
		return "avx2"
	case ISAAVX512:
		return "avx512"
	default:
		return "unknown"
	}
}

// KernelSet is the dispatchable contract for the five transform/quant
// kernels of §4.3/§9, bound once at construction time rather than read
// through a global mutable table.
type KernelSet struct {
	ISA ISA

	Forward          func(dst, src *Block, bitDepth int)
	Inverse          func(dst, src *Block, bitDepth int)
	Quant            func(coef int32, m uint8, qp int, bitDepth int) int16
	Dequant          func(lev int16, m uint8, qp int, bitDepth int) int32
	ApplyItransAdjust func(block *Block, lastNonzero int)
}

// scalarKernelSet is the always-available, architecture-independent
// implementation.
func scalarKernelSet() KernelSet {
	return KernelSet{
		ISA:               ISAScalar,
		Forward:           Forward,
		Inverse:           Inverse,
		Quant:             Quant,
		Dequant:           Dequant,
		ApplyItransAdjust: ApplyItransAdjust,
	}
}

// DetectKernelSet probes CPU features and returns the best KernelSet
// available. Only the scalar implementation is actually provided by this
// core; detection of wider ISAs is retained so that a future
// architecture-specific build can plug a kernel set in at this single
// seam without touching callers.
func DetectKernelSet() KernelSet {
	set := scalarKernelSet()
	switch {
	case cpu.X86.HasAVX512F:
		set.ISA = ISAAVX512
	case cpu.X86.HasAVX2:
		set.ISA = ISAAVX2
	}
	// No AVX2/AVX512 kernel implementations exist in this core (§1); the
	// ISA tag records what was detected for diagnostics even though the
	// scalar function pointers remain in effect.
	return set
}
