/*
NAME
  golomb.go

DESCRIPTION
  golomb.go implements the Golomb-Rice family variable-length code used for
  DC deltas, AC (run, level, sign) triples and fixed header fields: a
  single running Rice parameter per symbol class (k_dc, k_ac, k_run),
  escalated according to the coded magnitude rather than an nC-indexed
  coefficient-token table.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package vlc implements the Golomb-Rice style entropy coder for APV DC
// deltas, AC run/level/sign triples and header fields, including the
// per-symbol running k-parameter update rules.
package vlc

import (
	"math/bits"

	"github.com/pkg/errors"

	apvbits "github.com/ausocean/apv/codec/apv/bits"
)

// Clipping ranges for the three running k-parameters, per the format.
const (
	maxKDC  = 5
	maxKAC  = 4
	maxKRun = 2
)

// tableMaxValue and tableMaxK bound the pre-computed code table; values or
// k-parameters outside this range fall through to the iterative coder.
const (
	tableMaxValue = 100
	tableMaxK     = 5
)

type codeEntry struct {
	pattern uint64
	nbits   int
}

var codeTable [tableMaxValue][tableMaxK + 1]codeEntry

func init() {
	for v := 0; v < tableMaxValue; v++ {
		for k := 0; k <= tableMaxK; k++ {
			pattern, nbits := rawCode(uint32(v), k)
			codeTable[v][k] = codeEntry{pattern: pattern, nbits: nbits}
		}
	}
}

// rawCode computes the Golomb-Rice style bit pattern and its length for
// value v at parameter k, escalating k by one for every prefix zero past
// the second, per the format's code construction rule:
//
//	q = v >> k, r = v - (q << k)
//	q == 0: prefix "1"
//	q == 1: prefix "0 1"
//	q >= 2: prefix "0 0" then (q-2) zeros (each escalating k by one) then "1"
//	remainder r written in the final (possibly escalated) k bits.
func rawCode(v uint32, k int) (pattern uint64, nbits int) {
	q := v >> uint(k)
	r := v - (q << uint(k))

	var buf uint64
	n := 0
	emit := func(bit uint64) {
		buf = (buf << 1) | bit
		n++
	}

	kk := k
	switch {
	case q == 0:
		emit(1)
	case q == 1:
		emit(0)
		emit(1)
	default:
		emit(0)
		emit(0)
		for i := uint32(0); i < q-2; i++ {
			emit(0)
			kk++
		}
		emit(1)
	}
	for i := kk - 1; i >= 0; i-- {
		emit(uint64((r >> uint(i)) & 1))
	}
	return buf, n
}

// codeFor returns the pattern/length for v at parameter k, using the
// pre-computed table when in range and falling through to rawCode
// otherwise.
func codeFor(v uint32, k int) (uint64, int) {
	if int(v) < tableMaxValue && k >= 0 && k <= tableMaxK {
		e := codeTable[v][k]
		return e.pattern, e.nbits
	}
	return rawCode(v, k)
}

// EncodeUnsigned writes non-negative value v using parameter k.
func EncodeUnsigned(w *apvbits.Writer, v uint32, k int) error {
	pattern, n := codeFor(v, k)
	if n <= 32 {
		return w.Write(uint32(pattern), n)
	}
	if n <= 64 {
		return w.Write64(pattern, n)
	}
	// Codewords past 64 bits go out one bit at a time.
	kk := n - int(v>>uint(k)) - 1
	r := v - (v>>uint(k))<<uint(k)
	for j := n - 1; j >= 0; j-- {
		bit := (r >> uint(j)) & 1
		if j == kk {
			bit = 1
		}
		if err := w.Write(bit, 1); err != nil {
			return err
		}
	}
	return nil
}

// CostUnsigned returns the number of bits EncodeUnsigned would emit for
// (v, k), used by the RDOQ rate estimator without touching a bitstream.
func CostUnsigned(v uint32, k int) int {
	_, n := codeFor(v, k)
	return n
}

// DecodeUnsigned reads a value coded by EncodeUnsigned at parameter k.
func DecodeUnsigned(r *apvbits.Reader, k int) (uint32, error) {
	kk := k
	zeros := 0
	var q uint32
	for {
		bit, err := r.Read1()
		if err != nil {
			return 0, errors.Wrap(err, "vlc: reading prefix bit")
		}
		if bit {
			q = uint32(zeros)
			break
		}
		zeros++
		if zeros > 2 {
			kk++
		}
		// A run of zeros longer than any plausible codeword indicates a
		// corrupt stream rather than a legitimately huge value.
		if zeros > 1<<20 {
			return 0, apvbits.ErrMalformedBitstream
		}
	}
	var rem uint32
	for kk > 32 {
		// Remainder bits above the low 32 are zero for any uint32 value.
		n := kk - 32
		if n > 32 {
			n = 32
		}
		if _, err := r.Read(n); err != nil {
			return 0, errors.Wrap(err, "vlc: reading remainder bits")
		}
		kk -= n
	}
	if kk > 0 {
		v, err := r.Read(kk)
		if err != nil {
			return 0, errors.Wrap(err, "vlc: reading remainder bits")
		}
		rem = v
	}
	return (q << uint(k)) + rem, nil
}

// UpdateKDC computes the next DC running parameter from the just-coded
// delta, per the format's k_dc update rule.
func UpdateKDC(delta int32) int {
	if delta == 0 {
		return 0
	}
	abs := delta
	if abs < 0 {
		abs = -abs
	}
	k := bits.Len32(uint32(abs)) - 1
	if k < 0 {
		k = 0
	}
	if k > maxKDC {
		k = maxKDC
	}
	return k
}

// UpdateKAC computes the next AC running parameter from the just-coded
// level magnitude (level >= 1), per the format's k_ac update rule.
func UpdateKAC(level int) int {
	k := (level - 1) / 4
	if k < 0 {
		k = 0
	}
	if k > maxKAC {
		k = maxKAC
	}
	return k
}

// UpdateKRun computes the next run running parameter from the just-coded
// run length, per the format's k_run update rule.
func UpdateKRun(run int) int {
	k := run / 4
	if k > maxKRun {
		k = maxKRun
	}
	return k
}
