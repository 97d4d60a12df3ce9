/*
NAME
  block.go

DESCRIPTION
  block.go codes a single 8x8 coefficient block: the DC delta followed by
  a zig-zag scan of AC (run, level, sign) triples, per §4.2/§8.2 of the
  format. The running k-parameters are carried in State across blocks of
  the same component within a tile, reset at tile boundaries.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

package vlc

import (
	"github.com/pkg/errors"

	apvbits "github.com/ausocean/apv/codec/apv/bits"
)

// BlockSize is the number of coefficients in one 8x8 transform block.
const BlockSize = 64

// ZigZag maps a scan index (0..63) to its natural row-major position within
// an 8x8 block, the standard zig-zag order used for entropy coding.
var ZigZag = [BlockSize]int{
	0, 1, 8, 16, 9, 2, 3, 10,
	17, 24, 32, 25, 18, 11, 4, 5,
	12, 19, 26, 33, 40, 48, 41, 34,
	27, 20, 13, 6, 7, 14, 21, 28,
	35, 42, 49, 56, 57, 50, 43, 36,
	29, 22, 15, 23, 30, 37, 44, 51,
	58, 59, 52, 45, 38, 31, 39, 46,
	53, 60, 61, 54, 47, 55, 62, 63,
}

// State carries the per-component, per-tile running coder state: the
// previous block's DC coefficient and the running DC/AC/run k-parameters.
// It resets to the zero value at the start of every tile, per component.
type State struct {
	PrevDC int32
	KDC    int
	KAC    int
	KRun   int
}

// Reset clears the state back to its tile-start values.
func (s *State) Reset() {
	*s = State{}
}

// EncodeDC writes the DC coefficient as a delta from the previous block's
// DC (tracked in state) and updates the running k_dc parameter.
func EncodeDC(w *apvbits.Writer, dc int32, state *State) error {
	delta := dc - state.PrevDC
	if err := encodeSigned(w, delta, state.KDC); err != nil {
		return errors.Wrap(err, "vlc: encoding dc delta")
	}
	state.KDC = UpdateKDC(delta)
	state.PrevDC = dc
	return nil
}

// DecodeDC reads a DC delta coded by EncodeDC, reconstructs the absolute DC
// value and updates state accordingly.
func DecodeDC(r *apvbits.Reader, state *State) (int32, error) {
	delta, err := decodeSigned(r, state.KDC)
	if err != nil {
		return 0, errors.Wrap(err, "vlc: decoding dc delta")
	}
	state.KDC = UpdateKDC(delta)
	dc := state.PrevDC + delta
	state.PrevDC = dc
	return dc, nil
}

// encodeSigned writes a signed value as magnitude coded with EncodeUnsigned
// followed by a sign bit when non-zero (0 = positive, 1 = negative).
func encodeSigned(w *apvbits.Writer, v int32, k int) error {
	abs := v
	if abs < 0 {
		abs = -abs
	}
	if err := EncodeUnsigned(w, uint32(abs), k); err != nil {
		return err
	}
	if v == 0 {
		return nil
	}
	sign := uint32(0)
	if v < 0 {
		sign = 1
	}
	return w.Write(sign, 1)
}

func decodeSigned(r *apvbits.Reader, k int) (int32, error) {
	abs, err := DecodeUnsigned(r, k)
	if err != nil {
		return 0, err
	}
	if abs == 0 {
		return 0, nil
	}
	sign, err := r.Read1()
	if err != nil {
		return 0, errors.Wrap(err, "vlc: reading sign bit")
	}
	if sign {
		return -int32(abs), nil
	}
	return int32(abs), nil
}

// EncodeBlock writes one 8x8 block's DC delta and AC run/level/sign stream
// into w, given coeffs in natural (row-major) order. state carries the
// per-component running k-parameters and previous DC across blocks.
func EncodeBlock(w *apvbits.Writer, coeffs *[BlockSize]int32, state *State) error {
	if err := EncodeDC(w, coeffs[0], state); err != nil {
		return err
	}

	pos := 1
	run := 0
	for pos <= 63 {
		zz := coeffs[ZigZag[pos]]
		if zz == 0 {
			run++
			pos++
			continue
		}
		if err := EncodeUnsigned(w, uint32(run), state.KRun); err != nil {
			return errors.Wrap(err, "vlc: encoding run")
		}
		level := zz
		abs := level
		if abs < 0 {
			abs = -abs
		}
		if err := EncodeUnsigned(w, uint32(abs-1), state.KAC); err != nil {
			return errors.Wrap(err, "vlc: encoding level")
		}
		sign := uint32(0)
		if level < 0 {
			sign = 1
		}
		if err := w.Write(sign, 1); err != nil {
			return err
		}
		state.KRun = UpdateKRun(run)
		state.KAC = UpdateKAC(int(abs))
		run = 0
		pos++
	}
	if run > 0 {
		// Trailing zeros to the end of the scan: terminate with a run-only
		// symbol coded at the current k_run, per the terminating-trailing-
		// run rule. No level/sign follows.
		if err := EncodeUnsigned(w, uint32(run), state.KRun); err != nil {
			return errors.Wrap(err, "vlc: encoding trailing run")
		}
		state.KRun = UpdateKRun(run)
	}
	return nil
}

// DecodeBlock reads one 8x8 block coded by EncodeBlock into coeffs (natural
// row-major order; DecodeBlock zeroes it first), updating state.
func DecodeBlock(r *apvbits.Reader, coeffs *[BlockSize]int32, state *State) error {
	for i := range coeffs {
		coeffs[i] = 0
	}
	dc, err := DecodeDC(r, state)
	if err != nil {
		return err
	}
	coeffs[0] = dc

	pos := 1
	for pos < 64 {
		run, err := DecodeUnsigned(r, state.KRun)
		if err != nil {
			return errors.Wrap(err, "vlc: decoding run")
		}
		pos += int(run)
		if pos > 64 {
			return errors.Wrap(apvbits.ErrMalformedBitstream, "vlc: run overruns block")
		}
		if pos == 64 {
			state.KRun = UpdateKRun(int(run))
			break
		}
		levelM1, err := DecodeUnsigned(r, state.KAC)
		if err != nil {
			return errors.Wrap(err, "vlc: decoding level")
		}
		sign, err := r.Read1()
		if err != nil {
			return errors.Wrap(err, "vlc: reading sign bit")
		}
		abs := int32(levelM1) + 1
		level := abs
		if sign {
			level = -abs
		}
		coeffs[ZigZag[pos]] = level
		state.KRun = UpdateKRun(int(run))
		state.KAC = UpdateKAC(int(abs))
		pos++
	}
	return nil
}
