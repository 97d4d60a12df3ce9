/*
NAME
  golomb_test.go

DESCRIPTION
  golomb_test.go provides testing for the Golomb-Rice code and the
  k-parameter update rules.
*/

package vlc

import (
	"testing"

	apvbits "github.com/ausocean/apv/codec/apv/bits"
)

func roundTripUnsigned(t *testing.T, v uint32, k int) uint32 {
	t.Helper()
	buf := make([]byte, 64)
	w := apvbits.NewWriter(buf)
	if err := EncodeUnsigned(w, v, k); err != nil {
		t.Fatalf("k=%d v=%d: unexpected EncodeUnsigned error: %v", k, v, err)
	}
	out, err := w.Sink()
	if err != nil {
		t.Fatalf("k=%d v=%d: unexpected Sink error: %v", k, v, err)
	}
	r := apvbits.NewReader(out)
	got, err := DecodeUnsigned(r, k)
	if err != nil {
		t.Fatalf("k=%d v=%d: unexpected DecodeUnsigned error: %v", k, v, err)
	}
	return got
}

func TestEncodeDecodeUnsignedRoundTrip(t *testing.T) {
	// Small values exercise every prefix shape (q=0,1,>=2) at every clamped
	// running k-parameter, including codewords longer than 64 bits (v=200 at
	// k=0 takes 399); a value of 1<<20 is left to
	// TestEncodeDecodeUnsignedRoundTripLargeValue at large k, since at small
	// k it would need an unreasonably long unary prefix.
	values := []uint32{0, 1, 2, 3, 4, 7, 8, 15, 16, 63, 64, 99, 100, 101, 200}
	for k := 0; k <= tableMaxK+2; k++ {
		for _, v := range values {
			if got := roundTripUnsigned(t, v, k); got != v {
				t.Errorf("k=%d v=%d: got %d", k, v, got)
			}
		}
	}
}

func TestEncodeDecodeUnsignedRoundTripLargeValue(t *testing.T) {
	const v = uint32(1 << 20)
	for _, k := range []int{16, 20, 24} {
		if got := roundTripUnsigned(t, v, k); got != v {
			t.Errorf("k=%d v=%d: got %d", k, v, got)
		}
	}
}

func TestCostUnsignedMatchesRawCodeLength(t *testing.T) {
	for k := 0; k <= tableMaxK+2; k++ {
		for _, v := range []uint32{0, 1, 5, 99, 100, 5000} {
			_, want := rawCode(v, k)
			if got := CostUnsigned(v, k); got != want {
				t.Errorf("k=%d v=%d: CostUnsigned=%d, want %d", k, v, got, want)
			}
		}
	}
}

func TestTableMatchesRawCode(t *testing.T) {
	for v := 0; v < tableMaxValue; v++ {
		for k := 0; k <= tableMaxK; k++ {
			wantPattern, wantBits := rawCode(uint32(v), k)
			gotPattern, gotBits := codeFor(uint32(v), k)
			if gotPattern != wantPattern || gotBits != wantBits {
				t.Errorf("v=%d k=%d: table=(%#x,%d), rawCode=(%#x,%d)", v, k, gotPattern, gotBits, wantPattern, wantBits)
			}
		}
	}
}

func TestUpdateKDC(t *testing.T) {
	cases := []struct {
		delta int32
		want  int
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{-3, 1},
		{16, 4},
		{-1000, maxKDC},
	}
	for _, c := range cases {
		if got := UpdateKDC(c.delta); got != c.want {
			t.Errorf("UpdateKDC(%d) = %d, want %d", c.delta, got, c.want)
		}
	}
}

func TestUpdateKAC(t *testing.T) {
	cases := []struct {
		level int
		want  int
	}{
		{1, 0},
		{4, 0},
		{5, 1},
		{8, 1},
		{9, 2},
		{1000, maxKAC},
	}
	for _, c := range cases {
		if got := UpdateKAC(c.level); got != c.want {
			t.Errorf("UpdateKAC(%d) = %d, want %d", c.level, got, c.want)
		}
	}
}

func TestUpdateKRun(t *testing.T) {
	cases := []struct {
		run  int
		want int
	}{
		{0, 0},
		{3, 0},
		{4, 1},
		{7, 1},
		{8, 2},
		{1000, maxKRun},
	}
	for _, c := range cases {
		if got := UpdateKRun(c.run); got != c.want {
			t.Errorf("UpdateKRun(%d) = %d, want %d", c.run, got, c.want)
		}
	}
}

func TestDecodeUnsignedRejectsRunawayPrefix(t *testing.T) {
	buf := make([]byte, (1<<20)/8+64)
	w := apvbits.NewWriter(buf)
	// A zero run far longer than any legitimate codeword, followed by a
	// terminator that DecodeUnsigned must never reach.
	for i := 0; i < (1<<20)+8; i++ {
		if err := w.Write(0, 1); err != nil {
			t.Fatalf("unexpected Write error at bit %d: %v", i, err)
		}
	}
	out, err := w.Sink()
	if err != nil {
		t.Fatal(err)
	}
	r := apvbits.NewReader(out)
	if _, err := DecodeUnsigned(r, 0); err != apvbits.ErrMalformedBitstream {
		t.Errorf("got %v, want ErrMalformedBitstream", err)
	}
}
