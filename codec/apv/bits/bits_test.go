/*
NAME
  bits_test.go

DESCRIPTION
  bits_test.go provides testing for Writer and Reader.
*/

package bits

import "testing"

func TestWriteReadRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		fields []struct {
			val   uint32
			width int
		}
	}{
		{
			name: "single byte",
			fields: []struct {
				val   uint32
				width int
			}{{0x5, 4}, {0xA, 4}},
		},
		{
			name: "spans word boundary",
			fields: []struct {
				val   uint32
				width int
			}{{0x1FFFF, 17}, {0x3, 2}, {0x7FFF, 15}},
		},
		{
			name: "full width values",
			fields: []struct {
				val   uint32
				width int
			}{{0xFFFFFFFF, 32}, {0, 1}, {1, 1}},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			buf := make([]byte, 64)
			w := NewWriter(buf)
			for _, f := range test.fields {
				if err := w.Write(f.val, f.width); err != nil {
					t.Fatalf("unexpected Write error: %v", err)
				}
			}
			out, err := w.Sink()
			if err != nil {
				t.Fatalf("unexpected Sink error: %v", err)
			}

			r := NewReader(out)
			for i, f := range test.fields {
				got, err := r.Read(f.width)
				if err != nil {
					t.Fatalf("unexpected Read error at field %d: %v", i, err)
				}
				want := f.val & mask32(f.width)
				if got != want {
					t.Errorf("field %d: got %#x, want %#x", i, got, want)
				}
			}
		})
	}
}

func TestWriteOutOfBuffer(t *testing.T) {
	buf := make([]byte, 4)
	w := NewWriter(buf)
	if err := w.Write(0xFFFFFFFF, 32); err != nil {
		t.Fatalf("unexpected error filling exact buffer: %v", err)
	}
	if err := w.Write(1, 1); err != ErrOutOfBuffer {
		t.Errorf("got %v, want ErrOutOfBuffer", err)
	}
}

func TestReadPastEnd(t *testing.T) {
	r := NewReader([]byte{0xFF})
	if _, err := r.Read(8); err != nil {
		t.Fatalf("unexpected error reading available byte: %v", err)
	}
	if _, err := r.Read(1); err != ErrMalformedBitstream {
		t.Errorf("got %v, want ErrMalformedBitstream", err)
	}
}

func TestWriteDirectPatch(t *testing.T) {
	buf := make([]byte, 8)
	w := NewWriter(buf)
	if err := w.Write(0, 32); err != nil { // reserve a placeholder word
		t.Fatal(err)
	}
	if err := w.Write(0xAAAAAAAA, 32); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteDirect(0, 0x12345678, 32); err != nil {
		t.Fatalf("unexpected WriteDirect error: %v", err)
	}
	out, err := w.Sink()
	if err != nil {
		t.Fatal(err)
	}
	r := NewReader(out)
	got, _ := r.Read(32)
	if got != 0x12345678 {
		t.Errorf("got %#x, want %#x", got, 0x12345678)
	}
}

func TestAlignToByte(t *testing.T) {
	buf := make([]byte, 8)
	w := NewWriter(buf)
	w.Write(1, 3)
	if err := w.AlignToByte(); err != nil {
		t.Fatal(err)
	}
	out, err := w.Sink()
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d bytes, want 1", len(out))
	}
	if out[0] != 0x20 {
		t.Errorf("got %#x, want %#x", out[0], 0x20)
	}
}

func TestRemainingBytes(t *testing.T) {
	r := NewReader([]byte{0, 1, 2, 3})
	if r.RemainingBytes() != 4 {
		t.Fatalf("got %d, want 4", r.RemainingBytes())
	}
	r.Read(4)
	if r.RemainingBytes() != 4 {
		t.Fatalf("got %d, want 4 (partial byte still counted)", r.RemainingBytes())
	}
	r.Read(4)
	if r.RemainingBytes() != 3 {
		t.Fatalf("got %d, want 3", r.RemainingBytes())
	}
}
