/*
NAME
  header_test.go

DESCRIPTION
  header_test.go tests frame-info/frame-header/tile-header/AU-info
  round-tripping and the malformed-reserved-bit and invalid-width
  properties of §8.
*/

package header

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	apvbits "github.com/ausocean/apv/codec/apv/bits"
)

func sampleFrameInfo() FrameInfo {
	return FrameInfo{
		ProfileIDC:          1,
		LevelIDC:            2,
		BandIDC:             1,
		Width:               1920,
		Height:              1080,
		ChromaFormatIDC:     Chroma422,
		BitDepth:            10,
		CaptureTimeDistance: 1,
	}
}

func TestFrameInfoRoundTrip(t *testing.T) {
	fi := sampleFrameInfo()
	buf := make([]byte, 64)
	w := apvbits.NewWriter(buf)
	if err := WriteFrameInfo(w, fi); err != nil {
		t.Fatalf("unexpected WriteFrameInfo error: %v", err)
	}
	out, err := w.Sink()
	if err != nil {
		t.Fatal(err)
	}

	r := apvbits.NewReader(out)
	got, err := ReadFrameInfo(r)
	if err != nil {
		t.Fatalf("unexpected ReadFrameInfo error: %v", err)
	}
	if diff := cmp.Diff(fi, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFrameInfoMalformedReservedBit(t *testing.T) {
	fi := sampleFrameInfo()
	buf := make([]byte, 64)
	w := apvbits.NewWriter(buf)
	WriteFrameInfo(w, fi)
	out, _ := w.Sink()

	// Corrupt the reserved 5-bit field immediately after band_idc: byte 2
	// holds band_idc(3 bits) then reserved(5 bits).
	out[2] |= 0x01

	r := apvbits.NewReader(out)
	if _, err := ReadFrameInfo(r); err != ErrReservedNonZero {
		t.Errorf("got %v, want ErrReservedNonZero", err)
	}
}

func TestFrameInfoWidthOneAt422Fails(t *testing.T) {
	fi := sampleFrameInfo()
	fi.Width = 1
	buf := make([]byte, 64)
	w := apvbits.NewWriter(buf)
	WriteFrameInfo(w, fi)
	out, _ := w.Sink()

	r := apvbits.NewReader(out)
	if _, err := ReadFrameInfo(r); err != ErrInvalidWidth {
		t.Errorf("got %v, want ErrInvalidWidth", err)
	}
}

func TestFrameInfoWidthTwoAt422Succeeds(t *testing.T) {
	fi := sampleFrameInfo()
	fi.Width = 2
	buf := make([]byte, 64)
	w := apvbits.NewWriter(buf)
	WriteFrameInfo(w, fi)
	out, _ := w.Sink()

	r := apvbits.NewReader(out)
	if _, err := ReadFrameInfo(r); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFrameHeaderRoundTrip(t *testing.T) {
	fh := FrameHeader{
		Info:            sampleFrameInfo(),
		TileWidthInMBs:  16,
		TileHeightInMBs: 8,
		TileSizePresent: true,
		TileSizes:       []uint32{100, 200, 300, 400, 500, 600, 700, 800},
	}
	// 1920x1080 padded to MBs: 120x68; tile grid with 16x8 MBs tiles is
	// ceil(120/16)=8 cols, ceil(68/8)=9 rows = 72 tiles; shrink TileSizes
	// to match for a well-formed header.
	cols, rows := TileGridSize(fh.Info, fh.TileWidthInMBs, fh.TileHeightInMBs)
	fh.TileSizes = make([]uint32, cols*rows)
	for i := range fh.TileSizes {
		fh.TileSizes[i] = uint32(i + 1)
	}

	buf := make([]byte, 4096)
	w := apvbits.NewWriter(buf)
	if err := WriteFrameHeader(w, fh); err != nil {
		t.Fatalf("unexpected WriteFrameHeader error: %v", err)
	}
	out, err := w.Sink()
	if err != nil {
		t.Fatal(err)
	}

	r := apvbits.NewReader(out)
	got, err := ReadFrameHeader(r)
	if err != nil {
		t.Fatalf("unexpected ReadFrameHeader error: %v", err)
	}
	if diff := cmp.Diff(fh, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestTileGridSize72Tiles(t *testing.T) {
	fi := FrameInfo{Width: 1920, Height: 1080}
	cols, rows := TileGridSize(fi, 16, 8)
	if cols != 8 || rows != 9 {
		t.Errorf("got cols=%d rows=%d, want cols=8 rows=9", cols, rows)
	}
	if cols*rows != 72 {
		t.Errorf("got %d tiles, want 72", cols*rows)
	}
}

func TestTileHeaderRoundTrip(t *testing.T) {
	th := TileHeader{
		HeaderSize:   uint16(TileHeaderByteSize(3)),
		TileIndex:    5,
		TileDataSize: []uint32{10, 20, 30},
		TileQP:       []uint8{1, 2, 3},
	}
	buf := make([]byte, 64)
	w := apvbits.NewWriter(buf)
	if err := WriteTileHeader(w, th); err != nil {
		t.Fatalf("unexpected WriteTileHeader error: %v", err)
	}
	out, err := w.Sink()
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != TileHeaderByteSize(3) {
		t.Errorf("got %d bytes, want %d", len(out), TileHeaderByteSize(3))
	}

	r := apvbits.NewReader(out)
	got, err := ReadTileHeader(r, 3)
	if err != nil {
		t.Fatalf("unexpected ReadTileHeader error: %v", err)
	}
	if diff := cmp.Diff(th, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestAUInfoRoundTrip(t *testing.T) {
	info := AUInfo{
		Frames: []AUInfoEntry{
			{PBUType: PBUPrimaryFrame, GroupID: 1, FrameInfo: sampleFrameInfo()},
			{PBUType: PBUDepthFrame, GroupID: 1, FrameInfo: sampleFrameInfo()},
		},
	}
	buf := make([]byte, 256)
	w := apvbits.NewWriter(buf)
	if err := WriteAUInfo(w, info); err != nil {
		t.Fatalf("unexpected WriteAUInfo error: %v", err)
	}
	out, err := w.Sink()
	if err != nil {
		t.Fatal(err)
	}

	r := apvbits.NewReader(out)
	got, err := ReadAUInfo(r)
	if err != nil {
		t.Fatalf("unexpected ReadAUInfo error: %v", err)
	}
	if diff := cmp.Diff(info, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestPBUAndAUFraming(t *testing.T) {
	p1 := PBU{Type: PBUAUInfo, GroupID: 0, Payload: []byte{1, 2, 3}}
	p2 := PBU{Type: PBUPrimaryFrame, GroupID: 1, Payload: []byte{4, 5, 6, 7}}

	var framed []byte
	framed = AppendPBU(framed, p1)
	framed = AppendPBU(framed, p2)

	var au []byte
	au = AppendAU(au, framed)

	body, total, err := SplitAU(au)
	if err != nil {
		t.Fatalf("unexpected SplitAU error: %v", err)
	}
	if total != len(au) {
		t.Errorf("got total %d, want %d (au_size plus prefix equals whole AU, per §8)", total, len(au))
	}

	pbus, err := ReadAllPBUs(body)
	if err != nil {
		t.Fatalf("unexpected ReadAllPBUs error: %v", err)
	}
	if len(pbus) != 2 {
		t.Fatalf("got %d pbus, want 2", len(pbus))
	}
	if diff := cmp.Diff(p1, pbus[0]); diff != "" {
		t.Errorf("pbu 0 mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(p2, pbus[1]); diff != "" {
		t.Errorf("pbu 1 mismatch (-want +got):\n%s", diff)
	}
}

func TestPBUReservedNonZero(t *testing.T) {
	p := PBU{Type: PBUFiller, Payload: []byte{1}}
	var framed []byte
	framed = AppendPBU(framed, p)
	framed[7] = 1 // corrupt the reserved byte

	if _, _, err := ReadPBU(framed); err != ErrReservedNonZero {
		t.Errorf("got %v, want ErrReservedNonZero", err)
	}
}
