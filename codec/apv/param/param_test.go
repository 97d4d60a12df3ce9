/*
NAME
  param_test.go

DESCRIPTION
  param_test.go tests level auto-selection, tile auto-fit, thread
  auto-selection and family-to-bitrate mapping against the properties of
  §8.
*/

package param

import (
	"testing"

	"github.com/ausocean/apv/codec/apv/header"
)

func TestSelectLevelMinimalCoveringEvenAtZeroBitrate(t *testing.T) {
	level, ok := SelectLevel(1_000_000, 0, 0)
	if !ok {
		t.Fatal("expected a covering level")
	}
	if level != levelTable[0].levelIDC {
		t.Errorf("got level %d, want the smallest table entry %d", level, levelTable[0].levelIDC)
	}
}

func TestSelectLevelNoneCovers(t *testing.T) {
	_, ok := SelectLevel(^uint64(0), ^uint32(0), 0)
	if ok {
		t.Error("expected no level to cover an unbounded request")
	}
}

func TestBitrateKbpsFHD422SQ(t *testing.T) {
	got := BitrateKbps(Family422SQ, 1920, 1080, 30)
	want := uint32(key(1920*1080)*(1.0/1.4)*1000/30 + 0.5)
	if got != want {
		t.Errorf("got %d kbps, want %d", got, want)
	}
}

func TestBitrateKbpsScalesWithFPS(t *testing.T) {
	at30 := BitrateKbps(Family422HQ, 1920, 1080, 30)
	at60 := BitrateKbps(Family422HQ, 1920, 1080, 60)
	if at60 <= at30 {
		t.Errorf("doubling fps should increase bitrate: at30=%d at60=%d", at30, at60)
	}
}

func TestAutoFitTileSizeWithinGrid(t *testing.T) {
	fi := header.FrameInfo{Width: 1920, Height: 1080}
	w, h := AutoFitTileSize(fi, 16, 8)
	cols, rows := header.TileGridSize(fi, w, h)
	if cols > MaxTilesPerDim || rows > MaxTilesPerDim {
		t.Errorf("grid %dx%d exceeds MaxTilesPerDim=%d", cols, rows, MaxTilesPerDim)
	}
	if w != 16 || h != 8 {
		t.Errorf("1920x1080 with 16x8 MB tiles should not need auto-fit, got %dx%d", w, h)
	}
}

func TestAutoFitTileSizeGrowsWhenTooManyTiles(t *testing.T) {
	// A 4K-wide picture with 1-MB-wide tiles needs 240 columns, far beyond
	// MaxTilesPerDim; auto-fit must grow tile width until it fits.
	fi := header.FrameInfo{Width: 3840, Height: 128}
	w, h := AutoFitTileSize(fi, 1, 1)
	cols, rows := header.TileGridSize(fi, w, h)
	if cols > MaxTilesPerDim {
		t.Errorf("got %d columns, want <= %d", cols, MaxTilesPerDim)
	}
	if rows > MaxTilesPerDim {
		t.Errorf("got %d rows, want <= %d", rows, MaxTilesPerDim)
	}
	if w <= 1 {
		t.Errorf("expected tile width to grow past 1 MB, got %d", w)
	}
}

func TestAutoThreadsRespectsMaxAndTileFloor(t *testing.T) {
	if got := AutoThreads(1); got != 1 {
		t.Errorf("got %d, want 1 (tile-count floor of 1)", got)
	}
	if got := AutoThreads(0); got > MaxThreads {
		t.Errorf("got %d threads, want <= MaxThreads=%d", got, MaxThreads)
	}
}

func TestValidateResolvesAutoFields(t *testing.T) {
	cfg := Config{
		Width:           1920,
		Height:          1080,
		ChromaFormatIDC: header.Chroma422,
		BitDepth:        10,
		FPS:             30,
		Family:          Family422SQ,
		BandIDC:         2,
		TileWidthInMBs:  16,
		TileHeightInMBs: 8,
	}
	res, err := Validate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.LevelIDC == 0 {
		t.Error("expected a non-zero auto-selected level")
	}
	if res.BitrateKbps == 0 {
		t.Error("expected a non-zero auto-derived bitrate")
	}
	if res.Threads < 1 {
		t.Error("expected at least one worker thread")
	}
}

func TestValidateRejectsWidthOneAt422(t *testing.T) {
	cfg := Config{
		Width: 1, Height: 128,
		ChromaFormatIDC: header.Chroma422,
		BitDepth:        10,
	}
	if _, err := Validate(cfg); err != header.ErrInvalidWidth {
		t.Errorf("got %v, want header.ErrInvalidWidth", err)
	}
}

func TestValidateRejectsLevelBelowAutoSelected(t *testing.T) {
	cfg := Config{
		Width: 3840, Height: 2160,
		ChromaFormatIDC: header.Chroma444,
		BitDepth:        12,
		FPS:             60,
		Family:          Family444HQ,
		LevelIDC:        levelTable[0].levelIDC, // far too low for 4K@60 444-HQ
	}
	if _, err := Validate(cfg); err == nil {
		t.Error("expected an error for an under-specified level")
	}
}

func TestValidateRejectsBadChromaFormat(t *testing.T) {
	cfg := Config{Width: 1920, Height: 1080, ChromaFormatIDC: 1, BitDepth: 10}
	if _, err := Validate(cfg); err != header.ErrUnsupportedColor {
		t.Errorf("got %v, want header.ErrUnsupportedColor", err)
	}
}
