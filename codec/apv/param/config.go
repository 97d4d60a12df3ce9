/*
NAME
  config.go

DESCRIPTION
  config.go defines Config, the plain exported-field settings struct an
  encoder instance is constructed from, and Validate, which resolves its
  `auto` inputs (level, tile size, thread count, bitrate) into a Resolved
  set of concrete values, per §4.7.

  Config is a flat struct of exported fields with a doc comment on each,
  validated by one dedicated function rather than a generic flag/env
  binding layer.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

package param

import (
	"github.com/pkg/errors"

	"github.com/ausocean/apv/codec/apv/header"
)

// Config holds the settings an encoder instance is created from. Zero
// values mean "auto" for LevelIDC, BitrateKbps, TileWidthInMBs,
// TileHeightInMBs and Threads; Validate resolves each per §4.7.
type Config struct {
	// ProfileIDC is the coded profile_idc written into every frame_info.
	ProfileIDC uint8

	// LevelIDC is the requested level_idc, or 0 to auto-select the
	// smallest level covering the resolved sample rate and bitrate.
	LevelIDC uint8

	// BandIDC is the coarse data-rate tier (0..3) used both for level
	// auto-selection and as the band_idc written into every frame_info.
	BandIDC uint8

	// Width and Height are the luma frame dimensions in samples.
	Width, Height uint32

	// ChromaFormatIDC selects the chroma sampling format, per §3.
	ChromaFormatIDC uint8

	// BitDepth is the coded sample bit depth, 10..15 per §3.
	BitDepth uint8

	// FPS is the nominal frame rate, used for sample-rate and
	// bitrate-from-family computations. 0 defaults to 30.
	FPS uint32

	// Family selects the bitrate-from-family curve used when BitrateKbps
	// is 0, per §4.7.
	Family Family

	// BitrateKbps is the target bitrate, or 0 to derive it from Family.
	BitrateKbps uint32

	// TileWidthInMBs and TileHeightInMBs are the requested tile
	// dimensions in macroblocks, or 0 to default to MinTileWidthInMBs by
	// MinTileHeightInMBs before auto-fit runs.
	TileWidthInMBs, TileHeightInMBs uint32

	// Threads is the requested worker-pool size, or 0 to auto-select via
	// AutoThreads.
	Threads int

	// QPMin and QPMax record a quantizer range. Validate does not check
	// them and no encoder stage reads them.
	QPMin, QPMax uint8

	// FrameHashEnabled records whether a per-frame content hash is wanted.
	// No encoder stage reads it and no hash is emitted.
	FrameHashEnabled bool

	// RawAUFraming selects the unframed bitstream format over the default
	// length-prefixed PBU/AU framing, per §4.10's AU bitstream format
	// config key.
	RawAUFraming bool
}

// Resolved holds the concrete values Validate derives from a Config's auto
// fields.
type Resolved struct {
	LevelIDC                        uint8
	BitrateKbps                     uint32
	TileWidthInMBs, TileHeightInMBs uint32
	Threads                         int
}

// Validate resolves cfg's auto fields and checks every invariant §4.7
// names, returning the concrete values an encoder instance should use.
func Validate(cfg Config) (Resolved, error) {
	var res Resolved

	if !header.ValidChromaFormat(cfg.ChromaFormatIDC) {
		return res, header.ErrUnsupportedColor
	}
	if cfg.ChromaFormatIDC == header.Chroma422 && cfg.Width%2 != 0 {
		return res, header.ErrInvalidWidth
	}
	if cfg.BitDepth < 10 || cfg.BitDepth > 15 {
		return res, errors.Wrap(ErrInvalidArgument, "param: bit depth out of range 10..15")
	}
	if int(cfg.BandIDC) >= numBands {
		return res, errors.Wrap(ErrInvalidArgument, "param: band_idc out of range 0..3")
	}

	fps := cfg.FPS
	if fps == 0 {
		fps = 30
	}

	res.BitrateKbps = cfg.BitrateKbps
	if res.BitrateKbps == 0 {
		res.BitrateKbps = BitrateKbps(cfg.Family, cfg.Width, cfg.Height, fps)
	}

	alignedW := ceilDiv(cfg.Width, header.MBSize) * header.MBSize
	alignedH := ceilDiv(cfg.Height, header.MBSize) * header.MBSize
	sampleRate := uint64(alignedW) * uint64(alignedH) * uint64(fps)

	autoLevel, ok := SelectLevel(sampleRate, res.BitrateKbps, cfg.BandIDC)
	if !ok {
		return res, errors.Wrap(ErrInvalidLevel, "param: no level covers the requested sample rate and bitrate")
	}
	if cfg.LevelIDC == 0 {
		res.LevelIDC = autoLevel
	} else {
		if !levelAtLeast(cfg.LevelIDC, autoLevel) {
			return res, errors.Wrap(ErrInvalidLevel, "param: requested level below auto-selected minimum")
		}
		res.LevelIDC = cfg.LevelIDC
	}

	tw, th := cfg.TileWidthInMBs, cfg.TileHeightInMBs
	if tw != 0 && tw < MinTileWidthInMBs {
		return res, errors.Wrapf(ErrInvalidArgument, "param: tile width %d below minimum %d macroblocks", tw, MinTileWidthInMBs)
	}
	if th != 0 && th < MinTileHeightInMBs {
		return res, errors.Wrapf(ErrInvalidArgument, "param: tile height %d below minimum %d macroblocks", th, MinTileHeightInMBs)
	}

	fi := header.FrameInfo{Width: cfg.Width, Height: cfg.Height}
	res.TileWidthInMBs, res.TileHeightInMBs = AutoFitTileSize(fi, tw, th)

	cols, rows := header.TileGridSize(fi, res.TileWidthInMBs, res.TileHeightInMBs)
	res.Threads = cfg.Threads
	if res.Threads == 0 {
		res.Threads = AutoThreads(cols * rows)
	}

	return res, nil
}

func ceilDiv(a, b uint32) uint32 {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}
