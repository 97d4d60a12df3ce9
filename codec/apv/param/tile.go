/*
NAME
  tile.go

DESCRIPTION
  tile.go implements tile auto-fit (§4.7): grow the tile size in
  one-macroblock (16-sample) steps until the resulting tile grid fits
  within MaxTilesPerDim tiles in both dimensions.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

package param

import (
	"github.com/ausocean/apv/codec/apv/header"
)

// MaxTilesPerDim is the largest tile count permitted in either dimension
// before auto-fit grows the tile size, per §8's "20x20 tile grid is
// permitted; 21 tiles in any dimension triggers tile-size auto-fit".
const MaxTilesPerDim = 20

// MinTileWidthInMBs and MinTileHeightInMBs are the smallest tile
// dimensions §3 permits: 256x128 samples, i.e. 16x8 macroblocks.
const (
	MinTileWidthInMBs  = 16
	MinTileHeightInMBs = 8
)

// AutoFitTileSize grows tileWidthInMBs/tileHeightInMBs by whole
// macroblocks until the tile grid implied by fi fits within MaxTilesPerDim
// columns and rows, returning the (possibly unchanged) fitted dimensions.
// A zero input defaults to the minimum tile size before auto-fit runs.
func AutoFitTileSize(fi header.FrameInfo, tileWidthInMBs, tileHeightInMBs uint32) (uint32, uint32) {
	w, h := tileWidthInMBs, tileHeightInMBs
	if w == 0 {
		w = MinTileWidthInMBs
	}
	if h == 0 {
		h = MinTileHeightInMBs
	}
	for {
		cols, rows := header.TileGridSize(fi, w, h)
		grew := false
		if cols > MaxTilesPerDim {
			w++
			grew = true
		}
		if rows > MaxTilesPerDim {
			h++
			grew = true
		}
		if !grew {
			return w, h
		}
	}
}
