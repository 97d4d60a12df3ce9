/*
NAME
  geometry.go

DESCRIPTION
  geometry.go derives per-component macroblock geometry from a frame's
  chroma format, per §3: luma macroblocks are always 16x16; chroma
  macroblocks are 8x16 at 4:2:2 and 16x16 at 4:4:4. Auxiliary alpha
  components (chroma formats 4/5) are coded at full luma resolution.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

package tile

import (
	"github.com/ausocean/apv/codec/apv/header"
)

// ComponentMBSize returns the macroblock sample dimensions for component
// (0 == luma, 1/2 == chroma, 3 == auxiliary alpha) under chromaFormatIDC.
func ComponentMBSize(chromaFormatIDC uint8, component int) (mbW, mbH int) {
	if component == 0 || component == 3 {
		return 16, 16
	}
	switch chromaFormatIDC {
	case header.Chroma422, header.Chroma422Alpha:
		return 8, 16
	default: // Chroma444, Chroma444Alpha, and the monochrome no-chroma case.
		return 16, 16
	}
}

// ComponentPlaneSize returns the padded (whole-macroblock) plane
// dimensions for component given the frame's luma width/height in samples.
func ComponentPlaneSize(chromaFormatIDC uint8, component int, lumaWidth, lumaHeight int) (w, h int) {
	const lumaMBW, lumaMBH = 16, 16
	paddedLumaW := ceilDiv(lumaWidth, lumaMBW) * lumaMBW
	paddedLumaH := ceilDiv(lumaHeight, lumaMBH) * lumaMBH

	if component == 0 || component == 3 {
		return paddedLumaW, paddedLumaH
	}
	// Chroma planes are subsampled horizontally at 4:2:2 and not at all at
	// 4:4:4.
	switch chromaFormatIDC {
	case header.Chroma422, header.Chroma422Alpha:
		return paddedLumaW / 2, paddedLumaH
	default:
		return paddedLumaW, paddedLumaH
	}
}

func ceilDiv(a, b int) int {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}
