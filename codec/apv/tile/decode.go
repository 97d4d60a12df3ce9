/*
NAME
  decode.go

DESCRIPTION
  decode.go implements one tile's per-component decode pass of §4.8,
  mirroring encode.go: read each block's DC delta and AC run/level/sign
  stream, dequantize, inverse transform, apply the itrans-adjust
  refinement, add back the mid-grey bias, clip and write plane samples.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

package tile

import (
	"github.com/pkg/errors"

	apvbits "github.com/ausocean/apv/codec/apv/bits"
	"github.com/ausocean/apv/codec/apv/transform"
	"github.com/ausocean/apv/codec/apv/vlc"
)

// DecodeComponent reads one component's worth of one tile: widthMBs x
// heightMBs macroblocks of mbW x mbH samples each, writing reconstructed
// samples into plane starting at (originX, originY), in macroblock raster
// order. state is reset by the caller at tile start for this component.
func DecodeComponent(
	r *apvbits.Reader,
	plane *Plane,
	originX, originY, widthMBs, heightMBs, mbW, mbH int,
	p ComponentParams,
	state *vlc.State,
) error {
	blocksX, blocksY := mbW/8, mbH/8

	for mbRow := 0; mbRow < heightMBs; mbRow++ {
		for mbCol := 0; mbCol < widthMBs; mbCol++ {
			mbX := originX + mbCol*mbW
			mbY := originY + mbRow*mbH

			for by := 0; by < blocksY; by++ {
				for bx := 0; bx < blocksX; bx++ {
					blockX := mbX + bx*8
					blockY := mbY + by*8

					var natural [64]int32
					if err := vlc.DecodeBlock(r, &natural, state); err != nil {
						return errors.Wrapf(err, "tile: decoding block at (%d,%d)", blockX, blockY)
					}

					var dequantized transform.Block
					for i := 0; i < 64; i++ {
						dequantized[i] = p.Kernels.Dequant(int16(natural[i]), p.QMatrix[i], p.QP, p.BitDepth)
					}

					var out transform.Block
					p.Kernels.Inverse(&out, &dequantized, p.BitDepth)
					transform.ApplyItransAdjust(&out, lastNonzeroScanPosNatural(&natural))

					for y := 0; y < 8; y++ {
						for x := 0; x < 8; x++ {
							plane.Set(blockX+x, blockY+y, out[y*8+x]+bias(p.BitDepth))
						}
					}
				}
			}
		}
	}
	return nil
}

// lastNonzeroScanPosNatural is lastNonzeroScanPos's counterpart for the
// int32 natural-order coefficient arrays DecodeBlock produces.
func lastNonzeroScanPosNatural(natural *[64]int32) int {
	for pos := 63; pos >= 0; pos-- {
		if natural[vlc.ZigZag[pos]] != 0 {
			return pos
		}
	}
	return 0
}
