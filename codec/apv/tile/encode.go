/*
NAME
  encode.go

DESCRIPTION
  encode.go implements one tile's per-component encode pass of §4.8: for
  every macroblock in raster order, for every 8x8 block within it, load
  samples (bias-subtracted), forward transform, quantize (optionally
  RDOQ-refined), then entropy-code the block's DC delta and AC run/level/
  sign stream.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

package tile

import (
	"github.com/pkg/errors"

	apvbits "github.com/ausocean/apv/codec/apv/bits"
	"github.com/ausocean/apv/codec/apv/rdoq"
	"github.com/ausocean/apv/codec/apv/transform"
	"github.com/ausocean/apv/codec/apv/vlc"
)

// ComponentParams bundles the per-component settings EncodeComponent and
// DecodeComponent need beyond the tile geometry itself.
type ComponentParams struct {
	QP       int
	BitDepth int
	QMatrix  *transform.QMatrix
	Kernels  transform.KernelSet
	RDOQ     *rdoq.Params // nil disables RDOQ; the baseline quantizer is used as-is.
}

// bias returns the mid-grey DC bias subtracted before the forward
// transform and added back after the inverse transform, per §4.8.
func bias(bitDepth int) int32 {
	return 1 << uint(bitDepth-1)
}

// EncodeComponent codes one component's worth of one tile: widthMBs x
// heightMBs macroblocks of mbW x mbH samples each, starting at (originX,
// originY) in plane, in macroblock raster order. state is reset by the
// caller at tile start for this component and carries running coder state
// across this call's blocks. recon, if non-nil, receives the locally
// reconstructed samples (for a caller-requested recon_out, per §4.10).
func EncodeComponent(
	w *apvbits.Writer,
	plane *Plane,
	originX, originY, widthMBs, heightMBs, mbW, mbH int,
	p ComponentParams,
	state *vlc.State,
	recon *Plane,
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

					var src transform.Block
					for y := 0; y < 8; y++ {
						for x := 0; x < 8; x++ {
							src[y*8+x] = plane.Get(blockX+x, blockY+y) - bias(p.BitDepth)
						}
					}

					var coeffs transform.Block
					p.Kernels.Forward(&coeffs, &src, p.BitDepth)

					var levels [64]int16
					for i := 0; i < 64; i++ {
						levels[i] = p.Kernels.Quant(coeffs[i], p.QMatrix[i], p.QP, p.BitDepth)
					}
					if p.RDOQ != nil {
						rdoq.OptimizeBlock(&coeffs, &levels, *p.RDOQ, *state)
					}

					var natural [64]int32
					for i := range natural {
						natural[i] = int32(levels[i])
					}
					if err := vlc.EncodeBlock(w, &natural, state); err != nil {
						return errors.Wrapf(err, "tile: encoding block at (%d,%d)", blockX, blockY)
					}

					if recon != nil {
						reconstructBlock(recon, blockX, blockY, &levels, p)
					}
				}
			}
		}
	}
	return nil
}

// reconstructBlock dequantizes, inverse-transforms and writes back one
// block's samples into recon, mirroring the decode path so an encoder's
// optional recon_out matches what a decoder would later produce.
func reconstructBlock(recon *Plane, blockX, blockY int, levels *[64]int16, p ComponentParams) {
	var dequantized transform.Block
	for i := 0; i < 64; i++ {
		dequantized[i] = p.Kernels.Dequant(levels[i], p.QMatrix[i], p.QP, p.BitDepth)
	}

	var out transform.Block
	p.Kernels.Inverse(&out, &dequantized, p.BitDepth)
	transform.ApplyItransAdjust(&out, lastNonzeroScanPos(levels))

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			recon.Set(blockX+x, blockY+y, out[y*8+x]+bias(p.BitDepth))
		}
	}
}

// lastNonzeroScanPos returns the highest zig-zag scan index whose
// coefficient is non-zero, or 0 if the block is all-zero.
func lastNonzeroScanPos(levels *[64]int16) int {
	for pos := 63; pos >= 0; pos-- {
		if levels[vlc.ZigZag[pos]] != 0 {
			return pos
		}
	}
	return 0
}
