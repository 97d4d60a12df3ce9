/*
NAME
  frameheader.go

DESCRIPTION
  frameheader.go serialises and parses the frame_header structure of §6,
  including the optional colour description, optional quantization
  matrices, and either inline tile sizes (random access) or nothing (the
  decoder then scans each tile's own tile_size field).

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

package header

import (
	apvbits "github.com/ausocean/apv/codec/apv/bits"
)

// MBSize is the macroblock side length in luma samples, per §3.
const MBSize = 16

// TileGridSize returns the number of tile columns and rows the padded
// picture is divided into for the given tile dimensions (in MBs), per §3.
func TileGridSize(fi FrameInfo, tileWidthInMBs, tileHeightInMBs uint32) (cols, rows int) {
	paddedWMBs := ceilDiv(fi.Width, MBSize)
	paddedHMBs := ceilDiv(fi.Height, MBSize)
	cols = int(ceilDiv(paddedWMBs, tileWidthInMBs))
	rows = int(ceilDiv(paddedHMBs, tileHeightInMBs))
	return cols, rows
}

func ceilDiv(a, b uint32) uint32 {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}

// WriteFrameHeader writes fh. A non-nil fh.QMatrix must hold one matrix per
// component, NumComponents(fh.Info.ChromaFormatIDC).
func WriteFrameHeader(w *apvbits.Writer, fh FrameHeader) error {
	if err := WriteFrameInfo(w, fh.Info); err != nil {
		return err
	}
	if err := w.Write(0, 8); err != nil { // reserved
		return err
	}

	colorPresent := uint32(0)
	if fh.ColorDesc != nil {
		colorPresent = 1
	}
	if err := w.Write(colorPresent, 1); err != nil {
		return err
	}
	if fh.ColorDesc != nil {
		cd := fh.ColorDesc
		if err := w.Write(uint32(cd.ColorPrimaries), 8); err != nil {
			return err
		}
		if err := w.Write(uint32(cd.Transfer), 8); err != nil {
			return err
		}
		if err := w.Write(uint32(cd.Matrix), 8); err != nil {
			return err
		}
		fr := uint32(0)
		if cd.FullRange {
			fr = 1
		}
		if err := w.Write(fr, 1); err != nil {
			return err
		}
	}

	useQM := uint32(0)
	if fh.QMatrix != nil {
		useQM = 1
	}
	if err := w.Write(useQM, 1); err != nil {
		return err
	}
	if fh.QMatrix != nil {
		for _, m := range fh.QMatrix {
			for _, v := range m {
				if err := w.Write(uint32(v), 8); err != nil {
					return err
				}
			}
		}
	}

	if err := w.Write(fh.TileWidthInMBs, 20); err != nil {
		return err
	}
	if err := w.Write(fh.TileHeightInMBs, 20); err != nil {
		return err
	}

	present := uint32(0)
	if fh.TileSizePresent {
		present = 1
	}
	if err := w.Write(present, 1); err != nil {
		return err
	}
	if fh.TileSizePresent {
		for _, ts := range fh.TileSizes {
			if err := w.Write(ts, 32); err != nil {
				return err
			}
		}
	}

	if err := w.Write(0, 8); err != nil { // reserved
		return err
	}
	return w.AlignToByte()
}

// ReadFrameHeader parses a frame_header structure.
func ReadFrameHeader(r *apvbits.Reader) (FrameHeader, error) {
	var fh FrameHeader

	fi, err := ReadFrameInfo(r)
	if err != nil {
		return fh, err
	}
	fh.Info = fi

	reserved, err := r.Read(8)
	if err != nil {
		return fh, err
	}
	if reserved != 0 {
		return fh, ErrReservedNonZero
	}

	colorPresent, err := r.Read1()
	if err != nil {
		return fh, err
	}
	if colorPresent {
		cd := &ColorDescription{}
		v, err := r.Read(8)
		if err != nil {
			return fh, err
		}
		cd.ColorPrimaries = uint8(v)
		v, err = r.Read(8)
		if err != nil {
			return fh, err
		}
		cd.Transfer = uint8(v)
		v, err = r.Read(8)
		if err != nil {
			return fh, err
		}
		cd.Matrix = uint8(v)
		fr, err := r.Read1()
		if err != nil {
			return fh, err
		}
		cd.FullRange = fr
		fh.ColorDesc = cd
	}

	useQM, err := r.Read1()
	if err != nil {
		return fh, err
	}
	if useQM {
		n := NumComponents(fi.ChromaFormatIDC)
		fh.QMatrix = make([][BlockCoeffs]uint8, n)
		for c := 0; c < n; c++ {
			for i := 0; i < BlockCoeffs; i++ {
				v, err := r.Read(8)
				if err != nil {
					return fh, err
				}
				if v == 0 {
					return fh, ErrMalformedBitstream
				}
				fh.QMatrix[c][i] = uint8(v)
			}
		}
	}

	fh.TileWidthInMBs, err = r.Read(20)
	if err != nil {
		return fh, err
	}
	fh.TileHeightInMBs, err = r.Read(20)
	if err != nil {
		return fh, err
	}
	if fh.TileWidthInMBs == 0 || fh.TileHeightInMBs == 0 {
		return fh, ErrMalformedBitstream
	}

	present, err := r.Read1()
	if err != nil {
		return fh, err
	}
	fh.TileSizePresent = present
	if present {
		cols, rows := TileGridSize(fi, fh.TileWidthInMBs, fh.TileHeightInMBs)
		n := cols * rows
		fh.TileSizes = make([]uint32, n)
		for i := 0; i < n; i++ {
			v, err := r.Read(32)
			if err != nil {
				return fh, err
			}
			fh.TileSizes[i] = v
		}
	}

	reserved, err = r.Read(8)
	if err != nil {
		return fh, err
	}
	if reserved != 0 {
		return fh, ErrReservedNonZero
	}
	r.AlignByte()

	return fh, nil
}
