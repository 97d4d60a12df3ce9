/*
NAME
  frameinfo.go

DESCRIPTION
  frameinfo.go serialises and parses the frame_info structure of §6:

	profile_idc:u8, level_idc:u8, band_idc:u3, reserved:u5,
	frame_width:u24, frame_height:u24,
	chroma_format_idc:u4, bit_depth_minus8:u4,
	capture_time_distance:u8, reserved:u8

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

package header

import (
	"github.com/pkg/errors"

	apvbits "github.com/ausocean/apv/codec/apv/bits"
)

// WriteFrameInfo writes fi's fixed-size frame_info structure.
func WriteFrameInfo(w *apvbits.Writer, fi FrameInfo) error {
	if err := w.Write(uint32(fi.ProfileIDC), 8); err != nil {
		return err
	}
	if err := w.Write(uint32(fi.LevelIDC), 8); err != nil {
		return err
	}
	if err := w.Write(uint32(fi.BandIDC), 3); err != nil {
		return err
	}
	if err := w.Write(0, 5); err != nil { // reserved
		return err
	}
	if err := w.Write(fi.Width, 24); err != nil {
		return err
	}
	if err := w.Write(fi.Height, 24); err != nil {
		return err
	}
	if err := w.Write(uint32(fi.ChromaFormatIDC), 4); err != nil {
		return err
	}
	if fi.BitDepth < 8 {
		return errors.New("header: bit depth below 8")
	}
	if err := w.Write(uint32(fi.BitDepth-8), 4); err != nil {
		return err
	}
	if err := w.Write(uint32(fi.CaptureTimeDistance), 8); err != nil {
		return err
	}
	return w.Write(0, 8) // reserved
}

// ReadFrameInfo parses a frame_info structure, validating reserved bits
// are zero and the chroma format is one of the legal, non-reserved codes.
func ReadFrameInfo(r *apvbits.Reader) (FrameInfo, error) {
	var fi FrameInfo

	v, err := r.Read(8)
	if err != nil {
		return fi, err
	}
	fi.ProfileIDC = uint8(v)

	v, err = r.Read(8)
	if err != nil {
		return fi, err
	}
	fi.LevelIDC = uint8(v)

	v, err = r.Read(3)
	if err != nil {
		return fi, err
	}
	fi.BandIDC = uint8(v)

	reserved, err := r.Read(5)
	if err != nil {
		return fi, err
	}
	if reserved != 0 {
		return fi, ErrReservedNonZero
	}

	fi.Width, err = r.Read(24)
	if err != nil {
		return fi, err
	}
	fi.Height, err = r.Read(24)
	if err != nil {
		return fi, err
	}

	v, err = r.Read(4)
	if err != nil {
		return fi, err
	}
	fi.ChromaFormatIDC = uint8(v)
	if !ValidChromaFormat(fi.ChromaFormatIDC) {
		return fi, ErrUnsupportedColor
	}

	v, err = r.Read(4)
	if err != nil {
		return fi, err
	}
	fi.BitDepth = uint8(v) + 8

	v, err = r.Read(8)
	if err != nil {
		return fi, err
	}
	fi.CaptureTimeDistance = uint8(v)

	reserved, err = r.Read(8)
	if err != nil {
		return fi, err
	}
	if reserved != 0 {
		return fi, ErrReservedNonZero
	}

	if fi.ChromaFormatIDC == Chroma422 && fi.Width%2 != 0 {
		return fi, ErrInvalidWidth
	}

	return fi, nil
}
