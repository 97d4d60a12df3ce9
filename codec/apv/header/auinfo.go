/*
NAME
  auinfo.go

DESCRIPTION
  auinfo.go serialises and parses the AU-info PBU payload of §6:

	num_frames:u16,
	(pbu_type:u8, group_id:u16, reserved:u8, frame_info)*,
	reserved:u8, byte_align

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

package header

import (
	apvbits "github.com/ausocean/apv/codec/apv/bits"
)

// WriteAUInfo writes the AU-info payload for info.
func WriteAUInfo(w *apvbits.Writer, info AUInfo) error {
	if err := w.Write(uint32(len(info.Frames)), 16); err != nil {
		return err
	}
	for _, f := range info.Frames {
		if err := w.Write(uint32(f.PBUType), 8); err != nil {
			return err
		}
		if err := w.Write(uint32(f.GroupID), 16); err != nil {
			return err
		}
		if err := w.Write(0, 8); err != nil { // reserved
			return err
		}
		if err := WriteFrameInfo(w, f.FrameInfo); err != nil {
			return err
		}
	}
	if err := w.Write(0, 8); err != nil { // reserved
		return err
	}
	return w.AlignToByte()
}

// ReadAUInfo parses an AU-info payload.
func ReadAUInfo(r *apvbits.Reader) (AUInfo, error) {
	var info AUInfo

	n, err := r.Read(16)
	if err != nil {
		return info, err
	}
	info.Frames = make([]AUInfoEntry, n)
	for i := range info.Frames {
		t, err := r.Read(8)
		if err != nil {
			return info, err
		}
		if !IsFramePBU(uint8(t)) {
			return info, ErrMalformedBitstream
		}
		info.Frames[i].PBUType = uint8(t)

		g, err := r.Read(16)
		if err != nil {
			return info, err
		}
		info.Frames[i].GroupID = uint16(g)

		reserved, err := r.Read(8)
		if err != nil {
			return info, err
		}
		if reserved != 0 {
			return info, ErrReservedNonZero
		}

		fi, err := ReadFrameInfo(r)
		if err != nil {
			return info, err
		}
		info.Frames[i].FrameInfo = fi
	}

	reserved, err := r.Read(8)
	if err != nil {
		return info, err
	}
	if reserved != 0 {
		return info, ErrReservedNonZero
	}
	r.AlignByte()

	return info, nil
}
