/*
NAME
  pbu.go

DESCRIPTION
  pbu.go implements the generic PBU/AU length-prefixed framing of §3/§6:

	AU  := au_size:u32, pbu+
	PBU := pbu_size:u32, pbu_type:u8, group_id:u16, reserved:u8(=0), payload

  This is the raw-AU-format framing: each unit is a fixed-size length
  prefix and field header followed by its payload, with reserved bits
  checked to be zero on read.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

package header

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// pbuHeaderSize is the number of bytes the pbu_size field counts that
// precede the payload: pbu_type(1) + group_id(2) + reserved(1).
const pbuHeaderSize = 1 + 2 + 1

// PBU is one framed Picture Bitstream Unit.
type PBU struct {
	Type    uint8
	GroupID uint16
	Payload []byte
}

// EncodedSize returns the number of bytes this PBU occupies once framed,
// including its own 4-byte size prefix.
func (p PBU) EncodedSize() int {
	return 4 + pbuHeaderSize + len(p.Payload)
}

// AppendPBU appends p's framed encoding (size-prefixed) to dst and returns
// the extended slice.
func AppendPBU(dst []byte, p PBU) []byte {
	size := uint32(pbuHeaderSize + len(p.Payload))
	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[0:4], size)
	hdr[4] = p.Type
	binary.BigEndian.PutUint16(hdr[5:7], p.GroupID)
	hdr[7] = 0 // reserved
	dst = append(dst, hdr[:]...)
	dst = append(dst, p.Payload...)
	return dst
}

// ReadPBU parses one PBU starting at the beginning of buf, returning it
// along with the number of bytes consumed (the PBU's own size prefix plus
// its declared size).
func ReadPBU(buf []byte) (PBU, int, error) {
	if len(buf) < 4 {
		return PBU{}, 0, errors.Wrap(ErrMalformedBitstream, "pbu: truncated size prefix")
	}
	size := binary.BigEndian.Uint32(buf[0:4])
	if int(size) < pbuHeaderSize {
		return PBU{}, 0, errors.Wrap(ErrMalformedBitstream, "pbu: size smaller than header")
	}
	total := 4 + int(size)
	if total > len(buf) {
		return PBU{}, 0, errors.Wrap(ErrMalformedBitstream, "pbu: truncated payload")
	}
	body := buf[4:total]
	p := PBU{
		Type:    body[0],
		GroupID: binary.BigEndian.Uint16(body[1:3]),
	}
	if body[3] != 0 {
		return PBU{}, 0, ErrReservedNonZero
	}
	p.Payload = body[pbuHeaderSize:]
	return p, total, nil
}

// AppendAU wraps a fully-assembled sequence of already-framed PBU bytes
// (as produced by repeated AppendPBU) with the AU's own 4-byte size
// prefix, per §6's `AU := au_size:u32, pbu+`.
func AppendAU(dst []byte, pbus []byte) []byte {
	var sz [4]byte
	binary.BigEndian.PutUint32(sz[:], uint32(len(pbus)))
	dst = append(dst, sz[:]...)
	dst = append(dst, pbus...)
	return dst
}

// SplitAU reads the au_size prefix from buf and returns the AU's PBU
// region and the number of bytes the whole framed AU (prefix included)
// occupies.
func SplitAU(buf []byte) (pbuRegion []byte, total int, err error) {
	if len(buf) < 4 {
		return nil, 0, errors.Wrap(ErrMalformedBitstream, "au: truncated size prefix")
	}
	size := binary.BigEndian.Uint32(buf[0:4])
	total = 4 + int(size)
	if total > len(buf) {
		return nil, 0, errors.Wrap(ErrMalformedBitstream, "au: truncated body")
	}
	return buf[4:total], total, nil
}

// ReadAllPBUs parses every PBU in a fully-read AU body (as returned by
// SplitAU), in order.
func ReadAllPBUs(body []byte) ([]PBU, error) {
	var pbus []PBU
	off := 0
	for off < len(body) {
		p, n, err := ReadPBU(body[off:])
		if err != nil {
			return nil, errors.Wrapf(err, "au: parsing pbu at offset %d", off)
		}
		pbus = append(pbus, p)
		off += n
	}
	return pbus, nil
}
