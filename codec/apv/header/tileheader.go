/*
NAME
  tileheader.go

DESCRIPTION
  tileheader.go serialises and parses the fixed tile_header structure of
  §4.5/§6: 5 bytes plus 5 bytes per component.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

package header

import (
	"encoding/binary"

	"github.com/pkg/errors"

	apvbits "github.com/ausocean/apv/codec/apv/bits"
)

// WriteTileHeader writes th. len(th.TileDataSize) and len(th.TileQP) must
// both equal numComponents.
func WriteTileHeader(w *apvbits.Writer, th TileHeader) error {
	if err := w.Write(uint32(th.HeaderSize), 16); err != nil {
		return err
	}
	if err := w.Write(uint32(th.TileIndex), 16); err != nil {
		return err
	}
	for _, sz := range th.TileDataSize {
		if err := w.Write(sz, 32); err != nil {
			return err
		}
	}
	for _, qp := range th.TileQP {
		if err := w.Write(uint32(qp), 8); err != nil {
			return err
		}
	}
	if err := w.Write(0, 8); err != nil { // reserved
		return err
	}
	return w.AlignToByte()
}

// ReadTileHeader parses a tile_header for a frame with numComponents coded
// components.
func ReadTileHeader(r *apvbits.Reader, numComponents int) (TileHeader, error) {
	var th TileHeader

	v, err := r.Read(16)
	if err != nil {
		return th, err
	}
	th.HeaderSize = uint16(v)

	v, err = r.Read(16)
	if err != nil {
		return th, err
	}
	th.TileIndex = uint16(v)

	th.TileDataSize = make([]uint32, numComponents)
	for c := 0; c < numComponents; c++ {
		sz, err := r.Read(32)
		if err != nil {
			return th, err
		}
		if sz == 0 {
			return th, ErrMalformedBitstream
		}
		th.TileDataSize[c] = sz
	}

	th.TileQP = make([]uint8, numComponents)
	for c := 0; c < numComponents; c++ {
		qp, err := r.Read(8)
		if err != nil {
			return th, err
		}
		th.TileQP[c] = uint8(qp)
	}

	reserved, err := r.Read(8)
	if err != nil {
		return th, err
	}
	if reserved != 0 {
		return th, ErrReservedNonZero
	}
	r.AlignByte()

	return th, nil
}

// TileHeaderByteSize returns the encoded byte size of a tile_header for
// numComponents components: 5 fixed bytes plus 5 bytes per component.
func TileHeaderByteSize(numComponents int) int {
	return 5 + 5*numComponents
}

// AppendTileSize prepends a tile's mandatory tile_size:u32 field, per
// §6's `tile := tile_size:u32, tile_header, per-component coded data`
// grammar. tileSize counts the bytes that follow it: tileBody is
// tile_header concatenated with every component's coded payload.
func AppendTileSize(tileBody []byte) []byte {
	out := make([]byte, 4+len(tileBody))
	binary.BigEndian.PutUint32(out[0:4], uint32(len(tileBody)))
	copy(out[4:], tileBody)
	return out
}

// SplitTileSize reads the tile_size:u32 field from the start of buf,
// returning the declared tile body (tile_header plus component data) and
// the number of bytes the whole prefixed tile occupies in buf.
func SplitTileSize(buf []byte) (body []byte, total int, err error) {
	if len(buf) < 4 {
		return nil, 0, errors.Wrap(ErrMalformedBitstream, "tile: truncated tile_size prefix")
	}
	size := binary.BigEndian.Uint32(buf[0:4])
	total = 4 + int(size)
	if total > len(buf) {
		return nil, 0, errors.Wrap(ErrMalformedBitstream, "tile: truncated tile body")
	}
	return buf[4:total], total, nil
}
