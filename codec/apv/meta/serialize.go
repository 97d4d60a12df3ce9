/*
NAME
  serialize.go

DESCRIPTION
  serialize.go implements the SEI-style emulation-free byte encoding of
  §4.6/§6 used for metadata PBU payloads: a payload's type and size are
  each coded as a run of 0xFF bytes terminated by the final (< 0xFF) byte,
  with the real value being 255 times the run length plus that final byte.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

package meta

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

var errTruncated = errors.New("meta: truncated metadata payload")

// appendFF appends the SEI-style 0xFF-run encoding of v to dst.
func appendFF(dst []byte, v int) []byte {
	for v >= 0xFF {
		dst = append(dst, 0xFF)
		v -= 0xFF
	}
	return append(dst, byte(v))
}

// readFF reads one SEI-style 0xFF-run encoded value from buf starting at
// off, returning the value and the number of bytes consumed.
func readFF(buf []byte, off int) (v int, n int, err error) {
	start := off
	for {
		if off >= len(buf) {
			return 0, 0, errTruncated
		}
		b := buf[off]
		off++
		v += int(b)
		if b != 0xFF {
			break
		}
	}
	return v, off - start, nil
}

// appendPayload appends one metadata_payload (type, size, data) in the
// SEI-style encoding to dst.
func appendPayload(dst []byte, e Entry) []byte {
	dst = appendFF(dst, e.Kind)
	dst = appendFF(dst, len(e.Data))
	dst = append(dst, e.Data...)
	return dst
}

// EncodeGroup serialises every entry belonging to groupID into the
// metadata_size-prefixed payload of a single METADATA PBU, per §6.
// User-defined entries are prefixed with their 16-byte UUID as the first
// 16 bytes of their data, per §3's "user-defined (>=16 bytes, first 16
// bytes = UUID)" rule.
func (c *Container) EncodeGroup(groupID uint16) []byte {
	c.mu.Lock()
	list := append([]entry(nil), c.groups[groupID]...)
	c.mu.Unlock()

	var body []byte
	for _, en := range list {
		data := en.data
		if en.key.kind == TypeUserDefined {
			full := make([]byte, 0, 16+len(data))
			full = append(full, en.key.uuid[:]...)
			full = append(full, data...)
			data = full
		}
		body = appendPayload(body, Entry{Kind: en.key.kind, Data: data})
	}

	out := make([]byte, 4, 4+len(body))
	binary.BigEndian.PutUint32(out[0:4], uint32(len(body)))
	return append(out, body...)
}

// GroupIDs returns every group ID currently holding at least one payload,
// in insertion order.
func (c *Container) GroupIDs() []uint16 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]uint16(nil), c.order...)
}

// DecodeGroupPayload parses one METADATA PBU payload (metadata_size
// followed by one or more metadata_payload records) and calls Set for
// each decoded entry against groupID.
func (c *Container) DecodeGroupPayload(groupID uint16, payload []byte) error {
	if len(payload) < 4 {
		return errTruncated
	}
	size := binary.BigEndian.Uint32(payload[0:4])
	body := payload[4:]
	if uint32(len(body)) < size {
		return errTruncated
	}
	body = body[:size]

	off := 0
	for off < len(body) {
		kind, n, err := readFF(body, off)
		if err != nil {
			return err
		}
		off += n

		size, n, err := readFF(body, off)
		if err != nil {
			return err
		}
		off += n

		if off+size > len(body) {
			return errTruncated
		}
		data := body[off : off+size]
		off += size

		var uuid [16]byte
		if kind == TypeUserDefined {
			if len(data) < 16 {
				return ErrMalformed
			}
			copy(uuid[:], data[:16])
			data = data[16:]
		}
		if err := c.Set(groupID, kind, data, uuid); err != nil {
			return err
		}
	}
	return nil
}
