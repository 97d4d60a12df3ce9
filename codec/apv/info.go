/*
NAME
  info.go

DESCRIPTION
  info.go implements Info, the façade's fast bitstream probe of §4.10:
  parse only the AU-info PBU (frame count, pbu_type/group_id and
  frame_info per frame) without touching any tile payload, so stream
  parameters can be inspected independently of full tile decode.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

package apv

import (
	"github.com/pkg/errors"

	"github.com/ausocean/apv/codec/apv/au"
	apvbits "github.com/ausocean/apv/codec/apv/bits"
	"github.com/ausocean/apv/codec/apv/header"
)

// Info describes one access unit's framing without decoding any tile data.
type Info struct {
	Frames []header.AUInfoEntry
}

// ReadInfo parses only the AU-info PBU at the head of bitstream, returning
// its per-frame pbu_type/group_id/frame_info entries. It fails with
// au.ErrMissingAUInfo if the access unit does not begin with an AU-info
// PBU, per §3.
func ReadInfo(bitstream []byte) (Info, error) {
	body, _, err := header.SplitAU(bitstream)
	if err != nil {
		return Info{}, errors.Wrap(err, "apv: splitting access unit")
	}
	if len(body) == 0 {
		return Info{}, au.ErrMissingAUInfo
	}
	p, _, err := header.ReadPBU(body)
	if err != nil {
		return Info{}, errors.Wrap(err, "apv: reading first pbu")
	}
	if p.Type != header.PBUAUInfo {
		return Info{}, au.ErrMissingAUInfo
	}

	r := apvbits.NewReader(p.Payload)
	parsed, err := header.ReadAUInfo(r)
	if err != nil {
		return Info{}, errors.Wrap(err, "apv: reading au-info")
	}
	return Info{Frames: parsed.Frames}, nil
}
