/*
NAME
  types.go

DESCRIPTION
  types.go defines the frame/AU orchestrator's input and output types: the
  per-frame encode request (FrameInput), the per-frame decode result
  (DecodedFrame), and the shared encode/decode options (worker count,
  kernel set, framing mode).

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

// Package au implements the frame/access-unit orchestrator of §4.9: it
// assembles one or more coded frames and caller-supplied metadata into a
// framed access unit, fanning tile work for each frame out across a
// worker pool and barrier, and mirrors the same structure on decode.
package au

import (
	"github.com/ausocean/apv/codec/apv/header"
	"github.com/ausocean/apv/codec/apv/rdoq"
	"github.com/ausocean/apv/codec/apv/tile"
	"github.com/ausocean/apv/codec/apv/transform"
)

// FrameInput describes one frame to encode: its frame-info, optional
// colour description, per-component sample planes (already padded to a
// whole number of macroblocks by the caller) and per-component coding
// parameters.
type FrameInput struct {
	PBUType uint8
	GroupID uint16

	Info      header.FrameInfo
	ColorDesc *header.ColorDescription

	TileWidthInMBs, TileHeightInMBs uint32

	// Planes holds one padded sample plane per coded component, in
	// component order (luma first).
	Planes []*tile.Plane

	// QMatrix holds one quantization matrix per component; a nil entry
	// uses the identity matrix.
	QMatrix []*transform.QMatrix

	// QP holds one quantizer value per component.
	QP []int

	// RDOQ holds one optional RDOQ parameter set per component; a nil
	// entry disables RDOQ for that component.
	RDOQ []*rdoq.Params

	// Recon, if non-nil, receives one locally-reconstructed sample plane
	// per component (nil entries skip reconstruction for that component),
	// satisfying the façade's optional recon_out output of §4.10.
	Recon []*tile.Plane
}

// DecodedFrame is one frame recovered by DecodeAU.
type DecodedFrame struct {
	PBUType uint8
	GroupID uint16

	Info      header.FrameInfo
	ColorDesc *header.ColorDescription

	// Planes holds one padded sample plane per coded component, matching
	// the layout FrameInput.Planes used on encode.
	Planes []*tile.Plane
}

// Options bundles encoder/decoder construction parameters shared by
// EncodeAU and DecodeAU: the kernel set selected at construction time (per
// §4.3/§9) and the worker-pool size (per §4.7's thread auto-selection,
// already resolved by the caller).
type Options struct {
	Kernels transform.KernelSet
	Threads int

	// RawFraming makes EncodeAU emit the unframed bitstream format: frame
	// and metadata payloads concatenated directly, with no AU-info PBU, no
	// PBU headers and no AU length prefix. DecodeAU does not read it and
	// always parses the framed format.
	RawFraming bool
}

func numWorkers(threads, tasks int) int {
	if threads <= 0 {
		threads = 1
	}
	if tasks < threads {
		threads = tasks
	}
	if threads < 1 {
		threads = 1
	}
	return threads
}
