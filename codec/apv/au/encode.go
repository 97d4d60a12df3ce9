/*
NAME
  encode.go

DESCRIPTION
  encode.go implements EncodeAU (§4.9): build the AU-info PBU, encode each
  frame's tiles across a worker pool with a barrier, append metadata PBUs
  for every group holding payloads, and frame the result as a length-
  prefixed access unit (or leave it unframed, per Options.RawFraming).

  Tile encode results are collected into a slice pre-sized one entry per
  tile; each worker writes only to the slot its own tile index owns, so no
  locking is needed beyond the closing WaitGroup barrier, per §9's "no
  shared mutable state among tasks beyond disjoint bitstream ranges".

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

package au

import (
	"sync"

	"github.com/pkg/errors"

	apvbits "github.com/ausocean/apv/codec/apv/bits"
	"github.com/ausocean/apv/codec/apv/header"
	"github.com/ausocean/apv/codec/apv/meta"
	"github.com/ausocean/apv/codec/apv/tile"
	"github.com/ausocean/apv/codec/apv/transform"
	"github.com/ausocean/apv/codec/apv/vlc"
)

// EncodeAU encodes frames and metadata into one access unit.
func EncodeAU(frames []FrameInput, metadata *meta.Container, opts Options) ([]byte, error) {
	for _, f := range frames {
		if err := checkComponents(f); err != nil {
			return nil, err
		}
	}

	var out []byte

	if !opts.RawFraming {
		infoPayload, err := encodeAUInfo(frames)
		if err != nil {
			return nil, errors.Wrap(err, "au: encoding au-info")
		}
		out = header.AppendPBU(out, header.PBU{Type: header.PBUAUInfo, Payload: infoPayload})
	}

	for _, f := range frames {
		payload, err := encodeFrame(f, opts)
		if err != nil {
			return nil, errors.Wrapf(err, "au: encoding frame (pbu_type=%d, group=%d)", f.PBUType, f.GroupID)
		}
		if opts.RawFraming {
			out = append(out, payload...)
		} else {
			out = header.AppendPBU(out, header.PBU{Type: f.PBUType, GroupID: f.GroupID, Payload: payload})
		}
	}

	if metadata != nil {
		for _, gid := range metadata.GroupIDs() {
			payload := metadata.EncodeGroup(gid)
			if opts.RawFraming {
				out = append(out, payload...)
			} else {
				out = header.AppendPBU(out, header.PBU{Type: header.PBUMetadata, GroupID: gid, Payload: payload})
			}
		}
	}

	if opts.RawFraming {
		return out, nil
	}
	return header.AppendAU(nil, out), nil
}

func checkComponents(f FrameInput) error {
	n := header.NumComponents(f.Info.ChromaFormatIDC)
	if len(f.Planes) != n || len(f.QMatrix) != n || len(f.QP) != n || len(f.RDOQ) != n {
		return ErrComponentMismatch
	}
	if f.Recon != nil && len(f.Recon) != n {
		return ErrComponentMismatch
	}
	return nil
}

func encodeAUInfo(frames []FrameInput) ([]byte, error) {
	info := header.AUInfo{Frames: make([]header.AUInfoEntry, len(frames))}
	for i, f := range frames {
		info.Frames[i] = header.AUInfoEntry{PBUType: f.PBUType, GroupID: f.GroupID, FrameInfo: f.Info}
	}
	buf := make([]byte, 64+96*len(frames))
	w := apvbits.NewWriter(buf)
	if err := header.WriteAUInfo(w, info); err != nil {
		return nil, err
	}
	return w.Sink()
}

// encodeFrame encodes one frame's tiles (fanned out across opts.Threads
// workers) and assembles the frame header (with its now-known tile sizes)
// followed by the tile payloads, per §4.9.
func encodeFrame(f FrameInput, opts Options) ([]byte, error) {
	numComponents := header.NumComponents(f.Info.ChromaFormatIDC)
	cols, rows := header.TileGridSize(f.Info, f.TileWidthInMBs, f.TileHeightInMBs)
	numTiles := cols * rows

	tiles := make([][]byte, numTiles)
	errs := make([]error, numTiles)

	jobs := make(chan int)
	var wg sync.WaitGroup
	workers := numWorkers(opts.Threads, numTiles)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				tiles[t], errs[t] = encodeTile(f, t, cols, numComponents, opts.Kernels)
			}
		}()
	}
	for t := 0; t < numTiles; t++ {
		jobs <- t
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	tileSizes := make([]uint32, numTiles)
	totalTileBytes := 0
	for t, tb := range tiles {
		tileSizes[t] = uint32(len(tb))
		totalTileBytes += len(tb)
	}

	// Signal the matrices used whenever any was supplied; nil ones are the identity.
	var qmatrix [][header.BlockCoeffs]uint8
	for _, m := range f.QMatrix {
		if m != nil {
			qmatrix = make([][header.BlockCoeffs]uint8, numComponents)
			break
		}
	}
	for c := range qmatrix {
		qmatrix[c] = transform.IdentityQMatrix()
		if f.QMatrix[c] != nil {
			qmatrix[c] = *f.QMatrix[c]
		}
	}

	fh := header.FrameHeader{
		Info:            f.Info,
		ColorDesc:       f.ColorDesc,
		TileWidthInMBs:  f.TileWidthInMBs,
		TileHeightInMBs: f.TileHeightInMBs,
		QMatrix:         qmatrix,
		TileSizePresent: true,
		TileSizes:       tileSizes,
	}

	hdrBuf := make([]byte, 256+8*numTiles+len(qmatrix)*header.BlockCoeffs)
	hw := apvbits.NewWriter(hdrBuf)
	if err := header.WriteFrameHeader(hw, fh); err != nil {
		return nil, errors.Wrap(err, "au: writing frame header")
	}
	hdrBytes, err := hw.Sink()
	if err != nil {
		return nil, err
	}

	payload := make([]byte, 0, len(hdrBytes)+totalTileBytes)
	payload = append(payload, hdrBytes...)
	for _, tb := range tiles {
		payload = append(payload, tb...)
	}
	return payload, nil
}

// encodeTile encodes every component of tile index t (row-major over the
// frame's tile grid), returning the tile's mandatory tile_size prefix
// followed by its fixed tile_header and its per-component coded payloads.
func encodeTile(f FrameInput, t, cols, numComponents int, kernels transform.KernelSet) ([]byte, error) {
	tileCol := t % cols
	tileRow := t / cols

	componentSizes := make([]uint32, numComponents)
	componentPayloads := make([][]byte, numComponents)
	qps := make([]uint8, numComponents)

	for c := 0; c < numComponents; c++ {
		mbW, mbH := tile.ComponentMBSize(f.Info.ChromaFormatIDC, c)
		originX := tileCol * int(f.TileWidthInMBs) * mbW
		originY := tileRow * int(f.TileHeightInMBs) * mbH

		qm := f.QMatrix[c]
		if qm == nil {
			identity := transform.IdentityQMatrix()
			qm = &identity
		}
		params := tile.ComponentParams{
			QP:       f.QP[c],
			BitDepth: int(f.Info.BitDepth),
			QMatrix:  qm,
			Kernels:  kernels,
			RDOQ:     f.RDOQ[c],
		}

		var recon *tile.Plane
		if c < len(f.Recon) {
			recon = f.Recon[c]
		}

		buf := make([]byte, componentBufferBound(int(f.TileWidthInMBs)*mbW, int(f.TileHeightInMBs)*mbH, int(f.Info.BitDepth)))
		w := apvbits.NewWriter(buf)
		var state vlc.State
		if err := tile.EncodeComponent(w, f.Planes[c], originX, originY, int(f.TileWidthInMBs), int(f.TileHeightInMBs), mbW, mbH, params, &state, recon); err != nil {
			return nil, errors.Wrapf(err, "au: encoding tile %d component %d", t, c)
		}
		out, err := w.Sink()
		if err != nil {
			return nil, err
		}
		componentPayloads[c] = out
		componentSizes[c] = uint32(len(out))
		qps[c] = uint8(f.QP[c])
	}

	th := header.TileHeader{
		HeaderSize:   uint16(header.TileHeaderByteSize(numComponents)),
		TileIndex:    uint16(t),
		TileDataSize: componentSizes,
		TileQP:       qps,
	}
	hdrBuf := make([]byte, header.TileHeaderByteSize(numComponents)+8)
	hw := apvbits.NewWriter(hdrBuf)
	if err := header.WriteTileHeader(hw, th); err != nil {
		return nil, err
	}
	hdrBytes, err := hw.Sink()
	if err != nil {
		return nil, err
	}

	total := len(hdrBytes)
	for _, cp := range componentPayloads {
		total += len(cp)
	}
	body := make([]byte, 0, total)
	body = append(body, hdrBytes...)
	for _, cp := range componentPayloads {
		body = append(body, cp...)
	}
	return header.AppendTileSize(body), nil
}

// componentBufferBound returns a generously-sized bitstream buffer for one
// tile component, bounded by the tile's pixel count scaled by bit depth
// plus a fixed margin, per §4.9's "size bounded by tile_pixel_count *
// (bit_depth + margin) so writes never overlap".
func componentBufferBound(width, height, bitDepth int) int {
	const marginBits = 8
	bits := width * height * (bitDepth + marginBits)
	return bits/8 + 64
}
