/*
NAME
  decode.go

DESCRIPTION
  decode.go implements DecodeAU (§4.9): split the framed access unit into
  PBUs, require the first to be AU-info, then dispatch each frame PBU's
  tiles across a worker pool for decode and route metadata PBUs into the
  caller-supplied container.

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

// DecodeAU parses a framed access unit (au_size-prefixed PBU sequence, per
// §3/§6), returning every coded frame and writing recovered metadata
// payloads into metadata.
func DecodeAU(data []byte, metadata *meta.Container, opts Options) ([]DecodedFrame, error) {
	body, _, err := header.SplitAU(data)
	if err != nil {
		return nil, errors.Wrap(err, "au: splitting access unit")
	}
	pbus, err := header.ReadAllPBUs(body)
	if err != nil {
		return nil, errors.Wrap(err, "au: reading pbus")
	}
	if len(pbus) == 0 || pbus[0].Type != header.PBUAUInfo {
		return nil, ErrMissingAUInfo
	}

	var frames []DecodedFrame
	for _, p := range pbus[1:] {
		switch {
		case header.IsFramePBU(p.Type):
			f, err := decodeFrame(p, opts)
			if err != nil {
				return nil, errors.Wrap(err, "au: decoding frame")
			}
			frames = append(frames, f)
		case p.Type == header.PBUMetadata:
			if metadata != nil {
				if err := metadata.DecodeGroupPayload(p.GroupID, p.Payload); err != nil {
					return nil, errors.Wrap(err, "au: decoding metadata")
				}
			}
		case p.Type == header.PBUFiller:
			// Filler PBUs carry no semantic payload.
		}
	}
	return frames, nil
}

func decodeFrame(p header.PBU, opts Options) (DecodedFrame, error) {
	var out DecodedFrame
	r := apvbits.NewReader(p.Payload)
	fh, err := header.ReadFrameHeader(r)
	if err != nil {
		return out, errors.Wrap(err, "au: reading frame header")
	}

	numComponents := header.NumComponents(fh.Info.ChromaFormatIDC)
	cols, rows := header.TileGridSize(fh.Info, fh.TileWidthInMBs, fh.TileHeightInMBs)
	numTiles := cols * rows

	remainder := p.Payload[r.Pos():]
	tileRanges, err := splitTiles(remainder, numTiles, fh)
	if err != nil {
		return out, err
	}

	planes := make([]*tile.Plane, numComponents)
	for c := 0; c < numComponents; c++ {
		w, h := tile.ComponentPlaneSize(fh.Info.ChromaFormatIDC, c, int(fh.Info.Width), int(fh.Info.Height))
		planes[c] = tile.NewPlane(w, h)
	}

	errs := make([]error, numTiles)
	jobs := make(chan int)
	var wg sync.WaitGroup
	workers := numWorkers(opts.Threads, numTiles)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				errs[t] = decodeTile(tileRanges[t], t, cols, numComponents, fh, planes, opts.Kernels)
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
			return out, err
		}
	}

	out.PBUType = p.Type
	out.GroupID = p.GroupID
	out.Info = fh.Info
	out.ColorDesc = fh.ColorDesc
	out.Planes = planes
	return out, nil
}

// splitTiles partitions remainder into the byte range of each tile
// (tile_size prefix included), using fh.TileSizes when present (random
// access without touching the tile stream) or reading each tile's own
// mandatory tile_size:u32 field otherwise.
func splitTiles(remainder []byte, numTiles int, fh header.FrameHeader) ([][]byte, error) {
	ranges := make([][]byte, numTiles)
	if fh.TileSizePresent {
		off := 0
		for t := 0; t < numTiles; t++ {
			sz := int(fh.TileSizes[t])
			if off+sz > len(remainder) {
				return nil, errors.Wrap(header.ErrMalformedBitstream, "au: tile size overruns frame payload")
			}
			ranges[t] = remainder[off : off+sz]
			off += sz
		}
		return ranges, nil
	}

	off := 0
	for t := 0; t < numTiles; t++ {
		_, n, err := header.SplitTileSize(remainder[off:])
		if err != nil {
			return nil, errors.Wrapf(err, "au: reading tile %d size prefix", t)
		}
		ranges[t] = remainder[off : off+n]
		off += n
	}
	return ranges, nil
}

func decodeTile(tileBytes []byte, t, cols, numComponents int, fh header.FrameHeader, planes []*tile.Plane, kernels transform.KernelSet) error {
	body, _, err := header.SplitTileSize(tileBytes)
	if err != nil {
		return errors.Wrapf(err, "au: reading tile %d size prefix", t)
	}

	r := apvbits.NewReader(body)
	th, err := header.ReadTileHeader(r, numComponents)
	if err != nil {
		return errors.Wrapf(err, "au: reading tile %d header", t)
	}

	tileCol := t % cols
	tileRow := t / cols

	off := r.Pos()
	for c := 0; c < numComponents; c++ {
		sz := int(th.TileDataSize[c])
		if off+sz > len(body) {
			return errors.Wrapf(header.ErrMalformedBitstream, "au: tile %d component %d data overruns tile", t, c)
		}
		componentBytes := body[off : off+sz]
		off += sz

		mbW, mbH := tile.ComponentMBSize(fh.Info.ChromaFormatIDC, c)
		originX := tileCol * int(fh.TileWidthInMBs) * mbW
		originY := tileRow * int(fh.TileHeightInMBs) * mbH

		var qm *transform.QMatrix
		if fh.QMatrix != nil {
			m := transform.QMatrix(fh.QMatrix[c])
			qm = &m
		} else {
			identity := transform.IdentityQMatrix()
			qm = &identity
		}
		params := tile.ComponentParams{
			QP:       int(th.TileQP[c]),
			BitDepth: int(fh.Info.BitDepth),
			QMatrix:  qm,
			Kernels:  kernels,
		}

		cr := apvbits.NewReader(componentBytes)
		var state vlc.State
		if err := tile.DecodeComponent(cr, planes[c], originX, originY, int(fh.TileWidthInMBs), int(fh.TileHeightInMBs), mbW, mbH, params, &state); err != nil {
			return errors.Wrapf(err, "au: decoding tile %d component %d", t, c)
		}
	}
	return nil
}
