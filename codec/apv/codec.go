/*
NAME
  codec.go

DESCRIPTION
  codec.go implements the public façade of §4.10: Encoder and Decoder
  instances constructed from a validated Config, wrapping the C9
  orchestrator (codec/apv/au) with the kernel set selected once at
  construction (§4.3, §9) and a timing/size Stat returned alongside every
  encode/decode call.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

// Package apv is the public façade of the APV codec core: construct an
// Encoder or Decoder from a Config, then call Encode/Decode to convert
// between FrameInput/DecodedFrame values and framed access-unit bitstreams.
// FrameInput and DecodedFrame from codec/apv/au are re-exported here; their
// fields use types from the header, tile and transform packages.
package apv

import (
	"time"

	"github.com/pkg/errors"

	"github.com/ausocean/apv/codec/apv/au"
	"github.com/ausocean/apv/codec/apv/meta"
	"github.com/ausocean/apv/codec/apv/param"
	"github.com/ausocean/apv/codec/apv/transform"
	"github.com/ausocean/utils/logging"
)

// Log receives diagnostic output for malformed input, tile failures and
// auto-resolved parameters. Callers that don't set it get silent operation;
// library code never panics or writes to stderr directly.
var Log logging.Logger

// Re-exported so callers can name FrameInput and DecodedFrame without
// importing codec/apv/au.
type (
	FrameInput   = au.FrameInput
	DecodedFrame = au.DecodedFrame
)

// Stat reports the outcome of one Encode or Decode call, satisfying
// §4.10's stat output parameter.
type Stat struct {
	// BytesOut is the total size of the bitstream produced (Encode) or
	// consumed (Decode).
	BytesOut int
	// Frames is the number of frames encoded or decoded.
	Frames int
	// Elapsed is the wall-clock duration of the call.
	Elapsed time.Duration
}

// Encoder encodes frames into framed (or raw, per Config.RawAUFraming)
// access-unit bitstreams using parameters resolved once at construction.
type Encoder struct {
	resolved param.Resolved
	cfg      Config
	kernels  transform.KernelSet
}

// New validates cfg (§4.7) and constructs an Encoder, selecting a kernel
// set for the running CPU (§4.3, §9). The returned error, if any, is one of
// the sentinels Code maps to a negative result.
func New(cfg Config) (*Encoder, error) {
	resolved, err := param.Validate(cfg.Config)
	if err != nil {
		return nil, errors.Wrap(err, "apv: validating config")
	}
	if Log != nil {
		Log.Debug("apv: resolved config", "level_idc", resolved.LevelIDC, "bitrate_kbps", resolved.BitrateKbps,
			"tile_width_mbs", resolved.TileWidthInMBs, "tile_height_mbs", resolved.TileHeightInMBs, "threads", resolved.Threads)
	}
	return &Encoder{resolved: resolved, cfg: cfg, kernels: transform.DetectKernelSet()}, nil
}

// Resolved returns the concrete parameter values New resolved from cfg's
// auto fields.
func (e *Encoder) Resolved() param.Resolved { return e.resolved }

// Close releases any resources held by e. Encoder holds none beyond Go
// garbage-collected memory; Close exists for symmetry with the façade's
// create/delete lifecycle of §4.10 and so callers can defer it
// unconditionally.
func (e *Encoder) Close() error { return nil }

// Encode encodes frames and metadata into one access-unit bitstream, fixing
// up each frame's tile grid and thread count to the values New resolved
// from its Config (overriding whatever TileWidthInMBs/TileHeightInMBs the
// caller set on each FrameInput) and filling in any FrameInput.QP entry
// left at zero with the configured DefaultQP.
func (e *Encoder) Encode(frames []FrameInput, metadata *meta.Container) ([]byte, Stat, error) {
	start := time.Now()

	prepared := make([]FrameInput, len(frames))
	for i, f := range frames {
		f.TileWidthInMBs = e.resolved.TileWidthInMBs
		f.TileHeightInMBs = e.resolved.TileHeightInMBs
		f.Info.LevelIDC = e.resolved.LevelIDC
		for c := range f.QP {
			if f.QP[c] == 0 {
				f.QP[c] = int(e.cfg.DefaultQP)
			}
		}
		prepared[i] = f
	}

	out, err := au.EncodeAU(prepared, metadata, au.Options{
		Kernels:    e.kernels,
		Threads:    e.resolved.Threads,
		RawFraming: e.cfg.RawAUFraming(),
	})
	stat := Stat{BytesOut: len(out), Frames: len(frames), Elapsed: time.Since(start)}
	if err != nil {
		if Log != nil {
			Log.Error("apv: encode failed", "error", err)
		}
		return nil, stat, err
	}
	return out, stat, nil
}

// Decoder decodes access-unit bitstreams produced by an Encoder (or a
// conforming implementation) back into frames and metadata.
type Decoder struct {
	cfg     Config
	kernels transform.KernelSet
}

// NewDecoder constructs a Decoder. Unlike New for Encoder, cfg's
// resolution is not required up front since decode derives tile geometry
// and thread count from the bitstream itself; cfg's Threads field, if
// non-zero, still bounds the worker pool.
func NewDecoder(cfg Config) *Decoder {
	return &Decoder{cfg: cfg, kernels: transform.DetectKernelSet()}
}

// Close releases any resources held by d; see Encoder.Close.
func (d *Decoder) Close() error { return nil }

// Decode parses one access-unit bitstream, returning its frames and
// writing recovered metadata into metadata (nil to discard metadata).
func (d *Decoder) Decode(bitstream []byte, metadata *meta.Container) ([]DecodedFrame, Stat, error) {
	start := time.Now()
	threads := d.cfg.Threads
	if threads == 0 {
		threads = 1
	}
	frames, err := au.DecodeAU(bitstream, metadata, au.Options{
		Kernels:    d.kernels,
		Threads:    threads,
		RawFraming: d.cfg.RawAUFraming(),
	})
	stat := Stat{BytesOut: len(bitstream), Frames: len(frames), Elapsed: time.Since(start)}
	if err != nil {
		if Log != nil {
			Log.Error("apv: decode failed", "error", err)
		}
		return nil, stat, err
	}
	return frames, stat, nil
}
