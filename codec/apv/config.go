/*
NAME
  config.go

DESCRIPTION
  config.go defines Config, the façade's settings struct, and its
  field-level accessors. It embeds param.Config (the validated,
  auto-resolving settings the C7 parameter validator understands) and adds
  DefaultQP, the quantizer Encode falls back to when a caller's FrameInput
  leaves QP unset, per §4.10's "set/get QP" config key.

  Accessor methods mirror revid/config.Config's getter style (QP() rather
  than a generic config(key, value, size) call), since Go callers set
  exported struct fields directly and the getters exist for symmetry with
  the spec's named config keys.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

package apv

import (
	"github.com/ausocean/apv/codec/apv/param"
)

// Config holds the settings an Encoder or Decoder is constructed from.
type Config struct {
	param.Config

	// DefaultQP is the quantizer used for any component a FrameInput leaves
	// unset at encode time.
	DefaultQP uint8
}

// QP returns the configured default quantizer.
func (c *Config) QP() uint8 { return c.DefaultQP }

// SetQP sets the configured default quantizer.
func (c *Config) SetQP(qp uint8) { c.DefaultQP = qp }

// BitrateKbps returns the configured target bitrate, or 0 if it is left to
// auto-derive from Family.
func (c *Config) BitrateKbps() uint32 { return c.Config.BitrateKbps }

// SetBitrateKbps sets the target bitrate in kbps.
func (c *Config) SetBitrateKbps(kbps uint32) { c.Config.BitrateKbps = kbps }

// FPS returns the configured nominal frame rate.
func (c *Config) FPS() uint32 { return c.Config.FPS }

// SetFPS sets the nominal frame rate.
func (c *Config) SetFPS(fps uint32) { c.Config.FPS = fps }

// QPMin returns the configured minimum quantizer.
func (c *Config) QPMin() uint8 { return c.Config.QPMin }

// SetQPMin sets the minimum quantizer.
func (c *Config) SetQPMin(qp uint8) { c.Config.QPMin = qp }

// QPMax returns the configured maximum quantizer.
func (c *Config) QPMax() uint8 { return c.Config.QPMax }

// SetQPMax sets the maximum quantizer.
func (c *Config) SetQPMax(qp uint8) { c.Config.QPMax = qp }

// FrameHashEnabled reports whether per-frame content hashing is enabled.
func (c *Config) FrameHashEnabled() bool { return c.Config.FrameHashEnabled }

// SetFrameHashEnabled toggles per-frame content hashing.
func (c *Config) SetFrameHashEnabled(enabled bool) { c.Config.FrameHashEnabled = enabled }

// RawAUFraming reports whether the unframed bitstream format is selected
// over the default length-prefixed PBU/AU framing.
func (c *Config) RawAUFraming() bool { return c.Config.RawAUFraming }

// SetRawAUFraming selects the unframed bitstream format.
func (c *Config) SetRawAUFraming(raw bool) { c.Config.RawAUFraming = raw }
