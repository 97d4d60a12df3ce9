/*
NAME
  errors.go

DESCRIPTION
  errors.go defines the sentinel errors the orchestrator returns beyond
  those already surfaced by the header/tile packages.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

package au

import "errors"

var (
	// ErrMissingAUInfo is returned by DecodeAU when the first PBU of a
	// framed access unit is not an AU-info PBU, per §3's "first PBU of a
	// valid AU is an AU-info PBU" rule.
	ErrMissingAUInfo = errors.New("au: access unit does not begin with an AU-info PBU")
	// ErrComponentMismatch is returned when the number of per-component
	// slices on a FrameInput does not match its chroma format.
	ErrComponentMismatch = errors.New("au: component slice count does not match chroma format")
)
