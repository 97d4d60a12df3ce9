/*
NAME
  errors.go

DESCRIPTION
  errors.go defines the sentinel errors the header model returns, mapped
  onto the numeric codes of §6/§7 by the codec/apv façade's Code function.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

package header

import "errors"

// Sentinel errors returned while parsing or validating header fields. Each
// corresponds to one of the numeric codes enumerated in §6.
var (
	ErrMalformedBitstream = errors.New("header: malformed bitstream")
	ErrReservedNonZero    = errors.New("header: reserved field was non-zero")
	ErrInvalidWidth       = errors.New("header: invalid frame width")
	ErrUnsupportedColor   = errors.New("header: unsupported chroma format")
)
