/*
NAME
  errors.go

DESCRIPTION
  errors.go maps the core's sentinel errors onto the numeric result codes
  of §6/§7: every public call returns `>= 0` on success, one of these
  negative codes otherwise.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

package apv

import (
	"github.com/pkg/errors"

	"github.com/ausocean/apv/codec/apv/au"
	"github.com/ausocean/apv/codec/apv/header"
	"github.com/ausocean/apv/codec/apv/meta"
	"github.com/ausocean/apv/codec/apv/param"
)

// Numeric result codes, per §6.
const (
	OK                    = 0
	Err                   = -1
	InvalidArgument       = -101
	OutOfMemory           = -102
	ReachedMax            = -103
	Unsupported           = -104
	Unexpected            = -105
	UnsupportedColorspace = -201
	MalformedBitstream    = -202
	OutOfBitstreamBuffer  = -203
	NotFound              = -204
	FailedSyscall         = -301
	InvalidLevel          = -401
	InvalidWidth          = -405
)

// Code maps err (possibly wrapped with github.com/pkg/errors context) onto
// its numeric result code, per §7. A nil err maps to OK; an err this table
// does not recognise maps to the generic Err.
func Code(err error) int {
	if err == nil {
		return OK
	}
	cause := errors.Cause(err)
	switch cause {
	case nil:
		return OK
	case header.ErrInvalidWidth:
		return InvalidWidth
	case header.ErrUnsupportedColor:
		return UnsupportedColorspace
	case header.ErrMalformedBitstream, header.ErrReservedNonZero:
		return MalformedBitstream
	case param.ErrInvalidLevel:
		return InvalidLevel
	case param.ErrInvalidArgument:
		return InvalidArgument
	case au.ErrMissingAUInfo:
		return MalformedBitstream
	case au.ErrComponentMismatch:
		return InvalidArgument
	case meta.ErrNotFound:
		return NotFound
	case meta.ErrReachedMax:
		return ReachedMax
	case meta.ErrMalformed:
		return MalformedBitstream
	default:
		return Err
	}
}
