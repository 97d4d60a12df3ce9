/*
NAME
  errors.go

DESCRIPTION
  errors.go defines the sentinel errors Validate returns, mapped onto the
  numeric codes of §6/§7 by the codec/apv façade's Code function.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

package param

import "errors"

var (
	// ErrInvalidLevel is returned when a requested level_idc is lower than
	// the level auto-selection would require, per §4.7.
	ErrInvalidLevel = errors.New("param: requested level below auto-selected minimum")
	// ErrInvalidArgument is returned for out-of-range Config fields that
	// are not covered by a more specific sentinel.
	ErrInvalidArgument = errors.New("param: invalid argument")
)
