/*
NAME
  threads.go

DESCRIPTION
  threads.go implements thread auto-selection (§4.7):
  threads = min(MAX_THREADS, cpu_cores, min_tiles_per_frame).

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

package param

import "runtime"

// MaxThreads is the hard ceiling on auto-selected worker count, per §4.7.
const MaxThreads = 32

// AutoThreads returns the worker count for a frame whose tile grid has
// minTilesPerFrame tiles, per §4.7. minTilesPerFrame <= 0 is treated as
// "unconstrained" (no tile-count floor is applied).
func AutoThreads(minTilesPerFrame int) int {
	threads := runtime.NumCPU()
	if threads > MaxThreads {
		threads = MaxThreads
	}
	if minTilesPerFrame > 0 && minTilesPerFrame < threads {
		threads = minTilesPerFrame
	}
	if threads < 1 {
		threads = 1
	}
	return threads
}
