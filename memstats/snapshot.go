// Copyright 2024 PSeitz. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package memstats exposes a PeakAllocator's counters operationally: a JSON
// HTTP API, a websocket live feed and a Prometheus collector.
package memstats

import (
	"time"

	peakmem "github.com/PSeitz/peakmem-alloc"
)

// Snapshot is a point-in-time reading of an allocator's counters.
type Snapshot struct {
	CurrentBytes int64     `json:"current_bytes"`
	PeakBytes    int64     `json:"peak_bytes"`
	Taken        time.Time `json:"taken"`
}

// Take reads alloc's counters. The two reads are not one transaction; a
// snapshot racing allocations may pair a current from before an update with
// a peak from after it.
func Take(alloc *peakmem.PeakAllocator) Snapshot {
	return Snapshot{
		CurrentBytes: alloc.CurrentMemory(),
		PeakBytes:    alloc.PeakMemory(),
		Taken:        time.Now(),
	}
}
