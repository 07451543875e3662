// Copyright 2024 PSeitz. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package peakmem

import (
	"testing"
)

func TestTieredMallocRoundsUp(t *testing.T) {
	ta := NewTiered([]int{64, 256, 1024})

	buf := ta.Malloc(100)
	if len(buf) != 100 {
		t.Fatalf("invalid length: %v != 100", len(buf))
	}
	if cap(buf) != 256 {
		t.Fatalf("invalid class capacity: %v != 256", cap(buf))
	}
	ta.Free(buf)

	big := ta.Malloc(4096)
	if cap(big) != 4096 {
		t.Fatalf("oversize must bypass pools: cap=%v", cap(big))
	}
	ta.Free(big)
}

func TestTieredStats(t *testing.T) {
	ta := NewTiered([]int{64, 256})

	buf := ta.Malloc(10)
	ta.Free(buf)
	buf = ta.Malloc(10)
	ta.Free(buf)

	stats := ta.Stats()
	if len(stats) != 2 {
		t.Fatalf("invalid stats length: %v", len(stats))
	}
	if stats[0].BlockSize != 64 {
		t.Fatalf("invalid block size: %v", stats[0].BlockSize)
	}
	if stats[0].Hits != 2 {
		t.Fatalf("invalid hits: %v != 2", stats[0].Hits)
	}
	if stats[0].Frees != 2 {
		t.Fatalf("invalid frees: %v != 2", stats[0].Frees)
	}
	if stats[0].Misses < 1 {
		t.Fatalf("invalid misses: %v", stats[0].Misses)
	}
}

func TestPeakOverTiered(t *testing.T) {
	a := New(NewTiered([]int{64, 256, 1024}))

	buf := a.Malloc(100)
	if a.CurrentMemory() != 256 {
		t.Fatalf("rounded capacity not accounted: %v != 256", a.CurrentMemory())
	}
	a.Free(buf)
	if a.CurrentMemory() != 0 {
		t.Fatalf("capacity accounting asymmetric: %v != 0", a.CurrentMemory())
	}
	if a.PeakMemory() != 256 {
		t.Fatalf("invalid peak: %v != 256", a.PeakMemory())
	}
}

func TestTieredRealloc(t *testing.T) {
	ta := NewTiered(nil)
	buf := ta.Malloc(32)
	copy(buf, "abcdefgh")
	buf = ta.Realloc(buf, 500)
	if len(buf) != 500 {
		t.Fatalf("invalid length: %v != 500", len(buf))
	}
	if string(buf[:8]) != "abcdefgh" {
		t.Fatalf("realloc lost data: %q", buf[:8])
	}
	ta.Free(buf)
}
