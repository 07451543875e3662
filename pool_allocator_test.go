// Copyright 2024 PSeitz. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package peakmem

import (
	"testing"
)

func TestPooledAllocator(t *testing.T) {
	pool := NewPooled(64, 64*1024)
	for i := 0; i < 1024*64; i++ {
		buf := pool.Malloc(i)
		if len(buf) != i {
			t.Fatalf("invalid length: %v != %v", len(buf), i)
		}
		pool.Free(buf)
	}
	for i := 1024 * 1024; i < 16*1024*1024; i += 1024 * 1024 {
		buf := pool.Malloc(i)
		if len(buf) != i {
			t.Fatalf("invalid length: %v != %v", len(buf), i)
		}
		pool.Free(buf)
	}
}

func TestPooledRealloc(t *testing.T) {
	pool := NewPooled(64, 64*1024)
	buf := pool.Malloc(32)
	copy(buf, "0123456789")
	buf = pool.Realloc(buf, 4096)
	if len(buf) != 4096 {
		t.Fatalf("invalid length: %v != 4096", len(buf))
	}
	if string(buf[:10]) != "0123456789" {
		t.Fatalf("realloc lost data: %q", buf[:10])
	}
	pool.Free(buf)
}

func TestPeakOverPooled(t *testing.T) {
	a := New(NewPooled(64, 64*1024))

	buf := a.Malloc(100)
	got := a.CurrentMemory()
	if got != int64(cap(buf)) {
		t.Fatalf("pooled capacity not accounted: %v != %v", got, cap(buf))
	}
	if a.PeakMemory() != got {
		t.Fatalf("invalid peak: %v != %v", a.PeakMemory(), got)
	}

	a.Free(buf)
	if a.CurrentMemory() != 0 {
		t.Fatalf("capacity accounting asymmetric: %v != 0", a.CurrentMemory())
	}
}
