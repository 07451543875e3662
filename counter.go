// Copyright 2024 PSeitz. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package peakmem

import (
	"sync/atomic"
)

// AtomicMaxInt64 raises *addr to v if v is greater, without locking. It is
// the standard CAS retry loop: a plain store would lose updates under
// concurrent writers.
func AtomicMaxInt64(addr *int64, v int64) {
	for {
		old := atomic.LoadInt64(addr)
		if v <= old {
			return
		}
		if atomic.CompareAndSwapInt64(addr, old, v) {
			return
		}
	}
}

// memCounter tracks current and peak live bytes. The zero value is ready to
// use. All methods are safe for concurrent use and never block.
type memCounter struct {
	current int64
	peak    int64
}

// add increases current by n and raises peak to the new current if needed.
func (c *memCounter) add(n int64) {
	cur := atomic.AddInt64(&c.current, n)
	AtomicMaxInt64(&c.peak, cur)
}

// sub decreases current by n. Peak only ever grows or is explicitly reset.
func (c *memCounter) sub(n int64) {
	atomic.AddInt64(&c.current, -n)
}

func (c *memCounter) readCurrent() int64 {
	return atomic.LoadInt64(&c.current)
}

func (c *memCounter) readPeak() int64 {
	return atomic.LoadInt64(&c.peak)
}

// resetPeak snapshots current into peak. The two loads/stores are not one
// transaction: an allocation racing the reset may or may not be observed.
// The intended usage is a single goroutine bracketing a measured region.
func (c *memCounter) resetPeak() {
	atomic.StoreInt64(&c.peak, atomic.LoadInt64(&c.current))
}
