// Copyright 2024 PSeitz. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package peakmem

// PeakAllocator wraps an inner Allocator and keeps track of the current and
// peak number of bytes live. It is a pure pass-through: every call delegates
// to the inner allocator and returns its result unchanged, with counter
// bookkeeping around the delegation. It never blocks and takes no locks, so
// any number of goroutines may allocate and free through it concurrently.
//
// The zero value wraps the std allocator and performs no allocation during
// construction, so it is safe to declare as a package variable with no
// init-order concerns. Use New to wrap any other allocator.
//
// Accounting is by buffer capacity, symmetric across Malloc, Realloc and
// Free, so inner allocators that round request sizes up to a size class stay
// exact. Passing Free a buffer that did not come from the matching Malloc is
// undefined behavior, exactly as with the unwrapped allocator; no
// verification is performed here.
type PeakAllocator struct {
	inner   Allocator
	counter memCounter
	dbg     debugger
}

// New returns a PeakAllocator wrapping inner. A nil inner wraps the std
// allocator.
func New(inner Allocator) *PeakAllocator {
	return &PeakAllocator{inner: inner}
}

func (a *PeakAllocator) allocator() Allocator {
	if a.inner != nil {
		return a.inner
	}
	return stdAllocator{}
}

// Malloc allocates size bytes from the inner allocator. On success the
// buffer's capacity is added to the live total; a failed inner allocation
// (nil buffer for size > 0) is propagated unchanged with no counter update.
func (a *PeakAllocator) Malloc(size int) []byte {
	buf := a.allocator().Malloc(size)
	if buf == nil && size > 0 {
		return nil
	}
	a.counter.add(int64(cap(buf)))
	a.dbg.incrMalloc(buf)
	return buf
}

// Realloc resizes buf through the inner allocator and accounts the capacity
// delta: growth is added, shrinkage subtracted, an unchanged capacity leaves
// the counters untouched. A failed inner reallocation is propagated
// unchanged with no counter update.
func (a *PeakAllocator) Realloc(buf []byte, size int) []byte {
	oldCap := cap(buf)
	newBuf := a.allocator().Realloc(buf, size)
	if newBuf == nil && size > 0 {
		return nil
	}
	a.account(int64(cap(newBuf)) - int64(oldCap))
	return newBuf
}

// Append appends through the inner allocator, accounting capacity growth.
func (a *PeakAllocator) Append(buf []byte, more ...byte) []byte {
	oldCap := cap(buf)
	newBuf := a.allocator().Append(buf, more...)
	a.account(int64(cap(newBuf)) - int64(oldCap))
	return newBuf
}

// AppendString appends through the inner allocator, accounting capacity
// growth.
func (a *PeakAllocator) AppendString(buf []byte, more string) []byte {
	oldCap := cap(buf)
	newBuf := a.allocator().AppendString(buf, more)
	a.account(int64(cap(newBuf)) - int64(oldCap))
	return newBuf
}

// Free releases buf to the inner allocator and subtracts its capacity from
// the live total. Peak is never lowered by a Free.
func (a *PeakAllocator) Free(buf []byte) {
	a.allocator().Free(buf)
	a.counter.sub(int64(cap(buf)))
	a.dbg.incrFree(buf)
}

func (a *PeakAllocator) account(delta int64) {
	if delta > 0 {
		a.counter.add(delta)
	} else if delta < 0 {
		a.counter.sub(-delta)
	}
}

// CurrentMemory reports the bytes currently live.
func (a *PeakAllocator) CurrentMemory() int64 {
	return a.counter.readCurrent()
}

// PeakMemory reports the maximum live bytes observed since the last reset,
// or since construction if never reset.
func (a *PeakAllocator) PeakMemory() int64 {
	return a.counter.readPeak()
}

// ResetPeakMemory resets the peak baseline to the current live usage. The
// snapshot is not atomic across both counters: an allocation racing the
// reset may or may not be reflected in the new baseline.
func (a *PeakAllocator) ResetPeakMemory() {
	a.counter.resetPeak()
}

// SetDebug enables per-size allocation accounting, readable via String.
func (a *PeakAllocator) SetDebug(dbg bool) {
	a.dbg.setDebug(dbg)
}

// String reports the debug accounting as JSON, or "" when debug is off.
func (a *PeakAllocator) String() string {
	return a.dbg.String()
}
