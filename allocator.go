// Copyright 2024 PSeitz. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package peakmem provides an instrumenting allocator wrapper that reports
// the current and peak number of bytes live across any inner allocator.
//
// Wrap an allocator with New, or use the ready-made DefaultAllocator and the
// package-level functions, then bracket the region to measure:
//
//	peakmem.ResetPeakMemory()
//	buf := peakmem.Malloc(1024)
//	// ... workload ...
//	peakmem.Free(buf)
//	fmt.Println("peak:", peakmem.PeakMemory())
package peakmem

// Allocator is the allocation capability set expected of a memory manager.
// Implementations hand out []byte buffers; Free returns a buffer obtained
// from Malloc/Realloc of the same allocator, unmodified in capacity.
type Allocator interface {
	Malloc(size int) []byte
	Realloc(buf []byte, size int) []byte
	Append(buf []byte, more ...byte) []byte
	AppendString(buf []byte, more string) []byte
	Free(buf []byte)
}

// DefaultAllocator is an instrumented instance of the std allocator, suitable
// as a process-wide default. The zero value is ready before any init runs.
var DefaultAllocator = &PeakAllocator{}

// Malloc allocates from DefaultAllocator.
func Malloc(size int) []byte {
	return DefaultAllocator.Malloc(size)
}

// Realloc resizes buf through DefaultAllocator.
func Realloc(buf []byte, size int) []byte {
	return DefaultAllocator.Realloc(buf, size)
}

// Append appends through DefaultAllocator, accounting capacity growth.
func Append(buf []byte, more ...byte) []byte {
	return DefaultAllocator.Append(buf, more...)
}

// AppendString appends through DefaultAllocator, accounting capacity growth.
func AppendString(buf []byte, more string) []byte {
	return DefaultAllocator.AppendString(buf, more)
}

// Free releases buf to DefaultAllocator.
func Free(buf []byte) {
	DefaultAllocator.Free(buf)
}

// CurrentMemory reports the bytes currently live in DefaultAllocator.
func CurrentMemory() int64 {
	return DefaultAllocator.CurrentMemory()
}

// PeakMemory reports the maximum live bytes observed by DefaultAllocator
// since the last reset.
func PeakMemory() int64 {
	return DefaultAllocator.PeakMemory()
}

// ResetPeakMemory resets DefaultAllocator's peak baseline to the current
// live usage.
func ResetPeakMemory() {
	DefaultAllocator.ResetPeakMemory()
}
