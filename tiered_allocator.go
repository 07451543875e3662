// Copyright 2024 PSeitz. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package peakmem

import (
	"sort"
	"sync"
	"sync/atomic"
)

// TierStats is a snapshot of one size class of a tiered allocator.
type TierStats struct {
	BlockSize int
	Hits      int64
	Misses    int64
	Frees     int64
}

// TieredAllocator serves requests from per-size-class sync.Pools. Requests
// beyond the largest class fall through to the runtime. Buffers keep the
// class capacity, so a wrapping PeakAllocator accounts the rounded-up size.
type TieredAllocator struct {
	sizes  []int
	pools  []*sync.Pool
	hits   []int64
	misses []int64
	frees  []int64
}

// NewTiered returns a TieredAllocator with one pool per size in sizes.
// Sizes are sorted ascending; an empty sizes gets a default 64B..64KB ladder.
func NewTiered(sizes []int) *TieredAllocator {
	if len(sizes) == 0 {
		sizes = []int{64, 256, 1024, 4096, 16384, 65536}
	}
	sizes = append([]int(nil), sizes...)
	sort.Ints(sizes)

	ta := &TieredAllocator{
		sizes:  sizes,
		pools:  make([]*sync.Pool, len(sizes)),
		hits:   make([]int64, len(sizes)),
		misses: make([]int64, len(sizes)),
		frees:  make([]int64, len(sizes)),
	}
	for i, size := range sizes {
		blockSize := size
		index := i
		ta.pools[i] = &sync.Pool{
			New: func() interface{} {
				atomic.AddInt64(&ta.misses[index], 1)
				buf := make([]byte, blockSize)
				return &buf
			},
		}
	}
	return ta
}

func (ta *TieredAllocator) findTier(size int) int {
	for i, n := range ta.sizes {
		if size <= n {
			return i
		}
	}
	return -1
}

// Malloc .
func (ta *TieredAllocator) Malloc(size int) []byte {
	i := ta.findTier(size)
	if i < 0 {
		return make([]byte, size)
	}
	pbuf := ta.pools[i].Get().(*[]byte)
	atomic.AddInt64(&ta.hits[i], 1)
	if cap(*pbuf) < size {
		buf := make([]byte, ta.sizes[i])
		pbuf = &buf
	}
	return (*pbuf)[:size:cap(*pbuf)]
}

// Realloc .
func (ta *TieredAllocator) Realloc(buf []byte, size int) []byte {
	if size <= cap(buf) {
		return buf[:size]
	}
	newBuf := ta.Malloc(size)
	copy(newBuf, buf)
	ta.Free(buf)
	return newBuf
}

// Append .
func (ta *TieredAllocator) Append(buf []byte, more ...byte) []byte {
	if cap(buf)-len(buf) >= len(more) {
		return append(buf, more...)
	}
	newBuf := ta.Malloc(len(buf) + len(more))
	n := copy(newBuf, buf)
	copy(newBuf[n:], more)
	ta.Free(buf)
	return newBuf
}

// AppendString .
func (ta *TieredAllocator) AppendString(buf []byte, more string) []byte {
	if cap(buf)-len(buf) >= len(more) {
		return append(buf, more...)
	}
	newBuf := ta.Malloc(len(buf) + len(more))
	n := copy(newBuf, buf)
	copy(newBuf[n:], more)
	ta.Free(buf)
	return newBuf
}

// Free returns buf to the pool of its capacity class. Capacities that match
// no class are left to the garbage collector.
func (ta *TieredAllocator) Free(buf []byte) {
	if cap(buf) == 0 {
		return
	}
	for i, n := range ta.sizes {
		if cap(buf) == n {
			full := buf[:cap(buf)]
			ta.pools[i].Put(&full)
			atomic.AddInt64(&ta.frees[i], 1)
			return
		}
	}
}

// Stats returns a snapshot of every size class.
func (ta *TieredAllocator) Stats() []TierStats {
	stats := make([]TierStats, len(ta.sizes))
	for i, size := range ta.sizes {
		stats[i] = TierStats{
			BlockSize: size,
			Hits:      atomic.LoadInt64(&ta.hits[i]),
			Misses:    atomic.LoadInt64(&ta.misses[i]),
			Frees:     atomic.LoadInt64(&ta.frees[i]),
		}
	}
	return stats
}
