// Copyright 2024 PSeitz. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package peakmem

import (
	"sync"
)

// poolAllocator reuses buffers through a sync.Pool. Requests larger than
// maxSize bypass the pool and go straight to the runtime; buffers larger
// than maxSize are not retained on Free.
type poolAllocator struct {
	bufSize int
	maxSize int
	pool    *sync.Pool
}

// NewPooled returns an Allocator backed by a sync.Pool of buffers. bufSize
// is the capacity of freshly pooled buffers, maxSize the largest capacity
// the pool will retain. Wrapped by a PeakAllocator its rounded-up
// capacities are still accounted exactly.
func NewPooled(bufSize, maxSize int) Allocator {
	if bufSize <= 0 {
		bufSize = 64
	}
	if maxSize <= 0 {
		maxSize = 64 * 1024
	}
	if maxSize < bufSize {
		maxSize = bufSize
	}

	pa := &poolAllocator{
		bufSize: bufSize,
		maxSize: maxSize,
		pool:    &sync.Pool{},
	}
	pa.pool.New = func() interface{} {
		buf := make([]byte, bufSize)
		return &buf
	}
	return pa
}

// Malloc .
func (pa *poolAllocator) Malloc(size int) []byte {
	if size > pa.maxSize {
		return make([]byte, size)
	}
	pbuf := pa.pool.Get().(*[]byte)
	n := cap(*pbuf)
	if n < size {
		*pbuf = append((*pbuf)[:n], make([]byte, size-n)...)
	}
	return (*pbuf)[:size]
}

// Realloc .
func (pa *poolAllocator) Realloc(buf []byte, size int) []byte {
	if size <= cap(buf) {
		return buf[:size]
	}

	if cap(buf) < pa.maxSize {
		newBuf := pa.Malloc(size)
		copy(newBuf, buf)
		pa.Free(buf)
		return newBuf
	}
	return append(buf[:cap(buf)], make([]byte, size-cap(buf))...)[:size]
}

// Append .
func (pa *poolAllocator) Append(buf []byte, more ...byte) []byte {
	return append(buf, more...)
}

// AppendString .
func (pa *poolAllocator) AppendString(buf []byte, more string) []byte {
	return append(buf, more...)
}

// Free .
func (pa *poolAllocator) Free(buf []byte) {
	if cap(buf) == 0 || cap(buf) > pa.maxSize {
		return
	}
	pa.pool.Put(&buf)
}
