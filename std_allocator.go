// Copyright 2024 PSeitz. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package peakmem

// stdAllocator allocates straight from the Go runtime. Malloc returns a
// buffer with cap == size, Free leaves reclamation to the garbage collector.
type stdAllocator struct{}

// NewSTD returns the std allocator.
func NewSTD() Allocator {
	return stdAllocator{}
}

// Malloc .
func (stdAllocator) Malloc(size int) []byte {
	return make([]byte, size)
}

// Realloc .
func (stdAllocator) Realloc(buf []byte, size int) []byte {
	if size <= cap(buf) {
		return buf[:size]
	}
	newBuf := make([]byte, size)
	copy(newBuf, buf)
	return newBuf
}

// Append .
func (stdAllocator) Append(buf []byte, more ...byte) []byte {
	return append(buf, more...)
}

// AppendString .
func (stdAllocator) AppendString(buf []byte, more string) []byte {
	return append(buf, more...)
}

// Free .
func (stdAllocator) Free(buf []byte) {
}
