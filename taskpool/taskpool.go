// Copyright 2024 PSeitz. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package taskpool provides a bounded goroutine pool. peakmem uses it to fan
// out stats broadcasts and to drive allocation workloads in the examples.
package taskpool

import (
	"runtime"
	"sync/atomic"
	"unsafe"

	"github.com/PSeitz/peakmem-alloc/logging"
)

const (
	runningFlag = iota
	closedFlag
)

// Pool runs submitted funcs on at most a fixed number of goroutines.
// Submissions beyond the limit queue until a worker drains them.
type Pool struct {
	concurrent int64
	max        int64
	closed     int64
	queue      chan func()
	chClose    chan struct{}
}

// New returns a Pool running at most maxConcurrent tasks with a queue of
// queueSize pending tasks.
func New(maxConcurrent, queueSize int) *Pool {
	if maxConcurrent <= 0 {
		maxConcurrent = runtime.NumCPU()
	}
	if queueSize <= 0 {
		queueSize = 1024
	}
	p := &Pool{
		max:     int64(maxConcurrent - 1),
		queue:   make(chan func(), queueSize),
		chClose: make(chan struct{}),
	}
	go func() {
		for {
			select {
			case f := <-p.queue:
				p.call(f)
			case <-p.chClose:
				return
			}
		}
	}()
	return p
}

// Go submits f. It spawns a worker when under the concurrency limit,
// otherwise queues f. Submissions after Stop are dropped.
func (p *Pool) Go(f func()) {
	if f == nil || p.isClosed() {
		return
	}

	if atomic.AddInt64(&p.concurrent, 1) < p.max {
		go func() {
			p.call(f)
			for {
				select {
				case f = <-p.queue:
					p.call(f)
				default:
					return
				}
			}
		}()
		return
	}

	atomic.AddInt64(&p.concurrent, -1)
	select {
	case p.queue <- f:
	case <-p.chClose:
	}
}

// Stop closes the pool. Queued tasks may be dropped.
func (p *Pool) Stop() {
	if atomic.CompareAndSwapInt64(&p.closed, runningFlag, closedFlag) {
		close(p.chClose)
	}
}

func (p *Pool) isClosed() bool {
	return atomic.LoadInt64(&p.closed) == closedFlag
}

func (p *Pool) call(f func()) {
	defer func() {
		if err := recover(); err != nil {
			const size = 64 << 10
			buf := make([]byte, size)
			buf = buf[:runtime.Stack(buf, false)]
			logging.Error("taskpool call failed: %v\n%v\n", err, *(*string)(unsafe.Pointer(&buf)))
		}
		atomic.AddInt64(&p.concurrent, -1)
	}()
	f()
}
