// Copyright 2024 PSeitz. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package peakmem

import (
	"encoding/json"
	"sync"
	"sync/atomic"
)

type sizeClassStats struct {
	MallocCount int64
	FreeCount   int64
	NeedFree    int64
}

// debugger keeps optional per-capacity malloc/free counts. When off it costs
// a single branch per call.
type debugger struct {
	mux         sync.Mutex
	on          bool
	MallocCount int64
	FreeCount   int64
	NeedFree    int64
	SizeMap     map[int]*sizeClassStats
}

func (d *debugger) setDebug(dbg bool) {
	d.on = dbg
}

func (d *debugger) incrMalloc(b []byte) {
	if d.on {
		d.incrMallocSlow(b)
	}
}

func (d *debugger) incrMallocSlow(b []byte) {
	atomic.AddInt64(&d.MallocCount, 1)
	atomic.AddInt64(&d.NeedFree, 1)
	size := cap(b)
	d.mux.Lock()
	defer d.mux.Unlock()
	if d.SizeMap == nil {
		d.SizeMap = map[int]*sizeClassStats{}
	}
	if v, ok := d.SizeMap[size]; ok {
		v.MallocCount++
		v.NeedFree++
	} else {
		d.SizeMap[size] = &sizeClassStats{
			MallocCount: 1,
			NeedFree:    1,
		}
	}
}

func (d *debugger) incrFree(b []byte) {
	if d.on {
		d.incrFreeSlow(b)
	}
}

func (d *debugger) incrFreeSlow(b []byte) {
	atomic.AddInt64(&d.FreeCount, 1)
	atomic.AddInt64(&d.NeedFree, -1)
	size := cap(b)
	d.mux.Lock()
	defer d.mux.Unlock()
	if d.SizeMap == nil {
		d.SizeMap = map[int]*sizeClassStats{}
	}
	if v, ok := d.SizeMap[size]; ok {
		v.FreeCount++
		v.NeedFree--
	} else {
		d.SizeMap[size] = &sizeClassStats{
			FreeCount: 1,
			NeedFree:  -1,
		}
	}
}

func (d *debugger) String() string {
	if d.on {
		d.mux.Lock()
		defer d.mux.Unlock()
		b, err := json.Marshal(d)
		if err == nil {
			return string(b)
		}
	}
	return ""
}
