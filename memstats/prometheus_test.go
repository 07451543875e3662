// Copyright 2024 PSeitz. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package memstats

import (
	"strings"
	"testing"

	peakmem "github.com/PSeitz/peakmem-alloc"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector(t *testing.T) {
	alloc := peakmem.New(nil)
	c := NewCollector(alloc)

	buf1 := alloc.Malloc(1024)
	buf2 := alloc.Malloc(2048)
	alloc.Free(buf1)
	defer alloc.Free(buf2)

	if n := testutil.CollectAndCount(c); n != 2 {
		t.Fatalf("invalid metric count: %v != 2", n)
	}

	expected := `
# HELP peakmem_current_bytes Bytes currently live in the instrumented allocator.
# TYPE peakmem_current_bytes gauge
peakmem_current_bytes 2048
# HELP peakmem_peak_bytes Maximum live bytes observed since the last reset.
# TYPE peakmem_peak_bytes gauge
peakmem_peak_bytes 3072
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(expected)); err != nil {
		t.Fatalf("unexpected exposition: %v", err)
	}
}
