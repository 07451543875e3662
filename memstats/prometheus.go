// Copyright 2024 PSeitz. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package memstats

import (
	peakmem "github.com/PSeitz/peakmem-alloc"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	currentDesc = prometheus.NewDesc(
		"peakmem_current_bytes",
		"Bytes currently live in the instrumented allocator.",
		nil, nil,
	)
	peakDesc = prometheus.NewDesc(
		"peakmem_peak_bytes",
		"Maximum live bytes observed since the last reset.",
		nil, nil,
	)
)

type collector struct {
	alloc *peakmem.PeakAllocator
}

// NewCollector returns a prometheus.Collector reading alloc's counters at
// scrape time.
func NewCollector(alloc *peakmem.PeakAllocator) prometheus.Collector {
	return &collector{alloc: alloc}
}

func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- currentDesc
	ch <- peakDesc
}

func (c *collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(currentDesc, prometheus.GaugeValue,
		float64(c.alloc.CurrentMemory()))
	ch <- prometheus.MustNewConstMetric(peakDesc, prometheus.GaugeValue,
		float64(c.alloc.PeakMemory()))
}
