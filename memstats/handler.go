// Copyright 2024 PSeitz. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package memstats

import (
	"encoding/json"
	"net/http"
	"time"

	peakmem "github.com/PSeitz/peakmem-alloc"
	"github.com/PSeitz/peakmem-alloc/logging"
	"github.com/PSeitz/peakmem-alloc/taskpool"
	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type handler struct {
	alloc    *peakmem.PeakAllocator
	pool     *taskpool.Pool
	interval time.Duration
}

// NewHandler returns an http.Handler serving alloc's counters:
//
//	GET  /memstats        JSON snapshot
//	POST /memstats/reset  reset the peak baseline, 204
//	GET  /memstats/live   websocket feed, one snapshot per interval
//	GET  /metrics         Prometheus exposition
//
// pool runs the websocket pumps; a nil pool serves them on the request
// goroutine. A zero interval defaults to one second.
func NewHandler(alloc *peakmem.PeakAllocator, pool *taskpool.Pool, interval time.Duration) http.Handler {
	if interval <= 0 {
		interval = time.Second
	}
	h := &handler{
		alloc:    alloc,
		pool:     pool,
		interval: interval,
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(NewCollector(alloc))

	router := httprouter.New()
	router.GET("/memstats", h.onStats)
	router.POST("/memstats/reset", h.onReset)
	router.GET("/memstats/live", h.onLive)
	router.Handler(http.MethodGet, "/metrics",
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	return router
}

func (h *handler) onStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(Take(h.alloc)); err != nil {
		logging.Error("memstats encode failed: %v", err)
	}
}

func (h *handler) onReset(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.alloc.ResetPeakMemory()
	w.WriteHeader(http.StatusNoContent)
}
