// Copyright 2024 PSeitz. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package memstats

import (
	"context"
	"net"
	"net/http"
	"time"

	peakmem "github.com/PSeitz/peakmem-alloc"
	"github.com/PSeitz/peakmem-alloc/logging"
	"github.com/PSeitz/peakmem-alloc/taskpool"
)

// Config configures a Server. Zero values get defaults.
type Config struct {
	// Addr is the listen address, default "localhost:6061".
	Addr string

	// Interval is the live-feed push interval, default time.Second.
	Interval time.Duration

	// MaxFeeds caps concurrent websocket feeds, default 128.
	MaxFeeds int
}

// Server serves a PeakAllocator's counters over HTTP.
type Server struct {
	conf   Config
	alloc  *peakmem.PeakAllocator
	pool   *taskpool.Pool
	server *http.Server
}

// NewServer returns a Server for alloc. A nil alloc serves
// peakmem.DefaultAllocator.
func NewServer(conf Config, alloc *peakmem.PeakAllocator) *Server {
	if alloc == nil {
		alloc = peakmem.DefaultAllocator
	}
	if conf.Addr == "" {
		conf.Addr = "localhost:6061"
	}
	if conf.Interval <= 0 {
		conf.Interval = time.Second
	}
	if conf.MaxFeeds <= 0 {
		conf.MaxFeeds = 128
	}
	return &Server{
		conf:  conf,
		alloc: alloc,
	}
}

// Start begins listening and serves in the background. It returns once the
// listener is bound, so counters are reachable when it returns.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.conf.Addr)
	if err != nil {
		return err
	}

	s.pool = taskpool.New(s.conf.MaxFeeds, s.conf.MaxFeeds)
	s.server = &http.Server{
		Handler: NewHandler(s.alloc, s.pool, s.conf.Interval),
	}

	logging.Info("memstats server listening on %v", ln.Addr())
	go func() {
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			logging.Error("memstats server stopped: %v", err)
		}
	}()
	return nil
}

// Addr reports the bound listen address, "" before Start.
func (s *Server) Addr() string {
	if s.server == nil {
		return ""
	}
	return s.conf.Addr
}

// Stop shuts the server down, waiting up to timeout for open requests.
func (s *Server) Stop(timeout time.Duration) error {
	if s.server == nil {
		return nil
	}
	defer s.pool.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	err := s.server.Shutdown(ctx)
	logging.Info("memstats server stopped")
	return err
}
