// Copyright 2024 PSeitz. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package memstats

import (
	"net/http"
	"time"

	"github.com/PSeitz/peakmem-alloc/logging"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func (h *handler) onLive(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error("memstats live upgrade failed: %v", err)
		return
	}
	logging.Debug("memstats live feed open: %v", conn.RemoteAddr())

	if h.pool != nil {
		h.pool.Go(func() { h.pump(conn) })
		return
	}
	h.pump(conn)
}

// pump pushes one snapshot per interval until the peer goes away. Reads are
// drained in the background to notice client close frames.
func (h *handler) pump(conn *websocket.Conn) {
	defer conn.Close()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := conn.WriteJSON(Take(h.alloc)); err != nil {
				logging.Debug("memstats live feed closed: %v", err)
				return
			}
		case <-closed:
			logging.Debug("memstats live feed closed by peer: %v", conn.RemoteAddr())
			return
		}
	}
}
