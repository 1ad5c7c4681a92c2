// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/ethereum/go-ethereum/log"
	"github.com/gorilla/websocket"

	"github.com/luxfi/plasma/core/mempool"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// wsEvent is the wire shape pushed to every connected websocket client.
type wsEvent struct {
	Type    string              `json:"type"`
	Tx      *mempool.TransferTx `json:"tx,omitempty"`
	Applied *wsAppliedEvent     `json:"applied,omitempty"`
}

type wsAppliedEvent struct {
	Count       int                 `json:"count"`
	BlockNumber mempool.BlockNumber `json:"blockNumber"`
}

// wsHub fans out admitted-transaction and batch-applied events from a
// single mempool subscription to any number of websocket clients.
type wsHub struct {
	pool *mempool.MemPool
	done chan struct{}

	mu      sync.Mutex
	clients map[*websocket.Conn]chan wsEvent
}

func newWSHub(pool *mempool.MemPool) *wsHub {
	h := &wsHub{pool: pool, clients: make(map[*websocket.Conn]chan wsEvent), done: make(chan struct{})}
	go h.pump()
	return h
}

// Close stops the hub's pump goroutine and disconnects every client.
func (h *wsHub) Close() {
	close(h.done)
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, ch := range h.clients {
		delete(h.clients, conn)
		close(ch)
		conn.Close()
	}
}

func (h *wsHub) pump() {
	admitted := make(chan mempool.TransferTx, 256)
	applied := make(chan mempool.ApplyResult, 64)
	admittedSub := h.pool.Feed(admitted)
	appliedSub := h.pool.BatchFeed(applied)
	defer admittedSub.Unsubscribe()
	defer appliedSub.Unsubscribe()

	for {
		select {
		case tx := <-admitted:
			txCopy := tx
			h.broadcast(wsEvent{Type: "admitted", Tx: &txCopy})
		case result := <-applied:
			h.broadcast(wsEvent{Type: "applied", Applied: &wsAppliedEvent{
				Count:       len(result.Applied),
				BlockNumber: result.BlockNumber,
			}})
		case err := <-admittedSub.Err():
			log.Error("api: admitted-tx feed subscription ended", "err", err)
			return
		case err := <-appliedSub.Err():
			log.Error("api: applied-batch feed subscription ended", "err", err)
			return
		case <-h.done:
			return
		}
	}
}

func (h *wsHub) broadcast(ev wsEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, ch := range h.clients {
		select {
		case ch <- ev:
		default:
			log.Warn("api: websocket client too slow, dropping it", "remote", conn.RemoteAddr())
			delete(h.clients, conn)
			close(ch)
			conn.Close()
		}
	}
}

// WebsocketHandler upgrades HTTP connections to websockets and streams
// admitted/applied events to each one (supplemented feature, SPEC_FULL
// §Supplemented — the core contract has no external push surface of its
// own).
func (s *Server) WebsocketHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Debug("api: websocket upgrade failed", "err", err)
			return
		}
		ch := make(chan wsEvent, 32)
		s.hub.mu.Lock()
		s.hub.clients[conn] = ch
		s.hub.mu.Unlock()

		defer func() {
			s.hub.mu.Lock()
			delete(s.hub.clients, conn)
			s.hub.mu.Unlock()
			conn.Close()
		}()

		for ev := range ch {
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}
	})
}
