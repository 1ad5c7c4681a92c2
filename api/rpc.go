// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package api fronts core/mempool with the producer-facing surface the
// core contract treats as an external collaborator (spec §1): a JSON-RPC
// submission endpoint and a websocket feed of admitted/applied events.
package api

import (
	"errors"
	"net/http"

	rpc "github.com/gorilla/rpc/v2"
	"github.com/gorilla/rpc/v2/json2"
	"golang.org/x/time/rate"

	"github.com/luxfi/plasma/core/mempool"
)

// Limits configures the per-process rate limit applied to every JSON-RPC
// request (submissions, nonce queries and inspections alike) ahead of
// dispatch. The core contract has no notion of rate limiting (spec §1
// scopes the API frontend out); this is purely a frontend concern.
type Limits struct {
	RatePerSecond float64
	Burst         int
}

// Server wires an api.Server's JSON-RPC and websocket handlers to a single
// underlying mempool.
type Server struct {
	pool    *mempool.MemPool
	limiter *rate.Limiter
	hub     *wsHub
}

// NewServer constructs a Server. limits.RatePerSecond <= 0 disables rate
// limiting.
func NewServer(pool *mempool.MemPool, limits Limits) *Server {
	var limiter *rate.Limiter
	if limits.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(limits.RatePerSecond), limits.Burst)
	}
	return &Server{
		pool:    pool,
		limiter: limiter,
		hub:     newWSHub(pool),
	}
}

// Close stops the server's websocket hub, ending its feed-subscription
// goroutine and disconnecting every connected client. It does not touch the
// underlying mempool, which the caller owns and closes separately.
func (s *Server) Close() {
	s.hub.Close()
}

// MempoolService is the JSON-RPC 2.0 service exposed at /rpc. Method names
// are dot-joined by gorilla/rpc as "Mempool.<MethodName>".
type MempoolService struct {
	srv *Server
}

// SubmitTransactionArgs is the argument shape for Mempool.SubmitTransaction.
type SubmitTransactionArgs struct {
	Tx mempool.TransferTx `json:"tx"`
}

// SubmitTransactionReply is the reply shape for Mempool.SubmitTransaction.
type SubmitTransactionReply struct {
	Accepted bool `json:"accepted"`
}

// SubmitTransaction admits args.Tx and blocks for the admission result, the
// reply-channel surface the core spec's AddTransaction reserves but leaves
// unused (spec §6, §9 "known gaps").
func (s *MempoolService) SubmitTransaction(r *http.Request, args *SubmitTransactionArgs, reply *SubmitTransactionReply) error {
	if args == nil {
		return errors.New("missing arguments")
	}
	if err := s.srv.pool.AddTransactionSync(args.Tx); err != nil {
		return err
	}
	reply.Accepted = true
	return nil
}

// PendingNonceArgs is the argument shape for Mempool.PendingNonce.
type PendingNonceArgs struct {
	Account mempool.AccountId `json:"account"`
}

// PendingNonceReply is the reply shape for Mempool.PendingNonce.
type PendingNonceReply struct {
	Nonce mempool.Nonce `json:"nonce"`
	Known bool          `json:"known"`
}

// PendingNonce reports the pending nonce for args.Account.
func (s *MempoolService) PendingNonce(r *http.Request, args *PendingNonceArgs, reply *PendingNonceReply) error {
	if args == nil {
		return errors.New("missing arguments")
	}
	nonce, ok := s.srv.pool.GetPendingNonce(args.Account)
	reply.Nonce, reply.Known = nonce, ok
	return nil
}

// InspectArgs is the argument shape for Mempool.Inspect.
type InspectArgs struct {
	Filter string `json:"filter"`
}

// InspectReply is the reply shape for Mempool.Inspect.
type InspectReply struct {
	Matched []mempool.TransferTx `json:"matched"`
}

// Inspect returns pending transactions matching args.Filter, a
// hashicorp/go-bexpr boolean expression over the transaction's flattened
// fields (from, to, nonce, fee, amount).
func (s *MempoolService) Inspect(r *http.Request, args *InspectArgs, reply *InspectReply) error {
	if args == nil {
		return errors.New("missing arguments")
	}
	matched, err := s.srv.pool.Inspect(args.Filter)
	if err != nil {
		return err
	}
	reply.Matched = matched
	return nil
}

// RPCHandler returns the JSON-RPC 2.0 HTTP handler, rate-limited ahead of
// dispatch.
func (s *Server) RPCHandler() http.Handler {
	rpcServer := rpc.NewServer()
	rpcServer.RegisterCodec(json2.NewCodec(), "application/json")
	if err := rpcServer.RegisterService(&MempoolService{srv: s}, "Mempool"); err != nil {
		panic(err) // service registration is static and always succeeds or never does
	}
	return s.rateLimited(rpcServer)
}

func (s *Server) rateLimited(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow() {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
