// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"github.com/ethereum/go-ethereum/log"

	"github.com/luxfi/plasma/core/mempool"
)

// demoStateKeeper returns a channel-backed state-keeper that applies every
// transaction in a batch unconditionally and hands back an empty queue. It
// stands in for the out-of-process execution engine the core contract
// treats as an external collaborator (spec §1); wiring a real one means
// pointing ChannelStateKeeper at that process's request channel instead.
func demoStateKeeper() chan mempool.CreateTransferBlockRequest {
	ch := make(chan mempool.CreateTransferBlockRequest, 16)
	go func() {
		var nextBlock mempool.BlockNumber
		for req := range ch {
			var applied []mempool.TransferTx
			for account, ok := req.Queue.PeekNext(); ok; account, ok = req.Queue.PeekNext() {
				for {
					nonce, exists := req.Queue.MinNonce(account)
					if !exists {
						break
					}
					rejected, extracted := req.Queue.Next(account, nonce)
					if len(rejected) > 0 {
						log.Debug("demo state-keeper: dropping stale entries", "account", account, "count", len(rejected))
					}
					if extracted != nil {
						applied = append(applied, *extracted)
					}
				}
			}
			nextBlock++
			req.Reply <- mempool.BatchResult{
				Queue:   mempool.NewTxQueue(),
				Applied: &mempool.ApplyResult{Applied: applied, BlockNumber: nextBlock},
			}
		}
	}()
	return ch
}
