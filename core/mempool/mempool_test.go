// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fakeKeeper is a minimal StateKeeper used in place of a real out-of-process
// collaborator. handle, when set, is invoked synchronously on the caller's
// goroutine (which is the mempool loop's own goroutine, exactly as the real
// handoff blocks it) to produce the BatchResult.
type fakeKeeper struct {
	handle func(req CreateTransferBlockRequest) BatchResult
}

func (f *fakeKeeper) CreateTransferBlock(req CreateTransferBlockRequest) {
	req.Reply <- f.handle(req)
}

func newTestPool(t *testing.T, cfg Config, keeper StateKeeper) *MemPool {
	t.Helper()
	mp, err := New(cfg, keeper, NewNopMetrics())
	require.NoError(t, err)
	go mp.Run()
	t.Cleanup(mp.Close)
	return mp
}

func TestMemPool_AdmitsInOrderTransaction(t *testing.T) {
	require := require.New(t)
	cfg := DefaultConfig()
	cfg.TransferBatchSize = 1000 // keep batching out of the way
	mp := newTestPool(t, cfg, &fakeKeeper{})

	err := mp.AddTransactionSync(tx(addr(1), 0, 10))
	require.NoError(err)

	nonce, ok := mp.GetPendingNonce(addr(1))
	require.True(ok)
	require.Equal(Nonce(1), nonce)
}

func TestMemPool_RejectsNonceOutOfSequence(t *testing.T) {
	require := require.New(t)
	cfg := DefaultConfig()
	cfg.TransferBatchSize = 1000
	mp := newTestPool(t, cfg, &fakeKeeper{})

	require.NoError(mp.AddTransactionSync(tx(addr(1), 0, 10)))
	err := mp.AddTransactionSync(tx(addr(1), 5, 10))
	require.Error(err)
	var seqErr *NonceOutOfSequenceError
	require.ErrorAs(err, &seqErr)
	require.Equal(Nonce(1), seqErr.Expected)
	require.Equal(Nonce(5), seqErr.Got)
}

func TestMemPool_RejectsTooManyPerAccount(t *testing.T) {
	require := require.New(t)
	cfg := DefaultConfig()
	cfg.TransferBatchSize = 1000
	mp := newTestPool(t, cfg, &fakeKeeper{})

	for i := 0; i < MaxTransactionsPerAccount; i++ {
		require.NoError(mp.AddTransactionSync(tx(addr(1), Nonce(i), 10)))
	}
	err := mp.AddTransactionSync(tx(addr(1), Nonce(MaxTransactionsPerAccount), 10))
	require.ErrorIs(err, ErrTooManyPerAccount)
}

func TestMemPool_BatchAppliedClearsQueue(t *testing.T) {
	require := require.New(t)
	applied := make(chan ApplyResult, 1)
	keeper := &fakeKeeper{
		handle: func(req CreateTransferBlockRequest) BatchResult {
			var all []TransferTx
			for _, aq := range req.Queue.queues {
				all = aq.all(all)
			}
			return BatchResult{
				Queue:   NewTxQueue(),
				Applied: &ApplyResult{Applied: all, BlockNumber: 1},
			}
		},
	}
	cfg := DefaultConfig()
	cfg.TransferBatchSize = 2
	mp := newTestPool(t, cfg, keeper)
	sub := mp.BatchFeed(applied)
	defer sub.Unsubscribe()

	require.NoError(mp.AddTransactionSync(tx(addr(1), 0, 10)))
	require.NoError(mp.AddTransactionSync(tx(addr(1), 1, 10)))

	select {
	case result := <-applied:
		require.Len(result.Applied, 2)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for batch-applied event")
	}

	nonce, ok := mp.GetPendingNonce(addr(1))
	require.False(ok) // queue was replaced wholesale, account entry is gone
	require.Equal(Nonce(0), nonce)
}

func TestMemPool_BatchRejectedReinsertsValidRemainder(t *testing.T) {
	require := require.New(t)
	keeper := &fakeKeeper{
		handle: func(req CreateTransferBlockRequest) BatchResult {
			var all []TransferTx
			for _, aq := range req.Queue.queues {
				all = aq.all(all)
			}
			return BatchResult{
				Queue:    NewTxQueue(),
				Rejected: &RejectResult{Valid: all},
			}
		},
	}
	cfg := DefaultConfig()
	cfg.TransferBatchSize = 1
	mp := newTestPool(t, cfg, keeper)

	require.NoError(mp.AddTransactionSync(tx(addr(1), 0, 10)))
	// The rejected batch's valid remainder is reinserted unchanged, so the
	// account again holds nonce 0 and its pending nonce is 1, as it was
	// right after admission.
	require.Eventually(func() bool {
		nonce, ok := mp.GetPendingNonce(addr(1))
		return ok && nonce == 1
	}, 2*time.Second, 10*time.Millisecond)
}

// TestMemPool_MockedStateKeeper exercises the handoff against a
// go.uber.org/mock-generated-style StateKeeper instead of a hand-written
// fake, asserting CreateTransferBlock is called exactly once per batch.
func TestMemPool_MockedStateKeeper(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	keeper := NewMockStateKeeper(ctrl)

	keeper.EXPECT().CreateTransferBlock(gomock.Any()).DoAndReturn(func(req CreateTransferBlockRequest) {
		req.Reply <- BatchResult{
			Queue:   NewTxQueue(),
			Applied: &ApplyResult{BlockNumber: 1},
		}
	}).Times(1)

	cfg := DefaultConfig()
	cfg.TransferBatchSize = 1
	mp := newTestPool(t, cfg, keeper)

	require.NoError(mp.AddTransactionSync(tx(addr(1), 0, 10)))
	require.Eventually(func() bool {
		_, ok := mp.GetPendingNonce(addr(1))
		return !ok
	}, 2*time.Second, 10*time.Millisecond)
}

func TestMemPool_InspectFiltersPending(t *testing.T) {
	require := require.New(t)
	cfg := DefaultConfig()
	cfg.TransferBatchSize = 1000
	mp := newTestPool(t, cfg, &fakeKeeper{})

	require.NoError(mp.AddTransactionSync(tx(addr(1), 0, 10)))
	require.NoError(mp.AddTransactionSync(tx(addr(2), 0, 200)))

	matched, err := mp.Inspect("fee > 100")
	require.NoError(err)
	require.Len(matched, 1)
	require.Equal(addr(2), matched[0].From)
}
