// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTxQueue_EmptyPeekNext(t *testing.T) {
	require := require.New(t)
	q := NewTxQueue()
	_, ok := q.PeekNext()
	require.False(ok)
	require.Equal(0, q.Len())
}

// Best-fee peek: the account peeked must hold the globally best fee among
// all non-empty accounts.
func TestTxQueue_PeekNext_PicksHighestFee(t *testing.T) {
	require := require.New(t)
	q := NewTxQueue()
	a, b, c := addr(1), addr(2), addr(3)
	q.Insert(tx(a, 0, 5))
	q.Insert(tx(b, 0, 50))
	q.Insert(tx(c, 0, 25))

	best, ok := q.PeekNext()
	require.True(ok)
	require.Equal(b, best)
}

// P3 (no-empty-queues): once an account's only transaction is extracted its
// entry is removed from both the account map and the priority order.
func TestTxQueue_Next_RemovesDrainedAccount(t *testing.T) {
	require := require.New(t)
	q := NewTxQueue()
	a := addr(1)
	q.Insert(tx(a, 0, 10))

	rejected, extracted := q.Next(a, 0)
	require.Empty(rejected)
	require.NotNil(extracted)
	require.Equal(0, q.Len())
	_, ok := q.PeekNext()
	require.False(ok)
	require.Equal(0, q.AccountLen(a))
}

// P1 (count consistency): Len tracks admitted-minus-extracted/rejected
// across many accounts and operations.
func TestTxQueue_LenTracksAcrossOperations(t *testing.T) {
	require := require.New(t)
	q := NewTxQueue()
	a, b := addr(1), addr(2)
	q.BatchInsert([]TransferTx{tx(a, 0, 10), tx(a, 1, 10), tx(b, 0, 5)})
	require.Equal(3, q.Len())

	_, extracted := q.Next(a, 0)
	require.NotNil(extracted)
	require.Equal(2, q.Len())

	rejected, extracted2 := q.Next(b, 1) // b's nonce 0 is below 1: rejected as stale
	require.Nil(extracted2)
	require.Len(rejected, 1)
	require.Equal(1, q.Len())
}

// Re-priced priority: once an account's lowest-nonce transaction is
// extracted, its priority becomes the next transaction's fee, possibly
// changing which account is globally best.
func TestTxQueue_PriorityFollowsLowestNonce(t *testing.T) {
	require := require.New(t)
	q := NewTxQueue()
	a, b := addr(1), addr(2)
	q.Insert(tx(a, 0, 100)) // a's best is 100
	q.Insert(tx(a, 1, 1))   // a's second is cheap
	q.Insert(tx(b, 0, 50))

	best, ok := q.PeekNext()
	require.True(ok)
	require.Equal(a, best)

	q.Next(a, 0) // a's priority drops to 1
	best2, ok2 := q.PeekNext()
	require.True(ok2)
	require.Equal(b, best2)
}

func TestTxQueue_Inspect_FiltersByExpression(t *testing.T) {
	require := require.New(t)
	q := NewTxQueue()
	a, b := addr(1), addr(2)
	q.Insert(tx(a, 0, 10))
	q.Insert(tx(b, 0, 200))

	all, err := q.inspect("")
	require.NoError(err)
	require.Len(all, 2)

	matched, err := q.inspect("fee > 100")
	require.NoError(err)
	require.Len(matched, 1)
	require.Equal(b, matched[0].From)
}
