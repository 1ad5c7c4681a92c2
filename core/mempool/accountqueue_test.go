// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func addr(b byte) AccountId {
	var a AccountId
	a[19] = b
	return a
}

func tx(from AccountId, nonce Nonce, fee uint64) TransferTx {
	return TransferTx{From: from, To: addr(0xff), Nonce: nonce, Fee: NewFee(fee), Amount: NewFee(1)}
}

func TestAccountQueue_EmptyPendingNonce(t *testing.T) {
	require := require.New(t)
	q := NewAccountQueue()
	require.Equal(Nonce(0), q.PendingNonce())
	require.Equal(0, q.Len())
}

func TestAccountQueue_ContiguousInsertAdvancesPendingNonce(t *testing.T) {
	require := require.New(t)
	from := addr(1)
	q := NewAccountQueue()
	require.True(q.Insert(tx(from, 0, 10)))
	require.True(q.Insert(tx(from, 1, 10)))
	require.True(q.Insert(tx(from, 2, 10)))
	require.Equal(Nonce(3), q.PendingNonce())
	require.Equal(3, q.Len())
}

func TestAccountQueue_GapDoesNotAdvancePendingNonce(t *testing.T) {
	require := require.New(t)
	from := addr(1)
	q := NewAccountQueue()
	require.True(q.Insert(tx(from, 0, 10)))
	require.True(q.Insert(tx(from, 2, 10)))
	require.Equal(Nonce(1), q.PendingNonce())
}

func TestAccountQueue_DuplicateNonceNotReplaced(t *testing.T) {
	require := require.New(t)
	from := addr(1)
	q := NewAccountQueue()
	require.True(q.Insert(tx(from, 0, 10)))
	require.False(q.Insert(tx(from, 0, 999)))
	fee, ok := q.NextFee()
	require.True(ok)
	require.Equal(0, fee.Cmp(NewFee(10)))
}

// S1 (spec §8): exact-match pop extracts and advances.
func TestAccountQueue_Pop_ExactMatch(t *testing.T) {
	require := require.New(t)
	from := addr(1)
	q := NewAccountQueue()
	q.Insert(tx(from, 0, 10))
	q.Insert(tx(from, 1, 20))

	rejected, extracted := q.Pop(0)
	require.Empty(rejected)
	require.NotNil(extracted)
	require.Equal(Nonce(0), extracted.Nonce)
	require.Equal(1, q.Len())
}

// S2 (spec §8): popping past a gap's far side rejects everything above it.
func TestAccountQueue_Pop_NoEntryAtExpected_RejectsRemainder(t *testing.T) {
	require := require.New(t)
	from := addr(1)
	q := NewAccountQueue()
	q.Insert(tx(from, 5, 10))
	q.Insert(tx(from, 6, 10))

	rejected, extracted := q.Pop(0)
	require.Nil(extracted)
	require.Len(rejected, 2)
	require.Equal(0, q.Len())
}

// S3 (spec §8): stale entries strictly below expectedNonce are dropped and
// the at-nonce entry is put back rather than extracted.
func TestAccountQueue_Pop_StaleBelowExpected_PutsItBack(t *testing.T) {
	require := require.New(t)
	from := addr(1)
	q := NewAccountQueue()
	q.Insert(tx(from, 3, 10))
	q.Insert(tx(from, 5, 10))

	rejected, extracted := q.Pop(5)
	require.Nil(extracted)
	require.Len(rejected, 1)
	require.Equal(Nonce(3), rejected[0].Nonce)
	require.Equal(1, q.Len())

	rejected2, extracted2 := q.Pop(5)
	require.Empty(rejected2)
	require.NotNil(extracted2)
	require.Equal(Nonce(5), extracted2.Nonce)
}

// S4 (spec §8): popping an empty queue is a no-op.
func TestAccountQueue_Pop_Empty(t *testing.T) {
	require := require.New(t)
	q := NewAccountQueue()
	rejected, extracted := q.Pop(0)
	require.Nil(extracted)
	require.Nil(rejected)
}

func TestAccountQueue_All_AscendingOrder(t *testing.T) {
	require := require.New(t)
	from := addr(1)
	q := NewAccountQueue()
	q.Insert(tx(from, 2, 10))
	q.Insert(tx(from, 0, 10))
	q.Insert(tx(from, 1, 10))

	all := q.all(nil)
	require.Len(all, 3)
	require.Equal(Nonce(0), all[0].Nonce)
	require.Equal(Nonce(1), all[1].Nonce)
	require.Equal(Nonce(2), all[2].Nonce)
}

func TestTransferTx_HashStableAcrossCalls(t *testing.T) {
	require := require.New(t)
	tr := tx(addr(1), 0, 10)
	require.Equal(tr.Hash(), tr.Hash())
	require.NotEqual(common.Hash{}, tr.Hash())
}
