// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import "github.com/google/btree"

// accountQueueDegree is the btree branching factor. 32 is the degree the
// google/btree README recommends for small, in-memory items; there is no
// reason to tune it differently per account.
const accountQueueDegree = 32

// nonceEntry is the item stored in an AccountQueue's btree, ordered by
// nonce alone.
type nonceEntry struct {
	nonce Nonce
	tx    TransferTx
}

func nonceLess(a, b nonceEntry) bool {
	return a.nonce < b.nonce
}

// AccountQueue is a per-account, nonce-ordered pending-transaction map
// (spec §3, §4.1). It maintains sorted iteration by nonce and supports
// O(log n) lookup, insertion, and the lesser/at/greater split pop()
// requires.
type AccountQueue struct {
	tree *btree.BTreeG[nonceEntry]
}

// NewAccountQueue returns an empty AccountQueue.
func NewAccountQueue() *AccountQueue {
	return &AccountQueue{tree: btree.NewG(accountQueueDegree, nonceLess)}
}

// Len returns the current number of pending transactions for the account.
func (q *AccountQueue) Len() int {
	return q.tree.Len()
}

// Insert inserts tx keyed by tx.Nonce. It returns true if the nonce was not
// already present. An existing entry at the same nonce is left unchanged —
// there is no fee-based replacement in this version (spec §4.1, §9).
func (q *AccountQueue) Insert(tx TransferTx) bool {
	if _, exists := q.tree.Get(nonceEntry{nonce: tx.Nonce}); exists {
		return false
	}
	q.tree.ReplaceOrInsert(nonceEntry{nonce: tx.Nonce, tx: tx})
	return true
}

// PendingNonce returns the smallest nonce N such that N is not in the
// queue and every nonce in [min, N) is present. An empty queue returns 0.
func (q *AccountQueue) PendingNonce() Nonce {
	min, ok := q.tree.Min()
	if !ok {
		return 0
	}
	next := min.nonce
	q.tree.Ascend(func(item nonceEntry) bool {
		if item.nonce != next {
			return false
		}
		next++
		return true
	})
	return next
}

// NextFee returns the fee of the lowest-nonce entry, or ok=false if the
// queue is empty.
func (q *AccountQueue) NextFee() (fee Fee, ok bool) {
	min, ok := q.tree.Min()
	if !ok {
		return Fee{}, false
	}
	return min.tx.Fee, true
}

// minNonce returns the smallest nonce currently present, or ok=false if the
// queue is empty.
func (q *AccountQueue) minNonce() (Nonce, bool) {
	min, ok := q.tree.Min()
	if !ok {
		return 0, false
	}
	return min.nonce, true
}

// all appends every pending transaction, in ascending nonce order, to out.
func (q *AccountQueue) all(out []TransferTx) []TransferTx {
	q.tree.Ascend(func(item nonceEntry) bool {
		out = append(out, item.tx)
		return true
	})
	return out
}

// Pop splits the queue at expectedNonce into lesser/at/greater parts and
// applies the extraction rule from spec §4.1. It is total over any
// expectedNonce and any queue state.
func (q *AccountQueue) Pop(expectedNonce Nonce) (rejected []TransferTx, extracted *TransferTx) {
	min, ok := q.tree.Min()
	if !ok {
		return nil, nil
	}
	exactMatch := min.nonce == expectedNonce

	var lesser []nonceEntry
	q.tree.AscendLessThan(nonceEntry{nonce: expectedNonce}, func(item nonceEntry) bool {
		lesser = append(lesser, item)
		return true
	})
	for _, e := range lesser {
		q.tree.Delete(e)
		rejected = append(rejected, e.tx)
	}

	at, atExists := q.tree.Get(nonceEntry{nonce: expectedNonce})
	if atExists {
		q.tree.Delete(at)
		if exactMatch {
			tx := at.tx
			extracted = &tx
		} else {
			// Stale siblings existed below expectedNonce: put it back so the
			// TxQueue layer can re-evaluate priority before extracting
			// anything (spec §4.1 "put it back" branch).
			q.tree.ReplaceOrInsert(at)
		}
		return rejected, extracted
	}

	// No entry at expectedNonce: anything above it is now gapped relative
	// to the nonce we were asked to extract, so the whole remainder is
	// rejected and the queue becomes empty.
	var greater []nonceEntry
	q.tree.AscendGreaterOrEqual(nonceEntry{nonce: expectedNonce}, func(item nonceEntry) bool {
		greater = append(greater, item)
		return true
	})
	for _, e := range greater {
		q.tree.Delete(e)
		rejected = append(rejected, e.tx)
	}
	return rejected, nil
}
