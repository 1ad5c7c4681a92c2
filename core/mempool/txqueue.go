// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

// TxQueue aggregates one AccountQueue per account plus a max-priority
// queue over accounts keyed by best available fee (spec §3, §4.2). It is
// exclusively owned: at any instant exactly one goroutine may mutate it,
// and ownership moves wholesale to the state-keeper during a batch
// handoff (spec §4.3.2, §5).
type TxQueue struct {
	queues map[AccountId]*AccountQueue
	order  *feeHeap
	len    int
}

// NewTxQueue returns an empty TxQueue.
func NewTxQueue() *TxQueue {
	return &TxQueue{
		queues: make(map[AccountId]*AccountQueue),
		order:  newFeeHeap(),
	}
}

// Len returns the total number of pending transactions across all
// accounts.
func (q *TxQueue) Len() int {
	return q.len
}

// PeekNext returns the account with the greatest currently-available fee,
// or ok=false if the queue is empty.
func (q *TxQueue) PeekNext() (AccountId, bool) {
	return q.order.peek()
}

func (q *TxQueue) ensureQueue(account AccountId) *AccountQueue {
	aq, ok := q.queues[account]
	if !ok {
		aq = NewAccountQueue()
		q.queues[account] = aq
		q.order.changePriority(account, ZeroFee())
	}
	return aq
}

// Insert ensures a queue exists for tx.From, inserts tx into it, and
// updates the account's priority to its queue's current best (lowest-
// nonce) fee. Semantically equivalent to repeated single insertions
// regardless of call order (spec §4.2).
func (q *TxQueue) Insert(tx TransferTx) {
	aq := q.ensureQueue(tx.From)
	if aq.Insert(tx) {
		q.len++
	}
	fee, ok := aq.NextFee()
	if !ok {
		// Unreachable: we just inserted into aq, or aq already held at
		// least one entry, so NextFee is always present here.
		return
	}
	q.order.changePriority(tx.From, fee)
}

// BatchInsert applies Insert to each transaction in list, in order.
func (q *TxQueue) BatchInsert(list []TransferTx) {
	for _, tx := range list {
		q.Insert(tx)
	}
}

// PendingNonce returns the pending nonce for account, or ok=false if no
// queue exists for it (a caller should treat that as "new account: accept
// any nonce").
func (q *TxQueue) PendingNonce(account AccountId) (nonce Nonce, ok bool) {
	aq, exists := q.queues[account]
	if !exists {
		return 0, false
	}
	return aq.PendingNonce(), true
}

// AccountLen returns the number of pending transactions for account, or 0
// if no queue exists for it.
func (q *TxQueue) AccountLen(account AccountId) int {
	aq, exists := q.queues[account]
	if !exists {
		return 0
	}
	return aq.Len()
}

// MinNonce returns the smallest pending nonce currently held for account, or
// ok=false if no queue exists or it is empty. A batch extractor that has no
// independent source of the account's committed nonce uses this as the
// expected_nonce argument to Next, which always takes the exact-match
// branch of AccountQueue.Pop since queues are admission-guaranteed
// contiguous (spec §3 invariant 5).
func (q *TxQueue) MinNonce(account AccountId) (nonce Nonce, ok bool) {
	aq, exists := q.queues[account]
	if !exists {
		return 0, false
	}
	return aq.minNonce()
}

// Next is the batch-extraction primitive (spec §4.2). The caller must
// assert account == PeekNext() before calling. It pops nextNonce out of
// the account's queue, maintains len, and re-homes the account's priority
// (or removes the account entirely once its queue drains).
//
// When Pop's "put it back" branch fires, Next returns extracted == nil
// with rejected non-empty; the caller must re-peek and re-invoke Next
// immediately, since the globally best-fee account may have changed once
// the stale sibling below nextNonce was removed.
func (q *TxQueue) Next(account AccountId, nextNonce Nonce) (rejected []TransferTx, extracted *TransferTx) {
	aq, ok := q.queues[account]
	if !ok {
		return nil, nil
	}
	rejected, extracted = aq.Pop(nextNonce)
	q.len -= len(rejected)
	if extracted != nil {
		q.len--
	}
	if fee, ok := aq.NextFee(); ok {
		q.order.changePriority(account, fee)
	} else {
		delete(q.queues, account)
		q.order.removeAccount(account)
	}
	return rejected, extracted
}
