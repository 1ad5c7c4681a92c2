// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import (
	"bytes"
	"container/heap"
)

// feeHeap is the max-priority queue over AccountId keyed by Fee that backs
// TxQueue.order (spec §3, §4.2). It is modeled on the external shape of
// github.com/ethereum/go-ethereum/common/prque (Push/Pop/Empty) as used by
// the teacher's own core/txpool.go (truncatePending's spammer eviction
// queue), but hand-rolled over container/heap: prque's generic
// constructor requires a priority type satisfying cmp.Ordered (~int,
// ~float64, ~string, ...), and Fee's fixed-width 256-bit representation
// (holiman/uint256) cannot satisfy that constraint without a lossy
// conversion to float64 — which would break invariant P2's requirement
// that the stored priority exactly equal the account's current best fee.
//
// It uses the lazy-deletion scheme spec §9's design notes call out
// explicitly: change-priority is a push of a fresh entry, never an
// in-place update, and stale entries are discarded the next time they
// would otherwise reach the top. Accounts removed from the queue are
// dropped from current the moment removeAccount is called, so any leftover
// stale heap entries for that account are silently skipped on the way
// past.
type feeHeap struct {
	items   feeHeapItems
	current map[AccountId]Fee // authoritative priority per live account
}

type feeHeapEntry struct {
	account AccountId
	fee     Fee
}

type feeHeapItems []feeHeapEntry

func (h feeHeapItems) Len() int { return len(h) }

// Less orders the heap so the highest fee sorts first; ties break on the
// account id for a deterministic, insertion-history-independent order
// (spec §4.2 "tie-breaking ... is unspecified but deterministic").
func (h feeHeapItems) Less(i, j int) bool {
	if c := h[i].fee.Cmp(h[j].fee); c != 0 {
		return c > 0
	}
	return bytes.Compare(h[i].account[:], h[j].account[:]) > 0
}

func (h feeHeapItems) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *feeHeapItems) Push(x any) {
	*h = append(*h, x.(feeHeapEntry))
}

func (h *feeHeapItems) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func newFeeHeap() *feeHeap {
	return &feeHeap{current: make(map[AccountId]Fee)}
}

// changePriority records fee as the account's current priority and pushes
// a fresh heap entry for it. If the account has no recorded priority yet,
// this is its first appearance in the queue.
func (h *feeHeap) changePriority(account AccountId, fee Fee) {
	h.current[account] = fee
	heap.Push(&h.items, feeHeapEntry{account: account, fee: fee})
}

// removeAccount drops the account from the live set. Any heap entries
// still referencing it become stale and are discarded lazily.
func (h *feeHeap) removeAccount(account AccountId) {
	delete(h.current, account)
}

// peek returns the account with the greatest current fee, discarding any
// stale entries it encounters along the way.
func (h *feeHeap) peek() (AccountId, bool) {
	for h.items.Len() > 0 {
		top := h.items[0]
		live, ok := h.current[top.account]
		if !ok || live.Cmp(top.fee) != 0 {
			heap.Pop(&h.items)
			continue
		}
		return top.account, true
	}
	return AccountId{}, false
}
