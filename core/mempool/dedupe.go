// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	lru "github.com/hashicorp/golang-lru"
	bloomfilter "github.com/holiman/bloomfilter/v2"
)

// dedupe is a two-layer fast path that short-circuits repeated
// resubmission of a transaction the mempool has already seen, before the
// (heavier) per-account nonce check runs: a known hash is rejected with
// ErrAlreadyKnown directly by admit, exactly like the bloom/LRU combination
// it is grounded on. A tx whose hash has not been seen always falls through
// to the full admission algorithm in spec §4.3.1; dedupe never itself admits
// a transaction, only short-circuits a rejection for ones already admitted.
// A hash stays in the LRU until evicted, also after its transaction has left
// the pool; admit removes the hash again when it rejects the transaction.
type dedupe struct {
	seen   *lru.Cache
	bloom  *bloomfilter.Filter
}

// txHash64 adapts a common.Hash into the hash.Hash64 the bloom filter
// expects, using its first 8 bytes as the already-computed digest.
type txHash64 common.Hash

func (h txHash64) Write(p []byte) (int, error) { return len(p), nil }
func (h txHash64) Sum(b []byte) []byte         { return b }
func (h txHash64) Reset()                      {}
func (h txHash64) Size() int                   { return 8 }
func (h txHash64) BlockSize() int              { return 8 }
func (h txHash64) Sum64() uint64               { return binary.BigEndian.Uint64(h[:8]) }

func newDedupe(lruSize int) *dedupe {
	cache, err := lru.New(lruSize)
	if err != nil {
		// Only returns an error for size <= 0; New always passes 4096.
		cache, _ = lru.New(1)
	}
	filter, err := bloomfilter.NewOptimal(uint64(lruSize*8+1024), 0.001)
	if err != nil {
		filter = nil
	}
	return &dedupe{seen: cache, bloom: filter}
}

// seenBefore reports whether hash was already recorded, and records it if
// not.
func (d *dedupe) seenBefore(hash common.Hash) bool {
	if d.bloom != nil && !d.bloom.Contains(txHash64(hash)) {
		d.bloom.Add(txHash64(hash))
		d.seen.Add(hash, struct{}{})
		return false
	}
	if d.seen.Contains(hash) {
		return true
	}
	d.seen.Add(hash, struct{}{})
	return false
}
