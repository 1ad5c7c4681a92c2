// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import "fmt"

// ErrTooManyPerAccount is returned when an account already has
// MaxTransactionsPerAccount pending transactions (spec §7).
var ErrTooManyPerAccount = fmt.Errorf("too many pending transactions for account")

// ErrAlreadyKnown is returned when a transaction's hash was already admitted;
// the dedupe fast path short-circuits on this without running the
// per-account nonce check again. Admitted hashes stay recorded, up to the
// dedupe LRU's capacity, after the transaction has left the pool.
var ErrAlreadyKnown = fmt.Errorf("transaction already known")

// NonceOutOfSequenceError is returned when a submitted nonce does not equal
// the account's current pending nonce (spec §7).
type NonceOutOfSequenceError struct {
	Expected Nonce
	Got      Nonce
}

func (e *NonceOutOfSequenceError) Error() string {
	return fmt.Sprintf("nonce out of sequence: expected %d, got %d", e.Expected, e.Got)
}

// MaxTransactionsPerAccount is the per-account pending capacity fixed by
// contract (spec §3 invariant 4, §6).
const MaxTransactionsPerAccount = 128
