// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package mempool implements the pending-transaction admission, ordering,
// batching, and reconciliation engine of the plasma payment rollup. It
// accepts signed transfer transactions, keeps them ordered per account by
// nonce, exposes the globally best-fee account for batch extraction, and
// hands the whole pending set off to a state-keeper for inclusion attempts.
package mempool

import (
	"crypto/sha256"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// AccountId is the opaque, stable identifier of a sending account.
type AccountId = common.Address

// Nonce is a per-account, monotonically increasing sequence number starting
// at zero.
type Nonce uint64

// BlockNumber identifies a produced transfer block.
type BlockNumber uint64

//go:generate go run github.com/fjl/gencodec -type TransferTx -field-override transferTxMarshaling -out transfertx_json.go

// TransferTx is a signed transfer submitted by an account. Equality is by
// value: two transactions are equal iff every field compares equal.
type TransferTx struct {
	From      AccountId `json:"from"`
	To        AccountId `json:"to"`
	Nonce     Nonce     `json:"nonce"`
	Fee       Fee       `json:"fee"`
	Amount    Fee       `json:"amount"`
	Signature []byte    `json:"signature"`
}

// Hash identifies the transaction for deduplication and logging purposes.
// It is not a cryptographic commitment to the signature; signature
// verification happens upstream of admission (spec §1).
func (tx TransferTx) Hash() common.Hash {
	return common.Hash(sha256.Sum256([]byte(fmt.Sprintf("%x:%x:%d:%s", tx.From, tx.To, tx.Nonce, tx.Fee.String()))))
}

// Equal reports whether tx and other carry identical field values.
func (tx TransferTx) Equal(other TransferTx) bool {
	return tx.From == other.From &&
		tx.To == other.To &&
		tx.Nonce == other.Nonce &&
		tx.Fee.Cmp(other.Fee) == 0 &&
		tx.Amount.Cmp(other.Amount) == 0 &&
		string(tx.Signature) == string(other.Signature)
}

func (tx TransferTx) String() string {
	return fmt.Sprintf("TransferTx{from: %s, to: %s, nonce: %d, fee: %s}", tx.From, tx.To, tx.Nonce, tx.Fee)
}
