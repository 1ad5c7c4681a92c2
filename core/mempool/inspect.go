// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import (
	"github.com/hashicorp/go-bexpr"
)

// inspectRow is the flat, bexpr-selectable view of a TransferTx. go-bexpr
// selects on exported struct fields and the `bexpr` tag; it cannot see into
// AccountId ([20]byte) or Fee (*uint256.Int) directly, so the admin filter
// runs against this projection instead of TransferTx itself.
type inspectRow struct {
	From   string `bexpr:"from"`
	To     string `bexpr:"to"`
	Nonce  uint64 `bexpr:"nonce"`
	Fee    uint64 `bexpr:"fee"`
	Amount uint64 `bexpr:"amount"`
}

func toInspectRow(tx TransferTx) inspectRow {
	return inspectRow{
		From:   tx.From.Hex(),
		To:     tx.To.Hex(),
		Nonce:  uint64(tx.Nonce),
		Fee:    tx.Fee.Uint64(),
		Amount: tx.Amount.Uint64(),
	}
}

// inspect returns every pending transaction across every account matching
// expression. An empty expression matches everything. This is a read-only
// operation (supplemented feature, SPEC_FULL §Supplemented): it never
// mutates q.
func (q *TxQueue) inspect(expression string) ([]TransferTx, error) {
	var eval *bexpr.Evaluator
	if expression != "" {
		var err error
		eval, err = bexpr.CreateEvaluator(expression)
		if err != nil {
			return nil, err
		}
	}

	var all []TransferTx
	for _, aq := range q.queues {
		all = aq.all(all)
	}

	if eval == nil {
		return all, nil
	}

	matched := make([]TransferTx, 0, len(all))
	for _, tx := range all {
		ok, err := eval.Evaluate(toInspectRow(tx))
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, tx)
		}
	}
	return matched, nil
}
