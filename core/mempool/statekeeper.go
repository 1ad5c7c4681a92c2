// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

// The state-keeper is an external collaborator (spec §1): it owns
// transaction execution, the committed ledger, and block production. This
// file defines only the handoff contract (spec §4.3.2, §6) the mempool
// loop speaks against it, plus ChannelStateKeeper, the channel adapter the
// demo command wires its in-process stub through — never a real execution
// engine.

// ApplyResult is returned by the state-keeper when a batch was
// successfully turned into a transfer block.
type ApplyResult struct {
	Applied     []TransferTx
	BlockNumber BlockNumber
}

// RejectResult is returned by the state-keeper when block creation failed
// overall. Valid transactions remain eligible and are reinserted by the
// mempool; Invalid transactions are permanently dropped.
type RejectResult struct {
	Valid   []TransferTx
	Invalid []TransferTx
}

// BatchResult is the state-keeper's reply to CreateTransferBlockRequest:
// the (possibly mutated, possibly replaced) queue handed back, plus
// exactly one of Applied or Rejected.
type BatchResult struct {
	Queue    *TxQueue
	Applied  *ApplyResult
	Rejected *RejectResult
}

// CreateTransferBlockRequest moves ownership of queue to the state-keeper
// for one block-creation attempt. Reply receives exactly one BatchResult.
type CreateTransferBlockRequest struct {
	Queue     *TxQueue
	DoPadding bool
	Reply     chan BatchResult
}

// StateKeeper is the interface the mempool loop sends
// CreateTransferBlockRequest to. Production wiring wraps a channel to an
// out-of-process (or separately-owned, in-process) state-keeper goroutine;
// tests substitute a fake or a go.uber.org/mock-generated mock.
type StateKeeper interface {
	// CreateTransferBlock hands req to the state-keeper; the mempool loop
	// then blocks on req.Reply. The state-keeper must send exactly once on
	// req.Reply, or the mempool loop blocks forever (spec §5, §7: "indicates an infrastructure
	// break ... treat this as a process-level fault").
	CreateTransferBlock(req CreateTransferBlockRequest)
}

// ChannelStateKeeper adapts a plain request channel (the shape spec §6
// describes: "A StateProcessingRequest::CreateTransferBlock(queue,
// do_padding, reply) is sent") into a StateKeeper.
type ChannelStateKeeper chan<- CreateTransferBlockRequest

// CreateTransferBlock sends req on the underlying channel.
func (c ChannelStateKeeper) CreateTransferBlock(req CreateTransferBlockRequest) {
	c <- req
}
