// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/log"
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/luxfi/plasma/internal/mpscqueue"
)

// AddTransactionRequest asks the loop to admit tx. Reply is optional
// (nil for fire-and-forget callers); when non-nil the loop sends exactly
// one error (nil on success) before continuing (spec §6, §9 — this closes
// the "admission errors are logged only" gap the original source leaves
// open).
type AddTransactionRequest struct {
	Tx    TransferTx
	Reply chan error
}

// GetPendingNonceRequest asks the loop for account's pending nonce. Reply
// receives exactly one PendingNonceReply (spec §6).
type GetPendingNonceRequest struct {
	Account AccountId
	Reply   chan PendingNonceReply
}

// PendingNonceReply is the answer to GetPendingNonceRequest.
type PendingNonceReply struct {
	Nonce Nonce
	Ok    bool
}

// InspectRequest asks the loop for all pending transactions matching a
// hashicorp/go-bexpr boolean expression (supplemented feature, SPEC_FULL
// §Supplemented). It is purely observational: it never mutates state.
type InspectRequest struct {
	Filter string
	Reply  chan InspectReply
}

// InspectReply is the answer to InspectRequest.
type InspectReply struct {
	Matched []TransferTx
	Err     error
}

// processBatchRequest is only ever self-posted by the loop; external
// producers must not emit it (spec §6).
type processBatchRequest struct{}

// request is the sum type the loop consumes from its request queue.
type request any

// MemPool is the single-writer event loop described in spec §4.3. All
// mutation of its TxQueue, batchRequested flag, and priority structures
// happens on the single goroutine Run executes on; no locks guard the
// queue itself.
type MemPool struct {
	cfg     Config
	metrics *Metrics
	keeper  StateKeeper

	queue          *TxQueue
	batchRequested bool

	reqs *mpscqueue.Unbounded[request]
	dd   *dedupe

	admittedFeed event.Feed // fires TransferTx on successful admission
	appliedFeed  event.Feed // fires ApplyResult after a successful batch

	done chan struct{}
}

// New constructs a MemPool. Call Run in its own goroutine to start the
// event loop, and Close to stop it.
func New(cfg Config, keeper StateKeeper, metrics *Metrics) (*MemPool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if metrics == nil {
		metrics = NewNopMetrics()
	}
	reqs := mpscqueue.New[request]()
	reqs.SetWarnThreshold(cfg.RequestQueueCapacity)
	return &MemPool{
		cfg:     cfg,
		metrics: metrics,
		keeper:  keeper,
		queue:   NewTxQueue(),
		reqs:    reqs,
		dd:      newDedupe(4096),
		done:    make(chan struct{}),
	}, nil
}

// AddTransaction enqueues tx for admission. It never blocks.
func (m *MemPool) AddTransaction(tx TransferTx) {
	m.reqs.Send(request(AddTransactionRequest{Tx: tx}))
}

// AddTransactionSync enqueues tx for admission and blocks until the loop
// has processed it, returning the admission error (nil on success).
func (m *MemPool) AddTransactionSync(tx TransferTx) error {
	reply := make(chan error, 1)
	m.reqs.Send(request(AddTransactionRequest{Tx: tx, Reply: reply}))
	return <-reply
}

// GetPendingNonce asks the loop for account's pending nonce.
func (m *MemPool) GetPendingNonce(account AccountId) (Nonce, bool) {
	reply := make(chan PendingNonceReply, 1)
	m.reqs.Send(request(GetPendingNonceRequest{Account: account, Reply: reply}))
	r := <-reply
	return r.Nonce, r.Ok
}

// Inspect asks the loop for pending transactions matching filter.
func (m *MemPool) Inspect(filter string) ([]TransferTx, error) {
	reply := make(chan InspectReply, 1)
	m.reqs.Send(request(InspectRequest{Filter: filter, Reply: reply}))
	r := <-reply
	return r.Matched, r.Err
}

// Feed returns a subscription that fires once per admitted transaction.
func (m *MemPool) Feed(ch chan<- TransferTx) event.Subscription {
	return m.admittedFeed.Subscribe(ch)
}

// BatchFeed returns a subscription that fires once per successfully
// applied batch.
func (m *MemPool) BatchFeed(ch chan<- ApplyResult) event.Subscription {
	return m.appliedFeed.Subscribe(ch)
}

// Close stops the event loop after any already-enqueued requests drain.
func (m *MemPool) Close() {
	m.reqs.Close()
	<-m.done
}

// Run is the single-consumer event loop (spec §4.3, §5). It must be run
// on its own goroutine; it returns once Close has drained the request
// queue.
func (m *MemPool) Run() {
	defer close(m.done)
	for {
		req, ok := m.reqs.Recv()
		if !ok {
			return
		}
		switch r := req.(type) {
		case AddTransactionRequest:
			m.handleAddTransaction(r)
		case GetPendingNonceRequest:
			m.handleGetPendingNonce(r)
		case InspectRequest:
			m.handleInspect(r)
		case processBatchRequest:
			m.handleProcessBatch()
		}
	}
}

func (m *MemPool) handleAddTransaction(r AddTransactionRequest) {
	err := m.admit(r.Tx)
	if err != nil {
		log.Debug("mempool: admission rejected", "from", r.Tx.From, "nonce", r.Tx.Nonce, "err", err)
	} else {
		log.Debug("mempool: admitted", "from", r.Tx.From, "nonce", r.Tx.Nonce, "fee", r.Tx.Fee, "len", m.queue.Len())
		m.admittedFeed.Send(r.Tx)
		m.maybeArmBatch()
	}
	if r.Reply != nil {
		r.Reply <- err
	}
}

func (m *MemPool) handleGetPendingNonce(r GetPendingNonceRequest) {
	nonce, ok := m.queue.PendingNonce(r.Account)
	r.Reply <- PendingNonceReply{Nonce: nonce, Ok: ok}
}

func (m *MemPool) handleInspect(r InspectRequest) {
	matched, err := m.queue.inspect(r.Filter)
	r.Reply <- InspectReply{Matched: matched, Err: err}
}

func (m *MemPool) handleProcessBatch() {
	m.batchRequested = false
	m.processBatch()
}

// maybeArmBatch self-posts a ProcessBatch event once the pool has crossed
// the configured threshold, provided one isn't already in flight and the
// batch gate (spec §9's back-pressure hook) permits it. The post goes
// through the same request queue the loop reads from, so it is ordered
// after every admission already enqueued ahead of it (spec §5).
func (m *MemPool) maybeArmBatch() {
	if m.batchRequested {
		return
	}
	if m.queue.Len() < m.cfg.TransferBatchSize {
		return
	}
	if !m.cfg.batchGate() {
		return
	}
	m.batchRequested = true
	log.Debug("mempool: batch processing requested", "len", m.queue.Len())
	m.reqs.Send(request(processBatchRequest{}))
}

// admit implements spec §4.3.1. The dedupe fast path runs first so a
// resubmission of an already-pending hash never pays for the per-account
// nonce check at all.
func (m *MemPool) admit(tx TransferTx) error {
	hash := tx.Hash()
	if m.dd.seenBefore(hash) {
		m.metrics.RejectedTotal.WithLabelValues("already_known").Inc()
		log.Debug("mempool: short-circuited already-known transaction", "from", tx.From, "nonce", tx.Nonce)
		return ErrAlreadyKnown
	}
	if aq, exists := m.queue.queues[tx.From]; exists {
		if aq.Len() >= MaxTransactionsPerAccount {
			m.dd.seen.Remove(hash) // not admitted: forget it again
			m.metrics.RejectedTotal.WithLabelValues("too_many_per_account").Inc()
			return ErrTooManyPerAccount
		}
		pending := aq.PendingNonce()
		if tx.Nonce != pending {
			m.dd.seen.Remove(hash) // not admitted: forget it again
			m.metrics.RejectedTotal.WithLabelValues("nonce_out_of_sequence").Inc()
			return &NonceOutOfSequenceError{Expected: pending, Got: tx.Nonce}
		}
	}
	m.queue.Insert(tx)
	m.metrics.AdmittedTotal.Inc()
	m.metrics.PoolLength.Set(float64(m.queue.Len()))
	m.metrics.AccountsGauge.Set(float64(len(m.queue.queues)))
	return nil
}

// processBatch implements spec §4.3.2: move the queue to the state-keeper,
// block for its single reply, adopt the replacement queue, and reinsert
// any valid remainder.
func (m *MemPool) processBatch() {
	outgoing := m.queue
	m.queue = NewTxQueue()

	reply := make(chan BatchResult, 1)
	start := time.Now()
	m.keeper.CreateTransferBlock(CreateTransferBlockRequest{
		Queue:     outgoing,
		DoPadding: m.cfg.DoPadding,
		Reply:     reply,
	})
	result := <-reply
	m.metrics.BatchDuration.Observe(time.Since(start).Seconds())
	m.metrics.BatchesTotal.Inc()

	m.queue = result.Queue
	if m.queue == nil {
		m.queue = NewTxQueue()
	}

	switch {
	case result.Applied != nil:
		log.Info("mempool: batch applied", "count", len(result.Applied.Applied), "block", result.Applied.BlockNumber)
		m.appliedFeed.Send(*result.Applied)
	case result.Rejected != nil:
		invalidHashes := mapset.NewThreadUnsafeSet[common.Hash]()
		for _, tx := range result.Rejected.Invalid {
			invalidHashes.Add(tx.Hash())
		}
		log.Warn("mempool: batch rejected", "invalid", invalidHashes.Cardinality(), "valid_remainder", len(result.Rejected.Valid))
		m.metrics.DroppedTotal.Add(float64(invalidHashes.Cardinality()))
		m.metrics.ReinsertedTotal.Add(float64(len(result.Rejected.Valid)))
		m.queue.BatchInsert(result.Rejected.Valid)
	}
	m.metrics.PoolLength.Set(float64(m.queue.Len()))
	m.metrics.AccountsGauge.Set(float64(len(m.queue.queues)))
	m.maybeArmBatch()
}
