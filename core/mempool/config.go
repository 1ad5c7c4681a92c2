// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import "fmt"

// Config holds the mempool's tunables (spec §6).
type Config struct {
	// TransferBatchSize is the pending-length threshold at which a batch
	// is requested. Must be > 0.
	TransferBatchSize int

	// DoPadding is passed through to CreateTransferBlockRequest unchanged;
	// the state-keeper decides what, if anything, it means.
	DoPadding bool

	// BatchGate is consulted before arming a batch in addition to the
	// length threshold, the hook spec §9 describes for back-pressure from
	// the downstream chain ("Ethereum queue not too long"). A nil BatchGate
	// always permits batching.
	BatchGate func() bool

	// RequestQueueCapacity bounds the internal unbounded-queue pump's
	// backlog warning threshold; it does not reject sends. Zero disables
	// the warning.
	RequestQueueCapacity int
}

// DefaultConfig returns a Config with conservative defaults.
func DefaultConfig() Config {
	return Config{
		TransferBatchSize:     256,
		DoPadding:             false,
		RequestQueueCapacity:  8192,
	}
}

// Validate checks the configuration for internal consistency.
func (c Config) Validate() error {
	if c.TransferBatchSize <= 0 {
		return fmt.Errorf("TransferBatchSize must be > 0, got %d", c.TransferBatchSize)
	}
	return nil
}

func (c Config) batchGate() bool {
	if c.BatchGate == nil {
		return true
	}
	return c.BatchGate()
}
