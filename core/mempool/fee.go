// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import "github.com/holiman/uint256"

// Fee is a non-negative fee amount with a total order and a zero element
// (spec §3). It is backed by a fixed-width 256-bit unsigned integer, the
// same representation geth uses for gas price and tip amounts, which gives
// exact arithmetic over the full range of realistic fee values without the
// rounding a float64 priority would introduce.
type Fee struct {
	v *uint256.Int
}

// ZeroFee returns the zero fee element.
func ZeroFee() Fee {
	return Fee{v: new(uint256.Int)}
}

// NewFee constructs a Fee from a uint64 amount.
func NewFee(amount uint64) Fee {
	return Fee{v: new(uint256.Int).SetUint64(amount)}
}

// NewFeeFromBig constructs a Fee from a uint256.Int, taking ownership of a
// copy of it.
func NewFeeFromBig(v *uint256.Int) Fee {
	if v == nil {
		return ZeroFee()
	}
	return Fee{v: new(uint256.Int).Set(v)}
}

func (f Fee) bigOrZero() *uint256.Int {
	if f.v == nil {
		return new(uint256.Int)
	}
	return f.v
}

// Cmp returns -1, 0, or +1 as f is less than, equal to, or greater than
// other.
func (f Fee) Cmp(other Fee) int {
	return f.bigOrZero().Cmp(other.bigOrZero())
}

// IsZero reports whether f is the zero fee.
func (f Fee) IsZero() bool {
	return f.bigOrZero().IsZero()
}

// Uint64 returns the fee as a uint64, saturating at the maximum value on
// overflow.
func (f Fee) Uint64() uint64 {
	if !f.bigOrZero().IsUint64() {
		return ^uint64(0)
	}
	return f.bigOrZero().Uint64()
}

func (f Fee) String() string {
	return f.bigOrZero().Dec()
}

// parseFeeDecimal parses a base-10 string into a Fee.
func parseFeeDecimal(s string) (Fee, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return Fee{}, err
	}
	return Fee{v: v}, nil
}
