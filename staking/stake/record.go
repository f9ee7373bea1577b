// Copyright (c) 2026 The Quorix developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/quorix-network/quorix/quorix"
)

// ErrInvalidDuration is returned when a stake declares a duration
// that has no configured multiplier level.
var ErrInvalidDuration = errors.New("stake duration has no configured level")

// Record is one stake instance, owned by exactly one account.
// It is created by a stake-create transaction, may be halved exactly once
// by the expiry processor, and ends its live phase when redeemed.
type Record struct {
	ID           quorix.Bytes32
	Amount       *big.Int // principal locked, smallest currency units
	Duration     uint32   // seconds, one of the configured levels
	Weight       *big.Int // current stake weight
	CreatedAt    uint64   // unix seconds, network time
	RedeemableAt uint64   // CreatedAt + Duration
	Redeemed     bool
	Halved       bool
}

// NewRecord computes a stake record from its declaration.
// Weight = amount * multiplier(duration) / 10.
func NewRecord(p *Params, id quorix.Bytes32, amount *big.Int, duration uint32, createdAt uint64) (*Record, error) {
	multiplier, ok := p.Multiplier(duration)
	if !ok {
		return nil, ErrInvalidDuration
	}
	return &Record{
		ID:           id,
		Amount:       new(big.Int).Set(amount),
		Duration:     duration,
		Weight:       CalculateWeight(amount, multiplier),
		CreatedAt:    createdAt,
		RedeemableAt: createdAt + uint64(duration),
	}, nil
}

// CalculateWeight returns amount * multiplier where the multiplier is
// expressed in tenths (15 means 1.5x). Integer truncation only.
func CalculateWeight(amount *big.Int, multiplier uint32) *big.Int {
	weight := new(big.Int).Mul(amount, big.NewInt(int64(multiplier)))
	return weight.Div(weight, big.NewInt(multiplierDenominator))
}

// Halve applies the one-time maturity decay: weight becomes floor(weight/2).
// It returns false if the record was already halved.
func (r *Record) Halve() bool {
	if r.Halved {
		return false
	}
	r.Weight = new(big.Int).Div(r.Weight, big.NewInt(2))
	r.Halved = true
	return true
}

// Redeemable reports whether the stake may be redeemed at the given time.
// A halved stake is redeemable immediately; otherwise the maturity
// timestamp must have been reached (inclusive).
func (r *Record) Redeemable(now uint64) bool {
	return r.Halved || now >= r.RedeemableAt
}

// Live reports whether the stake still contributes to its owner's weight.
func (r *Record) Live() bool {
	return !r.Redeemed
}

// Copy returns a deep copy of the record.
func (r *Record) Copy() *Record {
	c := *r
	c.Amount = new(big.Int).Set(r.Amount)
	c.Weight = new(big.Int).Set(r.Weight)
	return &c
}
