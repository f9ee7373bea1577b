// Copyright (c) 2026 The Quorix developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import "github.com/pkg/errors"

// Create-time validation failures. The transaction is rejected before any
// state mutation; validation is side-effect free and fully precedes apply.
var (
	ErrStakeTimestamp       = errors.New("stake timestamp out of tolerance of last block time")
	ErrStakeAlreadyExists   = errors.New("stake already exists for this transaction id")
	ErrStakeNotInteger      = errors.New("stake amount must be a whole multiple of the base unit")
	ErrNotEnoughBalance     = errors.New("balance insufficient to cover stake amount and fee")
	ErrStakeDuration        = errors.New("stake duration is not a configured level")
	ErrLessThanMinimumStake = errors.New("stake amount is below the configured minimum")
)

// Redeem-time validation failures, same guarantee.
var (
	ErrWalletHasNoStake      = errors.New("wallet has no stakes")
	ErrStakeNotFound         = errors.New("stake not found")
	ErrStakeAlreadyRedeemed  = errors.New("stake already redeemed")
	ErrStakeNotYetRedeemable = errors.New("stake not yet redeemable")
)

// ErrStakePending rejects pool admission while the sender already has a
// stake transaction in flight.
var ErrStakePending = errors.New("stake transaction from this wallet is already in the pool")
