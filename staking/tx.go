// Copyright (c) 2026 The Quorix developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/quorix-network/quorix/quorix"
)

// CreateTx is the stake-create transaction payload, as decoded by the
// surrounding ledger. The transaction is self-referential: there is no
// recipient leg, the sender locks its own funds.
type CreateTx struct {
	ID        quorix.Bytes32 // transaction id, becomes the stake id
	Sender    quorix.Address
	Amount    *big.Int // principal to lock, smallest currency units
	Duration  uint32   // seconds, must be a configured level
	Timestamp uint64   // declared creation time, validated against block time
	Fee       *big.Int
}

// RedeemTx is the stake-redeem transaction payload.
type RedeemTx struct {
	ID      quorix.Bytes32 // transaction id
	Sender  quorix.Address
	StakeID quorix.Bytes32 // id of the stake to redeem
	Fee     *big.Int
}

func feeOf(fee *big.Int) *big.Int {
	if fee == nil {
		return new(big.Int)
	}
	return fee
}
