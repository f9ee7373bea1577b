// Copyright (c) 2026 The Quorix developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"

	"github.com/quorix-network/quorix/quorix"
	"github.com/quorix-network/quorix/staking/stake"
)

// Account is the mutable per-account state this engine touches: balance,
// the stake ledger and its aggregate weight, and delegate vote bookkeeping.
type Account struct {
	Address quorix.Address

	// Balance in smallest currency units.
	Balance *big.Int

	// StakeWeight is the sum of weights of all live (non-redeemed) stakes.
	StakeWeight *big.Int

	// Stakes maps stake id (the creating transaction's id) to the stake record.
	Stakes map[quorix.Bytes32]*stake.Record

	// Vote is the delegate this account currently votes for, nil if none.
	Vote *quorix.Address

	// VoteBalance is this account's vote total when it is a registered
	// delegate: the balances plus stake weights of its voters.
	VoteBalance *big.Int
}

func newAccount(addr quorix.Address) *Account {
	return &Account{
		Address:     addr,
		Balance:     new(big.Int),
		StakeWeight: new(big.Int),
		Stakes:      make(map[quorix.Bytes32]*stake.Record),
		VoteBalance: new(big.Int),
	}
}

// HasVoted reports whether the account has an active delegate vote.
func (a *Account) HasVoted() bool {
	return a.Vote != nil
}

// LiveStakeWeight recomputes the aggregate weight from the stake ledger.
// StakeWeight must equal this value after every operation.
func (a *Account) LiveStakeWeight() *big.Int {
	total := new(big.Int)
	for _, s := range a.Stakes {
		if s.Live() {
			total.Add(total, s.Weight)
		}
	}
	return total
}

// Copy returns a deep copy of the account.
func (a *Account) Copy() *Account {
	c := newAccount(a.Address)
	c.Balance.Set(a.Balance)
	c.StakeWeight.Set(a.StakeWeight)
	c.VoteBalance.Set(a.VoteBalance)
	for id, s := range a.Stakes {
		c.Stakes[id] = s.Copy()
	}
	if a.Vote != nil {
		vote := *a.Vote
		c.Vote = &vote
	}
	return c
}
