// Copyright (c) 2026 The Quorix developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"sync"

	"github.com/quorix-network/quorix/quorix"
)

// Gate enforces the pool admission rule for stake transactions: an account
// may have at most one stake create or redeem transaction in flight.
type Gate struct {
	mu      sync.Mutex
	pending map[quorix.Address]quorix.Bytes32
}

// NewGate creates an empty admission gate.
func NewGate() *Gate {
	return &Gate{
		pending: make(map[quorix.Address]quorix.Bytes32),
	}
}

// Admit registers a stake transaction as pending for the sender. It returns
// ErrStakePending if a different stake transaction from the same sender is
// already in the pool. Re-admitting the same transaction is a no-op.
func (g *Gate) Admit(sender quorix.Address, txID quorix.Bytes32) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if existing, ok := g.pending[sender]; ok && existing != txID {
		return ErrStakePending
	}
	g.pending[sender] = txID
	return nil
}

// Release forgets the pending transaction, called when it is confirmed or
// evicted from the pool. Releasing an unknown pair is a no-op.
func (g *Gate) Release(sender quorix.Address, txID quorix.Bytes32) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if existing, ok := g.pending[sender]; ok && existing == txID {
		delete(g.pending, sender)
	}
}

// Pending reports whether the sender has a stake transaction in flight.
func (g *Gate) Pending(sender quorix.Address) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.pending[sender]
	return ok
}
