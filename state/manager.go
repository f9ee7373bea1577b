// Copyright (c) 2026 The Quorix developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"
	"sync"

	"github.com/quorix-network/quorix/quorix"
)

// Manager holds one independent snapshot of account state. A node keeps two:
// the confirmed-chain snapshot and the transaction-pool snapshot. Both are
// mutated by applying the same deterministic operations, never by aliasing.
//
// Operations against different accounts may run concurrently; operations
// against the same account are serialized by the surrounding ledger, the
// manager only guards its own bookkeeping.
type Manager struct {
	mu       sync.RWMutex
	accounts map[quorix.Address]*Account

	reindexed func(*Account) // notified after an account mutation
}

// NewManager creates an empty state snapshot.
func NewManager() *Manager {
	return &Manager{
		accounts: make(map[quorix.Address]*Account),
	}
}

// OnReindex installs a hook invoked whenever Reindex is called for an account.
func (m *Manager) OnReindex(fn func(*Account)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reindexed = fn
}

// Get returns the account for the given address, if it exists.
func (m *Manager) Get(addr quorix.Address) (*Account, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	acc, ok := m.accounts[addr]
	return acc, ok
}

// GetOrCreate returns the account for the given address,
// creating an empty one if absent.
func (m *Manager) GetOrCreate(addr quorix.Address) *Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[addr]
	if !ok {
		acc = newAccount(addr)
		m.accounts[addr] = acc
	}
	return acc
}

// Reindex signals that the account was mutated so dependent indexes can refresh.
func (m *Manager) Reindex(acc *Account) {
	m.mu.RLock()
	fn := m.reindexed
	m.mu.RUnlock()
	if fn != nil {
		fn(acc)
	}
}

// AdjustVoteBalance applies a vote-total delta to the delegate the given
// account votes for. A no-op for non-voting accounts. The caller applies it
// in the same step as the balance/weight mutation that produced the delta.
func (m *Manager) AdjustVoteBalance(voter *Account, delta *big.Int) {
	if !voter.HasVoted() || delta.Sign() == 0 {
		return
	}
	delegate := m.GetOrCreate(*voter.Vote)
	delegate.VoteBalance.Add(delegate.VoteBalance, delta)
	m.Reindex(delegate)
}

// Len returns the number of accounts in the snapshot.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.accounts)
}

// Copy returns a deep copy of the snapshot, e.g. to seed a pool snapshot
// from the confirmed one.
func (m *Manager) Copy() *Manager {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c := NewManager()
	for addr, acc := range m.accounts {
		c.accounts[addr] = acc.Copy()
	}
	return c
}
