// Copyright (c) 2026 The Quorix developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/ethereum/go-ethereum/event"

	"github.com/quorix-network/quorix/quorix"
)

// EventKind enumerates stake lifecycle events.
type EventKind int

const (
	StakeCreated EventKind = iota
	StakeRedeemed
	StakeReleased
)

func (k EventKind) String() string {
	switch k {
	case StakeCreated:
		return "stake.created"
	case StakeRedeemed:
		return "stake.redeemed"
	case StakeReleased:
		return "stake.released"
	default:
		return "stake.unknown"
	}
}

// Event is delivered to subscribers after a successful apply. It carries the
// stake's transaction data so downstream consumers need no state lookup.
type Event struct {
	Kind     EventKind
	Sender   quorix.Address
	StakeID  quorix.Bytes32
	Amount   *big.Int // stake principal
	Duration uint32
	Fee      *big.Int // nil for processor-driven events
	Time     uint64
}

// SubscribeEvents receivers will receive stake lifecycle events.
func (e *Engine) SubscribeEvents(ch chan *Event) event.Subscription {
	return e.scope.Track(e.feed.Subscribe(ch))
}

func (e *Engine) emit(ev *Event) {
	e.feed.Send(ev)
}
