// Copyright (c) 2026 The Quorix developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/ethereum/go-ethereum/event"

	"github.com/quorix-network/quorix/expirydb"
	"github.com/quorix-network/quorix/log"
	"github.com/quorix-network/quorix/metrics"
	"github.com/quorix-network/quorix/staking/stake"
)

var logger = log.WithContext("pkg", "staking")

// SetLogger overrides the package logger.
func SetLogger(l log.Logger) {
	logger = l
}

var (
	metricOpCount      = metrics.LazyLoadCounterVec("staking_op_count", []string{"op"})
	metricExpiredCount = metrics.LazyLoadCounter("staking_expired_stake_count")
	metricStaleCount   = metrics.LazyLoadCounter("staking_stale_expiry_entry_count")
)

// Engine applies, reverts and expires stake transactions against account
// state snapshots. All collaborators are passed in explicitly; the engine
// resolves nothing from ambient globals.
//
// Operations take the target snapshot as a parameter so that the confirmed
// and the transaction-pool snapshots can be kept in sync by applying the
// same deterministic mutation to each.
type Engine struct {
	params *stake.Params
	index  *expirydb.ExpiryDB

	feed  event.Feed
	scope event.SubscriptionScope
}

// New creates a staking engine over the given milestone params and expiry index.
func New(params *stake.Params, index *expirydb.ExpiryDB) *Engine {
	return &Engine{
		params: params,
		index:  index,
	}
}

// Params returns the milestone params the engine operates under.
func (e *Engine) Params() *stake.Params {
	return e.params
}

// Close unsubscribes all event subscribers.
func (e *Engine) Close() {
	e.scope.Close()
}
