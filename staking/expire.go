// Copyright (c) 2026 The Quorix developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/quorix-network/quorix/expirydb"
	"github.com/quorix-network/quorix/state"
)

// ProcessExpirations drains all expiry index entries due by blockTime and
// halves the weight of each matured, unredeemed stake. It is invoked once
// per round boundary with the timestamp of the block that closed the round.
//
// A stale entry, one whose stake vanished through chain reversion or was
// already halved or redeemed, is dropped silently. A failing entry is
// logged and skipped; it never aborts the remaining entries. Re-running
// with the same or a later timestamp is a no-op for already processed
// stakes, so a skipped run only defers decay to the next round boundary.
func (e *Engine) ProcessExpirations(snap *state.Manager, blockTime uint64) error {
	due, err := e.index.Due(blockTime)
	if err != nil {
		return errors.Wrap(err, "query due stakes")
	}
	if len(due) == 0 {
		return nil
	}

	logger.Info("processing stake expirations", "due", len(due), "blockTime", blockTime)
	for _, entry := range due {
		if err := e.expireOne(snap, entry, blockTime); err != nil {
			logger.Warn("failed to expire stake",
				"stake", entry.StakeID,
				"address", entry.Address,
				"err", err,
			)
		}
	}
	return nil
}

// expireOne halves a single due stake. The account's aggregate weight and,
// for a voting account, the delegate's vote total are updated together
// before the next entry is touched.
func (e *Engine) expireOne(snap *state.Manager, entry *expirydb.Entry, blockTime uint64) error {
	acc, ok := snap.Get(entry.Address)
	if !ok {
		return e.dropStale(entry)
	}
	stakeRec, ok := acc.Stakes[entry.StakeID]
	if !ok || stakeRec.Halved || stakeRec.Redeemed {
		return e.dropStale(entry)
	}

	oldWeight := new(big.Int).Set(stakeRec.Weight)
	stakeRec.Halve()

	acc.StakeWeight.Sub(acc.StakeWeight, oldWeight)
	acc.StakeWeight.Add(acc.StakeWeight, stakeRec.Weight)

	voteDelta := new(big.Int).Sub(stakeRec.Weight, oldWeight)
	snap.AdjustVoteBalance(acc, voteDelta)
	snap.Reindex(acc)

	if err := e.index.Remove(entry); err != nil {
		return errors.Wrap(err, "remove expiry entry")
	}

	e.emit(&Event{
		Kind:     StakeReleased,
		Sender:   acc.Address,
		StakeID:  stakeRec.ID,
		Amount:   stakeRec.Amount,
		Duration: stakeRec.Duration,
		Time:     blockTime,
	})
	metricExpiredCount().Add(1)
	logger.Info("stake released",
		"stake", stakeRec.ID,
		"address", acc.Address,
		"weight", stakeRec.Weight,
	)
	return nil
}

// dropStale removes an index entry whose stake no longer exists in the
// tracked form: the chain reverted past its creation, or it was already
// halved or redeemed. An expected divergence, not an error.
func (e *Engine) dropStale(entry *expirydb.Entry) error {
	logger.Info("dropping stale expiry entry",
		"stake", entry.StakeID,
		"address", entry.Address,
	)
	metricStaleCount().Add(1)
	return e.index.Remove(entry)
}
