// Copyright (c) 2026 The Quorix developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/quorix-network/quorix/expirydb"
	"github.com/quorix-network/quorix/quorix"
	"github.com/quorix-network/quorix/staking/stake"
	"github.com/quorix-network/quorix/state"
)

// ValidateCreate checks a stake-create transaction against the snapshot.
// Checks run in a fixed order, the first failure wins, and no state is
// touched. lastBlockTime is the timestamp of the last known block.
func (e *Engine) ValidateCreate(snap *state.Manager, tx *CreateTx, lastBlockTime uint64) error {
	tolerance := e.params.TimestampTolerance * e.params.BlockInterval
	if tx.Timestamp > lastBlockTime+tolerance || tx.Timestamp+tolerance < lastBlockTime {
		return ErrStakeTimestamp
	}

	acc, _ := snap.Get(tx.Sender)
	if acc != nil {
		if _, exists := acc.Stakes[tx.ID]; exists {
			return ErrStakeAlreadyExists
		}
	}

	amount := tx.Amount
	if amount == nil {
		amount = new(big.Int)
	}
	if new(big.Int).Mod(amount, quorix.BaseUnit).Sign() != 0 {
		return ErrStakeNotInteger
	}

	available := new(big.Int)
	if acc != nil {
		available.Sub(acc.Balance, feeOf(tx.Fee))
	}
	if amount.Cmp(available) > 0 {
		return ErrNotEnoughBalance
	}

	if _, ok := e.params.Multiplier(tx.Duration); !ok {
		return ErrStakeDuration
	}

	// also rejects zero and negative amounts, the minimum is positive
	if amount.Cmp(e.params.MinimumStake) < 0 {
		return ErrLessThanMinimumStake
	}
	return nil
}

// ApplyCreate applies a validated stake-create transaction to the snapshot:
// debits the principal plus fee, inserts the stake record, adds its weight
// to the aggregate and arms the expiry index. The delegate vote total of a
// voting sender is adjusted by the net delta in the same step.
func (e *Engine) ApplyCreate(snap *state.Manager, tx *CreateTx) error {
	return e.applyCreate(snap, tx, 0)
}

// ReplayCreate applies a stake-create transaction during bootstrap from
// persisted history. A stake whose maturity already passed at chainTime is
// created pre-halved with no expiry index entry, reproducing the end state
// the processor would have produced.
func (e *Engine) ReplayCreate(snap *state.Manager, tx *CreateTx, chainTime uint64) error {
	return e.applyCreate(snap, tx, chainTime)
}

func (e *Engine) applyCreate(snap *state.Manager, tx *CreateTx, chainTime uint64) error {
	rec, err := stake.NewRecord(e.params, tx.ID, tx.Amount, tx.Duration, tx.Timestamp)
	if err != nil {
		return errors.Wrap(err, "apply stake create")
	}

	matured := chainTime != 0 && rec.RedeemableAt <= chainTime
	if matured {
		rec.Halve()
	} else {
		// the index write goes first so a store failure leaves state untouched
		err := e.index.Insert(&expirydb.Entry{
			Address:      tx.Sender,
			StakeID:      rec.ID,
			RedeemableAt: rec.RedeemableAt,
		})
		if err != nil {
			return errors.Wrap(err, "apply stake create")
		}
	}

	debit := new(big.Int).Add(tx.Amount, feeOf(tx.Fee))

	acc := snap.GetOrCreate(tx.Sender)
	acc.Balance.Sub(acc.Balance, debit)
	acc.Stakes[rec.ID] = rec
	acc.StakeWeight.Add(acc.StakeWeight, rec.Weight)

	voteDelta := new(big.Int).Sub(rec.Weight, debit)
	snap.AdjustVoteBalance(acc, voteDelta)
	snap.Reindex(acc)

	metricOpCount().AddWithLabel(1, map[string]string{"op": "create"})
	logger.Debug("stake created",
		"stake", rec.ID,
		"sender", tx.Sender,
		"amount", tx.Amount,
		"weight", rec.Weight,
		"redeemableAt", rec.RedeemableAt,
	)
	return nil
}

// RevertCreate undoes exactly the mutations ApplyCreate made: credits the
// principal plus fee back, removes the stake record, subtracts its current
// weight and disarms the expiry index entry. If the stake was halved before
// the revert, the halved weight is what gets subtracted; the surrounding
// replay decides whether a halving revert runs first.
func (e *Engine) RevertCreate(snap *state.Manager, tx *CreateTx) error {
	acc, ok := snap.Get(tx.Sender)
	if !ok {
		return errors.Wrap(ErrStakeNotFound, "revert stake create")
	}
	rec, ok := acc.Stakes[tx.ID]
	if !ok {
		return errors.Wrap(ErrStakeNotFound, "revert stake create")
	}

	err := e.index.Remove(&expirydb.Entry{
		Address:      tx.Sender,
		StakeID:      rec.ID,
		RedeemableAt: rec.RedeemableAt,
	})
	if err != nil {
		return errors.Wrap(err, "revert stake create")
	}

	credit := new(big.Int).Add(rec.Amount, feeOf(tx.Fee))
	acc.Balance.Add(acc.Balance, credit)
	acc.StakeWeight.Sub(acc.StakeWeight, rec.Weight)
	delete(acc.Stakes, tx.ID)

	voteDelta := new(big.Int).Sub(credit, rec.Weight)
	snap.AdjustVoteBalance(acc, voteDelta)
	snap.Reindex(acc)

	metricOpCount().AddWithLabel(1, map[string]string{"op": "revert_create"})
	logger.Debug("stake create reverted", "stake", rec.ID, "sender", tx.Sender)
	return nil
}

// ExecuteCreate is the ledger-facing entry point: validate, apply and
// announce the stake.created event.
func (e *Engine) ExecuteCreate(snap *state.Manager, tx *CreateTx, lastBlockTime uint64) error {
	if err := e.ValidateCreate(snap, tx, lastBlockTime); err != nil {
		return err
	}
	if err := e.ApplyCreate(snap, tx); err != nil {
		return err
	}
	e.emit(&Event{
		Kind:     StakeCreated,
		Sender:   tx.Sender,
		StakeID:  tx.ID,
		Amount:   tx.Amount,
		Duration: tx.Duration,
		Fee:      tx.Fee,
		Time:     tx.Timestamp,
	})
	return nil
}
