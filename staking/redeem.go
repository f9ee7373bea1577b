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

// ValidateRedeem checks a stake-redeem transaction against the snapshot.
// A stake is redeemable once halved, or once the current time reached its
// maturity timestamp (inclusive). No state is touched.
func (e *Engine) ValidateRedeem(snap *state.Manager, tx *RedeemTx, now uint64) error {
	acc, ok := snap.Get(tx.Sender)
	if !ok || len(acc.Stakes) == 0 {
		return ErrWalletHasNoStake
	}
	rec, ok := acc.Stakes[tx.StakeID]
	if !ok {
		return ErrStakeNotFound
	}
	if rec.Redeemed {
		return ErrStakeAlreadyRedeemed
	}
	if !rec.Redeemable(now) {
		return ErrStakeNotYetRedeemable
	}
	return nil
}

// ApplyRedeem applies a validated redemption: credits the principal back
// (less the fee), subtracts the stake's current weight from the aggregate
// and marks the record redeemed. The expiry index entry, if still armed,
// is disarmed.
func (e *Engine) ApplyRedeem(snap *state.Manager, tx *RedeemTx) error {
	acc, ok := snap.Get(tx.Sender)
	if !ok {
		return errors.Wrap(ErrStakeNotFound, "apply stake redeem")
	}
	rec, ok := acc.Stakes[tx.StakeID]
	if !ok {
		return errors.Wrap(ErrStakeNotFound, "apply stake redeem")
	}

	// no-op when the processor already consumed the entry
	err := e.index.Remove(&expirydb.Entry{
		Address:      tx.Sender,
		StakeID:      rec.ID,
		RedeemableAt: rec.RedeemableAt,
	})
	if err != nil {
		return errors.Wrap(err, "apply stake redeem")
	}

	credit := new(big.Int).Sub(rec.Amount, feeOf(tx.Fee))
	acc.Balance.Add(acc.Balance, credit)
	acc.StakeWeight.Sub(acc.StakeWeight, rec.Weight)
	rec.Redeemed = true

	voteDelta := new(big.Int).Sub(credit, rec.Weight)
	snap.AdjustVoteBalance(acc, voteDelta)
	snap.Reindex(acc)

	metricOpCount().AddWithLabel(1, map[string]string{"op": "redeem"})
	logger.Debug("stake redeemed", "stake", rec.ID, "sender", tx.Sender, "amount", rec.Amount)
	return nil
}

// RevertRedeem undoes a redemption: debits the credited principal, restores
// the stake's weight contribution and clears the redeemed flag. The expiry
// index entry is deliberately not re-armed; a reverted redemption of an
// already matured stake must not resurrect expiry tracking, that is the
// create replay path's responsibility.
func (e *Engine) RevertRedeem(snap *state.Manager, tx *RedeemTx) error {
	acc, ok := snap.Get(tx.Sender)
	if !ok {
		return errors.Wrap(ErrStakeNotFound, "revert stake redeem")
	}
	rec, ok := acc.Stakes[tx.StakeID]
	if !ok {
		return errors.Wrap(ErrStakeNotFound, "revert stake redeem")
	}

	credit := new(big.Int).Sub(rec.Amount, feeOf(tx.Fee))
	acc.Balance.Sub(acc.Balance, credit)
	acc.StakeWeight.Add(acc.StakeWeight, rec.Weight)
	rec.Redeemed = false

	voteDelta := new(big.Int).Sub(rec.Weight, credit)
	snap.AdjustVoteBalance(acc, voteDelta)
	snap.Reindex(acc)

	metricOpCount().AddWithLabel(1, map[string]string{"op": "revert_redeem"})
	logger.Debug("stake redeem reverted", "stake", rec.ID, "sender", tx.Sender)
	return nil
}

// ExecuteRedeem is the ledger-facing entry point: validate, apply and
// announce the stake.redeemed event.
func (e *Engine) ExecuteRedeem(snap *state.Manager, tx *RedeemTx, now uint64) error {
	if err := e.ValidateRedeem(snap, tx, now); err != nil {
		return err
	}
	if err := e.ApplyRedeem(snap, tx); err != nil {
		return err
	}
	acc, _ := snap.Get(tx.Sender)
	rec := acc.Stakes[tx.StakeID]
	e.emit(&Event{
		Kind:     StakeRedeemed,
		Sender:   tx.Sender,
		StakeID:  tx.StakeID,
		Amount:   rec.Amount,
		Duration: rec.Duration,
		Fee:      tx.Fee,
		Time:     now,
	})
	return nil
}
