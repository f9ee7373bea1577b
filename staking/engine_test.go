// Copyright (c) 2026 The Quorix developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quorix-network/quorix/expirydb"
	"github.com/quorix-network/quorix/quorix"
	"github.com/quorix-network/quorix/staking/stake"
	"github.com/quorix-network/quorix/state"
)

const genesisTime uint64 = 1_700_000_000

func newTestEngine(t *testing.T) *Engine {
	index, err := expirydb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { index.Close() })

	e := New(stake.DefaultParams(), index)
	t.Cleanup(e.Close)
	return e
}

func coins(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), quorix.BaseUnit)
}

func addr(b byte) quorix.Address {
	var a quorix.Address
	a[0] = b
	return a
}

func txID(b byte) quorix.Bytes32 {
	var id quorix.Bytes32
	id[0] = b
	return id
}

func fund(snap *state.Manager, a quorix.Address, balance int64) *state.Account {
	acc := snap.GetOrCreate(a)
	acc.Balance.Set(coins(balance))
	return acc
}

func createTx(id byte, sender quorix.Address, amount *big.Int, duration uint32, fee *big.Int) *CreateTx {
	return &CreateTx{
		ID:        txID(id),
		Sender:    sender,
		Amount:    amount,
		Duration:  duration,
		Timestamp: genesisTime,
		Fee:       fee,
	}
}

// checkInvariant asserts the aggregate weight matches the stake ledger.
func checkInvariant(t *testing.T, acc *state.Account) {
	t.Helper()
	assert.Zero(t, acc.StakeWeight.Cmp(acc.LiveStakeWeight()),
		"aggregate weight %s diverged from ledger %s", acc.StakeWeight, acc.LiveStakeWeight())
}

func TestValidateCreate(t *testing.T) {
	e := newTestEngine(t)
	snap := state.NewManager()
	sender := addr(1)
	fund(snap, sender, 100_000)

	existing := createTx(1, sender, coins(10_000), stake.MediumStakingPeriod, nil)
	require.NoError(t, e.ApplyCreate(snap, existing))

	tolerance := e.params.TimestampTolerance * e.params.BlockInterval

	tests := []struct {
		name string
		tx   *CreateTx
		err  error
	}{
		{
			"timestamp too far ahead",
			&CreateTx{ID: txID(2), Sender: sender, Amount: coins(10_000), Duration: stake.MediumStakingPeriod, Timestamp: genesisTime + tolerance + 1},
			ErrStakeTimestamp,
		},
		{
			"timestamp too far behind",
			&CreateTx{ID: txID(2), Sender: sender, Amount: coins(10_000), Duration: stake.MediumStakingPeriod, Timestamp: genesisTime - tolerance - 1},
			ErrStakeTimestamp,
		},
		{
			"duplicate stake id",
			createTx(1, sender, coins(10_000), stake.MediumStakingPeriod, nil),
			ErrStakeAlreadyExists,
		},
		{
			"nil amount",
			createTx(2, sender, nil, stake.MediumStakingPeriod, nil),
			ErrLessThanMinimumStake,
		},
		{
			"zero amount reports the duration error first",
			createTx(2, sender, new(big.Int), 12345, nil),
			ErrStakeDuration,
		},
		{
			"fractional amount",
			createTx(2, sender, new(big.Int).Add(coins(10_000), big.NewInt(1)), stake.MediumStakingPeriod, nil),
			ErrStakeNotInteger,
		},
		{
			"amount exceeds balance",
			createTx(2, sender, coins(200_000), stake.MediumStakingPeriod, nil),
			ErrNotEnoughBalance,
		},
		{
			"fee pushes amount over balance",
			createTx(2, sender, coins(90_000), stake.MediumStakingPeriod, coins(1)),
			ErrNotEnoughBalance,
		},
		{
			"unknown duration level",
			createTx(2, sender, coins(10_000), 12345, nil),
			ErrStakeDuration,
		},
		{
			"below minimum stake",
			createTx(2, sender, coins(5), stake.MediumStakingPeriod, nil),
			ErrLessThanMinimumStake,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, e.ValidateCreate(snap, tt.tx, genesisTime), tt.err)
		})
	}

	ok := createTx(3, sender, coins(10_000), stake.MediumStakingPeriod, coins(1))
	assert.NoError(t, e.ValidateCreate(snap, ok, genesisTime))
}

func TestCreateRevertRoundTrip(t *testing.T) {
	e := newTestEngine(t)
	snap := state.NewManager()
	sender := addr(1)
	fund(snap, sender, 100_000)

	tx := createTx(1, sender, coins(10_000), stake.MediumStakingPeriod, coins(1))
	require.NoError(t, e.ApplyCreate(snap, tx))

	acc, _ := snap.Get(sender)
	assert.Equal(t, coins(89_999), acc.Balance)
	assert.Equal(t, coins(15_000), acc.StakeWeight)
	checkInvariant(t, acc)

	has, err := e.index.Has(&expirydb.Entry{
		Address:      sender,
		StakeID:      tx.ID,
		RedeemableAt: genesisTime + uint64(stake.MediumStakingPeriod),
	})
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, e.RevertCreate(snap, tx))

	assert.Equal(t, coins(100_000), acc.Balance)
	assert.Zero(t, acc.StakeWeight.Sign())
	assert.Empty(t, acc.Stakes)
	checkInvariant(t, acc)

	due, err := e.index.Due(genesisTime + uint64(stake.MaxStakingPeriod))
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestRevertCreateAfterHalving(t *testing.T) {
	e := newTestEngine(t)
	snap := state.NewManager()
	sender := addr(1)
	fund(snap, sender, 100_000)

	tx := createTx(1, sender, coins(10_000), stake.MediumStakingPeriod, nil)
	require.NoError(t, e.ApplyCreate(snap, tx))

	acc, _ := snap.Get(sender)
	rec := acc.Stakes[tx.ID]

	require.NoError(t, e.ProcessExpirations(snap, rec.RedeemableAt))
	require.True(t, rec.Halved)
	assert.Equal(t, coins(7_500), acc.StakeWeight)

	// the revert subtracts the halved weight, not the original
	require.NoError(t, e.RevertCreate(snap, tx))

	assert.Equal(t, coins(100_000), acc.Balance)
	assert.Zero(t, acc.StakeWeight.Sign())
	assert.Empty(t, acc.Stakes)
	checkInvariant(t, acc)

	due, err := e.index.Due(rec.RedeemableAt)
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestStakeLifecycle(t *testing.T) {
	e := newTestEngine(t)
	snap := state.NewManager()
	sender := addr(1)
	fund(snap, sender, 100_000)

	tx := createTx(1, sender, coins(10_000), stake.MediumStakingPeriod, coins(1))
	require.NoError(t, e.ExecuteCreate(snap, tx, genesisTime))

	acc, _ := snap.Get(sender)
	rec := acc.Stakes[tx.ID]
	require.NotNil(t, rec)

	redeem := &RedeemTx{ID: txID(2), Sender: sender, StakeID: tx.ID, Fee: coins(1)}

	// one second short of maturity
	err := e.ExecuteRedeem(snap, redeem, rec.RedeemableAt-1)
	assert.ErrorIs(t, err, ErrStakeNotYetRedeemable)

	// maturity itself is redeemable
	require.NoError(t, e.ExecuteRedeem(snap, redeem, rec.RedeemableAt))

	assert.Equal(t, coins(99_998), acc.Balance) // two 1-coin fees paid
	assert.Zero(t, acc.StakeWeight.Sign())
	assert.True(t, rec.Redeemed)
	checkInvariant(t, acc)

	has, err := e.index.Has(&expirydb.Entry{Address: sender, StakeID: tx.ID, RedeemableAt: rec.RedeemableAt})
	require.NoError(t, err)
	assert.False(t, has)
}

func TestValidateRedeem(t *testing.T) {
	e := newTestEngine(t)
	snap := state.NewManager()
	sender := addr(1)
	fund(snap, sender, 100_000)

	redeem := &RedeemTx{ID: txID(9), Sender: sender, StakeID: txID(1)}
	assert.ErrorIs(t, e.ValidateRedeem(snap, redeem, genesisTime), ErrWalletHasNoStake)

	assert.ErrorIs(t,
		e.ValidateRedeem(snap, &RedeemTx{ID: txID(9), Sender: addr(7), StakeID: txID(1)}, genesisTime),
		ErrWalletHasNoStake)

	tx := createTx(1, sender, coins(10_000), stake.MediumStakingPeriod, nil)
	require.NoError(t, e.ApplyCreate(snap, tx))

	assert.ErrorIs(t,
		e.ValidateRedeem(snap, &RedeemTx{ID: txID(9), Sender: sender, StakeID: txID(5)}, genesisTime),
		ErrStakeNotFound)

	acc, _ := snap.Get(sender)
	rec := acc.Stakes[tx.ID]

	require.NoError(t, e.ApplyRedeem(snap, redeem))
	assert.ErrorIs(t, e.ValidateRedeem(snap, redeem, rec.RedeemableAt), ErrStakeAlreadyRedeemed)
}

func TestRedeemRevertRoundTrip(t *testing.T) {
	e := newTestEngine(t)
	snap := state.NewManager()
	sender := addr(1)
	fund(snap, sender, 100_000)

	tx := createTx(1, sender, coins(10_000), stake.MediumStakingPeriod, nil)
	require.NoError(t, e.ApplyCreate(snap, tx))

	acc, _ := snap.Get(sender)
	rec := acc.Stakes[tx.ID]

	redeem := &RedeemTx{ID: txID(2), Sender: sender, StakeID: tx.ID, Fee: coins(1)}
	require.NoError(t, e.ApplyRedeem(snap, redeem))
	require.NoError(t, e.RevertRedeem(snap, redeem))

	assert.Equal(t, coins(90_000), acc.Balance)
	assert.Equal(t, coins(15_000), acc.StakeWeight)
	assert.False(t, rec.Redeemed)
	checkInvariant(t, acc)

	// the revert does not re-arm expiry tracking
	has, err := e.index.Has(&expirydb.Entry{Address: sender, StakeID: tx.ID, RedeemableAt: rec.RedeemableAt})
	require.NoError(t, err)
	assert.False(t, has)
}

func TestRedeemAfterHalving(t *testing.T) {
	e := newTestEngine(t)
	snap := state.NewManager()
	sender := addr(1)
	fund(snap, sender, 100_000)

	tx := createTx(1, sender, coins(10_000), stake.MediumStakingPeriod, nil)
	require.NoError(t, e.ApplyCreate(snap, tx))

	acc, _ := snap.Get(sender)
	rec := acc.Stakes[tx.ID]

	require.NoError(t, e.ProcessExpirations(snap, rec.RedeemableAt))
	assert.True(t, rec.Halved)
	assert.Equal(t, coins(7_500), acc.StakeWeight)

	// a halved stake is redeemable regardless of the clock
	redeem := &RedeemTx{ID: txID(2), Sender: sender, StakeID: tx.ID}
	require.NoError(t, e.ExecuteRedeem(snap, redeem, 0))

	assert.Equal(t, coins(100_000), acc.Balance)
	assert.Zero(t, acc.StakeWeight.Sign())
	checkInvariant(t, acc)
}

func TestVoteBalanceTracksStakeLifecycle(t *testing.T) {
	e := newTestEngine(t)
	snap := state.NewManager()

	delegateAddr := addr(9)
	delegate := fund(snap, delegateAddr, 5_000)

	voter := fund(snap, addr(1), 100_000)
	voter.Vote = &delegateAddr

	// delegate's vote total starts as its own balance plus the voter's
	delegate.VoteBalance.Set(coins(105_000))

	tx := createTx(1, voter.Address, coins(10_000), stake.MediumStakingPeriod, nil)
	require.NoError(t, e.ExecuteCreate(snap, tx, genesisTime))

	// -10,000 balance, +15,000 weight
	assert.Equal(t, coins(110_000), delegate.VoteBalance)

	rec := voter.Stakes[tx.ID]
	require.NoError(t, e.ProcessExpirations(snap, rec.RedeemableAt))

	// weight halved to 7,500
	assert.Equal(t, coins(102_500), delegate.VoteBalance)

	expected := new(big.Int).Add(delegate.Balance, voter.Balance)
	expected.Add(expected, voter.StakeWeight)
	assert.Equal(t, expected, delegate.VoteBalance)

	redeem := &RedeemTx{ID: txID(2), Sender: voter.Address, StakeID: tx.ID}
	require.NoError(t, e.ExecuteRedeem(snap, redeem, rec.RedeemableAt))

	// back to balances only
	assert.Equal(t, coins(105_000), delegate.VoteBalance)
	checkInvariant(t, voter)
}

func TestRejectedCreateLeavesStateUntouched(t *testing.T) {
	e := newTestEngine(t)
	snap := state.NewManager()
	sender := addr(1)
	fund(snap, sender, 100_000)

	tx := createTx(1, sender, new(big.Int).Add(coins(10_000), big.NewInt(1)), stake.MediumStakingPeriod, nil)
	err := e.ExecuteCreate(snap, tx, genesisTime)
	assert.ErrorIs(t, err, ErrStakeNotInteger)

	acc, _ := snap.Get(sender)
	assert.Equal(t, coins(100_000), acc.Balance)
	assert.Empty(t, acc.Stakes)
	assert.Zero(t, acc.StakeWeight.Sign())

	due, err := e.index.Due(genesisTime + uint64(stake.MaxStakingPeriod))
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestReplayCreate(t *testing.T) {
	e := newTestEngine(t)
	snap := state.NewManager()
	sender := addr(1)
	fund(snap, sender, 100_000)

	tx := createTx(1, sender, coins(10_000), stake.MediumStakingPeriod, nil)
	maturity := genesisTime + uint64(stake.MediumStakingPeriod)

	// replaying past maturity reproduces the halved end state with no index entry
	require.NoError(t, e.ReplayCreate(snap, tx, maturity+1))

	acc, _ := snap.Get(sender)
	rec := acc.Stakes[tx.ID]
	require.NotNil(t, rec)
	assert.True(t, rec.Halved)
	assert.Equal(t, coins(7_500), acc.StakeWeight)
	checkInvariant(t, acc)

	has, err := e.index.Has(&expirydb.Entry{Address: sender, StakeID: tx.ID, RedeemableAt: maturity})
	require.NoError(t, err)
	assert.False(t, has)
}

func TestReplayCreateBeforeMaturity(t *testing.T) {
	e := newTestEngine(t)
	snap := state.NewManager()
	sender := addr(1)
	fund(snap, sender, 100_000)

	tx := createTx(1, sender, coins(10_000), stake.MediumStakingPeriod, nil)
	maturity := genesisTime + uint64(stake.MediumStakingPeriod)

	require.NoError(t, e.ReplayCreate(snap, tx, maturity-1))

	acc, _ := snap.Get(sender)
	rec := acc.Stakes[tx.ID]
	require.NotNil(t, rec)
	assert.False(t, rec.Halved)
	assert.Equal(t, coins(15_000), acc.StakeWeight)

	has, err := e.index.Has(&expirydb.Entry{Address: sender, StakeID: tx.ID, RedeemableAt: maturity})
	require.NoError(t, err)
	assert.True(t, has)
}

func TestSnapshotsConverge(t *testing.T) {
	e := newTestEngine(t)

	confirmed := state.NewManager()
	sender := addr(1)
	fund(confirmed, sender, 100_000)
	pool := confirmed.Copy()

	tx := createTx(1, sender, coins(10_000), stake.MediumStakingPeriod, coins(1))
	require.NoError(t, e.ApplyCreate(pool, tx))
	require.NoError(t, e.ApplyCreate(confirmed, tx))

	cAcc, _ := confirmed.Get(sender)
	pAcc, _ := pool.Get(sender)
	assert.Equal(t, cAcc.Balance, pAcc.Balance)
	assert.Equal(t, cAcc.StakeWeight, pAcc.StakeWeight)
	checkInvariant(t, cAcc)
	checkInvariant(t, pAcc)

	// the shared index absorbed the double insert
	due, err := e.index.Due(genesisTime + uint64(stake.MediumStakingPeriod))
	require.NoError(t, err)
	assert.Len(t, due, 1)
}

func TestSubscribeEvents(t *testing.T) {
	e := newTestEngine(t)
	snap := state.NewManager()
	sender := addr(1)
	fund(snap, sender, 100_000)

	ch := make(chan *Event, 3)
	sub := e.SubscribeEvents(ch)
	defer sub.Unsubscribe()

	tx := createTx(1, sender, coins(10_000), stake.MediumStakingPeriod, nil)
	require.NoError(t, e.ExecuteCreate(snap, tx, genesisTime))

	acc, _ := snap.Get(sender)
	rec := acc.Stakes[tx.ID]
	require.NoError(t, e.ProcessExpirations(snap, rec.RedeemableAt))

	redeem := &RedeemTx{ID: txID(2), Sender: sender, StakeID: tx.ID}
	require.NoError(t, e.ExecuteRedeem(snap, redeem, rec.RedeemableAt))

	want := []EventKind{StakeCreated, StakeReleased, StakeRedeemed}
	for _, kind := range want {
		ev := <-ch
		assert.Equal(t, kind, ev.Kind)
		assert.Equal(t, sender, ev.Sender)
		assert.Equal(t, tx.ID, ev.StakeID)
		// transaction data rides along for subscribers
		assert.Equal(t, coins(10_000), ev.Amount)
		assert.Equal(t, stake.MediumStakingPeriod, ev.Duration)
	}
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "stake.created", StakeCreated.String())
	assert.Equal(t, "stake.redeemed", StakeRedeemed.String())
	assert.Equal(t, "stake.released", StakeReleased.String())
}
