// Copyright (c) 2026 The Quorix developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package expirydb

import (
	"encoding/binary"
	"math"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/quorix-network/quorix/kv"
	"github.com/quorix-network/quorix/lvldb"
	"github.com/quorix-network/quorix/quorix"
)

var entryPrefix = []byte("exp")

// Each entry key is 63 bytes:
// ----------------------------------------------------------------
// |  Prefix | redeemableAt |   address   |       stake id        |
// ----------------------------------------------------------------
// | 3 bytes |   8 bytes    |   20 bytes  |       32 bytes        |
// ----------------------------------------------------------------
// The timestamp is big-endian so lexicographic key order equals
// numeric maturity order and range scans walk entries due first.
const entryKeyLength = 3 + 8 + quorix.AddressLength + 32

// Entry references one pending stake by owner and id, keyed by maturity time.
type Entry struct {
	Address      quorix.Address
	StakeID      quorix.Bytes32
	RedeemableAt uint64
}

// ExpiryDB is the durable time-ordered index the expiry processor drains.
// Every live, not-yet-halved stake has exactly one entry keyed by its
// maturity timestamp; redeemed or halved stakes have none.
type ExpiryDB struct {
	store kv.GetPutCloser
}

// New opens a persistent expiry index at the given path.
func New(path string) (*ExpiryDB, error) {
	store, err := lvldb.New(path, lvldb.Options{})
	if err != nil {
		return nil, errors.Wrap(err, "open expiry index")
	}
	return &ExpiryDB{store: store}, nil
}

// NewMem creates an in-memory expiry index, for tests.
func NewMem() (*ExpiryDB, error) {
	store, err := lvldb.NewMem()
	if err != nil {
		return nil, err
	}
	return &ExpiryDB{store: store}, nil
}

func entryKey(e *Entry) []byte {
	key := make([]byte, 0, entryKeyLength)
	key = append(key, entryPrefix...)
	key = binary.BigEndian.AppendUint64(key, e.RedeemableAt)
	key = append(key, e.Address[:]...)
	key = append(key, e.StakeID[:]...)
	return key
}

// searchKey is the exclusive upper bound for all entries due at ts or earlier.
func searchKey(ts uint64) []byte {
	if ts == math.MaxUint64 {
		// past the whole prefix keyspace
		end := append([]byte{}, entryPrefix...)
		end[len(end)-1]++
		return end
	}
	key := make([]byte, 0, 3+8)
	key = append(key, entryPrefix...)
	return binary.BigEndian.AppendUint64(key, ts+1)
}

// Insert stores the entry. Inserting the same entry twice is a no-op,
// which keeps replays against multiple state snapshots harmless.
func (db *ExpiryDB) Insert(e *Entry) error {
	val, err := rlp.EncodeToBytes(e)
	if err != nil {
		return errors.Wrap(err, "encode expiry entry")
	}
	return db.store.Put(entryKey(e), val)
}

// Remove deletes the entry. Removing an absent entry is not an error.
func (db *ExpiryDB) Remove(e *Entry) error {
	return db.store.Delete(entryKey(e))
}

// Has reports whether the entry exists.
func (db *ExpiryDB) Has(e *Entry) (bool, error) {
	return db.store.Has(entryKey(e))
}

// Due returns all entries with maturity <= ts, ordered by maturity.
func (db *ExpiryDB) Due(ts uint64) ([]*Entry, error) {
	iter := db.store.NewIterator(kv.Range{From: entryPrefix, To: searchKey(ts)})
	defer iter.Release()

	var entries []*Entry
	for iter.Next() {
		var e Entry
		if err := rlp.DecodeBytes(iter.Value(), &e); err != nil {
			return nil, errors.Wrap(err, "decode expiry entry")
		}
		entries = append(entries, &e)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Close closes the underlying store.
func (db *ExpiryDB) Close() error {
	return db.store.Close()
}
