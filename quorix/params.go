// Copyright (c) 2026 The Quorix developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package quorix

import "math/big"

// Constants of block chain.
const (
	BlockInterval uint64 = 8  // time interval between two consecutive blocks, in seconds.
	RoundLength   uint32 = 51 // number of blocks per round.
)

// BaseUnit is the amount of smallest currency units in one whole coin.
var BaseUnit = big.NewInt(100_000_000)

// IsRoundBoundary returns true if the block at the given height closes a round.
func IsRoundBoundary(height uint32) bool {
	return height > 0 && height%RoundLength == 0
}

// RoundOf returns the round number the given block height belongs to.
func RoundOf(height uint32) uint32 {
	if height == 0 {
		return 0
	}
	return (height-1)/RoundLength + 1
}
