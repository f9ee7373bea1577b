// Copyright (c) 2026 The Quorix developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package quorix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRoundBoundary(t *testing.T) {
	assert.False(t, IsRoundBoundary(0))
	assert.False(t, IsRoundBoundary(1))
	assert.False(t, IsRoundBoundary(50))
	assert.True(t, IsRoundBoundary(51))
	assert.False(t, IsRoundBoundary(52))
	assert.True(t, IsRoundBoundary(102))
}

func TestRoundOf(t *testing.T) {
	assert.Equal(t, uint32(0), RoundOf(0))
	assert.Equal(t, uint32(1), RoundOf(1))
	assert.Equal(t, uint32(1), RoundOf(51))
	assert.Equal(t, uint32(2), RoundOf(52))
	assert.Equal(t, uint32(2), RoundOf(102))
}
