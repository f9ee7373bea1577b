// Copyright (c) 2026 The Quorix developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package quorix

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBytes32(t *testing.T) {
	hex := strings.Repeat("01", 32)

	b, err := ParseBytes32(hex)
	require.NoError(t, err)
	assert.Equal(t, "0x"+hex, b.String())

	b, err = ParseBytes32("0x" + hex)
	require.NoError(t, err)
	assert.Equal(t, "0x"+hex, b.String())

	_, err = ParseBytes32("0102")
	assert.Error(t, err)

	_, err = ParseBytes32("zz" + hex)
	assert.Error(t, err)
}

func TestBytesToBytes32(t *testing.T) {
	assert.Equal(t, Bytes32{31: 1}, BytesToBytes32([]byte{1}))
	assert.True(t, Bytes32{}.IsZero())
	assert.False(t, BytesToBytes32([]byte{1}).IsZero())
}
