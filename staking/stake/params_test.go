// Copyright (c) 2026 The Quorix developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	require.NoError(t, p.Validate())

	m, ok := p.Multiplier(MediumStakingPeriod)
	assert.True(t, ok)
	assert.Equal(t, uint32(15), m)

	_, ok = p.Multiplier(1)
	assert.False(t, ok)
}

func TestParamsFromYAML(t *testing.T) {
	p, err := ParamsFromYAML([]byte(`
levels:
  3600: 10
  7200: 25
minimumStake: 100
roundLength: 17
`))
	require.NoError(t, err)

	m, ok := p.Multiplier(7200)
	assert.True(t, ok)
	assert.Equal(t, uint32(25), m)

	assert.Equal(t, coins(100), p.MinimumStake)
	assert.Equal(t, uint32(17), p.RoundLength)
	// untouched fields keep defaults
	assert.Equal(t, uint64(4), p.TimestampTolerance)
}

func TestParamsFromYAMLInvalid(t *testing.T) {
	_, err := ParamsFromYAML([]byte(`
levels:
  3600: 0
`))
	assert.Error(t, err)

	_, err = ParamsFromYAML([]byte(`levels: [`))
	assert.Error(t, err)
}

func TestParamsValidate(t *testing.T) {
	p := DefaultParams()
	p.Levels = nil
	assert.Error(t, p.Validate())

	p = DefaultParams()
	p.MinimumStake = nil
	assert.Error(t, p.Validate())
}
