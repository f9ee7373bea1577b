// Copyright (c) 2026 The Quorix developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import (
	"math/big"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/quorix-network/quorix/quorix"
)

// Multipliers are configured in tenths: a level of 15 yields weight = amount * 1.5.
const multiplierDenominator = 10

// Default staking levels, duration seconds -> multiplier in tenths.
const (
	LowStakingPeriod    uint32 = 90 * 24 * 3600  // 90 days
	MediumStakingPeriod uint32 = 180 * 24 * 3600 // 180 days
	HighStakingPeriod   uint32 = 360 * 24 * 3600 // 360 days
	MaxStakingPeriod    uint32 = 720 * 24 * 3600 // 720 days
)

// Params carries the milestone-configured staking rules effective at a chain height.
type Params struct {
	// Levels maps an allowed stake duration (seconds) to its weight multiplier, in tenths.
	Levels map[uint32]uint32

	// MinimumStake is the smallest amount that may be staked, in smallest currency units.
	MinimumStake *big.Int

	// BlockInterval is the target seconds between consecutive blocks.
	BlockInterval uint64

	// RoundLength is the number of blocks per round.
	RoundLength uint32

	// TimestampTolerance is the number of block intervals a declared stake
	// timestamp may deviate from the last known block time.
	TimestampTolerance uint64
}

// DefaultParams returns the genesis milestone.
func DefaultParams() *Params {
	return &Params{
		Levels: map[uint32]uint32{
			LowStakingPeriod:    10,
			MediumStakingPeriod: 15,
			HighStakingPeriod:   20,
			MaxStakingPeriod:    30,
		},
		MinimumStake:       new(big.Int).Mul(big.NewInt(10), quorix.BaseUnit),
		BlockInterval:      quorix.BlockInterval,
		RoundLength:        quorix.RoundLength,
		TimestampTolerance: 4,
	}
}

// Multiplier returns the multiplier (in tenths) for the given duration,
// and whether the duration is a configured level.
func (p *Params) Multiplier(duration uint32) (uint32, bool) {
	m, ok := p.Levels[duration]
	return m, ok
}

// Validate checks the params for internal consistency.
func (p *Params) Validate() error {
	if len(p.Levels) == 0 {
		return errors.New("no staking levels configured")
	}
	for duration, multiplier := range p.Levels {
		if duration == 0 {
			return errors.New("staking level with zero duration")
		}
		if multiplier == 0 {
			return errors.Errorf("staking level %d with zero multiplier", duration)
		}
	}
	if p.MinimumStake == nil || p.MinimumStake.Sign() <= 0 {
		return errors.New("minimum stake must be positive")
	}
	if p.BlockInterval == 0 {
		return errors.New("block interval must be positive")
	}
	if p.RoundLength == 0 {
		return errors.New("round length must be positive")
	}
	return nil
}

type paramsConfig struct {
	Levels             map[uint32]uint32 `yaml:"levels"`
	MinimumStake       int64             `yaml:"minimumStake"` // whole coins
	BlockInterval      uint64            `yaml:"blockInterval"`
	RoundLength        uint32            `yaml:"roundLength"`
	TimestampTolerance uint64            `yaml:"timestampTolerance"`
}

// ParamsFromYAML decodes milestone params from yaml content.
// Missing fields keep their default values.
func ParamsFromYAML(data []byte) (*Params, error) {
	var cfg paramsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "decode staking params")
	}

	p := DefaultParams()
	if cfg.Levels != nil {
		p.Levels = cfg.Levels
	}
	if cfg.MinimumStake != 0 {
		p.MinimumStake = new(big.Int).Mul(big.NewInt(cfg.MinimumStake), quorix.BaseUnit)
	}
	if cfg.BlockInterval != 0 {
		p.BlockInterval = cfg.BlockInterval
	}
	if cfg.RoundLength != 0 {
		p.RoundLength = cfg.RoundLength
	}
	if cfg.TimestampTolerance != 0 {
		p.TimestampTolerance = cfg.TimestampTolerance
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// LoadParams reads milestone params from a yaml file.
func LoadParams(path string) (*Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read staking params")
	}
	return ParamsFromYAML(data)
}
