package bucket

import (
	"testing"

	"nftpool/core"
	"nftpool/pkg/number"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLadderGeometric(t *testing.T) {
	ladder, err := NewLadder(core.PoolConfig{
		Ladder: core.Ladder{
			Min:    number.Decimal("100"),
			Factor: number.Decimal("1.005"),
			Count:  3,
		},
	})
	require.NoError(t, err)

	prices := ladder.Prices()
	require.Len(t, prices, 3)
	assert.Equal(t, "100", prices[0].String())
	assert.Equal(t, "100.5", prices[1].String())
	assert.Equal(t, "101.0025", prices[2].String())
	assert.True(t, ladder.Contains(number.Decimal("100.50")))
	assert.Equal(t, 2, ladder.Index(number.Decimal("101.0025")))
	assert.Equal(t, -1, ladder.Index(number.Decimal("101")))
}

func TestNewLadderExplicit(t *testing.T) {
	ladder, err := NewLadder(core.PoolConfig{
		Prices: []decimal.Decimal{number.Decimal("60"), number.Decimal("40"), number.Decimal("60")},
	})
	require.NoError(t, err)
	assert.Equal(t, "40", ladder.Prices()[0].String())
	assert.Len(t, ladder.Prices(), 2)

	_, err = NewLadder(core.PoolConfig{})
	assert.Error(t, err)

	_, err = NewLadderFromPrices(number.Decimal("-1"))
	assert.Error(t, err)
}
