package bucket

import (
	"errors"
	"sort"

	"nftpool/core"
	"nftpool/pkg/number"

	"github.com/shopspring/decimal"
)

// Ladder the fixed set of prices buckets may live at
type Ladder struct {
	prices []decimal.Decimal
	index  map[string]int
}

// NewLadder explicit prices take precedence, otherwise
// price_i = min * factor^i for i in [0, count)
func NewLadder(cfg core.PoolConfig) (*Ladder, error) {
	prices := cfg.Prices
	if len(prices) == 0 {
		l := cfg.Ladder
		if !l.Min.IsPositive() || l.Factor.LessThanOrEqual(number.One) || l.Count <= 0 {
			return nil, errors.New("price ladder: prices or min, factor > 1 and count required")
		}

		price := l.Min
		for i := 0; i < l.Count; i++ {
			prices = append(prices, number.Wad(price))
			price = price.Mul(l.Factor)
		}
	}

	return NewLadderFromPrices(prices...)
}

// NewLadderFromPrices ladder of the given prices
func NewLadderFromPrices(prices ...decimal.Decimal) (*Ladder, error) {
	ladder := &Ladder{index: make(map[string]int, len(prices))}
	for _, p := range prices {
		p = number.Wad(p)
		if !p.IsPositive() {
			return nil, errors.New("price ladder: prices must be positive")
		}

		if _, ok := ladder.index[p.String()]; ok {
			continue
		}

		ladder.index[p.String()] = 0
		ladder.prices = append(ladder.prices, p)
	}

	if len(ladder.prices) == 0 {
		return nil, errors.New("price ladder: empty")
	}

	sort.Slice(ladder.prices, func(i, j int) bool {
		return ladder.prices[i].LessThan(ladder.prices[j])
	})

	for i, p := range ladder.prices {
		ladder.index[p.String()] = i
	}

	return ladder, nil
}

// Contains price is on the ladder
func (l *Ladder) Contains(price decimal.Decimal) bool {
	_, ok := l.index[price.String()]
	return ok
}

// Index position of price on the ladder, -1 when absent
func (l *Ladder) Index(price decimal.Decimal) int {
	if idx, ok := l.index[price.String()]; ok {
		return idx
	}

	return -1
}

// Prices ascending copy of the ladder
func (l *Ladder) Prices() []decimal.Decimal {
	prices := make([]decimal.Decimal, len(l.prices))
	copy(prices, l.prices)
	return prices
}
