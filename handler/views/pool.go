package views

import (
	"nftpool/core"

	"github.com/shopspring/decimal"
)

// Pool pool view
type Pool struct {
	*core.PoolInfo
	Prices []decimal.Decimal `json:"prices"`
}

// Bucket bucket view
type Bucket struct {
	Price         decimal.Decimal `json:"price"`
	Deposit       decimal.Decimal `json:"deposit"`
	Debt          decimal.Decimal `json:"debt"`
	LPOutstanding decimal.Decimal `json:"lp_outstanding"`
	ExchangeRate  decimal.Decimal `json:"exchange_rate"`
	Claimable     []string        `json:"claimable"`
}

// BucketView bucket view from bucket info
func BucketView(info *core.BucketInfo) Bucket {
	return Bucket{
		Price:         info.Price,
		Deposit:       info.Deposit,
		Debt:          info.Debt,
		LPOutstanding: info.LPOutstanding,
		ExchangeRate:  info.ExchangeRate,
		Claimable:     TokenIDs(info.Claimable),
	}
}

// Lender lp balance of a lender at a bucket
type Lender struct {
	Address string          `json:"address"`
	Price   decimal.Decimal `json:"price"`
	LP      decimal.Decimal `json:"lp"`
}

// TokenIDs decimal strings of ids, never nil
func TokenIDs(ids []core.TokenID) []string {
	if len(ids) == 0 {
		return []string{}
	}

	return core.FormatTokenIDs(ids)
}
