package pool

import (
	"context"

	"nftpool/core"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// transfer a token movement with its compensation
type transfer struct {
	do   func(ctx context.Context) error
	undo func(ctx context.Context) error
}

func (c *call) moveNFTs(nfts core.NFTService, from, to common.Address, ids []core.TokenID) {
	if nfts == nil {
		return
	}

	c.transfers = append(c.transfers, transfer{
		do: func(ctx context.Context) error {
			return nfts.TransferFrom(ctx, from, to, ids)
		},
		undo: func(ctx context.Context) error {
			return nfts.TransferFrom(ctx, to, from, ids)
		},
	})
}

func (c *call) moveQuote(quote core.QuoteService, from, to common.Address, amount decimal.Decimal) {
	if quote == nil || !amount.IsPositive() {
		return
	}

	c.transfers = append(c.transfers, transfer{
		do: func(ctx context.Context) error {
			return quote.Transfer(ctx, from, to, amount)
		},
		undo: func(ctx context.Context) error {
			return quote.Transfer(ctx, to, from, amount)
		},
	})
}
