package purchase

import (
	"nftpool/core"
	"nftpool/internal/bucket"
	"nftpool/internal/collateral"
	"nftpool/pkg/number"
	"nftpool/service/borrower"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Bid an applied purchase
type Bid struct {
	Bidder common.Address
	Price  decimal.Decimal
	Amount decimal.Decimal
	// Consumed ids moved into the bucket's claimable set, in caller order
	Consumed []core.TokenID
}

// Engine swaps deposited collateral for quote token at a single bucket
type Engine struct {
	collateral *collateral.Ledger
	buckets    *bucket.Ledger
	borrowers  *borrower.Engine
}

// New new purchase engine
func New(collaterals *collateral.Ledger, buckets *bucket.Ledger, borrowers *borrower.Engine) *Engine {
	return &Engine{
		collateral: collaterals,
		buckets:    buckets,
		borrowers:  borrowers,
	}
}

// Plan validates a bid without applying it
//
// Ids are consumed in the order given until their value at price covers
// amount; the remaining ids are left with the bidder.
func (e *Engine) Plan(bidder common.Address, amount, price decimal.Decimal, ids []core.TokenID) (*Bid, error) {
	amount = number.Wad(amount)
	if err := core.Require(amount.IsPositive(), core.ErrInvalidAmount); err != nil {
		return nil, err
	}

	if err := core.Require(len(ids) > 0, core.ErrEmptyTokenList); err != nil {
		return nil, err
	}

	if err := e.buckets.CheckSource(price, amount); err != nil {
		return nil, err
	}

	if err := e.collateral.CheckDeposited(bidder, ids); err != nil {
		return nil, core.ErrInvalidTokenOrder
	}

	supplied := price.Mul(decimal.NewFromInt(int64(len(ids))))
	if err := core.Require(supplied.GreaterThanOrEqual(amount), core.ErrInsufficientCollateralValue); err != nil {
		return nil, err
	}

	n := int(number.DivCeil(amount, price, 0).IntPart())
	consumed := make([]core.TokenID, n)
	copy(consumed, ids[:n])

	left := e.collateral.DepositedCount(bidder) - n
	if err := e.borrowers.RequireMinCollateralization(left, e.borrowers.Debt(bidder), e.borrowers.PoolPrice()); err != nil {
		return nil, err
	}

	return &Bid{
		Bidder:   bidder,
		Price:    price,
		Amount:   amount,
		Consumed: consumed,
	}, nil
}

// PurchaseBid sources amount from the bucket at price and moves the consumed
// ids into its claimable set. Nothing changes when it fails.
func (e *Engine) PurchaseBid(bidder common.Address, amount, price decimal.Decimal, ids []core.TokenID) (*Bid, error) {
	bid, err := e.Plan(bidder, amount, price, ids)
	if err != nil {
		return nil, err
	}

	if _, err := e.buckets.SourceLiquidity(bid.Price, bid.Amount); err != nil {
		return nil, err
	}

	if err := e.collateral.MoveToClaimable(bidder, bid.Consumed, bid.Price); err != nil {
		return nil, err
	}

	return bid, nil
}
