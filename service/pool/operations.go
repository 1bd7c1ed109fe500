package pool

import (
	"context"

	"nftpool/core"
	"nftpool/internal/collateral"
	"nftpool/pkg/number"
	"nftpool/service/purchase"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// InitializeSubset one time setup, an empty ids list accepts any token id
func (p *Pool) InitializeSubset(ctx context.Context, caller common.Address, ids []core.TokenID, rate decimal.Decimal) error {
	return p.apply(ctx, "initialize_subset", func(c *call) error {
		if err := core.Require(!p.initialized, core.ErrAlreadyInitialized); err != nil {
			return err
		}

		if err := core.Require(!rate.IsNegative(), core.ErrInvalidRate); err != nil {
			return err
		}

		if err := core.Require(collateral.Distinct(ids), core.ErrInvalidTokenOrder); err != nil {
			return err
		}

		p.interestRate = rate
		p.accrual.SetRate(rate)
		p.accrual.Start(c.now)
		p.initialized = true
		if len(ids) > 0 {
			p.subset = collateral.NewTokenSet(ids...)
		}

		c.emit(core.NewPoolInitialized(caller, ids, rate))
		return nil
	})
}

// AddCollateral deposits ids for the borrower
func (p *Pool) AddCollateral(ctx context.Context, borrower common.Address, ids []core.TokenID) error {
	return p.apply(ctx, "add_collateral", func(c *call) error {
		if err := p.requireInitialized(); err != nil {
			return err
		}

		if err := p.collateral.CheckAdd(ids); err != nil {
			return err
		}

		if err := p.requireSubset(ids); err != nil {
			return err
		}

		if err := p.collateral.Add(borrower, ids); err != nil {
			return err
		}

		c.moveNFTs(p.nfts, borrower, p.address, ids)
		c.emit(core.NewAddNFTCollateral(borrower, ids))
		return nil
	})
}

// RemoveCollateral withdraws ids back to the borrower
func (p *Pool) RemoveCollateral(ctx context.Context, borrower common.Address, ids []core.TokenID) error {
	return p.apply(ctx, "remove_collateral", func(c *call) error {
		if err := p.requireInitialized(); err != nil {
			return err
		}

		if err := p.borrowers.RemoveCollateral(borrower, ids); err != nil {
			return err
		}

		c.moveNFTs(p.nfts, p.address, borrower, ids)
		c.emit(core.NewRemoveNFTCollateral(borrower, ids))
		return nil
	})
}

// ClaimCollateral burns the claimant's lp at price for claimable ids sent to
// recipient, the claimant receives them when recipient is empty
func (p *Pool) ClaimCollateral(ctx context.Context, claimant, recipient common.Address, ids []core.TokenID, price decimal.Decimal) (decimal.Decimal, error) {
	if recipient == (common.Address{}) {
		recipient = claimant
	}

	var burned decimal.Decimal
	err := p.apply(ctx, "claim_collateral", func(c *call) error {
		if err := p.requireInitialized(); err != nil {
			return err
		}

		if err := p.collateral.CheckClaimable(price, ids); err != nil {
			return err
		}

		lp, err := p.buckets.Claim(claimant, price, len(ids))
		if err != nil {
			return err
		}

		if err := p.collateral.Claim(price, ids); err != nil {
			return err
		}

		burned = lp
		c.moveNFTs(p.nfts, p.address, recipient, ids)
		c.emit(core.NewClaimNFTCollateral(claimant, recipient, price, ids, lp))
		return nil
	})

	return burned, err
}

// PurchaseBid buys amount of quote token at the bucket at price, paying with
// the bidder's deposited ids in the given order
func (p *Pool) PurchaseBid(ctx context.Context, bidder common.Address, amount, price decimal.Decimal, ids []core.TokenID) (*purchase.Bid, error) {
	var bid *purchase.Bid
	err := p.apply(ctx, "purchase_bid", func(c *call) error {
		if err := p.requireInitialized(); err != nil {
			return err
		}

		b, err := p.purchases.PurchaseBid(bidder, amount, price, ids)
		if err != nil {
			return err
		}

		bid = b
		c.moveQuote(p.quote, p.address, bidder, b.Amount)
		c.emit(core.NewPurchaseWithNFTs(bidder, b.Price, b.Amount, b.Consumed))
		return nil
	})

	return bid, err
}

// AddQuoteToken deposits amount at price, returns lp minted
func (p *Pool) AddQuoteToken(ctx context.Context, lender common.Address, amount, price decimal.Decimal) (decimal.Decimal, error) {
	var minted decimal.Decimal
	err := p.apply(ctx, "add_quote_token", func(c *call) error {
		if err := p.requireInitialized(); err != nil {
			return err
		}

		lp, err := p.buckets.Deposit(lender, price, amount)
		if err != nil {
			return err
		}

		minted = lp
		deposited := number.Wad(amount)
		c.moveQuote(p.quote, lender, p.address, deposited)
		c.emit(core.NewAddQuoteToken(lender, price, deposited, lp))
		return nil
	})

	return minted, err
}

// RemoveQuoteToken withdraws up to maxAmount at price
func (p *Pool) RemoveQuoteToken(ctx context.Context, lender common.Address, maxAmount, price decimal.Decimal) (amount, lp decimal.Decimal, err error) {
	err = p.apply(ctx, "remove_quote_token", func(c *call) error {
		if err := p.requireInitialized(); err != nil {
			return err
		}

		a, burned, err := p.buckets.Withdraw(lender, price, maxAmount)
		if err != nil {
			return err
		}

		amount, lp = a, burned
		c.moveQuote(p.quote, p.address, lender, a)
		c.emit(core.NewRemoveQuoteToken(lender, price, a, burned))
		return nil
	})

	return
}

// Borrow draws amount from buckets priced at or above limitPrice, zero for
// no limit
func (p *Pool) Borrow(ctx context.Context, borrower common.Address, amount, limitPrice decimal.Decimal) error {
	return p.apply(ctx, "borrow", func(c *call) error {
		if err := p.requireInitialized(); err != nil {
			return err
		}

		if err := p.borrowers.Borrow(borrower, amount, limitPrice); err != nil {
			return err
		}

		drawn := number.Wad(amount)
		c.moveQuote(p.quote, p.address, borrower, drawn)
		c.emit(core.NewBorrow(borrower, p.borrowers.PoolPrice(), drawn))
		return nil
	})
}

// Repay repays up to maxAmount, returns the amount repaid
func (p *Pool) Repay(ctx context.Context, borrower common.Address, maxAmount decimal.Decimal) (decimal.Decimal, error) {
	var repaid decimal.Decimal
	err := p.apply(ctx, "repay", func(c *call) error {
		if err := p.requireInitialized(); err != nil {
			return err
		}

		amount, err := p.borrowers.Repay(borrower, maxAmount)
		if err != nil {
			return err
		}

		repaid = amount
		c.moveQuote(p.quote, borrower, p.address, amount)
		c.emit(core.NewRepay(borrower, p.borrowers.PoolPrice(), amount))
		return nil
	})

	return repaid, err
}
