package bucket

import (
	"bytes"
	"sort"

	"nftpool/core"
	"nftpool/internal/interest"
	"nftpool/pkg/number"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/btree"
	"github.com/shopspring/decimal"
)

// Bucket quote liquidity and lp shares at one price
type Bucket struct {
	Price   decimal.Decimal
	Deposit decimal.Decimal
	// Debt lent out of the bucket as of InflatorSnapshot
	Debt             decimal.Decimal
	InflatorSnapshot decimal.Decimal
	LPOutstanding    decimal.Decimal
	// LPMinted and LPClaimed are cumulative
	LPMinted  decimal.Decimal
	LPClaimed decimal.Decimal

	lenders map[common.Address]decimal.Decimal
}

func newBucket(price decimal.Decimal) *Bucket {
	return &Bucket{
		Price:            price,
		Deposit:          decimal.Zero,
		Debt:             decimal.Zero,
		InflatorSnapshot: number.One,
		LPOutstanding:    decimal.Zero,
		LPMinted:         decimal.Zero,
		LPClaimed:        decimal.Zero,
		lenders:          map[common.Address]decimal.Decimal{},
	}
}

// Less btree.Item, ordered by price
func (b *Bucket) Less(than btree.Item) bool {
	return b.Price.LessThan(than.(*Bucket).Price)
}

func pivot(price decimal.Decimal) *Bucket {
	return &Bucket{Price: price}
}

// Lender lp balance of a lender
func (b *Bucket) Lender(addr common.Address) decimal.Decimal {
	if lp, ok := b.lenders[addr]; ok {
		return lp
	}

	return decimal.Zero
}

// Value deposit + debt + claimable collateral at the bucket price
func (b *Bucket) Value(claimable int) decimal.Decimal {
	collateral := b.Price.Mul(decimal.NewFromInt(int64(claimable)))
	return b.Deposit.Add(b.Debt).Add(collateral)
}

// ExchangeRate value per lp share, false without shares
func (b *Bucket) ExchangeRate(claimable int) (decimal.Decimal, bool) {
	if !b.LPOutstanding.IsPositive() {
		return decimal.Zero, false
	}

	return number.RayDiv(b.Value(claimable), b.LPOutstanding), true
}

func (b *Bucket) sync(inflator decimal.Decimal) {
	b.Debt = interest.Sync(b.Debt, b.InflatorSnapshot, inflator, false)
	b.InflatorSnapshot = inflator
}

func (b *Bucket) mint(lender common.Address, lp decimal.Decimal) {
	b.lenders[lender] = b.Lender(lender).Add(lp)
	b.LPOutstanding = b.LPOutstanding.Add(lp)
	b.LPMinted = b.LPMinted.Add(lp)
}

func (b *Bucket) burn(lender common.Address, lp decimal.Decimal) {
	left := b.Lender(lender).Sub(lp)
	if left.IsPositive() {
		b.lenders[lender] = left
	} else {
		delete(b.lenders, lender)
	}

	b.LPOutstanding = b.LPOutstanding.Sub(lp)
}

func (b *Bucket) empty(claimable int) bool {
	return claimable == 0 &&
		b.Deposit.IsZero() &&
		b.Debt.IsZero() &&
		b.LPOutstanding.IsZero()
}

func (b *Bucket) snapshot() *core.BucketSnapshot {
	s := &core.BucketSnapshot{
		Price:            b.Price,
		Deposit:          b.Deposit,
		Debt:             b.Debt,
		InflatorSnapshot: b.InflatorSnapshot,
		LPOutstanding:    b.LPOutstanding,
		LPMinted:         b.LPMinted,
		LPClaimed:        b.LPClaimed,
	}

	for addr, lp := range b.lenders {
		s.Lenders = append(s.Lenders, &core.LenderSnapshot{Address: addr, LP: lp})
	}

	sort.Slice(s.Lenders, func(i, j int) bool {
		return bytes.Compare(s.Lenders[i].Address.Bytes(), s.Lenders[j].Address.Bytes()) < 0
	})

	return s
}

func restoreBucket(s *core.BucketSnapshot) *Bucket {
	b := newBucket(s.Price)
	b.Deposit = s.Deposit
	b.Debt = s.Debt
	if s.InflatorSnapshot.IsPositive() {
		b.InflatorSnapshot = s.InflatorSnapshot
	}
	b.LPOutstanding = s.LPOutstanding
	b.LPMinted = s.LPMinted
	b.LPClaimed = s.LPClaimed

	for _, lender := range s.Lenders {
		b.lenders[lender.Address] = lender.LP
	}

	return b
}
