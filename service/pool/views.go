package pool

import (
	"nftpool/core"
	"nftpool/internal/bucket"
	"nftpool/internal/interest"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// BorrowerInfo debt, pending debt, collateral ids, encumbered collateral,
// collateralization, borrower inflator and pool inflator of a borrower
func (p *Pool) BorrowerInfo(addr common.Address) *core.BorrowerInfo {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.borrowers.Info(addr, p.clock())
}

// Info pool read view
func (p *Pool) Info() *core.PoolInfo {
	p.mu.Lock()
	defer p.mu.Unlock()

	deposit, debt := p.buckets.Totals()
	utilization := interest.Utilization(debt, deposit)

	info := &core.PoolInfo{
		Pool:              p.address,
		Version:           p.version,
		Initialized:       p.initialized,
		CollectionPool:    p.initialized && p.subset == nil,
		InterestRate:      p.interestRate,
		BorrowRate:        p.accrual.Model().BorrowRate(utilization),
		Inflator:          p.accrual.Inflator(),
		PendingInflator:   p.accrual.Pending(p.clock(), utilization),
		TotalDebt:         debt,
		TotalDeposit:      deposit,
		Utilization:       utilization,
		LUP:               decimal.Zero,
		HPB:               decimal.Zero,
		PledgedCollateral: p.collateral.Pledged(),
		Buckets:           p.buckets.Len(),
	}

	if lup, ok := p.buckets.LUP(); ok {
		info.LUP = lup
	}

	if hpb, ok := p.buckets.HPB(); ok {
		info.HPB = hpb
	}

	return info
}

// Prices the price ladder
func (p *Pool) Prices() []decimal.Decimal {
	return p.ladder.Prices()
}

// Buckets live buckets, ascending price
func (p *Pool) Buckets() []*core.BucketInfo {
	p.mu.Lock()
	defer p.mu.Unlock()

	var infos []*core.BucketInfo
	p.buckets.Ascend(func(b *bucket.Bucket) bool {
		infos = append(infos, p.bucketInfo(b.Price))
		return true
	})

	return infos
}

// Bucket bucket at price
func (p *Pool) Bucket(price decimal.Decimal) (*core.BucketInfo, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if info := p.bucketInfo(price); info != nil {
		return info, nil
	}

	return nil, core.ErrPriceBucketEmpty
}

func (p *Pool) bucketInfo(price decimal.Decimal) *core.BucketInfo {
	info, ok := p.buckets.Info(price)
	if !ok {
		return nil
	}

	info.Claimable = p.collateral.Claimable(price)
	return info
}

// LenderLP lp balance of lender at price
func (p *Pool) LenderLP(price decimal.Decimal, lender common.Address) decimal.Decimal {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.buckets.Lender(price, lender)
}

// Report refreshes the pool gauges and returns the pool read view
func (p *Pool) Report() *core.PoolInfo {
	info := p.Info()

	p.mu.Lock()
	p.metrics.update(p)
	p.mu.Unlock()

	return info
}
