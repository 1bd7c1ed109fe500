package core

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// PoolSnapshot the complete settled state of a pool
type PoolSnapshot struct {
	Pool         common.Address      `json:"pool"`
	Version      int64               `json:"version"`
	Initialized  bool                `json:"initialized"`
	Subset       []TokenID           `json:"subset,omitempty"`
	InterestRate decimal.Decimal     `json:"interest_rate"`
	Inflator     decimal.Decimal     `json:"inflator"`
	AccruedAt    time.Time           `json:"accrued_at"`
	Borrowers    []*BorrowerSnapshot `json:"borrowers"`
	Buckets      []*BucketSnapshot   `json:"buckets"`
}

// BorrowerSnapshot borrower state with deposited collateral
type BorrowerSnapshot struct {
	Borrower
	Collateral []TokenID `json:"collateral"`
}

// LenderSnapshot lp balance of a lender at a bucket
type LenderSnapshot struct {
	Address common.Address  `json:"address"`
	LP      decimal.Decimal `json:"lp"`
}

// BucketSnapshot bucket state with claimable collateral
type BucketSnapshot struct {
	Price            decimal.Decimal   `json:"price"`
	Deposit          decimal.Decimal   `json:"deposit"`
	Debt             decimal.Decimal   `json:"debt"`
	InflatorSnapshot decimal.Decimal   `json:"inflator_snapshot"`
	LPOutstanding    decimal.Decimal   `json:"lp_outstanding"`
	LPMinted         decimal.Decimal   `json:"lp_minted"`
	LPClaimed        decimal.Decimal   `json:"lp_claimed"`
	Lenders          []*LenderSnapshot `json:"lenders,omitempty"`
	Claimable        []TokenID         `json:"claimable,omitempty"`
}

// PoolInfo read view of the pool
type PoolInfo struct {
	Pool              common.Address  `json:"pool"`
	Version           int64           `json:"version"`
	Initialized       bool            `json:"initialized"`
	CollectionPool    bool            `json:"collection_pool"`
	InterestRate      decimal.Decimal `json:"interest_rate"`
	BorrowRate        decimal.Decimal `json:"borrow_rate"`
	Inflator          decimal.Decimal `json:"inflator"`
	PendingInflator   decimal.Decimal `json:"pending_inflator"`
	TotalDebt         decimal.Decimal `json:"total_debt"`
	TotalDeposit      decimal.Decimal `json:"total_deposit"`
	Utilization       decimal.Decimal `json:"utilization"`
	LUP               decimal.Decimal `json:"lup"`
	HPB               decimal.Decimal `json:"hpb"`
	PledgedCollateral int             `json:"pledged_collateral"`
	Buckets           int             `json:"buckets"`
}

// BucketInfo read view of a bucket
type BucketInfo struct {
	Price         decimal.Decimal `json:"price"`
	Deposit       decimal.Decimal `json:"deposit"`
	Debt          decimal.Decimal `json:"debt"`
	LPOutstanding decimal.Decimal `json:"lp_outstanding"`
	ExchangeRate  decimal.Decimal `json:"exchange_rate"`
	Claimable     []TokenID       `json:"claimable"`
}

// Journal persists the outcome of a settled operation
type Journal interface {
	Commit(ctx context.Context, snapshot *PoolSnapshot, events []*Event) error
}

// SnapshotStore pool snapshot store interface
type SnapshotStore interface {
	Save(ctx context.Context, tx *db.DB, snapshot *PoolSnapshot) error
	// Find returns nil without error when the pool has no snapshot yet
	Find(ctx context.Context, pool common.Address) (*PoolSnapshot, error)
}
