package core

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Borrower debt position of an account, collateral ids live in the collateral ledger
type Borrower struct {
	Address common.Address `json:"address"`
	// Debt as of InflatorSnapshot, wad
	Debt decimal.Decimal `json:"debt"`
	// pool inflator at the last debt update, ray
	InflatorSnapshot decimal.Decimal `json:"inflator_snapshot"`
}

// BorrowerInfo read view of a borrower
type BorrowerInfo struct {
	// Debt posted debt
	Debt decimal.Decimal `json:"debt"`
	// PendingDebt interest accrued since the last snapshot, not yet posted
	PendingDebt   decimal.Decimal `json:"pending_debt"`
	CollateralIDs []TokenID       `json:"collateral_ids"`
	// EncumberedCollateral collateral units needed to back the debt at the pool price
	EncumberedCollateral decimal.Decimal `json:"encumbered_collateral"`
	// Collateralization collateral value / (debt + pending debt), number.Infinity without debt
	Collateralization decimal.Decimal `json:"collateralization"`
	BorrowerInflator  decimal.Decimal `json:"borrower_inflator"`
	PoolInflator      decimal.Decimal `json:"pool_inflator"`
}

// TotalDebt debt including pending interest
func (info *BorrowerInfo) TotalDebt() decimal.Decimal {
	return info.Debt.Add(info.PendingDebt)
}
