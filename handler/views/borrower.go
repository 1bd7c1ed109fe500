package views

import (
	"nftpool/core"

	"github.com/shopspring/decimal"
)

// Borrower borrower info, the fields follow getBorrowerInfo order
type Borrower struct {
	Address              string          `json:"address"`
	Debt                 decimal.Decimal `json:"debt"`
	PendingDebt          decimal.Decimal `json:"pending_debt"`
	CollateralIDs        []string        `json:"collateral_ids"`
	EncumberedCollateral decimal.Decimal `json:"encumbered_collateral"`
	Collateralization    string          `json:"collateralization"`
	BorrowerInflator     decimal.Decimal `json:"borrower_inflator"`
	PoolInflator         decimal.Decimal `json:"pool_inflator"`
}

// BorrowerView borrower view, an unbounded collateralization renders as "inf"
func BorrowerView(address string, info *core.BorrowerInfo) Borrower {
	collateralization := info.Collateralization.String()
	if info.TotalDebt().IsZero() {
		collateralization = "inf"
	}

	return Borrower{
		Address:              address,
		Debt:                 info.Debt,
		PendingDebt:          info.PendingDebt,
		CollateralIDs:        TokenIDs(info.CollateralIDs),
		EncumberedCollateral: info.EncumberedCollateral,
		Collateralization:    collateralization,
		BorrowerInflator:     info.BorrowerInflator,
		PoolInflator:         info.PoolInflator,
	}
}
