package collateral

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Kind where a token id sits
type Kind int

const (
	// KindOutside not under pool custody, never deposited or withdrawn
	KindOutside Kind = iota
	// KindDeposited in a borrower's deposited set
	KindDeposited
	// KindClaimable in a bucket's claimable set
	KindClaimable
)

func (k Kind) String() string {
	switch k {
	case KindDeposited:
		return "deposited"
	case KindClaimable:
		return "claimable"
	default:
		return "outside"
	}
}

// Location tagged location of a token id
type Location struct {
	Kind     Kind
	Borrower common.Address
	Price    decimal.Decimal
}

// Deposited location of a borrower's deposited set
func Deposited(borrower common.Address) Location {
	return Location{Kind: KindDeposited, Borrower: borrower}
}

// Claimable location of a bucket's claimable set
func Claimable(price decimal.Decimal) Location {
	return Location{Kind: KindClaimable, Price: price}
}

// Equal same location
func (l Location) Equal(other Location) bool {
	if l.Kind != other.Kind {
		return false
	}

	switch l.Kind {
	case KindDeposited:
		return l.Borrower == other.Borrower
	case KindClaimable:
		return l.Price.Equal(other.Price)
	default:
		return true
	}
}

func (l Location) String() string {
	switch l.Kind {
	case KindDeposited:
		return fmt.Sprintf("deposited(%s)", l.Borrower.Hex())
	case KindClaimable:
		return fmt.Sprintf("claimable(%s)", l.Price)
	default:
		return l.Kind.String()
	}
}
