package number

import (
	"math/big"

	"github.com/shopspring/decimal"
)

const (
	// WadPrecision quote token amounts, lp shares and prices
	WadPrecision int32 = 18
	// RayPrecision inflators and rates
	RayPrecision int32 = 27
)

var (
	// One 1.0
	One = decimal.New(1, 0)

	// Infinity the collateralization reported for a position without debt,
	// type(uint256).max in wad units
	Infinity = decimal.NewFromBigInt(
		new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1)),
		-WadPrecision,
	)
)

func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

func Ceil(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Shift(precision).Ceil().Shift(-precision)
}

// Wad truncate to 18 decimals
func Wad(d decimal.Decimal) decimal.Decimal {
	return d.Truncate(WadPrecision)
}

// Ray truncate to 27 decimals
func Ray(d decimal.Decimal) decimal.Decimal {
	return d.Truncate(RayPrecision)
}

// Div a / b truncated to precision, zero if b is zero
func Div(a, b decimal.Decimal, precision int32) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}

	q, _ := a.QuoRem(b, precision)
	return q
}

// DivCeil a / b rounded up to precision, zero if b is zero
func DivCeil(a, b decimal.Decimal, precision int32) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}

	q, r := a.QuoRem(b, precision)
	if !r.IsZero() && a.Sign() == b.Sign() {
		q = q.Add(decimal.New(1, -precision))
	}

	return q
}

// WadDiv a / b in wad precision
func WadDiv(a, b decimal.Decimal) decimal.Decimal {
	return Div(a, b, WadPrecision)
}

// RayDiv a / b in ray precision
func RayDiv(a, b decimal.Decimal) decimal.Decimal {
	return Div(a, b, RayPrecision)
}

// MulDiv a * b / c truncated to precision without intermediate rounding
func MulDiv(a, b, c decimal.Decimal, precision int32) decimal.Decimal {
	return Div(a.Mul(b), c, precision)
}

// MulDivCeil a * b / c rounded up to precision
func MulDivCeil(a, b, c decimal.Decimal, precision int32) decimal.Decimal {
	return DivCeil(a.Mul(b), c, precision)
}

// RayPow x^n, truncating every step to ray precision
//
// square-and-multiply as in the rpow of MakerDAO's pot, so a per-second rate
// can be compounded over a long period without the digit count growing
func RayPow(x decimal.Decimal, n uint64) decimal.Decimal {
	result := One
	base := Ray(x)
	for n > 0 {
		if n&1 == 1 {
			result = Ray(result.Mul(base))
		}

		n >>= 1
		if n > 0 {
			base = Ray(base.Mul(base))
		}
	}

	return result
}
