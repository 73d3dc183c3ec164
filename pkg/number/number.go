package number

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// weiPerEther 1e18
const etherDecimals = 18

// Decimal parses v, returning zero on malformed input
func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

// ToWei converts an ether-denominated amount to wei
func ToWei(ether decimal.Decimal) *big.Int {
	return ether.Shift(etherDecimals).BigInt()
}

// FromWei converts a wei amount to ether
func FromWei(wei *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(wei, 0).Shift(-etherDecimals)
}
