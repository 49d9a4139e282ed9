package utils

import (
	"fmt"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

func PrettyFloat(f float64) string {
	for _, unit := range []string{"", "K", "M", "G"} {
		if math.Abs(f) < 1000.0 {
			return fmt.Sprintf("%3.2f%s", f, unit)
		}
		f /= 1000.0
	}
	return fmt.Sprintf("%.2fT", f)
}

// FormatUnits renders an integer amount with the given decimals.
func FormatUnits(amount *big.Int, decimals uint8) string {
	if amount == nil {
		return "0"
	}
	return decimal.NewFromBigInt(amount, 0-int32(decimals)).String()
}

// ParseUnits is the inverse of FormatUnits. Fractions below one unit are
// truncated.
func ParseUnits(s string, decimals uint8) (*big.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	return d.Mul(decimal.New(1, int32(decimals))).BigInt(), nil
}
