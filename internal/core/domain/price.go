package domain

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// PriceCents derives the display price of a catalog item from its identifier:
// the numeric value of the id divided by 1000 as a float64, rounded to two
// decimals on the exact binary value with ties going up. 12345 yields 1235
// ($12.35) while 52705 yields 5270, since 52.705 is stored just below the tie.
//
// Ids that are not integers price at zero.
func PriceCents(id string) int64 {
	n := numericID(id)
	if n <= 0 {
		return 0
	}
	return roundCents(float64(n) / 1000)
}

// roundCents rounds x*100 to an integer using the exact value of x.
func roundCents(x float64) int64 {
	scaled := new(big.Float).SetPrec(128).SetFloat64(x)
	scaled.Mul(scaled, new(big.Float).SetPrec(128).SetInt64(100))

	whole, _ := scaled.Int(nil)
	frac := new(big.Float).SetPrec(128).Sub(scaled, new(big.Float).SetPrec(128).SetInt(whole))
	if frac.Cmp(big.NewFloat(0.5)) >= 0 {
		whole.Add(whole, big.NewInt(1))
	}
	return whole.Int64()
}

// numericID is the integer value of id, or 0 when id is not a non-negative
// integer.
func numericID(id string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// FormatCents renders an amount in cents as "12.35".
func FormatCents(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := fmt.Sprintf("%d.%02d", cents/100, cents%100)
	if neg {
		return "-" + s
	}
	return s
}

// FormatPrice renders an amount in cents with a currency sign: "$12.35".
func FormatPrice(cents int64) string {
	return "$" + FormatCents(cents)
}
