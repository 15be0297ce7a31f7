package numberutil

import "github.com/shopspring/decimal"

// MulInt multiplies v by factor and rounds half-up to an integer.
func MulInt(v int64, factor decimal.Decimal) int64 {
	return decimal.NewFromInt(v).Mul(factor).Round(0).IntPart()
}

// MulIntUp multiplies v by factor and rounds up to an integer.
func MulIntUp(v int64, factor decimal.Decimal) int64 {
	return decimal.NewFromInt(v).Mul(factor).Ceil().IntPart()
}

// MulFloat multiplies v by factor using exact decimal arithmetic. The result
// is not rounded.
func MulFloat(v float64, factor decimal.Decimal) float64 {
	f, _ := decimal.NewFromFloat(v).Mul(factor).Float64()
	return f
}

// RoundFloat rounds v half away from zero to the given number of decimal
// places.
func RoundFloat(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

// Percentile returns (total-rank)/total*100 rounded to 2 decimal places. It
// returns 0 when total is 0.
func Percentile(rank, total int) float64 {
	if total <= 0 {
		return 0
	}

	f, _ := decimal.NewFromInt(int64(total - rank)).
		Div(decimal.NewFromInt(int64(total))).
		Mul(decimal.NewFromInt(100)).
		Round(2).Float64()
	return f
}
