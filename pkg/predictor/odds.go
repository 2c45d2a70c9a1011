package predictor

import "github.com/shopspring/decimal"

// Balanced defaults used whenever a path produces no usable pricing
const (
	BalancedOdds        = 3.00
	BalancedProbability = 33
	minOdds             = 1.01
)

var (
	hundred   = decimal.NewFromInt(100)
	oddsFloor = decimal.NewFromFloat(minOdds)
)

// OddsFromProbability inverts a percentage probability into decimal odds
// (100/probability), clamped to a sane floor so odds stay above 1.0.
func OddsFromProbability(prob int) float64 {
	if prob <= 0 {
		return BalancedOdds
	}
	odds := hundred.Div(decimal.NewFromInt(int64(prob)))
	if odds.LessThan(oddsFloor) {
		odds = oddsFloor
	}
	return odds.Round(2).InexactFloat64()
}

// ImpliedProbability converts decimal odds to a percentage probability
func ImpliedProbability(odds float64) int {
	if odds <= 1.0 {
		return 0
	}
	d := decimal.NewFromFloat(odds)
	return int(hundred.Div(d).Round(0).IntPart())
}

// splitRemainder divides (100 - confidence) between the two losing outcomes
// so the triple always sums to exactly 100.
func splitRemainder(confidence int) (int, int) {
	rem := 100 - confidence
	first := rem / 2
	return first, rem - first
}
