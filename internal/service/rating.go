package service

import "github.com/shopspring/decimal"

// NextRating folds one more review into a supplier's running mean and rounds
// to one decimal, half away from zero.
func NextRating(oldRating float64, oldTotal, reviewRating int) float64 {
	if oldTotal < 0 {
		oldTotal = 0
	}
	sum := decimal.NewFromFloat(oldRating).
		Mul(decimal.NewFromInt(int64(oldTotal))).
		Add(decimal.NewFromInt(int64(reviewRating)))
	mean := sum.Div(decimal.NewFromInt(int64(oldTotal + 1)))
	return mean.Round(1).InexactFloat64()
}
