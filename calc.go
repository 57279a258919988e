package rupiq

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// This file holds the planning calculators: SIP (systematic investment
// plan) future value, and SWP (systematic withdrawal plan) sustainable
// withdrawal. They are pure arithmetic over decimal values.

var twelve = decimal.NewFromInt(12)

// SIPResult is the projection of a recurring monthly investment.
type SIPResult struct {
	Invested    Money // total contributions over the period
	FutureValue Money // projected value at the end of the period
	Gain        Money // FutureValue − Invested
}

// SIP projects the future value of investing monthly at the given expected
// annual return (percent) over the given number of years. Contributions are
// assumed to be made at the start of each month.
func SIP(monthly Money, annualRatePct decimal.Decimal, years int) (SIPResult, error) {
	if !monthly.IsPositive() {
		return SIPResult{}, fmt.Errorf("monthly investment must be positive, got %s", monthly)
	}
	if years <= 0 {
		return SIPResult{}, fmt.Errorf("investment period must be at least one year, got %d", years)
	}
	if annualRatePct.IsNegative() {
		return SIPResult{}, fmt.Errorf("expected annual return cannot be negative, got %s%%", annualRatePct)
	}

	months := int64(years) * 12
	invested := monthly.Mul(decimal.NewFromInt(months))

	// i is the monthly rate; at zero rate the series degenerates to a sum.
	i := annualRatePct.Div(twelve).Div(oneHundred)
	if i.IsZero() {
		return SIPResult{Invested: invested, FutureValue: invested}, nil
	}

	// FV = P × ((1+i)^n − 1) / i × (1+i)
	onePlus := decimal.NewFromInt(1).Add(i)
	factor := onePlus.Pow(decimal.NewFromInt(months)).Sub(decimal.NewFromInt(1)).Div(i).Mul(onePlus)
	fv := monthly.Mul(factor)

	return SIPResult{Invested: invested, FutureValue: fv, Gain: fv.Sub(invested)}, nil
}

// SWPFrequency selects how often an SWP withdrawal is taken.
type SWPFrequency string

const (
	Monthly SWPFrequency = "monthly"
	Yearly  SWPFrequency = "yearly"
)

// SWP computes the withdrawal that can be taken from a corpus at the given
// expected annual return (percent) without touching the principal.
func SWP(corpus Money, annualRatePct decimal.Decimal, freq SWPFrequency) (Money, error) {
	if !corpus.IsPositive() {
		return Money{}, fmt.Errorf("corpus must be positive, got %s", corpus)
	}
	if annualRatePct.IsNegative() {
		return Money{}, fmt.Errorf("expected annual return cannot be negative, got %s%%", annualRatePct)
	}

	yearly := corpus.Mul(annualRatePct).Div(oneHundred)
	switch freq {
	case Monthly:
		return yearly.Div(twelve), nil
	case Yearly:
		return yearly, nil
	default:
		return Money{}, fmt.Errorf("unknown withdrawal frequency %q, want %q or %q", freq, Monthly, Yearly)
	}
}
