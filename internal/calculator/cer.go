package calculator

import (
	"fmt"
	"time"

	"tirs/internal/domain"
	"tirs/internal/util"

	"github.com/shopspring/decimal"
)

// Fallback assumptions, used only when no live CER source is reachable and
// the caller opted into defaults. Values track the BCRA series roughly as
// of late 2025.
var (
	DefaultCERIndex         = decimal.RequireFromString("1350.0")
	DefaultMonthlyInflation = decimal.RequireFromString("0.04")
)

// assumedIssuanceAgeMonths is how far back the issue-time index is deflated
// when the real base index is unknown.
const assumedIssuanceAgeMonths = 18

var thirty = decimal.NewFromInt(30)

// CERAdjustment projects the CER inflation index forward and backward in
// time and rescales nominal payoffs by the resulting ratio.
type CERAdjustment struct {
	CurrentIndex         decimal.Decimal
	MonthlyInflationRate decimal.Decimal
}

func NewCERAdjustment(projection domain.CERProjection) CERAdjustment {
	return CERAdjustment{
		CurrentIndex:         projection.CurrentIndex,
		MonthlyInflationRate: projection.MonthlyInflationRate,
	}
}

// EstimateIndexAt projects the current index to targetDate compounding the
// monthly rate over 30-day months: index × (1+rate)^(days/30). Past or
// same-day targets return the current index unchanged.
//
// The 30-day-month convention is specific to horizon-based projection;
// EstimateIndexAtDate uses calendar months and the two are deliberately not
// unified.
func (c CERAdjustment) EstimateIndexAt(targetDate, today time.Time) decimal.Decimal {
	if !targetDate.After(today) {
		return c.CurrentIndex
	}

	days := util.DaysBetween(today, targetDate)
	months := decimal.NewFromInt(int64(days)).DivRound(thirty, irrPrecision)
	growth, err := one.Add(c.MonthlyInflationRate).PowWithPrecision(months, irrPrecision)
	if err != nil {
		return c.CurrentIndex
	}
	return c.CurrentIndex.Mul(growth)
}

// EstimateIndexAtDate projects the current index to targetDate counting
// whole calendar months between the two dates. Used when an anchored date
// (coupon date, issue date) is known.
func (c CERAdjustment) EstimateIndexAtDate(targetDate, today time.Time) decimal.Decimal {
	if !targetDate.After(today) {
		return c.CurrentIndex
	}

	months := util.WholeMonthsBetween(today, targetDate)
	growth, err := one.Add(c.MonthlyInflationRate).
		PowWithPrecision(decimal.NewFromInt(int64(months)), irrPrecision)
	if err != nil {
		return c.CurrentIndex
	}
	return c.CurrentIndex.Mul(growth)
}

// AdjustedPayoff scales a nominal payoff by the projected index growth to
// maturity. When the issue-time base index is unknown it is estimated by
// deflating the current index by an assumed issuance age of 18 months.
func (c CERAdjustment) AdjustedPayoff(nominalPayoff decimal.Decimal, daysToMaturity int, baseIndex *decimal.Decimal) (decimal.Decimal, error) {
	if c.CurrentIndex.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrMissingCERData
	}

	base := decimal.Zero
	if baseIndex != nil {
		base = *baseIndex
	} else {
		age := decimal.NewFromInt(assumedIssuanceAgeMonths)
		deflator, err := one.Add(c.MonthlyInflationRate).PowWithPrecision(age, irrPrecision)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %v", ErrDomain, err)
		}
		base = c.CurrentIndex.DivRound(deflator, irrPrecision)
	}
	if base.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: base index must be positive", ErrInvalidInput)
	}

	months := decimal.NewFromInt(int64(daysToMaturity)).DivRound(thirty, irrPrecision)
	growth, err := one.Add(c.MonthlyInflationRate).PowWithPrecision(months, irrPrecision)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrDomain, err)
	}
	projected := c.CurrentIndex.Mul(growth)

	return nominalPayoff.Mul(projected.DivRound(base, irrPrecision)), nil
}

// ImpliedInflation inverts the standard yield formula to back out what
// payoff an observed market TIR implies, then compares it to the nominal
// payoff to infer the inflation expectation priced into the quote:
//
//	implied_payoff = price × (1+tir)^(365/days)
//	ratio          = implied_payoff / nominal_payoff
//	monthly        = ratio^(1/(days/30)) − 1
func (c CERAdjustment) ImpliedInflation(currentPrice, marketTIR decimal.Decimal, daysToMaturity int, nominalPayoff decimal.Decimal) (domain.ImpliedInflation, error) {
	if currentPrice.LessThanOrEqual(decimal.Zero) || nominalPayoff.LessThanOrEqual(decimal.Zero) {
		return domain.ImpliedInflation{}, fmt.Errorf("%w: price and payoff must be positive", ErrInvalidInput)
	}
	if daysToMaturity <= 0 {
		return domain.ImpliedInflation{}, ErrAlreadyMatured
	}

	exponent := decimal.NewFromInt(irrDaysPerYear).
		DivRound(decimal.NewFromInt(int64(daysToMaturity)), irrPrecision)
	growth, err := one.Add(marketTIR).PowWithPrecision(exponent, irrPrecision)
	if err != nil {
		return domain.ImpliedInflation{}, fmt.Errorf("%w: %v", ErrDomain, err)
	}

	impliedPayoff := currentPrice.Mul(growth)
	adjustment := impliedPayoff.DivRound(nominalPayoff, irrPrecision)

	months := decimal.NewFromInt(int64(daysToMaturity)).DivRound(thirty, irrPrecision)
	monthly := decimal.Zero
	if months.GreaterThan(decimal.Zero) && adjustment.GreaterThan(decimal.Zero) {
		root, err := adjustment.PowWithPrecision(one.DivRound(months, irrPrecision), irrPrecision)
		if err != nil {
			return domain.ImpliedInflation{}, fmt.Errorf("%w: %v", ErrDomain, err)
		}
		monthly = root.Sub(one)
	}

	return domain.ImpliedInflation{
		ImpliedPayoff:           impliedPayoff,
		InflationAdjustment:     adjustment,
		ImpliedMonthlyInflation: monthly,
		ImpliedAnnualInflation:  monthly.Mul(twelve),
	}, nil
}
