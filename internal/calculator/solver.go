package calculator

import (
	"fmt"
	"time"

	"tirs/internal/domain"
	"tirs/internal/util"

	"github.com/shopspring/decimal"
)

// The solver works at 50 significant digits, matching the precision the
// rest of the rate math uses. Day counts are ACT/365.
const (
	irrPrecision   = 50
	irrMaxIter     = 100
	irrDaysPerYear = 365
)

var (
	one          = decimal.NewFromInt(1)
	irrTolerance = decimal.New(1, -9) // |NPV| below this counts as converged
	irrGuess     = decimal.RequireFromString("0.10")
)

// SolveIRR finds the internal rate of return r satisfying
//
//	NPV(r) = Σ amount_i / (1+r)^(days_i/365) − price = 0
//
// via Newton-Raphson with the analytic derivative. Flows dated on or before
// settlement are excluded (assumed already reflected in the price).
//
// Failure kinds: ErrInvalidInput (non-positive price, empty schedule),
// ErrNoFutureCashflows, ErrDomain (an iterate reached 1+r <= 0),
// ErrStalledDerivative, ErrNotConverged.
func SolveIRR(schedule domain.CashFlowSchedule, price decimal.Decimal, settlement time.Time) (decimal.Decimal, error) {
	if price.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: price must be positive, got %s", ErrInvalidInput, price)
	}
	if len(schedule.Entries) == 0 {
		return decimal.Zero, fmt.Errorf("%w: empty cash flow schedule", ErrInvalidInput)
	}

	future := schedule.FutureFlows(settlement)
	if len(future) == 0 {
		return decimal.Zero, ErrNoFutureCashflows
	}

	amounts := make([]decimal.Decimal, len(future))
	exponents := make([]decimal.Decimal, len(future))
	for i, flow := range future {
		days := util.DaysBetween(settlement, flow.Date)
		amounts[i] = flow.Amount
		exponents[i] = decimal.NewFromInt(int64(days)).
			DivRound(decimal.NewFromInt(irrDaysPerYear), irrPrecision)
	}

	rate := irrGuess
	for iter := 0; iter < irrMaxIter; iter++ {
		npv, dnpv, err := npvAndDerivative(rate, price, amounts, exponents)
		if err != nil {
			return decimal.Zero, err
		}

		if npv.Abs().LessThan(irrTolerance) {
			return rate, nil
		}
		if dnpv.IsZero() {
			return decimal.Zero, ErrStalledDerivative
		}

		rate = rate.Sub(npv.DivRound(dnpv, irrPrecision))
	}

	return decimal.Zero, ErrNotConverged
}

// npvAndDerivative evaluates NPV(rate) − price and dNPV/drate in one pass:
//
//	NPV   = Σ amount_i / (1+r)^e_i
//	dNPV  = Σ −amount_i · e_i / (1+r)^(e_i+1)
func npvAndDerivative(rate, price decimal.Decimal, amounts, exponents []decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	base := one.Add(rate)
	if base.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: rate reached %s", ErrDomain, rate)
	}

	npv := decimal.Zero
	dnpv := decimal.Zero
	for i := range amounts {
		discount, err := base.PowWithPrecision(exponents[i], irrPrecision)
		if err != nil {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: %v", ErrDomain, err)
		}

		npv = npv.Add(amounts[i].DivRound(discount, irrPrecision))
		dnpv = dnpv.Sub(amounts[i].Mul(exponents[i]).DivRound(discount.Mul(base), irrPrecision))
	}

	return npv.Sub(price), dnpv, nil
}
