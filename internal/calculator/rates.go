package calculator

import (
	"github.com/shopspring/decimal"
)

// Compound-interest rate conversions. These are definitional identities,
// not estimates: annual effective (TEA) ⇄ monthly effective (TEM) ⇄ nominal
// annual with monthly compounding (TNA). Invalid domains clamp to zero
// rather than erroring, so a bad upstream rate renders as 0 instead of
// killing a whole report row.

var (
	twelve     = decimal.NewFromInt(12)
	oneTwelfth = one.DivRound(twelve, irrPrecision)
	minusOne   = decimal.NewFromInt(-1)
)

// TEAFromTIR annualizes a period TIR over daysToMaturity:
// (1+tir)^(365/days) − 1.
func TEAFromTIR(tir decimal.Decimal, daysToMaturity int) decimal.Decimal {
	if tir.LessThanOrEqual(minusOne) || daysToMaturity <= 0 {
		return decimal.Zero
	}
	exponent := decimal.NewFromInt(irrDaysPerYear).
		DivRound(decimal.NewFromInt(int64(daysToMaturity)), irrPrecision)
	tea, err := one.Add(tir).PowWithPrecision(exponent, irrPrecision)
	if err != nil {
		return decimal.Zero
	}
	return tea.Sub(one)
}

// TEMFromTEA converts an annual effective rate to its monthly equivalent:
// (1+tea)^(1/12) − 1.
func TEMFromTEA(tea decimal.Decimal) decimal.Decimal {
	if tea.LessThanOrEqual(minusOne) {
		return decimal.Zero
	}
	base, err := one.Add(tea).PowWithPrecision(oneTwelfth, irrPrecision)
	if err != nil {
		return decimal.Zero
	}
	return base.Sub(one)
}

// TEAFromTEM is the inverse of TEMFromTEA: (1+tem)^12 − 1.
func TEAFromTEM(tem decimal.Decimal) decimal.Decimal {
	if tem.LessThanOrEqual(minusOne) {
		return decimal.Zero
	}
	base, err := one.Add(tem).PowWithPrecision(twelve, irrPrecision)
	if err != nil {
		return decimal.Zero
	}
	return base.Sub(one)
}

// TNAFromTEM is the simple nominal annual rate: tem × 12.
func TNAFromTEM(tem decimal.Decimal) decimal.Decimal {
	return tem.Mul(twelve)
}

// TNAFromTEA converts an annual effective rate to a nominal annual rate
// with the given compounding frequency: ((1+tea)^(1/f) − 1) × f.
func TNAFromTEA(tea decimal.Decimal, compoundingFrequency int) decimal.Decimal {
	if tea.LessThanOrEqual(minusOne) || compoundingFrequency <= 0 {
		return decimal.Zero
	}
	frequency := decimal.NewFromInt(int64(compoundingFrequency))
	exponent := one.DivRound(frequency, irrPrecision)
	base, err := one.Add(tea).PowWithPrecision(exponent, irrPrecision)
	if err != nil {
		return decimal.Zero
	}
	return base.Sub(one).Mul(frequency)
}
