package calculator

import (
	"fmt"
	"time"

	"tirs/internal/domain"
	"tirs/internal/util"

	"github.com/shopspring/decimal"
)

// MacaulayDuration computes the PV-weighted average time to payment, in
// years (ACT/365, same convention as the solver), for a schedule discounted
// at the given TIR. Duration is undefined without a valid discount rate or
// when the discounted flows sum to zero; both return an error.
func MacaulayDuration(schedule domain.CashFlowSchedule, tir decimal.Decimal, settlement time.Time) (decimal.Decimal, error) {
	base := one.Add(tir)
	if base.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: tir %s", ErrDomain, tir)
	}

	future := schedule.FutureFlows(settlement)
	if len(future) == 0 {
		return decimal.Zero, ErrNoFutureCashflows
	}

	totalPV := decimal.Zero
	weightedPV := decimal.Zero
	for _, flow := range future {
		days := util.DaysBetween(settlement, flow.Date)
		years := decimal.NewFromInt(int64(days)).
			DivRound(decimal.NewFromInt(irrDaysPerYear), irrPrecision)

		discount, err := base.PowWithPrecision(years, irrPrecision)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %v", ErrDomain, err)
		}

		pv := flow.Amount.DivRound(discount, irrPrecision)
		totalPV = totalPV.Add(pv)
		weightedPV = weightedPV.Add(pv.Mul(years))
	}

	if totalPV.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: discounted flows sum to zero", ErrInvalidInput)
	}

	return weightedPV.DivRound(totalPV, irrPrecision), nil
}
