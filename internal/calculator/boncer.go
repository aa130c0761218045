package calculator

import (
	"fmt"
	"time"

	"tirs/internal/domain"

	"github.com/shopspring/decimal"
)

// BONCERFlow is one projected payment of a CER bond with a fixed real
// coupon. Amounts are in CER-adjusted pesos; CERRatio deflates them back to
// issue-base terms.
type BONCERFlow struct {
	Date      time.Time
	CERRatio  decimal.Decimal
	Coupon    decimal.Decimal
	Principal decimal.Decimal
}

func (f BONCERFlow) Total() decimal.Decimal {
	return f.Coupon.Add(f.Principal)
}

// GenerateBONCERSchedule projects the coupon schedule of a BONCER from its
// contractual terms: coupon dates step from the issue date by 12/frequency
// months, each payment is (real rate / frequency) on the CER-adjusted
// nominal, and the principal is repaid at maturity. Index values on future
// dates come from the calendar-month projection.
func GenerateBONCERSchedule(bond domain.BondStaticInfo, adjustment CERAdjustment, today time.Time) ([]BONCERFlow, error) {
	if bond.CouponFrequency <= 0 {
		return nil, fmt.Errorf("%w: coupon frequency must be positive", ErrInvalidInput)
	}
	if bond.IssueCERIndex.LessThanOrEqual(decimal.Zero) {
		return nil, ErrMissingCERData
	}
	if bond.MaturityDate.IsZero() {
		return nil, ErrCannotDetermineMaturity
	}

	monthsBetweenCoupons := 12 / bond.CouponFrequency
	couponRate := bond.AnnualRealRate.
		DivRound(decimal.NewFromInt(int64(bond.CouponFrequency)), irrPrecision)

	flows := []BONCERFlow{}
	for date := bond.IssueDate.AddDate(0, monthsBetweenCoupons, 0); !date.After(bond.MaturityDate); date = date.AddDate(0, monthsBetweenCoupons, 0) {
		estimatedIndex := adjustment.EstimateIndexAtDate(date, today)
		ratio := estimatedIndex.DivRound(bond.IssueCERIndex, irrPrecision)
		adjustedNominal := bond.FinalPayoff.Mul(ratio)

		principal := decimal.Zero
		if date.Equal(bond.MaturityDate) {
			principal = adjustedNominal
		}

		flows = append(flows, BONCERFlow{
			Date:      date,
			CERRatio:  ratio,
			Coupon:    couponRate.Mul(adjustedNominal),
			Principal: principal,
		})
	}

	if len(flows) == 0 {
		return nil, fmt.Errorf("%w: no coupon dates between issue and maturity", ErrInvalidInput)
	}

	return flows, nil
}

// RealSchedule deflates each projected flow by its CER ratio, producing the
// issue-base schedule over which a real (above-inflation) TIR is solved.
func RealSchedule(flows []BONCERFlow) domain.CashFlowSchedule {
	entries := make([]domain.CashFlowEntry, 0, len(flows))
	for _, flow := range flows {
		entries = append(entries, domain.CashFlowEntry{
			Date:   flow.Date,
			Amount: flow.Total().DivRound(flow.CERRatio, irrPrecision),
		})
	}
	return domain.NewCashFlowSchedule(entries)
}

// SolveBONCERRealTIR solves the real TIR of a BONCER quoted over its
// CER-adjusted nominal. The quoted price is deflated to issue-base terms
// first, so the solved rate is the return above inflation.
func SolveBONCERRealTIR(bond domain.BondStaticInfo, price decimal.Decimal, adjustment CERAdjustment, settlement time.Time) (decimal.Decimal, error) {
	flows, err := GenerateBONCERSchedule(bond, adjustment, settlement)
	if err != nil {
		return decimal.Zero, err
	}

	currentRatio := adjustment.CurrentIndex.DivRound(bond.IssueCERIndex, irrPrecision)
	if currentRatio.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrMissingCERData
	}
	basePrice := price.DivRound(currentRatio, irrPrecision)

	return SolveIRR(RealSchedule(flows), basePrice, settlement)
}
