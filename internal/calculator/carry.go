package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CarryScenario is the projected USD return of holding a bond to payoff and
// exiting at one assumed future FX rate.
type CarryScenario struct {
	FXRate decimal.Decimal `json:"fxRate"`
	Return decimal.Decimal `json:"return"`
}

// CarryProjection is the full scenario table for one instrument.
type CarryProjection struct {
	ReturnRatio     decimal.Decimal `json:"returnRatio"` // payoff / price
	USDInvested     decimal.Decimal `json:"usdInvested"`
	Scenarios       []CarryScenario `json:"scenarios"`
	WorstCaseFX     decimal.Decimal `json:"worstCaseFx"`
	WorstCaseReturn decimal.Decimal `json:"worstCaseReturn"`
	BreakevenFX     decimal.Decimal `json:"breakevenFx"`
}

// WorstCaseAssumption projects the stress-scenario FX rate by compounding a
// flat monthly depreciation from a base rate over days/30 months.
type WorstCaseAssumption struct {
	BaseFXRate          decimal.Decimal
	MonthlyDepreciation decimal.Decimal
}

// ProjectCarry computes USD returns for a peso bond bought at price with
// the current FX rate, across the candidate future FX rates:
//
//	usd_invested = price / fx_now
//	usd_received = payoff / fx_future
//	return       = usd_received/usd_invested − 1
//
// BreakevenFX is the future rate at which the return is exactly zero.
func ProjectCarry(price, finalPayoff, fxRateNow decimal.Decimal, futureFXRates []decimal.Decimal, daysToMaturity int, worst WorstCaseAssumption) (CarryProjection, error) {
	if price.LessThanOrEqual(decimal.Zero) {
		return CarryProjection{}, fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}
	if fxRateNow.LessThanOrEqual(decimal.Zero) {
		return CarryProjection{}, fmt.Errorf("%w: fx rate must be positive", ErrInvalidInput)
	}

	returnRatio := finalPayoff.DivRound(price, irrPrecision)

	scenarios := make([]CarryScenario, 0, len(futureFXRates))
	for _, fxFuture := range futureFXRates {
		if fxFuture.LessThanOrEqual(decimal.Zero) {
			return CarryProjection{}, fmt.Errorf("%w: future fx rate must be positive, got %s", ErrInvalidInput, fxFuture)
		}
		scenarios = append(scenarios, CarryScenario{
			FXRate: fxFuture,
			Return: carryReturn(returnRatio, fxRateNow, fxFuture),
		})
	}

	months := decimal.NewFromInt(int64(daysToMaturity)).DivRound(thirty, irrPrecision)
	depreciation, err := one.Add(worst.MonthlyDepreciation).PowWithPrecision(months, irrPrecision)
	if err != nil {
		return CarryProjection{}, fmt.Errorf("%w: %v", ErrDomain, err)
	}
	worstFX := worst.BaseFXRate.Mul(depreciation)
	if worstFX.LessThanOrEqual(decimal.Zero) {
		return CarryProjection{}, fmt.Errorf("%w: worst-case fx rate must be positive", ErrInvalidInput)
	}

	return CarryProjection{
		ReturnRatio:     returnRatio,
		USDInvested:     price.DivRound(fxRateNow, irrPrecision),
		Scenarios:       scenarios,
		WorstCaseFX:     worstFX,
		WorstCaseReturn: carryReturn(returnRatio, fxRateNow, worstFX),
		BreakevenFX:     returnRatio.Mul(fxRateNow),
	}, nil
}

func carryReturn(returnRatio, fxNow, fxFuture decimal.Decimal) decimal.Decimal {
	return returnRatio.Mul(fxNow).DivRound(fxFuture, irrPrecision).Sub(one)
}
