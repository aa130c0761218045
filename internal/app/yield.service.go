package app

import (
	"fmt"
	"time"

	"tirs/internal/calculator"
	"tirs/internal/domain"
	"tirs/internal/util"

	"github.com/shopspring/decimal"
)

// ZeroCouponMode selects how the single-flow closed form annualizes. The
// two modes produce materially different TIRs and the choice must always be
// explicit.
type ZeroCouponMode string

const (
	ZeroCouponMode_Compound ZeroCouponMode = "compound" // (payoff/price)^(365/days) − 1
	ZeroCouponMode_Simple   ZeroCouponMode = "simple"   // ((payoff−price)/price) × (365/days)
)

type YieldService interface {
	// PriceToYieldBundle builds the cash-flow schedule from the bond's
	// static data, solves the TIR and derives the full rate bundle.
	PriceToYieldBundle(bond domain.BondStaticInfo, price decimal.Decimal, settlement time.Time) (domain.YieldResult, error)

	// ZeroCouponBundle is the closed-form fast path for single-flow
	// instruments; no iterative solving.
	ZeroCouponBundle(price, finalPayoff decimal.Decimal, settlement, maturity time.Time, mode ZeroCouponMode) (domain.YieldResult, error)

	// BundleFromMarketTEA trusts an externally quoted TIR as the TEA and
	// derives the rest of the bundle from it.
	BundleFromMarketTEA(tea decimal.Decimal) domain.YieldResult

	// BONCERRealBundle solves the real (above-inflation) rate bundle for a
	// coupon-bearing CER bond quoted over its adjusted nominal.
	BONCERRealBundle(bond domain.BondStaticInfo, price decimal.Decimal, adjustment calculator.CERAdjustment, settlement time.Time) (domain.YieldResult, error)

	// Duration is the Macaulay duration of the bond's schedule at the
	// given solved TIR.
	Duration(bond domain.BondStaticInfo, tir decimal.Decimal, settlement time.Time) (decimal.Decimal, error)
}

type yieldServiceHandler struct{}

func NewYieldService() YieldService {
	return yieldServiceHandler{}
}

func (h yieldServiceHandler) PriceToYieldBundle(bond domain.BondStaticInfo, price decimal.Decimal, settlement time.Time) (domain.YieldResult, error) {
	if price.LessThanOrEqual(decimal.Zero) {
		return domain.YieldResult{}, fmt.Errorf("%w: price must be positive, got %s", calculator.ErrInvalidInput, price)
	}

	schedule := bond.Schedule()
	maturity := schedule.MaturityDate()
	if maturity.IsZero() {
		return domain.YieldResult{}, fmt.Errorf("%s: %w", bond.Ticker, calculator.ErrCannotDetermineMaturity)
	}
	if util.DaysBetween(settlement, maturity) <= 0 {
		return domain.YieldResult{}, fmt.Errorf("%s: %w", bond.Ticker, calculator.ErrAlreadyMatured)
	}

	tir, err := calculator.SolveIRR(schedule, price, settlement)
	if err != nil {
		return domain.YieldResult{}, fmt.Errorf("failed to solve tir for %s: %w", bond.Ticker, err)
	}

	return bundleFromTIR(tir), nil
}

func (h yieldServiceHandler) ZeroCouponBundle(price, finalPayoff decimal.Decimal, settlement, maturity time.Time, mode ZeroCouponMode) (domain.YieldResult, error) {
	if price.LessThanOrEqual(decimal.Zero) {
		return domain.YieldResult{}, fmt.Errorf("%w: price must be positive, got %s", calculator.ErrInvalidInput, price)
	}
	if maturity.IsZero() {
		return domain.YieldResult{}, calculator.ErrCannotDetermineMaturity
	}
	days := util.DaysBetween(settlement, maturity)
	if days <= 0 {
		return domain.YieldResult{}, calculator.ErrAlreadyMatured
	}

	one := decimal.NewFromInt(1)
	annualizer := decimal.NewFromInt(365).DivRound(decimal.NewFromInt(int64(days)), 50)

	var tir decimal.Decimal
	switch mode {
	case ZeroCouponMode_Compound:
		grown, err := finalPayoff.DivRound(price, 50).PowWithPrecision(annualizer, 50)
		if err != nil {
			return domain.YieldResult{}, fmt.Errorf("%w: %v", calculator.ErrDomain, err)
		}
		tir = grown.Sub(one)
	case ZeroCouponMode_Simple:
		tir = finalPayoff.Sub(price).DivRound(price, 50).Mul(annualizer)
	default:
		return domain.YieldResult{}, fmt.Errorf("%w: unknown zero-coupon mode %q", calculator.ErrInvalidInput, mode)
	}

	return bundleFromTIR(tir), nil
}

func (h yieldServiceHandler) BundleFromMarketTEA(tea decimal.Decimal) domain.YieldResult {
	return bundleFromTIR(tea)
}

func (h yieldServiceHandler) BONCERRealBundle(bond domain.BondStaticInfo, price decimal.Decimal, adjustment calculator.CERAdjustment, settlement time.Time) (domain.YieldResult, error) {
	tir, err := calculator.SolveBONCERRealTIR(bond, price, adjustment, settlement)
	if err != nil {
		return domain.YieldResult{}, fmt.Errorf("failed to solve real tir for %s: %w", bond.Ticker, err)
	}
	return bundleFromTIR(tir), nil
}

func (h yieldServiceHandler) Duration(bond domain.BondStaticInfo, tir decimal.Decimal, settlement time.Time) (decimal.Decimal, error) {
	return calculator.MacaulayDuration(bond.Schedule(), tir, settlement)
}

// bundleFromTIR derives the uniform bundle under the annual compounding
// assumption TEA = TIR. The four fields always move together; failures
// upstream return before this point.
func bundleFromTIR(tir decimal.Decimal) domain.YieldResult {
	tem := calculator.TEMFromTEA(tir)
	return domain.YieldResult{
		TIR: tir,
		TEA: tir,
		TEM: tem,
		TNA: calculator.TNAFromTEM(tem),
	}
}
