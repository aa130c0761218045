package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"tirs/internal/calculator"
	"tirs/internal/domain"
	"tirs/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CarryTradeConfig makes every assumption of the analysis explicit. The
// fallback MEP rate is only used when the FX source is unreachable; it is
// configuration, not a derived constant.
type CarryTradeConfig struct {
	USDScenarios                 []decimal.Decimal
	FallbackMEPRate              decimal.Decimal
	WorstCaseBaseFX              decimal.Decimal
	WorstCaseMonthlyDepreciation decimal.Decimal
}

func DefaultCarryTradeConfig() CarryTradeConfig {
	scenarios := []decimal.Decimal{}
	for _, rate := range []int64{1000, 1100, 1200, 1300, 1400} {
		scenarios = append(scenarios, decimal.NewFromInt(rate))
	}
	return CarryTradeConfig{
		USDScenarios:                 scenarios,
		FallbackMEPRate:              decimal.NewFromInt(1200),
		WorstCaseBaseFX:              decimal.NewFromInt(1400),
		WorstCaseMonthlyDepreciation: decimal.RequireFromString("0.01"),
	}
}

type BondCarryResult struct {
	Ticker         string                     `json:"ticker"`
	Type           domain.BondType            `json:"type"`
	DaysToMaturity int                        `json:"daysToMaturity"`
	Price          decimal.Decimal            `json:"price"`
	Rates          domain.YieldResult         `json:"rates"`
	Projection     calculator.CarryProjection `json:"projection"`
}

type CarryTradeAnalysis struct {
	MEPRate      decimal.Decimal   `json:"mepRate"`
	UsedFallback bool              `json:"usedFallbackMepRate"`
	Scenarios    []decimal.Decimal `json:"scenarios"`
	Bonds        []BondCarryResult `json:"bonds"`
	AnalysisDate time.Time         `json:"analysisDate"`
}

type CarryTradeService interface {
	Analyze(ctx context.Context, settlement time.Time) (*CarryTradeAnalysis, error)
}

type carryTradeServiceHandler struct {
	Bonds        []domain.BondStaticInfo
	PriceSource  PriceSource
	FXSource     FXSource
	YieldService YieldService
	Config       CarryTradeConfig
	Log          *zap.SugaredLogger
}

func NewCarryTradeService(
	bonds []domain.BondStaticInfo,
	priceSource PriceSource,
	fxSource FXSource,
	yieldService YieldService,
	config CarryTradeConfig,
	log *zap.SugaredLogger,
) CarryTradeService {
	return carryTradeServiceHandler{
		Bonds:        bonds,
		PriceSource:  priceSource,
		FXSource:     fxSource,
		YieldService: yieldService,
		Config:       config,
		Log:          log,
	}
}

func (h carryTradeServiceHandler) Analyze(ctx context.Context, settlement time.Time) (*CarryTradeAnalysis, error) {
	prices, err := h.PriceSource.Prices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prices: %w", err)
	}

	mepRate, usedFallback := h.resolveMEPRate(ctx)

	worst := calculator.WorstCaseAssumption{
		BaseFXRate:          h.Config.WorstCaseBaseFX,
		MonthlyDepreciation: h.Config.WorstCaseMonthlyDepreciation,
	}

	results := []BondCarryResult{}
	for _, bond := range h.Bonds {
		price, ok := prices[bond.Ticker]
		if !ok || price.LessThanOrEqual(decimal.Zero) {
			continue
		}

		days := bond.DaysToMaturity(settlement)
		if days <= 0 {
			continue
		}

		bundle, err := h.YieldService.PriceToYieldBundle(bond, price, settlement)
		if err != nil {
			h.Log.Warnw("skipping bond in carry analysis", "ticker", bond.Ticker, "error", err)
			continue
		}

		projection, err := calculator.ProjectCarry(price, bond.FinalPayoff, mepRate, h.Config.USDScenarios, days, worst)
		if err != nil {
			h.Log.Warnw("failed to project carry", "ticker", bond.Ticker, "error", err)
			continue
		}

		results = append(results, BondCarryResult{
			Ticker:         bond.Ticker,
			Type:           bond.Type,
			DaysToMaturity: days,
			Price:          price,
			Rates:          bundle,
			Projection:     projection,
		})
	}

	// Rank by the second-highest FX scenario, the conservative-but-not-
	// catastrophic case.
	if scenarioIdx := len(h.Config.USDScenarios) - 1; scenarioIdx >= 0 {
		if scenarioIdx > 0 {
			scenarioIdx--
		}
		sort.Slice(results, func(i, j int) bool {
			return results[i].Projection.Scenarios[scenarioIdx].Return.
				GreaterThan(results[j].Projection.Scenarios[scenarioIdx].Return)
		})
	}

	return &CarryTradeAnalysis{
		MEPRate:      mepRate,
		UsedFallback: usedFallback,
		Scenarios:    h.Config.USDScenarios,
		Bonds:        results,
		AnalysisDate: util.NewDate(settlement.Year(), int(settlement.Month()), settlement.Day()),
	}, nil
}

func (h carryTradeServiceHandler) resolveMEPRate(ctx context.Context) (decimal.Decimal, bool) {
	mepRate, err := h.FXSource.MEPRate(ctx)
	if err == nil && mepRate.GreaterThan(decimal.Zero) {
		return mepRate, false
	}
	h.Log.Warnw("could not fetch MEP rate, using configured fallback",
		"fallback", h.Config.FallbackMEPRate, "error", err)
	return h.Config.FallbackMEPRate, true
}
