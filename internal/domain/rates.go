package domain

import (
	"github.com/shopspring/decimal"
)

// YieldResult is the uniform rate bundle for one instrument at one point in
// time. The four fields are mutually derivable and always populated
// together; a failed computation returns an error instead of a partially
// filled bundle.
type YieldResult struct {
	TIR decimal.Decimal `json:"tir"`
	TEA decimal.Decimal `json:"tea"`
	TEM decimal.Decimal `json:"tem"`
	TNA decimal.Decimal `json:"tna"`
}

// CERProjection holds the inflation-index assumptions used to scale a
// nominal payoff into a projected one. Recomputed per request, never
// persisted as authoritative state.
type CERProjection struct {
	CurrentIndex         decimal.Decimal `json:"currentIndex"`
	MonthlyInflationRate decimal.Decimal `json:"monthlyInflationRate"`
	// BaseIndex is the index at issuance when known. Nil means it must be
	// estimated by deflating CurrentIndex backward.
	BaseIndex *decimal.Decimal `json:"baseIndex,omitempty"`
}

// ImpliedInflation is what an observed market yield implies about the
// market's inflation expectation for a CER-linked instrument.
type ImpliedInflation struct {
	ImpliedPayoff           decimal.Decimal `json:"impliedPayoff"`
	InflationAdjustment     decimal.Decimal `json:"inflationAdjustment"`
	ImpliedMonthlyInflation decimal.Decimal `json:"impliedMonthlyInflation"`
	ImpliedAnnualInflation  decimal.Decimal `json:"impliedAnnualInflation"`
}
