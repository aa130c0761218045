package app

import (
	"context"

	"github.com/shopspring/decimal"
)

// PriceSource supplies live prices keyed by ticker. Implemented by
// pkg/data912; tests use small fakes.
type PriceSource interface {
	Prices(ctx context.Context) (map[string]decimal.Decimal, error)
}

// FXSource supplies the current MEP (implied USD/ARS) rate.
type FXSource interface {
	MEPRate(ctx context.Context) (decimal.Decimal, error)
}

// CERSource supplies the latest published CER index value.
type CERSource interface {
	LatestCER(ctx context.Context) (decimal.Decimal, error)
}
