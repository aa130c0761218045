package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type BondType string

const (
	BondType_HardDollar  BondType = "hard_dollar"
	BondType_FixedRate   BondType = "fixed_rate"
	BondType_CERLinked   BondType = "cer_linked"
	BondType_DollarLink  BondType = "dollar_linked"
	BondType_Dual        BondType = "dual"
	BondType_LecapBoncap BondType = "lecap_boncap"
	BondType_Other       BondType = "other"
)

func BondTypeFromString(s string) (BondType, error) {
	switch BondType(s) {
	case BondType_HardDollar, BondType_FixedRate, BondType_CERLinked,
		BondType_DollarLink, BondType_Dual, BondType_LecapBoncap, BondType_Other:
		return BondType(s), nil
	}
	return "", fmt.Errorf("unknown bond type %q", s)
}

// BondStaticInfo describes the contractual terms of an instrument,
// independent of market price. Loaded once from reference data.
type BondStaticInfo struct {
	Ticker       string
	Name         string
	MaturityDate time.Time
	FinalPayoff  decimal.Decimal
	Type         BondType

	// CouponSchedule, when non-empty, is the full amortization schedule.
	// When empty the instrument is priced as a single flow of FinalPayoff
	// at MaturityDate.
	CouponSchedule []CashFlowEntry

	// BONCER fields. Zero values mean "not a coupon-bearing CER bond".
	IssueDate       time.Time
	IssueCERIndex   decimal.Decimal
	AnnualRealRate  decimal.Decimal
	CouponFrequency int
}

func (b BondStaticInfo) Schedule() CashFlowSchedule {
	if len(b.CouponSchedule) > 0 {
		return NewCashFlowSchedule(b.CouponSchedule)
	}
	return SingleFlowSchedule(b.MaturityDate, b.FinalPayoff)
}

// DaysToMaturity is the signed ACT day count from settlement to maturity.
func (b BondStaticInfo) DaysToMaturity(settlement time.Time) int {
	return int(b.MaturityDate.Sub(settlement).Hours() / 24)
}
