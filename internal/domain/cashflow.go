package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// CashFlowEntry is one future payment (coupon and/or principal) of a bond.
type CashFlowEntry struct {
	Date   time.Time
	Amount decimal.Decimal
}

// CashFlowSchedule holds the payments of one instrument. Order on input is
// not guaranteed; use FutureFlows to get the flows that matter for valuation.
type CashFlowSchedule struct {
	Entries []CashFlowEntry
}

func NewCashFlowSchedule(entries []CashFlowEntry) CashFlowSchedule {
	return CashFlowSchedule{Entries: entries}
}

// SingleFlowSchedule builds the degenerate schedule of a zero-coupon style
// instrument: one payment of finalPayoff at maturity.
func SingleFlowSchedule(maturity time.Time, finalPayoff decimal.Decimal) CashFlowSchedule {
	return CashFlowSchedule{Entries: []CashFlowEntry{
		{Date: maturity, Amount: finalPayoff},
	}}
}

// FutureFlows returns the entries strictly after settlement, sorted by date.
// A flow dated exactly on settlement is treated as already reflected in the
// price and excluded.
func (s CashFlowSchedule) FutureFlows(settlement time.Time) []CashFlowEntry {
	future := []CashFlowEntry{}
	for _, entry := range s.Entries {
		if entry.Date.After(settlement) {
			future = append(future, entry)
		}
	}
	sort.Slice(future, func(i, j int) bool {
		return future[i].Date.Before(future[j].Date)
	})
	return future
}

// MaturityDate returns the date of the last entry, or the zero time for an
// empty schedule.
func (s CashFlowSchedule) MaturityDate() time.Time {
	var maturity time.Time
	for _, entry := range s.Entries {
		if entry.Date.After(maturity) {
			maturity = entry.Date
		}
	}
	return maturity
}
