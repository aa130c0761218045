package util

import (
	"time"

	"github.com/shopspring/decimal"
)

const layout = "2006-01-02"

func NewDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func DateLte(t1, t2 time.Time) bool {
	return t1.Before(t2) || t1.Format(layout) == t2.Format(layout)
}

// DaysBetween returns the number of calendar days from start to end (ACT).
func DaysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}

// WholeMonthsBetween counts whole calendar months from start to end, the
// convention used when projecting an index between two known dates.
func WholeMonthsBetween(start, end time.Time) int {
	return (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
}

// YearsToMaturity annualizes a day count on ACT/365.25. Curve and report
// output uses this convention; the IRR solver uses ACT/365. The two are not
// interchangeable and are deliberately kept separate.
func YearsToMaturity(settlement, maturity time.Time) decimal.Decimal {
	days := decimal.NewFromInt(int64(DaysBetween(settlement, maturity)))
	return days.DivRound(decimal.RequireFromString("365.25"), 12)
}
