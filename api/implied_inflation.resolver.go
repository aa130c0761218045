package api

import (
	"tirs/internal/calculator"
	"tirs/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type impliedInflationRequest struct {
	Price          decimal.Decimal `json:"price"`
	MarketTIR      decimal.Decimal `json:"marketTir"`
	DaysToMaturity int             `json:"daysToMaturity"`
	NominalPayoff  decimal.Decimal `json:"nominalPayoff"`
	// Optional overrides; when zero the latest published CER and the
	// default monthly inflation assumption are used.
	CurrentCERIndex  decimal.Decimal `json:"currentCerIndex"`
	MonthlyInflation decimal.Decimal `json:"monthlyInflation"`
}

type impliedInflationResponse struct {
	CurrentCERIndex decimal.Decimal         `json:"currentCerIndex"`
	Implied         domain.ImpliedInflation `json:"implied"`
}

func (m ApiHandler) impliedInflation(c *gin.Context) {
	var requestBody impliedInflationRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	currentIndex := requestBody.CurrentCERIndex
	if currentIndex.LessThanOrEqual(decimal.Zero) {
		if m.CERSource != nil {
			latest, err := m.CERSource.LatestCER(c.Request.Context())
			if err == nil {
				currentIndex = latest
			} else {
				m.Log.Warnw("could not fetch CER index, using default", "error", err)
			}
		}
		if currentIndex.LessThanOrEqual(decimal.Zero) {
			currentIndex = calculator.DefaultCERIndex
		}
	}

	monthlyInflation := requestBody.MonthlyInflation
	if monthlyInflation.LessThanOrEqual(decimal.Zero) {
		monthlyInflation = calculator.DefaultMonthlyInflation
	}

	adjustment := calculator.NewCERAdjustment(domain.CERProjection{
		CurrentIndex:         currentIndex,
		MonthlyInflationRate: monthlyInflation,
	})

	implied, err := adjustment.ImpliedInflation(
		requestBody.Price,
		requestBody.MarketTIR,
		requestBody.DaysToMaturity,
		requestBody.NominalPayoff,
	)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, impliedInflationResponse{
		CurrentCERIndex: currentIndex,
		Implied:         implied,
	})
}
