package api

import (
	"time"

	"tirs/internal/domain"
	"tirs/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type cashFlowInput struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

type yieldsRequest struct {
	Ticker       string          `json:"ticker"`
	Price        decimal.Decimal `json:"price"`
	MaturityDate string          `json:"maturityDate"`
	FinalPayoff  decimal.Decimal `json:"finalPayoff"`
	// Optional full schedule; when present it overrides the single-flow
	// assumption.
	CashFlows []cashFlowInput `json:"cashFlows"`
	// Optional, defaults to today.
	SettlementDate string `json:"settlementDate"`
}

type yieldsResponse struct {
	Ticker          string             `json:"ticker"`
	Rates           domain.YieldResult `json:"rates"`
	Duration        decimal.Decimal    `json:"duration"`
	YearsToMaturity decimal.Decimal    `json:"yearsToMaturity"`
}

func (m ApiHandler) yields(c *gin.Context) {
	var requestBody yieldsRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	maturity, err := time.Parse("2006-01-02", requestBody.MaturityDate)
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	settlement := time.Now().UTC()
	if requestBody.SettlementDate != "" {
		settlement, err = time.Parse("2006-01-02", requestBody.SettlementDate)
		if err != nil {
			returnErrorJsonCode(err, c, 400)
			return
		}
	}

	bond := domain.BondStaticInfo{
		Ticker:       requestBody.Ticker,
		MaturityDate: maturity,
		FinalPayoff:  requestBody.FinalPayoff,
	}
	for _, flow := range requestBody.CashFlows {
		date, err := time.Parse("2006-01-02", flow.Date)
		if err != nil {
			returnErrorJsonCode(err, c, 400)
			return
		}
		bond.CouponSchedule = append(bond.CouponSchedule, domain.CashFlowEntry{
			Date:   date,
			Amount: flow.Amount,
		})
	}

	bundle, err := m.YieldService.PriceToYieldBundle(bond, requestBody.Price, settlement)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	duration, err := m.YieldService.Duration(bond, bundle.TIR, settlement)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, yieldsResponse{
		Ticker:          requestBody.Ticker,
		Rates:           bundle,
		Duration:        duration,
		YearsToMaturity: util.YearsToMaturity(settlement, bond.Schedule().MaturityDate()),
	})
}
