package api

import (
	"errors"
	"io"
	"time"

	"github.com/gin-gonic/gin"
)

type carryTradeRequest struct {
	// Optional, defaults to today.
	SettlementDate string `json:"settlementDate"`
}

func (m ApiHandler) carryTrade(c *gin.Context) {
	var requestBody carryTradeRequest
	// An empty body means "run with defaults".
	if err := c.ShouldBindJSON(&requestBody); err != nil && !errors.Is(err, io.EOF) {
		returnErrorJsonCode(err, c, 400)
		return
	}

	settlement := time.Now().UTC()
	if requestBody.SettlementDate != "" {
		parsed, err := time.Parse("2006-01-02", requestBody.SettlementDate)
		if err != nil {
			returnErrorJsonCode(err, c, 400)
			return
		}
		settlement = parsed
	}

	analysis, err := m.CarryTradeService.Analyze(c.Request.Context(), settlement)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, analysis)
}
