package api

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/eugolor/finlit/internal/calculation"
	"github.com/eugolor/finlit/internal/domain"
	"github.com/eugolor/finlit/pkg/money"
)

func (h *Handler) getFunds(c *gin.Context) {
	c.JSON(200, h.Catalog.Funds)
}

func (h *Handler) getLifeEvents(c *gin.Context) {
	c.JSON(200, h.Catalog.LifeEvents)
}

func (h *Handler) getCheckpoints(c *gin.Context) {
	c.JSON(200, gin.H{
		"checkpoints": h.Catalog.Checkpoints,
		"tiers":       h.Catalog.Tiers,
	})
}

type taxRequest struct {
	Income float64 `json:"income" binding:"required"`
}

func (h *Handler) calculateTax(c *gin.Context) {
	var req taxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(200, h.Taxes.Calculate(money.FromFloat(req.Income)))
}

type profileRequest struct {
	Age    int           `json:"age" binding:"required"`
	Income float64       `json:"income"`
	Goals  []domain.Goal `json:"goals"`
}

func (h *Handler) recommendAllocation(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	plan := h.Advisor.Recommend(req.Age, money.FromFloat(req.Income), req.Goals)
	c.JSON(200, gin.H{
		"allocation":                 plan.Allocation,
		"monthly_invest_recommended": plan.MonthlyInvestRecommended,
		"tax_info":                   plan.TaxInfo,
		"age":                        req.Age,
		"income":                     req.Income,
		"goals":                      req.Goals,
	})
}

type donationQuoteRequest struct {
	Amount float64 `json:"amount" binding:"required"`
	Income float64 `json:"income"`
}

// quoteDonation is the stateless credit calculator; the session donate
// endpoint actually moves money.
func (h *Handler) quoteDonation(c *gin.Context) {
	var req donationQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Amount <= 0 {
		c.AbortWithStatusJSON(400, gin.H{"error": "donation amount must be positive"})
		return
	}
	credit := h.Donations.Calculate(money.FromFloat(req.Amount), money.FromFloat(req.Income))
	c.JSON(200, gin.H{"tax_credit": credit})
}

type healthRequest struct {
	Portfolio           map[domain.FundKind]float64 `json:"portfolio"`
	Cash                float64                     `json:"cash"`
	Income              float64                     `json:"income"`
	MonthlyContribution float64                     `json:"monthly_contribution"`
	AnnualCharity       float64                     `json:"annual_charity"`
}

func (h *Handler) financialHealth(c *gin.Context) {
	var req healthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	portfolio := make(map[domain.FundKind]decimal.Decimal, len(req.Portfolio))
	for kind, bal := range req.Portfolio {
		portfolio[kind] = money.FromFloat(bal)
	}
	input := calculation.BuildHealthInput(h.Catalog, portfolio,
		money.FromFloat(req.Cash), money.FromFloat(req.Income),
		money.FromFloat(req.MonthlyContribution), money.FromFloat(req.AnnualCharity))

	result, err := h.Health.Score(input)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(200, result)
}
