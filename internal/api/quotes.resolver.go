package api

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eugolor/finlit/internal/quotes"
)

// getQuotes fetches quotes for a comma-separated ticker list. Tickers the
// provider cannot price are reported in a separate list instead of failing
// the whole request.
func (h *Handler) getQuotes(c *gin.Context) {
	raw := c.Query("tickers")
	if raw == "" {
		badRequestMessage(c, "tickers query parameter is required")
		return
	}

	found := []*quotes.Quote{}
	missing := []string{}
	for _, ticker := range strings.Split(raw, ",") {
		ticker = strings.ToUpper(strings.TrimSpace(ticker))
		if ticker == "" {
			continue
		}
		q, err := h.Quotes.FetchQuote(c.Request.Context(), ticker)
		if err != nil {
			missing = append(missing, ticker)
			continue
		}
		found = append(found, q)
	}

	c.JSON(200, gin.H{"quotes": found, "unavailable": missing})
}

func (h *Handler) getProjection(c *gin.Context) {
	ticker := strings.ToUpper(c.Param("ticker"))

	proj, err := h.Projector.Project(c.Request.Context(), ticker)
	if err != nil {
		badRequest(c, err)
		return
	}

	yearParam := c.DefaultQuery("year", "")
	if yearParam == "" {
		c.JSON(200, proj)
		return
	}

	year, err := strconv.Atoi(yearParam)
	if err != nil {
		badRequestMessage(c, "year must be an integer")
		return
	}
	percentile := c.DefaultQuery("percentile", "p50")
	mult, ok := proj.Multiplier(year, percentile)
	if !ok {
		badRequestMessage(c, "year is outside the projection horizon")
		return
	}

	c.JSON(200, gin.H{
		"ticker":                  proj.Ticker,
		"year":                    year,
		"percentile":              percentile,
		"multiplier":              mult,
		"starting_price":          proj.StartingPrice,
		"predicted_price":         proj.StartingPrice * mult,
		"estimated_yearly_growth": proj.EstimatedYearlyGrowth,
		"risk_annual_volatility":  proj.RiskAnnualVolatility,
	})
}

func badRequestMessage(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(400, gin.H{"error": msg})
}
