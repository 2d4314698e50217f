// Package api exposes the game over HTTP: reference-table reads, stateless
// calculators mirroring the gameplay math, and session endpoints that drive
// the state machine.
package api

import (
	"errors"
	"sync"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/eugolor/finlit/internal/calculation"
	"github.com/eugolor/finlit/internal/catalog"
	"github.com/eugolor/finlit/internal/domain"
	"github.com/eugolor/finlit/internal/game"
	"github.com/eugolor/finlit/internal/quotes"
	"github.com/eugolor/finlit/internal/store"
)

// Handler wires the game services into HTTP resolvers.
type Handler struct {
	Catalog   *catalog.Catalog
	Machine   *game.Machine
	Taxes     *calculation.TaxCalculator
	Advisor   *calculation.AllocationAdvisor
	Donations *calculation.DonationCreditCalculator
	Health    *calculation.HealthScorer
	Quotes    quotes.Provider
	Projector *quotes.Projector
	Store     store.Store
	Log       *zap.SugaredLogger

	mu       sync.RWMutex
	sessions map[string]*domain.GameState
}

// NewHandler builds the API handler. A nil store disables persistence.
func NewHandler(cat *catalog.Catalog, machine *game.Machine, provider quotes.Provider,
	projector *quotes.Projector, st store.Store, log *zap.SugaredLogger) *Handler {
	if st == nil {
		st = store.NewNoopStore()
	}
	return &Handler{
		Catalog:   cat,
		Machine:   machine,
		Taxes:     calculation.NewTaxCalculator(cat),
		Advisor:   calculation.NewAllocationAdvisor(cat),
		Donations: calculation.NewDonationCreditCalculator(cat),
		Health:    calculation.NewHealthScorer(),
		Quotes:    provider,
		Projector: projector,
		Store:     st,
		Log:       log,
		sessions:  make(map[string]*domain.GameState),
	}
}

// Router builds the gin engine with all routes attached.
func (h *Handler) Router(allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(allowedOrigins) > 0 {
		corsCfg.AllowOrigins = allowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	router.Use(cors.New(corsCfg))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	api := router.Group("/api")
	{
		api.GET("/funds", h.getFunds)
		api.GET("/life-events", h.getLifeEvents)
		api.GET("/checkpoints", h.getCheckpoints)

		api.POST("/tax", h.calculateTax)
		api.POST("/profile", h.recommendAllocation)
		api.POST("/donate", h.quoteDonation)
		api.POST("/financial-health", h.financialHealth)

		api.GET("/quotes", h.getQuotes)
		api.GET("/stock-projection/:ticker", h.getProjection)

		api.POST("/sessions", h.createSession)
		api.GET("/sessions", h.listSessions)
		api.GET("/sessions/:id", h.getSession)
		api.POST("/sessions/:id/invest", h.invest)
		api.POST("/sessions/:id/donate", h.donate)
		api.POST("/sessions/:id/trade", h.trade)
		api.POST("/sessions/:id/simulate-year", h.simulateYear)
		api.POST("/sessions/:id/end", h.endSession)
		api.GET("/sessions/:id/history", h.sessionHistory)
	}

	return router
}

// Start runs the HTTP server.
func (h *Handler) Start(addr string, allowedOrigins []string) error {
	h.Log.Infow("starting api server", "addr", addr)
	return h.Router(allowedOrigins).Run(addr)
}

// rejectActionError maps the game's typed failures onto HTTP responses.
func (h *Handler) rejectActionError(c *gin.Context, err error) {
	var (
		insufficientFunds  *game.InsufficientFundsError
		insufficientShares *game.InsufficientSharesError
		invalidInput       *game.InvalidInputError
		priceUnavailable   *game.PriceUnavailableError
	)
	switch {
	case errors.As(err, &insufficientFunds),
		errors.As(err, &insufficientShares),
		errors.As(err, &invalidInput),
		errors.As(err, &priceUnavailable):
		c.AbortWithStatusJSON(400, gin.H{"error": err.Error()})
	default:
		h.Log.Errorw("action failed", "error", err)
		c.AbortWithStatusJSON(500, gin.H{"error": err.Error()})
	}
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(400, gin.H{"error": err.Error()})
}
