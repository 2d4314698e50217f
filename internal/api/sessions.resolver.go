package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eugolor/finlit/internal/domain"
	"github.com/eugolor/finlit/internal/game"
	"github.com/eugolor/finlit/internal/store"
	"github.com/eugolor/finlit/pkg/money"
)

type createSessionRequest struct {
	Name          string        `json:"name" binding:"required"`
	Age           int           `json:"age" binding:"required"`
	Income        float64       `json:"income"`
	Goals         []domain.Goal `json:"goals"`
	StartingMoney float64       `json:"starting_money"`
}

func (h *Handler) createSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	state, err := h.Machine.Apply(game.NewState(), game.Initialize{Profile: domain.PlayerProfile{
		Name:          req.Name,
		Age:           req.Age,
		Income:        money.FromFloat(req.Income),
		Goals:         req.Goals,
		StartingMoney: money.FromFloat(req.StartingMoney),
	}})
	if err != nil {
		h.rejectActionError(c, err)
		return
	}

	id := uuid.NewString()
	h.putSession(id, state)
	h.persist(id, state)
	h.Log.Infow("session created", "session", id, "player", req.Name)

	c.JSON(201, gin.H{"session_id": id, "state": state})
}

func (h *Handler) listSessions(c *gin.Context) {
	sessions, err := h.Store.ListSessions()
	if err != nil {
		h.rejectActionError(c, err)
		return
	}
	if sessions == nil {
		sessions = []store.SessionMeta{}
	}
	c.JSON(200, gin.H{"sessions": sessions})
}

func (h *Handler) getSession(c *gin.Context) {
	state, ok := h.loadSession(c.Param("id"))
	if !ok {
		c.AbortWithStatusJSON(404, gin.H{"error": "session not found"})
		return
	}
	c.JSON(200, gin.H{"state": state, "net_worth": state.NetWorth()})
}

type investRequest struct {
	Fund   domain.FundKind `json:"fund" binding:"required"`
	Amount float64         `json:"amount" binding:"required"`
}

func (h *Handler) invest(c *gin.Context) {
	var req investRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if _, ok := h.Catalog.Fund(req.Fund); !ok {
		c.AbortWithStatusJSON(400, gin.H{"error": fmt.Sprintf("unknown fund %q", req.Fund)})
		return
	}
	h.applyToSession(c, game.InvestInFund{Fund: req.Fund, Amount: money.FromFloat(req.Amount)})
}

type donateRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

func (h *Handler) donate(c *gin.Context) {
	var req donateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	id := c.Param("id")
	state, ok := h.loadSession(id)
	if !ok {
		c.AbortWithStatusJSON(404, gin.H{"error": "session not found"})
		return
	}

	next, err := h.Machine.Apply(state, game.Donate{Amount: money.FromFloat(req.Amount)})
	if err != nil {
		h.rejectActionError(c, err)
		return
	}
	h.putSession(id, next)
	h.persist(id, next)

	credit := h.Donations.Calculate(money.FromFloat(req.Amount), state.Income)
	c.JSON(200, gin.H{
		"state":         next,
		"tax_credit":    credit,
		"social_points": next.TotalPoints - state.TotalPoints,
	})
}

type tradeRequest struct {
	Action string  `json:"action" binding:"required"` // buy or sell
	Ticker string  `json:"ticker" binding:"required"`
	Shares float64 `json:"shares" binding:"required"`
	Price  float64 `json:"price"` // optional; falls back to quotes then state
}

func (h *Handler) trade(c *gin.Context) {
	var req tradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	price := money.FromFloat(req.Price)
	if req.Price <= 0 {
		if q, err := h.Quotes.FetchQuote(c.Request.Context(), req.Ticker); err == nil {
			price = q.Price
		}
	}

	shares := money.FromFloat(req.Shares)
	switch req.Action {
	case "buy":
		h.applyToSession(c, game.BuyStock{Ticker: req.Ticker, Shares: shares, PricePerShare: price})
	case "sell":
		h.applyToSession(c, game.SellStock{Ticker: req.Ticker, Shares: shares, PricePerShare: price})
	default:
		c.AbortWithStatusJSON(400, gin.H{"error": `action must be "buy" or "sell"`})
	}
}

type simulateRequest struct {
	TriggerEvent string `json:"trigger_event"`
	ForceNoEvent bool   `json:"force_no_event"`
	Preview      bool   `json:"preview"`
}

func (h *Handler) simulateYear(c *gin.Context) {
	var req simulateRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		badRequest(c, err)
		return
	}

	id := c.Param("id")
	state, ok := h.loadSession(id)
	if !ok {
		c.AbortWithStatusJSON(404, gin.H{"error": "session not found"})
		return
	}

	var action game.Action
	if req.Preview {
		action = game.PreviewYear{TriggerEvent: req.TriggerEvent, ForceNoEvent: req.ForceNoEvent}
	} else {
		action = game.SimulateYear{TriggerEvent: req.TriggerEvent, ForceNoEvent: req.ForceNoEvent}
	}

	next, err := h.Machine.Apply(state, action)
	if err != nil {
		h.rejectActionError(c, err)
		return
	}
	h.putSession(id, next)

	if !req.Preview {
		h.persist(id, next)
		eventID := ""
		if next.CurrentEvent != nil {
			eventID = next.CurrentEvent.ID
		}
		if err := h.Store.RecordYear(store.YearRecord{
			SessionID: id,
			Year:      next.Year,
			Age:       next.Age,
			NetWorth:  next.NetWorth(),
			Cash:      next.Cash,
			EventID:   eventID,
			Points:    next.TotalPoints,
		}); err != nil {
			h.Log.Warnw("failed to record year", "session", id, "error", err)
		}
	}

	c.JSON(200, gin.H{"state": next, "preview": req.Preview, "event": next.CurrentEvent})
}

func (h *Handler) endSession(c *gin.Context) {
	id := c.Param("id")
	state, ok := h.loadSession(id)
	if !ok {
		c.AbortWithStatusJSON(404, gin.H{"error": "session not found"})
		return
	}

	summary := h.Machine.Summarize(state)
	next, err := h.Machine.Apply(state, game.EndGame{Summary: &summary})
	if err != nil {
		h.rejectActionError(c, err)
		return
	}
	h.putSession(id, next)
	h.persist(id, next)

	c.JSON(200, gin.H{"summary": summary, "state": next})
}

func (h *Handler) sessionHistory(c *gin.Context) {
	history, err := h.Store.YearHistory(c.Param("id"))
	if err != nil {
		h.rejectActionError(c, err)
		return
	}
	if history == nil {
		history = []store.YearRecord{}
	}
	c.JSON(200, gin.H{"history": history})
}

// applyToSession runs an action against the session named in the route and
// responds with the new state.
func (h *Handler) applyToSession(c *gin.Context, action game.Action) {
	id := c.Param("id")
	state, ok := h.loadSession(id)
	if !ok {
		c.AbortWithStatusJSON(404, gin.H{"error": "session not found"})
		return
	}

	next, err := h.Machine.Apply(state, action)
	if err != nil {
		h.rejectActionError(c, err)
		return
	}
	h.putSession(id, next)
	h.persist(id, next)
	c.JSON(200, gin.H{"state": next})
}

func (h *Handler) loadSession(id string) (*domain.GameState, bool) {
	h.mu.RLock()
	state, ok := h.sessions[id]
	h.mu.RUnlock()
	if ok {
		return state, true
	}

	// Fall back to persisted sessions (e.g. after a restart).
	data, err := h.Store.LoadSession(id)
	if err != nil {
		return nil, false
	}
	state, err = game.DecodeSnapshot(data)
	if err != nil {
		h.Log.Warnw("corrupt session snapshot", "session", id, "error", err)
		return nil, false
	}
	h.putSession(id, state)
	return state, true
}

func (h *Handler) putSession(id string, state *domain.GameState) {
	h.mu.Lock()
	h.sessions[id] = state
	h.mu.Unlock()
}

func (h *Handler) persist(id string, state *domain.GameState) {
	data, err := game.EncodeSnapshot(state)
	if err != nil {
		h.Log.Warnw("failed to encode session", "session", id, "error", err)
		return
	}
	if err := h.Store.SaveSession(id, state.Name, data); err != nil {
		h.Log.Warnw("failed to persist session", "session", id, "error", err)
	}
}
