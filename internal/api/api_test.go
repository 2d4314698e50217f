package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eugolor/finlit/internal/calculation"
	"github.com/eugolor/finlit/internal/catalog"
	"github.com/eugolor/finlit/internal/game"
	"github.com/eugolor/finlit/internal/quotes"
	"github.com/eugolor/finlit/internal/store"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat := catalog.Load()
	machine := game.NewMachine(cat,
		calculation.NewSeededSource(1), calculation.NewSeededSource(2))
	provider := quotes.NewStaticProvider()
	projector := quotes.NewProjector(provider, 42)
	projector.Horizon = 5
	projector.Paths = 100

	st, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	h := NewHandler(cat, machine, provider, projector, st, zap.NewNop().Sugar())
	return h.Router(nil)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)
	w := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "healthy", decodeBody(t, w)["status"])
}

func TestReferenceEndpoints(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/funds", nil)
	assert.Equal(t, 200, w.Code)
	var funds []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &funds))
	assert.Len(t, funds, 8)

	w = doJSON(t, router, http.MethodGet, "/api/life-events", nil)
	assert.Equal(t, 200, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/checkpoints", nil)
	assert.Equal(t, 200, w.Code)
	body := decodeBody(t, w)
	assert.Contains(t, body, "checkpoints")
	assert.Contains(t, body, "tiers")
}

func TestTaxEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/tax", gin.H{"income": 60000})
	require.Equal(t, 200, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "7621.58", body["total_tax"])

	w = doJSON(t, router, http.MethodPost, "/api/tax", gin.H{})
	assert.Equal(t, 400, w.Code)
}

func TestProfileEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/profile", gin.H{
		"age": 25, "income": 60000, "goals": []string{"home"},
	})
	require.Equal(t, 200, w.Code)
	body := decodeBody(t, w)
	allocation := body["allocation"].(map[string]any)
	assert.Equal(t, float64(65), allocation["fhsa"])
	assert.Equal(t, float64(35), allocation["tfsa"])
}

func TestSessionLifecycle(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/sessions", gin.H{
		"name": "Avery", "age": 25, "income": 60000, "starting_money": 5000,
	})
	require.Equal(t, 201, w.Code)
	id := decodeBody(t, w)["session_id"].(string)
	require.NotEmpty(t, id)

	w = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/sessions/%s/invest", id), gin.H{
		"fund": "tfsa", "amount": 2000,
	})
	require.Equal(t, 200, w.Code)
	state := decodeBody(t, w)["state"].(map[string]any)
	assert.Equal(t, "3000", state["cash"])

	w = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/sessions/%s/donate", id), gin.H{
		"amount": 100,
	})
	require.Equal(t, 200, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(2), body["social_points"])
	assert.Contains(t, body, "tax_credit")

	w = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/sessions/%s/simulate-year", id), gin.H{
		"force_no_event": true,
	})
	require.Equal(t, 200, w.Code)
	state = decodeBody(t, w)["state"].(map[string]any)
	assert.Equal(t, float64(26), state["age"])

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/sessions/%s/history", id), nil)
	require.Equal(t, 200, w.Code)
	history := decodeBody(t, w)["history"].([]any)
	assert.Len(t, history, 1)

	w = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/sessions/%s/end", id), nil)
	require.Equal(t, 200, w.Code)
	summary := decodeBody(t, w)["summary"].(map[string]any)
	assert.Contains(t, summary, "personality")
	assert.Contains(t, summary, "literacy_score")
}

func TestSessionActionFailuresAre400(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/sessions", gin.H{
		"name": "Avery", "age": 25, "income": 60000, "starting_money": 100,
	})
	require.Equal(t, 201, w.Code)
	id := decodeBody(t, w)["session_id"].(string)

	w = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/sessions/%s/invest", id), gin.H{
		"fund": "tfsa", "amount": 5000,
	})
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "insufficient funds")

	w = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/sessions/%s/trade", id), gin.H{
		"action": "buy", "ticker": "UNPRICED", "shares": 1,
	})
	assert.Equal(t, 400, w.Code)
}

func TestSessionNotFound(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/sessions/nope", nil)
	assert.Equal(t, 404, w.Code)
}

func TestTradeWithStaticQuote(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/sessions", gin.H{
		"name": "Avery", "age": 25, "income": 60000, "starting_money": 5000,
	})
	require.Equal(t, 201, w.Code)
	id := decodeBody(t, w)["session_id"].(string)

	// No explicit price: the static provider's AAPL quote fills it in.
	w = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/sessions/%s/trade", id), gin.H{
		"action": "buy", "ticker": "AAPL", "shares": 10,
	})
	require.Equal(t, 200, w.Code)
	state := decodeBody(t, w)["state"].(map[string]any)
	assert.Equal(t, "3148", state["cash"])
}

func TestQuotesEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/quotes?tickers=AAPL,NOPE", nil)
	require.Equal(t, 200, w.Code)
	body := decodeBody(t, w)
	assert.Len(t, body["quotes"].([]any), 1)
	assert.Equal(t, []any{"NOPE"}, body["unavailable"])

	w = doJSON(t, router, http.MethodGet, "/api/quotes", nil)
	assert.Equal(t, 400, w.Code)
}

func TestProjectionEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/stock-projection/AAPL?year=3&percentile=p50", nil)
	require.Equal(t, 200, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "AAPL", body["ticker"])
	assert.Greater(t, body["predicted_price"].(float64), 0.0)

	w = doJSON(t, router, http.MethodGet, "/api/stock-projection/NOPE", nil)
	assert.Equal(t, 400, w.Code)
}

func TestFinancialHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/financial-health", gin.H{
		"portfolio": gin.H{"tfsa": 10000, "etf": 5000},
		"cash":      8000, "income": 60000, "monthly_contribution": 500,
	})
	require.Equal(t, 200, w.Code)
	body := decodeBody(t, w)
	assert.Contains(t, body, "score")
	assert.Contains(t, body, "recommendations")

	w = doJSON(t, router, http.MethodPost, "/api/financial-health", gin.H{"income": 0})
	assert.Equal(t, 400, w.Code)
}
