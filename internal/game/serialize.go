package game

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/eugolor/finlit/internal/domain"
	"github.com/shopspring/decimal"
)

// snapshotVersion guards against loading saves from an incompatible layout.
const snapshotVersion = 1

// Snapshot is the serialized form of a game in progress. The core owns the
// encoding but no storage medium; persistence collaborators decide where the
// bytes go.
type Snapshot struct {
	Version int               `json:"version"`
	SavedAt time.Time         `json:"saved_at"`
	State   *domain.GameState `json:"state"`
}

// EncodeSnapshot serializes a game state for persistence.
func EncodeSnapshot(state *domain.GameState) ([]byte, error) {
	snap := Snapshot{
		Version: snapshotVersion,
		SavedAt: time.Now().UTC(),
		State:   state,
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to encode game snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot restores a game state from its serialized form, rebuilding
// any maps the encoder dropped as empty.
func DecodeSnapshot(data []byte) (*domain.GameState, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode game snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	if snap.State == nil {
		return nil, fmt.Errorf("snapshot has no game state")
	}

	state := snap.State
	if state.Portfolio == nil {
		state.Portfolio = map[domain.FundKind]decimal.Decimal{}
	}
	if state.StockHoldings == nil {
		state.StockHoldings = map[string]decimal.Decimal{}
	}
	if state.StockPrices == nil {
		state.StockPrices = map[string]decimal.Decimal{}
	}
	return state, nil
}
