// Package store persists game sessions and their year-by-year history. The
// game core only ever sees serialized snapshots; everything storage-related
// lives behind the Store interface so the server can run with SQLite or with
// nothing at all.
package store

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a session id has no saved state.
var ErrNotFound = errors.New("session not found")

// SessionMeta describes a saved session without loading its snapshot.
type SessionMeta struct {
	ID        string    `json:"id"`
	Player    string    `json:"player"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// YearRecord is one simulated year's outcome, kept for post-game review and
// CSV export.
type YearRecord struct {
	SessionID string          `json:"session_id" csv:"session_id"`
	Year      int             `json:"year" csv:"year"`
	Age       int             `json:"age" csv:"age"`
	NetWorth  decimal.Decimal `json:"net_worth" csv:"net_worth"`
	Cash      decimal.Decimal `json:"cash" csv:"cash"`
	EventID   string          `json:"event_id,omitempty" csv:"event_id"`
	Points    int             `json:"points" csv:"points"`
	CreatedAt time.Time       `json:"created_at" csv:"-"`
}

// Store persists sessions and year history.
type Store interface {
	SaveSession(id, player string, snapshot []byte) error
	LoadSession(id string) ([]byte, error)
	ListSessions() ([]SessionMeta, error)
	DeleteSession(id string) error

	RecordYear(rec YearRecord) error
	YearHistory(sessionID string) ([]YearRecord, error)

	Close() error
}
