package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// SQLiteStore persists sessions to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so reads don't block the writer.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id         TEXT PRIMARY KEY,
			player     TEXT NOT NULL,
			snapshot   BLOB NOT NULL,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS year_history (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			year       INTEGER NOT NULL,
			age        INTEGER NOT NULL,
			net_worth  TEXT NOT NULL,
			cash       TEXT NOT NULL,
			event_id   TEXT,
			points     INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_history_session ON year_history(session_id, year)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveSession inserts or replaces a session snapshot.
func (s *SQLiteStore) SaveSession(id, player string, snapshot []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().Unix()
	_, err := s.db.Exec(`
		INSERT INTO sessions (id, player, snapshot, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			player = excluded.player,
			snapshot = excluded.snapshot,
			updated_at = excluded.updated_at`,
		id, player, snapshot, now, now)
	if err != nil {
		return fmt.Errorf("save session %s: %w", id, err)
	}
	return nil
}

// LoadSession returns the stored snapshot bytes.
func (s *SQLiteStore) LoadSession(id string) ([]byte, error) {
	var snapshot []byte
	err := s.db.QueryRow(`SELECT snapshot FROM sessions WHERE id = ?`, id).Scan(&snapshot)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	return snapshot, nil
}

// ListSessions returns saved session metadata, newest first.
func (s *SQLiteStore) ListSessions() ([]SessionMeta, error) {
	rows, err := s.db.Query(`
		SELECT id, player, created_at, updated_at
		FROM sessions ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionMeta
	for rows.Next() {
		var meta SessionMeta
		var created, updated int64
		if err := rows.Scan(&meta.ID, &meta.Player, &created, &updated); err != nil {
			return nil, err
		}
		meta.CreatedAt = time.Unix(created, 0).UTC()
		meta.UpdatedAt = time.Unix(updated, 0).UTC()
		out = append(out, meta)
	}
	return out, rows.Err()
}

// DeleteSession removes a session and its history.
func (s *SQLiteStore) DeleteSession(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM year_history WHERE session_id = ?`, id); err != nil {
		return fmt.Errorf("delete history for %s: %w", id, err)
	}
	if _, err := s.db.Exec(`DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

// RecordYear appends one simulated year to a session's history.
func (s *SQLiteStore) RecordYear(rec YearRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO year_history (session_id, year, age, net_worth, cash, event_id, points, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.Year, rec.Age, rec.NetWorth.String(), rec.Cash.String(),
		rec.EventID, rec.Points, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("record year for %s: %w", rec.SessionID, err)
	}
	return nil
}

// YearHistory returns a session's simulated years in order.
func (s *SQLiteStore) YearHistory(sessionID string) ([]YearRecord, error) {
	rows, err := s.db.Query(`
		SELECT session_id, year, age, net_worth, cash, event_id, points, created_at
		FROM year_history WHERE session_id = ? ORDER BY year`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load history for %s: %w", sessionID, err)
	}
	defer rows.Close()

	var out []YearRecord
	for rows.Next() {
		var rec YearRecord
		var netWorth, cash string
		var eventID sql.NullString
		var created int64
		if err := rows.Scan(&rec.SessionID, &rec.Year, &rec.Age, &netWorth, &cash,
			&eventID, &rec.Points, &created); err != nil {
			return nil, err
		}
		rec.NetWorth, err = decimal.NewFromString(netWorth)
		if err != nil {
			return nil, fmt.Errorf("corrupt net worth for %s year %d: %w", sessionID, rec.Year, err)
		}
		rec.Cash, err = decimal.NewFromString(cash)
		if err != nil {
			return nil, fmt.Errorf("corrupt cash for %s year %d: %w", sessionID, rec.Year, err)
		}
		rec.EventID = eventID.String
		rec.CreatedAt = time.Unix(created, 0).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
