package store

// NoopStore discards everything. Used when no database is configured; loads
// always miss.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) SaveSession(string, string, []byte) error { return nil }
func (n *NoopStore) LoadSession(string) ([]byte, error)       { return nil, ErrNotFound }
func (n *NoopStore) ListSessions() ([]SessionMeta, error)     { return nil, nil }
func (n *NoopStore) DeleteSession(string) error               { return nil }
func (n *NoopStore) RecordYear(YearRecord) error              { return nil }
func (n *NoopStore) YearHistory(string) ([]YearRecord, error) { return nil, nil }
func (n *NoopStore) Close() error                             { return nil }
