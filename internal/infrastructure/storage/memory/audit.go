package memory

import (
	"context"

	"invacc/internal/domain/audit"
)

// AppendLog implements audit.Recorder.
func (s *Store) AppendLog(_ context.Context, entry audit.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, entry)
	return nil
}

// ListLogs implements audit.Reader. Newest entries come first; limit <= 0 means all.
func (s *Store) ListLogs(_ context.Context, limit int) ([]audit.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.logs)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]audit.Entry, 0, n)
	for i := len(s.logs) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.logs[i])
	}
	return out, nil
}
