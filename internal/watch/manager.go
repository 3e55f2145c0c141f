// Package watch tracks the last rating of each watched symbol across scans.
package watch

import (
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"SignalScope/internal/logger"
	"SignalScope/internal/model"
)

// Change describes a rating label transition for one symbol.
type Change struct {
	Symbol    string
	From      model.RatingLabel
	To        model.RatingLabel
	FromScore float64
	ToScore   float64
	LastClose float64
}

// Manager guards the watch state and persists it after every mutation.
type Manager struct {
	mu       sync.Mutex
	state    *model.WatchState
	filePath string
}

// NewManager creates a Manager, loading state from disk.
func NewManager(filePath string) (*Manager, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	return &Manager{state: state, filePath: filePath}, nil
}

// Update stores the rating in r and reports whether its label differs from
// the previous one. The first rating seen for a symbol is never a change.
func (m *Manager) Update(r *model.Report) (Change, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	symbol := strings.ToUpper(r.Symbol)
	prev, seen := m.state.Entries[symbol]
	at := r.GeneratedAt
	if at.IsZero() {
		at = time.Now()
	}
	m.state.Entries[symbol] = model.WatchEntry{
		Label:     r.Rating.Label,
		Score:     r.Rating.Score,
		LastClose: r.LastClose,
		UpdatedAt: at,
	}
	m.save()

	if !seen || prev.Label == r.Rating.Label {
		return Change{}, false
	}
	return Change{
		Symbol:    symbol,
		From:      prev.Label,
		To:        r.Rating.Label,
		FromScore: prev.Score,
		ToScore:   r.Rating.Score,
		LastClose: r.LastClose,
	}, true
}

// MarkScan counts a completed watchlist scan.
func (m *Manager) MarkScan(at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.ScanCount++
	m.state.LastScan = at
	m.save()
}

// Entry returns the stored rating for symbol.
func (m *Manager) Entry(symbol string) (model.WatchEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.state.Entries[strings.ToUpper(symbol)]
	return e, ok
}

// Snapshot returns a copy of the current state.
func (m *Manager) Snapshot() model.WatchState {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := *m.state
	s.Entries = make(map[string]model.WatchEntry, len(m.state.Entries))
	for k, v := range m.state.Entries {
		s.Entries[k] = v
	}
	return s
}

// Symbols returns the tracked symbols in sorted order.
func (m *Manager) Symbols() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.state.Entries))
	for k := range m.state.Entries {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (m *Manager) save() {
	if err := SaveState(m.filePath, m.state); err != nil {
		logger.Error("failed to save watch state", zap.String("path", m.filePath), zap.Error(err))
	}
}
