package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignalScope/internal/model"
)

func rated(symbol string, label model.RatingLabel, score float64) *model.Report {
	return &model.Report{
		Symbol:      symbol,
		GeneratedAt: time.Date(2024, 3, 4, 22, 30, 0, 0, time.UTC),
		LastClose:   188.5,
		Rating:      model.Rating{Label: label, Score: score},
	}
}

func TestManager_Update(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "watch.json")
	m, err := NewManager(path)
	require.NoError(t, err)

	_, changed := m.Update(rated("aapl", model.RatingNeutral, 50))
	assert.False(t, changed, "first rating is a baseline")

	_, changed = m.Update(rated("AAPL", model.RatingNeutral, 52))
	assert.False(t, changed)

	c, changed := m.Update(rated("AAPL", model.RatingBuy, 60))
	require.True(t, changed)
	assert.Equal(t, Change{
		Symbol:    "AAPL",
		From:      model.RatingNeutral,
		To:        model.RatingBuy,
		FromScore: 52,
		ToScore:   60,
		LastClose: 188.5,
	}, c)

	e, ok := m.Entry("aapl")
	require.True(t, ok)
	assert.Equal(t, model.RatingBuy, e.Label)
}

func TestManager_PersistsAcrossRestarts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watch.json")
	m, err := NewManager(path)
	require.NoError(t, err)
	m.Update(rated("MSFT", model.RatingSell, 40))
	m.Update(rated("AAPL", model.RatingBuy, 60))
	scanAt := time.Date(2024, 3, 4, 22, 31, 0, 0, time.UTC)
	m.MarkScan(scanAt)

	m2, err := NewManager(path)
	require.NoError(t, err)
	snap := m2.Snapshot()
	assert.Equal(t, 1, snap.ScanCount)
	assert.True(t, snap.LastScan.Equal(scanAt))
	assert.Equal(t, []string{"AAPL", "MSFT"}, m2.Symbols())

	c, changed := m2.Update(rated("MSFT", model.RatingStrongSell, 20))
	require.True(t, changed)
	assert.Equal(t, model.RatingSell, c.From)
}

func TestLoadState_Missing(t *testing.T) {
	s, err := LoadState(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.NotNil(t, s.Entries)
	assert.Zero(t, s.ScanCount)
}

func TestLoadState_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watch.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	_, err := LoadState(path)
	assert.ErrorContains(t, err, "decode")
}

func TestSnapshot_IsCopy(t *testing.T) {
	m, err := NewManager(filepath.Join(t.TempDir(), "watch.json"))
	require.NoError(t, err)
	m.Update(rated("SPY", model.RatingNeutral, 50))

	snap := m.Snapshot()
	delete(snap.Entries, "SPY")
	_, ok := m.Entry("SPY")
	assert.True(t, ok)
}
