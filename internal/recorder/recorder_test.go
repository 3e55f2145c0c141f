package recorder

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignalScope/internal/model"
)

func openTestDB(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func report(symbol string, at time.Time, label model.RatingLabel, score float64) *model.Report {
	return &model.Report{
		Symbol:      symbol,
		Timeframe:   "6mo",
		Source:      "mock",
		GeneratedAt: at,
		Bars:        120,
		LastClose:   101.25,
		Signals: []model.Signal{
			{Kind: model.KindRSI, Value: 28, Reading: model.ReadingOversold, Action: model.ActionBuy, Strength: 44},
			{Kind: model.KindMACD, Value: -0.4, Reading: model.ReadingBearish, Action: model.ActionSell, Strength: 4},
			{Kind: model.KindADX, Value: 31, Reading: model.ReadingStrong, Action: model.ActionTrend, Strength: 62},
		},
		Rating: model.Rating{Label: label, Score: score, Color: "#ff9800", Buy: 1, Sell: 1, Hold: 1, Total: 3},
	}
}

func TestSQLiteRecorder_RecordAndHistory(t *testing.T) {
	r := openTestDB(t)
	ctx := context.Background()
	t0 := time.Date(2024, 5, 1, 22, 30, 0, 0, time.UTC)

	id1, err := r.Record(ctx, report("aapl", t0, model.RatingNeutral, 50))
	require.NoError(t, err)
	_, err = uuid.Parse(id1)
	require.NoError(t, err)

	id2, err := r.Record(ctx, report("AAPL", t0.Add(24*time.Hour), model.RatingBuy, 60))
	require.NoError(t, err)
	_, err = r.Record(ctx, report("MSFT", t0, model.RatingSell, 40))
	require.NoError(t, err)

	runs, err := r.History(ctx, "aapl", 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, id2, runs[0].ID)
	assert.Equal(t, id1, runs[1].ID)
	assert.Equal(t, "AAPL", runs[0].Symbol)
	assert.Equal(t, t0.Add(24*time.Hour), runs[0].GeneratedAt)
	assert.Equal(t, model.RatingBuy, runs[0].Rating.Label)
	assert.Equal(t, 60.0, runs[0].Rating.Score)
	assert.Equal(t, 3, runs[0].Rating.Total)
	assert.Equal(t, 101.25, runs[0].LastClose)

	require.Len(t, runs[1].Signals, 3)
	assert.Equal(t, model.KindRSI, runs[1].Signals[0].Kind)
	assert.Equal(t, model.ActionTrend, runs[1].Signals[2].Action)
	assert.Equal(t, 62.0, runs[1].Signals[2].Strength)
}

func TestSQLiteRecorder_HistoryLimit(t *testing.T) {
	r := openTestDB(t)
	ctx := context.Background()
	t0 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := r.Record(ctx, report("SPY", t0.AddDate(0, 0, i), model.RatingNeutral, 50))
		require.NoError(t, err)
	}

	runs, err := r.History(ctx, "SPY", 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, t0.AddDate(0, 0, 4), runs[0].GeneratedAt)

	runs, err = r.History(ctx, "SPY", 0)
	require.NoError(t, err)
	assert.Len(t, runs, 5)
}

func TestSQLiteRecorder_UnknownSymbol(t *testing.T) {
	r := openTestDB(t)
	runs, err := r.History(context.Background(), "NONE", 5)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestSQLiteRecorder_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	r, err := NewSQLiteRecorder(path)
	require.NoError(t, err)
	_, err = r.Record(context.Background(), report("QQQ", time.Now(), model.RatingStrongBuy, 80))
	require.NoError(t, err)
	require.NoError(t, r.Close())

	r, err = NewSQLiteRecorder(path)
	require.NoError(t, err)
	defer r.Close()
	runs, err := r.History(context.Background(), "QQQ", 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, model.RatingStrongBuy, runs[0].Rating.Label)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	id, err := r.Record(context.Background(), &model.Report{})
	assert.NoError(t, err)
	assert.Empty(t, id)
	runs, err := r.History(context.Background(), "X", 1)
	assert.NoError(t, err)
	assert.Nil(t, runs)
	assert.NoError(t, r.Close())
}
