package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignalScope/internal/analysis"
	"SignalScope/internal/model"
)

func fullReport() *model.Report {
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	return &model.Report{
		Symbol:      "AAPL",
		Timeframe:   "6mo",
		Source:      "yahoo",
		GeneratedAt: time.Date(2024, 6, 3, 22, 30, 0, 0, time.UTC),
		Bars:        126,
		LastClose:   194.03,
		SMA: map[int][]model.Point{
			20: {{Date: day, Value: 190.5}},
			50: {{Date: day, Value: 185.25}},
		},
		EMA:  map[int][]model.Point{12: {{Date: day, Value: 192.1}}},
		MACD: []model.MACDPoint{{Date: day, MACD: 1.2, Signal: 0.8, Histogram: 0.4}},
		Pivot: &model.PivotPoints{Pivot: 193, R1: 195, S1: 191},
		SupportResistance: &model.SupportResistance{
			Supports:     []float64{186.21},
			Resistances:  []float64{199.62},
			CurrentPrice: 194.03,
		},
		Signals: []model.Signal{
			{Kind: model.KindMACD, Value: 0.4, Reading: model.ReadingBullish, Action: model.ActionBuy, Strength: 20},
		},
		Rating: model.Rating{Label: model.RatingStrongBuy, Score: 100, Color: "#4caf50", Buy: 1, Total: 1},
	}
}

func TestReportCodec(t *testing.T) {
	in := fullReport()
	data, err := encodeReport(in)
	require.NoError(t, err)

	out, err := decodeReport(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.Equal(t, 185.25, out.SMA[50][0].Value)

	_, err = decodeReport([]byte("{broken"))
	assert.ErrorContains(t, err, "decode cached report")
}

func newMiniRedisCache(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewRedisCache(Config{Addr: mr.Addr(), TTL: ttl})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestRedisCache_GetSet(t *testing.T) {
	c, mr := newMiniRedisCache(t, time.Minute)
	ctx := context.Background()
	key := Key("AAPL", "6mo", analysis.DefaultParams())

	r, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, r)

	in := fullReport()
	require.NoError(t, c.Set(ctx, key, in))
	assert.Equal(t, time.Minute, mr.TTL(key))

	out, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, in, out)

	mr.FastForward(2 * time.Minute)
	_, ok, err = c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok, "entry expires after the TTL")
}

func TestRedisCache_CorruptValue(t *testing.T) {
	c, mr := newMiniRedisCache(t, time.Minute)
	require.NoError(t, mr.Set("k", "not json"))

	_, ok, err := c.Get(context.Background(), "k")
	assert.False(t, ok)
	assert.ErrorContains(t, err, "decode cached report")
}

func TestRedisCache_ServerDown(t *testing.T) {
	c, mr := newMiniRedisCache(t, time.Minute)
	mr.Close()

	_, ok, err := c.Get(context.Background(), "k")
	assert.False(t, ok)
	assert.ErrorContains(t, err, "redis GET k")
	assert.ErrorContains(t, c.Set(context.Background(), "k", fullReport()), "redis SET k")
}
