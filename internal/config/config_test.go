package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignalScope/internal/analysis"
	"SignalScope/internal/calculator"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "yahoo", cfg.DataSource.Provider)
	assert.Equal(t, "https://query1.finance.yahoo.com", cfg.DataSource.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.DataSource.Timeout)
	assert.Equal(t, 14, cfg.Analysis.RSIPeriod)
	assert.Equal(t, []int{20, 50}, cfg.Analysis.SMAPeriods)
	assert.Equal(t, "6mo", cfg.Watchlist.Timeframe)
	assert.Equal(t, 15*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, ":8080", cfg.API.Addr)
	require.NoError(t, cfg.Validate())
	assert.False(t, cfg.TelegramEnabled())
	assert.False(t, cfg.EmailEnabled())
}

func TestLoad_YAMLAndEnv(t *testing.T) {
	path := writeConfig(t, `
data_source:
  provider: rest
  base_url: http://bars.local
  timeout: 3s
analysis:
  rsi_period: 9
  rsi_convention: dashboard
  indicators:
    vwap: false
watchlist:
  symbols: [aapl]
  timeframe: 1y
cache:
  ttl: 2m
`)
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("TELEGRAM_CHAT_ID", "42")
	t.Setenv("WATCHLIST", "msft, spy ,")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "rest", cfg.DataSource.Provider)
	assert.Equal(t, 3*time.Second, cfg.DataSource.Timeout)
	assert.Equal(t, []string{"MSFT", "SPY"}, cfg.Watchlist.Symbols)
	assert.Equal(t, "1y", cfg.Watchlist.Timeframe)
	assert.Equal(t, 2*time.Minute, cfg.Cache.TTL)
	assert.True(t, cfg.TelegramEnabled())

	p, err := cfg.AnalysisParams()
	require.NoError(t, err)
	assert.Equal(t, 9, p.RSIPeriod)
	assert.Equal(t, 20, p.BollingerPeriod)
	assert.Equal(t, calculator.RSIDashboard, p.RSIConvention)
	assert.False(t, p.Toggles.VWAP)
	assert.True(t, p.Toggles.OBV)
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "data_source: [unclosed"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown provider", "data_source:\n  provider: carrier-pigeon\n"},
		{"rest without url", "data_source:\n  provider: rest\n"},
		{"bad timeframe", "watchlist:\n  timeframe: 2w\n"},
		{"bad log level", "log:\n  level: chatty\n"},
		{"bot token without chat", "telegram:\n  bot_token: abc\n"},
		{"smtp without recipients", "email:\n  smtp_server: smtp.local\n  from: bot@local\n"},
		{"bad recipient", "email:\n  smtp_server: smtp.local\n  from: bot@local\n  to: [nobody]\n"},
		{"unknown indicator", "analysis:\n  indicators:\n    ichimoku: true\n"},
		{"bad convention", "analysis:\n  rsi_convention: wilder\n"},
		{"negative period", "analysis:\n  cci_period: -3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.body))
			require.NoError(t, err)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestAnalysisParams_UnknownIndicator(t *testing.T) {
	cfg, err := Load(writeConfig(t, "analysis:\n  indicators:\n    ichimoku: true\n"))
	require.NoError(t, err)
	_, err = cfg.AnalysisParams()
	assert.ErrorIs(t, err, analysis.ErrUnknownIndicator)
}
