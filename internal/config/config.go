package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"SignalScope/internal/analysis"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Provider          string        `yaml:"provider" validate:"oneof=yahoo rest mock"`
		BaseURL           string        `yaml:"base_url" validate:"required_if=Provider rest"`
		APIKey            string        `yaml:"api_key"`
		Proxy             string        `yaml:"proxy" validate:"omitempty,url"`
		RequestsPerSecond float64       `yaml:"requests_per_second" validate:"gt=0"`
		MockFallback      bool          `yaml:"mock_fallback"`
		Timeout           time.Duration `yaml:"timeout" validate:"gt=0"`
	} `yaml:"data_source"`
	Analysis struct {
		RSIPeriod           int             `yaml:"rsi_period"`
		StochasticPeriod    int             `yaml:"stochastic_period"`
		ADXPeriod           int             `yaml:"adx_period"`
		BollingerPeriod     int             `yaml:"bollinger_period"`
		BollingerMultiplier float64         `yaml:"bollinger_multiplier"`
		CCIPeriod           int             `yaml:"cci_period"`
		SMAPeriods          []int           `yaml:"sma_periods"`
		EMAPeriods          []int           `yaml:"ema_periods"`
		RSIConvention       string          `yaml:"rsi_convention" validate:"omitempty,oneof=bounded dashboard"`
		Indicators          map[string]bool `yaml:"indicators"`
	} `yaml:"analysis"`
	Watchlist struct {
		Symbols   []string `yaml:"symbols" validate:"dive,required"`
		Timeframe string   `yaml:"timeframe" validate:"oneof=1d 5d 1mo 3mo 6mo 1y"`
	} `yaml:"watchlist"`
	Schedule struct {
		ScanCron string `yaml:"scan_cron" validate:"required"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id" validate:"required_with=BotToken"`
	} `yaml:"telegram"`
	Email struct {
		SMTPServer string   `yaml:"smtp_server"`
		SMTPPort   int      `yaml:"smtp_port" validate:"omitempty,min=1,max=65535"`
		Username   string   `yaml:"username"`
		Password   string   `yaml:"password"`
		From       string   `yaml:"from" validate:"required_with=SMTPServer"`
		To         []string `yaml:"to" validate:"required_with=SMTPServer,dive,email"`
	} `yaml:"email"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Cache struct {
		RedisAddr string        `yaml:"redis_addr"`
		Password  string        `yaml:"password"`
		DB        int           `yaml:"db" validate:"min=0"`
		TTL       time.Duration `yaml:"ttl" validate:"gte=0"`
	} `yaml:"cache"`
	API struct {
		Addr      string  `yaml:"addr"`
		RateLimit float64 `yaml:"rate_limit" validate:"gte=0"`
		Burst     int     `yaml:"burst" validate:"gte=0"`
	} `yaml:"api"`
	Log struct {
		Level string `yaml:"level" validate:"oneof=debug info warn error"`
		File  string `yaml:"file"`
	} `yaml:"log"`
	StateFile string `yaml:"state_file"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file yields an all-default config.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString("DATA_PROVIDER", &cfg.DataSource.Provider)
	setString("DATA_BASE_URL", &cfg.DataSource.BaseURL)
	setString("DATA_API_KEY", &cfg.DataSource.APIKey)
	setString("HTTPS_PROXY", &cfg.DataSource.Proxy)
	setString("TELEGRAM_BOT_TOKEN", &cfg.Telegram.BotToken)
	setString("TELEGRAM_CHAT_ID", &cfg.Telegram.ChatID)
	setString("SMTP_SERVER", &cfg.Email.SMTPServer)
	setString("SMTP_USERNAME", &cfg.Email.Username)
	setString("SMTP_PASSWORD", &cfg.Email.Password)
	setString("SCAN_CRON", &cfg.Schedule.ScanCron)
	setString("SQLITE_PATH", &cfg.Database.SQLitePath)
	setString("REDIS_ADDR", &cfg.Cache.RedisAddr)
	setString("REDIS_PASSWORD", &cfg.Cache.Password)
	setString("API_ADDR", &cfg.API.Addr)
	setString("LOG_LEVEL", &cfg.Log.Level)
	setString("LOG_FILE", &cfg.Log.File)

	if v := os.Getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Email.SMTPPort = port
		}
	}
	if v := os.Getenv("WATCHLIST"); v != "" {
		var symbols []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				symbols = append(symbols, strings.ToUpper(s))
			}
		}
		cfg.Watchlist.Symbols = symbols
	}
}

func applyDefaults(cfg *Config) {
	ds := &cfg.DataSource
	if ds.Provider == "" {
		ds.Provider = "yahoo"
	}
	if ds.BaseURL == "" && ds.Provider == "yahoo" {
		ds.BaseURL = "https://query1.finance.yahoo.com"
	}
	if ds.RequestsPerSecond == 0 {
		ds.RequestsPerSecond = 2
	}
	if ds.Timeout == 0 {
		ds.Timeout = 15 * time.Second
	}

	def := analysis.DefaultParams()
	a := &cfg.Analysis
	if a.RSIPeriod == 0 {
		a.RSIPeriod = def.RSIPeriod
	}
	if a.StochasticPeriod == 0 {
		a.StochasticPeriod = def.StochasticPeriod
	}
	if a.ADXPeriod == 0 {
		a.ADXPeriod = def.ADXPeriod
	}
	if a.BollingerPeriod == 0 {
		a.BollingerPeriod = def.BollingerPeriod
	}
	if a.BollingerMultiplier == 0 {
		a.BollingerMultiplier = def.BollingerMultiplier
	}
	if a.CCIPeriod == 0 {
		a.CCIPeriod = def.CCIPeriod
	}
	if len(a.SMAPeriods) == 0 {
		a.SMAPeriods = def.SMAPeriods
	}
	if len(a.EMAPeriods) == 0 {
		a.EMAPeriods = def.EMAPeriods
	}
	if a.RSIConvention == "" {
		a.RSIConvention = "bounded"
	}

	if cfg.Watchlist.Timeframe == "" {
		cfg.Watchlist.Timeframe = "6mo"
	}
	if cfg.Schedule.ScanCron == "" {
		cfg.Schedule.ScanCron = "0 30 22 * * 1-5"
	}
	if cfg.Email.SMTPPort == 0 && cfg.Email.SMTPServer != "" {
		cfg.Email.SMTPPort = 587
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/signalscope.db"
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 15 * time.Minute
	}
	if cfg.API.Addr == "" {
		cfg.API.Addr = ":8080"
	}
	if cfg.API.RateLimit == 0 {
		cfg.API.RateLimit = 5
	}
	if cfg.API.Burst == 0 {
		cfg.API.Burst = 10
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.StateFile == "" {
		cfg.StateFile = "data/watch_state.json"
	}
}

// Validate checks struct tags and that the analysis section converts to
// valid engine params.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	if _, err := c.AnalysisParams(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}

// AnalysisParams converts the analysis section into engine params.
func (c *Config) AnalysisParams() (analysis.Params, error) {
	a := c.Analysis
	toggles, err := analysis.NewToggles(a.Indicators)
	if err != nil {
		return analysis.Params{}, err
	}
	conv, err := analysis.ParseRSIConvention(a.RSIConvention)
	if err != nil {
		return analysis.Params{}, err
	}
	p := analysis.Params{
		RSIPeriod:           a.RSIPeriod,
		StochasticPeriod:    a.StochasticPeriod,
		ADXPeriod:           a.ADXPeriod,
		BollingerPeriod:     a.BollingerPeriod,
		BollingerMultiplier: a.BollingerMultiplier,
		CCIPeriod:           a.CCIPeriod,
		SMAPeriods:          a.SMAPeriods,
		EMAPeriods:          a.EMAPeriods,
		RSIConvention:       conv,
		Toggles:             toggles,
	}
	if err := p.Validate(); err != nil {
		return analysis.Params{}, err
	}
	return p, nil
}

// TelegramEnabled reports whether bot credentials are configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// EmailEnabled reports whether an SMTP server is configured.
func (c *Config) EmailEnabled() bool {
	return c.Email.SMTPServer != ""
}
