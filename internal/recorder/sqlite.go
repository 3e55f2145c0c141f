package recorder

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"SignalScope/internal/logger"
	"SignalScope/internal/model"
)

// MaxHistory caps the rows returned by History.
const MaxHistory = 500

// SQLiteRecorder persists analysis runs to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets the API read history while the scanner writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info("sqlite recorder opened", zap.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_runs (
			id           TEXT PRIMARY KEY,
			symbol       TEXT NOT NULL,
			timeframe    TEXT,
			source       TEXT,
			generated_at INTEGER NOT NULL,
			bars         INTEGER,
			last_close   REAL,
			rating       TEXT,
			score        REAL,
			color        TEXT,
			buy_count    INTEGER,
			sell_count   INTEGER,
			hold_count   INTEGER,
			total_count  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_symbol_ts ON analysis_runs(symbol, generated_at)`,

		`CREATE TABLE IF NOT EXISTS signals (
			run_id    TEXT NOT NULL REFERENCES analysis_runs(id) ON DELETE CASCADE,
			position  INTEGER NOT NULL,
			indicator TEXT,
			value     REAL,
			reading   TEXT,
			action    TEXT,
			strength  REAL,
			PRIMARY KEY (run_id, position)
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) Record(ctx context.Context, rep *model.Report) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	generated := rep.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	rt := rep.Rating
	_, err = tx.ExecContext(ctx, `INSERT INTO analysis_runs
		(id, symbol, timeframe, source, generated_at, bars, last_close,
		 rating, score, color, buy_count, sell_count, hold_count, total_count)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		id, strings.ToUpper(rep.Symbol), rep.Timeframe, rep.Source, generated.UnixMilli(),
		rep.Bars, rep.LastClose,
		string(rt.Label), rt.Score, rt.Color, rt.Buy, rt.Sell, rt.Hold, rt.Total,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for i, s := range rep.Signals {
		_, err = tx.ExecContext(ctx, `INSERT INTO signals
			(run_id, position, indicator, value, reading, action, strength)
			VALUES (?,?,?,?,?,?,?)`,
			id, i, string(s.Kind), s.Value, string(s.Reading), string(s.Action), s.Strength,
		)
		if err != nil {
			return "", fmt.Errorf("insert signal %s: %w", s.Kind, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

func (r *SQLiteRecorder) History(ctx context.Context, symbol string, limit int) ([]Run, error) {
	if limit <= 0 || limit > MaxHistory {
		limit = MaxHistory
	}

	rows, err := r.db.QueryContext(ctx, `SELECT
		id, symbol, timeframe, source, generated_at, bars, last_close,
		rating, score, color, buy_count, sell_count, hold_count, total_count
		FROM analysis_runs WHERE symbol = ?
		ORDER BY generated_at DESC, rowid DESC LIMIT ?`,
		strings.ToUpper(symbol), limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}

	var (
		runs  []Run
		index = map[string]int{}
	)
	for rows.Next() {
		var (
			run    Run
			millis int64
			label  string
		)
		err := rows.Scan(&run.ID, &run.Symbol, &run.Timeframe, &run.Source, &millis,
			&run.Bars, &run.LastClose, &label, &run.Rating.Score, &run.Rating.Color,
			&run.Rating.Buy, &run.Rating.Sell, &run.Rating.Hold, &run.Rating.Total)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.GeneratedAt = time.UnixMilli(millis).UTC()
		run.Rating.Label = model.RatingLabel(label)
		index[run.ID] = len(runs)
		runs = append(runs, run)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return runs, nil
	}

	if err := r.loadSignals(ctx, runs, index); err != nil {
		return nil, err
	}
	return runs, nil
}

func (r *SQLiteRecorder) loadSignals(ctx context.Context, runs []Run, index map[string]int) error {
	ids := make([]any, len(runs))
	for i, run := range runs {
		ids[i] = run.ID
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")

	rows, err := r.db.QueryContext(ctx, `SELECT run_id, indicator, value, reading, action, strength
		FROM signals WHERE run_id IN (`+placeholders+`) ORDER BY run_id, position`, ids...)
	if err != nil {
		return fmt.Errorf("query signals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			runID                 string
			kind, reading, action string
			s                     model.Signal
		)
		if err := rows.Scan(&runID, &kind, &s.Value, &reading, &action, &s.Strength); err != nil {
			return fmt.Errorf("scan signal: %w", err)
		}
		s.Kind = model.Kind(kind)
		s.Reading = model.Reading(reading)
		s.Action = model.Action(action)
		i := index[runID]
		runs[i].Signals = append(runs[i].Signals, s)
	}
	return rows.Err()
}

// Ping checks that the database is reachable.
func (r *SQLiteRecorder) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteRecorder) Close() error {
	logger.Info("closing sqlite recorder")
	return r.db.Close()
}
