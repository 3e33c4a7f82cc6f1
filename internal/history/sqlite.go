package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists runs in a SQLite database file.
type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run Run) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (
			id, layers, activation, learning_rate, epochs, patience_limit,
			warm_up_epochs, epochs_run, stopped, final_loss, best_loss, started_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			layers = excluded.layers,
			activation = excluded.activation,
			learning_rate = excluded.learning_rate,
			epochs = excluded.epochs,
			patience_limit = excluded.patience_limit,
			warm_up_epochs = excluded.warm_up_epochs,
			epochs_run = excluded.epochs_run,
			stopped = excluded.stopped,
			final_loss = excluded.final_loss,
			best_loss = excluded.best_loss,
			started_at = excluded.started_at
	`, run.ID, encodeLayers(run.Layers), run.Activation, run.LearningRate, run.Epochs,
		run.PatienceLimit, run.WarmUpEpochs, run.EpochsRun, run.Stopped,
		nullableFloat(run.FinalLoss), nullableFloat(run.BestLoss), run.StartedAt.UnixNano())
	return err
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (Run, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return Run{}, false, err
	}

	row := db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, false, nil
		}
		return Run{}, false, err
	}
	return run, true, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context) ([]Run, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY started_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *SQLiteStore) SaveEpochs(ctx context.Context, runID string, epochs []Epoch) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM epochs WHERE run_id = ?`, runID); err != nil {
		return err
	}
	for _, e := range epochs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO epochs (run_id, epoch, loss, state) VALUES (?, ?, ?, ?)
		`, runID, e.Epoch, nullableFloat(e.Loss), e.State); err != nil {
			return fmt.Errorf("insert epoch %d: %w", e.Epoch, err)
		}
	}
	// Marks the run as having a history even when epochs is empty.
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO epoch_sets (run_id) VALUES (?) ON CONFLICT(run_id) DO NOTHING
	`, runID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) GetEpochs(ctx context.Context, runID string) ([]Epoch, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, false, err
	}

	var marker string
	err = db.QueryRowContext(ctx, `SELECT run_id FROM epoch_sets WHERE run_id = ?`, runID).Scan(&marker)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT epoch, loss, state FROM epochs WHERE run_id = ? ORDER BY epoch
	`, runID)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	epochs := []Epoch{}
	for rows.Next() {
		var (
			e    Epoch
			loss sql.NullFloat64
		)
		if err := rows.Scan(&e.Epoch, &loss, &e.State); err != nil {
			return nil, false, err
		}
		e.Loss = floatOrNaN(loss)
		epochs = append(epochs, e)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	return epochs, true, nil
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, ErrNotInitialized
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			layers TEXT NOT NULL,
			activation TEXT NOT NULL,
			learning_rate REAL NOT NULL,
			epochs INTEGER NOT NULL,
			patience_limit INTEGER NOT NULL,
			warm_up_epochs INTEGER NOT NULL,
			epochs_run INTEGER NOT NULL,
			stopped INTEGER NOT NULL,
			final_loss REAL,
			best_loss REAL,
			started_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS epochs (
			run_id TEXT NOT NULL,
			epoch INTEGER NOT NULL,
			loss REAL,
			state TEXT NOT NULL,
			PRIMARY KEY (run_id, epoch)
		);
		CREATE TABLE IF NOT EXISTS epoch_sets (
			run_id TEXT PRIMARY KEY
		);
	`)
	return err
}

const runColumns = `id, layers, activation, learning_rate, epochs, patience_limit,
	warm_up_epochs, epochs_run, stopped, final_loss, best_loss, started_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run       Run
		layers    string
		finalLoss sql.NullFloat64
		bestLoss  sql.NullFloat64
		startedAt int64
	)
	if err := row.Scan(&run.ID, &layers, &run.Activation, &run.LearningRate, &run.Epochs,
		&run.PatienceLimit, &run.WarmUpEpochs, &run.EpochsRun, &run.Stopped,
		&finalLoss, &bestLoss, &startedAt); err != nil {
		return Run{}, err
	}

	decoded, err := decodeLayers(layers)
	if err != nil {
		return Run{}, fmt.Errorf("decode layers for run %s: %w", run.ID, err)
	}
	run.Layers = decoded
	run.FinalLoss = floatOrNaN(finalLoss)
	run.BestLoss = floatOrNaN(bestLoss)
	run.StartedAt = time.Unix(0, startedAt).UTC()
	return run, nil
}

func encodeLayers(layers []int) string {
	parts := make([]string, len(layers))
	for i, width := range layers {
		parts[i] = strconv.Itoa(width)
	}
	return strings.Join(parts, ",")
}

func decodeLayers(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	layers := make([]int, len(parts))
	for i, p := range parts {
		width, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		layers[i] = width
	}
	return layers, nil
}

// SQLite has no NaN: it is stored as NULL and read back as NaN.
func nullableFloat(v float64) sql.NullFloat64 {
	if math.IsNaN(v) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func floatOrNaN(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}
