// Package storage persists replay recordings in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/zombiebird/internal/config"
	"github.com/vovakirdan/zombiebird/internal/core"
	"github.com/vovakirdan/zombiebird/internal/replay"
)

// ErrReplayNotFound is returned when no recording has the requested ID.
var ErrReplayNotFound = errors.New("storage: replay not found")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ReplaySummary is one row of the recordings list.
type ReplaySummary struct {
	ID         int64
	GameID     string
	Seed       int64
	TickRate   int
	TotalTicks int
	Runs       int
	BestScore  int
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS replays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			tick_rate INTEGER NOT NULL,
			total_ticks INTEGER NOT NULL,
			config TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS replay_inputs (
			replay_id INTEGER NOT NULL REFERENCES replays(id),
			tick INTEGER NOT NULL,
			action INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_replay_inputs_replay ON replay_inputs(replay_id, tick);

		CREATE TABLE IF NOT EXISTS replay_runs (
			replay_id INTEGER NOT NULL REFERENCES replays(id),
			run_index INTEGER NOT NULL,
			score INTEGER NOT NULL,
			end_tick INTEGER NOT NULL,
			PRIMARY KEY (replay_id, run_index)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveReplay stores a recording with its inputs and runs in one transaction.
// Returns the ID of the inserted recording.
func (s *Store) SaveReplay(r replay.Replay) (int64, error) {
	cfg, err := yaml.Marshal(r.Config)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode config: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	res, err := tx.Exec(
		`INSERT INTO replays (game_id, seed, tick_rate, total_ticks, config, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Seed, r.TickRate, r.TotalTicks, string(cfg), createdAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	insInput, err := tx.Prepare("INSERT INTO replay_inputs (replay_id, tick, action) VALUES (?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare inputs: %w", err)
	}
	defer insInput.Close()

	for _, in := range r.Inputs {
		if _, err := insInput.Exec(id, in.Tick, int(in.Action)); err != nil {
			return 0, fmt.Errorf("storage: cannot save input: %w", err)
		}
	}

	for i, run := range r.Runs {
		if _, err := tx.Exec(
			"INSERT INTO replay_runs (replay_id, run_index, score, end_tick) VALUES (?, ?, ?, ?)",
			id, i, run.Score, run.EndTick,
		); err != nil {
			return 0, fmt.Errorf("storage: cannot save run: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit replay: %w", err)
	}
	return id, nil
}

// ListReplays returns the most recent recordings, newest first.
func (s *Store) ListReplays(limit int) ([]ReplaySummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT r.id, r.game_id, r.seed, r.tick_rate, r.total_ticks,
		        COUNT(rr.run_index), COALESCE(MAX(rr.score), 0), r.created_at
		 FROM replays r
		 LEFT JOIN replay_runs rr ON rr.replay_id = r.id
		 GROUP BY r.id
		 ORDER BY r.created_at DESC, r.id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var entries []ReplaySummary
	for rows.Next() {
		var e ReplaySummary
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Seed, &e.TickRate, &e.TotalTicks,
			&e.Runs, &e.BestScore, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// LoadReplay reads a full recording.
func (s *Store) LoadReplay(id int64) (replay.Replay, error) {
	r := replay.Replay{ID: id}
	var cfgText string
	var createdAt any

	err := s.db.QueryRow(
		`SELECT game_id, seed, tick_rate, total_ticks, config, created_at
		 FROM replays WHERE id = ?`,
		id,
	).Scan(&r.GameID, &r.Seed, &r.TickRate, &r.TotalTicks, &cfgText, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return replay.Replay{}, fmt.Errorf("%w: %d", ErrReplayNotFound, id)
	}
	if err != nil {
		return replay.Replay{}, fmt.Errorf("storage: cannot query replay: %w", err)
	}
	r.CreatedAt = parseTime(createdAt)

	r.Config = config.DefaultFlappyConfig()
	if err := yaml.Unmarshal([]byte(cfgText), &r.Config); err != nil {
		return replay.Replay{}, fmt.Errorf("storage: cannot decode config of replay %d: %w", id, err)
	}

	if r.Inputs, err = s.loadInputs(id); err != nil {
		return replay.Replay{}, err
	}
	if r.Runs, err = s.loadRuns(id); err != nil {
		return replay.Replay{}, err
	}
	return r, nil
}

func (s *Store) loadInputs(id int64) ([]replay.Input, error) {
	rows, err := s.db.Query(
		"SELECT tick, action FROM replay_inputs WHERE replay_id = ? ORDER BY tick, action",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query inputs: %w", err)
	}
	defer rows.Close()

	var inputs []replay.Input
	for rows.Next() {
		var in replay.Input
		var action int
		if err := rows.Scan(&in.Tick, &action); err != nil {
			return nil, fmt.Errorf("storage: cannot scan input: %w", err)
		}
		in.Action = core.Action(action)
		inputs = append(inputs, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return inputs, nil
}

func (s *Store) loadRuns(id int64) ([]replay.Run, error) {
	rows, err := s.db.Query(
		"SELECT score, end_tick FROM replay_runs WHERE replay_id = ? ORDER BY run_index",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []replay.Run
	for rows.Next() {
		var run replay.Run
		if err := rows.Scan(&run.Score, &run.EndTick); err != nil {
			return nil, fmt.Errorf("storage: cannot scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// DeleteReplay removes a recording with its inputs and runs.
func (s *Store) DeleteReplay(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	for _, q := range []string{
		"DELETE FROM replay_inputs WHERE replay_id = ?",
		"DELETE FROM replay_runs WHERE replay_id = ?",
	} {
		if _, err := tx.Exec(q, id); err != nil {
			return fmt.Errorf("storage: cannot delete replay: %w", err)
		}
	}

	res, err := tx.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	} else if n == 0 {
		return fmt.Errorf("%w: %d", ErrReplayNotFound, id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

const timeLayout = "2006-01-02 15:04:05"

// parseTime handles the driver returning either time.Time or text for DATETIME columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
