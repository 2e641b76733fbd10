// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/teepaa516/italian-verbit/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for boxes and round history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS boxes (
			card_key TEXT PRIMARY KEY,
			box INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS rounds (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			tenses TEXT NOT NULL,
			mode TEXT NOT NULL,
			correct INTEGER NOT NULL,
			total INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_ended_at ON rounds(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Load returns every stored box.
func (s *Store) Load(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT card_key, box FROM boxes`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	boxes := map[string]int{}
	for rows.Next() {
		var key string
		var box int
		if err := rows.Scan(&key, &box); err != nil {
			return nil, err
		}
		boxes[key] = box
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return boxes, nil
}

// Save replaces all stored boxes in a single transaction.
func (s *Store) Save(ctx context.Context, boxes map[string]int) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM boxes`); err != nil {
		return err
	}
	if len(boxes) > 0 {
		stmt, perr := tx.PrepareContext(ctx, `INSERT INTO boxes (card_key, box) VALUES (?, ?)`)
		if perr != nil {
			err = perr
			return err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for key, box := range boxes {
			if _, err = stmt.ExecContext(ctx, key, box); err != nil {
				return err
			}
		}
	}
	err = tx.Commit()
	return err
}

// InsertRound stores a finished round.
func (s *Store) InsertRound(ctx context.Context, round model.RoundResult) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO rounds (id, started_at, ended_at, tenses, mode, correct, total)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		round.ID,
		round.StartedAt.Format(time.RFC3339Nano),
		round.EndedAt.Format(time.RFC3339Nano),
		strings.Join(round.Tenses, ","),
		round.Mode,
		round.Correct,
		round.Total,
	)
	return err
}

// ListRounds returns finished rounds, oldest first. last > 0 keeps only the
// most recent rounds.
func (s *Store) ListRounds(ctx context.Context, last int) ([]model.RoundResult, error) {
	query := `SELECT id, started_at, ended_at, tenses, mode, correct, total FROM (
		SELECT * FROM rounds ORDER BY ended_at DESC LIMIT ?
	) ORDER BY ended_at ASC`
	limit := last
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var rounds []model.RoundResult
	for rows.Next() {
		var r model.RoundResult
		var startedAt, endedAt, tenses string
		if err := rows.Scan(&r.ID, &startedAt, &endedAt, &tenses, &r.Mode, &r.Correct, &r.Total); err != nil {
			return nil, err
		}
		if r.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if r.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		if tenses != "" {
			r.Tenses = strings.Split(tenses, ",")
		}
		rounds = append(rounds, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rounds, nil
}
