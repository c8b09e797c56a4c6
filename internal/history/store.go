// internal/history/store.go
//
// Session history persisted to SQLite.
// Responsibilities:
//   - Migrate: create the sessions schema, tracked in _migrations.
//   - Record: insert one finished session, minting its id.
//   - Recent: newest sessions first, for the post-game recap.
//   - BestByMode: the stored personal best per mode.

package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session is one finished game, from mode select to game over.
type Session struct {
	ID         string
	PlayedAt   time.Time
	Mode       string
	Muted      bool
	Score      int
	Level      int
	Rounds     int
	Failures   int
	DurationMs int64
	Seed       int64
	DailyKey   string // YYYY-MM-DD when the seed came from the daily deal, else ""
}

// migrations run in order and are recorded in _migrations, so a store
// created by an older build upgrades in place.
var migrations = []struct {
	name string
	stmt string
}{
	{
		name: "0001_sessions",
		stmt: `CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			played_at DATETIME NOT NULL,
			mode TEXT NOT NULL,
			muted INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL,
			rounds INTEGER NOT NULL,
			failures INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			daily_key TEXT NOT NULL DEFAULT ''
		)`,
	},
	{
		name: "0002_sessions_mode_score_idx",
		stmt: `CREATE INDEX IF NOT EXISTS idx_sessions_mode_score ON sessions(mode, score DESC)`,
	},
	{
		name: "0003_sessions_played_at_idx",
		stmt: `CREATE INDEX IF NOT EXISTS idx_sessions_played_at ON sessions(played_at DESC)`,
	},
}

// Store reads and writes session rows.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Migrate applies any pending migrations. Safe to run on every boot.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	for _, m := range migrations {
		// Skip if already applied
		var done int
		err := s.db.QueryRowContext(ctx, `SELECT 1 FROM _migrations WHERE name=?`, m.name).Scan(&done)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("query _migrations: %w", err)
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(m.stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", m.name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", m.name, err)
		}
	}
	return nil
}

// Record inserts one finished session. A blank ID gets minted and a
// zero PlayedAt is stamped with the current UTC time.
func (s *Store) Record(ctx context.Context, sess *Session) error {
	if sess.ID == "" {
		sess.ID = uuid.New().String()
	}
	if sess.PlayedAt.IsZero() {
		sess.PlayedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO sessions
            (id, played_at, mode, muted, score, level, rounds, failures, duration_ms, seed, daily_key)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.PlayedAt, sess.Mode, sess.Muted, sess.Score, sess.Level,
		sess.Rounds, sess.Failures, sess.DurationMs, sess.Seed, sess.DailyKey,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// Recent returns the newest sessions first. Default limit is 10.
func (s *Store) Recent(ctx context.Context, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, played_at, mode, muted, score, level, rounds, failures, duration_ms, seed, daily_key
        FROM sessions
        ORDER BY played_at DESC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Session, 0, limit)
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.PlayedAt, &sess.Mode, &sess.Muted,
			&sess.Score, &sess.Level, &sess.Rounds, &sess.Failures,
			&sess.DurationMs, &sess.Seed, &sess.DailyKey); err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

// BestByMode returns the highest recorded score per mode.
func (s *Store) BestByMode(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT mode, MAX(score)
        FROM sessions
        GROUP BY mode`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var mode string
		var best int
		if err := rows.Scan(&mode, &best); err != nil {
			return nil, err
		}
		out[mode] = best
	}
	return out, rows.Err()
}
