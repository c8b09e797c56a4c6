package history

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s := New(db)
	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return s
}

func TestMigrateIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestRecordMintsIDAndPlayedAt(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sess := &Session{Mode: "classic", Score: 7, Level: 8, Rounds: 7, DurationMs: 42000, Seed: 12345}
	if err := s.Record(ctx, sess); err != nil {
		t.Fatalf("record: %v", err)
	}
	if sess.ID == "" {
		t.Error("record left the id blank")
	}
	if sess.PlayedAt.IsZero() {
		t.Error("record left played_at zero")
	}

	got, err := s.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("recent returned %d rows, want 1", len(got))
	}
	if got[0].ID != sess.ID || got[0].Mode != "classic" || got[0].Score != 7 || got[0].Seed != 12345 {
		t.Errorf("round trip mismatch: %+v", got[0])
	}
}

func TestRecentNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		sess := &Session{
			PlayedAt: base.Add(time.Duration(i) * time.Minute),
			Mode:     "classic",
			Score:    i,
			Level:    i + 1,
			Rounds:   i,
		}
		if err := s.Record(ctx, sess); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	got, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("recent returned %d rows, want 2", len(got))
	}
	if got[0].Score != 2 || got[1].Score != 1 {
		t.Errorf("order wrong: scores %d, %d, want 2, 1", got[0].Score, got[1].Score)
	}
}

func TestBestByMode(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rows := []struct {
		mode  string
		score int
	}{
		{"classic", 5},
		{"classic", 9},
		{"classic", 2},
		{"speed", 3},
	}
	for _, r := range rows {
		if err := s.Record(ctx, &Session{Mode: r.mode, Score: r.score}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	best, err := s.BestByMode(ctx)
	if err != nil {
		t.Fatalf("best by mode: %v", err)
	}
	if best["classic"] != 9 {
		t.Errorf("classic best = %d, want 9", best["classic"])
	}
	if best["speed"] != 3 {
		t.Errorf("speed best = %d, want 3", best["speed"])
	}
	if len(best) != 2 {
		t.Errorf("best has %d modes, want 2", len(best))
	}
}
