package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "studyd-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func parseRFC3339(t *testing.T, value string) time.Time {
	t.Helper()
	out, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	return out
}

func TestReplaceAndListTasksKeepsOrder(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-02-09T12:00:00Z")

	tasks := []Task{
		{ID: "task-b", Text: "Review flashcards", Priority: "high", StudyTime: 90, CreatedAt: created},
		{ID: "task-a", Text: "Read chapter 4", Priority: "medium", Completed: true, CreatedAt: created},
	}
	if err := repo.ReplaceTasks(ctx, tasks); err != nil {
		t.Fatalf("replace tasks: %v", err)
	}

	got, err := repo.ListTasks(ctx)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(got) != 2 || got[0].ID != "task-b" || got[1].ID != "task-a" {
		t.Fatalf("unexpected order: %#v", got)
	}
	if got[0].StudyTime != 90 || !got[1].Completed {
		t.Fatalf("unexpected task fields: %#v", got)
	}

	// A second replace is a full overwrite.
	if err := repo.ReplaceTasks(ctx, tasks[:1]); err != nil {
		t.Fatalf("replace tasks again: %v", err)
	}
	got, err = repo.ListTasks(ctx)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(got) != 1 || got[0].ID != "task-b" {
		t.Fatalf("expected single task-b, got %#v", got)
	}
}

func TestHistoryRoundTripNewestFirst(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	entries := []HistoryEntry{
		{ID: "xp-2", Description: "Complete: essay", Amount: 50, Category: "completion", CreatedAt: parseRFC3339(t, "2026-02-09T12:05:00Z")},
		{ID: "xp-1", Description: "Pomodoro Focus", Amount: 1, Category: "focus", CreatedAt: parseRFC3339(t, "2026-02-09T12:00:00Z")},
	}
	if err := repo.ReplaceHistory(ctx, entries); err != nil {
		t.Fatalf("replace history: %v", err)
	}

	got, err := repo.ListHistory(ctx, 10)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(got) != 2 || got[0].ID != "xp-2" || got[1].ID != "xp-1" {
		t.Fatalf("expected newest first, got %#v", got)
	}

	limited, err := repo.ListHistory(ctx, 1)
	if err != nil {
		t.Fatalf("list history limited: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != "xp-2" {
		t.Fatalf("expected only newest, got %#v", limited)
	}
}

func TestSaveAndLoadValue(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	type xpSnapshot struct {
		TotalXP float64 `json:"totalXp"`
		Level   int     `json:"level"`
	}
	if err := repo.SaveValue(ctx, KeyXP, xpSnapshot{TotalXP: 42.5, Level: 3}); err != nil {
		t.Fatalf("save value: %v", err)
	}

	var loaded xpSnapshot
	ok, err := repo.LoadValue(ctx, KeyXP, &loaded)
	if err != nil {
		t.Fatalf("load value: %v", err)
	}
	if !ok || loaded.Level != 3 || loaded.TotalXP != 42.5 {
		t.Fatalf("unexpected loaded value: ok=%v %+v", ok, loaded)
	}

	// Overwrite in place.
	if err := repo.SaveValue(ctx, KeyXP, xpSnapshot{TotalXP: 0, Level: 4}); err != nil {
		t.Fatalf("overwrite value: %v", err)
	}
	ok, err = repo.LoadValue(ctx, KeyXP, &loaded)
	if err != nil || !ok || loaded.Level != 4 {
		t.Fatalf("unexpected overwritten value: ok=%v err=%v %+v", ok, err, loaded)
	}
}

func TestLoadValueAbsentKey(t *testing.T) {
	repo := setupRepo(t)

	var dest map[string]any
	ok, err := repo.LoadValue(context.Background(), "missing", &dest)
	if err != nil {
		t.Fatalf("load absent key: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false for absent key")
	}
}

func TestLoadValueMalformedJSON(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	if _, err := repo.DB().ExecContext(ctx, `INSERT INTO app_state (key, value) VALUES ('xp', '{not json')`); err != nil {
		t.Fatalf("seed malformed value: %v", err)
	}

	var dest map[string]any
	ok, err := repo.LoadValue(ctx, "xp", &dest)
	if ok {
		t.Fatal("expected ok=false for malformed value")
	}
	if !errors.Is(err, ErrMalformedValue) {
		t.Fatalf("expected ErrMalformedValue, got %v", err)
	}
}

func TestMigrateDownRemovesTables(t *testing.T) {
	repo := setupRepo(t)

	if err := MigrateDown(repo.DB()); err != nil {
		t.Fatalf("migrate down: %v", err)
	}
	if _, err := repo.ListTasks(context.Background()); err == nil {
		t.Fatal("expected error listing tasks after migrate down")
	}
}
