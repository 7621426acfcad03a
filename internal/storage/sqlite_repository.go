package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// ReplaceTasks writes the full ordered task list in one transaction.
// Position reflects list order, topmost first.
func (r *SQLiteRepository) ReplaceTasks(ctx context.Context, tasks []Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return err
	}
	for i, task := range tasks {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO tasks (id, text, completed, study_time, priority, position, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			task.ID, task.Text, boolInt(task.Completed), task.StudyTime, task.Priority, i, mustTime(task.CreatedAt),
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *SQLiteRepository) ListTasks(ctx context.Context) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, text, completed, study_time, priority, position, created_at
		FROM tasks ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) ReplaceHistory(ctx context.Context, entries []HistoryEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM xp_history`); err != nil {
		return err
	}
	for _, entry := range entries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO xp_history (id, description, amount, category, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			entry.ID, entry.Description, entry.Amount, entry.Category, mustTime(entry.CreatedAt),
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListHistory returns entries newest-first.
func (r *SQLiteRepository) ListHistory(ctx context.Context, limit int) ([]HistoryEntry, error) {
	query := `SELECT id, description, amount, category, created_at FROM xp_history ORDER BY created_at DESC, id DESC`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]HistoryEntry, 0)
	for rows.Next() {
		entry, scanErr := scanHistory(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) SaveValue(ctx context.Context, key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO app_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(encoded),
	)
	return err
}

func (r *SQLiteRepository) LoadValue(ctx context.Context, key string, dest any) (bool, error) {
	var raw string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM app_state WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrMalformedValue, key, err)
	}
	return true, nil
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (Task, error) {
	var out Task
	var completed int
	var created string
	if err := s.Scan(&out.ID, &out.Text, &completed, &out.StudyTime, &out.Priority, &out.Position, &created); err != nil {
		return Task{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Task{}, err
	}
	out.Completed = completed == 1
	out.CreatedAt = createdAt
	return out, nil
}

func scanHistory(s scanner) (HistoryEntry, error) {
	var out HistoryEntry
	var created string
	if err := s.Scan(&out.ID, &out.Description, &out.Amount, &out.Category, &created); err != nil {
		return HistoryEntry{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return HistoryEntry{}, err
	}
	out.CreatedAt = createdAt
	return out, nil
}
