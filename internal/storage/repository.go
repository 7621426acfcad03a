package storage

import (
	"context"
	"errors"
)

// ErrMalformedValue marks a stored snapshot that no longer decodes;
// callers fall back to defaults instead of failing.
var ErrMalformedValue = errors.New("storage: malformed stored value")

// Repository is the persistence port for the coordinator. Tasks and the
// history log are written as whole snapshots after state settles;
// structured singletons (XP, pomodoro counters, settings) live in a
// JSON key/value table.
type Repository interface {
	ReplaceTasks(ctx context.Context, tasks []Task) error
	ListTasks(ctx context.Context) ([]Task, error)

	ReplaceHistory(ctx context.Context, entries []HistoryEntry) error
	ListHistory(ctx context.Context, limit int) ([]HistoryEntry, error)

	SaveValue(ctx context.Context, key string, value any) error
	// LoadValue reports false when the key is absent. A stored value that
	// fails to decode returns false together with ErrMalformedValue so
	// callers can fall back to defaults.
	LoadValue(ctx context.Context, key string, dest any) (bool, error)
}
