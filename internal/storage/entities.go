package storage

import "time"

// Task is the persisted shape of a study task. Runtime-only flags
// (active/editing) are intentionally absent.
type Task struct {
	ID        string
	Text      string
	Completed bool
	StudyTime int
	Priority  string
	Position  int
	CreatedAt time.Time
}

// HistoryEntry is one persisted XP award.
type HistoryEntry struct {
	ID          string
	Description string
	Amount      int
	Category    string
	CreatedAt   time.Time
}

// Snapshot keys in the app_state table. Values are JSON-encoded.
const (
	KeyXP       = "xp"
	KeyPomodoro = "pomodoro"
	KeySettings = "settings"
)
