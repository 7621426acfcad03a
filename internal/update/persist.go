package update

import (
	"context"

	"github.com/sandeepkv93/studyd/internal/storage"
)

type xpSnapshot struct {
	TotalXP float64 `json:"totalXp"`
	Level   int     `json:"level"`
}

type pomodoroSnapshot struct {
	SessionsCompleted int `json:"sessionsCompleted"`
	Crystals          int `json:"crystals"`
}

// persistSnapshot writes the settled state. Best effort, single
// attempt: a failure lands on the status bar and the app keeps running.
func (m *Model) persistSnapshot() {
	if m.repo == nil {
		return
	}
	ctx := context.Background()

	tasks := make([]storage.Task, 0, len(m.Tasks))
	for i, t := range m.Tasks {
		tasks = append(tasks, storage.Task{
			ID:        t.ID,
			Text:      t.Text,
			Completed: t.Completed,
			StudyTime: t.StudyTime,
			Priority:  string(t.Priority),
			Position:  i,
			CreatedAt: t.CreatedAt,
		})
	}

	entries := m.History.Entries()
	history := make([]storage.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		history = append(history, storage.HistoryEntry{
			ID:          e.ID,
			Description: e.Description,
			Amount:      e.Amount,
			Category:    string(e.Category),
			CreatedAt:   e.At,
		})
	}

	err := firstError(
		m.repo.ReplaceTasks(ctx, tasks),
		m.repo.ReplaceHistory(ctx, history),
		m.repo.SaveValue(ctx, storage.KeyXP, xpSnapshot{TotalXP: m.XP.TotalXP, Level: m.XP.Level}),
		m.repo.SaveValue(ctx, storage.KeyPomodoro, pomodoroSnapshot{
			SessionsCompleted: m.Pomodoro.SessionsCompleted,
			Crystals:          m.Pomodoro.Crystals,
		}),
		m.repo.SaveValue(ctx, storage.KeySettings, m.Settings),
	)
	if err != nil {
		m.Status = StatusBar{Text: "save failed: " + err.Error(), IsError: true}
	}
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
