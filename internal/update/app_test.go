package update

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/studyd/internal/model"
)

func pressKey(t *testing.T, m Model, key string) Model {
	t.Helper()
	var msg tea.Msg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = pressKey(t, m, string(r))
	}
	return m
}

func seedTask(id, text string) model.Task {
	return model.Task{
		ID:        id,
		Text:      text,
		Priority:  model.PriorityMedium,
		CreatedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestNewModelDefaults(t *testing.T) {
	m := NewModel()
	if m.CurrentView != ViewTasks {
		t.Fatalf("expected default view %q, got %q", ViewTasks, m.CurrentView)
	}
	if m.XP.Level != 1 || m.XP.TotalXP != 0 {
		t.Fatalf("expected fresh ledger, got %+v", m.XP)
	}
	if m.Settings.WorkDuration != 25 || m.Settings.SessionsBeforeLongBreak != 4 {
		t.Fatalf("unexpected default settings: %+v", m.Settings)
	}
	if m.Pomodoro.TimeLeft != 25*60 || m.Pomodoro.IsActive {
		t.Fatalf("unexpected pomodoro state: %+v", m.Pomodoro)
	}
	if m.Keys.Quit != "q" {
		t.Fatalf("expected quit key q, got %q", m.Keys.Quit)
	}
}

func TestUpdateKeySwitchesView(t *testing.T) {
	m := NewModel()
	m = pressKey(t, m, "2")
	if m.CurrentView != ViewPomodoro {
		t.Fatalf("expected pomodoro view, got %q", m.CurrentView)
	}
	m = pressKey(t, m, "3")
	if m.CurrentView != ViewXP {
		t.Fatalf("expected xp view, got %q", m.CurrentView)
	}
	m = pressKey(t, m, "1")
	if m.CurrentView != ViewTasks {
		t.Fatalf("expected tasks view, got %q", m.CurrentView)
	}
}

func TestUpdateHelpToggle(t *testing.T) {
	m := NewModel()
	m = pressKey(t, m, "?")
	if !m.HelpVisible {
		t.Fatal("expected help visible after toggle")
	}
	m = pressKey(t, m, "?")
	if m.HelpVisible {
		t.Fatal("expected help hidden after second toggle")
	}
}

func TestUpdateQuitKey(t *testing.T) {
	m := NewModel()
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	next := updated.(Model)
	if !next.Quitting {
		t.Fatal("expected quitting flag true")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m := NewModel()
	updated, _ := m.Update(SetStatusMsg{Text: "ready", IsError: false})
	next := updated.(Model)
	if next.Status.Text != "ready" || next.Status.IsError {
		t.Fatalf("unexpected status: %+v", next.Status)
	}

	updated, _ = next.Update(AppErrorMsg{Err: errors.New("boom")})
	next = updated.(Model)
	if next.LastError == nil || next.LastError.Error() != "boom" {
		t.Fatalf("expected last error boom, got: %v", next.LastError)
	}
	if !next.Status.IsError || next.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}

	updated, _ = next.Update(ClearStatusMsg{})
	next = updated.(Model)
	if next.Status.Text != "" || next.Status.IsError {
		t.Fatalf("expected cleared status, got: %+v", next.Status)
	}
}

func TestViewRendersCurrentPanel(t *testing.T) {
	m := NewModel()
	out := m.View()
	if !strings.Contains(out, "tasks:") {
		t.Fatalf("expected tasks panel, got:\n%s", out)
	}

	m = pressKey(t, m, "2")
	out = m.View()
	if !strings.Contains(out, "pomodoro:") {
		t.Fatalf("expected pomodoro panel, got:\n%s", out)
	}

	m = pressKey(t, m, "3")
	out = m.View()
	if !strings.Contains(out, "level: 1") {
		t.Fatalf("expected xp panel with level, got:\n%s", out)
	}
}

func TestStatsLineCountsCompletionAndStudyTime(t *testing.T) {
	m := NewModel()
	a := seedTask("task-a", "alpha")
	a.Completed = true
	a.StudyTime = 90
	b := seedTask("task-b", "beta")
	b.StudyTime = 30
	m.Tasks = []model.Task{a, b}
	m.Pomodoro.Crystals = 2

	line := m.statsLine()
	if !strings.Contains(line, "1/2 tasks done") {
		t.Fatalf("unexpected stats line: %q", line)
	}
	if !strings.Contains(line, "02:00 studied") {
		t.Fatalf("expected combined study time, got: %q", line)
	}
	if !strings.Contains(line, "2 crystals") {
		t.Fatalf("expected crystal count, got: %q", line)
	}
}

func TestFormatSeconds(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "00:00"},
		{-5, "00:00"},
		{61, "01:01"},
		{25 * 60, "25:00"},
		{3661, "1:01:01"},
	}
	for _, tc := range cases {
		if got := formatSeconds(tc.in); got != tc.want {
			t.Fatalf("formatSeconds(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
