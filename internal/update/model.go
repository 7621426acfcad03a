package update

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sandeepkv93/studyd/internal/model"
	"github.com/sandeepkv93/studyd/internal/storage"
	"github.com/sandeepkv93/studyd/internal/timer"
	"github.com/sandeepkv93/studyd/internal/xp"
)

type View string

const (
	ViewTasks    View = "Tasks"
	ViewPomodoro View = "Pomodoro"
	ViewXP       View = "XP"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Tasks    string
	Pomodoro string
	XP       string
	Help     string
	Quit     string
}

// PomodoroState is the interval-timer runtime state owned by the
// coordinator; the engine only reports deltas.
type PomodoroState struct {
	Mode              timer.Mode
	TimeLeft          int
	InitialDuration   int
	IsActive          bool
	SessionsCompleted int
	Crystals          int
}

// TaskTimerState mirrors the task engine: which task is tracked and the
// last reported elapsed seconds.
type TaskTimerState struct {
	ActiveTaskID string
	Elapsed      int
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// Model is the coordinator. It alone owns the task store, the XP state
// and both timer runtime states; the engines run on their own
// goroutines and only exchange messages with it. bubbletea delivers one
// message at a time, so every event settles (including the persisted
// snapshot) before the next is processed.
type Model struct {
	CurrentView View
	Tasks       []model.Task
	Cursor      int
	XP          xp.State
	History     *xp.Log
	Pomodoro    PomodoroState
	TaskTimer   TaskTimerState
	Settings    model.Settings

	Palette       CommandPaletteState
	HelpVisible   bool
	Status        StatusBar
	Notifications []Notification
	Keys          GlobalKeyMap
	Quitting      bool
	LastError     error

	intervalEngine *timer.Engine
	taskEngine     *timer.Engine
	intervalReady  bool
	taskReady      bool

	repo     storage.Repository
	cfg      RuntimeConfig
	notifier DesktopNotifier

	// Bubble components used for rich TUI controls.
	quickAddInput    textinput.Model
	editInput        textinput.Model
	commandInput     textinput.Model
	taskList         list.Model
	xpProgress       progress.Model
	pomodoroProgress progress.Model
	autostartSpinner spinner.Model
	helpModel        help.Model
	autostartArmed   bool
	addingTask       bool
	editingTaskID    string
}

// Messages routed into the coordinator.

type IntervalEventMsg struct {
	Event timer.Event
}

type TaskEventMsg struct {
	Event timer.Event
}

type AutostartPomodoroMsg struct {
	Mode timer.Mode
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

func NewModel() Model {
	m := Model{
		CurrentView: ViewTasks,
		XP:          xp.State{Level: 1},
		History:     xp.NewLog(),
		Settings:    model.DefaultSettings(),
		notifier:    NoopDesktopNotifier{},
		cfg:         DefaultRuntimeConfig(),
		Keys: GlobalKeyMap{
			Tasks:    "1",
			Pomodoro: "2",
			XP:       "3",
			Help:     "?",
			Quit:     "q",
		},
	}
	m.Pomodoro = PomodoroState{
		Mode:            timer.ModeWork,
		TimeLeft:        m.Settings.WorkDuration * 60,
		InitialDuration: m.Settings.WorkDuration * 60,
	}
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

// NewModelWithRuntime wires the coordinator to its collaborators. Any of
// them may be nil; the model then runs with defaults (and timer commands
// are rejected until an engine is attached).
func NewModelWithRuntime(cfg RuntimeConfig, repo storage.Repository, intervalEngine, taskEngine *timer.Engine, notifier DesktopNotifier) Model {
	m := NewModel()
	m.cfg = cfg
	m.repo = repo
	m.intervalEngine = intervalEngine
	m.taskEngine = taskEngine
	if notifier != nil {
		m.notifier = notifier
	}
	m.hydrate()
	return m
}

// hydrate loads the persisted snapshot. A missing or malformed value
// falls back to defaults; the failure is noted on the status bar only.
func (m *Model) hydrate() {
	if m.repo == nil {
		return
	}
	ctx := context.Background()

	var warnings []string

	var xpSnap xpSnapshot
	ok, err := m.repo.LoadValue(ctx, storage.KeyXP, &xpSnap)
	if err != nil {
		warnings = append(warnings, "xp state reset")
	} else if ok {
		m.XP = xp.State{TotalXP: xpSnap.TotalXP, Level: xpSnap.Level}
		if m.XP.Level < 1 {
			m.XP.Level = 1
		}
	}

	var pomSnap pomodoroSnapshot
	ok, err = m.repo.LoadValue(ctx, storage.KeyPomodoro, &pomSnap)
	if err != nil {
		warnings = append(warnings, "pomodoro counters reset")
	} else if ok {
		m.Pomodoro.SessionsCompleted = pomSnap.SessionsCompleted
		m.Pomodoro.Crystals = pomSnap.Crystals
	}

	var settings model.Settings
	ok, err = m.repo.LoadValue(ctx, storage.KeySettings, &settings)
	if err != nil || (ok && settings.Validate() != nil) {
		warnings = append(warnings, "settings reset")
	} else if ok {
		m.Settings = settings
	}
	m.Pomodoro.Mode = timer.ModeWork
	m.Pomodoro.TimeLeft = m.Settings.WorkDuration * 60
	m.Pomodoro.InitialDuration = m.Pomodoro.TimeLeft

	if tasks, err := m.repo.ListTasks(ctx); err == nil {
		m.Tasks = make([]model.Task, 0, len(tasks))
		for _, t := range tasks {
			m.Tasks = append(m.Tasks, model.Task{
				ID:        t.ID,
				Text:      t.Text,
				Completed: t.Completed,
				StudyTime: t.StudyTime,
				Priority:  model.Priority(t.Priority),
				CreatedAt: t.CreatedAt,
			})
		}
	} else {
		warnings = append(warnings, "tasks unavailable")
	}

	if entries, err := m.repo.ListHistory(ctx, xp.MaxHistory); err == nil {
		restored := make([]xp.Entry, 0, len(entries))
		for _, e := range entries {
			restored = append(restored, xp.Entry{
				ID:          e.ID,
				Description: e.Description,
				Amount:      e.Amount,
				Category:    xp.Category(e.Category),
				At:          e.CreatedAt,
			})
		}
		m.History.Restore(restored)
	}

	if len(warnings) > 0 {
		m.Status = StatusBar{Text: "loaded with defaults: " + strings.Join(warnings, ", "), IsError: false}
	}
	m.syncBubbleData()
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now().UTC(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
	if m.Settings.EnableNotifications && m.notifier != nil {
		_ = m.notifier.Send(n)
	}
}

func levelFromError(isError bool) string {
	if isError {
		return "error"
	}
	return "info"
}
