package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/studyd/internal/timer"
)

func (m Model) durationFor(mode timer.Mode) int {
	switch mode {
	case timer.ModeShortBreak:
		return m.Settings.ShortBreakDuration * 60
	case timer.ModeLongBreak:
		return m.Settings.LongBreakDuration * 60
	default:
		return m.Settings.WorkDuration * 60
	}
}

func (m *Model) ensureIntervalEngine() bool {
	if m.intervalEngine == nil || !m.intervalReady {
		m.Status = StatusBar{Text: "pomodoro timer unavailable", IsError: true}
		m.notify("Timer", "pomodoro timer is not ready; action dropped", "error")
		return false
	}
	return true
}

func (m *Model) togglePomodoro() {
	if !m.ensureIntervalEngine() {
		return
	}
	if m.Pomodoro.IsActive {
		if err := m.intervalEngine.Pause(); err != nil {
			m.Status = StatusBar{Text: "pomodoro timer unavailable", IsError: true}
			return
		}
		m.Pomodoro.IsActive = false
		m.Status = StatusBar{Text: "pomodoro paused", IsError: false}
		return
	}

	mode := m.Pomodoro.Mode
	if !mode.IsValid() {
		mode = timer.ModeWork
	}
	timeLeft := m.Pomodoro.TimeLeft
	if timeLeft <= 0 {
		timeLeft = m.durationFor(mode)
		m.Pomodoro.InitialDuration = timeLeft
	}
	if err := m.intervalEngine.StartRun(timeLeft, mode, m.cfg.FocusXPPerSecond); err != nil {
		m.Status = StatusBar{Text: "pomodoro timer unavailable", IsError: true}
		m.notify("Timer", "could not start pomodoro: "+err.Error(), "error")
		return
	}
	m.Pomodoro.Mode = mode
	m.Pomodoro.TimeLeft = timeLeft
	m.Pomodoro.IsActive = true
	m.autostartArmed = false
	m.Status = StatusBar{Text: fmt.Sprintf("pomodoro running (%s)", mode), IsError: false}
}

func (m *Model) resetPomodoro() {
	if !m.ensureIntervalEngine() {
		return
	}
	mode := m.Pomodoro.Mode
	if !mode.IsValid() {
		mode = timer.ModeWork
	}
	duration := m.durationFor(mode)
	if err := m.intervalEngine.Reset(duration, mode); err != nil {
		m.Status = StatusBar{Text: "pomodoro timer unavailable", IsError: true}
		return
	}
	m.Pomodoro.Mode = mode
	m.Pomodoro.TimeLeft = duration
	m.Pomodoro.InitialDuration = duration
	m.Pomodoro.IsActive = false
	m.autostartArmed = false
	m.Status = StatusBar{Text: "pomodoro reset", IsError: false}
}

// switchPomodoroMode rejects switching while a session runs so a live
// interval cannot be silently discarded.
func (m *Model) switchPomodoroMode(mode timer.Mode) {
	if !mode.IsValid() {
		return
	}
	if m.Pomodoro.IsActive {
		m.Status = StatusBar{Text: "pause the timer before switching modes", IsError: true}
		m.notify("Pomodoro", "pause the timer before switching modes", "error")
		return
	}
	if !m.ensureIntervalEngine() {
		return
	}
	duration := m.durationFor(mode)
	if err := m.intervalEngine.Reset(duration, mode); err != nil {
		m.Status = StatusBar{Text: "pomodoro timer unavailable", IsError: true}
		return
	}
	m.Pomodoro.Mode = mode
	m.Pomodoro.TimeLeft = duration
	m.Pomodoro.InitialDuration = duration
	m.Status = StatusBar{Text: fmt.Sprintf("mode: %s", mode), IsError: false}
}

func (m *Model) onIntervalEvent(ev timer.Event) tea.Cmd {
	switch ev.Kind {
	case timer.EventReady:
		m.intervalReady = true
	case timer.EventTick:
		m.Pomodoro.TimeLeft = ev.TimeLeft
		if ev.Mode.IsValid() {
			m.Pomodoro.Mode = ev.Mode
		}
	case timer.EventAwardXP:
		m.applyAward(ev.Source, ev.Amount)
		m.persistSnapshot()
	case timer.EventComplete:
		return m.completePomodoro(ev.Mode)
	case timer.EventError:
		m.intervalReady = false
		m.LastError = fmt.Errorf("pomodoro timer: %s", ev.Err)
		m.Status = StatusBar{Text: "pomodoro timer failed: " + ev.Err, IsError: true}
		m.notify("Timer", "pomodoro timer failed: "+ev.Err, "error")
	}
	return nil
}

// completePomodoro applies the mode-rotation policy. A finished work
// session grows one crystal; every Nth work session is followed by the
// long break. The next interval autostarts after a short delay when
// enabled, otherwise it is re-armed paused.
func (m *Model) completePomodoro(finished timer.Mode) tea.Cmd {
	next := timer.ModeWork
	if finished == timer.ModeWork {
		m.Pomodoro.SessionsCompleted++
		m.Pomodoro.Crystals++
		next = timer.ModeShortBreak
		if m.Settings.SessionsBeforeLongBreak > 0 &&
			m.Pomodoro.SessionsCompleted%m.Settings.SessionsBeforeLongBreak == 0 {
			next = timer.ModeLongBreak
		}
		m.notify("Pomodoro", "work session complete, a crystal has grown", "info")
	} else {
		m.notify("Pomodoro", "break complete", "info")
	}

	duration := m.durationFor(next)
	m.Pomodoro.Mode = next
	m.Pomodoro.TimeLeft = duration
	m.Pomodoro.InitialDuration = duration
	m.Pomodoro.IsActive = false
	m.persistSnapshot()

	if m.Settings.EnableAutostart {
		m.autostartArmed = true
		delay := m.cfg.AutostartDelay
		return tea.Batch(
			m.autostartSpinner.Tick,
			tea.Tick(delay, func(time.Time) tea.Msg { return AutostartPomodoroMsg{Mode: next} }),
		)
	}
	if m.intervalEngine != nil && m.intervalReady {
		_ = m.intervalEngine.Reset(duration, next)
	}
	return nil
}

func (m *Model) onAutostart(msg AutostartPomodoroMsg) {
	// The user may have started, reset or reconfigured the timer during
	// the delay; any of those disarms, and a stale message must not fire.
	if !m.autostartArmed {
		return
	}
	m.autostartArmed = false
	if m.Pomodoro.IsActive || msg.Mode != m.Pomodoro.Mode {
		return
	}
	m.togglePomodoro()
}

func (m Model) handlePomodoroKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		m.togglePomodoro()
	case "r":
		m.resetPomodoro()
	case "w":
		m.switchPomodoroMode(timer.ModeWork)
	case "s":
		m.switchPomodoroMode(timer.ModeShortBreak)
	case "l":
		m.switchPomodoroMode(timer.ModeLongBreak)
	}
	return m, nil
}
