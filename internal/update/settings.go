package update

import (
	"fmt"

	"github.com/sandeepkv93/studyd/internal/commands"
	"github.com/sandeepkv93/studyd/internal/model"
	"github.com/sandeepkv93/studyd/internal/timer"
)

// applySettings merges the provided fields into the current settings
// and persists them. When the pomodoro timer is not running the current
// mode is immediately re-armed with the new duration; a running session
// is left untouched.
func (m *Model) applySettings(args commands.SettingsArgs) (commands.Result, error) {
	next := m.Settings
	if args.Work != nil {
		next.WorkDuration = *args.Work
	}
	if args.ShortBreak != nil {
		next.ShortBreakDuration = *args.ShortBreak
	}
	if args.LongBreak != nil {
		next.LongBreakDuration = *args.LongBreak
	}
	if args.Sessions != nil {
		next.SessionsBeforeLongBreak = *args.Sessions
	}
	if args.Notifications != nil {
		next.EnableNotifications = *args.Notifications
	}
	if args.Autostart != nil {
		next.EnableAutostart = *args.Autostart
	}
	if err := next.Validate(); err != nil {
		return commands.Result{}, &commands.CommandError{
			Code:    commands.ErrCodeInvalidArgument,
			Message: err.Error(),
		}
	}
	m.Settings = next

	if !m.Pomodoro.IsActive {
		mode := m.Pomodoro.Mode
		if !mode.IsValid() {
			mode = timer.ModeWork
		}
		duration := m.durationFor(mode)
		m.Pomodoro.Mode = mode
		m.Pomodoro.TimeLeft = duration
		m.Pomodoro.InitialDuration = duration
		if m.intervalEngine != nil && m.intervalReady {
			_ = m.intervalEngine.Reset(duration, mode)
		}
	}

	// Re-push the XP rates so rate changes take effect on the next tick
	// of whichever timer is running.
	if m.intervalEngine != nil && m.intervalReady {
		_ = m.intervalEngine.SetRate(m.cfg.FocusXPPerSecond)
	}
	if m.taskEngine != nil && m.taskReady {
		_ = m.taskEngine.SetRate(m.cfg.TaskXPPerSecond)
	}

	m.persistSnapshot()
	return commands.Result{Message: settingsSummary(next)}, nil
}

func settingsSummary(s model.Settings) string {
	return fmt.Sprintf(
		"settings saved: work=%dm short=%dm long=%dm sessions=%d notify=%t autostart=%t",
		s.WorkDuration, s.ShortBreakDuration, s.LongBreakDuration,
		s.SessionsBeforeLongBreak, s.EnableNotifications, s.EnableAutostart,
	)
}
