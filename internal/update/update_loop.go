package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/studyd/internal/timer"
	"github.com/sandeepkv93/studyd/internal/views"
	"github.com/sandeepkv93/studyd/internal/xp"
)

func waitForIntervalEventCmd(ch <-chan timer.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return IntervalEventMsg{Event: ev}
	}
}

func waitForTaskEventCmd(ch <-chan timer.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return TaskEventMsg{Event: ev}
	}
}

func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.intervalEngine != nil {
		cmds = append(cmds, waitForIntervalEventCmd(m.intervalEngine.C()))
	}
	if m.taskEngine != nil {
		cmds = append(cmds, waitForTaskEventCmd(m.taskEngine.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case IntervalEventMsg:
		cmd := m.onIntervalEvent(msg.Event)
		m.syncBubbleData()
		if m.intervalEngine != nil {
			return m, tea.Batch(cmd, waitForIntervalEventCmd(m.intervalEngine.C()))
		}
		return m, cmd

	case TaskEventMsg:
		m.onTaskEvent(msg.Event)
		m.syncBubbleData()
		if m.taskEngine != nil {
			return m, waitForTaskEventCmd(m.taskEngine.C())
		}
		return m, nil

	case AutostartPomodoroMsg:
		m.onAutostart(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.autostartArmed {
			return m, nil
		}
		var cmd tea.Cmd
		m.autostartSpinner, cmd = m.autostartSpinner.Update(msg)
		return m, cmd

	case SetStatusMsg:
		m.Status = StatusBar{Text: msg.Text, IsError: msg.IsError}
		m.notify("Status", msg.Text, levelFromError(msg.IsError))
		return m, nil

	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil

	case AppErrorMsg:
		m.LastError = msg.Err
		m.Status = StatusBar{Text: msg.Err.Error(), IsError: true}
		m.notify("Error", msg.Err.Error(), "error")
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}

	if m.Palette.Active {
		m = m.handlePaletteKey(msg)
		m.syncBubbleData()
		return m, nil
	}

	// Text-entry modes on the Tasks view capture every key except ctrl+c.
	capturing := m.CurrentView == ViewTasks && (m.addingTask || m.editingTaskID != "")
	if !capturing {
		switch msg.String() {
		case m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		case m.Keys.Tasks:
			m.CurrentView = ViewTasks
			return m, nil
		case m.Keys.Pomodoro:
			m.CurrentView = ViewPomodoro
			return m, nil
		case m.Keys.XP:
			m.CurrentView = ViewXP
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.SetValue("")
			m.commandInput.Focus()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.CurrentView {
	case ViewTasks:
		m, cmd = m.handleTasksKey(msg)
	case ViewPomodoro:
		m, cmd = m.handlePomodoroKey(msg)
	}
	m.syncBubbleData()
	return m, cmd
}

func (m Model) View() string {
	if m.Quitting {
		return "bye\n"
	}
	m.syncBubbleData()

	var body string
	switch m.CurrentView {
	case ViewPomodoro:
		body = m.renderPomodoroView()
	case ViewXP:
		body = m.renderXPView()
	default:
		body = m.renderTasksView()
	}

	palette := ""
	if m.Palette.Active {
		palette = views.RenderCommandPalette(m.commandInput.View())
	}

	notification := ""
	if n := len(m.Notifications); n > 0 {
		last := m.Notifications[n-1]
		notification = views.RenderNotification(last.Title, last.Body, last.Level)
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("studyd | %s | level %d", m.CurrentView, m.XP.Level),
		StatsLine:    m.statsLine(),
		Body:         body,
		PaletteView:  palette,
		HelpView:     m.renderHelpIfVisible(),
		Notification: notification,
		StatusText:   m.Status.Text,
		StatusError:  m.Status.IsError,
		FooterHint:   "1 tasks | 2 pomodoro | 3 xp | / command | ? help | q quit",
	})
}

func (m Model) statsLine() string {
	done := 0
	total := 0
	for _, t := range m.Tasks {
		if t.Completed {
			done++
		}
		total += t.StudyTime
	}
	return fmt.Sprintf("%d/%d tasks done | %s studied | %d crystals",
		done, len(m.Tasks), formatSeconds(total), m.Pomodoro.Crystals)
}

func (m Model) renderTasksView() string {
	input := ""
	if m.addingTask {
		input = m.quickAddInput.View()
	} else if m.editingTaskID != "" {
		input = m.editInput.View()
	}
	activeLine := ""
	if m.TaskTimer.ActiveTaskID != "" {
		if idx := m.taskIndexByID(m.TaskTimer.ActiveTaskID); idx >= 0 {
			activeLine = fmt.Sprintf("studying %q for %s", m.Tasks[idx].Text, formatSeconds(m.TaskTimer.Elapsed))
		}
	}
	return views.RenderTasksPanel(views.TasksPanelData{
		ListView:   m.taskList.View(),
		InputView:  input,
		ActiveLine: activeLine,
		Empty:      len(m.Tasks) == 0,
	})
}

func (m Model) renderPomodoroView() string {
	ratio := 0.0
	if m.Pomodoro.InitialDuration > 0 {
		ratio = 1 - float64(m.Pomodoro.TimeLeft)/float64(m.Pomodoro.InitialDuration)
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	autostartLine := ""
	if m.autostartArmed {
		autostartLine = m.autostartSpinner.View() + " next session starting soon"
	}
	return views.RenderPomodoroPanel(views.PomodoroPanelData{
		Mode:              string(m.Pomodoro.Mode),
		TimerText:         formatSeconds(m.Pomodoro.TimeLeft),
		ProgressView:      m.pomodoroProgress.ViewAs(ratio),
		IsActive:          m.Pomodoro.IsActive,
		SessionsCompleted: m.Pomodoro.SessionsCompleted,
		SessionsPerCycle:  m.Settings.SessionsBeforeLongBreak,
		Crystals:          m.Pomodoro.Crystals,
		AutostartLine:     autostartLine,
	})
}

func (m Model) renderXPView() string {
	threshold := xp.Threshold(m.XP.Level)
	ratio := 0.0
	if threshold > 0 {
		ratio = m.XP.TotalXP / threshold
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	entries := m.History.Entries()
	items := make([]views.HistoryItemData, 0, len(entries))
	for _, e := range entries {
		items = append(items, views.HistoryItemData{
			Description: e.Description,
			Amount:      e.Amount,
			Category:    string(e.Category),
		})
	}
	return views.RenderXPPanel(views.XPPanelData{
		Level:        m.XP.Level,
		XPLine:       fmt.Sprintf("%d / %d XP to level %d", m.XP.DisplayXP(), int(threshold), m.XP.Level+1),
		ProgressView: m.xpProgress.ViewAs(ratio),
		Entries:      items,
	})
}
