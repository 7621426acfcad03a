package views

import (
	"fmt"
	"strings"
)

type TasksPanelData struct {
	ListView   string
	InputView  string
	ActiveLine string
	Empty      bool
}

type PomodoroPanelData struct {
	Mode              string
	TimerText         string
	ProgressView      string
	IsActive          bool
	SessionsCompleted int
	SessionsPerCycle  int
	Crystals          int
	AutostartLine     string
}

type HistoryItemData struct {
	Description string
	Amount      int
	Category    string
}

type XPPanelData struct {
	Level        int
	XPLine       string
	ProgressView string
	Entries      []HistoryItemData
}

type HelpPanelData struct {
	CurrentView string
	GuideView   string
	HelpView    string
}

func RenderTasksPanel(data TasksPanelData) string {
	var b strings.Builder
	b.WriteString("tasks:\n")
	b.WriteString("actions: [a]add [e]edit [c]complete [d]delete [p]priority [space]study\n")
	if data.InputView != "" {
		b.WriteString(data.InputView + "\n")
	}
	if data.Empty {
		b.WriteString("(no tasks yet, press a to add one)\n")
	} else {
		b.WriteString(data.ListView + "\n")
	}
	if data.ActiveLine != "" {
		b.WriteString(data.ActiveLine)
	}
	return strings.TrimSpace(b.String())
}

func RenderPomodoroPanel(data PomodoroPanelData) string {
	state := "paused"
	if data.IsActive {
		state = "running"
	}
	var b strings.Builder
	b.WriteString("pomodoro:\n")
	b.WriteString(fmt.Sprintf("mode: %s | state: %s\n", data.Mode, state))
	b.WriteString(fmt.Sprintf("timer: %s\n", data.TimerText))
	b.WriteString(fmt.Sprintf("progress: %s\n", data.ProgressView))
	if data.SessionsPerCycle > 0 {
		b.WriteString(fmt.Sprintf("sessions: %d (long break every %d)\n",
			data.SessionsCompleted, data.SessionsPerCycle))
	} else {
		b.WriteString(fmt.Sprintf("sessions: %d\n", data.SessionsCompleted))
	}
	b.WriteString(fmt.Sprintf("crystals: %s\n", crystalRow(data.Crystals)))
	b.WriteString("actions: [space]start/pause [r]reset [w]work [s]short [l]long\n")
	if data.AutostartLine != "" {
		b.WriteString(data.AutostartLine)
	}
	return strings.TrimSpace(b.String())
}

func RenderXPPanel(data XPPanelData) string {
	var b strings.Builder
	b.WriteString("xp:\n")
	b.WriteString(fmt.Sprintf("level: %d\n", data.Level))
	b.WriteString(data.XPLine + "\n")
	b.WriteString(fmt.Sprintf("progress: %s\n", data.ProgressView))
	b.WriteString("recent awards:\n")
	if len(data.Entries) == 0 {
		b.WriteString("(nothing earned yet)")
		return b.String()
	}
	for _, entry := range data.Entries {
		b.WriteString(fmt.Sprintf("%s +%d %s\n",
			categoryBadge(entry.Category), entry.Amount, entry.Description))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderCommandPalette(input string) string {
	return "command: " + input + "\n(add/done/del/prio/edit/xp/settings, esc to close)"
}

func RenderNotification(title, body, level string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s: %s", strings.ToUpper(level), title, body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help (%s):\n%s\n%s",
		strings.ToLower(data.CurrentView),
		data.GuideView,
		data.HelpView,
	)
}

func categoryBadge(category string) string {
	switch category {
	case "focus":
		return "[FOCUS]"
	case "task":
		return "[TASK]"
	case "completion":
		return "[DONE]"
	case "test":
		return "[TEST]"
	default:
		return "[XP]"
	}
}

func crystalRow(n int) string {
	if n <= 0 {
		return "(none)"
	}
	if n > 20 {
		return fmt.Sprintf("%s x%d", strings.Repeat("*", 20), n)
	}
	return strings.Repeat("*", n) + fmt.Sprintf(" x%d", n)
}
