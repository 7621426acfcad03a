package update

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/studyd/internal/commands"
	"github.com/sandeepkv93/studyd/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

// resolveTask accepts a 1-based list position or an id (or unique id
// prefix).
func (m Model) resolveTask(target string) (string, error) {
	if n, err := strconv.Atoi(target); err == nil {
		if n < 1 || n > len(m.Tasks) {
			return "", &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task #%d", n)}
		}
		return m.Tasks[n-1].ID, nil
	}
	matched := ""
	for _, task := range m.Tasks {
		if task.ID == target {
			return task.ID, nil
		}
		if strings.HasPrefix(task.ID, target) {
			if matched != "" {
				return "", &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "ambiguous task id: " + target}
			}
			matched = task.ID
		}
	}
	if matched == "" {
		return "", &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no task matches: " + target}
	}
	return matched, nil
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			m.CurrentView = ViewTasks
			if !m.addTask(a.Text) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "task text must not be empty"}
			}
			return commands.Result{Message: "added task: " + a.Text}, nil
		},
		Done: func(a commands.DoneArgs) (commands.Result, error) {
			id, resolveErr := m.resolveTask(a.Target)
			if resolveErr != nil {
				return commands.Result{}, resolveErr
			}
			m.toggleTaskCompletion(id)
			return commands.Result{Message: m.Status.Text}, nil
		},
		Delete: func(a commands.DeleteArgs) (commands.Result, error) {
			id, resolveErr := m.resolveTask(a.Target)
			if resolveErr != nil {
				return commands.Result{}, resolveErr
			}
			m.deleteTask(id)
			return commands.Result{Message: m.Status.Text}, nil
		},
		Priority: func(a commands.PriorityArgs) (commands.Result, error) {
			id, resolveErr := m.resolveTask(a.Target)
			if resolveErr != nil {
				return commands.Result{}, resolveErr
			}
			if !m.setTaskPriority(id, model.Priority(a.Priority)) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "cannot set priority"}
			}
			return commands.Result{Message: m.Status.Text}, nil
		},
		Edit: func(a commands.EditArgs) (commands.Result, error) {
			id, resolveErr := m.resolveTask(a.Target)
			if resolveErr != nil {
				return commands.Result{}, resolveErr
			}
			if !m.editTask(id, a.Text) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "task text must not be empty"}
			}
			return commands.Result{Message: m.Status.Text}, nil
		},
		XP: func(a commands.XPArgs) (commands.Result, error) {
			if a.Amount <= 0 {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "xp amount must be positive"}
			}
			m.awardTestXP(a.Amount)
			return commands.Result{Message: fmt.Sprintf("awarded %.1f test XP", a.Amount)}, nil
		},
		Settings: m.applySettings,
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
		m.notify("Command", res.Message, "info")
	}

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	return m
}
