package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
)

func (m *Model) initBubbleComponents() {
	m.quickAddInput = textinput.New()
	m.quickAddInput.Prompt = "add> "
	m.quickAddInput.CharLimit = 200
	m.quickAddInput.Width = 42

	m.editInput = textinput.New()
	m.editInput.Prompt = "edit> "
	m.editInput.CharLimit = 200
	m.editInput.Width = 42

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.taskList = list.New([]list.Item{}, list.NewDefaultDelegate(), 56, 12)
	m.taskList.Title = "Study tasks"
	m.taskList.SetShowHelp(false)
	m.taskList.SetFilteringEnabled(false)

	m.xpProgress = progress.New(progress.WithDefaultGradient())
	m.pomodoroProgress = progress.New(progress.WithDefaultGradient())

	m.autostartSpinner = spinner.New()
	m.autostartSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
}

func (m *Model) syncBubbleData() {
	items := make([]list.Item, 0, len(m.Tasks))
	for _, task := range m.Tasks {
		marker := "[ ]"
		if task.Completed {
			marker = "[x]"
		}
		if task.IsActive {
			marker = "[>]"
		}
		desc := fmt.Sprintf("%s | studied %s", task.Priority, formatSeconds(task.StudyTime))
		items = append(items, listItem{title: marker + " " + task.Text, description: desc})
	}
	m.taskList.SetItems(items)
	if len(items) > 0 && m.Cursor < len(items) {
		m.taskList.Select(m.Cursor)
	}
}

func formatSeconds(total int) string {
	if total < 0 {
		total = 0
	}
	h := total / 3600
	mnt := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, mnt, s)
	}
	return fmt.Sprintf("%02d:%02d", mnt, s)
}
