package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/studyd/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		GuideView:   views.RenderMarkdown(m.helpGuide()),
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

// helpGuide builds the markdown source for the help panel; the view
// layer renders it with glamour.
func (m Model) helpGuide() string {
	var b strings.Builder
	b.WriteString("# studyd keys\n\n## global\n\n")
	for _, kb := range m.globalBindings() {
		fmt.Fprintf(&b, "- `%s`: %s\n", kb.Key, kb.Action)
	}
	fmt.Fprintf(&b, "\n## %s\n\n", strings.ToLower(string(m.CurrentView)))
	for _, kb := range m.viewBindings() {
		fmt.Fprintf(&b, "- `%s`: %s\n", kb.Key, kb.Action)
	}
	return b.String()
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Tasks, Action: "switch to Tasks"},
		{Key: m.Keys.Pomodoro, Action: "switch to Pomodoro"},
		{Key: m.Keys.XP, Action: "switch to XP"},
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewTasks:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "a", Action: "add task"},
			{Key: "e", Action: "edit task"},
			{Key: "c", Action: "toggle complete"},
			{Key: "d", Action: "delete task"},
			{Key: "p", Action: "cycle priority"},
			{Key: "space", Action: "start/stop study timer"},
		}
	case ViewPomodoro:
		return []KeyBinding{
			{Key: "space", Action: "start/pause interval"},
			{Key: "r", Action: "reset interval"},
			{Key: "w/s/l", Action: "work/short break/long break"},
		}
	case ViewXP:
		return []KeyBinding{
			{Key: "-", Action: "recent awards are listed newest first"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
