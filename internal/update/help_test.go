package update

import (
	"strings"
	"testing"
)

func TestHelpGuideListsBindingsPerView(t *testing.T) {
	m := NewModel()
	guide := m.helpGuide()
	if !strings.Contains(guide, "## global") || !strings.Contains(guide, "## tasks") {
		t.Fatalf("unexpected guide sections:\n%s", guide)
	}
	if !strings.Contains(guide, "`q`: quit app") {
		t.Fatalf("expected quit binding in guide:\n%s", guide)
	}
	if !strings.Contains(guide, "start/stop study timer") {
		t.Fatalf("expected tasks bindings in guide:\n%s", guide)
	}

	m.CurrentView = ViewPomodoro
	guide = m.helpGuide()
	if !strings.Contains(guide, "## pomodoro") || !strings.Contains(guide, "reset interval") {
		t.Fatalf("expected pomodoro bindings in guide:\n%s", guide)
	}
}

func TestRenderHelpOnlyWhenVisible(t *testing.T) {
	m := NewModel()
	if out := m.renderHelpIfVisible(); out != "" {
		t.Fatalf("expected no help output while hidden, got %q", out)
	}
	m.HelpVisible = true
	out := m.renderHelpIfVisible()
	if !strings.Contains(out, "help (tasks):") {
		t.Fatalf("expected rendered help panel, got:\n%s", out)
	}
	if strings.TrimSpace(out) == "help (tasks):" {
		t.Fatal("expected rendered guide content in the panel")
	}
}
