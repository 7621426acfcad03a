package update

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/studyd/internal/model"
	"github.com/sandeepkv93/studyd/internal/timer"
)

func (m Model) taskIndexByID(id string) int {
	for i := range m.Tasks {
		if m.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (m Model) selectedTask() (model.Task, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Tasks) {
		return model.Task{}, false
	}
	return m.Tasks[m.Cursor], true
}

// ensureTaskEngine rejects timer requests while the worker is missing,
// not yet ready, or marked failed. The request becomes a no-op.
func (m *Model) ensureTaskEngine() bool {
	if m.taskEngine == nil || !m.taskReady {
		m.Status = StatusBar{Text: "task timer unavailable", IsError: true}
		m.notify("Timer", "task timer is not ready; action dropped", "error")
		return false
	}
	return true
}

func (m *Model) addTask(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		m.Status = StatusBar{Text: "task text must not be empty", IsError: true}
		m.notify("Tasks", "task text must not be empty", "error")
		return false
	}
	task := model.Task{
		ID:        model.NewTaskID(),
		Text:      text,
		Priority:  model.PriorityMedium,
		CreatedAt: time.Now().UTC(),
	}
	m.Tasks = append([]model.Task{task}, m.Tasks...)
	m.Cursor = 0
	m.Status = StatusBar{Text: "added: " + text, IsError: false}
	m.persistSnapshot()
	return true
}

func (m *Model) editTask(id, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		m.Status = StatusBar{Text: "task text must not be empty", IsError: true}
		m.notify("Tasks", "task text must not be empty", "error")
		return false
	}
	idx := m.taskIndexByID(id)
	if idx < 0 {
		m.Status = StatusBar{Text: "task not found", IsError: true}
		return false
	}
	m.Tasks[idx].Text = text
	m.Status = StatusBar{Text: "updated: " + text, IsError: false}
	m.persistSnapshot()
	return true
}

func (m *Model) setTaskPriority(id string, priority model.Priority) bool {
	idx := m.taskIndexByID(id)
	if idx < 0 || !priority.IsValid() {
		m.Status = StatusBar{Text: "cannot set priority", IsError: true}
		return false
	}
	m.Tasks[idx].Priority = priority
	m.Status = StatusBar{Text: fmt.Sprintf("priority set to %s", priority), IsError: false}
	m.persistSnapshot()
	return true
}

// toggleTaskCompletion flips the completed flag. Completing the active
// task first pauses its timer and folds the last reported elapsed time
// into studyTime. The completion bonus is awarded on each 0→1
// transition only; flipping back reclaims nothing.
func (m *Model) toggleTaskCompletion(id string) {
	idx := m.taskIndexByID(id)
	if idx < 0 {
		m.Status = StatusBar{Text: "task not found", IsError: true}
		return
	}

	if m.Tasks[idx].Completed {
		m.Tasks[idx].Completed = false
		m.Status = StatusBar{Text: "marked incomplete: " + m.Tasks[idx].Text, IsError: false}
		m.persistSnapshot()
		return
	}

	if m.Tasks[idx].IsActive {
		if m.taskEngine != nil && m.taskReady {
			_ = m.taskEngine.Pause()
		}
		m.Tasks[idx].StudyTime = m.TaskTimer.Elapsed
		m.Tasks[idx].IsActive = false
		m.TaskTimer = TaskTimerState{}
	}
	m.Tasks[idx].Completed = true
	m.Status = StatusBar{Text: "completed: " + m.Tasks[idx].Text, IsError: false}
	m.applyAward("Complete: "+m.Tasks[idx].Text, m.cfg.CompletionBonusXP)
	m.persistSnapshot()
}

// deleteTask stops (not pauses) the task's timer when it is the active
// one, then removes the task. A final tick for the removed id may still
// arrive and is ignored.
func (m *Model) deleteTask(id string) {
	idx := m.taskIndexByID(id)
	if idx < 0 {
		m.Status = StatusBar{Text: "task not found", IsError: true}
		return
	}

	if m.TaskTimer.ActiveTaskID == id {
		if m.taskEngine != nil && m.taskReady {
			_ = m.taskEngine.Stop()
		}
		m.TaskTimer = TaskTimerState{}
	}
	removed := m.Tasks[idx].Text
	m.Tasks = append(m.Tasks[:idx], m.Tasks[idx+1:]...)
	if m.Cursor >= len(m.Tasks) && m.Cursor > 0 {
		m.Cursor--
	}
	m.Status = StatusBar{Text: "deleted: " + removed, IsError: false}
	m.persistSnapshot()
}

// startTaskTimer starts tracking id, implicitly stopping whichever task
// was active before so at most one task accumulates time.
func (m *Model) startTaskTimer(id string) {
	if !m.ensureTaskEngine() {
		return
	}
	idx := m.taskIndexByID(id)
	if idx < 0 {
		m.Status = StatusBar{Text: "task not found", IsError: true}
		return
	}
	if m.Tasks[idx].Completed {
		m.Status = StatusBar{Text: "cannot study a completed task", IsError: true}
		return
	}

	if prev := m.TaskTimer.ActiveTaskID; prev != "" && prev != id {
		if prevIdx := m.taskIndexByID(prev); prevIdx >= 0 {
			m.Tasks[prevIdx].StudyTime = m.TaskTimer.Elapsed
			m.Tasks[prevIdx].IsActive = false
		}
	}

	if err := m.taskEngine.StartTask(id, m.Tasks[idx].StudyTime, m.cfg.TaskXPPerSecond); err != nil {
		m.Status = StatusBar{Text: "task timer unavailable", IsError: true}
		m.notify("Timer", "could not start task timer: "+err.Error(), "error")
		return
	}
	m.Tasks[idx].IsActive = true
	m.TaskTimer = TaskTimerState{ActiveTaskID: id, Elapsed: m.Tasks[idx].StudyTime}
	m.Status = StatusBar{Text: "studying: " + m.Tasks[idx].Text, IsError: false}
	m.persistSnapshot()
}

// stopTaskTimer ends the active run and persists the last reported
// elapsed time onto the task record.
func (m *Model) stopTaskTimer() {
	if m.TaskTimer.ActiveTaskID == "" {
		return
	}
	if m.taskEngine != nil && m.taskReady {
		_ = m.taskEngine.Stop()
	}
	if idx := m.taskIndexByID(m.TaskTimer.ActiveTaskID); idx >= 0 {
		m.Tasks[idx].StudyTime = m.TaskTimer.Elapsed
		m.Tasks[idx].IsActive = false
		m.Status = StatusBar{Text: "stopped studying: " + m.Tasks[idx].Text, IsError: false}
	}
	m.TaskTimer = TaskTimerState{}
	m.persistSnapshot()
}

func (m *Model) onTaskEvent(ev timer.Event) {
	switch ev.Kind {
	case timer.EventReady:
		m.taskReady = true
	case timer.EventTick:
		idx := m.taskIndexByID(ev.TaskID)
		if idx < 0 {
			return
		}
		m.Tasks[idx].StudyTime = ev.Elapsed
		if m.TaskTimer.ActiveTaskID == ev.TaskID {
			m.TaskTimer.Elapsed = ev.Elapsed
		}
		m.persistSnapshot()
	case timer.EventAwardXP:
		m.applyAward(ev.Source, ev.Amount)
		m.persistSnapshot()
	case timer.EventError:
		m.taskReady = false
		m.LastError = fmt.Errorf("task timer: %s", ev.Err)
		m.Status = StatusBar{Text: "task timer failed: " + ev.Err, IsError: true}
		m.notify("Timer", "task timer failed: "+ev.Err, "error")
	}
}

func nextPriority(p model.Priority) model.Priority {
	switch p {
	case model.PriorityLow:
		return model.PriorityMedium
	case model.PriorityMedium:
		return model.PriorityHigh
	default:
		return model.PriorityLow
	}
}

func (m Model) handleTasksKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.addingTask {
		switch msg.String() {
		case "enter":
			if m.addTask(m.quickAddInput.Value()) {
				m.quickAddInput.SetValue("")
				m.quickAddInput.Blur()
				m.addingTask = false
			}
			return m, nil
		case "esc":
			m.addingTask = false
			m.quickAddInput.SetValue("")
			m.quickAddInput.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.quickAddInput, cmd = m.quickAddInput.Update(msg)
			return m, cmd
		}
	}

	if m.editingTaskID != "" {
		switch msg.String() {
		case "enter":
			if m.editTask(m.editingTaskID, m.editInput.Value()) {
				m.clearEditState()
			}
			return m, nil
		case "esc":
			m.clearEditState()
			return m, nil
		default:
			var cmd tea.Cmd
			m.editInput, cmd = m.editInput.Update(msg)
			return m, cmd
		}
	}

	switch msg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Tasks)-1 {
			m.Cursor++
		}
	case "a":
		m.addingTask = true
		m.quickAddInput.Focus()
	case "e":
		if task, ok := m.selectedTask(); ok {
			m.editingTaskID = task.ID
			if idx := m.taskIndexByID(task.ID); idx >= 0 {
				m.Tasks[idx].IsEditing = true
			}
			m.editInput.SetValue(task.Text)
			m.editInput.Focus()
		}
	case "c":
		if task, ok := m.selectedTask(); ok {
			m.toggleTaskCompletion(task.ID)
		}
	case "d":
		if task, ok := m.selectedTask(); ok {
			m.deleteTask(task.ID)
		}
	case "p":
		if task, ok := m.selectedTask(); ok {
			m.setTaskPriority(task.ID, nextPriority(task.Priority))
		}
	case " ":
		if task, ok := m.selectedTask(); ok {
			if m.TaskTimer.ActiveTaskID == task.ID {
				m.stopTaskTimer()
			} else {
				m.startTaskTimer(task.ID)
			}
		}
	}
	return m, nil
}

func (m *Model) clearEditState() {
	if idx := m.taskIndexByID(m.editingTaskID); idx >= 0 {
		m.Tasks[idx].IsEditing = false
	}
	m.editingTaskID = ""
	m.editInput.SetValue("")
	m.editInput.Blur()
}
