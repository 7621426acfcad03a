package timer

// TaskMachine is the count-up study timer. At most one task is tracked;
// the coordinator enforces the matching single-active-task invariant on
// its task store.
type TaskMachine struct {
	taskID  string
	elapsed int
	running bool
	rate    float64
}

const taskSource = "Task: Focus"

func NewTaskMachine() *TaskMachine {
	return &TaskMachine{}
}

func (m *TaskMachine) Running() bool  { return m.running }
func (m *TaskMachine) TaskID() string { return m.taskID }
func (m *TaskMachine) Elapsed() int   { return m.elapsed }

// Start begins tracking taskID from startAt seconds, superseding any
// prior run.
func (m *TaskMachine) Start(taskID string, startAt int, rate float64) {
	m.taskID = taskID
	m.elapsed = startAt
	m.rate = rate
	m.running = true
}

// Pause freezes the timer and emits one final tick so the coordinator
// can persist the exact stop point.
func (m *TaskMachine) Pause() []Event {
	m.running = false
	if m.taskID == "" {
		return nil
	}
	return []Event{{Kind: EventTick, TaskID: m.taskID, Elapsed: m.elapsed}}
}

// Stop emits the final tick, then clears the tracked task entirely.
func (m *TaskMachine) Stop() []Event {
	events := m.Pause()
	m.taskID = ""
	m.elapsed = 0
	return events
}

// SetRate changes the XP awarded by subsequent ticks.
func (m *TaskMachine) SetRate(rate float64) {
	m.rate = rate
}

// Tick advances the elapsed count by one second.
func (m *TaskMachine) Tick() []Event {
	if !m.running {
		return nil
	}
	m.elapsed++
	return []Event{
		{Kind: EventTick, TaskID: m.taskID, Elapsed: m.elapsed},
		{Kind: EventAwardXP, Amount: m.rate, Source: taskSource},
	}
}

func (m *TaskMachine) apply(cmd command) []Event {
	switch cmd.kind {
	case cmdStart:
		m.Start(cmd.taskID, cmd.startAt, cmd.rate)
		return nil
	case cmdPause:
		return m.Pause()
	case cmdStop:
		return m.Stop()
	case cmdSetRate:
		m.SetRate(cmd.rate)
		return nil
	}
	return nil
}
