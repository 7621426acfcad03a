package timer

// Mode is the orthogonal interval-timer dimension. The task timer leaves
// it empty.
type Mode string

const (
	ModeWork       Mode = "work"
	ModeShortBreak Mode = "shortBreak"
	ModeLongBreak  Mode = "longBreak"
	ModeNone       Mode = ""
)

func (m Mode) IsValid() bool {
	switch m {
	case ModeWork, ModeShortBreak, ModeLongBreak:
		return true
	default:
		return false
	}
}

func (m Mode) IsBreak() bool {
	return m == ModeShortBreak || m == ModeLongBreak
}

type EventKind string

const (
	EventReady    EventKind = "ready"
	EventTick     EventKind = "tick"
	EventAwardXP  EventKind = "award_xp"
	EventComplete EventKind = "complete"
	EventError    EventKind = "error"
)

// Event is the one-way report from a timer to its coordinator.
type Event struct {
	Kind EventKind

	// Tick payload. TimeLeft is set by the interval timer, Elapsed and
	// TaskID by the task timer.
	Mode     Mode
	TimeLeft int
	TaskID   string
	Elapsed  int

	// AwardXP payload.
	Amount float64
	Source string

	// Error payload.
	Err string
}

type commandKind string

const (
	cmdStart   commandKind = "start"
	cmdPause   commandKind = "pause"
	cmdStop    commandKind = "stop"
	cmdReset   commandKind = "reset"
	cmdSetRate commandKind = "set_rate"
)

type command struct {
	kind     commandKind
	mode     Mode
	duration int
	taskID   string
	startAt  int
	rate     float64
}
