package timer

// IntervalMachine is the Pomodoro countdown state machine. It is purely
// synchronous; Engine drives it on a one-second schedule. Breaks never
// award XP, and the tick that crosses below zero produces the terminal
// completion event instead of an award.
type IntervalMachine struct {
	mode     Mode
	timeLeft int
	running  bool
	rate     float64
}

const focusSource = "Pomodoro Focus"

func NewIntervalMachine() *IntervalMachine {
	return &IntervalMachine{}
}

func (m *IntervalMachine) Running() bool { return m.running }
func (m *IntervalMachine) Mode() Mode    { return m.mode }
func (m *IntervalMachine) TimeLeft() int { return m.timeLeft }

// Start arms the machine and begins a run. Any prior run is superseded.
func (m *IntervalMachine) Start(duration int, mode Mode, rate float64) {
	m.mode = mode
	m.timeLeft = duration
	m.rate = rate
	m.running = true
}

// Pause freezes the countdown at the current timeLeft without emitting
// anything; ticks simply cease.
func (m *IntervalMachine) Pause() {
	m.running = false
}

// Reset re-arms the machine paused at the given duration and emits one
// tick so the coordinator can sync its display.
func (m *IntervalMachine) Reset(duration int, mode Mode) []Event {
	m.running = false
	m.mode = mode
	m.timeLeft = duration
	return []Event{{Kind: EventTick, Mode: mode, TimeLeft: duration}}
}

// SetRate changes the XP awarded by subsequent work ticks.
func (m *IntervalMachine) SetRate(rate float64) {
	m.rate = rate
}

// Tick advances the countdown by one second and returns the resulting
// events in emission order.
func (m *IntervalMachine) Tick() []Event {
	if !m.running {
		return nil
	}
	m.timeLeft--
	if m.timeLeft < 0 {
		mode := m.mode
		m.running = false
		m.mode = ModeNone
		m.timeLeft = 0
		return []Event{{Kind: EventComplete, Mode: mode}}
	}

	events := []Event{{Kind: EventTick, Mode: m.mode, TimeLeft: m.timeLeft}}
	if m.mode == ModeWork {
		events = append(events, Event{Kind: EventAwardXP, Amount: m.rate, Source: focusSource})
	}
	return events
}

func (m *IntervalMachine) apply(cmd command) []Event {
	switch cmd.kind {
	case cmdStart:
		m.Start(cmd.duration, cmd.mode, cmd.rate)
		return nil
	case cmdPause:
		m.Pause()
		return nil
	case cmdReset:
		return m.Reset(cmd.duration, cmd.mode)
	case cmdSetRate:
		m.SetRate(cmd.rate)
		return nil
	}
	return nil
}
