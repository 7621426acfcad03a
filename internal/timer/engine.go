package timer

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

var ErrEngineStopped = errors.New("timer: engine stopped")

type machine interface {
	apply(cmd command) []Event
	Tick() []Event
	Running() bool
}

// Engine runs a timer machine on its own goroutine behind a command
// channel and an event channel. The loop alone touches the machine and
// owns the tick schedule, so a pause, stop, reset or superseding start is
// processed in the same select as the schedule and a stale tick from a
// replaced run can never be delivered.
type Engine struct {
	mu       sync.Mutex
	machine  machine
	interval time.Duration
	cmds     chan command
	out      chan Event
	stopCh   chan struct{}
	doneCh   chan struct{}
	started  bool
	stopped  bool
}

// NewIntervalEngine returns an engine driving a Pomodoro countdown.
func NewIntervalEngine(bufferSize int) *Engine {
	return newEngine(NewIntervalMachine(), bufferSize, time.Second)
}

// NewTaskEngine returns an engine driving a per-task count-up timer.
func NewTaskEngine(bufferSize int) *Engine {
	return newEngine(NewTaskMachine(), bufferSize, time.Second)
}

func newEngine(m machine, bufferSize int, interval time.Duration) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		machine:  m,
		interval: interval,
		cmds:     make(chan command, 16),
		out:      make(chan Event, bufferSize),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// C is the event stream. It is closed when the engine shuts down.
func (e *Engine) C() <-chan Event {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	go e.loop()
}

// Shutdown stops the loop and waits for it to drain.
func (e *Engine) Shutdown() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

// StartRun arms and starts a run. For the interval engine duration/mode
// describe the countdown; for the task engine use StartTask.
func (e *Engine) StartRun(duration int, mode Mode, rate float64) error {
	return e.send(command{kind: cmdStart, duration: duration, mode: mode, rate: rate})
}

// StartTask begins tracking a task from startAt seconds.
func (e *Engine) StartTask(taskID string, startAt int, rate float64) error {
	return e.send(command{kind: cmdStart, taskID: taskID, startAt: startAt, rate: rate})
}

func (e *Engine) Pause() error {
	return e.send(command{kind: cmdPause})
}

func (e *Engine) Stop() error {
	return e.send(command{kind: cmdStop})
}

func (e *Engine) Reset(duration int, mode Mode) error {
	return e.send(command{kind: cmdReset, duration: duration, mode: mode})
}

func (e *Engine) SetRate(rate float64) error {
	return e.send(command{kind: cmdSetRate, rate: rate})
}

func (e *Engine) send(cmd command) error {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return ErrEngineStopped
	}
	e.mu.Unlock()

	select {
	case e.cmds <- cmd:
		return nil
	case <-e.stopCh:
		return ErrEngineStopped
	}
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)
	defer func() {
		if r := recover(); r != nil {
			// Best effort; never block shutdown on a full buffer.
			select {
			case e.out <- Event{Kind: EventError, Err: fmt.Sprintf("timer loop panic: %v", r)}:
			default:
			}
		}
	}()

	e.emit([]Event{{Kind: EventReady}})

	var tick *time.Timer
	for {
		var tickC <-chan time.Time
		if e.machine.Running() {
			tick = resetTimer(tick, e.interval)
			tickC = tick.C
		} else if tick != nil {
			stopTimer(tick)
		}

		select {
		case cmd := <-e.cmds:
			e.emit(e.machine.apply(cmd))
		case <-tickC:
			e.emit(e.machine.Tick())
		case <-e.stopCh:
			if tick != nil {
				stopTimer(tick)
			}
			return
		}
	}
}

func (e *Engine) emit(events []Event) {
	for _, ev := range events {
		select {
		case e.out <- ev:
		case <-e.stopCh:
			return
		}
	}
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
