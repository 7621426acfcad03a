package timer

import "testing"

func collectRun(t *testing.T, m *IntervalMachine, ticks int) []Event {
	t.Helper()
	out := make([]Event, 0)
	for i := 0; i < ticks; i++ {
		out = append(out, m.Tick()...)
	}
	return out
}

func TestWorkRunAwardsPerTickAndCompletesOnce(t *testing.T) {
	m := NewIntervalMachine()
	m.Start(5, ModeWork, 0.5)

	events := collectRun(t, m, 6)

	awards := 0
	completes := 0
	ticks := make([]int, 0)
	for _, ev := range events {
		switch ev.Kind {
		case EventAwardXP:
			awards++
			if ev.Source != "Pomodoro Focus" {
				t.Fatalf("unexpected award source: %q", ev.Source)
			}
			if ev.Amount != 0.5 {
				t.Fatalf("unexpected award amount: %v", ev.Amount)
			}
		case EventComplete:
			completes++
			if ev.Mode != ModeWork {
				t.Fatalf("expected work completion, got %q", ev.Mode)
			}
		case EventTick:
			ticks = append(ticks, ev.TimeLeft)
		}
	}
	if awards != 5 {
		t.Fatalf("expected 5 awards, got %d", awards)
	}
	if completes != 1 {
		t.Fatalf("expected 1 completion, got %d", completes)
	}
	want := []int{4, 3, 2, 1, 0}
	if len(ticks) != len(want) {
		t.Fatalf("expected %d ticks, got %v", len(want), ticks)
	}
	for i, v := range want {
		if ticks[i] != v {
			t.Fatalf("tick %d: expected timeLeft %d, got %d", i, v, ticks[i])
		}
	}
	if m.Running() {
		t.Fatal("expected machine stopped after completion")
	}
	if m.Mode() != ModeNone {
		t.Fatalf("expected mode cleared after completion, got %q", m.Mode())
	}
}

func TestBreakRunNeverAwardsXP(t *testing.T) {
	for _, mode := range []Mode{ModeShortBreak, ModeLongBreak} {
		m := NewIntervalMachine()
		m.Start(3, mode, 1.0)
		for _, ev := range collectRun(t, m, 4) {
			if ev.Kind == EventAwardXP {
				t.Fatalf("break mode %q awarded XP", mode)
			}
		}
	}
}

func TestPauseFreezesWithoutEvents(t *testing.T) {
	m := NewIntervalMachine()
	m.Start(10, ModeWork, 1.0)
	m.Tick()
	m.Tick()
	m.Pause()

	if m.Running() {
		t.Fatal("expected paused machine")
	}
	if m.TimeLeft() != 8 {
		t.Fatalf("expected timeLeft frozen at 8, got %d", m.TimeLeft())
	}
	if events := m.Tick(); len(events) != 0 {
		t.Fatalf("expected no events while paused, got %v", events)
	}
}

func TestResetArmsPausedAndEmitsSyncTick(t *testing.T) {
	m := NewIntervalMachine()
	m.Start(10, ModeWork, 1.0)
	m.Tick()

	events := m.Reset(300, ModeShortBreak)
	if len(events) != 1 || events[0].Kind != EventTick {
		t.Fatalf("expected single sync tick, got %v", events)
	}
	if events[0].TimeLeft != 300 || events[0].Mode != ModeShortBreak {
		t.Fatalf("unexpected sync tick payload: %+v", events[0])
	}
	if m.Running() {
		t.Fatal("expected machine paused after reset")
	}
}

func TestSetRateAffectsSubsequentTicksOnly(t *testing.T) {
	m := NewIntervalMachine()
	m.Start(5, ModeWork, 1.0)

	first := m.Tick()
	m.SetRate(2.0)
	second := m.Tick()

	if first[1].Amount != 1.0 {
		t.Fatalf("expected first award 1.0, got %v", first[1].Amount)
	}
	if second[1].Amount != 2.0 {
		t.Fatalf("expected second award 2.0, got %v", second[1].Amount)
	}
}
