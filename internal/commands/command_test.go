package commands

import (
	"errors"
	"testing"
)

func assertErrCode(t *testing.T, err error, code ErrorCode) {
	t.Helper()
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected CommandError, got %v", err)
	}
	if cmdErr.Code != code {
		t.Fatalf("expected code %q, got %q", code, cmdErr.Code)
	}
}

func TestParseAdd(t *testing.T) {
	cmd, err := Parse("/add read chapter 4")
	if err != nil {
		t.Fatalf("parse add: %v", err)
	}
	if cmd.Type != TypeAdd || cmd.Add.Text != "read chapter 4" {
		t.Fatalf("unexpected command: %+v", cmd)
	}

	_, err = Parse("add")
	assertErrCode(t, err, ErrCodeInvalidArgument)
}

func TestParseEmptyAndUnknown(t *testing.T) {
	_, err := Parse("   ")
	assertErrCode(t, err, ErrCodeEmptyInput)

	_, err = Parse("/")
	assertErrCode(t, err, ErrCodeEmptyInput)

	_, err = Parse("frobnicate now")
	assertErrCode(t, err, ErrCodeUnknownCommand)
}

func TestParsePriority(t *testing.T) {
	cmd, err := Parse("prio 2 HIGH")
	if err != nil {
		t.Fatalf("parse prio: %v", err)
	}
	if cmd.Priority.Target != "2" || cmd.Priority.Priority != "high" {
		t.Fatalf("unexpected args: %+v", cmd.Priority)
	}

	_, err = Parse("prio 2 urgent")
	assertErrCode(t, err, ErrCodeInvalidArgument)
}

func TestParseXP(t *testing.T) {
	cmd, err := Parse("xp 12.5")
	if err != nil {
		t.Fatalf("parse xp: %v", err)
	}
	if cmd.XP.Amount != 12.5 {
		t.Fatalf("unexpected amount: %v", cmd.XP.Amount)
	}

	_, err = Parse("xp lots")
	assertErrCode(t, err, ErrCodeInvalidArgument)
}

func TestParseSettings(t *testing.T) {
	cmd, err := Parse("settings work=30 short=10 autostart=on")
	if err != nil {
		t.Fatalf("parse settings: %v", err)
	}
	s := cmd.Settings
	if s.Work == nil || *s.Work != 30 {
		t.Fatalf("unexpected work: %+v", s)
	}
	if s.ShortBreak == nil || *s.ShortBreak != 10 {
		t.Fatalf("unexpected short: %+v", s)
	}
	if s.Autostart == nil || !*s.Autostart {
		t.Fatalf("unexpected autostart: %+v", s)
	}
	if s.LongBreak != nil || s.Sessions != nil || s.Notifications != nil {
		t.Fatalf("expected untouched fields nil: %+v", s)
	}

	_, err = Parse("settings work=0")
	assertErrCode(t, err, ErrCodeInvalidArgument)

	_, err = Parse("settings speed=9")
	assertErrCode(t, err, ErrCodeInvalidArgument)
}

func TestExecuteDispatchesAndChecksHandlers(t *testing.T) {
	cmd, err := Parse("done 3")
	if err != nil {
		t.Fatalf("parse done: %v", err)
	}

	_, err = Execute(cmd, Handlers{})
	assertErrCode(t, err, ErrCodeHandlerMissing)

	called := ""
	result, err := Execute(cmd, Handlers{
		Done: func(args DoneArgs) (Result, error) {
			called = args.Target
			return Result{Message: "done"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute done: %v", err)
	}
	if called != "3" || result.Message != "done" {
		t.Fatalf("unexpected dispatch: called=%q result=%+v", called, result)
	}
}
