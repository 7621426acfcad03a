package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeDone     Type = "done"
	TypeDelete   Type = "del"
	TypePriority Type = "prio"
	TypeEdit     Type = "edit"
	TypeXP       Type = "xp"
	TypeSettings Type = "settings"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Text string
}

type DoneArgs struct {
	Target string
}

type DeleteArgs struct {
	Target string
}

type PriorityArgs struct {
	Target   string
	Priority string
}

type EditArgs struct {
	Target string
	Text   string
}

type XPArgs struct {
	Amount float64
}

// SettingsArgs carries only the fields present in the command; nil means
// "leave unchanged".
type SettingsArgs struct {
	Work          *int
	ShortBreak    *int
	LongBreak     *int
	Sessions      *int
	Notifications *bool
	Autostart     *bool
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Done     *DoneArgs
	Delete   *DeleteArgs
	Priority *PriorityArgs
	Edit     *EditArgs
	XP       *XPArgs
	Settings *SettingsArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone:
		return parseDone(input, args)
	case TypeDelete:
		return parseDelete(input, args)
	case TypePriority:
		return parsePriority(input, args)
	case TypeEdit:
		return parseEdit(input, args)
	case TypeXP:
		return parseXP(input, args)
	case TypeSettings:
		return parseSettings(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires task text"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Text: text}}, nil
}

func parseDone(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "done requires a task number or id"}
	}
	return Command{Type: TypeDone, Raw: raw, Done: &DoneArgs{Target: args[0]}}, nil
}

func parseDelete(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "del requires a task number or id"}
	}
	return Command{Type: TypeDelete, Raw: raw, Delete: &DeleteArgs{Target: args[0]}}, nil
}

func parsePriority(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "prio requires target and priority"}
	}
	level := strings.ToLower(args[1])
	switch level {
	case "low", "medium", "high":
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown priority: %s", args[1])}
	}
	return Command{Type: TypePriority, Raw: raw, Priority: &PriorityArgs{Target: args[0], Priority: level}}, nil
}

func parseEdit(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "edit requires target and new text"}
	}
	text := strings.TrimSpace(strings.Join(args[1:], " "))
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "edit requires non-empty text"}
	}
	return Command{Type: TypeEdit, Raw: raw, Edit: &EditArgs{Target: args[0], Text: text}}, nil
}

func parseXP(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "xp requires an amount"}
	}
	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid xp amount: %s", args[0])}
	}
	return Command{Type: TypeXP, Raw: raw, XP: &XPArgs{Amount: amount}}, nil
}

func parseSettings(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "settings requires key=value pairs"}
	}
	out := &SettingsArgs{}
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("expected key=value, got: %s", arg)}
		}
		switch strings.ToLower(key) {
		case "work":
			v, err := parsePositiveInt(value)
			if err != nil {
				return Command{}, err
			}
			out.Work = v
		case "short":
			v, err := parsePositiveInt(value)
			if err != nil {
				return Command{}, err
			}
			out.ShortBreak = v
		case "long":
			v, err := parsePositiveInt(value)
			if err != nil {
				return Command{}, err
			}
			out.LongBreak = v
		case "sessions":
			v, err := parsePositiveInt(value)
			if err != nil {
				return Command{}, err
			}
			out.Sessions = v
		case "notify":
			v, err := parseBool(value)
			if err != nil {
				return Command{}, err
			}
			out.Notifications = v
		case "autostart":
			v, err := parseBool(value)
			if err != nil {
				return Command{}, err
			}
			out.Autostart = v
		default:
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown setting: %s", key)}
		}
	}
	return Command{Type: TypeSettings, Raw: raw, Settings: out}, nil
}

func parsePositiveInt(value string) (*int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || v < 1 {
		return nil, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("expected positive integer, got: %s", value)}
	}
	return &v, nil
}

func parseBool(value string) (*bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		v := true
		return &v, nil
	case "0", "false", "no", "off":
		v := false
		return &v, nil
	default:
		return nil, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("expected boolean, got: %s", value)}
	}
}
