package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add      func(AddArgs) (Result, error)
	Done     func(DoneArgs) (Result, error)
	Delete   func(DeleteArgs) (Result, error)
	Priority func(PriorityArgs) (Result, error)
	Edit     func(EditArgs) (Result, error)
	XP       func(XPArgs) (Result, error)
	Settings func(SettingsArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missingHandler("add")
		}
		return handlers.Add(*cmd.Add)
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, missingHandler("done")
		}
		return handlers.Done(*cmd.Done)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, missingHandler("del")
		}
		return handlers.Delete(*cmd.Delete)
	case TypePriority:
		if handlers.Priority == nil {
			return Result{}, missingHandler("prio")
		}
		return handlers.Priority(*cmd.Priority)
	case TypeEdit:
		if handlers.Edit == nil {
			return Result{}, missingHandler("edit")
		}
		return handlers.Edit(*cmd.Edit)
	case TypeXP:
		if handlers.XP == nil {
			return Result{}, missingHandler("xp")
		}
		return handlers.XP(*cmd.XP)
	case TypeSettings:
		if handlers.Settings == nil {
			return Result{}, missingHandler("settings")
		}
		return handlers.Settings(*cmd.Settings)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missingHandler(name string) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: name + " handler not configured"}
}
