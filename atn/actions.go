package atn

import "fmt"

// ActionKind is the kind of a lexer action.
type ActionKind uint8

// Lexer actions are executed when a rule has matched. They are executed in
// order of declaration.
const (
	ChannelAction  ActionKind = iota // put the token on channel Arg
	SkipAction                       // do not emit a token
	MoreAction                       // continue matching, prepending the current text to the next token
	TypeAction                       // set the token type to Arg
	ModeAction                       // switch to mode Arg
	PushModeAction                   // push the current mode and switch to mode Arg
	PopModeAction                    // return to the mode on top of the mode stack

	maxActionKind = PopModeAction
)

// Action is a lexer action. Arg is a channel, mode or token type, depending on Kind.
type Action struct {
	Kind ActionKind
	Arg  int
}

// HasArg is true for action kinds which take an argument.
func (k ActionKind) HasArg() bool {
	switch k {
	case ChannelAction, TypeAction, ModeAction, PushModeAction:
		return true
	}
	return false
}

func (k ActionKind) String() string {
	switch k {
	case ChannelAction:
		return "channel"
	case SkipAction:
		return "skip"
	case MoreAction:
		return "more"
	case TypeAction:
		return "type"
	case ModeAction:
		return "mode"
	case PushModeAction:
		return "pushMode"
	case PopModeAction:
		return "popMode"
	}
	return fmt.Sprintf("action(%d)", int(k))
}

func (a Action) String() string {
	if a.Kind.HasArg() {
		return fmt.Sprintf("%s(%d)", a.Kind, a.Arg)
	}
	return a.Kind.String()
}
