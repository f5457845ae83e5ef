package lexer

import (
	"errors"
	"fmt"
	"strings"
)

// Errors of lexers.
var (
	ErrNoViableAlternative  = errors.New("no viable alternative")
	ErrUnexpectedEndOfInput = errors.New("unexpected end of input")
	ErrEmptyModeStack       = errors.New("pop from empty mode stack")
	ErrUnknownMode          = errors.New("unknown lexer mode")
)

// Error is a lexical error. It matches its Kind and its Cause with errors.Is.
type Error struct {
	Kind   error  // ErrNoViableAlternative, ErrEmptyModeStack, …
	Cause  error  // optional
	Text   string // offending input
	Offset int    // rune offset of the error
	Line   int
	Column int
	Mode   int // lexer mode the error occurred in
	Source string
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Source != "" {
		b.WriteString(e.Source)
		b.WriteString(":")
	}
	b.WriteString(fmt.Sprintf("%d:%d: %v", e.Line, e.Column, e.Kind))
	if e.Text != "" {
		b.WriteString(fmt.Sprintf(" at %q", e.Text))
	}
	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(" (%v)", e.Cause))
	}
	return b.String()
}

// Is reports whether target is the kind or the cause of e.
func (e *Error) Is(target error) bool {
	return target == e.Kind || (e.Cause != nil && errors.Is(e.Cause, target))
}

// Unwrap returns the kind of e.
func (e *Error) Unwrap() error {
	return e.Kind
}

// Default error reporting function for lexers
func logError(e error) {
	tracer().Errorf("lexer error: " + e.Error())
}
