package lexer

import "fmt"

// Mode returns the current lexer mode.
func (lx *Lexer) Mode() int {
	return lx.mode
}

// ModeName returns the name of the current lexer mode.
func (lx *Lexer) ModeName() string {
	return lx.atn.Modes[lx.mode].Name
}

// SetMode switches to another mode, leaving the mode stack untouched.
func (lx *Lexer) SetMode(m int) error {
	if err := lx.checkMode(m); err != nil {
		return err
	}
	tracer().Debugf("lexer switches to mode %s", lx.atn.Modes[m].Name)
	lx.mode = m
	return nil
}

// PushMode pushes the current mode onto the mode stack and switches to
// another mode.
func (lx *Lexer) PushMode(m int) error {
	if err := lx.checkMode(m); err != nil {
		return err
	}
	tracer().Debugf("lexer pushes mode %s", lx.atn.Modes[m].Name)
	lx.modes.Push(lx.mode)
	lx.mode = m
	return nil
}

// PopMode returns to the mode pushed last and returns it. If the mode stack is
// empty, the current mode remains active and PopMode returns an error wrapping
// ErrEmptyModeStack.
func (lx *Lexer) PopMode() (int, error) {
	m, ok := lx.modes.Pop()
	if !ok {
		pos := lx.input.Position()
		return lx.mode, &Error{
			Kind:   ErrEmptyModeStack,
			Offset: pos.Offset,
			Line:   pos.Line,
			Column: pos.Column,
			Mode:   lx.mode,
			Source: lx.input.SourceName(),
		}
	}
	lx.mode = m.(int)
	tracer().Debugf("lexer pops to mode %s", lx.atn.Modes[lx.mode].Name)
	return lx.mode, nil
}

// ModeStackDepth returns the number of modes pushed.
func (lx *Lexer) ModeStackDepth() int {
	return lx.modes.Size()
}

func (lx *Lexer) checkMode(m int) error {
	if m < 0 || m >= len(lx.atn.Modes) {
		return fmt.Errorf("%w: %d", ErrUnknownMode, m)
	}
	return nil
}
