package lexer

import (
	"errors"
	"fmt"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/hashicorp/go-multierror"
	"github.com/npillmayer/atnlex"
	"github.com/npillmayer/atnlex/atn"
	"github.com/npillmayer/atnlex/scanner"
)

// State is the state of a Lexer.
type State int

// States of a lexer. A lexer is Ready between tokens, Matching while the
// simulator runs, and Emitting while a token is constructed. It is Invalid
// after a failed match, until the offending character has been skipped.
// A lexer is Exhausted as soon as the input is consumed completely.
const (
	Ready State = iota
	Matching
	Emitting
	Exhausted
	Invalid
)

func (s State) String() string {
	switch s {
	case Ready:
		return "Ready"
	case Matching:
		return "Matching"
	case Emitting:
		return "Emitting"
	case Exhausted:
		return "Exhausted"
	case Invalid:
		return "Invalid"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// AllChannels is the channel filter of lexers emitting tokens of every channel.
const AllChannels = -1

// Lexer is a table-driven lexer. Create one with New.
type Lexer struct {
	atn     *atn.ATN
	sim     *Simulator
	input   scanner.CharStream
	begin   scanner.Mark // start of input, for Reset
	factory scanner.TokenFactory
	channel int // emit only tokens of this channel, or AllChannels
	mode    int
	modes   *arraystack.Stack // pushed modes
	state   State
	index   int               // index of next token
	errs    *multierror.Error // all lexical errors so far
	Error   func(error)       // error handler
}

var _ scanner.Tokenizer = (*Lexer)(nil)

// New creates a lexer for an ATN, reading from input. The ATN is shared, not
// copied. The lexer starts in the default mode at the current position of
// input.
func New(a *atn.ATN, input scanner.CharStream, opts ...Option) *Lexer {
	lx := &Lexer{
		atn:     a,
		sim:     NewSimulator(a),
		input:   input,
		begin:   input.Mark(),
		factory: scanner.DefaultTokenFactory,
		channel: AllChannels,
		mode:    atn.DefaultMode,
		modes:   arraystack.New(),
		Error:   logError,
	}
	for _, opt := range opts {
		opt(lx)
	}
	return lx
}

// Option configures a lexer.
type Option func(lx *Lexer)

// OnlyChannel makes a lexer emit tokens of a single channel only.
// Tokens of other channels are dropped, but positions of emitted tokens
// still refer to the complete input.
func OnlyChannel(ch int) Option {
	return func(lx *Lexer) {
		lx.channel = ch
	}
}

// WithTokenFactory sets the token factory of a lexer.
func WithTokenFactory(f scanner.TokenFactory) Option {
	return func(lx *Lexer) {
		if f != nil {
			lx.factory = f
		}
	}
}

// WithErrorHandler sets the error handler of a lexer, see SetErrorHandler.
func WithErrorHandler(h func(error)) Option {
	return func(lx *Lexer) {
		lx.SetErrorHandler(h)
	}
}

// SetErrorHandler sets an error handler for the lexer. Handlers are called
// for every lexical error, in addition to collecting it. A nil handler
// restores the default handler, which logs errors.
func (lx *Lexer) SetErrorHandler(h func(error)) {
	if h == nil {
		lx.Error = logError
		return
	}
	lx.Error = h
}

// ATN returns the automaton of the lexer.
func (lx *Lexer) ATN() *atn.ATN {
	return lx.atn
}

// State returns the current state of the lexer.
func (lx *Lexer) State() State {
	return lx.state
}

// Line returns the current line of the input, starting at 1.
func (lx *Lexer) Line() int {
	return lx.input.Position().Line
}

// Column returns the current column of the input, starting at 0.
func (lx *Lexer) Column() int {
	return lx.input.Position().Column
}

// SourceName returns the name of the input.
func (lx *Lexer) SourceName() string {
	return lx.input.SourceName()
}

// Errors returns all lexical errors since creation or the last Reset,
// or nil.
func (lx *Lexer) Errors() error {
	return lx.errs.ErrorOrNil()
}

// NextToken is part of the Tokenizer interface. At the end of input it
// returns tokens of type scanner.EOF, however often it is called.
func (lx *Lexer) NextToken() atnlex.Token {
	tok, _ := lx.Next()
	return tok
}

// Next returns the next token. For lexical errors, Next returns a token of
// type scanner.Invalid covering the offending character together with an
// *Error. Tokenization may continue after errors.
func (lx *Lexer) Next() (scanner.Token, error) {
	for {
		if lx.state == Exhausted || lx.input.LA(1) == scanner.EOFRune {
			return lx.eofToken(), nil
		}
		lx.state = Ready
		from := lx.input.Position()
		var m Match
		var err error
		typ, channel := atnlex.TokType(0), atn.DefaultChannel
		skip, more := false, true
		for more {
			lx.state = Matching
			m, err = lx.sim.Match(lx.input, lx.mode)
			if err != nil {
				return lx.recover(from, err)
			}
			rule := lx.atn.Rules[m.Rule]
			typ, channel = rule.TokenType, atn.DefaultChannel
			skip, more = false, false
			for _, action := range lx.atn.RuleActions(m.Rule) {
				switch action.Kind {
				case atn.SkipAction:
					skip = true
				case atn.MoreAction:
					more = true
				case atn.ChannelAction:
					channel = action.Arg
				case atn.TypeAction:
					typ = atnlex.TokType(action.Arg)
				case atn.ModeAction:
					if err := lx.SetMode(action.Arg); err != nil {
						lx.report(err)
					}
				case atn.PushModeAction:
					if err := lx.PushMode(action.Arg); err != nil {
						lx.report(err)
					}
				case atn.PopModeAction:
					if _, err := lx.PopMode(); err != nil {
						lx.report(err)
					}
				}
			}
			if skip || lx.input.LA(1) == scanner.EOFRune {
				more = false
			}
		}
		if skip {
			tracer().Debugf("skipping %q", lx.input.Text(from.Offset, lx.input.Index()))
			continue
		}
		lx.state = Emitting
		if lx.channel != AllChannels && channel != lx.channel {
			continue
		}
		tok := lx.factory.Create(scanner.TokenSpec{
			Type:    typ,
			Channel: channel,
			Text:    lx.input.Text(from.Offset, m.Stop),
			Start:   from.Offset,
			Stop:    m.Stop,
			Line:    from.Line,
			Column:  from.Column,
			Mode:    m.Mode,
			Index:   lx.index,
			Source:  lx.input.SourceName(),
		})
		lx.index++
		lx.settle()
		return tok, nil
	}
}

// recover skips the character at the position of a failed match and returns
// an error token for it. Text accumulated by rules with action more is
// dropped.
func (lx *Lexer) recover(from scanner.Position, err error) (scanner.Token, error) {
	lx.state = Invalid
	var lexerr *Error
	if !errors.As(err, &lexerr) {
		lexerr = &Error{Kind: err, Offset: lx.input.Index(), Source: lx.input.SourceName()}
	}
	if from.Offset < lexerr.Offset {
		tracer().Infof("dropping text %q", lx.input.Text(from.Offset, lexerr.Offset))
	}
	pos := lx.input.Position()
	lx.input.Consume()
	lx.report(lexerr)
	tok := lx.factory.Create(scanner.TokenSpec{
		Type:    scanner.Invalid,
		Channel: atn.DefaultChannel,
		Text:    lx.input.Text(pos.Offset, lx.input.Index()),
		Start:   pos.Offset,
		Stop:    lx.input.Index(),
		Line:    pos.Line,
		Column:  pos.Column,
		Mode:    lx.mode,
		Index:   lx.index,
		Source:  lx.input.SourceName(),
	})
	lx.index++
	lx.settle()
	return tok, lexerr
}

// settle moves the lexer from Emitting or Invalid to Ready, or to Exhausted
// if the input is at its end.
func (lx *Lexer) settle() {
	if lx.input.LA(1) == scanner.EOFRune {
		tracer().Debugf("lexer reached end of input")
		lx.state = Exhausted
		return
	}
	lx.state = Ready
}

func (lx *Lexer) report(err error) {
	lx.errs = multierror.Append(lx.errs, err)
	lx.Error(err)
}

func (lx *Lexer) eofToken() scanner.Token {
	if lx.state != Exhausted {
		tracer().Debugf("lexer reached end of input")
		lx.state = Exhausted
	}
	return scanner.MakeEOFToken(lx.input.Position(), lx.index, lx.input.SourceName())
}

// AllTokens reads all remaining tokens up to, but not including, the end of
// input. The error returned collects all lexical errors since creation or the
// last Reset.
func (lx *Lexer) AllTokens() ([]scanner.Token, error) {
	var tokens []scanner.Token
	for {
		tok, _ := lx.Next()
		if tok.IsEOF() {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens, lx.Errors()
}

// Reset rewinds the input to where the lexer started and resets the lexer to
// its initial state. Tokenizing again yields an identical token sequence.
func (lx *Lexer) Reset() {
	lx.input.Rewind(lx.begin)
	lx.mode = atn.DefaultMode
	lx.modes.Clear()
	lx.state = Ready
	lx.index = 0
	lx.errs = nil
}
