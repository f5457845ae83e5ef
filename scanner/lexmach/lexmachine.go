package lexmach

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/npillmayer/atnlex"
	"github.com/npillmayer/atnlex/atn"
	"github.com/npillmayer/atnlex/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// tracer traces with key 'atnlex.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("atnlex.scanner")
}

// ErrUnsupportedRule is returned for rules which cannot be expressed with lexmachine.
var ErrUnsupportedRule = errors.New("rule not supported by lexmachine")

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
	Name  string
}

// NewLMAdapter creates a new lexmachine adapter for the rules of the default
// mode of a lexer grammar.
//
// NewLMAdapter will return an error if the grammar is invalid, if it contains
// rules lexmachine cannot handle, or if compiling the DFA failed.
func NewLMAdapter(b *atn.Builder) (*LMAdapter, error) {
	a, err := b.ATN()
	if err != nil {
		return nil, err
	}
	specs, err := b.RuleSpecs()
	if err != nil {
		return nil, err
	}
	adapter := &LMAdapter{Name: a.Name}
	adapter.Lexer = lexmachine.NewLexer()
	for _, spec := range specs {
		if spec.Mode != atn.DefaultModeName {
			tracer().Infof("lexmachine adapter ignores rule %s of mode %s", spec.Name, spec.Mode)
			continue
		}
		action, err := ruleAction(a, spec)
		if err != nil {
			return nil, err
		}
		tracer().Debugf("lexmachine rule %s = /%s/", spec.Name, spec.Pattern.Regex())
		adapter.Lexer.Add([]byte(spec.Pattern.Regex()), action)
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

func ruleAction(a *atn.ATN, spec atn.RuleSpec) (lexmachine.Action, error) {
	tokType, channel := spec.TokenType, atn.DefaultChannel
	for _, act := range spec.Actions {
		switch act.Kind {
		case atn.SkipAction:
			return Skip, nil
		case atn.ChannelAction:
			channel = a.ChannelIndex(act.Name)
		case atn.TypeAction:
			tokType = a.Vocabulary().TokenType(act.Name)
		default:
			return nil, fmt.Errorf("%w: %s has action %s", ErrUnsupportedRule, spec.Name, act.Kind)
		}
	}
	return MakeToken(int(tokType), channel), nil
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{
		scanner: s,
		input:   []byte(input),
		cursor:  scanner.NewCursor(lm.Name, input),
		Error:   logError,
	}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	input   []byte
	cursor  *scanner.Cursor // for line and column information
	index   int             // number of tokens produced
	tc, rc  int             // byte offset and corresponding rune offset
	Error   func(error)
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// Default error reporting function for lexmachine-based scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// NextToken is part of the Tokenizer interface.
func (lms *LMScanner) NextToken() atnlex.Token {
	return lms.Next()
}

// Next is like NextToken, but returns a concrete token type.
func (lms *LMScanner) Next() scanner.Token {
	if lms.scanner == nil {
		return scanner.MakeEOFToken(scanner.Position{Line: 1}, 0, "")
	}
	tok, err, eof := lms.scanner.Next()
	if err != nil {
		lms.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			// skip a single character and report it as invalid
			_, size := utf8.DecodeRune(lms.input[ui.StartTC:])
			lms.scanner.TC = ui.StartTC + size
			return lms.makeToken(scanner.Invalid, atn.DefaultChannel, ui.StartTC, lms.input[ui.StartTC:ui.StartTC+size])
		}
		return lms.Next()
	}
	if eof {
		pos := lms.cursor.PositionOf(lms.cursor.Size())
		return scanner.MakeEOFToken(pos, lms.index, lms.cursor.SourceName())
	}
	tracer().Debugf("tok is %T | %v", tok, tok)
	token := tok.(*lexmachine.Token)
	return lms.makeToken(atnlex.TokType(token.Type), token.Value.(int), token.TC, token.Lexeme)
}

func (lms *LMScanner) makeToken(typ atnlex.TokType, channel int, tc int, lexeme []byte) scanner.Token {
	start := lms.runeOffset(tc)
	stop := start + utf8.RuneCount(lexeme)
	pos := lms.cursor.PositionOf(start)
	tok := scanner.DefaultTokenFactory.Create(scanner.TokenSpec{
		Type:    typ,
		Channel: channel,
		Text:    string(lexeme),
		Start:   start,
		Stop:    stop,
		Line:    pos.Line,
		Column:  pos.Column,
		Index:   lms.index,
		Source:  lms.cursor.SourceName(),
	})
	lms.index++
	return tok
}

// runeOffset converts a byte offset to a rune offset. Offsets are
// requested in increasing order.
func (lms *LMScanner) runeOffset(tc int) int {
	if tc < lms.tc {
		lms.tc, lms.rc = 0, 0
	}
	lms.rc += utf8.RuneCount(lms.input[lms.tc:tc])
	lms.tc = tc
	return lms.rc
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token
// of type id on a given channel.
func MakeToken(id int, channel int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, channel, m), nil
	}
}
