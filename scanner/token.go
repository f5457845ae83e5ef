package scanner

import (
	"fmt"
	"strings"

	"github.com/npillmayer/atnlex"
)

// Token is the token type produced by lexers. Tokens are immutable, except
// for Val, which may be set by clients.
type Token struct {
	kind    atnlex.TokType
	channel int
	lexeme  string
	Val     interface{}
	span    atnlex.Span // rune offsets
	line    int         // line of first rune, starting at 1
	column  int         // column of first rune, starting at 0
	index   int         // position within the token stream
	mode    int         // lexer mode the token has been matched in
	source  string
}

var _ atnlex.Token = Token{}

// MakeEOFToken creates an end-of-input token at a given position.
func MakeEOFToken(pos Position, index int, source string) Token {
	return Token{
		kind:   EOF,
		span:   atnlex.Span{uint64(pos.Offset), uint64(pos.Offset)},
		line:   pos.Line,
		column: pos.Column,
		index:  index,
		source: source,
	}
}

func (t Token) TokType() atnlex.TokType {
	return t.kind
}

func (t Token) Value() interface{} {
	return t.Val
}

func (t Token) Lexeme() string {
	return t.lexeme
}

// Span returns the rune offsets (from…to) of the token.
func (t Token) Span() atnlex.Span {
	return t.span
}

// Channel returns the channel of a token.
func (t Token) Channel() int {
	return t.channel
}

// IsHidden is true for tokens not on the default channel.
func (t Token) IsHidden() bool {
	return t.channel != 0
}

// IsEOF is true for the end-of-input token.
func (t Token) IsEOF() bool {
	return t.kind == EOF
}

// Line returns the line of the first character of the token, starting at 1.
func (t Token) Line() int {
	return t.line
}

// Column returns the column of the first character of the token, starting at 0.
func (t Token) Column() int {
	return t.column
}

// Start returns the offset of the first character of the token.
func (t Token) Start() int {
	return int(t.span.From())
}

// Stop returns the offset of the last character of the token. For empty
// tokens, Stop is Start-1.
func (t Token) Stop() int {
	return int(t.span.To()) - 1
}

// Index returns the position of the token within the token stream.
func (t Token) Index() int {
	return t.index
}

// Mode returns the lexer mode active when the token was matched.
func (t Token) Mode() int {
	return t.mode
}

// Source returns the name of the input source.
func (t Token) Source() string {
	return t.source
}

// String formats a token as [@index,start:stop='text',<type>,channel=c,line:column].
// The channel is omitted for default channel tokens.
func (t Token) String() string {
	return t.Format(nil)
}

// Format is like String, using a stringer for the token type.
func (t Token) Format(typename atnlex.TokTypeStringer) string {
	var typ string
	switch {
	case t.kind == EOF:
		typ = "EOF"
	case t.kind == Invalid:
		typ = "INVALID"
	case typename != nil:
		typ = typename(t.kind)
	default:
		typ = fmt.Sprintf("%d", t.kind)
	}
	var ch string
	if t.channel != 0 {
		ch = fmt.Sprintf(",channel=%d", t.channel)
	}
	text := strings.NewReplacer("\n", `\n`, "\r", `\r`, "\t", `\t`).Replace(t.lexeme)
	if t.kind == EOF {
		text = "<EOF>"
	}
	return fmt.Sprintf("[@%d,%d:%d='%s',<%s>%s,%d:%d]", t.index, t.Start(), t.Stop(),
		text, typ, ch, t.line, t.column)
}
