package scanner

import (
	"github.com/npillmayer/atnlex"
)

// TokenSpec carries everything a token factory needs to know about a match.
type TokenSpec struct {
	Type        atnlex.TokType
	Channel     int
	Text        string
	Start, Stop int // rune offsets, Stop is exclusive
	Line        int
	Column      int
	Mode        int
	Index       int
	Source      string
}

// TokenFactory creates tokens from matches. Factories have to be deterministic.
type TokenFactory interface {
	Create(spec TokenSpec) Token
}

// TokenFactoryFunc is an adapter to use a plain function as a TokenFactory.
type TokenFactoryFunc func(spec TokenSpec) Token

// Create calls f(spec).
func (f TokenFactoryFunc) Create(spec TokenSpec) Token {
	return f(spec)
}

// CommonTokenFactory is the default token factory. It may convert lexemes
// to token values, using a converter per token type.
type CommonTokenFactory struct {
	Converters map[atnlex.TokType]func(lexeme string) interface{}
}

var _ TokenFactory = CommonTokenFactory{}

// DefaultTokenFactory is a CommonTokenFactory without converters.
var DefaultTokenFactory TokenFactory = CommonTokenFactory{}

// Create is part of interface TokenFactory.
func (f CommonTokenFactory) Create(spec TokenSpec) Token {
	tok := Token{
		kind:    spec.Type,
		channel: spec.Channel,
		lexeme:  spec.Text,
		span:    atnlex.Span{uint64(spec.Start), uint64(spec.Stop)},
		line:    spec.Line,
		column:  spec.Column,
		index:   spec.Index,
		mode:    spec.Mode,
		source:  spec.Source,
	}
	if conv, ok := f.Converters[spec.Type]; ok && conv != nil {
		tok.Val = conv(spec.Text)
	}
	return tok
}
