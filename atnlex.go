package atnlex

import "fmt"

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. Token types are defined by the
// rules of a lexer grammar; a few reserved values are defined in package scanner.
type TokType int

// TokTypeStringer is a type to be provided by a lexer to be able
// to print out token categories.
type TokTypeStringer func(TokType) string

// Tokens represent input tokens. They are produced by a lexer and
// reflect terminals in a language.
//
// An example would be a token for an identifier:
//
//    TokType = ID          // rule index of the lexer rule which matched
//    Lexeme  = "abc"       // lexeme how it appeared in the input stream
//    Value   = nil         // no value set by the lexer
//    Span    = 67…70       // occured from rune position 67 in the input stream
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a run of input positions.
// A span denotes a start position and the position just behind the end.
// For tokens produced by the lexers of this module, positions are rune offsets.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
