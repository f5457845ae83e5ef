/*
Package scanner defines tokens, token factories and input cursors for lexers,
together with an interface for tokenizers to be used with parsers.

Lexers of package lexer read their input from a CharStream. Cursor is the
default implementation, providing random access to the runes of an input
string, marks for backtracking, and line/column tracking.

    input := scanner.NewCursor("my input", "abc def")
    m := input.Mark()
    input.Consume()      // consume 'a'
    input.Rewind(m)      // back to 'a'

Tokens are created by a TokenFactory. The default factory creates tokens
which carry their exact lexeme, their channel and their position.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"github.com/npillmayer/atnlex"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'atnlex.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("atnlex.scanner")
}

// Reserved token types. Token types of lexer rules start at 1.
const (
	EOF     atnlex.TokType = -1 // end of input
	Invalid atnlex.TokType = 0  // lexical error
)

// EOFRune is returned by CharStream.LA when looking beyond the end of input.
const EOFRune rune = -1

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() atnlex.Token
	SetErrorHandler(func(error))
}
