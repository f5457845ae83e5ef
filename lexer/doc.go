/*
Package lexer implements a table-driven lexer, interpreting an ATN (see
package atn) at runtime.

A Lexer reads characters from a scanner.CharStream and produces tokens on
demand. For every token it runs a simulation of the ATN of its current mode,
always taking the longest match possible. If two rules match input of the same
length, the rule declared first wins. Rules matching the empty string only
never produce a token.

	a, err := atn.DefaultRegistry().Load(table)  // or: builder.ATN()
	…
	lx := lexer.New(a, scanner.NewCursor("input", "abc def"))
	for tok := lx.NextToken(); tok.TokType() != scanner.EOF; tok = lx.NextToken() {
		…
	}

Lexical errors do not stop tokenization: the offending character is skipped,
reported to the error handler and returned as a token of type scanner.Invalid.
Errors are collected and may be retrieved with Lexer.Errors.

An ATN is immutable and may be shared between many lexers running in parallel.
Every Lexer owns its input, its mode stack and a Simulator with a private cache
of DFA states, therefore a single Lexer must not be used concurrently.

Configuration

The cache of DFA states may be disabled by setting the global configuration key
"lexer-no-dfa-cache" (see package schuko/gconf). Lexers will then compute every
transition from the ATN, which is useful for debugging only.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexer

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'atnlex.lexer'.
func tracer() tracing.Trace {
	return tracing.Select("atnlex.lexer")
}
