/*
Package lexmach provides an adapter to use the lexmachine scanner generator with
lexer grammars of package atn.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

Lexmachine is initialized from the rules of an atn.Builder: every rule
pattern is rendered as a regular expression (see atn.Expr.Regex) and added
to lexmachine in order of precedence. Lexmachine has no notion of lexical
modes, therefore only rules of the default mode are considered, and rules with
actions more, mode, pushMode or popMode are rejected. Channels and type-actions
are supported.

	b := atn.NewBuilder("SimpleLR")
	b.Rule("ID", atn.Plus(atn.Range('a', 'z')))
	b.Rule("WS", atn.Plus(atn.Set(' ', '\n'))).Channel(atn.HiddenChannelName)
	LM, err := lexmach.NewLMAdapter(b)
	if err != nil {
		// do error handling
	}

A scanner is instantiated for each concrete input sequence.
The scanner implements the scanner.Tokenizer interface.

	scan, err := LM.Scanner("input string to tokenize")
	if err != nil {
		// do error handling
	}

Tokens produced by this adapter are of type scanner.Token and should be
identical to those produced by a lexer.Lexer for the same grammar, which makes
the adapter useful as a reference implementation. Characters no rule matches
are reported to the error handler and returned as tokens of type
scanner.Invalid, one character at a time.

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
