/*
Command atnlex provides an interactive command line tool to experiment with
table-driven lexers. Every line entered is tokenized and the tokens are
printed as a tree, grouped by input line.

The lexer is either built from a default grammar

	ID : [a-z]+ ;
	WS : [ \n]+ -> channel(HIDDEN) ;

or loaded from a serialized table (flag -table). The default table may be
written to a file with flag -emit, and the automaton may be exported in
Graphviz Dot format with flag -dot. With flag -oracle, every input is
tokenized a second time by lexmachine, and differences are reported.

Commands are prefixed by a colon: ":dump" traces the automaton, ":quit"
exits.


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'atnlex.cli'
func tracer() tracing.Trace {
	return tracing.Select("atnlex.cli")
}
