/*
Package atnlex is a table-driven lexer toolbox.

ATNLex interprets lexer automata at runtime. A lexer grammar is compiled into
an augmented transition network (ATN), which may be serialized into a compact
sequence of 16-bit code units. At runtime the serialized table is
deserialized once and walked by a single generic simulator, producing tokens
with maximal-munch semantics. Package structure is as follows:

■ atn: Package atn implements the automaton: states, tagged transitions,
lexer modes and actions, together with a grammar builder, the table
serializer/deserializer and a process-wide table registry.

■ scanner: Package scanner defines tokens, token factories and input cursors,
together with the Tokenizer interface consumed by parsers.

■ lexer: Package lexer implements the transition simulator and the lexer
driver, which handles lexical modes, channels and error recovery.

■ cmd/atnlex: An interactive command line tool to experiment with lexer tables.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package atnlex
