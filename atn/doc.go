/*
Package atn implements lexer automata, i.e. augmented transition networks (ATNs)
for lexical analysis.

An ATN is a directed graph of states. Every lexer rule of a grammar is compiled
into a sub-network, starting at a rule-start state and ending in a rule-stop
state, which is the accepting state for the rule. Every lexer mode has a single
start state, which branches into the start states of all rules of this mode.

Transitions between states are tagged variants: they are either guarded by a
single character, an inclusive character range, an interval set (possibly
negated), a wildcard, or are epsilon-transitions, consuming no input at all.

Building an Automaton

Automata are specified using a builder object. Clients add rules, consisting
of a name and a pattern expression, and optionally lexer actions.

Example:

    b := atn.NewBuilder("SimpleLR")
    b.Rule("ID", atn.Plus(atn.Range('a', 'z')))                 // ID : [a-z]+ ;
    b.Rule("WS", atn.Plus(atn.Set(' ', '\n'))).Channel("HIDDEN") // WS : [ \n]+ -> channel(HIDDEN) ;
    a, err := b.ATN()

Serialized Tables

An ATN may be serialized to a sequence of 16-bit code units, which is the
format emitted by generators and consumed at runtime:

    data, err := atn.Serialize(a)
    …
    a, err = atn.Deserialize(data)  // fails with ErrVersionMismatch or ErrMalformedTable

Deserialization is performed once per table. A Registry caches deserialized
tables by a structural fingerprint, so that concurrent lexers may share a
single, immutable automaton:

    reg := atn.NewRegistry()
    a, err := reg.Load(data)

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package atn

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'atnlex.atn'.
func tracer() tracing.Trace {
	return tracing.Select("atnlex.atn")
}
