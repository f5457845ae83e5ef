package atn

import (
	"strconv"

	"github.com/npillmayer/atnlex"
)

// Vocabulary maps token types to names.
type Vocabulary struct {
	names []string
}

// NewVocabulary creates a vocabulary from symbolic names, indexed by token type.
func NewVocabulary(names []string) *Vocabulary {
	return &Vocabulary{names: append([]string(nil), names...)}
}

// SymbolicName returns the name of the rule or token declaration for a token
// type, or "" if none is known. Negative token types are end-of-stream markers.
func (v *Vocabulary) SymbolicName(t atnlex.TokType) string {
	if t < 0 {
		return "EOF"
	}
	if int(t) < len(v.names) {
		return v.names[t]
	}
	return ""
}

// DisplayName returns a printable name for a token type, falling back to the
// numeric value.
func (v *Vocabulary) DisplayName(t atnlex.TokType) string {
	if name := v.SymbolicName(t); name != "" {
		return name
	}
	return strconv.Itoa(int(t))
}

// Stringer returns v.DisplayName as a token type stringer.
func (v *Vocabulary) Stringer() atnlex.TokTypeStringer {
	return v.DisplayName
}

// TokenType returns the token type for a symbolic name, or 0 (the type of
// invalid tokens) if the name is unknown.
func (v *Vocabulary) TokenType(name string) atnlex.TokType {
	for t, n := range v.names {
		if t > 0 && n == name {
			return atnlex.TokType(t)
		}
	}
	return 0
}

// Len returns the number of token types, including the invalid type 0.
func (v *Vocabulary) Len() int {
	return len(v.names)
}
