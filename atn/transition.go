package atn

import (
	"fmt"
	"unicode/utf8"
)

// TransitionKind is the tag of a transition variant.
type TransitionKind uint8

const (
	Epsilon    TransitionKind = iota // consumes no input
	Atom                             // matches a single character
	RangeMatch                       // matches a character in [Lo,Hi]
	SetMatch                         // matches a character in an interval set
	NotSet                           // matches a character not in an interval set
	Wildcard                         // matches any character

	maxTransitionKind = Wildcard
)

func (k TransitionKind) String() string {
	switch k {
	case Epsilon:
		return "ε"
	case Atom:
		return "atom"
	case RangeMatch:
		return "range"
	case SetMatch:
		return "set"
	case NotSet:
		return "~set"
	case Wildcard:
		return "any"
	}
	return fmt.Sprintf("transition-kind(%d)", int(k))
}

// Transition is an edge between two ATN states. Depending on its kind,
// Lo/Hi or Set are significant:
//
//    Atom:            Lo is the character to match
//    RangeMatch:      Lo…Hi is an inclusive range of characters
//    SetMatch/NotSet: Set is an index into ATN.Sets
//
type Transition struct {
	Kind   TransitionKind
	Target int  // ID of the target state
	Lo, Hi rune // character bounds
	Set    int  // interval set index
}

// EpsilonTo creates an epsilon transition.
func EpsilonTo(target int) Transition {
	return Transition{Kind: Epsilon, Target: target}
}

// AtomTo creates a transition matching character r.
func AtomTo(target int, r rune) Transition {
	return Transition{Kind: Atom, Target: target, Lo: r, Hi: r}
}

// RangeTo creates a transition matching characters in [lo,hi].
func RangeTo(target int, lo, hi rune) Transition {
	return Transition{Kind: RangeMatch, Target: target, Lo: lo, Hi: hi}
}

// IsEpsilon is true for transitions which do not consume input.
func (t Transition) IsEpsilon() bool {
	return t.Kind == Epsilon
}

// Matches returns true if t may be taken on input character r. Sets are
// resolved against a. Negative characters (EOF) never match.
func (t Transition) Matches(r rune, a *ATN) bool {
	if r < 0 || r > utf8.MaxRune {
		return false
	}
	switch t.Kind {
	case Atom:
		return r == t.Lo
	case RangeMatch:
		return t.Lo <= r && r <= t.Hi
	case SetMatch:
		return a.Sets[t.Set].Contains(r)
	case NotSet:
		return !a.Sets[t.Set].Contains(r)
	case Wildcard:
		return true
	}
	return false
}

func (t Transition) String() string {
	switch t.Kind {
	case Atom:
		return fmt.Sprintf("%q→%d", t.Lo, t.Target)
	case RangeMatch:
		return fmt.Sprintf("%q…%q→%d", t.Lo, t.Hi, t.Target)
	case SetMatch, NotSet:
		return fmt.Sprintf("%s#%d→%d", t.Kind, t.Set, t.Target)
	}
	return fmt.Sprintf("%s→%d", t.Kind, t.Target)
}
