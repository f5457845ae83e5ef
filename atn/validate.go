package atn

import (
	"fmt"
	"unicode/utf8"

	"github.com/emirpasic/gods/stacks/arraystack"
)

// Validate checks the internal consistency of an ATN. It returns an error
// wrapping ErrMalformedTable for
//
//    - references to states, sets, actions, modes or channels out of range
//    - character ranges with lo > hi
//    - interval sets which are unsorted, overlapping or adjacent
//    - states of an unexpected kind, e.g. a rule starting at a basic state
//    - rule stop states with outgoing transitions
//    - modes without a single start state
//    - states not reachable from any mode start state.
//
func (a *ATN) Validate() error {
	if len(a.Modes) == 0 {
		return malformed("no lexer modes")
	}
	if len(a.Channels) < 2 {
		return malformed("predefined channels missing")
	}
	for i, s := range a.States {
		if s == nil || s.ID != i {
			return malformed("state %d has inconsistent ID", i)
		}
		if s.Kind > maxStateKind {
			return malformed("state %d has unknown kind %d", i, s.Kind)
		}
		if s.Kind == ModeStart && s.Rule != -1 || s.Kind != ModeStart && (s.Rule < 0 || s.Rule >= len(a.Rules)) {
			return malformed("state %d references rule %d", i, s.Rule)
		}
		if s.Kind == RuleStop && len(s.Transitions) > 0 {
			return malformed("rule stop state %d has outgoing transitions", i)
		}
		for _, t := range s.Transitions {
			if err := a.validateTransition(s, t); err != nil {
				return err
			}
		}
	}
	for i, set := range a.Sets {
		for j, iv := range set {
			if iv.Lo > iv.Hi || iv.Lo < 0 || iv.Hi > utf8.MaxRune {
				return malformed("set %d has invalid interval %v", i, iv)
			}
			if j > 0 && iv.Lo <= set[j-1].Hi+1 {
				return malformed("set %d is not normalized at interval %v", i, iv)
			}
		}
	}
	for i, act := range a.Actions {
		if err := a.validateAction(i, act); err != nil {
			return err
		}
	}
	for i, r := range a.Rules {
		if a.kindOf(r.Start) != RuleStart || a.States[r.Start].Rule != i {
			return malformed("rule %d does not start at a rule start state", i)
		}
		if a.kindOf(r.Stop) != RuleStop || a.States[r.Stop].Rule != i {
			return malformed("rule %d does not stop at a rule stop state", i)
		}
		if r.Mode < 0 || r.Mode >= len(a.Modes) {
			return malformed("rule %d references mode %d", i, r.Mode)
		}
		if r.TokenType < MinUserTokenType || r.TokenType > a.MaxTokenType {
			return malformed("rule %d has token type %d out of range", i, r.TokenType)
		}
		for _, inx := range r.Actions {
			if inx < 0 || inx >= len(a.Actions) {
				return malformed("rule %d references action %d", i, inx)
			}
		}
	}
	starts := 0
	for _, s := range a.States {
		if s.Kind == ModeStart {
			starts++
		}
	}
	if starts != len(a.Modes) {
		return malformed("%d mode start states for %d modes", starts, len(a.Modes))
	}
	for i, m := range a.Modes {
		if a.kindOf(m.Start) != ModeStart {
			return malformed("mode %d does not start at a mode start state", i)
		}
		for j := 0; j < i; j++ {
			if a.Modes[j].Start == m.Start {
				return malformed("modes %d and %d share a start state", j, i)
			}
		}
	}
	if unreached := a.unreachable(); unreached >= 0 {
		return malformed("state %d is unreachable", unreached)
	}
	return nil
}

func (a *ATN) validateTransition(s *State, t Transition) error {
	if t.Kind > maxTransitionKind {
		return malformed("state %d has transition of unknown kind %d", s.ID, t.Kind)
	}
	if t.Target < 0 || t.Target >= len(a.States) {
		return malformed("state %d has transition to state %d out of range", s.ID, t.Target)
	}
	switch t.Kind {
	case Atom, RangeMatch:
		if t.Lo > t.Hi || t.Lo < 0 || t.Hi > utf8.MaxRune {
			return malformed("state %d has invalid range %q…%q", s.ID, t.Lo, t.Hi)
		}
	case SetMatch, NotSet:
		if t.Set < 0 || t.Set >= len(a.Sets) {
			return malformed("state %d references set %d out of range", s.ID, t.Set)
		}
	}
	return nil
}

func (a *ATN) validateAction(i int, act Action) error {
	var limit int
	switch act.Kind {
	case ChannelAction:
		limit = len(a.Channels)
	case ModeAction, PushModeAction:
		limit = len(a.Modes)
	case TypeAction:
		if act.Arg < MinUserTokenType || act.Arg > int(a.MaxTokenType) {
			return malformed("action %d has token type %d out of range", i, act.Arg)
		}
		return nil
	case SkipAction, MoreAction, PopModeAction:
		return nil
	default:
		return malformed("action %d has unknown kind %d", i, act.Kind)
	}
	if act.Arg < 0 || act.Arg >= limit {
		return malformed("action %s references %d out of range", act.Kind, act.Arg)
	}
	return nil
}

func (a *ATN) kindOf(id int) StateKind {
	if id < 0 || id >= len(a.States) {
		return maxStateKind + 1
	}
	return a.States[id].Kind
}

// unreachable returns the first state not reachable from a mode start state,
// or -1.
func (a *ATN) unreachable() int {
	seen := make([]bool, len(a.States))
	stack := arraystack.New()
	for _, m := range a.Modes {
		seen[m.Start] = true
		stack.Push(m.Start)
	}
	for !stack.Empty() {
		top, _ := stack.Pop()
		for _, t := range a.States[top.(int)].Transitions {
			if !seen[t.Target] {
				seen[t.Target] = true
				stack.Push(t.Target)
			}
		}
	}
	for id, ok := range seen {
		if !ok {
			return id
		}
	}
	return -1
}

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedTable, fmt.Sprintf(format, args...))
}
