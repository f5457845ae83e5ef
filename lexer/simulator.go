package lexer

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/atnlex/atn"
	"github.com/npillmayer/atnlex/atn/sparse"
	"github.com/npillmayer/atnlex/scanner"
	"github.com/npillmayer/schuko/gconf"
)

// Match is the result of a successful simulation run.
type Match struct {
	Rule  int // index of the matching rule
	Start int // rune offset of the first character matched
	Stop  int // rune offset after the last character matched
	Mode  int // mode the match was found in
}

// Len returns the number of characters matched.
func (m Match) Len() int {
	return m.Stop - m.Start
}

// Simulator runs an ATN on an input stream, finding the longest match of any
// rule of a mode. A Simulator caches DFA states computed during simulation and
// is not safe for concurrent use.
type Simulator struct {
	atn    *atn.ATN
	states []*dfaState       // DFA states, indexed by ID
	index  map[string]int    // DFA state IDs by ATN states
	starts []int             // DFA start state per mode, or -1
	ascii  *sparse.IntMatrix // cached transitions for characters < 128
	wide   map[dfaEdge]int32 // cached transitions for other characters
	cached bool
}

type dfaEdge struct {
	from int
	r    rune
}

// asciiLimit is the column count of the sparse transition matrix.
const asciiLimit = 128

// deadState is the cached target of transitions leading nowhere.
const deadState int32 = -1

// NewSimulator creates a simulator for an ATN.
func NewSimulator(a *atn.ATN) *Simulator {
	sim := &Simulator{
		atn:    a,
		index:  make(map[string]int),
		starts: make([]int, len(a.Modes)),
		ascii:  sparse.NewIntMatrix(asciiLimit, sparse.DefaultNullValue),
		wide:   make(map[dfaEdge]int32),
		cached: !gconf.GetBool("lexer-no-dfa-cache"),
	}
	for m := range sim.starts {
		sim.starts[m] = -1
	}
	return sim
}

// ATN returns the automaton this simulator runs.
func (sim *Simulator) ATN() *atn.ATN {
	return sim.atn
}

// StateCount returns the number of DFA states computed so far.
func (sim *Simulator) StateCount() int {
	return len(sim.states)
}

// Match finds the longest match at the current position of input, considering
// all rules of a mode. Of several rules matching the same length, the rule
// declared first wins. Matches of length zero are never reported.
//
// On success, input is positioned after the match. Otherwise input is left
// unchanged and Match returns an *Error of kind ErrNoViableAlternative. If
// the input ended in the middle of a possible match, the error's cause is
// ErrUnexpectedEndOfInput.
func (sim *Simulator) Match(input scanner.CharStream, mode int) (Match, error) {
	start := input.Mark()
	m := Match{Rule: -1, Start: input.Index(), Mode: mode}
	d := sim.startState(mode)
	if d == nil {
		return m, sim.errorAt(input, ErrUnknownMode, nil, mode)
	}
	var committed scanner.Mark
	atEOF := false
	for {
		r := input.LA(1)
		if r == scanner.EOFRune {
			atEOF = true
			break
		}
		if d = sim.step(d, r); d == nil {
			break
		}
		input.Consume()
		if d.isAccept() {
			m.Rule = d.accept
			m.Stop = input.Index()
			committed = input.Mark()
		}
	}
	if m.Rule < 0 {
		var cause error
		if atEOF && input.Index() > start.Index() {
			cause = ErrUnexpectedEndOfInput
		}
		failed := input.Index()
		input.Rewind(start)
		err := sim.errorAt(input, ErrNoViableAlternative, cause, mode)
		err.Text = input.Text(start.Index(), failed+1)
		return m, err
	}
	input.Rewind(committed)
	tracer().Debugf("match rule %s at %d…%d", sim.atn.Rules[m.Rule].Name, m.Start, m.Stop)
	return m, nil
}

func (sim *Simulator) errorAt(input scanner.CharStream, kind error, cause error, mode int) *Error {
	pos := input.Position()
	return &Error{
		Kind:   kind,
		Cause:  cause,
		Offset: pos.Offset,
		Line:   pos.Line,
		Column: pos.Column,
		Mode:   mode,
		Source: input.SourceName(),
	}
}

// startState returns the DFA start state for a mode, or nil for unknown modes.
func (sim *Simulator) startState(mode int) *dfaState {
	if mode < 0 || mode >= len(sim.starts) {
		return nil
	}
	if sim.starts[mode] < 0 {
		configs := newConfigSet()
		configs.Add(sim.atn.Modes[mode].Start)
		sim.starts[mode] = sim.addState(closure(sim.atn, configs)).id
	}
	return sim.states[sim.starts[mode]]
}

// step returns the DFA state reached from d by consuming r, or nil.
func (sim *Simulator) step(d *dfaState, r rune) *dfaState {
	if sim.cached {
		if target := sim.cachedEdge(d, r); target == deadState {
			return nil
		} else if target != sparse.DefaultNullValue {
			return sim.states[target]
		}
	}
	targets := move(sim.atn, d, r)
	var next *dfaState
	target := deadState
	if !targets.Empty() {
		next = sim.addState(closure(sim.atn, targets))
		target = int32(next.id)
	}
	if sim.cached {
		sim.cacheEdge(d, r, target)
	}
	return next
}

func (sim *Simulator) cachedEdge(d *dfaState, r rune) int32 {
	if r < asciiLimit {
		return sim.ascii.Value(d.id, int(r))
	}
	if target, ok := sim.wide[dfaEdge{from: d.id, r: r}]; ok {
		return target
	}
	return sparse.DefaultNullValue
}

func (sim *Simulator) cacheEdge(d *dfaState, r rune, target int32) {
	if r < asciiLimit {
		sim.ascii.Set(d.id, int(r), target)
		return
	}
	sim.wide[dfaEdge{from: d.id, r: r}] = target
}

// addState returns the DFA state for a closed set of ATN states, creating it
// if it does not yet exist.
func (sim *Simulator) addState(configs *treeset.Set) *dfaState {
	key := configKey(configs)
	if id, ok := sim.index[key]; ok {
		return sim.states[id]
	}
	d := &dfaState{
		id:      len(sim.states),
		configs: configs,
		accept:  acceptingRule(sim.atn, configs),
	}
	sim.states = append(sim.states, d)
	sim.index[key] = d.id
	tracer().Debugf("new DFA state %v", d)
	return d
}
