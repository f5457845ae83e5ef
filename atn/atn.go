package atn

import (
	"fmt"
	"strings"

	"github.com/npillmayer/atnlex"
)

// Predefined channels, modes and token types.
const (
	DefaultChannel   = 0 // channel of regular tokens
	HiddenChannel    = 1 // channel for whitespace, comments, etc.
	DefaultMode      = 0 // mode a lexer starts in
	MinUserTokenType = 1 // token type of the first lexer rule
)

// Names of the predefined channels and modes.
const (
	DefaultChannelName = "DEFAULT_TOKEN_CHANNEL"
	HiddenChannelName  = "HIDDEN"
	DefaultModeName    = "DEFAULT_MODE"
)

// StateKind categorizes the states of an ATN.
type StateKind uint8

const (
	BasicState StateKind = iota // intermediate state of a rule
	ModeStart                   // start state of a lexer mode
	RuleStart                   // entry state of a rule
	RuleStop                    // accepting state of a rule

	maxStateKind = RuleStop
)

func (k StateKind) String() string {
	switch k {
	case BasicState:
		return "basic"
	case ModeStart:
		return "mode-start"
	case RuleStart:
		return "rule-start"
	case RuleStop:
		return "rule-stop"
	}
	return fmt.Sprintf("state-kind(%d)", int(k))
}

// State is a node in an ATN.
type State struct {
	ID          int          // index of this state within the ATN
	Kind        StateKind    // category of this state
	Rule        int          // rule this state belongs to, or -1 for mode start states
	Transitions []Transition // outgoing edges, in order of priority
}

// IsAccept is true for rule stop states.
func (s *State) IsAccept() bool {
	return s.Kind == RuleStop
}

func (s *State) String() string {
	return fmt.Sprintf("(s%d %s r%d | %d)", s.ID, s.Kind, s.Rule, len(s.Transitions))
}

// Rule is a lexer rule. Rules are ordered by declaration, and this ordering
// determines precedence between rules matching input of identical length.
type Rule struct {
	Name      string
	TokenType atnlex.TokType // token type produced by this rule
	Mode      int            // mode this rule is active in
	Start     int            // rule start state
	Stop      int            // rule stop state, i.e. the accepting state
	Actions   []int          // indices into ATN.Actions, executed on accept
}

// Mode is a lexical mode, a partition of an ATN with its own start state.
type Mode struct {
	Name  string
	Start int // mode start state
}

// ATN is an augmented transition network for lexing. It is immutable after
// construction and may be shared between lexers without locking.
//
// Clients either construct an ATN with a Builder or deserialize one from
// a serialized table.
type ATN struct {
	Name         string
	States       []*State
	Rules        []Rule
	Modes        []Mode
	Sets         []IntervalSet
	Actions      []Action
	Channels     []string       // channel names, indexed by channel number
	TokenNames   []string       // symbolic names, indexed by token type
	MaxTokenType atnlex.TokType // highest token type in use
}

// State returns the state with a given ID, or nil.
func (a *ATN) State(id int) *State {
	if id < 0 || id >= len(a.States) {
		return nil
	}
	return a.States[id]
}

// ModeStart returns the start state of a lexical mode, or nil if the mode
// does not exist.
func (a *ATN) ModeStart(mode int) *State {
	if mode < 0 || mode >= len(a.Modes) {
		return nil
	}
	return a.State(a.Modes[mode].Start)
}

// ModeIndex returns the index of a mode by name, or -1.
func (a *ATN) ModeIndex(name string) int {
	for i, m := range a.Modes {
		if m.Name == name {
			return i
		}
	}
	return -1
}

// ChannelIndex returns the number of a channel by name, or -1.
func (a *ATN) ChannelIndex(name string) int {
	for i, ch := range a.Channels {
		if ch == name {
			return i
		}
	}
	return -1
}

// RuleIndex returns the index of a rule by name, or -1.
func (a *ATN) RuleIndex(name string) int {
	for i, r := range a.Rules {
		if r.Name == name {
			return i
		}
	}
	return -1
}

// RuleNames returns the names of all rules in declaration order.
func (a *ATN) RuleNames() []string {
	names := make([]string, len(a.Rules))
	for i, r := range a.Rules {
		names[i] = r.Name
	}
	return names
}

// ModeNames returns the names of all modes.
func (a *ATN) ModeNames() []string {
	names := make([]string, len(a.Modes))
	for i, m := range a.Modes {
		names[i] = m.Name
	}
	return names
}

// ChannelNames returns the names of all channels.
func (a *ATN) ChannelNames() []string {
	return append([]string(nil), a.Channels...)
}

// RuleActions returns the lexer actions of a rule, in order of declaration.
func (a *ATN) RuleActions(rule int) []Action {
	if rule < 0 || rule >= len(a.Rules) {
		return nil
	}
	actions := make([]Action, len(a.Rules[rule].Actions))
	for i, inx := range a.Rules[rule].Actions {
		actions[i] = a.Actions[inx]
	}
	return actions
}

// Vocabulary returns a vocabulary for the token types of this ATN.
func (a *ATN) Vocabulary() *Vocabulary {
	return NewVocabulary(a.TokenNames)
}

// Fingerprint returns a structural hash of the serialized form of a.
// Two automata with identical fingerprints produce identical token streams.
func (a *ATN) Fingerprint() (string, error) {
	data, err := Serialize(a)
	if err != nil {
		return "", err
	}
	return fingerprint(data)
}

// Dump is a debugging helper, tracing all states and rules.
func (a *ATN) Dump() {
	tracer().Debugf("--- ATN %q: %d states, %d rules, %d modes ---",
		a.Name, len(a.States), len(a.Rules), len(a.Modes))
	for _, s := range a.States {
		var b strings.Builder
		for i, t := range s.Transitions {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(t.String())
		}
		tracer().Debugf("%v: %s", s, b.String())
	}
	for i, r := range a.Rules {
		tracer().Debugf("rule %d %s: type=%d mode=%d start=%d stop=%d actions=%v",
			i, r.Name, r.TokenType, r.Mode, r.Start, r.Stop, a.RuleActions(i))
	}
	tracer().Debugf("-------------------------")
}
