package lexer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/atnlex/atn"
)

// dfaState is a set of ATN states, closed under epsilon transitions.
// DFA states are created by a Simulator on demand.
type dfaState struct {
	id      int
	configs *treeset.Set // ATN state IDs
	accept  int          // lowest rule index of a rule stop state, or -1
}

func (d *dfaState) isAccept() bool {
	return d.accept >= 0
}

func (d *dfaState) String() string {
	return fmt.Sprintf("D%d%v(accept=%d)", d.id, d.configs.Values(), d.accept)
}

// configKey identifies a DFA state by its ATN states.
func configKey(configs *treeset.Set) string {
	var b strings.Builder
	it := configs.Iterator()
	for it.Next() {
		b.WriteString(strconv.Itoa(it.Value().(int)))
		b.WriteByte(',')
	}
	return b.String()
}

func newConfigSet() *treeset.Set {
	return treeset.NewWith(utils.IntComparator)
}

// closure adds all ATN states reachable by epsilon transitions to a set of
// states.
func closure(a *atn.ATN, configs *treeset.Set) *treeset.Set {
	worklist := arraystack.New()
	for _, s := range configs.Values() {
		worklist.Push(s)
	}
	for !worklist.Empty() {
		top, _ := worklist.Pop()
		for _, t := range a.States[top.(int)].Transitions {
			if t.IsEpsilon() && !configs.Contains(t.Target) {
				configs.Add(t.Target)
				worklist.Push(t.Target)
			}
		}
	}
	return configs
}

// move returns the ATN states reachable from a DFA state by consuming r,
// without closure.
func move(a *atn.ATN, d *dfaState, r rune) *treeset.Set {
	targets := newConfigSet()
	it := d.configs.Iterator()
	for it.Next() {
		for _, t := range a.States[it.Value().(int)].Transitions {
			if !t.IsEpsilon() && t.Matches(r, a) {
				targets.Add(t.Target)
			}
		}
	}
	return targets
}

// acceptingRule returns the lowest rule index of all rule stop states in a
// set of ATN states, or -1.
func acceptingRule(a *atn.ATN, configs *treeset.Set) int {
	rule := -1
	it := configs.Iterator()
	for it.Next() {
		s := a.States[it.Value().(int)]
		if s.IsAccept() && (rule < 0 || s.Rule < rule) {
			rule = s.Rule
		}
	}
	return rule
}
