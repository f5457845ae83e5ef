package atn

import (
	"fmt"
	"io"
	"strings"
)

// ToGraphViz exports an ATN to the Graphviz Dot format.
func ToGraphViz(a *ATN, w io.Writer) error {
	var b strings.Builder
	b.WriteString(`digraph {
graph [rankdir=LR, splines=true, fontname=Helvetica, fontsize=10];
node [shape=circle, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range a.States {
		b.WriteString(fmt.Sprintf("s%03d [fillcolor=%s shape=%s label=\"%s\"]\n",
			s.ID, nodecolor(s), nodeshape(s), a.nodelabel(s)))
	}
	for _, s := range a.States {
		for _, t := range s.Transitions {
			b.WriteString(fmt.Sprintf("s%03d -> s%03d [label=\"%s\"]\n",
				s.ID, t.Target, forGraphviz(a.edgelabel(t))))
		}
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func nodecolor(s *State) string {
	switch s.Kind {
	case ModeStart:
		return "lightblue"
	case RuleStop:
		return "lightgray"
	}
	return "white"
}

func nodeshape(s *State) string {
	if s.Kind == RuleStop {
		return "doublecircle"
	}
	return "circle"
}

func (a *ATN) nodelabel(s *State) string {
	switch s.Kind {
	case ModeStart:
		for _, m := range a.Modes {
			if m.Start == s.ID {
				return forGraphviz(m.Name)
			}
		}
	case RuleStart:
		return fmt.Sprintf("%d\\n%s", s.ID, forGraphviz(a.Rules[s.Rule].Name))
	case RuleStop:
		return fmt.Sprintf("%d\\n→%s", s.ID, forGraphviz(a.Rules[s.Rule].Name))
	}
	return fmt.Sprintf("%d", s.ID)
}

func (a *ATN) edgelabel(t Transition) string {
	switch t.Kind {
	case SetMatch:
		return a.Sets[t.Set].String()
	case NotSet:
		return "~" + a.Sets[t.Set].String()
	case Atom:
		return fmt.Sprintf("%q", t.Lo)
	case RangeMatch:
		return fmt.Sprintf("%q…%q", t.Lo, t.Hi)
	}
	return t.Kind.String()
}

func forGraphviz(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
