package atn

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestBuilderTokenTypes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "atnlex.atn")
	defer teardown()
	//
	b := NewBuilder("Types")
	b.Tokens("COMMENT")
	b.Rule("ID", Plus(Range('a', 'z')))
	b.Rule("WS", Plus(Char(' '))).Channel(HiddenChannelName)
	b.Mode("STR")
	b.Rule("TEXT", Plus(Not(Char('"')))).Type("COMMENT")
	a, err := b.ATN()
	if err != nil {
		t.Fatal(err)
	}
	a.Dump()
	voc := a.Vocabulary()
	for name, typ := range map[string]int{"COMMENT": 1, "ID": 2, "WS": 3, "TEXT": 4} {
		if int(voc.TokenType(name)) != typ {
			t.Errorf("expected token type of %s to be %d, is %d", name, typ, voc.TokenType(name))
		}
	}
	if a.MaxTokenType != 4 || voc.Len() != 5 {
		t.Errorf("expected max token type 4, is %d", a.MaxTokenType)
	}
	if voc.DisplayName(-1) != "EOF" || voc.DisplayName(17) != "17" {
		t.Errorf("unexpected display names for reserved/unknown types")
	}
	if strings.Join(a.RuleNames(), ",") != "ID,WS,TEXT" {
		t.Errorf("unexpected rule names %v", a.RuleNames())
	}
	if strings.Join(a.ModeNames(), ",") != "DEFAULT_MODE,STR" || a.ModeIndex("STR") != 1 {
		t.Errorf("unexpected mode names %v", a.ModeNames())
	}
	if a.ChannelIndex(HiddenChannelName) != HiddenChannel || len(a.ChannelNames()) != 2 {
		t.Errorf("unexpected channels %v", a.ChannelNames())
	}
	if acts := a.RuleActions(a.RuleIndex("WS")); len(acts) != 1 || acts[0] != (Action{Kind: ChannelAction, Arg: HiddenChannel}) {
		t.Errorf("unexpected actions for WS: %v", acts)
	}
	if a.Rules[2].Mode != 1 {
		t.Errorf("expected TEXT to be in mode STR")
	}
	if ms := a.ModeStart(1); ms == nil || ms.Kind != ModeStart || len(ms.Transitions) != 1 {
		t.Errorf("expected mode STR to start with a single rule, is %v", ms)
	}
}

func TestBuilderRuleOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "atnlex.atn")
	defer teardown()
	//
	b := NewBuilder("Order")
	b.Rule("IF", Lit("if"))
	b.Rule("ID", Plus(Range('a', 'z')))
	a, err := b.ATN()
	if err != nil {
		t.Fatal(err)
	}
	start := a.ModeStart(DefaultMode)
	if len(start.Transitions) != 2 {
		t.Fatalf("expected 2 transitions from mode start, have %d", len(start.Transitions))
	}
	for i, tr := range start.Transitions {
		if !tr.IsEpsilon() || tr.Target != a.Rules[i].Start {
			t.Errorf("expected mode start to branch to rule %d first", i)
		}
	}
}

func TestBuilderErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "atnlex.atn")
	defer teardown()
	//
	for i, test := range []struct {
		build func(b *Builder)
		msg   string
	}{
		{func(b *Builder) {}, "no rules"},
		{func(b *Builder) { b.Rule("A", Char('a')); b.Rule("A", Char('b')) }, "duplicate rule"},
		{func(b *Builder) { b.Rule("A", Ref("X")) }, "unknown fragment"},
		{func(b *Builder) {
			b.Fragment("X", Seq(Char('x'), Ref("Y")))
			b.Fragment("Y", Opt(Ref("X")))
			b.Rule("A", Ref("X"))
		}, "recursive fragment"},
		{func(b *Builder) { b.Rule("A", Char('a')).PushMode("NOPE") }, "unknown pushMode target"},
		{func(b *Builder) { b.Rule("A", Char('a')).Channel("NOPE") }, "unknown channel target"},
		{func(b *Builder) { b.Rule("A", Char('a')).Type("NOPE") }, "unknown type target"},
		{func(b *Builder) { b.Rule("A", Range('z', 'a')) }, "empty range"},
		{func(b *Builder) { b.Rule("A", Alt()) }, "empty alternative"},
		{func(b *Builder) { b.Rule("A", Not(Lit("ab"))) }, "cannot negate"},
		{func(b *Builder) { b.Channels(HiddenChannelName) }, "duplicate channel"},
		{func(b *Builder) { b.Rule("A", nil) }, "missing pattern"},
	} {
		b := NewBuilder("Errors")
		test.build(b)
		_, err := b.ATN()
		if err == nil {
			t.Errorf("test #%d: expected error %q", i, test.msg)
			continue
		}
		if !errors.Is(err, ErrInvalidGrammar) {
			t.Errorf("test #%d: expected invalid grammar error, have %v", i, err)
		}
		if !strings.Contains(err.Error(), test.msg) {
			t.Errorf("test #%d: expected error to contain %q, is %q", i, test.msg, err.Error())
		}
	}
}

func TestExprRegex(t *testing.T) {
	for i, test := range []struct {
		e     Expr
		regex string
	}{
		{Seq(Char('#'), Plus(Range('0', '9'))), `\#[0-9]+`},
		{Star(Lit("ab")), `(ab)*`},
		{Opt(Lit("a")), `a?`},
		{Alt(Lit("if"), Lit("else")), `(if|else)`},
		{Not(Set('a', 'b')), `[^a-b]`},
		{Set('-', ']', 'x'), `[\-\]x]`},
		{Seq(Any(), Char('\n'), Char('_')), `.\n_`},
		{Plus(Alt(Range('a', 'z'), Char('_'))), `([a-z]|_)+`},
	} {
		if re := test.e.Regex(); re != test.regex {
			t.Errorf("test #%d: expected regex %s, have %s", i, test.regex, re)
		}
	}
}

func TestRuleSpecs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "atnlex.atn")
	defer teardown()
	//
	b := NewBuilder("Specs")
	b.Fragment("DIGIT", Range('0', '9'))
	b.Rule("NUM", Plus(Ref("DIGIT")))
	b.Rule("WS", Plus(Char(' '))).Skip()
	specs, err := b.RuleSpecs()
	if err != nil {
		t.Fatal(err)
	}
	if len(specs) != 2 || specs[0].Pattern.Regex() != "[0-9]+" || specs[0].TokenType != 1 {
		t.Errorf("unexpected rule specs %v", specs)
	}
	if !specs[1].HasAction(SkipAction) || specs[1].HasAction(MoreAction) || specs[1].Mode != DefaultModeName {
		t.Errorf("expected WS to be skipped in default mode")
	}
}

func TestIntervalSet(t *testing.T) {
	set := NewIntervalSet(Interval{'x', 'z'}, Interval{'a', 'c'}, Interval{'d', 'd'}, Interval{'g', 'e'}, Interval{'b', 'b'})
	if set.String() != "{'a'…'g', 'x'…'z'}" {
		t.Errorf("unexpected normalization: %s", set)
	}
	for r, in := range map[rune]bool{'a': true, 'f': true, 'g': true, 'h': false, 'y': true, '{': false, '0': false} {
		if set.Contains(r) != in {
			t.Errorf("expected Contains(%q) to be %v", r, in)
		}
	}
	if !set.Equals(NewIntervalSet(Interval{'a', 'g'}, Interval{'x', 'z'})) || set.Equals(NewIntervalSet()) {
		t.Errorf("unexpected set equality")
	}
}

func TestRangeCompilesToRangeTransition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "atnlex.atn")
	defer teardown()
	//
	b := NewBuilder("Digits")
	b.Rule("DIGIT", Range('0', '9'))
	a, err := b.ATN()
	if err != nil {
		t.Fatal(err)
	}
	var ranges []Transition
	for _, s := range a.States {
		for _, tr := range s.Transitions {
			if tr.Kind == RangeMatch {
				ranges = append(ranges, tr)
			}
		}
	}
	if len(ranges) != 1 {
		t.Fatalf("expected 1 range transition, have %d", len(ranges))
	}
	tr := ranges[0]
	if !tr.Matches('0', a) || !tr.Matches('9', a) || tr.Matches('a', a) || tr.Matches(-1, a) {
		t.Errorf("range transition %v matches wrong characters", tr)
	}
	if tr.Kind.String() != "range" {
		t.Errorf("expected kind to print as 'range', is %q", tr.Kind.String())
	}
	data, err := Serialize(a)
	if err != nil {
		t.Fatal(err)
	}
	loaded, err := Deserialize(data)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, s := range loaded.States {
		for _, lt := range s.Transitions {
			found = found || lt == tr
		}
	}
	if !found {
		t.Errorf("range transition %v lost in serialization", tr)
	}
}
