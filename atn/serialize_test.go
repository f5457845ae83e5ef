package atn

import (
	"bytes"
	"errors"
	"testing"

	"github.com/kylelemons/godebug/pretty"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// tinyATN recognizes "a" as token A.
func tinyATN() *ATN {
	return &ATN{
		Name: "Tiny",
		States: []*State{
			{ID: 0, Kind: ModeStart, Rule: -1, Transitions: []Transition{EpsilonTo(1)}},
			{ID: 1, Kind: RuleStart, Rule: 0, Transitions: []Transition{AtomTo(2, 'a')}},
			{ID: 2, Kind: BasicState, Rule: 0, Transitions: []Transition{EpsilonTo(3)}},
			{ID: 3, Kind: RuleStop, Rule: 0},
		},
		Rules:        []Rule{{Name: "A", TokenType: 1, Mode: 0, Start: 1, Stop: 3}},
		Modes:        []Mode{{Name: DefaultModeName, Start: 0}},
		Channels:     []string{DefaultChannelName, HiddenChannelName},
		TokenNames:   []string{"<INVALID>", "A"},
		MaxTokenType: 1,
	}
}

func richATN(t *testing.T) *ATN {
	b := NewBuilder("Rich")
	b.Channels("COMMENTS")
	b.Tokens("STRING")
	b.Fragment("LETTER", Alt(Range('a', 'z'), Range('A', 'Z'), Char('_')))
	b.Rule("ID", Seq(Ref("LETTER"), Star(Alt(Ref("LETTER"), Range('0', '9')))))
	b.Rule("WS", Plus(Set(' ', '\t', '\n'))).Skip()
	b.Rule("CMT", Seq(Lit("//"), Star(Not(Char('\n'))))).Channel("COMMENTS")
	b.Rule("QUOTE", Char('"')).More().PushMode("STR")
	b.Rule("EMOJI", Range(0x1F600, 0x1F64F))
	b.Mode("STR")
	b.Rule("CLOSE", Char('"')).Type("STRING").PopMode()
	b.Rule("CHAR", Any()).More()
	a, err := b.ATN()
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestSerializeRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "atnlex.atn")
	defer teardown()
	//
	for _, a := range []*ATN{tinyATN(), richATN(t)} {
		data, err := Serialize(a)
		if err != nil {
			t.Fatal(err)
		}
		if data[0] != SerializedVersion {
			t.Errorf("expected table to start with version")
		}
		b, err := Deserialize(data)
		if err != nil {
			t.Fatalf("cannot deserialize %s: %v", a.Name, err)
		}
		again, err := Serialize(b)
		if err != nil {
			t.Fatal(err)
		}
		if diff := pretty.Compare(data, again); diff != "" {
			t.Errorf("serialization of %s not stable: (-first +second)\n%s", a.Name, diff)
		}
		if diff := pretty.Compare(a.RuleNames(), b.RuleNames()); diff != "" {
			t.Errorf("rules of %s differ: (-original +deserialized)\n%s", a.Name, diff)
		}
		if len(a.States) != len(b.States) || a.MaxTokenType != b.MaxTokenType || a.Name != b.Name {
			t.Errorf("deserialized %s differs from original", a.Name)
		}
		fa, _ := a.Fingerprint()
		fb, _ := b.Fingerprint()
		if fa != fb {
			t.Errorf("fingerprints of %s differ", a.Name)
		}
	}
}

func TestSerializeBytes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "atnlex.atn")
	defer teardown()
	//
	a := richATN(t)
	raw, err := SerializeBytes(a)
	if err != nil {
		t.Fatal(err)
	}
	if raw[0] != 0 || raw[1] != SerializedVersion {
		t.Errorf("expected big-endian version at start of table")
	}
	b, err := DeserializeBytes(raw)
	if err != nil {
		t.Fatal(err)
	}
	again, _ := SerializeBytes(b)
	if !bytes.Equal(raw, again) {
		t.Errorf("byte serialization not stable")
	}
	if emoji := b.Rules[b.RuleIndex("EMOJI")]; b.States[emoji.Start].Transitions[0].Hi != 0x1F64F {
		t.Errorf("characters beyond the BMP not preserved")
	}
	if _, err := DeserializeBytes(raw[:len(raw)-1]); !errors.Is(err, ErrMalformedTable) {
		t.Errorf("expected odd byte count to be rejected, have %v", err)
	}
}

func TestDeserializeVersionMismatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "atnlex.atn")
	defer teardown()
	//
	data, _ := Serialize(tinyATN())
	data[0] = SerializedVersion + 1
	if _, err := Deserialize(data); !errors.Is(err, ErrVersionMismatch) {
		t.Errorf("expected version mismatch, have %v", err)
	}
	data, _ = Serialize(tinyATN())
	data[2] ^= 0x0101
	if _, err := Deserialize(data); !errors.Is(err, ErrVersionMismatch) {
		t.Errorf("expected unknown format to be a version mismatch, have %v", err)
	}
}

func TestDeserializeMalformed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "atnlex.atn")
	defer teardown()
	//
	valid, _ := Serialize(tinyATN())
	for i, test := range []struct {
		name string
		data func() []uint16
	}{
		{"empty", func() []uint16 { return nil }},
		{"truncated", func() []uint16 { return valid[:len(valid)-1] }},
		{"header only", func() []uint16 { return valid[:5] }},
		{"trailing data", func() []uint16 { return append(append([]uint16{}, valid...), 0) }},
		{"target out of range", mutated(func(a *ATN) { a.States[1].Transitions[0].Target = 7 })},
		{"lo > hi", mutated(func(a *ATN) { a.States[1].Transitions[0] = RangeTo(2, 'z', 'a') })},
		{"set out of range", mutated(func(a *ATN) {
			a.States[1].Transitions[0] = Transition{Kind: SetMatch, Target: 2, Set: 3}
		})},
		{"unsorted set", mutated(func(a *ATN) {
			a.Sets = []IntervalSet{{{Lo: 'x', Hi: 'z'}, {Lo: 'a', Hi: 'c'}}}
			a.States[1].Transitions[0] = Transition{Kind: SetMatch, Target: 2, Set: 0}
		})},
		{"adjacent intervals", mutated(func(a *ATN) {
			a.Sets = []IntervalSet{{{Lo: 'a', Hi: 'c'}, {Lo: 'd', Hi: 'f'}}}
			a.States[1].Transitions[0] = Transition{Kind: NotSet, Target: 2, Set: 0}
		})},
		{"unknown state kind", mutated(func(a *ATN) { a.States[2].Kind = 9 })},
		{"unknown transition kind", mutated(func(a *ATN) { a.States[2].Transitions[0].Kind = 42 })},
		{"unreachable state", mutated(func(a *ATN) {
			a.States = append(a.States, &State{ID: 4, Kind: BasicState, Rule: 0})
		})},
		{"stop state with transitions", mutated(func(a *ATN) {
			a.States[3].Transitions = []Transition{EpsilonTo(2)}
		})},
		{"rule stops at basic state", mutated(func(a *ATN) { a.Rules[0].Stop = 2 })},
		{"token type out of range", mutated(func(a *ATN) { a.Rules[0].TokenType = 2 })},
		{"action out of range", mutated(func(a *ATN) { a.Rules[0].Actions = []int{0} })},
		{"channel out of range", mutated(func(a *ATN) {
			a.Actions = []Action{{Kind: ChannelAction, Arg: 5}}
			a.Rules[0].Actions = []int{0}
		})},
		{"mode out of range", mutated(func(a *ATN) { a.Rules[0].Mode = 1 })},
		{"second mode start", mutated(func(a *ATN) {
			a.States = append(a.States, &State{ID: 4, Kind: ModeStart, Rule: -1})
		})},
		{"no modes", mutated(func(a *ATN) { a.Modes = nil })},
	} {
		_, err := Deserialize(test.data())
		if !errors.Is(err, ErrMalformedTable) {
			t.Errorf("test #%d (%s): expected malformed table, have %v", i, test.name, err)
		} else {
			t.Logf("test #%d (%s): %v", i, test.name, err)
		}
	}
}

func mutated(mutate func(a *ATN)) func() []uint16 {
	return func() []uint16 {
		a := tinyATN()
		mutate(a)
		data, err := Serialize(a)
		if err != nil {
			panic(err)
		}
		return data
	}
}

func TestSerializeOverflow(t *testing.T) {
	a := tinyATN()
	a.Rules[0].TokenType = 70000
	if _, err := Serialize(a); !errors.Is(err, ErrTableOverflow) {
		t.Errorf("expected overflow error, have %v", err)
	}
}
