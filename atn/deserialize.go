package atn

import (
	"encoding/binary"
	"fmt"
	"unicode/utf16"

	"github.com/npillmayer/atnlex"
)

// Deserialize decodes a serialized table into a fully linked ATN.
//
// Deserialize fails fast with an error wrapping ErrVersionMismatch if the table
// has been serialized with a different format version, and with an error wrapping
// ErrMalformedTable if the table is truncated, carries trailing data, or
// is inconsistent (see ATN.Validate).
func Deserialize(data []uint16) (*ATN, error) {
	if len(data) == 0 {
		return nil, malformed("empty table")
	}
	if int(data[0]) != SerializedVersion {
		return nil, fmt.Errorf("%w: table has version %d, runtime supports version %d",
			ErrVersionMismatch, data[0], SerializedVersion)
	}
	d := &decoder{data: data, pos: 1}
	for _, u := range formatID {
		if d.next() != int(u) {
			return nil, fmt.Errorf("%w: unknown table format", ErrVersionMismatch)
		}
	}
	a := &ATN{}
	a.Name = d.string()
	a.MaxTokenType = atnlex.TokType(d.next())
	a.TokenNames = d.strings()
	a.Channels = d.strings()
	n := d.count("states", 2)
	a.States = make([]*State, n)
	for i := 0; i < n; i++ {
		kind := d.next()
		if kind > int(maxStateKind) {
			return nil, malformed("state %d has unknown kind %d", i, kind)
		}
		a.States[i] = &State{ID: i, Kind: StateKind(kind), Rule: d.optional()}
	}
	n = d.count("sets", 1)
	a.Sets = make([]IntervalSet, n)
	for i := 0; i < n; i++ {
		m := d.count("intervals", 4)
		set := make(IntervalSet, m)
		for j := 0; j < m; j++ {
			set[j].Lo = d.rune()
			set[j].Hi = d.rune()
		}
		a.Sets[i] = set
	}
	n = d.count("edges", 3)
	for i := 0; i < n && d.err == nil; i++ {
		src := d.next()
		t := Transition{Target: d.next()}
		kind := d.next()
		if kind > int(maxTransitionKind) {
			return nil, malformed("edge %d has unknown kind %d", i, kind)
		}
		t.Kind = TransitionKind(kind)
		switch t.Kind {
		case Epsilon, Wildcard:
		case Atom:
			t.Lo = d.rune()
			t.Hi = t.Lo
		case RangeMatch:
			t.Lo = d.rune()
			t.Hi = d.rune()
		case SetMatch, NotSet:
			t.Set = d.next()
		}
		if src >= len(a.States) {
			return nil, malformed("edge %d starts at state %d out of range", i, src)
		}
		a.States[src].Transitions = append(a.States[src].Transitions, t)
	}
	n = d.count("actions", 2)
	a.Actions = make([]Action, n)
	for i := 0; i < n; i++ {
		kind := d.next()
		if kind > int(maxActionKind) {
			return nil, malformed("action %d has unknown kind %d", i, kind)
		}
		a.Actions[i] = Action{Kind: ActionKind(kind), Arg: d.next()}
	}
	n = d.count("modes", 2)
	a.Modes = make([]Mode, n)
	for i := 0; i < n; i++ {
		a.Modes[i] = Mode{Name: d.string(), Start: d.next()}
	}
	n = d.count("rules", 6)
	a.Rules = make([]Rule, n)
	for i := 0; i < n; i++ {
		r := Rule{Name: d.string()}
		r.TokenType = atnlex.TokType(d.next())
		r.Mode = d.next()
		r.Start = d.next()
		r.Stop = d.next()
		m := d.count("rule actions", 1)
		for j := 0; j < m; j++ {
			r.Actions = append(r.Actions, d.next())
		}
		a.Rules[i] = r
	}
	if d.err != nil {
		return nil, d.err
	}
	if d.pos != len(d.data) {
		return nil, malformed("%d units of trailing data", len(d.data)-d.pos)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	tracer().Debugf("deserialized ATN %s: %d states, %d rules", a.Name, len(a.States), len(a.Rules))
	return a, nil
}

// DeserializeBytes decodes a table from big-endian code units.
func DeserializeBytes(b []byte) (*ATN, error) {
	data, err := unitsFromBytes(b)
	if err != nil {
		return nil, err
	}
	return Deserialize(data)
}

func unitsFromBytes(b []byte) ([]uint16, error) {
	if len(b)%2 != 0 {
		return nil, malformed("odd number of bytes (%d)", len(b))
	}
	data := make([]uint16, len(b)/2)
	for i := range data {
		data[i] = binary.BigEndian.Uint16(b[2*i:])
	}
	return data, nil
}

// decoder reads code units. The first error sticks; subsequent reads return 0.
type decoder struct {
	data []uint16
	pos  int
	err  error
}

func (d *decoder) next() int {
	if d.err != nil {
		return 0
	}
	if d.pos >= len(d.data) {
		d.err = malformed("table truncated at unit %d", d.pos)
		return 0
	}
	v := d.data[d.pos]
	d.pos++
	return int(v)
}

// count reads the number of elements of a section. Every element occupies at
// least minUnits units, which bounds the count by the remaining input.
func (d *decoder) count(what string, minUnits int) int {
	n := d.next()
	if d.err == nil && n*minUnits > len(d.data)-d.pos {
		d.err = malformed("count of %s (%d) exceeds table size", what, n)
	}
	if d.err != nil {
		return 0
	}
	return n
}

func (d *decoder) optional() int {
	v := d.next()
	if v == noneUnit {
		return -1
	}
	return v
}

func (d *decoder) rune() rune {
	hi := d.next()
	lo := d.next()
	return rune(uint32(hi)<<16 | uint32(lo))
}

func (d *decoder) string() string {
	n := d.count("characters", 1)
	if n == 0 {
		return ""
	}
	units := d.data[d.pos : d.pos+n]
	d.pos += n
	return string(utf16.Decode(units))
}

func (d *decoder) strings() []string {
	n := d.count("names", 1)
	ss := make([]string, n)
	for i := range ss {
		ss[i] = d.string()
	}
	return ss
}
