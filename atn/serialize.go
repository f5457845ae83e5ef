package atn

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf16"
)

// SerializedVersion is the version of the serialization format this runtime
// understands. Tables of other versions are rejected with ErrVersionMismatch.
const SerializedVersion = 1

// formatID follows the version unit and identifies serialized lexer tables.
var formatID = [...]uint16{0x6174, 0x6e6c, 0x6578, 0x5431}

const noneUnit = 0xffff // encodes -1, i.e. "no rule"

// Errors for serialized tables.
var (
	ErrMalformedTable  = errors.New("malformed lexer table")
	ErrVersionMismatch = errors.New("lexer table version mismatch")
	ErrTableOverflow   = errors.New("lexer table too large to serialize")
)

// Serialize encodes an ATN as a sequence of 16-bit code units. The layout is:
//
//    version formatID[4] name maxTokenType
//    #tokenNames name…
//    #channels name…
//    #states (kind rule)…
//    #sets (#intervals (lo hi)…)…
//    #edges (src trg kind payload)…
//    #actions (kind arg)…
//    #modes (name start)…
//    #rules (name tokenType mode start stop #actions action…)…
//
// Names are encoded as a length followed by UTF-16 code units. Characters
// are encoded as two units (high and low 16 bits). The payload of an edge
// depends on its kind: a character for Atom, two characters for RangeMatch, a set
// index for SetMatch and NotSet, and nothing for Epsilon and Wildcard.
func Serialize(a *ATN) ([]uint16, error) {
	e := &encoder{data: make([]uint16, 0, 64+8*len(a.States))}
	e.put(SerializedVersion)
	e.data = append(e.data, formatID[:]...)
	e.string(a.Name)
	e.put(int(a.MaxTokenType))
	e.strings(a.TokenNames)
	e.strings(a.Channels)
	e.put(len(a.States))
	edgecnt := 0
	for _, s := range a.States {
		e.put(int(s.Kind))
		e.optional(s.Rule)
		edgecnt += len(s.Transitions)
	}
	e.put(len(a.Sets))
	for _, set := range a.Sets {
		e.put(len(set))
		for _, iv := range set {
			e.rune(iv.Lo)
			e.rune(iv.Hi)
		}
	}
	e.put(edgecnt)
	for _, s := range a.States {
		for _, t := range s.Transitions {
			e.put(s.ID)
			e.put(t.Target)
			e.put(int(t.Kind))
			switch t.Kind {
			case Atom:
				e.rune(t.Lo)
			case RangeMatch:
				e.rune(t.Lo)
				e.rune(t.Hi)
			case SetMatch, NotSet:
				e.put(t.Set)
			}
		}
	}
	e.put(len(a.Actions))
	for _, act := range a.Actions {
		e.put(int(act.Kind))
		e.put(act.Arg)
	}
	e.put(len(a.Modes))
	for _, m := range a.Modes {
		e.string(m.Name)
		e.put(m.Start)
	}
	e.put(len(a.Rules))
	for _, r := range a.Rules {
		e.string(r.Name)
		e.put(int(r.TokenType))
		e.put(r.Mode)
		e.put(r.Start)
		e.put(r.Stop)
		e.put(len(r.Actions))
		for _, inx := range r.Actions {
			e.put(inx)
		}
	}
	if e.err != nil {
		return nil, e.err
	}
	tracer().Debugf("serialized ATN %s into %d units", a.Name, len(e.data))
	return e.data, nil
}

// SerializeBytes encodes an ATN as big-endian code units.
func SerializeBytes(a *ATN) ([]byte, error) {
	data, err := Serialize(a)
	if err != nil {
		return nil, err
	}
	b := make([]byte, 2*len(data))
	for i, u := range data {
		binary.BigEndian.PutUint16(b[2*i:], u)
	}
	return b, nil
}

// encoder collects code units. The first error sticks.
type encoder struct {
	data []uint16
	err  error
}

func (e *encoder) put(v int) {
	if v < 0 || v >= noneUnit {
		if e.err == nil {
			e.err = fmt.Errorf("%w: value %d at unit %d", ErrTableOverflow, v, len(e.data))
		}
		return
	}
	e.data = append(e.data, uint16(v))
}

func (e *encoder) optional(v int) {
	if v < 0 {
		e.data = append(e.data, noneUnit)
		return
	}
	e.put(v)
}

func (e *encoder) rune(r rune) {
	e.data = append(e.data, uint16(uint32(r)>>16), uint16(uint32(r)&0xffff))
}

func (e *encoder) string(s string) {
	units := utf16.Encode([]rune(s))
	e.put(len(units))
	e.data = append(e.data, units...)
}

func (e *encoder) strings(ss []string) {
	e.put(len(ss))
	for _, s := range ss {
		e.string(s)
	}
}
