package atn

import (
	"fmt"
	"sort"
	"strings"
)

// Interval is an inclusive range of characters.
type Interval struct {
	Lo, Hi rune
}

func (iv Interval) String() string {
	if iv.Lo == iv.Hi {
		return fmt.Sprintf("%q", iv.Lo)
	}
	return fmt.Sprintf("%q…%q", iv.Lo, iv.Hi)
}

// IntervalSet is a set of characters, represented as sorted, non-overlapping
// and non-adjacent intervals. Create one with NewIntervalSet.
type IntervalSet []Interval

// NewIntervalSet creates a normalized interval set. Intervals with Lo > Hi
// are silently swapped.
func NewIntervalSet(ivs ...Interval) IntervalSet {
	set := make(IntervalSet, 0, len(ivs))
	for _, iv := range ivs {
		if iv.Lo > iv.Hi {
			iv.Lo, iv.Hi = iv.Hi, iv.Lo
		}
		set = append(set, iv)
	}
	sort.Slice(set, func(i, j int) bool {
		return set[i].Lo < set[j].Lo
	})
	j := 0
	for i := 1; i < len(set); i++ {
		if set[i].Lo <= set[j].Hi+1 { // overlapping or adjacent
			if set[i].Hi > set[j].Hi {
				set[j].Hi = set[i].Hi
			}
			continue
		}
		j++
		set[j] = set[i]
	}
	if len(set) == 0 {
		return set
	}
	return set[:j+1]
}

// Contains tests for membership of r.
func (set IntervalSet) Contains(r rune) bool {
	i := sort.Search(len(set), func(i int) bool {
		return set[i].Hi >= r
	})
	return i < len(set) && set[i].Lo <= r
}

// Equals compares two normalized sets.
func (set IntervalSet) Equals(other IntervalSet) bool {
	if len(set) != len(other) {
		return false
	}
	for i := range set {
		if set[i] != other[i] {
			return false
		}
	}
	return true
}

func (set IntervalSet) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, iv := range set {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(iv.String())
	}
	b.WriteString("}")
	return b.String()
}
