package atn

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestRegistryDeduplicates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "atnlex.atn")
	defer teardown()
	//
	reg := NewRegistry()
	tiny, _ := Serialize(tinyATN())
	rich, _ := Serialize(richATN(t))
	var wg sync.WaitGroup
	loaded := make([]*ATN, 10)
	for i := range loaded {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			data := tiny
			if i%2 == 1 {
				data = append([]uint16(nil), rich...)
			}
			a, err := reg.Load(data)
			if err != nil {
				t.Errorf("load #%d: %v", i, err)
			}
			loaded[i] = a
		}(i)
	}
	wg.Wait()
	if reg.Len() != 2 {
		t.Errorf("expected 2 distinct tables, have %d", reg.Len())
	}
	for i := 2; i < len(loaded); i++ {
		if loaded[i] != loaded[i%2] {
			t.Errorf("load #%d did not return the shared ATN", i)
		}
	}
	if _, err := reg.Load(tiny[:3]); !errors.Is(err, ErrMalformedTable) {
		t.Errorf("expected malformed table, have %v", err)
	}
	if reg.Len() != 2 {
		t.Errorf("expected errors not to be cached")
	}
	raw, _ := SerializeBytes(tinyATN())
	if a, err := reg.LoadBytes(raw); err != nil || a != loaded[0] {
		t.Errorf("expected byte table to be found in registry, have %v", err)
	}
}

func TestDefaultRegistry(t *testing.T) {
	if DefaultRegistry() == nil || DefaultRegistry() != DefaultRegistry() {
		t.Errorf("expected a single default registry")
	}
}

func TestGraphViz(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "atnlex.atn")
	defer teardown()
	//
	var b strings.Builder
	if err := ToGraphViz(richATN(t), &b); err != nil {
		t.Fatal(err)
	}
	dot := b.String()
	for _, s := range []string{"digraph {", "DEFAULT_MODE", "doublecircle", `\n→CLOSE`, `'\"'`, "any"} {
		if !strings.Contains(dot, s) {
			t.Errorf("expected Dot output to contain %q", s)
		}
	}
	t.Logf("\n%s", dot)
}
