package scanner

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestCursorLookahead(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "atnlex.scanner")
	defer teardown()
	//
	input := "tést!"
	c := NewCursor("test", input)
	if c.Size() != 5 {
		t.Fatalf("expected size to be 5 runes, is %d", c.Size())
	}
	for i, r := range []rune(input) {
		if la := c.LA(1); la != r {
			t.Errorf("expected rune #%d to be %#U, is %#U", i, r, la)
		}
		if i > 0 && c.LA(-1) != []rune(input)[i-1] {
			t.Errorf("expected LA(-1) at #%d to be previous rune", i)
		}
		c.Consume()
	}
	if c.LA(1) != EOFRune || c.LA(0) != EOFRune {
		t.Errorf("expected EOF at end of input")
	}
	if c.LA(-5) != 't' || c.LA(-6) != EOFRune {
		t.Errorf("expected look-behind to stop at start of input")
	}
}

func TestCursorConsumeAtEOFPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected Consume at EOF to panic")
		}
	}()
	c := NewCursor("test", "")
	c.Consume()
}

func TestCursorMarkRewind(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "atnlex.scanner")
	defer teardown()
	//
	c := NewCursor("test", "ab\ncd")
	c.Consume()
	m := c.Mark()
	c.Consume()
	c.Consume()
	c.Consume()
	if p := c.Position(); p.Line != 2 || p.Column != 1 || p.Offset != 4 {
		t.Errorf("expected position 2:1 at offset 4, is %v/%d", p, p.Offset)
	}
	c.Rewind(m)
	if p := c.Position(); p.Line != 1 || p.Column != 1 || c.Index() != 1 || m.Index() != 1 {
		t.Errorf("expected rewind to 1:1, is at %v", p)
	}
	if c.LA(1) != 'b' {
		t.Errorf("expected 'b' after rewind, is %#U", c.LA(1))
	}
	c.Seek(3)
	if p := c.Position(); p.Line != 2 || p.Column != 0 {
		t.Errorf("expected seek to 2:0, is at %v", p)
	}
}

func TestCursorPositionOf(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "atnlex.scanner")
	defer teardown()
	//
	input := "héllo\n\nwörld\n"
	c := NewCursor("test", input)
	for c.LA(1) != EOFRune {
		p := c.PositionOf(c.Index())
		if p != c.Position() {
			t.Errorf("offset %d: PositionOf is %v, tracked position is %v", c.Index(), p, c.Position())
		}
		c.Consume()
	}
	if p := c.PositionOf(100); p.Offset != c.Size() || p.Line != 4 || p.Column != 0 {
		t.Errorf("expected out of range offset to be clipped to end, is %v", p)
	}
}

func TestCursorText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "atnlex.scanner")
	defer teardown()
	//
	c, err := NewCursorFromReader("reader", strings.NewReader("grüße"))
	if err != nil {
		t.Fatal(err)
	}
	if c.SourceName() != "reader" {
		t.Errorf("expected source name to be 'reader', is %q", c.SourceName())
	}
	for _, test := range []struct {
		from, to int
		text     string
	}{
		{0, 5, "grüße"},
		{2, 4, "üß"},
		{-1, 2, "gr"},
		{3, 10, "ße"},
		{4, 2, ""},
	} {
		if txt := c.Text(test.from, test.to); txt != test.text {
			t.Errorf("expected text(%d,%d) to be %q, is %q", test.from, test.to, test.text, txt)
		}
	}
}

func TestZeroCursor(t *testing.T) {
	var c Cursor
	if c.Size() != 0 || c.LA(1) != EOFRune || c.Position().Line != 1 {
		t.Errorf("expected zero cursor to be an empty stream at 1:0")
	}
}
