package scanner

import (
	"fmt"
	"io"
	"sort"

	"golang.org/x/exp/utf8string"
)

// CharStream is the input interface for lexers. Characters are addressed
// by rune offsets, starting at 0.
type CharStream interface {
	LA(i int) rune                  // lookahead: LA(1) is the next rune, LA(-1) the previous one
	Consume()                       // advance by one rune
	Index() int                     // offset of the next rune
	Mark() Mark                     // remember the current position
	Rewind(Mark)                    // return to a position previously marked
	Text(from, to int) string       // text in [from…to)
	Position() Position             // current position
	PositionOf(offset int) Position // position of an offset
	Size() int                      // number of runes in the stream
	SourceName() string             // name of the input source
}

// Position is a location in a CharStream. Lines start at 1, columns at 0.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Mark is a position in a CharStream, to which the stream may be rewound.
type Mark struct {
	pos Position
}

// Index returns the offset of the mark.
func (m Mark) Index() int {
	return m.pos.Offset
}

// Cursor is the default CharStream, operating on an in-memory string.
// Its zero value is an empty stream.
type Cursor struct {
	input      *utf8string.String
	pos        Position
	source     string
	lineStarts []int // offsets of line starts, computed on demand
}

var _ CharStream = (*Cursor)(nil)

// NewCursor creates a cursor for an input string.
func NewCursor(sourceName string, input string) *Cursor {
	return &Cursor{
		input:  utf8string.NewString(input),
		pos:    Position{Line: 1},
		source: sourceName,
	}
}

// NewCursorFromReader reads all of r and creates a cursor for it.
func NewCursorFromReader(sourceName string, r io.Reader) (*Cursor, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read input %s: %w", sourceName, err)
	}
	return NewCursor(sourceName, string(b)), nil
}

// Size returns the number of runes of the input.
func (c *Cursor) Size() int {
	if c.input == nil {
		return 0
	}
	return c.input.RuneCount()
}

// SourceName returns the name given at creation time.
func (c *Cursor) SourceName() string {
	return c.source
}

// LA returns the rune at a relative position. LA(1) is the rune at Index(),
// LA(-1) the one before it. Positions outside the input, including LA(0),
// return EOFRune.
func (c *Cursor) LA(i int) rune {
	var at int
	switch {
	case i > 0:
		at = c.pos.Offset + i - 1
	case i < 0:
		at = c.pos.Offset + i
	default:
		return EOFRune
	}
	if at < 0 || at >= c.Size() {
		return EOFRune
	}
	return c.input.At(at)
}

// Consume advances the cursor by one rune. Consuming at the end of input
// panics.
func (c *Cursor) Consume() {
	r := c.LA(1)
	if r == EOFRune {
		panic("scanner.Cursor: EOF consumed")
	}
	c.pos.Offset++
	if r == '\n' {
		c.pos.Line++
		c.pos.Column = 0
	} else {
		c.pos.Column++
	}
}

// Index returns the offset of the next rune.
func (c *Cursor) Index() int {
	return c.pos.Offset
}

// Position returns the current position, i.e. the position of LA(1).
func (c *Cursor) Position() Position {
	if c.pos.Line == 0 {
		return Position{Line: 1}
	}
	return c.pos
}

// Mark returns the current position for a later Rewind.
func (c *Cursor) Mark() Mark {
	return Mark{pos: c.Position()}
}

// Rewind resets the cursor to a mark.
func (c *Cursor) Rewind(m Mark) {
	if m.pos.Offset < 0 || m.pos.Offset > c.Size() {
		panic(fmt.Sprintf("scanner.Cursor: mark %d out of range", m.pos.Offset))
	}
	c.pos = m.pos
}

// Seek sets the cursor to an offset, recomputing line and column.
func (c *Cursor) Seek(offset int) {
	if offset < 0 {
		offset = 0
	} else if offset > c.Size() {
		offset = c.Size()
	}
	c.pos = c.PositionOf(offset)
}

// Text returns the input runes in [from…to), clipped to the input.
func (c *Cursor) Text(from, to int) string {
	if from < 0 {
		from = 0
	}
	if to > c.Size() {
		to = c.Size()
	}
	if from >= to {
		return ""
	}
	return c.input.Slice(from, to)
}

// PositionOf computes line and column for an offset, clipped to the input.
func (c *Cursor) PositionOf(offset int) Position {
	if offset < 0 {
		offset = 0
	} else if offset > c.Size() {
		offset = c.Size()
	}
	if c.lineStarts == nil {
		c.lineStarts = []int{0}
		for i, n := 0, c.Size(); i < n; i++ {
			if c.input.At(i) == '\n' {
				c.lineStarts = append(c.lineStarts, i+1)
			}
		}
	}
	// line is the last line starting at or before offset
	line := sort.Search(len(c.lineStarts), func(l int) bool {
		return c.lineStarts[l] > offset
	})
	return Position{
		Offset: offset,
		Line:   line,
		Column: offset - c.lineStarts[line-1],
	}
}
