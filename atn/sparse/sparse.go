/*
Package sparse implements a simple type for sparse integer matrices.
It is mainly used for lexer DFA caches, where rows are DFA states and
columns are input characters. Matrices grow on demand and rows are not
bounded in advance.

This implementation uses the COO algorithm (a.k.a. triplet-encoding), with
triplets kept sorted in row-major order.

   https://medium.com/@jmaxg3/101-ways-to-store-a-sparse-matrix-c7f2bf15a229
   https://www.coin-or.org/Ipopt/documentation/node38.html


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sparse

import (
	"fmt"
	"sort"
	"strings"
)

// IntMatrix is a type for a sparse matrix of integer values. Construct with
//
//     M := NewIntMatrix(128, -1)  // 128 columns, -1 is M's null-value
//
// Now
//
//     M.Set(2, 3, 4711)           // set a value
//     v := M.Value(2, 3)          // returns 4711
//     cnt := M.ValueCount()       // returns 1 (one position set)
//     v = M.Value(10, 10)         // returns -1, i.e. the null-value
//
// Values cannot be deleted, but may be overwritten with the null-value. Space for
// null-values is not re-claimed.
type IntMatrix struct {
	values  []triplet
	rowcnt  int
	colcnt  int
	nullval int32
}

// Triplet values to store
type triplet struct {
	row, col int
	value    int32
}

// NewIntMatrix creates a new matrix for int with n columns. Rows are added
// on demand. The 2nd argument is a null-value, indicating empty entries (use
// DefaultNullValue if you haven't any specific requirements).
func NewIntMatrix(n int, nullValue int32) *IntMatrix {
	return &IntMatrix{
		values:  []triplet{},
		colcnt:  n,
		nullval: nullValue,
	}
}

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// M returns the row count, i.e. one more than the highest row index set.
func (m *IntMatrix) M() int {
	return m.rowcnt
}

// N returns the column count.
func (m *IntMatrix) N() int {
	return m.colcnt
}

// NullValue returns this matrix' null value
func (m *IntMatrix) NullValue() int32 {
	return m.nullval
}

// ValueCount returns the number of values in the matrix.
func (m *IntMatrix) ValueCount() int {
	return len(m.values)
}

// Value returns the value at position (i,j), or NullValue.
func (m *IntMatrix) Value(i, j int) int32 {
	if k, found := m.search(i, j); found {
		return m.values[k].value
	}
	return m.nullval
}

// Set a value in the matrix at position (i,j). Column indices have to be
// in the range [0,N()), otherwise Set panics.
func (m *IntMatrix) Set(i, j int, value int32) *IntMatrix {
	if i < 0 || j < 0 || j >= m.colcnt {
		panic(fmt.Sprintf("sparse.IntMatrix.Set: index (%d,%d) out of range", i, j))
	}
	k, found := m.search(i, j)
	if found { // value already present
		m.values[k].value = value
		return m
	}
	tnew := triplet{row: i, col: j, value: value}
	// the following 3 lines have to work for k being the right edge of v or not
	m.values = append(m.values, tnew)  // make room
	copy(m.values[k+1:], m.values[k:]) // copy remainder values one index to right
	m.values[k] = tnew                 // if not append-case: insert new triplet
	if i >= m.rowcnt {
		m.rowcnt = i + 1
	}
	return m
}

// search returns the position of (i,j) in the triplet list, or the position
// where (i,j) would have to be inserted.
func (m *IntMatrix) search(i, j int) (int, bool) {
	k := sort.Search(len(m.values), func(k int) bool {
		return !m.values[k].storedLeftOf(i, j)
	})
	return k, k < len(m.values) && m.values[k].storedAt(i, j)
}

func (t *triplet) storedLeftOf(i, j int) bool {
	return t.row < i || t.row == i && t.col < j
}

func (t *triplet) storedAt(i, j int) bool {
	return (t.row == i && t.col == j)
}

func (m *IntMatrix) String() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("IntMatrix(%d×%d|%d)[", m.rowcnt, m.colcnt, len(m.values)))
	for k, t := range m.values {
		if k > 0 {
			b.WriteString(" ")
		}
		b.WriteString(fmt.Sprintf("(%d,%d)=%d", t.row, t.col, t.value))
	}
	b.WriteString("]")
	return b.String()
}
