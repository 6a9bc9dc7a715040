/*
Package sparse implements a simple type for sparse integer matrices.
It is mainly used for parser tables (GOTO-table and ACTION-table).
Every entry in the table is either a single int32 or a pair (int32,int32),
the latter being used to record conflicting parser actions.

This implementation uses the COO algorithm (a.k.a. triplet-encoding), with
triplets kept in row-major order.

   https://medium.com/@jmaxg3/101-ways-to-store-a-sparse-matrix-c7f2bf15a229
   https://www.coin-or.org/Ipopt/documentation/node38.html


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sparse

import (
	"fmt"
	"sort"
)

// IntMatrix is a type for a spare matrix of integer values. Construct with
//
//     M := NewIntMatrix(10, 10, -1)  // last parameter is M's null-value
//
// Now
//
//     M.Set(2, 3, 4711)              // set a value
//     v := M.Value(2, 3)             // returns 4711
//     M.Add(2, 3, 123)               // add a second value
//     cnt := M.ValueCount()          // still returns 1 (one position set)
//     v = M.Value(10, 10)            // returns -1, i.e. the null-value
//
// Values cannot be deleted, but may be overwritten with the null-value. Space for
// null-values is not re-claimed. Positions outside of M's extent are ignored
// by Set and Add.
type IntMatrix struct {
	values  []triplet
	rowcnt  int
	colcnt  int
	nullval int32
}

// triplet values to store, a position with a pair of values
type triplet struct {
	row, col int
	a, b     int32
}

// NewIntMatrix creates a new matrix for int, size m x n. The 3rd argument is a null-value,
// indicating empty entries (use DefaultNullValue if you haven't any specific
// requirements).
func NewIntMatrix(m, n int, nullValue int32) *IntMatrix {
	return &IntMatrix{
		rowcnt:  m,
		colcnt:  n,
		nullval: nullValue,
	}
}

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// M returns the row count.
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

// ValueCount returns the number of positions set in the matrix.
func (m *IntMatrix) ValueCount() int {
	return len(m.values)
}

// Value returns the primary value at position (i,j), or NullValue
func (m *IntMatrix) Value(i, j int) int32 {
	a, _ := m.Values(i, j)
	return a
}

// Values returns the pair of values at position (i,j), or (NullValue, NullValue)
func (m *IntMatrix) Values(i, j int) (int32, int32) {
	if k, found := m.search(i, j); found {
		return m.values[k].a, m.values[k].b
	}
	return m.nullval, m.nullval
}

// Set a value in the matrix at position (i,j), replacing all previous values.
func (m *IntMatrix) Set(i, j int, value int32) *IntMatrix {
	return m.setOrAdd(i, j, value, false)
}

// Add a value in the matrix at position (i,j). If (i,j) already holds a pair of
// values, the second one is overwritten.
func (m *IntMatrix) Add(i, j int, value int32) *IntMatrix {
	return m.setOrAdd(i, j, value, true)
}

func (m *IntMatrix) setOrAdd(i, j int, value int32, doAdd bool) *IntMatrix {
	if i < 0 || i >= m.rowcnt || j < 0 || j >= m.colcnt {
		return m
	}
	k, found := m.search(i, j)
	if found {
		t := &m.values[k]
		switch {
		case !doAdd:
			t.a, t.b = value, m.nullval
		case t.a == m.nullval:
			t.a = value
		default:
			t.b = value
		}
		return m
	}
	tnew := triplet{row: i, col: j, a: value, b: m.nullval}
	m.values = append(m.values, tnew)  // make room
	copy(m.values[k+1:], m.values[k:]) // shift remainder one index to the right
	m.values[k] = tnew
	return m
}

// search finds the position of (i,j) in the triplet list, or the position
// to insert it.
func (m *IntMatrix) search(i, j int) (int, bool) {
	k := sort.Search(len(m.values), func(k int) bool {
		t := m.values[k]
		return t.row > i || t.row == i && t.col >= j
	})
	found := k < len(m.values) && m.values[k].row == i && m.values[k].col == j
	return k, found
}

func (t triplet) String() string {
	return fmt.Sprintf("(%d,%d)=[%d,%d]", t.row, t.col, t.a, t.b)
}
