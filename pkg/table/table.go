/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: table.go
Description: Observation table for the unary L* learner. Rows are prefixes, columns
are suffixes and every cell holds the teacher's answer for the string of length
row+col. Storage is a capacity-bounded row-major buffer of tri-state cells with
explicit bounds checks. The active rectangle (rows 0..maxRow+1, cols 0..maxCol)
never contains unset cells.
*/

package table

import (
	"fmt"

	"github.com/kleascm/lstar-probe/pkg/teacher"
)

// Cell is the tri-state value of one observation
type Cell uint8

const (
	Unset Cell = iota
	Reject
	Accept
)

// CellOf converts a membership answer into a cell value
func CellOf(accepted bool) Cell {
	if accepted {
		return Accept
	}
	return Reject
}

// String returns the single character used in table dumps
func (c Cell) String() string {
	switch c {
	case Reject:
		return "0"
	case Accept:
		return "1"
	default:
		return " "
	}
}

// Table is the learner's observation table.
// Capacity is (tableMax+1) x (tableMax+1); maxRow < tableMax and maxCol <= tableMax always hold.
type Table struct {
	oracle   teacher.Oracle
	tableMax int
	maxRow   int
	maxCol   int
	cells    []Cell // row-major, offset = row*(tableMax+1) + col
}

// New creates a fresh table and fills the initial rectangle: cells [0][0] and [1][0].
func New(oracle teacher.Oracle, tableMax int) (*Table, error) {
	if oracle == nil {
		return nil, ErrNilOracle
	}
	if tableMax < 1 {
		return nil, fmt.Errorf("tableMax=%d: %w", tableMax, ErrInvalidCapacity)
	}

	side := tableMax + 1
	t := &Table{
		oracle:   oracle,
		tableMax: tableMax,
		cells:    make([]Cell, side*side),
	}
	t.fill(0, 0)
	t.fill(1, 0)
	return t, nil
}

// TableMax returns the hard bound on rows and columns
func (t *Table) TableMax() int { return t.tableMax }

// MaxRow returns current_max_row: the last row of S
func (t *Table) MaxRow() int { return t.maxRow }

// MaxCol returns current_max_col: the last suffix column
func (t *Table) MaxCol() int { return t.maxCol }

// At returns the cell at (row, col), or ErrOutOfRange outside the capacity.
func (t *Table) At(row, col int) (Cell, error) {
	if !t.inBounds(row, col) {
		return Unset, fmt.Errorf("At(%d,%d): %w", row, col, ErrOutOfRange)
	}
	return t.cells[t.offset(row, col)], nil
}

// Hypothesis returns whether the hypothesis accepts in the state represented by row.
// Column 0 carries the empty suffix, so this is the row's own acceptance.
func (t *Table) Hypothesis(row int) (bool, error) {
	c, err := t.At(row, 0)
	if err != nil {
		return false, err
	}
	return c == Accept, nil
}

// GrowColumn adds the next suffix column and fills it for rows 0..maxRow+1.
// Returns ErrColumnOverflow, leaving the table untouched, if the column would exceed TableMax.
func (t *Table) GrowColumn() error {
	next := t.maxCol + 1
	if next > t.tableMax {
		return fmt.Errorf("column %d > %d: %w", next, t.tableMax, ErrColumnOverflow)
	}
	t.maxCol = next
	for row := 0; row <= t.maxRow+1; row++ {
		t.fill(row, next)
	}
	return nil
}

// GrowRow moves the extension row into S and fills the new extension row across 0..maxCol.
// Returns ErrRowOverflow, leaving the table untouched, if the row would reach TableMax.
func (t *Table) GrowRow() error {
	next := t.maxRow + 1
	if next >= t.tableMax {
		return fmt.Errorf("row %d >= %d: %w", next, t.tableMax, ErrRowOverflow)
	}
	t.maxRow = next
	for col := 0; col <= t.maxCol; col++ {
		t.fill(next+1, col)
	}
	return nil
}

// Refine resets maxRow to min(counterexample, TableMax-1) and rebuilds every cell of
// the active rectangle from membership queries.
func (t *Table) Refine(counterexample int) error {
	if counterexample < 0 {
		return fmt.Errorf("Refine(%d): %w", counterexample, ErrOutOfRange)
	}
	t.maxRow = min(counterexample, t.tableMax-1)
	t.Rebuild()
	return nil
}

// Rebuild refills the whole active rectangle. Not an incremental patch.
func (t *Table) Rebuild() {
	for row := 0; row <= t.maxRow+1; row++ {
		for col := 0; col <= t.maxCol; col++ {
			t.fill(row, col)
		}
	}
}

// IsClosed reports whether some row of S equals the single extension row maxRow+1.
// This is narrower than the textbook "every row of S·A has a match in S".
func (t *Table) IsClosed() bool {
	_, ok := t.MatchExtensionRow()
	return ok
}

// MatchExtensionRow returns the first row in 0..maxRow equal to row maxRow+1
func (t *Table) MatchExtensionRow() (int, bool) {
	ext := t.maxRow + 1
	for row := 0; row <= t.maxRow; row++ {
		if t.rowsEqual(row, ext) {
			return row, true
		}
	}
	return 0, false
}

// IsConsistent reports whether every pair of equal rows i<k in S has equal successors i+1, k+1.
func (t *Table) IsConsistent() bool {
	for i := 0; i < t.maxRow; i++ {
		for k := i + 1; k <= t.maxRow; k++ {
			if t.rowsEqual(i, k) && !t.rowsEqual(i+1, k+1) {
				return false
			}
		}
	}
	return true
}

// Filled reports whether the active rectangle is free of unset cells
func (t *Table) Filled() bool {
	for row := 0; row <= t.maxRow+1; row++ {
		for col := 0; col <= t.maxCol; col++ {
			if t.cells[t.offset(row, col)] == Unset {
				return false
			}
		}
	}
	return true
}

// Row returns a copy of the active columns of a row
func (t *Table) Row(row int) ([]Cell, error) {
	if !t.inBounds(row, 0) {
		return nil, fmt.Errorf("Row(%d): %w", row, ErrOutOfRange)
	}
	out := make([]Cell, t.maxCol+1)
	copy(out, t.cells[t.offset(row, 0):t.offset(row, t.maxCol)+1])
	return out, nil
}

func (t *Table) rowsEqual(a, b int) bool {
	for col := 0; col <= t.maxCol; col++ {
		if t.cells[t.offset(a, col)] != t.cells[t.offset(b, col)] {
			return false
		}
	}
	return true
}

func (t *Table) fill(row, col int) {
	t.cells[t.offset(row, col)] = CellOf(t.oracle.MembershipQuery(row + col))
}

func (t *Table) inBounds(row, col int) bool {
	return row >= 0 && row <= t.tableMax && col >= 0 && col <= t.tableMax
}

func (t *Table) offset(row, col int) int {
	return row*(t.tableMax+1) + col
}
