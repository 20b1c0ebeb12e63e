/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: render.go
Description: Text dump of the observation table with row and column headers.
Unset cells are printed blank.
*/

package table

import (
	"fmt"
	"strings"
)

// String renders the whole capacity of the table, not just the active rectangle
func (t *Table) String() string {
	var b strings.Builder

	b.WriteString("   ")
	for col := 0; col <= t.tableMax; col++ {
		fmt.Fprintf(&b, "%2d ", col)
	}
	b.WriteString("\n")

	for row := 0; row <= t.tableMax; row++ {
		fmt.Fprintf(&b, "%2d ", row)
		for col := 0; col <= t.tableMax; col++ {
			c := t.cells[t.offset(row, col)]
			if c == Unset {
				b.WriteString("   ")
			} else {
				fmt.Fprintf(&b, "%2s ", c)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
