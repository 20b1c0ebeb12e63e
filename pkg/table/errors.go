/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: errors.go
Description: Sentinel errors for the observation table. Growth overflows are
designed, run-scoped outcomes; callers match them with errors.Is.
*/

package table

import "errors"

var (
	// ErrColumnOverflow is returned by GrowColumn when the new column would exceed TableMax.
	ErrColumnOverflow = errors.New("table: column overflow")

	// ErrRowOverflow is returned by GrowRow when the new row would reach TableMax.
	ErrRowOverflow = errors.New("table: row overflow")

	// ErrOutOfRange indicates a row or column outside the table capacity.
	ErrOutOfRange = errors.New("table: index out of range")

	// ErrInvalidCapacity indicates a TableMax too small to hold the initial extension row.
	ErrInvalidCapacity = errors.New("table: capacity must be at least 1")

	// ErrNilOracle indicates a table was created without a teacher.
	ErrNilOracle = errors.New("table: nil oracle")
)
