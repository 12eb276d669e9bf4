package source

import "errors"

// Common source reading errors
var (
	// ErrNoTable is returned when the bank history export contains no HTML table.
	ErrNoTable = errors.New("no table found in bank history export")

	// ErrEmptyWorkbook is returned when the invoice workbook has no sheets.
	ErrEmptyWorkbook = errors.New("invoice workbook has no sheets")
)
