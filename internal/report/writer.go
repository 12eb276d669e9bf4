// Package report renders the allocation results into two presentational
// workbooks: the transaction-level reconciliation report and the per-company
// statements.
package report

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"voenrecon/internal/logger"
)

// dateLayout is the display format for all report dates.
const dateLayout = "02.01.2006"

// Row fill colors keyed by what the row represents.
const (
	colorHeader      = "D9D9D9" // gray
	colorMatched     = "C6EFCE" // green
	colorNoMatch     = "FFC7CE" // red
	colorLeftover    = "FFEB9C" // yellow
	colorOutstanding = "FCD5B4" // orange
)

// Writer renders reconciliation outputs as .xlsx workbooks.
type Writer struct {
	log zerolog.Logger
}

// NewWriter creates a new report writer
func NewWriter() *Writer {
	return &Writer{
		log: logger.WithComponent("report-writer"),
	}
}

// styleSet holds the cell styles registered on one workbook.
type styleSet struct {
	header      int
	matched     int
	noMatch     int
	leftover    int
	outstanding int
}

// registerStyles creates the shared styles on a fresh workbook.
func registerStyles(f *excelize.File) (styleSet, error) {
	fill := func(color string, bold bool) (int, error) {
		return f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: bold},
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
		})
	}

	var s styleSet
	var err error
	if s.header, err = fill(colorHeader, true); err != nil {
		return s, err
	}
	if s.matched, err = fill(colorMatched, false); err != nil {
		return s, err
	}
	if s.noMatch, err = fill(colorNoMatch, false); err != nil {
		return s, err
	}
	if s.leftover, err = fill(colorLeftover, false); err != nil {
		return s, err
	}
	if s.outstanding, err = fill(colorOutstanding, false); err != nil {
		return s, err
	}
	return s, nil
}

// setRow writes values left to right starting at column 1 of the given row.
// Nil values leave the cell blank.
func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, value := range values {
		if value == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}

// styleRow applies a style across the first width columns of a row.
func styleRow(f *excelize.File, sheet string, row, width, style int) error {
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(width, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, last, style)
}

// save writes the workbook to path.
func save(f *excelize.File, path string) error {
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}
