package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"voenrecon/internal/recon"
)

const companySheet = "Companies"

var companyHeader = []interface{}{"Date", "Kind", "Description", "Amount", "Balance"}

// WriteCompanies renders one statement block per company into a single-sheet
// workbook at path: a name header with the company's VÖEN list, the dated
// entries with running balances, and a totals row.
func (w *Writer) WriteCompanies(path string, statements []recon.CompanyStatement) error {
	const op = "WriteCompanies"

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName(f.GetSheetName(0), companySheet)

	styles, err := registerStyles(f)
	if err != nil {
		return fmt.Errorf("%s: failed to register styles: %w", op, err)
	}

	rowNum := 1
	for _, statement := range statements {
		rowNum, err = w.writeStatement(f, styles, rowNum, statement)
		if err != nil {
			return fmt.Errorf("%s: failed to write statement for %q: %w", op, statement.Name, err)
		}
	}

	if err := f.SetColWidth(companySheet, "A", "E", 16); err != nil {
		return fmt.Errorf("%s: failed to set column widths: %w", op, err)
	}
	if err := f.SetColWidth(companySheet, "C", "C", 44); err != nil {
		return fmt.Errorf("%s: failed to set description width: %w", op, err)
	}

	if err := save(f, path); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	w.log.Info().
		Str("file", path).
		Int("companies", len(statements)).
		Msg("Company report written")

	return nil
}

// writeStatement renders one company block and returns the next free row.
func (w *Writer) writeStatement(f *excelize.File, styles styleSet, rowNum int, statement recon.CompanyStatement) (int, error) {
	title := statement.Name
	if len(statement.VOENs) > 0 {
		title = fmt.Sprintf("%s (VÖEN: %s)", statement.Name, strings.Join(statement.VOENs, ", "))
	}
	if err := setRow(f, companySheet, rowNum, []interface{}{title}); err != nil {
		return rowNum, err
	}
	if err := styleRow(f, companySheet, rowNum, len(companyHeader), styles.header); err != nil {
		return rowNum, err
	}
	rowNum++

	if err := setRow(f, companySheet, rowNum, companyHeader); err != nil {
		return rowNum, err
	}
	if err := styleRow(f, companySheet, rowNum, len(companyHeader), styles.header); err != nil {
		return rowNum, err
	}
	rowNum++

	for _, entry := range statement.Entries {
		values := []interface{}{
			entry.Date.Format(dateLayout),
			string(entry.Kind),
			entry.Description,
			entry.Amount.InexactFloat64(),
			entry.Balance.InexactFloat64(),
		}
		if err := setRow(f, companySheet, rowNum, values); err != nil {
			return rowNum, err
		}
		style := styles.matched
		if entry.Kind == recon.EntryInvoice {
			style = styles.outstanding
		}
		if err := styleRow(f, companySheet, rowNum, len(companyHeader), style); err != nil {
			return rowNum, err
		}
		rowNum++
	}

	totals := []interface{}{nil, nil, "Total", nil, statement.Total.InexactFloat64()}
	if err := setRow(f, companySheet, rowNum, totals); err != nil {
		return rowNum, err
	}
	if err := styleRow(f, companySheet, rowNum, len(companyHeader), styles.header); err != nil {
		return rowNum, err
	}
	rowNum++

	// Spacer between company blocks.
	rowNum++

	return rowNum, nil
}
