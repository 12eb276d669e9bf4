package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"voenrecon/internal/recon"
)

const reconciliationSheet = "Reconciliation"

var reconciliationHeader = []interface{}{
	"Payment Date", "Payment VÖEN", "Payment Amount", "Payment Description",
	"Outcome",
	"Invoice №", "Company", "Invoice Date", "Invoice Total",
	"Applied", "Invoice Remaining", "Invoice Status", "Leftover",
}

// WriteReconciliation renders the allocation trail plus the still-outstanding
// invoices into a single-sheet workbook at path.
func (w *Writer) WriteReconciliation(path string, result *recon.Result) error {
	const op = "WriteReconciliation"

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName(f.GetSheetName(0), reconciliationSheet)

	styles, err := registerStyles(f)
	if err != nil {
		return fmt.Errorf("%s: failed to register styles: %w", op, err)
	}

	if err := setRow(f, reconciliationSheet, 1, reconciliationHeader); err != nil {
		return fmt.Errorf("%s: failed to write header: %w", op, err)
	}
	if err := styleRow(f, reconciliationSheet, 1, len(reconciliationHeader), styles.header); err != nil {
		return fmt.Errorf("%s: failed to style header: %w", op, err)
	}

	rowNum := 2
	for _, event := range result.Events {
		if err := w.writeEvent(f, styles, rowNum, event); err != nil {
			return fmt.Errorf("%s: failed to write event row %d: %w", op, rowNum, err)
		}
		rowNum++
	}

	// Trailing rows: invoices still carrying an open balance, bank side blank.
	for _, inv := range result.Outstanding() {
		if err := w.writeOutstanding(f, styles, rowNum, inv); err != nil {
			return fmt.Errorf("%s: failed to write outstanding row %d: %w", op, rowNum, err)
		}
		rowNum++
	}

	if err := f.SetColWidth(reconciliationSheet, "A", "M", 16); err != nil {
		return fmt.Errorf("%s: failed to set column widths: %w", op, err)
	}
	if err := f.SetColWidth(reconciliationSheet, "D", "D", 40); err != nil {
		return fmt.Errorf("%s: failed to set description width: %w", op, err)
	}
	if err := f.SetColWidth(reconciliationSheet, "G", "G", 30); err != nil {
		return fmt.Errorf("%s: failed to set company width: %w", op, err)
	}

	if err := save(f, path); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	w.log.Info().
		Str("file", path).
		Int("events", len(result.Events)).
		Int("outstanding_invoices", len(result.Outstanding())).
		Msg("Reconciliation report written")

	return nil
}

// writeEvent renders one allocation event row, filled by outcome.
func (w *Writer) writeEvent(f *excelize.File, styles styleSet, rowNum int, event recon.AllocationEvent) error {
	values := []interface{}{
		event.Payment.Date.Format(dateLayout),
		event.Payment.VOEN,
		event.Payment.Amount.InexactFloat64(),
		event.Payment.Description,
		string(event.Outcome),
		nil, nil, nil, nil, nil, nil, nil, nil,
	}

	style := styles.matched
	switch event.Outcome {
	case recon.OutcomeMatched:
		inv := event.Invoice
		values[5] = inv.Number
		values[6] = inv.CompanyName
		values[7] = inv.Date.Format(dateLayout)
		values[8] = inv.Total.InexactFloat64()
		values[9] = event.Applied.InexactFloat64()
		values[10] = event.RemainingAfter.InexactFloat64()
		values[11] = string(inv.Status)
	case recon.OutcomeNoMatch:
		style = styles.noMatch
		values[12] = event.Leftover.InexactFloat64()
	case recon.OutcomePartialLeftover:
		style = styles.leftover
		values[9] = event.Applied.InexactFloat64()
		values[12] = event.Leftover.InexactFloat64()
	}

	if err := setRow(f, reconciliationSheet, rowNum, values); err != nil {
		return err
	}
	return styleRow(f, reconciliationSheet, rowNum, len(reconciliationHeader), style)
}

// writeOutstanding renders a trailing row for an invoice that was never fully paid.
func (w *Writer) writeOutstanding(f *excelize.File, styles styleSet, rowNum int, inv recon.Invoice) error {
	values := []interface{}{
		nil, nil, nil, nil, nil,
		inv.Number,
		inv.CompanyName,
		inv.Date.Format(dateLayout),
		inv.Total.InexactFloat64(),
		nil,
		inv.Remaining.InexactFloat64(),
		string(inv.Status),
		nil,
	}

	if err := setRow(f, reconciliationSheet, rowNum, values); err != nil {
		return err
	}
	return styleRow(f, reconciliationSheet, rowNum, len(reconciliationHeader), styles.outstanding)
}
