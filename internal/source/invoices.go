// Package source contains the two normalizers feeding the reconciliation
// core: the invoice workbook reader and the bank history export reader.
// Malformed rows are skipped with a warning; only a missing or unreadable
// file is an error.
package source

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"voenrecon/internal/logger"
	"voenrecon/internal/recon"
	"voenrecon/internal/voen"
)

// Invoice workbook layout: 11 preamble rows, one header row, then data.
// Only five of the export's columns matter.
const (
	invoicePreambleRows = 11

	invColNumber  = 0  // A: invoice number
	invColVOEN    = 1  // B: customer VÖEN
	invColCompany = 2  // C: customer name
	invColDate    = 5  // F: invoice date, DD-MM-YYYY
	invColTotal   = 19 // T: invoiced total
)

var invoiceDateLayouts = []string{
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"2006-01-02",
}

// InvoiceReader loads customer invoices from the billing system's .xlsx export.
type InvoiceReader struct {
	log zerolog.Logger
}

// NewInvoiceReader creates a new invoice workbook reader
func NewInvoiceReader() *InvoiceReader {
	return &InvoiceReader{
		log: logger.WithComponent("invoice-reader"),
	}
}

// Read loads and normalizes all invoices from the workbook at path.
func (r *InvoiceReader) Read(path string) ([]recon.Invoice, error) {
	const op = "Read"

	r.log.Info().Str("file", path).Msg("Loading invoices")

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open invoice workbook %s: %w", op, path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: %s: %w", op, path, ErrEmptyWorkbook)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read sheet %s: %w", op, sheets[0], err)
	}

	// Skip the preamble and the header row that follows it.
	start := invoicePreambleRows + 1
	if len(rows) <= start {
		r.log.Warn().Str("file", path).Int("rows", len(rows)).Msg("Invoice workbook holds no data rows")
		return nil, nil
	}

	var invoices []recon.Invoice
	for i, row := range rows[start:] {
		rowNum := start + i + 1

		inv, ok := r.parseRow(row, rowNum)
		if !ok {
			continue
		}
		invoices = append(invoices, inv)
	}

	r.log.Info().
		Int("total_rows", len(rows)-start).
		Int("parsed_invoices", len(invoices)).
		Str("file", path).
		Msg("Invoices loaded")

	return invoices, nil
}

// parseRow normalizes a single data row. Rows that cannot yield a dated,
// non-negative invoice are skipped.
func (r *InvoiceReader) parseRow(row []string, rowNum int) (recon.Invoice, bool) {
	number := cellString(row, invColNumber)
	rawVOEN := cellString(row, invColVOEN)
	company := cellString(row, invColCompany)
	rawDate := cellString(row, invColDate)
	rawTotal := cellString(row, invColTotal)

	// Exports usually end with a few entirely blank rows.
	if number == "" && rawVOEN == "" && company == "" && rawDate == "" && rawTotal == "" {
		return recon.Invoice{}, false
	}

	date, err := parseDate(rawDate, invoiceDateLayouts...)
	if err != nil {
		r.log.Warn().
			Err(err).
			Int("row", rowNum).
			Str("invoice", number).
			Msg("Skipping invoice with unparseable date")
		return recon.Invoice{}, false
	}

	total, err := parseAmount(rawTotal)
	if err != nil {
		r.log.Warn().
			Err(err).
			Int("row", rowNum).
			Str("invoice", number).
			Msg("Skipping invoice with unparseable total")
		return recon.Invoice{}, false
	}
	if total.IsNegative() {
		r.log.Warn().
			Int("row", rowNum).
			Str("invoice", number).
			Str("total", total.String()).
			Msg("Skipping invoice with negative total")
		return recon.Invoice{}, false
	}

	inv := recon.Invoice{
		Number:      number,
		VOEN:        voen.Normalize(rawVOEN),
		CompanyName: company,
		Date:        date,
		Total:       total,
		Remaining:   total,
		Status:      recon.StatusUnpaid,
	}
	return inv, true
}
