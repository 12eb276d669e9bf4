package report

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"voenrecon/internal/recon"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sheetRows(t *testing.T, path, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestWriteReconciliation(t *testing.T) {
	inv := recon.Invoice{
		Number:      "101",
		VOEN:        "1234567890",
		CompanyName: "Alpha LLC",
		Date:        day(2024, 1, 1),
		Total:       decimal.NewFromInt(1000),
		Remaining:   decimal.NewFromInt(300),
		Status:      recon.StatusPartiallyPaid,
	}
	pay := recon.Payment{
		VOEN:        "1234567890",
		Date:        day(2024, 3, 1),
		Amount:      decimal.NewFromInt(700),
		Description: "invoice 101 partial",
	}
	stray := recon.Payment{
		VOEN:        "9999999999",
		Date:        day(2024, 3, 2),
		Amount:      decimal.NewFromInt(50),
		Description: "unknown payer",
	}

	result := &recon.Result{
		Events: []recon.AllocationEvent{
			{
				Payment:        pay,
				Invoice:        &inv,
				Applied:        decimal.NewFromInt(700),
				RemainingAfter: decimal.NewFromInt(300),
				Outcome:        recon.OutcomeMatched,
			},
			{
				Payment:  stray,
				Applied:  decimal.Zero,
				Leftover: decimal.NewFromInt(50),
				Outcome:  recon.OutcomeNoMatch,
			},
		},
		Invoices: []recon.Invoice{inv},
	}

	path := filepath.Join(t.TempDir(), "reconciliation_report.xlsx")
	require.NoError(t, NewWriter().WriteReconciliation(path, result))

	rows := sheetRows(t, path, "Reconciliation")
	// Header, two events, one trailing outstanding invoice.
	require.Len(t, rows, 4)

	assert.Equal(t, "Payment Date", rows[0][0])

	matched := rows[1]
	assert.Equal(t, "01.03.2024", matched[0])
	assert.Equal(t, "1234567890", matched[1])
	assert.Equal(t, "700", matched[2])
	assert.Equal(t, string(recon.OutcomeMatched), matched[4])
	assert.Equal(t, "101", matched[5])
	assert.Equal(t, "Alpha LLC", matched[6])
	assert.Equal(t, "300", matched[10])
	assert.Equal(t, string(recon.StatusPartiallyPaid), matched[11])

	noMatch := rows[2]
	assert.Equal(t, "9999999999", noMatch[1])
	assert.Equal(t, string(recon.OutcomeNoMatch), noMatch[4])
	assert.Equal(t, "50", noMatch[12])

	outstanding := rows[3]
	assert.Equal(t, "", outstanding[0])
	assert.Equal(t, "101", outstanding[5])
	assert.Equal(t, "300", outstanding[10])
	assert.Equal(t, string(recon.StatusPartiallyPaid), outstanding[11])
}

func TestWriteCompanies(t *testing.T) {
	statements := []recon.CompanyStatement{
		{
			Name:  "Alpha LLC",
			VOENs: []string{"1234567890"},
			Entries: []recon.LedgerEntry{
				{
					Date:        day(2024, 1, 1),
					Kind:        recon.EntryInvoice,
					Description: "Invoice 101",
					Amount:      decimal.NewFromInt(1000),
					Balance:     decimal.NewFromInt(1000),
				},
				{
					Date:        day(2024, 2, 1),
					Kind:        recon.EntryPayment,
					Description: "wire transfer",
					Amount:      decimal.NewFromInt(-600),
					Balance:     decimal.NewFromInt(400),
				},
			},
			Total: decimal.NewFromInt(400),
		},
		{
			Name:    "Beta LLC",
			VOENs:   []string{"1111111111"},
			Entries: nil,
			Total:   decimal.Zero,
		},
	}

	path := filepath.Join(t.TempDir(), "company_report.xlsx")
	require.NoError(t, NewWriter().WriteCompanies(path, statements))

	rows := sheetRows(t, path, "Companies")

	assert.Equal(t, "Alpha LLC (VÖEN: 1234567890)", rows[0][0])
	assert.Equal(t, "Date", rows[1][0])

	first := rows[2]
	assert.Equal(t, "01.01.2024", first[0])
	assert.Equal(t, string(recon.EntryInvoice), first[1])
	assert.Equal(t, "Invoice 101", first[2])
	assert.Equal(t, "1000", first[3])
	assert.Equal(t, "1000", first[4])

	second := rows[3]
	assert.Equal(t, string(recon.EntryPayment), second[1])
	assert.Equal(t, "-600", second[3])
	assert.Equal(t, "400", second[4])

	totals := rows[4]
	assert.Equal(t, "Total", totals[2])
	assert.Equal(t, "400", totals[4])

	// Second company block starts after the spacer row.
	assert.Equal(t, "Beta LLC (VÖEN: 1111111111)", rows[6][0])
}

func TestWriteReconciliationUnwritablePath(t *testing.T) {
	result := &recon.Result{}
	err := NewWriter().WriteReconciliation(filepath.Join(t.TempDir(), "missing-dir", "report.xlsx"), result)
	require.Error(t, err)
}
