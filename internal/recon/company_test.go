package recon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedInvoice(number, voen, company string, date time.Time, total int64) Invoice {
	inv := invoice(number, voen, date, total)
	inv.CompanyName = company
	return inv
}

func TestBuildGroupsByCompanyName(t *testing.T) {
	invoices := []Invoice{
		namedInvoice("1", "1234567890", "Alpha LLC", day(2024, 1, 1), 1000),
		namedInvoice("2", "1111111111", "Beta LLC", day(2024, 1, 5), 300),
		namedInvoice("3", "1234567890", "Alpha LLC", day(2024, 2, 1), 500),
	}
	payments := []Payment{payment("1234567890", day(2024, 3, 1), 700)}

	statements := NewAggregator().Build(invoices, payments)

	require.Len(t, statements, 2)
	assert.Equal(t, "Alpha LLC", statements[0].Name)
	assert.Equal(t, "Beta LLC", statements[1].Name)

	alpha := statements[0]
	assert.Equal(t, []string{"1234567890"}, alpha.VOENs)
	require.Len(t, alpha.Entries, 3)
	// Invoiced 1500, paid 700.
	requireDecimal(t, 800, alpha.Total)

	beta := statements[1]
	require.Len(t, beta.Entries, 1)
	requireDecimal(t, 300, beta.Total)
}

func TestBuildRunningBalance(t *testing.T) {
	invoices := []Invoice{
		namedInvoice("1", "1234567890", "Alpha LLC", day(2024, 1, 1), 1000),
		namedInvoice("2", "1234567890", "Alpha LLC", day(2024, 3, 1), 500),
	}
	payments := []Payment{payment("1234567890", day(2024, 2, 1), 600)}

	statements := NewAggregator().Build(invoices, payments)

	require.Len(t, statements, 1)
	entries := statements[0].Entries
	require.Len(t, entries, 3)

	// Chronological: invoice (Jan), payment (Feb), invoice (Mar).
	assert.Equal(t, EntryInvoice, entries[0].Kind)
	requireDecimal(t, 1000, entries[0].Balance)

	assert.Equal(t, EntryPayment, entries[1].Kind)
	requireDecimal(t, -600, entries[1].Amount)
	requireDecimal(t, 400, entries[1].Balance)

	assert.Equal(t, EntryInvoice, entries[2].Kind)
	requireDecimal(t, 900, entries[2].Balance)

	requireDecimal(t, 900, statements[0].Total)
}

func TestBuildUsesOriginalInvoiceTotals(t *testing.T) {
	// The statement shows what was invoiced, not the post-allocation remainder.
	inv := namedInvoice("1", "1234567890", "Alpha LLC", day(2024, 1, 1), 1000)
	inv.Remaining = dec(250)
	inv.Status = StatusPartiallyPaid

	statements := NewAggregator().Build([]Invoice{inv}, nil)

	require.Len(t, statements, 1)
	require.Len(t, statements[0].Entries, 1)
	requireDecimal(t, 1000, statements[0].Entries[0].Amount)
}

func TestBuildDropsPaymentsWithoutCompany(t *testing.T) {
	invoices := []Invoice{
		namedInvoice("1", "1234567890", "Alpha LLC", day(2024, 1, 1), 1000),
	}
	payments := []Payment{
		payment("1234567890", day(2024, 2, 1), 400),
		payment("9999999999", day(2024, 2, 2), 50), // no company has this VÖEN
	}

	statements := NewAggregator().Build(invoices, payments)

	require.Len(t, statements, 1)
	require.Len(t, statements[0].Entries, 2)
	requireDecimal(t, 600, statements[0].Total)
}

func TestBuildSharedVOENGoesToFirstCompany(t *testing.T) {
	// Two company names erroneously sharing a VÖEN: the payment goes to the
	// company that appeared first in the invoice input.
	invoices := []Invoice{
		namedInvoice("1", "1234567890", "Alpha LLC", day(2024, 1, 1), 1000),
		namedInvoice("2", "1234567890", "Alpha Trading LLC", day(2024, 1, 2), 200),
	}
	payments := []Payment{payment("1234567890", day(2024, 2, 1), 300)}

	statements := NewAggregator().Build(invoices, payments)

	require.Len(t, statements, 2)
	requireDecimal(t, 700, statements[0].Total)
	requireDecimal(t, 200, statements[1].Total)
}

func TestBuildCompanyWithoutPayments(t *testing.T) {
	invoices := []Invoice{
		namedInvoice("1", "1234567890", "Alpha LLC", day(2024, 1, 1), 1000),
		namedInvoice("2", "1234567890", "Alpha LLC", day(2024, 2, 1), 500),
	}

	statements := NewAggregator().Build(invoices, nil)

	require.Len(t, statements, 1)
	entries := statements[0].Entries
	require.Len(t, entries, 2)
	requireDecimal(t, 1000, entries[0].Balance)
	requireDecimal(t, 1500, entries[1].Balance)
	requireDecimal(t, 1500, statements[0].Total)
}

func TestBuildCollectsDistinctVOENs(t *testing.T) {
	invoices := []Invoice{
		namedInvoice("1", "1234567890", "Alpha LLC", day(2024, 1, 1), 100),
		namedInvoice("2", "1111111111", "Alpha LLC", day(2024, 1, 2), 100),
		namedInvoice("3", "1234567890", "Alpha LLC", day(2024, 1, 3), 100),
	}

	statements := NewAggregator().Build(invoices, nil)

	require.Len(t, statements, 1)
	assert.Equal(t, []string{"1234567890", "1111111111"}, statements[0].VOENs)
}

func TestBuildSameDateKeepsInvoiceBeforeLaterEntries(t *testing.T) {
	// Stable sort: same-date entries keep their encounter order, invoices
	// first since they are appended before payments.
	invoices := []Invoice{
		namedInvoice("1", "1234567890", "Alpha LLC", day(2024, 1, 1), 100),
	}
	payments := []Payment{payment("1234567890", day(2024, 1, 1), 100)}

	statements := NewAggregator().Build(invoices, payments)

	entries := statements[0].Entries
	require.Len(t, entries, 2)
	assert.Equal(t, EntryInvoice, entries[0].Kind)
	assert.Equal(t, EntryPayment, entries[1].Kind)
	requireDecimal(t, 0, statements[0].Total)
}
