package recon

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus tracks how much of an invoice has been covered by payments.
type InvoiceStatus string

const (
	StatusUnpaid        InvoiceStatus = "Unpaid"
	StatusPartiallyPaid InvoiceStatus = "PartiallyPaid"
	StatusFullyPaid     InvoiceStatus = "FullyPaid"
)

// Invoice represents a customer invoice from the invoice workbook.
type Invoice struct {
	Number      string    // invoice number, display only
	VOEN        string    // normalized 10-digit VÖEN, "" if unextractable
	CompanyName string    // customer display name, grouping key for statements
	Date        time.Time // issue date, no time component

	Total     decimal.Decimal // invoiced total, never changes
	Remaining decimal.Decimal // unpaid remainder, decremented during allocation
	Status    InvoiceStatus
}

// Outstanding reports whether the invoice still has an unpaid remainder.
func (inv *Invoice) Outstanding() bool {
	return inv.Remaining.IsPositive()
}

// refreshStatus derives Status from Remaining vs Total.
func (inv *Invoice) refreshStatus() {
	switch {
	case !inv.Remaining.IsPositive():
		inv.Status = StatusFullyPaid
	case inv.Remaining.LessThan(inv.Total):
		inv.Status = StatusPartiallyPaid
	default:
		inv.Status = StatusUnpaid
	}
}

// Payment represents a single incoming credit from the bank history.
// Outgoing debits are filtered out upstream, so Amount is always positive.
type Payment struct {
	VOEN        string    // normalized 10-digit VÖEN of the payer
	Date        time.Time // value date
	Amount      decimal.Decimal
	Description string // free-text memo, opaque to allocation
}

// Outcome classifies what happened to a payment during allocation.
type Outcome string

const (
	// OutcomeMatched means part of the payment was applied to one invoice.
	OutcomeMatched Outcome = "MatchedToInvoice"
	// OutcomeNoMatch means nothing was applied: no invoice with the payer's
	// VÖEN had an open balance.
	OutcomeNoMatch Outcome = "NoMatchFound"
	// OutcomePartialLeftover means the payment covered every open invoice for
	// its VÖEN and money is still left over.
	OutcomePartialLeftover Outcome = "PartialLeftover"
)

// AllocationEvent records one step of the allocation pass. A payment that is
// split across several invoices produces one Matched event per invoice; a
// remainder produces one trailing NoMatch or PartialLeftover event.
type AllocationEvent struct {
	Payment Payment
	Invoice *Invoice // snapshot taken right after the application, nil when no invoice is referenced

	Applied        decimal.Decimal // amount moved from this payment to the invoice; zero for NoMatch
	RemainingAfter decimal.Decimal // invoice remainder after the application, only meaningful with Invoice set
	Leftover       decimal.Decimal // unapplied remainder of the payment, set on NoMatch and PartialLeftover
	Outcome        Outcome
}

// EntryKind tells which side of a company statement a row came from.
type EntryKind string

const (
	EntryInvoice EntryKind = "Invoice"
	EntryPayment EntryKind = "Payment"
)

// LedgerEntry is one chronological row of a company statement.
type LedgerEntry struct {
	Date        time.Time
	Kind        EntryKind
	Description string
	Amount      decimal.Decimal // signed: positive for invoices, negative for payments
	Balance     decimal.Decimal // running balance after this entry
}

// CompanyStatement is the per-company ledger: every invoice and every matched
// payment in date order with a running balance. A positive Total means the
// company still owes money.
type CompanyStatement struct {
	Name    string
	VOENs   []string // distinct VÖENs seen on this company's invoices, in input order
	Entries []LedgerEntry
	Total   decimal.Decimal
}
