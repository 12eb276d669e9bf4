package recon

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"voenrecon/internal/logger"
)

// Aggregator regroups invoices and payments into per-company statements.
// Company identity is the invoice's display name; the VÖENs found on a
// company's invoices are the only link between the two sides.
type Aggregator struct {
	log zerolog.Logger
}

// NewAggregator creates a new company aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{
		log: logger.WithComponent("company-aggregator"),
	}
}

type companyAccount struct {
	name    string
	voens   []string
	voenSet map[string]struct{}
	entries []LedgerEntry
}

// Build produces one statement per company, in the order companies first
// appear in the invoice input. A payment is attributed to the first company
// (in that same order) whose VÖEN set contains the payment's VÖEN; payments
// matching no company are dropped here; the allocation report still shows
// them as NoMatchFound.
func (a *Aggregator) Build(invoices []Invoice, payments []Payment) []CompanyStatement {
	var order []string
	accounts := make(map[string]*companyAccount)

	account := func(name string) *companyAccount {
		acc, ok := accounts[name]
		if !ok {
			acc = &companyAccount{name: name, voenSet: make(map[string]struct{})}
			accounts[name] = acc
			order = append(order, name)
		}
		return acc
	}

	// Invoices are the sole source of the name-to-VÖEN mapping.
	for _, inv := range invoices {
		acc := account(inv.CompanyName)
		if _, seen := acc.voenSet[inv.VOEN]; !seen && inv.VOEN != "" {
			acc.voenSet[inv.VOEN] = struct{}{}
			acc.voens = append(acc.voens, inv.VOEN)
		}
		acc.entries = append(acc.entries, LedgerEntry{
			Date:        inv.Date,
			Kind:        EntryInvoice,
			Description: fmt.Sprintf("Invoice %s", inv.Number),
			Amount:      inv.Total, // original invoiced total, not the post-allocation remainder
		})
	}

	dropped := 0
	for _, payment := range payments {
		acc := a.findCompany(order, accounts, payment.VOEN)
		if acc == nil {
			dropped++
			continue
		}
		acc.entries = append(acc.entries, LedgerEntry{
			Date:        payment.Date,
			Kind:        EntryPayment,
			Description: payment.Description,
			Amount:      payment.Amount.Neg(),
		})
	}

	statements := make([]CompanyStatement, 0, len(order))
	for _, name := range order {
		statements = append(statements, buildStatement(accounts[name]))
	}

	a.log.Info().
		Int("companies", len(statements)).
		Int("payments_without_company", dropped).
		Msg("Company statements built")

	return statements
}

// findCompany returns the first company, in insertion order, whose VÖEN set
// contains the given VÖEN. Insertion order makes the tie-break deterministic
// when two company names erroneously share a VÖEN.
func (a *Aggregator) findCompany(order []string, accounts map[string]*companyAccount, voen string) *companyAccount {
	if voen == "" {
		return nil
	}
	for _, name := range order {
		if _, ok := accounts[name].voenSet[voen]; ok {
			return accounts[name]
		}
	}
	return nil
}

// buildStatement date-sorts a company's entries and computes running balances.
func buildStatement(acc *companyAccount) CompanyStatement {
	entries := make([]LedgerEntry, len(acc.entries))
	copy(entries, acc.entries)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})

	balance := decimal.Zero
	for i := range entries {
		balance = balance.Add(entries[i].Amount)
		entries[i].Balance = balance
	}

	return CompanyStatement{
		Name:    acc.name,
		VOENs:   acc.voens,
		Entries: entries,
		Total:   balance,
	}
}
