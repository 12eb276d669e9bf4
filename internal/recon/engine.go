// Package recon implements the payment-allocation core: matching incoming
// bank credits against outstanding invoices by VÖEN, oldest debt first, and
// regrouping both sides into per-company statements.
package recon

import (
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"voenrecon/internal/logger"
)

// Engine allocates payments to invoices. It owns a private working copy of
// the invoice balances; callers' slices are never mutated.
type Engine struct {
	log zerolog.Logger
}

// NewEngine creates a new allocation engine
func NewEngine() *Engine {
	return &Engine{
		log: logger.WithComponent("allocation-engine"),
	}
}

// Result holds the outcome of one allocation pass.
type Result struct {
	// Events is the append-only allocation trail, in processing order.
	Events []AllocationEvent
	// Invoices is the final state of every invoice after all payments were
	// applied, in the original input order.
	Invoices []Invoice
}

// Outstanding returns the invoices that still carry an open balance after
// allocation, in input order. These become the trailing unmatched rows of
// the reconciliation report.
func (r *Result) Outstanding() []Invoice {
	var open []Invoice
	for _, inv := range r.Invoices {
		if inv.Outstanding() {
			open = append(open, inv)
		}
	}
	return open
}

// Allocate runs the allocation pass. Payments are processed strictly in the
// order given (the normalizer hands them over chronologically); for each
// payment the open invoices sharing its VÖEN are paid down oldest first.
// A payment's VÖEN must equal the invoice's VÖEN exactly; an empty VÖEN on
// both sides counts as a match.
func (e *Engine) Allocate(invoices []Invoice, payments []Payment) *Result {
	// Working arena: balances are mutated here, never on the caller's data.
	working := make([]Invoice, len(invoices))
	copy(working, invoices)
	for i := range working {
		working[i].Remaining = working[i].Total
		working[i].refreshStatus()
	}

	result := &Result{}

	for _, payment := range payments {
		e.allocatePayment(result, working, payment)
	}

	result.Invoices = working

	e.log.Info().
		Int("invoices", len(invoices)).
		Int("payments", len(payments)).
		Int("events", len(result.Events)).
		Int("outstanding_invoices", len(result.Outstanding())).
		Msg("Allocation pass completed")

	return result
}

// allocatePayment applies a single payment against the working invoice set
// and appends the resulting events.
func (e *Engine) allocatePayment(result *Result, working []Invoice, payment Payment) {
	remaining := payment.Amount

	candidates := e.selectCandidates(working, payment.VOEN)

	matchedAny := false
	for _, idx := range candidates {
		if !remaining.IsPositive() {
			break
		}
		inv := &working[idx]

		applied := decimal.Min(remaining, inv.Remaining)
		inv.Remaining = inv.Remaining.Sub(applied)
		remaining = remaining.Sub(applied)
		inv.refreshStatus()
		matchedAny = true

		snapshot := *inv
		result.Events = append(result.Events, AllocationEvent{
			Payment:        payment,
			Invoice:        &snapshot,
			Applied:        applied,
			RemainingAfter: inv.Remaining,
			Outcome:        OutcomeMatched,
		})

		e.log.Debug().
			Str("voen", payment.VOEN).
			Str("invoice", inv.Number).
			Str("applied", applied.String()).
			Str("invoice_remaining", inv.Remaining.String()).
			Msg("Payment applied to invoice")
	}

	switch {
	case !matchedAny && remaining.IsPositive():
		result.Events = append(result.Events, AllocationEvent{
			Payment:  payment,
			Applied:  decimal.Zero,
			Leftover: remaining,
			Outcome:  OutcomeNoMatch,
		})
		e.log.Debug().
			Str("voen", payment.VOEN).
			Str("amount", payment.Amount.String()).
			Msg("No open invoice for payment")
	case matchedAny && remaining.IsPositive():
		result.Events = append(result.Events, AllocationEvent{
			Payment:  payment,
			Applied:  payment.Amount.Sub(remaining),
			Leftover: remaining,
			Outcome:  OutcomePartialLeftover,
		})
		e.log.Debug().
			Str("voen", payment.VOEN).
			Str("leftover", remaining.String()).
			Msg("Payment exceeds all open invoices")
	}
}

// selectCandidates returns indices of open invoices with the given VOEN,
// oldest invoice first. The sort is stable so same-date invoices keep their
// input order.
func (e *Engine) selectCandidates(working []Invoice, voen string) []int {
	var candidates []int
	for i := range working {
		if working[i].VOEN == voen && working[i].Outstanding() {
			candidates = append(candidates, i)
		}
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return working[candidates[a]].Date.Before(working[candidates[b]].Date)
	})
	return candidates
}
