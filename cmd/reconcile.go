package cmd

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"voenrecon/internal/config"
	"voenrecon/internal/logger"
	"voenrecon/internal/recon"
	"voenrecon/internal/report"
	"voenrecon/internal/source"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile bank payments against outstanding invoices",
	Long: `Reconcile the incoming credits of a bank history export against the
outstanding customer invoices of an invoice workbook.

Payments are processed chronologically; each one is allocated to the open
invoices sharing its VÖEN, oldest invoice first. Payments with no matching
open invoice are reported as unmatched, and payments exceeding every open
invoice leave a reported leftover.

Input defaults come from the environment (BANK_HISTORY_FILE, INVOICES_FILE,
RECONCILIATION_REPORT_FILE, COMPANY_REPORT_FILE); flags override them.`,
	Example: `  # Run with configured defaults
  voenrecon reconcile

  # Explicit input and output paths
  voenrecon reconcile --invoices Invoices.xlsx --bank-history "Bank History.xls" \
    --report reconciliation_report.xlsx --company-report company_report.xlsx

  # Allocate and log summary counts without writing the reports
  voenrecon reconcile --dry-run`,
	RunE: runReconcile,
}

func init() {
	rootCmd.AddCommand(reconcileCmd)

	reconcileCmd.Flags().String("invoices", "", "Invoice workbook path (default from INVOICES_FILE)")
	reconcileCmd.Flags().String("bank-history", "", "Bank history export path (default from BANK_HISTORY_FILE)")
	reconcileCmd.Flags().String("report", "", "Reconciliation report output path (default from RECONCILIATION_REPORT_FILE)")
	reconcileCmd.Flags().String("company-report", "", "Company report output path (default from COMPANY_REPORT_FILE)")
	reconcileCmd.Flags().Bool("dry-run", false, "Allocate but don't write output workbooks")
}

func runReconcile(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("reconcile")

	cfg := currentConfig()

	invoicesPath := flagOr(cmd, "invoices", cfg.InvoicesFile)
	bankPath := flagOr(cmd, "bank-history", cfg.BankHistoryFile)
	reportPath := flagOr(cmd, "report", cfg.ReconciliationReportFile)
	companyReportPath := flagOr(cmd, "company-report", cfg.CompanyReportFile)
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	log.Info().
		Str("invoices", invoicesPath).
		Str("bank_history", bankPath).
		Str("report", reportPath).
		Str("company_report", companyReportPath).
		Bool("dry_run", dryRun).
		Msg("Starting reconciliation run")

	// Both sources are required; either failing aborts before allocation.
	invoices, err := source.NewInvoiceReader().Read(invoicesPath)
	if err != nil {
		return fmt.Errorf("failed to load invoices: %w", err)
	}

	payments, err := source.NewBankHistoryReader().Read(bankPath)
	if err != nil {
		return fmt.Errorf("failed to load bank history: %w", err)
	}

	result := recon.NewEngine().Allocate(invoices, payments)
	statements := recon.NewAggregator().Build(invoices, payments)

	logSummary(log, result, statements)

	if dryRun {
		log.Info().Msg("Dry run mode: no output workbooks written")
		return nil
	}

	// The two reports are independent: one already written stays written
	// even if the other fails.
	writer := report.NewWriter()
	if err := writer.WriteReconciliation(reportPath, result); err != nil {
		return fmt.Errorf("failed to write reconciliation report: %w", err)
	}
	if err := writer.WriteCompanies(companyReportPath, statements); err != nil {
		return fmt.Errorf("failed to write company report: %w", err)
	}

	log.Info().Msg("Reconciliation run completed successfully")
	return nil
}

// logSummary reports outcome counts for the run.
func logSummary(log zerolog.Logger, result *recon.Result, statements []recon.CompanyStatement) {
	matched, noMatch, leftover := 0, 0, 0
	for _, event := range result.Events {
		switch event.Outcome {
		case recon.OutcomeMatched:
			matched++
		case recon.OutcomeNoMatch:
			noMatch++
		case recon.OutcomePartialLeftover:
			leftover++
		}
	}

	log.Info().
		Int("matched_events", matched).
		Int("unmatched_payments", noMatch).
		Int("leftover_payments", leftover).
		Int("outstanding_invoices", len(result.Outstanding())).
		Int("companies", len(statements)).
		Msg("Allocation summary")
}

// flagOr returns the flag value when set, otherwise the configured fallback.
func flagOr(cmd *cobra.Command, name, fallback string) string {
	value, _ := cmd.Flags().GetString(name)
	if value != "" {
		return value
	}
	return fallback
}

var runConfig *config.Config

// SetConfig hands the loaded configuration to the command layer. Called once
// from main before Execute.
func SetConfig(cfg *config.Config) {
	runConfig = cfg
}

// currentConfig returns the injected configuration, loading one from the
// environment when main did not provide it (e.g. in tests).
func currentConfig() *config.Config {
	if runConfig != nil {
		return runConfig
	}
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(err, "Failed to load configuration")
	}
	return cfg
}
