package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"voenrecon/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "voenrecon",
	Short: "voenrecon - reconcile customer invoices against bank payments",
	Long: `voenrecon reconciles outstanding customer invoices against the incoming
credits of a bank statement export, matching counterparties by their
10-digit VÖEN tax identifier.

A single run reads the invoice workbook and the bank history export,
allocates every incoming payment to the oldest open invoices of the same
VÖEN, and writes two workbooks: a transaction-level reconciliation report
and a per-company statement with running balances.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("voenrecon executed")

		fmt.Println("Welcome to voenrecon!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
