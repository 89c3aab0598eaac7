package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"invoicegen/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "invoicegen",
	Short: "Invoicegen CLI - turn partial invoice requests into styled PDF invoices",
	Long: `Invoicegen CLI normalizes loosely-specified invoice requests (customer,
amount, item, optional overrides) into complete invoice records and renders
them as single-page PDF documents in a configured output directory.

The engine fills every omitted field with a deterministic default: invoice
numbers, dates, tax math, and the seller profile.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("Invoicegen CLI executed")

		fmt.Println("Welcome to Invoicegen CLI!")
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
