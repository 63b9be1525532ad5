package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"invoicekit/internal/config"
	"invoicekit/internal/logger"
)

var version = "1.0.0"

// cfg is the configuration loaded by main. Commands fall back to config.Load
// when it was not provided.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "invoicekit",
	Short: "invoicekit - invoices, surat penawaran and brochures for Indonesian billing",
	Long: `invoicekit prepares billing documents in Bahasa Indonesia: invoices
(penagihan, termin DP, pelunasan), surat penawaran with termin payment plans
and digital website brochures.

It issues monthly sequential document numbers, spells amounts out in words
(terbilang), splits project totals into termin installments and exports
documents as PDF, HTML, XLSX or ready-to-send WhatsApp messages.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("invoicekit executed")

		fmt.Println("Welcome to invoicekit!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

// Execute runs the root command with the configuration loaded by main.
func Execute(c *config.Config) {
	log := logger.WithComponent("cmd")
	cfg = c

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig returns the configuration given to Execute, loading it from the
// environment when main could not.
func loadConfig() (*config.Config, error) {
	if cfg != nil {
		return cfg, nil
	}
	c, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg = c
	return cfg, nil
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
