package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"invoicekit/internal/rupiah"
)

var terbilangCmd = &cobra.Command{
	Use:   "terbilang [amount]",
	Short: "Spell a Rupiah amount out in Indonesian words",
	Long: `Print an amount with Indonesian thousands grouping and spelled out in
words, as it appears on the invoice ("Terbilang").

Every non-digit character of the input is ignored, so "Rp 1.500.000" and
"1500000" are the same amount.`,
	Example: `  invoicekit terbilang 1500000
  invoicekit terbilang "Rp 2.750.000" --words-only`,
	Args: cobra.ExactArgs(1),
	RunE: runTerbilang,
}

func init() {
	rootCmd.AddCommand(terbilangCmd)

	terbilangCmd.Flags().Bool("words-only", false, "Print only the words")
}

func runTerbilang(cmd *cobra.Command, args []string) error {
	wordsOnly, _ := cmd.Flags().GetBool("words-only")

	if strings.IndexFunc(args[0], func(r rune) bool { return r >= '0' && r <= '9' }) < 0 {
		return fmt.Errorf("invalid amount %q: no digits", args[0])
	}
	amount, err := rupiah.ParseAmount(args[0])
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	if wordsOnly {
		fmt.Fprintln(out, rupiah.TerbilangRupiah(amount))
		return nil
	}
	fmt.Fprintln(out, rupiah.FormatRupiah(amount))
	fmt.Fprintln(out, rupiah.TerbilangRupiah(amount))
	return nil
}
