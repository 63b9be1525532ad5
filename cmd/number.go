package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"invoicekit/internal/logger"
	"invoicekit/internal/numbering"
)

var numberCmd = &cobra.Command{
	Use:   "number [invoice|proposal]",
	Short: "Issue the next sequential document number",
	Long: `Issue the next document number of a sequence and advance its counter.

Numbers look like INV-202601-01 or SPN-202601-03: prefix, calendar month
and a two-digit sequence that restarts at 01 every month. The counter is
kept in the store selected by COUNTER_STORE (file, sqlite, redis, memory).`,
	Example: `  # Next invoice number
  invoicekit number invoice

  # Next surat penawaran number with a custom prefix
  invoicekit number proposal --prefix PNW

  # Show the stored counter without advancing it
  invoicekit number peek invoice`,
	Args: cobra.ExactArgs(1),
	RunE: runNumber,
}

var numberPeekCmd = &cobra.Command{
	Use:   "peek [invoice|proposal]",
	Short: "Show the stored counter of a sequence without advancing it",
	Args:  cobra.ExactArgs(1),
	RunE:  runNumberPeek,
}

func init() {
	rootCmd.AddCommand(numberCmd)
	numberCmd.AddCommand(numberPeekCmd)

	numberCmd.Flags().String("prefix", "", "Number prefix (default: INVOICE_PREFIX or PROPOSAL_PREFIX)")
	numberCmd.PersistentFlags().Int("timeout", 10, "Counter store timeout in seconds")
}

func runNumber(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("number")

	kind, err := numbering.ParseKind(args[0])
	if err != nil {
		return fmt.Errorf("%w (use 'invoice' or 'proposal')", err)
	}
	prefix, _ := cmd.Flags().GetString("prefix")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	c, err := loadConfig()
	if err != nil {
		return err
	}
	if prefix == "" {
		prefix = prefixFor(c, kind)
	}

	ctx, cancel := createCommandContext(time.Duration(timeoutSecs)*time.Second, log)
	defer cancel()

	store, closeStore, err := openCounterStore(ctx, c, log)
	if err != nil {
		return err
	}
	defer closeStore()

	number, err := numbering.NewNumberer(store).Next(ctx, kind, prefix)
	if err != nil {
		if number == "" {
			return fmt.Errorf("failed to issue document number: %w", err)
		}
		if errors.Is(err, numbering.ErrCounterNotSaved) {
			log.Warn().Err(err).Str("number", number).Msg("Number issued but counter was not saved")
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: counter not saved, the next call may repeat %s\n", number)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), number)
	return nil
}

func runNumberPeek(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("number")

	kind, err := numbering.ParseKind(args[0])
	if err != nil {
		return fmt.Errorf("%w (use 'invoice' or 'proposal')", err)
	}
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	c, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := createCommandContext(time.Duration(timeoutSecs)*time.Second, log)
	defer cancel()

	store, closeStore, err := openCounterStore(ctx, c, log)
	if err != nil {
		return err
	}
	defer closeStore()

	counter, ok, err := numbering.NewNumberer(store).Peek(ctx, kind)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !ok {
		fmt.Fprintf(out, "%s: no counter yet, next number starts at 01\n", kind)
		return nil
	}
	fmt.Fprintf(out, "%s: %s count %d (last issued %s)\n",
		kind, counter.YearMonth, counter.Count,
		numbering.Format(prefixFor(c, kind), counter.YearMonth, counter.Count))
	return nil
}
