package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"invoicekit/internal/logger"
	"invoicekit/internal/rupiah"
	"invoicekit/internal/termin"
)

var terminCmd = &cobra.Command{
	Use:   "termin",
	Short: "Split a project total into termin installments",
	Long: `Build a termin payment plan for a surat penawaran.

The default plan spreads 100% evenly over --count stages, with the remainder
on the last stage (3 stages are 33/33/34). Stage amounts are the rounded
percentage of --total. Percentages and labels can be overridden per stage;
a plan that no longer sums to 100% is printed with a warning.`,
	Example: `  # Three stages for Rp 3.650.000
  invoicekit termin --total 3650000 --count 3

  # Custom split, machine-readable
  invoicekit termin --total 10000000 --count 3 --set 1=50 --set 2=30 --set 3=20 --json

  # Rename a stage
  invoicekit termin --total 5000000 --label 2="Setelah go-live"`,
	Args: cobra.NoArgs,
	RunE: runTermin,
}

// TerminOutput is the --json form of a plan.
type TerminOutput struct {
	Plan       termin.Plan       `json:"plan"`
	Validation termin.Validation `json:"validation"`
}

func init() {
	rootCmd.AddCommand(terminCmd)

	terminCmd.Flags().String("total", "0", "Project total in Rupiah")
	terminCmd.Flags().Int("count", termin.MinCount, "Number of stages (minimum 2)")
	terminCmd.Flags().StringArray("set", nil, "Override a stage percentage as id=percentage (repeatable)")
	terminCmd.Flags().StringArray("label", nil, "Override a stage label as id=text (repeatable)")
	terminCmd.Flags().Bool("json", false, "Print the plan as JSON")
}

func runTermin(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("termin")

	rawTotal, _ := cmd.Flags().GetString("total")
	count, _ := cmd.Flags().GetInt("count")
	sets, _ := cmd.Flags().GetStringArray("set")
	labels, _ := cmd.Flags().GetStringArray("label")
	asJSON, _ := cmd.Flags().GetBool("json")

	total, err := rupiah.ParseAmount(rawTotal)
	if err != nil {
		return fmt.Errorf("invalid --total %q: %w", rawTotal, err)
	}

	plan, err := termin.DefaultPlan(count, total)
	if err != nil {
		return fmt.Errorf("invalid --count: %w", err)
	}

	for _, s := range sets {
		id, value, err := splitAssignment(s)
		if err != nil {
			return fmt.Errorf("invalid --set: %w", err)
		}
		pct, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid --set %q: percentage must be an integer", s)
		}
		if _, ok := plan.Find(id); !ok {
			return fmt.Errorf("invalid --set %q: no stage %s", s, id)
		}
		plan = termin.SetPercentage(plan, id, pct)
	}
	for _, l := range labels {
		id, value, err := splitAssignment(l)
		if err != nil {
			return fmt.Errorf("invalid --label: %w", err)
		}
		if _, ok := plan.Find(id); !ok {
			return fmt.Errorf("invalid --label %q: no stage %s", l, id)
		}
		plan = termin.SetLabel(plan, id, value)
	}

	validation := termin.Validate(plan)

	log.Debug().
		Int("count", len(plan.Items)).
		Int64("total", int64(total)).
		Int("percentage", validation.TotalPercentage).
		Int("warnings", len(validation.Warnings)).
		Msg("Termin plan computed")

	out := cmd.OutOrStdout()
	if asJSON {
		data, err := json.MarshalIndent(TerminOutput{Plan: plan, Validation: validation}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to create JSON output: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintf(out, "Total: %s\n", rupiah.FormatRupiah(total))
	fmt.Fprintln(out, strings.Repeat("-", 60))
	for _, item := range plan.Items {
		fmt.Fprintf(out, "%-3s %-28s %4d%%  %20s\n", item.ID, item.Label, item.Percentage, rupiah.FormatRupiah(item.Amount))
	}
	fmt.Fprintln(out, strings.Repeat("-", 60))
	fmt.Fprintf(out, "%-32s %4d%%  %20s\n", "TOTAL", validation.TotalPercentage, rupiah.FormatRupiah(validation.AllocatedAmount))
	for _, w := range validation.Warnings {
		fmt.Fprintf(out, "⚠️  %s\n", w.Message)
	}
	return nil
}

// splitAssignment parses "id=value".
func splitAssignment(s string) (string, string, error) {
	id, value, ok := strings.Cut(s, "=")
	id = strings.TrimSpace(id)
	if !ok || id == "" {
		return "", "", fmt.Errorf("%q is not of the form id=value", s)
	}
	return id, strings.TrimSpace(value), nil
}
