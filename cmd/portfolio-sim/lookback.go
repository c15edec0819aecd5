package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rpgo/portfolio-sim/internal/calculation"
	"github.com/rpgo/portfolio-sim/pkg/dateutil"
)

var (
	flagBackYears  int
	flagBackMonths int
	flagBackFrom   string
)

var lookbackCmd = &cobra.Command{
	Use:   "lookback",
	Short: "Print the start and end dates of a lookback window",
	RunE:  runLookback,
}

func init() {
	lookbackCmd.Flags().IntVar(&flagBackYears, "years", 1, "Years to go back")
	lookbackCmd.Flags().IntVar(&flagBackMonths, "months", 0, "Months to go back")
	lookbackCmd.Flags().StringVar(&flagBackFrom, "from", "", "End date (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(lookbackCmd)
}

func runLookback(cmd *cobra.Command, _ []string) error {
	if flagBackYears < 0 || flagBackMonths < 0 {
		return fmt.Errorf("years and months must not be negative")
	}
	end := calculation.Now()
	if flagBackFrom != "" {
		t, err := time.Parse(dateutil.DateLayout, flagBackFrom)
		if err != nil {
			return fmt.Errorf("invalid --from date %q: %w", flagBackFrom, err)
		}
		end = t
	}
	start := dateutil.DateBack(end, flagBackYears, flagBackMonths)
	fmt.Fprintf(cmd.OutOrStdout(), "start:  %s\nend:    %s\nmonths: %d (%.2f years)\n",
		dateutil.Format(start), dateutil.Format(end), dateutil.MonthsUntilDate(start, end), dateutil.YearsUntilDate(start, end))
	return nil
}
