package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/portfolio-sim/internal/calculation"
	"github.com/rpgo/portfolio-sim/internal/domain"
	"github.com/rpgo/portfolio-sim/internal/output"
)

var (
	flagDebtCompareLump bool
	flagDebtJSON        bool
)

var debtCmd = &cobra.Command{
	Use:   "debt",
	Short: "Compare ways of repaying a debt before retirement",
	Long: "Projects each debt option in the config file (or the built-in example) to retirement:\n" +
		"loan payments, savings growth after the debt is cleared and the after-tax balance.",
	RunE: runDebt,
}

func init() {
	debtCmd.Flags().BoolVar(&flagDebtCompareLump, "compare-lump", false, "Add an option that pays the debt down with all liquid savings first")
	debtCmd.Flags().BoolVar(&flagDebtJSON, "json", false, "Print JSON instead of text")
	rootCmd.AddCommand(debtCmd)
}

func runDebt(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfiguration()
	if err != nil {
		return err
	}
	options := cfg.DebtOptions
	if len(options) == 0 {
		options = []domain.DebtOption{domain.DefaultDebtOption()}
	}
	if flagDebtCompareLump {
		lump := options[0]
		lump.Name = lump.Name + " (withdraw liquid savings)"
		lump.LumpWithdrawal = -lump.LiquidBalance
		options = append(options, lump)
	}

	outcomes := make([]*calculation.DebtOutcome, 0, len(options))
	for _, o := range options {
		outcome, err := calculation.CompareRepayment(o)
		if err != nil {
			return err
		}
		log.WithField("option", o.Name).Debugf("payment %s, net at retirement %s", outcome.Payment, outcome.NetAtRetirement)
		outcomes = append(outcomes, outcome)
	}

	if flagDebtJSON {
		b, err := json.MarshalIndent(outcomes, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode outcomes: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return err
	}
	_, err = cmd.OutOrStdout().Write(output.FormatDebtOutcomes(outcomes))
	return err
}
