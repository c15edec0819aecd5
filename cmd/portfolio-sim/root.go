package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rpgo/portfolio-sim/internal/config"
	"github.com/rpgo/portfolio-sim/internal/domain"
)

var (
	flagConfig  string
	flagVerbose bool
	flagQuiet   bool
)

var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "portfolio-sim",
	Short: "Monte Carlo projection of a savings or withdrawal plan",
	Long: "Simulate thousands of return paths for a portfolio with periodic payments,\n" +
		"report the distribution of terminal values and raise withdrawals until no path ends negative.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configureLogging()
	},
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Scenario file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors")
}

func configureLogging() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	switch {
	case flagQuiet:
		log.SetLevel(logrus.ErrorLevel)
	case flagVerbose:
		log.SetLevel(logrus.DebugLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
}

// loadConfiguration reads --config when given. Without a file it returns the
// defaults and a single "default" scenario.
func loadConfiguration() (*domain.Configuration, error) {
	if flagConfig == "" {
		return &domain.Configuration{
			Options:     domain.DefaultRunOptions(),
			Scenarios:   []domain.Scenario{{Name: "default", Simulation: domain.DefaultSimulationConfig()}},
			DebtOptions: []domain.DebtOption{domain.DefaultDebtOption()},
		}, nil
	}
	cfg, err := config.NewInputParser().LoadFromFile(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	log.WithField("file", flagConfig).Debugf("loaded %d scenarios and %d debt options", len(cfg.Scenarios), len(cfg.DebtOptions))
	return cfg, nil
}
