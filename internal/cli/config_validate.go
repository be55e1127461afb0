package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/carbontrack/internal/config"
	"github.com/rshade/carbontrack/internal/engine"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the configuration file and environment overrides for syntax and
semantic correctness: output and logging settings, the storage backend,
profile goals, dashboard ranges, and budget alerts.`,
		Example: `  # Validate current configuration
  carbontrack config validate

  # Validate and show detailed information
  carbontrack config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.New()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}

	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Config file: %s\n", cfg.ConfigPath())
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Output precision: %d\n", cfg.Output.Precision)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	cmd.Printf("  Log file: %s\n", cfg.Logging.File)

	path, err := cfg.StoragePath()
	if err != nil {
		path = "(unresolved: " + err.Error() + ")"
	}
	cmd.Printf("  Ledger: %s (%s)\n", path, cfg.Storage.Backend)
	cmd.Printf("  Monthly goal: %.0f kg CO2e\n", cfg.Profile.MonthlyGoal)

	printBudgetDetails(cmd, cfg)
}

// printBudgetDetails prints the alerts that `summary` evaluates.
func printBudgetDetails(cmd *cobra.Command, cfg *config.Config) {
	thresholds := cfg.Budget.Thresholds()
	if len(thresholds) == 0 {
		cmd.Println("  No budget alerts configured (default 50/80/100% actual)")
		thresholds = engine.DefaultThresholds()
	} else {
		cmd.Printf("  Budget alerts: %d\n", len(thresholds))
	}
	for _, t := range thresholds {
		cmd.Printf("    - %.0f%% %s\n", t.Percentage, t.Type)
	}
	if cfg.Budget.ExitOnThreshold {
		cmd.Printf("  Exit on threshold: code %d\n", cfg.Budget.GetExitCode())
	}
}
