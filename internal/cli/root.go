// Package cli implements the carbontrack command tree.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/carbontrack/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root command for the carbontrack CLI and wires up
// logging, tracing, audit logging and the subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:     "carbontrack",
		Short:   "Personal carbon footprint tracker",
		Long:    "carbontrack: record everyday activities, estimate their CO2e and track reduction goals",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.AddCommand(
		newEntryCmd(), newGoalCmd(), NewSummaryCmd(), NewTrendCmd(), NewInsightsCmd(),
		NewGenerateCmd(), NewDashboardCmd(), newConfigCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Seed the ledger with 90 days of sample data
  carbontrack generate --seed 42

  # Record a car trip
  carbontrack entry add --category transportation --subcategory "Car (Petrol)" --amount 25

  # Add an entry interactively
  carbontrack entry add --interactive

  # Show this month's numbers
  carbontrack summary

  # Browse the last month of food entries as JSON
  carbontrack entry list --category food --period month --output json

  # Open the interactive dashboard
  carbontrack dashboard

  # Set the monthly budget
  carbontrack config set profile.monthly_goal 400`

// newEntryCmd creates the entry command group.
func newEntryCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "entry", Aliases: []string{"entries"}, Short: "Record and browse footprint entries"}
	cmd.AddCommand(
		NewEntryAddCmd(), NewEntryListCmd(), NewEntryDeleteCmd(),
		NewEntryExportCmd(), NewEntryActivitiesCmd(),
	)
	return cmd
}

// newGoalCmd creates the goal command group.
func newGoalCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "goal", Aliases: []string{"goals"}, Short: "Manage reduction goals"}
	cmd.AddCommand(NewGoalAddCmd(), NewGoalListCmd(), NewGoalUpdateCmd(), NewGoalDeleteCmd())
	return cmd
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigSetCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(),
	)
	return cmd
}
