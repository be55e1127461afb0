package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/carbontrack/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
// It writes config.yaml with default values and a .gitignore that keeps the
// ledger and logs out of version control.
func NewConfigInitCmd() *cobra.Command {
	var (
		force   bool
		backend string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Example: `  # Create the default configuration
  carbontrack config init

  # Use the SQLite ledger
  carbontrack config init --backend sqlite

  # Create configuration, overwriting existing
  carbontrack config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.DefaultConfigPath()
			if err != nil {
				return err
			}

			if !force {
				_, statErr := os.Stat(path)
				if statErr == nil {
					return errors.New("configuration file already exists, use --force to overwrite")
				}
				if !os.IsNotExist(statErr) {
					return fmt.Errorf("cannot access config path %s: %w", path, statErr)
				}
			}

			cfg := config.Default()
			cfg.SetConfigPath(path)
			if cmd.Flags().Changed("backend") {
				if err = cfg.Set("storage.backend", backend); err != nil {
					return err
				}
			}
			if err = cfg.Save(); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			created, err := config.EnsureGitignore(filepath.Dir(path))
			if err != nil {
				return fmt.Errorf("failed to create .gitignore: %w", err)
			}

			cmd.Printf("Configuration initialized successfully\n")
			cmd.Printf("Configuration file: %s\n", path)
			if created {
				cmd.Printf("Created .gitignore to protect user-specific data\n")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().StringVar(&backend, "backend", config.BackendJSON, "ledger backend: json or sqlite")

	return cmd
}
