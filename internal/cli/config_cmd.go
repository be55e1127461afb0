package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/carbontrack/internal/config"
)

// loadConfigFile reads config.yaml without environment overrides, so that
// saving it does not persist values that only came from the environment.
func loadConfigFile() (*config.Config, error) {
	path, err := config.DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}

// NewConfigSetCmd creates `config set`.
func NewConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Example: `  carbontrack config set profile.monthly_goal 400
  carbontrack config set storage.backend sqlite
  carbontrack config set budget.exit_on_threshold true`,
		Args: cobra.ExactArgs(2), //nolint:mnd // key and value
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfigFile()
			if err != nil {
				return err
			}
			if err = cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err = cfg.Save(); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}
			cmd.Printf("Set %s = %s\n", args[0], args[1])
			return nil
		},
	}
}

// NewConfigGetCmd creates `config get`, which prints the effective value
// including environment overrides.
func NewConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.GetGlobalConfig().Get(args[0])
			if err != nil {
				return err
			}
			cmd.Println(v)
			return nil
		},
	}
}

// NewConfigListCmd creates `config list`.
func NewConfigListCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List every configuration key and its effective value",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveOutputFormat(output)
			if err != nil {
				return err
			}
			values := config.GetGlobalConfig().List()
			out := cmd.OutOrStdout()
			if format != config.FormatTable {
				return renderJSON(out, values)
			}

			tw := tabwriter.NewWriter(out, 0, 0, tabPadding, ' ', 0)
			fmt.Fprintln(tw, "KEY\tVALUE")
			for _, k := range config.Keys() {
				fmt.Fprintf(tw, "%s\t%s\n", k, values[k])
			}
			return tw.Flush()
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}
