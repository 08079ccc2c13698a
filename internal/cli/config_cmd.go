package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faizmokh/metastring/internal/config"
)

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file.",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print the default configuration path.",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := config.DefaultConfigPath()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration as TOML.",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				data, err := a.cfg.Encode()
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			},
		},
		&cobra.Command{
			Use:   "init [path]",
			Short: "Write a config file with default values.",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				var path string
				if len(args) == 1 {
					path = args[0]
				} else {
					var err error
					path, err = config.DefaultConfigPath()
					if err != nil {
						return err
					}
				}
				if err := config.CreateSample(path); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
				return nil
			},
		},
	)

	return cmd
}
