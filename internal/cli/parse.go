package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/faizmokh/metastring/internal/catalog"
)

func newParseCommand(ctx context.Context, a *app) *cobra.Command {
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "parse <name>...",
		Short: "Print the metadata encoded in one or more file names.",
		Long: "parse reads each argument as a file name (directories in a path are ignored) and prints its fields.\n" +
			"Every name is processed; the command fails afterwards if any name was invalid.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveFormat(formatFlag, a.cfg.Output.Format, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			records := make([]catalog.Record, 0, len(args))
			for _, arg := range args {
				records = append(records, catalog.ParseName(ctx, a.logger, filepath.Base(arg)))
			}

			if err := printRecords(cmd.OutOrStdout(), format, records); err != nil {
				return err
			}

			if invalid := len(catalog.Invalid(records)); invalid > 0 {
				return fmt.Errorf("%d of %d names invalid", invalid, len(records))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&formatFlag, "format", "", "Output format: auto|text|table|json|yaml (default: config output.format)")

	return cmd
}
