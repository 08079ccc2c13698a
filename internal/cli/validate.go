package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/faizmokh/metastring/internal/catalog"
	"github.com/faizmokh/metastring/internal/files"
)

func newValidateCommand(ctx context.Context, a *app) *cobra.Command {
	var (
		patternFlag string
		formatFlag  string
		workersFlag int
		all         bool
		strict      bool
	)

	cmd := &cobra.Command{
		Use:   "validate <dir>",
		Short: "List files whose names do not parse.",
		Long: "validate parses the name of every file in dir matching the scan pattern and prints NAME INVALID for each failure.\n" +
			"Use --format to emit every record as a table, JSON or YAML instead.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := files.NewManager(args[0])
			if err != nil {
				return err
			}

			pattern := a.cfg.Scan.Pattern
			if patternFlag != "" {
				pattern = patternFlag
			}
			workers := a.cfg.Scan.Workers
			if workersFlag > 0 {
				workers = workersFlag
			}

			reader := catalog.NewReader(manager, catalog.WithWorkers(workers), catalog.WithLogger(a.logger))
			records, err := reader.Read(ctx, pattern)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if formatFlag == "" {
				printValidationLines(out, records, all)
			} else {
				format, err := resolveFormat(formatFlag, a.cfg.Output.Format, out)
				if err != nil {
					return err
				}
				if err := printRecords(out, format, records); err != nil {
					return err
				}
			}

			summary := catalog.Summarize(records)
			a.logger.InfoContext(ctx, "validated directory",
				"dir", manager.Dir(),
				"pattern", pattern,
				"total", summary.Total,
				"invalid", summary.Invalid,
				"warned", summary.Warned,
			)
			if strict && summary.Invalid > 0 {
				return fmt.Errorf("%d of %d files have invalid names", summary.Invalid, summary.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&patternFlag, "pattern", "", "Glob for file names (default: config scan.pattern)")
	cmd.Flags().StringVar(&formatFlag, "format", "", "Emit all records as text|table|json|yaml instead of the INVALID list")
	cmd.Flags().IntVar(&workersFlag, "workers", 0, "Concurrent parse workers (default: config scan.workers)")
	cmd.Flags().BoolVar(&all, "all", false, "Also list valid files as NAME OK")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when any file name is invalid")

	return cmd
}

func printValidationLines(out io.Writer, records []catalog.Record, all bool) {
	for _, rec := range records {
		switch {
		case !rec.Valid():
			fmt.Fprintf(out, "%s INVALID\n", rec.Name)
		case all:
			fmt.Fprintf(out, "%s OK\n", rec.Name)
		}
	}
}
