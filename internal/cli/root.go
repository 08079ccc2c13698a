package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/faizmokh/metastring/internal/catalog"
	"github.com/faizmokh/metastring/internal/config"
	"github.com/faizmokh/metastring/internal/files"
	"github.com/faizmokh/metastring/internal/logging"
	"github.com/faizmokh/metastring/internal/ui"
)

// LogLevelEnv overrides the configured log level.
const LogLevelEnv = "METASTRING_LOG_LEVEL"

// app carries what every subcommand needs once flags and config are resolved.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newApp() *app {
	cfg := config.Default()
	return &app{cfg: &cfg, logger: logging.Discard()}
}

// NewRootCommand creates the top-level Cobra command hosting subcommands and
// the TUI launcher.
func NewRootCommand(ctx context.Context, a *app) *cobra.Command {
	var (
		configFlag    string
		logLevelFlag  string
		logFormatFlag string
	)

	cmd := &cobra.Command{
		Use:   "metastring [dir]",
		Short: "Parse and validate metadata encoded in experiment file names.",
		Long: "metastring reads names like 2019-04-25-11-30_run-2_reactor-3_sec-1.tif into date, time and key-value fields.\n" +
			"Run without a subcommand to browse a directory interactively.",
		Args: cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, _, err := config.Load(configFlag)
			if err != nil {
				return err
			}
			if env := strings.TrimSpace(os.Getenv(LogLevelEnv)); env != "" {
				cfg.Logging.Level = env
			}
			if logLevelFlag != "" {
				cfg.Logging.Level = logLevelFlag
			}
			if logFormatFlag != "" {
				cfg.Logging.Format = logFormatFlag
			}
			logger, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			manager, err := files.NewManager(dir)
			if err != nil {
				return err
			}
			reader := catalog.NewReader(manager,
				catalog.WithWorkers(a.cfg.Scan.Workers),
				// The TUI owns the terminal; warnings are shown in the details pane.
				catalog.WithLogger(logging.Discard()),
			)
			m := ui.NewModel(ctx, reader, a.cfg.Scan.Pattern)
			if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
				return fmt.Errorf("run TUI: %w", err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config.toml (default: $METASTRING_HOME/config.toml)")
	cmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug|info|warn|error")
	cmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "Log format: console|json")

	cmd.AddCommand(
		newParseCommand(ctx, a),
		newValidateCommand(ctx, a),
		newConfigCommand(a),
		newVersionCommand(),
	)

	return cmd
}

// ExecuteCommand is a thin wrapper that executes the Cobra root command.
func ExecuteCommand(ctx context.Context) error {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	cmd := NewRootCommand(ctx, newApp())
	return cmd.ExecuteContext(ctx)
}

// Main is a helper used by cmd/metastring/main.go to keep wiring contained in one package.
func Main(ctx context.Context) {
	if err := ExecuteCommand(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
