package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"binviz/internal/config"
	"binviz/internal/logging"
	"binviz/internal/viewer"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	version = "v0.1.0"
	commit  = ""
	date    = ""
)

type rootOptions struct {
	configPath string
	watch      bool
	logFile    string
	logLevel   string
}

func Execute() int {
	cmd := newRootCmd()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "binviz [file]",
		Short:         "View a binary file as side by side hex and character grids",
		SilenceErrors: false,
		SilenceUsage:  true,
		Version:       buildVersion(),
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return runViewer(cmd, opts, path)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Override config file path (default: ~/.config/binviz/binviz.toml)")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Reload the file when it changes on disk")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "Write JSON logs to this file (default: [log] file from config)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error (default: [log] level from config)")

	cmd.AddCommand(
		newConfigCmd(opts),
		newDumpCmd(opts),
	)

	return cmd
}

func buildVersion() string {
	v := version
	if commit != "" {
		v += " (" + commit + ")"
	}
	if date != "" {
		v += " " + date
	}
	return v
}

func runViewer(cmd *cobra.Command, opts *rootOptions, path string) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	logger, closer, err := openLogger(cfg, opts)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	model := viewer.NewModel(ctx, path, viewer.Options{
		Config: cfg,
		Logger: logger,
		Watch:  opts.watch,
	})
	defer func() {
		if err := model.Close(); err != nil {
			logger.Warn("close viewer", slog.Any("error", err))
		}
	}()

	logger.Info("viewer started", slog.String("path", path), slog.Bool("watch", opts.watch))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}

// openLogger resolves the log destination and level, flags first and config
// second.
func openLogger(cfg *config.Config, opts *rootOptions) (*slog.Logger, io.Closer, error) {
	file := cfg.Log.File
	if opts.logFile != "" {
		file = opts.logFile
	}
	levelName := cfg.Log.Level
	if opts.logLevel != "" {
		levelName = opts.logLevel
	}

	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, nil, err
	}
	return logging.OpenFile(file, level, "viewer")
}
