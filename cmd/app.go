package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conneroisu/htmplate/internal/build"
	"github.com/conneroisu/htmplate/internal/components"
	"github.com/conneroisu/htmplate/internal/config"
	"github.com/conneroisu/htmplate/internal/logging"
	"github.com/conneroisu/htmplate/internal/rewriter"
)

// runner starts the external tools. Tests replace it.
var runner build.Runner = build.ExecRunner{}

// loadConfig loads the configuration and applies --verbose.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// newLogger creates the logger for cmd, writing to its error stream.
func newLogger(cmd *cobra.Command, cfg *config.Config) (*logging.HtmplateLogger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return logging.NewLogger(&logging.LoggerConfig{
		Level:  level,
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
	}), nil
}

// newTransformer wires the rewriter, formatter and bundler.
func newTransformer(cfg *config.Config) (*build.Transformer, error) {
	var formatter *build.Formatter
	if cfg.Formatter.Enabled {
		var err error
		formatter, err = build.NewFormatter(runner, cfg.Formatter.Command, cfg.Formatter.CacheSize)
		if err != nil {
			return nil, err
		}
	}

	return build.NewTransformer(
		rewriter.New(components.Default()),
		formatter,
		build.NewBundler(runner, cfg.Bundler.Command),
		cfg.Assets.Directory,
	), nil
}
