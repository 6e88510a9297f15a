package cmd

import (
	"context"
	stderrors "errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/conneroisu/htmplate/internal/broadcast"
	"github.com/conneroisu/htmplate/internal/config"
	"github.com/conneroisu/htmplate/internal/errors"
	"github.com/conneroisu/htmplate/internal/logging"
	"github.com/conneroisu/htmplate/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:     "watch [root]",
	Aliases: []string{"w"},
	Short:   "Keep a directory templated and bundled",
	Long: `Watch a directory tree: every *.template.html file is templated to the
matching .html file and every index.ts is bundled to index.js, first on
startup and again whenever it changes. A status table shows the outcome of
each file; a failing file never stops the watch.

Examples:
  htmplate watch                       # Watch watch.root from config
  htmplate watch site --assets site/assets
  htmplate watch --broadcast localhost:7070`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

var (
	watchAssets    string
	watchBroadcast string
)

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchAssets, "assets", "a", "", "asset directory documents link to (default from config)")
	watchCmd.Flags().StringVar(&watchBroadcast, "broadcast", "", "serve the status table over a websocket on this address")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Watch.Root = args[0]
	}
	if watchAssets != "" {
		cfg.Assets.Directory = watchAssets
	}
	if watchBroadcast != "" {
		cfg.Broadcast.Address = watchBroadcast
	}

	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}

	info, err := os.Stat(cfg.Watch.Root)
	if err != nil {
		return errors.WrapFilesystem(err, errors.ErrCodeFileNotFound, "cannot watch", cfg.Watch.Root)
	}
	if !info.IsDir() {
		return errors.NewFilesystemError(errors.ErrCodeWatchFailed, "watch root is not a directory", nil).WithPath(cfg.Watch.Root)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = watch(ctx, cmd, cfg, logger)
	if stderrors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// watch runs a session until ctx is cancelled.
func watch(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *logging.HtmplateLogger) error {
	classifier, err := watcher.NewClassifier(cfg.Watch.Root, watcher.Rules{
		TemplatePattern: cfg.Watch.TemplatePattern,
		ScriptPattern:   cfg.Watch.ScriptPattern,
		Ignore:          cfg.Watch.Ignore,
	})
	if err != nil {
		return errors.WrapConfig(err, errors.ErrCodeConfigInvalid, "invalid watch patterns")
	}

	transformer, err := newTransformer(cfg)
	if err != nil {
		return err
	}

	options := watcher.Options{
		QuietWindow: cfg.Watch.QuietWindow,
		Output:      cmd.OutOrStdout(),
		Logger:      logger,
	}

	if cfg.Broadcast.Address != "" {
		hub := broadcast.NewHub(cfg.Broadcast.AllowedOrigins, logger)
		options.OnSettled = func(files []watcher.FileStatus) {
			hub.Publish(broadcast.NewSnapshot(classifier.Root(), files))
		}

		serverCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			if err := broadcast.Serve(serverCtx, cfg.Broadcast.Address, hub); err != nil {
				logger.Error(serverCtx, err, "status broadcast stopped", "address", cfg.Broadcast.Address)
			}
		}()
		logger.Info(ctx, "broadcasting status", "address", cfg.Broadcast.Address, "path", broadcast.StatusPath)
	}

	source, err := watcher.NewFSNotifySource()
	if err != nil {
		return errors.NewFilesystemError(errors.ErrCodeWatchFailed, "could not start watching", err)
	}
	defer source.Close()

	session := watcher.NewSession(classifier, transformer, options)
	err = session.Run(ctx, source)

	metrics := transformer.Metrics()
	snapshot := metrics.GetSnapshot()
	logger.Info(context.WithoutCancel(ctx), "watch stopped",
		"transforms", snapshot.TotalBuilds,
		"failed", snapshot.FailedBuilds,
		"success_rate", metrics.GetSuccessRate(),
		"format_cache_hit_rate", metrics.GetCacheHitRate(),
	)
	return err
}
