package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/SteveYuOWO/token-tide/internal/config"
	"github.com/SteveYuOWO/token-tide/internal/dexscreener"
	"github.com/SteveYuOWO/token-tide/internal/render"
	"github.com/SteveYuOWO/token-tide/internal/resolver"
	"github.com/SteveYuOWO/token-tide/internal/storage"
	"github.com/SteveYuOWO/token-tide/internal/storage/postgres"
)

const userAgent = "tokentide"

// app holds everything a subcommand needs for one invocation.
type app struct {
	cfg      config.Config
	logger   *zap.Logger
	ui       render.UI
	client   *dexscreener.Client
	store    storage.PairStore
	storeErr error
	closers  []func()
}

func newApp(cmd *cobra.Command, u render.UI) (*app, error) {
	// Arguments are valid by now; later failures are not usage errors.
	cmd.SilenceUsage = true

	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	a := &app{
		cfg:    cfg,
		logger: logger,
		ui:     u,
		client: dexscreener.NewClient(cfg.APIURL,
			dexscreener.WithUserAgent(userAgent),
			dexscreener.WithLogger(logger.Named("dexscreener")),
		),
	}
	a.store, a.storeErr = a.openStore(cmd.Context())
	if a.storeErr != nil {
		logger.Warn("pair cache unavailable", zap.Error(a.storeErr))
	}

	logger.Debug("tokentide start",
		zap.String("api_url", cfg.APIURL),
		zap.String("store", cfg.StorePath),
		zap.Bool("postgres", cfg.UsePostgres()),
	)
	return a, nil
}

func (a *app) openStore(ctx context.Context) (storage.PairStore, error) {
	if a.cfg.UsePostgres() {
		store, err := postgres.NewStore(ctx, a.cfg.StoreDSN)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		return store, nil
	}

	store, err := storage.OpenFileStore(a.cfg.StorePath, a.logger.Named("store"))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if recovered := store.Recovered(); recovered != nil {
		a.ui.Warn("Pair cache was unreadable and has been reset: %v", recovered)
	}
	return store, nil
}

func (a *app) resolver(opts resolver.Options) *resolver.Resolver {
	return resolver.New(a.client, a.store, opts, a.logger.Named("resolver"))
}

// report prints a runtime failure. Commands return nil afterwards so the
// process still exits zero.
func (a *app) report(err error) {
	switch {
	case errors.Is(err, resolver.ErrNoPairs):
		a.ui.Info("No pairs found.")
	case errors.Is(err, context.Canceled):
		a.ui.Warn("Cancelled.")
	case errors.Is(err, resolver.ErrNoStore) && a.storeErr != nil:
		a.ui.Error("Error: %v", a.storeErr)
	default:
		a.ui.Error("Error: %v", err)
	}
	a.logger.Debug("command failed", zap.Error(err))
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	_ = a.logger.Sync()
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
