// Package main is the entry point for the blockexport tool.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/Faultbox/blockforge/internal/assets"
	"github.com/Faultbox/blockforge/internal/config"
	"github.com/Faultbox/blockforge/internal/logger"
	"github.com/Faultbox/blockforge/internal/pipeline"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	// A bare positional argument names the prefab.
	if cfg.Input.Prefab == "" && len(config.Args()) > 0 {
		cfg.Input.Prefab = config.Args()[0]
	}

	opts := logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format, Console: true}
	if cfg.Logging.LogFile != "" {
		opts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.InitWithOptions(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("export failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	mgr := assets.NewManager()
	defer mgr.Close()
	for _, p := range cfg.Assets.Paths {
		if err := mgr.AddPath(p); err != nil {
			return err
		}
	}

	e, err := pipeline.New(cfg, mgr)
	if err != nil {
		return err
	}
	res, err := e.Run(ctx)
	if err != nil {
		return err
	}

	hits, misses := mgr.CacheStats()
	logger.Info("export finished",
		zap.String("mtl", res.MTL),
		zap.String("atlas", res.Atlas),
		zap.Int("cache_hits", hits),
		zap.Int("cache_misses", misses))
	if missing := e.Models().Missing(); len(missing) > 0 {
		logger.Warn("blocks without model", zap.Strings("blocks", missing))
	}
	return nil
}
