package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mchmarny/currentmenu/pkg/block"
	"github.com/mchmarny/currentmenu/pkg/config"
	"github.com/mchmarny/currentmenu/pkg/logger"
	"github.com/mchmarny/currentmenu/pkg/metric"
	"github.com/mchmarny/currentmenu/pkg/server"
	"github.com/mchmarny/currentmenu/pkg/store"
)

func openStore(cfg *config.Config) (store.Store, func() error, error) {
	if cfg.Store.RedisURL != "" {
		s, err := store.NewRedisStoreFromURL(cfg.Store.RedisURL, cfg.Store.RedisPrefix)
		if err != nil {
			return nil, nil, err
		}

		return s, s.Close, nil
	}

	s, err := store.NewFileStore(cfg.Store.File)
	if err != nil {
		return nil, nil, err
	}

	return s, func() error { return nil }, nil
}

func newBlock(cfg *config.Config, s store.Store, opt ...block.Option) *block.Block {
	opt = append(opt,
		block.WithDepth(cfg.Render.Depth),
		block.WithClass(cfg.Render.Class),
	)

	if f := cfg.MenuFilter(); f != nil {
		opt = append(opt, block.WithMenuFilter(f))
	}

	return block.New(s, opt...)
}

func serve(ctx context.Context, cfg *config.Config) error {
	slog.Info("starting "+name, "commit", commit, "date", date)

	s, closeStore, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			slog.Error("failed to close store", "error", err)
		}
	}()

	reg := prometheus.NewRegistry()
	b := newBlock(cfg, s, block.WithCounter(metric.NewRenderCounter(reg)))

	opts := []server.Option{
		server.WithPort(cfg.Server.Port),
		server.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
		server.WithErrorLog(logger.NewLogLogger(slog.LevelError)),
		server.WithRegistry(reg),
		server.WithPrometheusMetrics(),
		server.WithSimpleHealth(),
	}

	if rc, ok := s.(server.ReadinessChecker); ok {
		opts = append(opts, server.WithReadiness(rc))
	}

	return b.Run(ctx, opts...)
}
