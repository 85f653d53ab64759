package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"StockBoard/internal/collector"
	"StockBoard/internal/config"
	"StockBoard/internal/logging"
	"StockBoard/internal/scheduler"
	"StockBoard/internal/server"
	"StockBoard/internal/state"
	"StockBoard/internal/widget"
)

func main() {
	// Load config
	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logger, err := logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatal().Err(err).Msg("set up logging")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("config validation")
	}
	logger.Info().Msg("StockBoard starting")

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal().Err(err).Msg("load timezone")
	}

	// Init fetcher
	endpoints := collector.Endpoints{
		Stats:    cfg.API.StatsPath,
		Profiles: cfg.API.ProfilesPath,
		Series:   cfg.API.SeriesPath,
	}
	fetcher := collector.NewAPIFetcher(cfg.API.BaseURL, endpoints, cfg.API.Timeout, cfg.API.Proxy, logger)
	logger.Info().Str("source", fetcher.Name()).Str("base_url", cfg.API.BaseURL).Msg("data source ready")

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Init widget
	store := state.NewWidgetStore(state.Logging(logger))
	w := widget.New(fetcher, store, widget.Options{
		DefaultTicker: cfg.Widget.DefaultTicker,
		DefaultRange:  cfg.Widget.DefaultRange,
		Location:      loc,
	}, logger)
	w.InitDefaultView(ctx)

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, w, logger)
	if err := sched.RegisterRefresh(cfg.Schedule.RefreshCron); err != nil {
		logger.Fatal().Err(err).Msg("register cron tasks")
	}
	sched.Start()
	defer sched.Stop()

	srv := server.New(ctx, w, logger)
	if err := srv.Run(ctx, cfg.Server.Addr); err != nil {
		logger.Error().Err(err).Msg("server")
		stop()
		sched.Stop()
		os.Exit(1)
	}

	logger.Info().Msg("StockBoard stopped")
}
