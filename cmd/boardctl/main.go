package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"StockBoard/internal/chart"
	"StockBoard/internal/collector"
	"StockBoard/internal/config"
	"StockBoard/internal/list"
	"StockBoard/internal/logging"
	"StockBoard/internal/model"
	"StockBoard/internal/snapshot"
	"StockBoard/internal/state"
)

func main() {
	showList := flag.Bool("list", false, "print the ticker list as a table")
	exportPath := flag.String("export", "", "write the chart image to this file")
	ticker := flag.String("ticker", "", "ticker to export (default: widget.default_ticker)")
	rng := flag.String("range", "", "range to export: 1mo, 3mo, 1y or 5y (default: widget.default_range)")
	imgFormat := flag.String("format", "png", "export image format: png or svg")
	takeSnapshot := flag.Bool("snapshot", false, "screenshot a running board into snapshot.output")
	selector := flag.String("selector", "", "element to screenshot (default: snapshot.selector, empty for the whole page)")
	flag.Parse()

	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logger, err := logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatal().Err(err).Msg("set up logging")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !*showList && *exportPath == "" && !*takeSnapshot {
		flag.Usage()
		os.Exit(2)
	}

	if *showList || *exportPath != "" {
		if err := cfg.Validate(); err != nil {
			logger.Fatal().Err(err).Msg("config validation")
		}
		fetcher := collector.NewAPIFetcher(cfg.API.BaseURL, collector.Endpoints{
			Stats:    cfg.API.StatsPath,
			Profiles: cfg.API.ProfilesPath,
			Series:   cfg.API.SeriesPath,
		}, cfg.API.Timeout, cfg.API.Proxy, logger)

		if *showList {
			if err := printList(ctx, fetcher); err != nil {
				logger.Fatal().Err(err).Msg("list")
			}
		}
		if *exportPath != "" {
			t := *ticker
			if t == "" {
				t = cfg.Widget.DefaultTicker
			}
			r := model.Range(*rng)
			if r == "" {
				r = cfg.Widget.DefaultRange
			}
			if err := exportChart(ctx, fetcher, cfg, logger, *exportPath, t, r, *imgFormat); err != nil {
				logger.Fatal().Err(err).Msg("export")
			}
			logger.Info().Str("file", *exportPath).Str("ticker", t).Str("range", string(r)).Msg("chart exported")
		}
	}

	if *takeSnapshot {
		opts := snapshot.Options{
			URL:      cfg.Snapshot.URL,
			Selector: cfg.Snapshot.Selector,
			Width:    cfg.Snapshot.Width,
			Height:   cfg.Snapshot.Height,
			Timeout:  cfg.Snapshot.Timeout,
		}
		if *selector != "" {
			opts.Selector = *selector
		}
		if err := snapshot.CaptureToFile(ctx, opts, cfg.Snapshot.Output, logger); err != nil {
			logger.Fatal().Err(err).Msg("snapshot")
		}
		logger.Info().Str("file", cfg.Snapshot.Output).Msg("snapshot written")
	}
}

func printList(ctx context.Context, f collector.Fetcher) error {
	stats, err := f.FetchStats(ctx)
	if err != nil {
		return err
	}
	list.WriteTable(os.Stdout, list.Rows(stats))
	return nil
}

func exportChart(ctx context.Context, f collector.Fetcher, cfg *config.Config, logger zerolog.Logger, path, ticker string, rng model.Range, imgFormat string) error {
	if !rng.Valid() {
		return fmt.Errorf("unknown range %q", rng)
	}
	imgFmt, err := chart.ParseImageFormat(imgFormat)
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ds, err := f.FetchSeries(ctx)
	if err != nil {
		return err
	}
	store := state.NewWidgetStore()
	if err := store.Perform(state.SetDataset(ds)); err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	renderer := chart.NewRenderer(store, loc, logger)
	if err := renderer.Export(out, ticker, rng, imgFmt); err != nil {
		out.Close()
		os.Remove(path)
		return err
	}
	return out.Close()
}
