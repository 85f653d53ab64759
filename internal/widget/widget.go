// Package widget wires the fetcher, the renderers and the state store into
// the stock widget's user-facing operations.
package widget

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"StockBoard/internal/chart"
	"StockBoard/internal/collector"
	"StockBoard/internal/format"
	"StockBoard/internal/list"
	"StockBoard/internal/model"
	"StockBoard/internal/state"
)

// ErrUnknownTicker is returned when a ticker has no stats entry.
var ErrUnknownTicker = errors.New("unknown ticker")

// Options configures a Widget.
type Options struct {
	// DefaultTicker is shown on startup.
	DefaultTicker string
	// DefaultRange is drawn on startup and whenever a ticker is selected.
	DefaultRange model.Range
	// Location formats chart dates; nil means UTC.
	Location *time.Location
}

// Widget is the stock widget orchestrator.
type Widget struct {
	fetcher collector.Fetcher
	store   *state.Store
	chart   *chart.Renderer
	list    *list.Renderer
	opts    Options
	log     zerolog.Logger

	// mu guards the selection generation and serializes its commits.
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// New returns a Widget reading from fetcher and writing into store.
func New(fetcher collector.Fetcher, store *state.Store, opts Options, log zerolog.Logger) *Widget {
	if opts.DefaultTicker == "" {
		opts.DefaultTicker = "AAPL"
	}
	if !opts.DefaultRange.Valid() {
		opts.DefaultRange = model.DefaultRange
	}
	w := &Widget{
		fetcher: fetcher,
		store:   store,
		opts:    opts,
		log:     log.With().Str("component", "widget").Logger(),
	}
	w.chart = chart.NewRenderer(store, opts.Location, log)
	w.list = list.NewRenderer(store, w, log)
	return w
}

// Store returns the widget's state store.
func (w *Widget) Store() *state.Store { return w.store }

// Chart returns the chart renderer.
func (w *Widget) Chart() *chart.Renderer { return w.chart }

// List returns the list renderer.
func (w *Widget) List() *list.Renderer { return w.list }

// DefaultTicker is the ticker shown on startup.
func (w *Widget) DefaultTicker() string { return w.opts.DefaultTicker }

// InitDefaultView loads the list, the default ticker's panel and description,
// and its default-range chart. A failing step is logged and the rest still run.
func (w *Widget) InitDefaultView(ctx context.Context) {
	ticker := w.opts.DefaultTicker
	w.log.Info().Str("ticker", ticker).Msg("initializing default view")

	if err := w.FetchAndRenderList(ctx); err != nil {
		w.log.Error().Err(err).Msg("load list")
	} else if err := w.UpdatePanel(ticker); err != nil {
		w.log.Error().Err(err).Msg("update panel")
	}
	if err := w.FetchDescription(ctx, ticker); err != nil {
		w.log.Error().Err(err).Msg("load description")
	}
	if err := w.RenderChart(ctx, ticker, w.opts.DefaultRange); err != nil {
		w.log.Error().Err(err).Msg("render default chart")
	}
}

// FetchAndRenderList fetches stats and renders the ticker list.
func (w *Widget) FetchAndRenderList(ctx context.Context) error {
	stats, err := w.fetcher.FetchStats(ctx)
	if err != nil {
		return err
	}
	return w.list.Render(stats)
}

// FetchDescription fetches profiles and shows ticker's summary. A missing
// summary is logged and leaves the description unchanged.
func (w *Widget) FetchDescription(ctx context.Context, ticker string) error {
	profiles, err := w.fetcher.FetchProfiles(ctx)
	if err != nil {
		return err
	}
	return w.setDescription(ticker, profiles)
}

func (w *Widget) setDescription(ticker string, profiles map[string]model.ProfileEntry) error {
	p, ok := profiles[ticker]
	if !ok || p.Summary == "" {
		w.log.Warn().Str("ticker", ticker).Msg("no summary found")
		return nil
	}
	return w.store.Perform(state.SetDescription(p.Summary))
}

// RenderChart fetches the full dataset and draws ticker/rng.
func (w *Widget) RenderChart(ctx context.Context, ticker string, rng model.Range) error {
	ds, err := w.fetcher.FetchSeries(ctx)
	if err != nil {
		return err
	}
	if err := w.store.Perform(state.SetDataset(ds)); err != nil {
		return err
	}
	_, err = w.chart.Render(ticker, rng)
	return err
}

// UpdatePanel shows ticker's stats in the info panel.
func (w *Widget) UpdatePanel(ticker string) error {
	st, ok := w.store.State().Data.Stats[ticker]
	if !ok {
		return fmt.Errorf("update panel %s: %w", ticker, ErrUnknownTicker)
	}
	return w.store.Perform(state.SetPanel(format.Panel(ticker, st)))
}

// SelectTicker shows ticker: description first, then the dataset and its
// default-range chart, then the info panel. Starting a selection cancels the
// one in flight, and results from a superseded selection are dropped.
func (w *Widget) SelectTicker(parent context.Context, ticker string) {
	ctx, gen := w.beginSelection(parent)
	defer w.endSelection(gen)

	log := w.log.With().Str("ticker", ticker).Uint64("selection", gen).Logger()
	log.Info().Msg("ticker selected")

	if profiles, err := w.fetcher.FetchProfiles(ctx); err != nil {
		log.Error().Err(err).Msg("load description")
	} else {
		w.commit(gen, log, func() error { return w.setDescription(ticker, profiles) })
	}

	if ds, err := w.fetcher.FetchSeries(ctx); err != nil {
		log.Error().Err(err).Msg("load dataset")
	} else {
		w.commit(gen, log, func() error {
			if err := w.store.Perform(state.SetDataset(ds)); err != nil {
				return err
			}
			_, err := w.chart.Render(ticker, w.opts.DefaultRange)
			return err
		})
	}

	w.commit(gen, log, func() error { return w.UpdatePanel(ticker) })
}

func (w *Widget) beginSelection(parent context.Context) (context.Context, uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		w.cancel()
	}
	w.gen++
	ctx, cancel := context.WithCancel(parent)
	w.cancel = cancel
	return ctx, w.gen
}

func (w *Widget) endSelection(gen uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.gen == gen && w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
}

// commit runs fn only while gen is still the newest selection.
func (w *Widget) commit(gen uint64, log zerolog.Logger, fn func() error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.gen {
		log.Debug().Msg("superseded selection result dropped")
		return
	}
	if err := fn(); err != nil {
		log.Error().Err(err).Msg("selection step failed")
	}
}

// SelectRange re-renders the selected ticker for the range behind a button
// label. Unknown labels are logged and ignored.
func (w *Widget) SelectRange(label string) {
	rng, ok := model.RangeForLabel(label)
	if !ok {
		w.log.Warn().Str("label", label).Msg("unknown range label")
		return
	}
	ticker := w.store.State().Data.Selection.Ticker
	if ticker == "" {
		ticker = w.opts.DefaultTicker
	}
	if _, err := w.chart.Render(ticker, rng); err != nil {
		w.log.Error().Err(err).Str("label", label).Msg("select range")
	}
}

// Hover forwards a pointer position to the chart on screen.
func (w *Widget) Hover(x string) error {
	return w.HoverAt(0, x)
}

// HoverAt forwards a pointer position reported by the figure with the given
// revision. Zero means whatever figure is on screen. Positions from a figure
// that has since been replaced are dropped.
func (w *Widget) HoverAt(revision uint64, x string) error {
	b := w.binding(revision)
	if b == nil {
		w.log.Debug().Uint64("revision", revision).Str("x", x).Msg("hover on stale or missing figure ignored")
		return nil
	}
	return b.Hover(x)
}

// Leave clears the hover guide on the chart on screen.
func (w *Widget) Leave() error {
	return w.LeaveAt(0)
}

// LeaveAt clears the hover guide if the figure with the given revision is
// still on screen.
func (w *Widget) LeaveAt(revision uint64) error {
	b := w.binding(revision)
	if b == nil {
		w.log.Debug().Uint64("revision", revision).Msg("leave on stale or missing figure ignored")
		return nil
	}
	return b.Leave()
}

func (w *Widget) binding(revision uint64) *chart.Binding {
	b := w.chart.Current()
	if b == nil || (revision != 0 && b.Revision() != revision) {
		return nil
	}
	return b
}

// Refresh refetches stats and series, then redraws the list, the panel and
// the current chart.
func (w *Widget) Refresh(ctx context.Context) error {
	var errs []error

	if err := w.FetchAndRenderList(ctx); err != nil {
		errs = append(errs, err)
	}
	ds, err := w.fetcher.FetchSeries(ctx)
	if err != nil {
		errs = append(errs, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	sel := w.store.State().Data.Selection
	if sel.Ticker == "" {
		sel = model.Selection{Ticker: w.opts.DefaultTicker, Range: w.opts.DefaultRange}
	}
	if ds != nil {
		if err := w.store.Perform(state.SetDataset(ds)); err != nil {
			errs = append(errs, err)
		} else if _, err := w.chart.Render(sel.Ticker, sel.Range); err != nil {
			errs = append(errs, err)
		}
	}
	if _, ok := w.store.State().Data.Stats[sel.Ticker]; ok {
		if err := w.UpdatePanel(sel.Ticker); err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	w.log.Info().Str("ticker", sel.Ticker).Msg("refreshed")
	return nil
}
