// Package list renders the ticker list and routes clicks on its rows.
package list

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"

	"StockBoard/internal/format"
	"StockBoard/internal/model"
	"StockBoard/internal/state"
)

// Selector is told which ticker a row click selected.
type Selector interface {
	SelectTicker(ctx context.Context, ticker string)
}

// Renderer writes list rows into the store.
type Renderer struct {
	store    *state.Store
	selector Selector
	log      zerolog.Logger
}

// NewRenderer returns a Renderer. selector may be nil, in which case clicks
// are only logged.
func NewRenderer(store *state.Store, selector Selector, log zerolog.Logger) *Renderer {
	return &Renderer{
		store:    store,
		selector: selector,
		log:      log.With().Str("component", "list").Logger(),
	}
}

// Rows builds one row per ticker, ordered by ticker symbol.
func Rows(stats map[string]model.StatsEntry) []model.ListRow {
	tickers := make([]string, 0, len(stats))
	for t := range stats {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	rows := make([]model.ListRow, 0, len(tickers))
	for _, t := range tickers {
		rows = append(rows, format.Row(t, stats[t]))
	}
	return rows
}

// Render stores stats and the rows built from it.
func (r *Renderer) Render(stats map[string]model.StatsEntry) error {
	if err := r.store.Perform(state.SetStats(stats)); err != nil {
		return fmt.Errorf("render list: %w", err)
	}
	rows := Rows(stats)
	if err := r.store.Perform(state.SetList(rows)); err != nil {
		return fmt.Errorf("render list: %w", err)
	}
	r.log.Info().Int("rows", len(rows)).Msg("list rendered")
	return nil
}

// Click handles a click on ticker's row. Tickers not in the list are ignored.
func (r *Renderer) Click(ctx context.Context, ticker string) {
	if _, ok := r.store.State().Data.Stats[ticker]; !ok {
		r.log.Warn().Str("ticker", ticker).Msg("click on unknown ticker ignored")
		return
	}
	r.log.Info().Str("ticker", ticker).Msg("row clicked")
	if r.selector != nil {
		r.selector.SelectTicker(ctx, ticker)
	}
}

// WriteTable prints rows as a terminal table.
func WriteTable(w io.Writer, rows []model.ListRow) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Ticker", "Price", "Profit", "Trend"})
	table.SetAutoFormatHeaders(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
	})
	for _, row := range rows {
		table.Append([]string{row.Ticker, row.Price, row.ProfitText, row.ColorClass})
	}
	table.Render()
}
