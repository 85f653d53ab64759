// Package chart renders a ticker's price history into the widget state and
// tracks the hover binding for the figure currently on screen.
package chart

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"StockBoard/internal/format"
	"StockBoard/internal/model"
	"StockBoard/internal/state"
)

// ErrNoData is returned when the dataset has no series for a selection.
var ErrNoData = errors.New("no data found")

// Renderer draws charts into a state.Store.
type Renderer struct {
	store *state.Store
	loc   *time.Location
	log   zerolog.Logger

	mu       sync.Mutex
	revision uint64
	current  *Binding
}

// NewRenderer returns a Renderer formatting dates in loc (nil means UTC).
func NewRenderer(store *state.Store, loc *time.Location, log zerolog.Logger) *Renderer {
	if loc == nil {
		loc = time.UTC
	}
	return &Renderer{
		store: store,
		loc:   loc,
		log:   log.With().Str("component", "chart").Logger(),
	}
}

// Render draws ticker/rng from the store's dataset. On success the previous
// hover binding is disposed and the new one returned. When the dataset has no
// such series the store is left untouched and ErrNoData is returned.
func (r *Renderer) Render(ticker string, rng model.Range) (*Binding, error) {
	series, ok := r.store.State().Data.Dataset.Lookup(ticker, rng)
	if !ok {
		r.log.Warn().Msgf("no data found for %s - %s", ticker, rng)
		return nil, fmt.Errorf("render %s %s: %w", ticker, rng, ErrNoData)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.revision++
	fig := BuildFigure(ticker, rng, series, r.loc, r.revision)

	if r.current != nil {
		r.current.Dispose()
	}
	if err := r.store.Perform(state.RenderChart(model.Selection{Ticker: ticker, Range: rng}, fig)); err != nil {
		return nil, fmt.Errorf("render %s %s: %w", ticker, rng, err)
	}
	b := &Binding{r: r, fig: fig}
	r.current = b

	r.log.Debug().Str("ticker", ticker).Str("range", string(rng)).
		Int("points", series.Len()).Uint64("revision", fig.Revision).Msg("chart rendered")
	return b, nil
}

// Current returns the binding of the figure on screen, or nil before the
// first render.
func (r *Renderer) Current() *Binding {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Binding routes pointer events to one rendered figure. Once disposed it
// ignores every event.
type Binding struct {
	r   *Renderer
	fig *model.Figure

	mu       sync.Mutex
	disposed bool
}

// Revision is the figure revision the binding belongs to.
func (b *Binding) Revision() uint64 { return b.fig.Revision }

// Hover draws the guide line at x and sets the hover label.
func (b *Binding) Hover(x string) error {
	if !b.active() {
		b.r.log.Debug().Uint64("revision", b.fig.Revision).Msg("hover on disposed binding ignored")
		return nil
	}
	if !b.fig.HasX(x) {
		b.r.log.Debug().Str("x", x).Msg("hover outside plotted series ignored")
		return nil
	}
	return b.r.store.Perform(state.Hover(b.fig.Revision, x, format.HoverLabel(x), GuideLine(x)))
}

// Leave removes the guide line and clears the hover label.
func (b *Binding) Leave() error {
	if !b.active() {
		return nil
	}
	return b.r.store.Perform(state.Leave(b.fig.Revision))
}

// Dispose detaches the binding. It is safe to call more than once.
func (b *Binding) Dispose() {
	b.mu.Lock()
	b.disposed = true
	b.mu.Unlock()
}

func (b *Binding) active() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.disposed
}
