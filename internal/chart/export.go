package chart

import (
	"fmt"
	"io"
	"strings"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"StockBoard/internal/calculator"
	"StockBoard/internal/model"
)

// ImageFormat selects the encoder used by Export.
type ImageFormat string

const (
	ImagePNG ImageFormat = "png"
	ImageSVG ImageFormat = "svg"
)

// ParseImageFormat accepts "png" or "svg" in any case.
func ParseImageFormat(s string) (ImageFormat, error) {
	switch f := ImageFormat(strings.ToLower(s)); f {
	case ImagePNG, ImageSVG:
		return f, nil
	}
	return "", fmt.Errorf("unsupported image format %q", s)
}

// Export size in pixels.
const (
	ExportWidth  = 800
	ExportHeight = 400
)

var (
	exportBackground = drawing.ColorFromHex("0a0931")
	exportLine       = drawing.ColorFromHex("00ff00")
)

// Export writes ticker/rng from the store's dataset as a static image.
func (r *Renderer) Export(w io.Writer, ticker string, rng model.Range, f ImageFormat) error {
	series, ok := r.store.State().Data.Dataset.Lookup(ticker, rng)
	if !ok {
		return fmt.Errorf("export %s %s: %w", ticker, rng, ErrNoData)
	}
	return WriteImage(w, ticker, series, r.loc, f)
}

// WriteImage draws series with the widget's colors.
func WriteImage(w io.Writer, ticker string, s model.Series, loc *time.Location, f ImageFormat) error {
	if s.Len() < 2 {
		return fmt.Errorf("export %s: need at least 2 points, got %d", ticker, s.Len())
	}
	if loc == nil {
		loc = time.UTC
	}
	low, high, err := calculator.PaddedRange(s.Value, 0.05)
	if err != nil {
		return fmt.Errorf("export %s: %w", ticker, err)
	}

	xs := make([]time.Time, s.Len())
	for i, ts := range s.TimeStamp {
		xs[i] = time.Unix(ts, 0).In(loc)
	}

	ch := gochart.Chart{
		Width:  ExportWidth,
		Height: ExportHeight,
		Background: gochart.Style{
			FillColor: exportBackground,
			Padding:   gochart.Box{Top: 20, Left: 20, Right: 20, Bottom: 40},
		},
		Canvas: gochart.Style{FillColor: exportBackground},
		XAxis:  gochart.XAxis{Style: gochart.Style{Hidden: true}},
		YAxis: gochart.YAxis{
			Style: gochart.Style{Hidden: true},
			Range: &gochart.ContinuousRange{Min: low, Max: high},
		},
		Series: []gochart.Series{
			gochart.TimeSeries{
				Name:    ticker,
				XValues: xs,
				YValues: s.Value,
				Style: gochart.Style{
					StrokeColor: exportLine,
					StrokeWidth: 2,
					DotColor:    exportLine,
					DotWidth:    3,
				},
			},
		},
	}

	var rp gochart.RendererProvider = gochart.PNG
	if f == ImageSVG {
		rp = gochart.SVG
	}
	if err := ch.Render(rp, w); err != nil {
		return fmt.Errorf("export %s: %w", ticker, err)
	}
	return nil
}
