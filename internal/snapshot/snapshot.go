// Package snapshot screenshots a running widget host with a headless browser.
package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"
)

// Options controls a capture.
type Options struct {
	// URL of the widget page.
	URL string
	// Selector is the element to capture; empty captures the whole page.
	Selector string
	Width    int64
	Height   int64
	Timeout  time.Duration
}

func (o *Options) defaults() error {
	if o.URL == "" {
		return errors.New("snapshot url is required")
	}
	if o.Width <= 0 {
		o.Width = 1280
	}
	if o.Height <= 0 {
		o.Height = 800
	}
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	return nil
}

// fullPageQuality makes FullScreenshot encode PNG; anything below 100 is JPEG.
const fullPageQuality = 100

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func checkPNG(buf []byte) error {
	if !bytes.HasPrefix(buf, pngMagic) {
		return errors.New("screenshot is not a png")
	}
	return nil
}

// tasks waits for Plotly to draw before taking the screenshot into buf.
func (o Options) tasks(buf *[]byte) chromedp.Tasks {
	ts := chromedp.Tasks{
		emulation.SetDeviceMetricsOverride(o.Width, o.Height, 1, false),
		chromedp.Navigate(o.URL),
		chromedp.WaitVisible("#chart .main-svg", chromedp.ByQuery),
	}
	if o.Selector != "" {
		return append(ts, chromedp.Screenshot(o.Selector, buf, chromedp.NodeVisible, chromedp.ByQuery))
	}
	return append(ts, chromedp.FullScreenshot(buf, fullPageQuality))
}

// Capture loads the page and returns a PNG screenshot.
func Capture(ctx context.Context, opts Options, log zerolog.Logger) ([]byte, error) {
	if err := opts.defaults(); err != nil {
		return nil, err
	}
	log = log.With().Str("component", "snapshot").Str("url", opts.URL).Logger()

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.NoSandbox,
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	logf := func(format string, args ...any) { log.Debug().Msgf(format, args...) }
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(logf))
	defer cancelBrowser()

	runCtx, cancel := context.WithTimeout(browserCtx, opts.Timeout)
	defer cancel()

	start := time.Now()
	var buf []byte
	if err := chromedp.Run(runCtx, opts.tasks(&buf)); err != nil {
		return nil, fmt.Errorf("capture %s: %w", opts.URL, err)
	}
	if err := checkPNG(buf); err != nil {
		return nil, fmt.Errorf("capture %s: %w", opts.URL, err)
	}
	log.Info().Int("bytes", len(buf)).Dur("took", time.Since(start)).Msg("snapshot captured")
	return buf, nil
}

// CaptureToFile writes a screenshot to path.
func CaptureToFile(ctx context.Context, opts Options, path string, log zerolog.Logger) error {
	buf, err := Capture(ctx, opts, log)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
