// Package snapshot rasterizes rendered plan pages in a headless browser.
package snapshot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"

	"github.com/jonathan/nutriplan/internal/rendering"
)

// DefaultBackground is the opaque fill behind the plan grid, so transparent areas of
// the page never reach the exported document.
const DefaultBackground = "#1f2937"

// Options configures the headless browser.
type Options struct {
	Timeout        time.Duration
	ViewportWidth  int64
	ViewportHeight int64
	Scale          float64 // device pixels per CSS pixel
	Background     string  // hex color such as "#1f2937"
	ExecPath       string  // Chrome binary; empty uses the chromedp lookup
}

// DefaultOptions returns the options used for exports.
func DefaultOptions() Options {
	return Options{
		Timeout:        60 * time.Second,
		ViewportWidth:  int64(rendering.DefaultGridWidth) + 64,
		ViewportHeight: 1024,
		Scale:          rendering.DefaultDeviceScale,
		Background:     DefaultBackground,
	}
}

// Browser implements rendering.Rasterizer with chromedp.
type Browser struct {
	opts   Options
	logger zerolog.Logger
}

// New creates a Browser. Zero option fields fall back to DefaultOptions.
func New(opts Options, logger zerolog.Logger) *Browser {
	def := DefaultOptions()
	if opts.Timeout <= 0 {
		opts.Timeout = def.Timeout
	}
	if opts.ViewportWidth <= 0 {
		opts.ViewportWidth = def.ViewportWidth
	}
	if opts.ViewportHeight <= 0 {
		opts.ViewportHeight = def.ViewportHeight
	}
	if opts.Scale <= 0 {
		opts.Scale = def.Scale
	}
	if opts.Background == "" {
		opts.Background = def.Background
	}
	return &Browser{opts: opts, logger: logger}
}

// Rasterize loads page into a blank tab and captures the element matched by selector.
// Requires Chrome/Chromium to be installed on the system.
func (b *Browser) Rasterize(ctx context.Context, html, selector string) (rendering.Bitmap, error) {
	background, err := ParseHexColor(b.opts.Background)
	if err != nil {
		return rendering.Bitmap{}, err
	}

	b.logger.Debug().Int("html_bytes", len(html)).Str("selector", selector).Msg("starting headless browser")

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if b.opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(b.opts.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, b.opts.Timeout)
	defer cancel()

	var shot []byte
	err = chromedp.Run(browserCtx,
		chromedp.EmulateViewport(b.opts.ViewportWidth, b.opts.ViewportHeight, chromedp.EmulateScale(b.opts.Scale)),
		emulation.SetDefaultBackgroundColorOverride().WithColor(background),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Screenshot(selector, &shot, chromedp.ByQuery),
	)
	if err != nil {
		return rendering.Bitmap{}, fmt.Errorf("browser snapshot failed: %w", err)
	}

	bitmap, err := rendering.DecodeBitmap(shot)
	if err != nil {
		return rendering.Bitmap{}, err
	}

	b.logger.Debug().Int("width", bitmap.Width).Int("height", bitmap.Height).Msg("captured plan snapshot")
	return bitmap, nil
}

// ParseHexColor parses "#rrggbb" (the leading # is optional) into an opaque color.
func ParseHexColor(s string) (*cdp.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return nil, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return &cdp.RGBA{
		R: int64(v >> 16 & 0xff),
		G: int64(v >> 8 & 0xff),
		B: int64(v & 0xff),
		A: 1,
	}, nil
}
