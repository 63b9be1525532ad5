package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"

	"invoicekit/internal/logger"
)

const (
	defaultChromeTimeout = 30 * time.Second

	a4WidthMM  = 210
	a4HeightMM = 297
)

// ChromedpConfig contains configuration for the chromedp renderer
type ChromedpConfig struct {
	// Timeout for one rendering
	Timeout time.Duration
	// RemoteURL is the DevTools URL of a running Chrome (optional).
	// If empty, chromedp launches a local headless browser.
	RemoteURL string
	// NoSandbox runs Chrome without sandbox (required for Docker/root)
	NoSandbox bool
	// MarginMM is applied on every side of the page
	MarginMM float64
	Logger   *zerolog.Logger
}

// ChromedpRenderer prints HTML to A4 PDF through the Chrome DevTools Protocol.
type ChromedpRenderer struct {
	config      ChromedpConfig
	log         zerolog.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChromedpRenderer prepares a browser allocator. Chrome itself is only
// started on the first Render.
func NewChromedpRenderer(config ChromedpConfig) *ChromedpRenderer {
	if config.Timeout == 0 {
		config.Timeout = defaultChromeTimeout
	}

	log := logger.WithComponent("pdf")
	if config.Logger != nil {
		log = *config.Logger
	}

	r := &ChromedpRenderer{config: config, log: log}
	r.initAllocator()
	return r
}

func (r *ChromedpRenderer) initAllocator() {
	if r.config.RemoteURL != "" {
		r.allocCtx, r.allocCancel = chromedp.NewRemoteAllocator(context.Background(), r.config.RemoteURL)
		return
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if r.config.NoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}
	r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
}

// Render converts a complete HTML page to PDF bytes.
func (r *ChromedpRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	const op = "RenderPDF"

	if strings.TrimSpace(html) == "" {
		return nil, NewExportError(op, ErrEmptyHTML, "")
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(r.allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			r.log.Debug().Msgf(format, args...)
		}),
	)
	defer browserCancel()

	// stop the browser tab when the caller's deadline passes
	stop := context.AfterFunc(ctx, browserCancel)
	defer stop()

	params := buildPrintParams(r.config.MarginMM)
	content := wrapHTML(html)

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, content).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := params.command().Do(ctx)
			if err != nil {
				return err
			}
			pdf = data
			return nil
		}),
	)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, NewExportError(op, ErrRenderTimeout, fmt.Sprintf("after %v", r.config.Timeout))
		}
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, NewExportError(op, context.Canceled, "")
		}
		r.log.Error().Err(err).Msg("chromedp rendering failed")
		return nil, NewExportError(op, fmt.Errorf("%w: %v", ErrRenderFailed, err), "")
	}
	if len(pdf) == 0 {
		return nil, NewExportError(op, ErrRenderFailed, "generated PDF is empty")
	}

	r.log.Info().
		Int("bytes", len(pdf)).
		Dur("duration", time.Since(start)).
		Msg("PDF rendered")
	return pdf, nil
}

// Close releases the browser allocator.
func (r *ChromedpRenderer) Close() error {
	if r.allocCancel != nil {
		r.allocCancel()
	}
	return nil
}

// printParams holds the PrintToPDF parameters in inches.
type printParams struct {
	paperWidth  float64
	paperHeight float64
	margin      float64
	background  bool
}

func buildPrintParams(marginMM float64) printParams {
	if marginMM < 0 {
		marginMM = 0
	}
	return printParams{
		paperWidth:  mmToInches(a4WidthMM),
		paperHeight: mmToInches(a4HeightMM),
		margin:      mmToInches(marginMM),
		background:  true,
	}
}

func (p printParams) command() *page.PrintToPDFParams {
	return page.PrintToPDF().
		WithPrintBackground(p.background).
		WithPaperWidth(p.paperWidth).
		WithPaperHeight(p.paperHeight).
		WithMarginTop(p.margin).
		WithMarginRight(p.margin).
		WithMarginBottom(p.margin).
		WithMarginLeft(p.margin).
		WithPreferCSSPageSize(false)
}

// wrapHTML completes a fragment into a full HTML document.
func wrapHTML(html string) string {
	lower := strings.ToLower(html)
	if strings.Contains(lower, "<!doctype") || strings.Contains(lower, "<html") {
		return html
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html><html><head><meta charset=\"UTF-8\"></head><body>")
	buf.WriteString(html)
	buf.WriteString("</body></html>")
	return buf.String()
}

func mmToInches(mm float64) float64 {
	return mm / 25.4
}
