// Package export turns a document into files: HTML pages from embedded
// templates, PDF through headless Chrome, XLSX workbooks and the plain-text
// WhatsApp and narrative forms.
package export

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"invoicekit/internal/document"
	"invoicekit/internal/logger"
	"invoicekit/internal/share"
	"invoicekit/pkg/models"
	"invoicekit/pkg/services"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeText = "text/plain; charset=utf-8"
)

// PDFRenderer prints an HTML page to PDF. *ChromedpRenderer satisfies it.
type PDFRenderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// DocumentExporter implements services.Exporter for every supported format.
type DocumentExporter struct {
	company  models.Company
	engine   *TemplateEngine
	workbook *WorkbookExporter
	pdf      PDFRenderer
	now      func() time.Time
	log      zerolog.Logger
}

// Option configures a DocumentExporter.
type Option func(*DocumentExporter)

// WithPDFRenderer enables PDF output. Without it PDF exports fail with
// ErrRendererUnavailable.
func WithPDFRenderer(r PDFRenderer) Option {
	return func(e *DocumentExporter) {
		e.pdf = r
	}
}

// WithClock replaces the wall clock used for file names and timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *DocumentExporter) {
		e.now = now
	}
}

// NewDocumentExporter creates an exporter printing company as the issuer.
func NewDocumentExporter(company models.Company, opts ...Option) (*DocumentExporter, error) {
	engine, err := NewTemplateEngine()
	if err != nil {
		return nil, err
	}

	e := &DocumentExporter{
		company:  company,
		engine:   engine,
		workbook: NewWorkbookExporter(),
		now:      time.Now,
		log:      logger.WithComponent("export"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Export renders doc in opts.Format.
func (e *DocumentExporter) Export(ctx context.Context, doc *document.State, opts services.ExportOptions) (*services.ExportResult, error) {
	const op = "Export"

	start := time.Now()
	now := e.now()

	result := &services.ExportResult{
		Format:      opts.Format,
		Number:      doc.Number(),
		GeneratedAt: now,
	}
	if doc.Mode == document.ModeProposal && doc.Proposal.IsTermin() {
		result.Warnings = doc.TerminValidation().Warnings
	}

	var err error
	switch opts.Format {
	case services.FormatHTML:
		result.Data, err = e.renderHTML(doc, now)
		result.ContentType = contentTypeHTML
		result.FileName = FileName(doc, ".html", now)

	case services.FormatPDF:
		result.Data, err = e.renderPDF(ctx, doc, now)
		result.ContentType = contentTypePDF
		result.FileName = PDFFileName(doc, now)

	case services.FormatXLSX:
		result.Data, err = e.workbook.Export(doc)
		result.ContentType = contentTypeXLSX
		result.FileName = FileName(doc, ".xlsx", now)

	case services.FormatWhatsApp:
		message := share.Message(doc, e.company, opts.IncludeDetails)
		result.Data = []byte(message)
		result.ShareURL, err = share.ShareURL(message, opts.Phone)
		result.ContentType = contentTypeText
		result.FileName = FileName(doc, "_whatsapp.txt", now)

	case services.FormatNarrative:
		result.Data = []byte(share.ProposalNarrative(doc, e.company))
		result.ContentType = contentTypeText
		result.FileName = FileName(doc, "_narasi.txt", now)

	default:
		err = &ExportError{Op: op, Err: ErrUnsupportedFormat, Format: string(opts.Format)}
	}
	if err != nil {
		return nil, WrapExportError(op, err, string(opts.Format))
	}

	result.Bytes = len(result.Data)
	result.Duration = time.Since(start)

	e.log.Info().
		Str("format", string(opts.Format)).
		Str("mode", string(doc.Mode)).
		Str("number", result.Number).
		Str("file", result.FileName).
		Int("bytes", result.Bytes).
		Dur("duration", result.Duration).
		Msg("Document exported")

	return result, nil
}

func (e *DocumentExporter) renderHTML(doc *document.State, now time.Time) ([]byte, error) {
	html, err := e.engine.Render(NewView(doc, e.company, now))
	if err != nil {
		return nil, err
	}
	return []byte(html), nil
}

func (e *DocumentExporter) renderPDF(ctx context.Context, doc *document.State, now time.Time) ([]byte, error) {
	if e.pdf == nil {
		return nil, NewExportError("RenderPDF", ErrRendererUnavailable, "")
	}
	html, err := e.engine.Render(NewView(doc, e.company, now))
	if err != nil {
		return nil, err
	}
	return e.pdf.Render(ctx, html)
}

// Ensure DocumentExporter implements services.Exporter
var _ services.Exporter = (*DocumentExporter)(nil)
