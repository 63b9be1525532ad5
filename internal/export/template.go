package export

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"maps"
	"strings"
	"time"

	"invoicekit/internal/document"
	"invoicekit/internal/rupiah"
	"invoicekit/internal/share"
	"invoicekit/internal/termin"
	"invoicekit/pkg/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// View is the data handed to the document templates.
type View struct {
	Doc       *document.State
	Company   models.Company
	Narrative string
	Termin    termin.Validation
	Package   document.Package
	Packages  []document.Package
	Generated time.Time
}

// TemplateEngine renders documents to standalone HTML pages.
type TemplateEngine struct {
	funcMap template.FuncMap
	tmpl    *template.Template
}

// TemplateEngineOption configures the template engine
type TemplateEngineOption func(*TemplateEngine)

// WithFuncs adds or overrides template functions.
func WithFuncs(funcs template.FuncMap) TemplateEngineOption {
	return func(e *TemplateEngine) {
		maps.Copy(e.funcMap, funcs)
	}
}

// NewTemplateEngine parses the embedded templates.
func NewTemplateEngine(opts ...TemplateEngineOption) (*TemplateEngine, error) {
	e := &TemplateEngine{
		funcMap: template.FuncMap{
			"rupiah":    rupiah.FormatRupiah,
			"amount":    rupiah.Format,
			"terbilang": rupiah.TerbilangRupiah,
			"percent":   formatPercent,
			"inc":       func(i int) int { return i + 1 },
			"dash":      dash,
			"upper":     strings.ToUpper,
			"css":       func(s string) template.CSS { return template.CSS(s) },
		},
	}
	for _, opt := range opts {
		opt(e)
	}

	tmpl, err := template.New("documents").Funcs(e.funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, NewExportError("ParseTemplates", fmt.Errorf("%w: %v", ErrTemplate, err), "")
	}
	e.tmpl = tmpl
	return e, nil
}

// NewView assembles the template data for s.
func NewView(s *document.State, company models.Company, now time.Time) View {
	return View{
		Doc:       s,
		Company:   company,
		Narrative: share.ProposalNarrative(s, company),
		Termin:    s.TerminValidation(),
		Package:   s.Brochure.Selected(),
		Packages:  document.Packages(),
		Generated: now,
	}
}

// Render executes the template matching the document mode.
func (e *TemplateEngine) Render(view View) (string, error) {
	const op = "RenderHTML"

	name := templateName(view.Doc.Mode)
	var buf bytes.Buffer
	if err := e.tmpl.ExecuteTemplate(&buf, name, view); err != nil {
		return "", NewExportError(op, fmt.Errorf("%w: %v", ErrTemplate, err), name)
	}
	return buf.String(), nil
}

func templateName(mode document.Mode) string {
	switch mode {
	case document.ModeProposal:
		return "proposal"
	case document.ModeBrochure:
		return "brochure"
	}
	return "invoice"
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
