package export

import (
	"regexp"
	"strings"
	"time"

	"invoicekit/internal/document"
)

// spaceClass is every character browsers treat as whitespace in a regular
// expression: ASCII \s plus Unicode space separators such as NBSP.
const spaceClass = `\s\p{Zs}\x{FEFF}\x{2028}\x{2029}`

var (
	unsafeFileChars  = regexp.MustCompile(`[^a-zA-Z0-9_\-.]`)
	brochureStrip    = regexp.MustCompile(`[^a-zA-Z0-9` + spaceClass + `-]`)
	brochureSpaceRun = regexp.MustCompile(`[` + spaceClass + `]+`)
)

// PDFFileName names the PDF of an invoice or surat penawaran:
// "{number}_{company}.pdf" with every character outside [A-Za-z0-9_.-]
// replaced by "_". Brochures use BrochureFileName.
func PDFFileName(s *document.State, now time.Time) string {
	return FileName(s, ".pdf", now)
}

// FileName is PDFFileName with a different extension.
func FileName(s *document.State, ext string, now time.Time) string {
	if s.Mode == document.ModeBrochure {
		return strings.TrimSuffix(BrochureFileName(s.Client.CompanyName, now), ".pdf") + ext
	}

	number := s.Number()
	if number == "" {
		number = "Invoice"
		if s.Mode == document.ModeProposal {
			number = "SuratPenawaran"
		}
	}
	company := s.Client.CompanyName
	if company == "" {
		company = "Client"
	}
	return unsafeFileChars.ReplaceAllString(number+"_"+company+ext, "_")
}

// BrochureFileName names a brochure PDF, e.g.
// "Brosur-Website-SMK-Nusantara-2026-01-05.pdf". Runs of whitespace,
// non-breaking spaces included, become a single "-".
// The date is the UTC calendar day of now.
func BrochureFileName(client string, now time.Time) string {
	if client == "" {
		client = "Klien"
	}
	name := brochureStrip.ReplaceAllString(client, "")
	name = brochureSpaceRun.ReplaceAllString(name, "-")
	return "Brosur-Website-" + name + "-" + now.UTC().Format("2006-01-02") + ".pdf"
}
