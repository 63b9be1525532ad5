package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"invoicekit/internal/document"
	"invoicekit/internal/termin"
)

// Format is an output format of the export command.
type Format string

const (
	FormatPDF       Format = "pdf"
	FormatHTML      Format = "html"
	FormatXLSX      Format = "xlsx"
	FormatWhatsApp  Format = "whatsapp"
	FormatNarrative Format = "narasi"
)

// Formats lists every supported format in help-text order.
var Formats = []Format{FormatPDF, FormatHTML, FormatXLSX, FormatWhatsApp, FormatNarrative}

// ParseFormat accepts a format name case-insensitively ("wa" and
// "narrative" are aliases).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPDF, FormatHTML, FormatXLSX, FormatWhatsApp, FormatNarrative:
		return f, nil
	case "wa":
		return FormatWhatsApp, nil
	case "narrative":
		return FormatNarrative, nil
	}
	return "", fmt.Errorf("unknown format %q (want one of %s)", s, joinFormats())
}

// Extension returns the file extension written for the format.
func (f Format) Extension() string {
	switch f {
	case FormatPDF:
		return ".pdf"
	case FormatHTML:
		return ".html"
	case FormatXLSX:
		return ".xlsx"
	}
	return ".txt"
}

// ExportOptions tunes one export.
type ExportOptions struct {
	Format Format
	// IncludeDetails lists work items in WhatsApp invoice messages
	IncludeDetails bool
	// Phone addresses the WhatsApp share link (optional)
	Phone string
}

// Exporter defines the interface for turning a document into an output file
type Exporter interface {
	// Export renders doc in the requested format
	Export(ctx context.Context, doc *document.State, opts ExportOptions) (*ExportResult, error)
}

// ExportResult represents one exported document
type ExportResult struct {
	FileName    string           `json:"file_name"`
	ContentType string           `json:"content_type"`
	Format      Format           `json:"format"`
	Number      string           `json:"number,omitempty"`
	Data        []byte           `json:"-"`
	Bytes       int              `json:"bytes"`
	ShareURL    string           `json:"share_url,omitempty"` // wa.me link for WhatsApp exports
	Warnings    []termin.Warning `json:"warnings,omitempty"`

	// Metadata
	GeneratedAt time.Time     `json:"generated_at"`
	Duration    time.Duration `json:"duration"`
}

func joinFormats() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
