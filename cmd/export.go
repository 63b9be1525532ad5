package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"invoicekit/internal/config"
	"invoicekit/internal/document"
	"invoicekit/internal/export"
	"invoicekit/internal/logger"
	"invoicekit/internal/numbering"
	"invoicekit/internal/share"
	"invoicekit/pkg/services"
)

// maxDocumentSizeBytes bounds the JSON document files accepted for export.
const maxDocumentSizeBytes = 5 * 1024 * 1024

var exportCmd = &cobra.Command{
	Use:   "export [document.json]",
	Short: "Export an invoice, surat penawaran or brochure document",
	Long: `Render a document file as PDF, HTML, XLSX, a WhatsApp message or the
surat penawaran narrative.

The document is a JSON file with the fields of the editor form
(documentMode, invoiceNumber, clientInfo, workItems, suratPenawaranInfo,
brosur, ...). Totals and termin amounts are recomputed on load.

PDF output needs a Chrome or Chromium binary on PATH, or CHROME_REMOTE_URL
pointing at a running headless Chrome.

Text formats (whatsapp, narasi) are printed to stdout unless -o is given;
the other formats are written to -o or to the generated file name in the
current directory.`,
	Example: `  # PDF named after the document number and client
  invoicekit export invoice.json

  # Give the invoice the next number first and keep it in the file
  invoicekit export invoice.json --assign-number --save

  # WhatsApp message without item details, with a wa.me link
  invoicekit export invoice.json --format whatsapp --no-details --phone 0812-2512-9109

  # Spreadsheet into a folder, metadata as JSON
  invoicekit export proposal.json --format xlsx -o ./out --json`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

// ExportOutput is the --json metadata printed after an export.
type ExportOutput struct {
	Result     *services.ExportResult `json:"result"`
	OutputPath string                 `json:"output_path,omitempty"`
	Source     string                 `json:"source"`
	// Text carries whatsapp and narasi output when no file was written.
	Text string `json:"text,omitempty"`
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("format", "f", string(services.FormatPDF), "Output format: pdf, html, xlsx, whatsapp, narasi")
	exportCmd.Flags().StringP("output", "o", "", "Output file or directory")
	exportCmd.Flags().Bool("assign-number", false, "Issue the next document number before exporting")
	exportCmd.Flags().Bool("save", false, "Write the assigned number and dates back to the document file")
	exportCmd.Flags().Bool("no-details", false, "Leave item details out of the WhatsApp message")
	exportCmd.Flags().String("phone", "", "Recipient phone number for the wa.me link")
	exportCmd.Flags().Bool("json", false, "Print export metadata as JSON")
	exportCmd.Flags().Int("timeout", 60, "Export timeout in seconds")
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("export")

	rawFormat, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	assignNumber, _ := cmd.Flags().GetBool("assign-number")
	save, _ := cmd.Flags().GetBool("save")
	noDetails, _ := cmd.Flags().GetBool("no-details")
	phone, _ := cmd.Flags().GetString("phone")
	asJSON, _ := cmd.Flags().GetBool("json")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	docPath := args[0]

	format, err := services.ParseFormat(rawFormat)
	if err != nil {
		return err
	}

	c, err := loadConfig()
	if err != nil {
		return err
	}

	log.Info().
		Str("file", docPath).
		Str("format", string(format)).
		Str("output", outputPath).
		Bool("assign_number", assignNumber).
		Msg("Starting document export")

	ctx, cancel := createCommandContext(time.Duration(timeoutSecs)*time.Second, log)
	defer cancel()

	doc, err := loadDocument(docPath, log)
	if err != nil {
		return err
	}
	doc.StampDates(time.Now())

	if assignNumber {
		if err := assignDocumentNumber(ctx, c, doc, log); err != nil {
			return err
		}
	}
	if save {
		if err := saveDocument(docPath, doc, log); err != nil {
			return err
		}
	}

	exporter, closeExporter, err := createExporter(c, format, log)
	if err != nil {
		return err
	}
	defer closeExporter()

	result, err := exporter.Export(ctx, doc, services.ExportOptions{
		Format:         format,
		IncludeDetails: !noDetails,
		Phone:          phone,
	})
	if err != nil {
		return handleExportError(err, log)
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "⚠️  %s\n", w.Message)
	}

	written, err := writeExportResult(cmd, result, outputPath, asJSON, log)
	if err != nil {
		return err
	}

	if asJSON {
		output := ExportOutput{Result: result, OutputPath: written, Source: docPath}
		if written == "" {
			output.Text = string(result.Data)
		}
		return outputExportMetadata(cmd, output, log)
	}
	if written != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", written)
	}
	if result.ShareURL != "" && outputPath != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", result.ShareURL)
	}
	return nil
}

// loadDocument validates and decodes a document file
func loadDocument(path string, log zerolog.Logger) (*document.State, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Error().Str("file", path).Msg("Document file not found")
			return nil, fmt.Errorf("document file not found: %s", path)
		}
		if os.IsPermission(err) {
			log.Error().Str("file", path).Msg("Permission denied accessing document file")
			return nil, fmt.Errorf("permission denied accessing document file: %s", path)
		}
		return nil, fmt.Errorf("error accessing document file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("path is not a regular file: %s", path)
	}
	if info.Size() > maxDocumentSizeBytes {
		log.Error().
			Str("file", path).
			Int64("size", info.Size()).
			Int64("max_size", maxDocumentSizeBytes).
			Msg("Document file exceeds maximum size limit")
		return nil, fmt.Errorf("document file too large (%d bytes). Maximum size is %d bytes", info.Size(), maxDocumentSizeBytes)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close document file")
		}
	}()

	doc, err := document.Load(f)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("Invalid document")
		return nil, fmt.Errorf("invalid document %s:\n%w", path, err)
	}
	return doc, nil
}

// saveDocument writes doc back to path as indented JSON.
func saveDocument(path string, doc *document.State, log zerolog.Logger) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		log.Error().Err(err).Str("file", path).Msg("Failed to save document")
		return fmt.Errorf("failed to save document: %w", err)
	}
	log.Info().Str("file", path).Msg("Document saved")
	return nil
}

// assignDocumentNumber issues the next number of the document's sequence.
// Brochures have no number.
func assignDocumentNumber(ctx context.Context, c *config.Config, doc *document.State, log zerolog.Logger) error {
	if doc.Mode == document.ModeBrochure {
		log.Warn().Msg("Brochures are not numbered, ignoring --assign-number")
		return nil
	}

	store, closeStore, err := openCounterStore(ctx, c, log)
	if err != nil {
		return err
	}
	defer closeStore()

	numberer := numbering.NewNumberer(store)

	var number string
	if doc.Mode == document.ModeProposal {
		number, err = doc.AssignProposalNumber(ctx, numberer, c.ProposalPrefix)
	} else {
		number, err = doc.AssignInvoiceNumber(ctx, numberer, c.InvoicePrefix)
	}
	if err != nil {
		if number == "" {
			return fmt.Errorf("failed to assign document number: %w", err)
		}
		log.Warn().Err(err).Str("number", number).Msg("Number assigned but counter was not saved")
	}

	docLog := logger.WithDocument("export", string(doc.Mode), number)
	docLog.Info().Msg("Document number assigned")
	return nil
}

// createExporter builds the document exporter. Chrome is only started for PDF.
func createExporter(c *config.Config, format services.Format, log zerolog.Logger) (services.Exporter, func(), error) {
	var opts []export.Option
	closeFn := func() {}

	if format == services.FormatPDF {
		renderLog := logger.WithComponent("chromedp")
		renderer := export.NewChromedpRenderer(export.ChromedpConfig{
			Timeout:   c.ChromeTimeout,
			RemoteURL: c.ChromeRemoteURL,
			NoSandbox: c.ChromeNoSandbox,
			Logger:    &renderLog,
		})
		opts = append(opts, export.WithPDFRenderer(renderer))
		closeFn = func() {
			if err := renderer.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to close PDF renderer")
			}
		}
	}

	exporter, err := export.NewDocumentExporter(c.Company(), opts...)
	if err != nil {
		closeFn()
		log.Error().Err(err).Msg("Failed to create document exporter")
		return nil, nil, fmt.Errorf("failed to create document exporter: %w", err)
	}
	return exporter, closeFn, nil
}

// createCommandContext creates a context with timeout and signal handling
func createCommandContext(timeout time.Duration, log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received interrupt signal, canceling")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// handleExportError provides user-friendly error messages for export failures
func handleExportError(err error, log zerolog.Logger) error {
	log.Error().Err(err).Msg("Document export failed")

	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, export.ErrRenderTimeout):
		return fmt.Errorf("export timed out. Try increasing --timeout or CHROME_TIMEOUT_SECONDS")
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("export was canceled")
	case errors.Is(err, export.ErrRendererUnavailable):
		return fmt.Errorf("PDF export is not available. Install Chrome/Chromium or set CHROME_REMOTE_URL")
	case errors.Is(err, export.ErrRenderFailed):
		return fmt.Errorf("Chrome could not print the document. Check that Chrome/Chromium is installed "+
			"(set CHROME_NO_SANDBOX=true when running as root or in a container): %w", err)
	case errors.Is(err, share.ErrInvalidPhone):
		return fmt.Errorf("invalid --phone. Use a number like 0812-2512-9109 or +62 812 2512 9109: %w", err)
	case errors.Is(err, export.ErrTemplate):
		return fmt.Errorf("document template failed, the document may contain unexpected values: %w", err)
	case errors.Is(err, export.ErrUnsupportedFormat):
		return fmt.Errorf("unsupported format. Use one of: %s", strings.Join(formatNames(), ", "))
	default:
		return fmt.Errorf("export failed: %w", err)
	}
}

// writeExportResult writes the exported data and returns the path written, or
// "" when the data went to stdout.
func writeExportResult(cmd *cobra.Command, result *services.ExportResult, outputPath string, asJSON bool, log zerolog.Logger) (string, error) {
	text := result.Format == services.FormatWhatsApp || result.Format == services.FormatNarrative

	if outputPath == "" && text {
		if asJSON {
			return "", nil
		}
		out := cmd.OutOrStdout()
		if _, err := out.Write(result.Data); err != nil {
			log.Error().Err(err).Msg("Failed to write to stdout")
			return "", fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Fprintln(out)
		if result.ShareURL != "" {
			fmt.Fprintln(out)
			fmt.Fprintln(out, result.ShareURL)
		}
		return "", nil
	}

	target := resolveOutputPath(outputPath, result.FileName)
	if err := os.WriteFile(target, result.Data, 0644); err != nil {
		log.Error().
			Err(err).
			Str("output_file", target).
			Msg("Failed to write output file")
		return "", fmt.Errorf("failed to write output file: %w", err)
	}

	log.Info().
		Str("output_file", target).
		Int("bytes", result.Bytes).
		Msg("Document written to file")
	return target, nil
}

// resolveOutputPath places fileName inside outputPath when it is a directory.
func resolveOutputPath(outputPath, fileName string) string {
	if outputPath == "" {
		return fileName
	}
	if info, err := os.Stat(outputPath); err == nil && info.IsDir() {
		return filepath.Join(outputPath, fileName)
	}
	return outputPath
}

// outputExportMetadata prints the export metadata as JSON
func outputExportMetadata(cmd *cobra.Command, output ExportOutput, log zerolog.Logger) error {
	jsonData, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal export metadata to JSON")
		return fmt.Errorf("failed to create JSON output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return nil
}

func formatNames() []string {
	names := make([]string, len(services.Formats))
	for i, f := range services.Formats {
		names[i] = string(f)
	}
	return names
}
