package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"invoicekit/internal/document"
	"invoicekit/internal/logger"
	"invoicekit/internal/rupiah"
	"invoicekit/pkg/models"
	"invoicekit/pkg/services"
)

var exportBatchCmd = &cobra.Command{
	Use:   "export-batch [folder-path]",
	Short: "Export every document file in a folder",
	Long: `Export all *.json document files in a folder (including subfolders) in
parallel and write the results next to them or into --out-dir.

Documents that fail to load or export are reported and skipped; surat
penawaran whose termin plan does not sum to 100% are exported with a
warning.

Optional environment variables:
  BATCH_WORKERS - Number of parallel workers (default: 4)`,
	Example: `  # PDFs for every document in ./documents
  invoicekit export-batch ./documents

  # Spreadsheets into a separate folder with 8 workers
  invoicekit export-batch ./documents --format xlsx --out-dir ./out --workers 8`,
	Args: cobra.ExactArgs(1),
	RunE: runExportBatch,
}

// BatchResult represents the result of exporting a single document
type BatchResult struct {
	Filename   string
	OutputPath string
	Result     *services.ExportResult
	Total      models.Amount
	Error      error
	Status     string // "success", "warning", "error"
	Index      int    // Original order index
}

// WorkerJob represents a document export job
type WorkerJob struct {
	FilePath string
	Index    int
}

func init() {
	rootCmd.AddCommand(exportBatchCmd)

	exportBatchCmd.Flags().StringP("format", "f", string(services.FormatPDF), "Output format: pdf, html, xlsx, whatsapp, narasi")
	exportBatchCmd.Flags().String("out-dir", "", "Output directory (default: next to each document)")
	exportBatchCmd.Flags().Int("workers", 0, "Number of parallel workers (default: BATCH_WORKERS)")
	exportBatchCmd.Flags().Bool("verbose", false, "Show detailed processing information")
	exportBatchCmd.Flags().Int("timeout", 1800, "Batch timeout in seconds")
}

func runExportBatch(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("export-batch")

	folderPath := args[0]
	rawFormat, _ := cmd.Flags().GetString("format")
	outDir, _ := cmd.Flags().GetString("out-dir")
	workers, _ := cmd.Flags().GetInt("workers")
	verbose, _ := cmd.Flags().GetBool("verbose")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	format, err := services.ParseFormat(rawFormat)
	if err != nil {
		return err
	}

	folderInfo, err := os.Stat(folderPath)
	if err != nil {
		return fmt.Errorf("folder not found: %s", folderPath)
	}
	if !folderInfo.IsDir() {
		return fmt.Errorf("path is not a directory: %s", folderPath)
	}
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	c, err := loadConfig()
	if err != nil {
		return err
	}
	if workers <= 0 {
		workers = c.BatchWorkers
	}

	log.Info().
		Str("folder", folderPath).
		Str("format", string(format)).
		Str("out_dir", outDir).
		Int("workers", workers).
		Msg("Starting batch export")

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, strings.Repeat("=", 80))
	fmt.Fprintln(out, "                           BATCH EXPORT")
	fmt.Fprintln(out, strings.Repeat("=", 80))
	fmt.Fprintf(out, "Folder: %s\n", folderPath)
	fmt.Fprintf(out, "Format: %s\n", format)
	fmt.Fprintln(out)

	ctx, cancel := createCommandContext(time.Duration(timeoutSecs)*time.Second, log)
	defer cancel()

	docFiles, err := findDocumentFiles(folderPath)
	if err != nil {
		return fmt.Errorf("failed to find document files: %w", err)
	}
	if len(docFiles) == 0 {
		fmt.Fprintln(out, "No document files (*.json) found in folder.")
		return nil
	}

	exporter, closeExporter, err := createExporter(c, format, log)
	if err != nil {
		return err
	}
	defer closeExporter()

	if workers > len(docFiles) {
		workers = len(docFiles)
	}
	fmt.Fprintf(out, "Exporting %d documents with %d parallel workers...\n\n", len(docFiles), workers)

	results := exportDocumentsInParallel(ctx, cmd, docFiles, format, outDir, exporter, workers, log, verbose)

	fmt.Fprintln(out)

	successCount, warningCount, errorCount := 0, 0, 0
	for _, result := range results {
		switch result.Status {
		case "success":
			successCount++
		case "warning":
			warningCount++
		case "error":
			errorCount++
		}
	}

	fmt.Fprintln(out, strings.Repeat("=", 50))
	fmt.Fprintln(out, "                 RESULT")
	fmt.Fprintln(out, strings.Repeat("=", 50))
	fmt.Fprintf(out, "Succeeded: %d\n", successCount)
	if warningCount > 0 {
		fmt.Fprintf(out, "With warnings: %d\n", warningCount)
	}
	if errorCount > 0 {
		fmt.Fprintf(out, "Failed: %d\n", errorCount)
	}
	fmt.Fprintln(out, strings.Repeat("=", 80))

	log.Info().
		Int("total", len(docFiles)).
		Int("success", successCount).
		Int("warnings", warningCount).
		Int("errors", errorCount).
		Msg("Batch export completed")

	if errorCount > 0 {
		return fmt.Errorf("%d of %d documents failed to export", errorCount, len(docFiles))
	}
	return nil
}

// findDocumentFiles finds all JSON document files in the specified folder
func findDocumentFiles(folderPath string) ([]string, error) {
	var files []string

	err := filepath.Walk(folderPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(strings.ToLower(info.Name()), ".json") {
			files = append(files, path)
		}
		return nil
	})

	sort.Strings(files)
	return files, err
}

// exportSingleDocument loads and exports one document file
func exportSingleDocument(ctx context.Context, docPath string, format services.Format, outDir string, exporter services.Exporter, paths *outputPaths, log zerolog.Logger, verbose bool) BatchResult {
	result := BatchResult{
		Status: "error",
	}

	doc, err := loadDocument(docPath, log)
	if err != nil {
		result.Error = err
		return result
	}
	doc.StampDates(time.Now())
	result.Total = displayTotal(doc)

	exported, err := exporter.Export(ctx, doc, services.ExportOptions{
		Format:         format,
		IncludeDetails: true,
	})
	if err != nil {
		result.Error = handleExportError(err, log)
		return result
	}
	result.Result = exported

	dir := outDir
	if dir == "" {
		dir = filepath.Dir(docPath)
	}
	target := filepath.Join(dir, exported.FileName)
	result.OutputPath = paths.claim(target)
	if err := os.WriteFile(result.OutputPath, exported.Data, 0644); err != nil {
		result.Error = fmt.Errorf("failed to write output file: %w", err)
		return result
	}

	result.Status = "success"
	if len(exported.Warnings) > 0 {
		result.Status = "warning"
	}
	if result.OutputPath != target {
		log.Warn().
			Str("file", docPath).
			Str("wanted", target).
			Str("output", result.OutputPath).
			Msg("Output name already used in this batch, wrote to a numbered file")
		result.Status = "warning"
	}

	if verbose {
		log.Info().
			Str("file", docPath).
			Str("number", exported.Number).
			Str("output", result.OutputPath).
			Int("bytes", exported.Bytes).
			Msg("Document exported successfully")
	}

	return result
}

// displayTotal is the amount shown next to a document in the progress output.
func displayTotal(doc *document.State) models.Amount {
	switch doc.Mode {
	case document.ModeProposal:
		return doc.Proposal.TotalNominal
	case document.ModeBrochure:
		return doc.Brochure.Selected().Price
	}
	return doc.BillableAmount()
}

// exportDocumentsInParallel exports documents using a worker pool pattern
func exportDocumentsInParallel(ctx context.Context, cmd *cobra.Command, docFiles []string, format services.Format, outDir string, exporter services.Exporter, numWorkers int, log zerolog.Logger, verbose bool) []BatchResult {
	jobs := make(chan WorkerJob, len(docFiles))
	results := make([]BatchResult, len(docFiles))
	out := cmd.OutOrStdout()
	paths := newOutputPaths()

	var processedCount int
	var mu sync.Mutex

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			for job := range jobs {
				log.Debug().
					Int("worker", workerID).
					Str("file", job.FilePath).
					Int("index", job.Index+1).
					Msg("Worker exporting document")

				result := exportSingleDocument(ctx, job.FilePath, format, outDir, exporter, paths, log, verbose)
				result.Index = job.Index
				result.Filename = filepath.Base(job.FilePath)

				results[job.Index] = result

				mu.Lock()
				processedCount++
				fmt.Fprintf(out, "[%d/%d] %s - %s", processedCount, len(docFiles), result.Filename, getStatusEmoji(result.Status))
				if result.Error != nil {
					fmt.Fprintf(out, " (%s)", result.Error.Error())
				} else {
					fmt.Fprintf(out, " (%s)", rupiah.FormatRupiah(result.Total))
				}
				fmt.Fprintln(out)
				mu.Unlock()
			}
		}(w)
	}

	for i, docFile := range docFiles {
		jobs <- WorkerJob{
			FilePath: docFile,
			Index:    i,
		}
	}
	close(jobs)

	wg.Wait()

	return results
}

// outputPaths hands out output paths that are unique within one batch.
// Documents without a number share names like "Invoice_PT_Maju.pdf".
type outputPaths struct {
	mu   sync.Mutex
	used map[string]bool
}

func newOutputPaths() *outputPaths {
	return &outputPaths{used: make(map[string]bool)}
}

// claim returns path, or "name-2.ext", "name-3.ext", ... when path was
// already claimed.
func (p *outputPaths) claim(path string) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	candidate := path
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for n := 2; p.used[candidate]; n++ {
		candidate = fmt.Sprintf("%s-%d%s", base, n, ext)
	}
	p.used[candidate] = true
	return candidate
}

// getStatusEmoji returns an emoji for the processing status
func getStatusEmoji(status string) string {
	switch status {
	case "success":
		return "✅"
	case "warning":
		return "⚠️"
	case "error":
		return "❌"
	default:
		return "❓"
	}
}
