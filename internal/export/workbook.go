package export

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"invoicekit/internal/document"
	"invoicekit/internal/logger"
	"invoicekit/internal/rupiah"
)

// Sheet names used in exported workbooks.
const (
	SheetItems    = "Rincian"
	SheetTermin   = "Termin"
	SheetPackages = "Paket"
)

// WorkbookExporter writes a document as an .xlsx spreadsheet.
type WorkbookExporter struct {
	log zerolog.Logger
}

// NewWorkbookExporter creates a WorkbookExporter.
func NewWorkbookExporter() *WorkbookExporter {
	return &WorkbookExporter{log: logger.WithComponent("xlsx")}
}

// Export builds the workbook. Invoices get one item sheet; proposals add a
// termin sheet when paid in stages; brochures list the package catalogue.
func (w *WorkbookExporter) Export(s *document.State) ([]byte, error) {
	const op = "ExportXLSX"

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			w.log.Warn().Err(err).Msg("Failed to close workbook")
		}
	}()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#17A2B8"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, NewExportError(op, err, "header style")
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(`"Rp "#,##0`)})
	if err != nil {
		return nil, NewExportError(op, err, "money style")
	}

	b := &sheetBuilder{f: f, header: headerStyle, money: moneyStyle}

	switch s.Mode {
	case document.ModeProposal:
		b.proposalItems(s)
		if s.Proposal.IsTermin() {
			b.terminSchedule(s)
		}
	case document.ModeBrochure:
		b.packages(s)
	default:
		b.invoiceItems(s)
	}
	if b.err != nil {
		return nil, NewExportError(op, b.err, "")
	}

	// drop the default sheet created by NewFile
	if f.GetSheetName(0) == "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, NewExportError(op, err, "delete default sheet")
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, NewExportError(op, err, "write workbook")
	}

	w.log.Debug().
		Str("mode", string(s.Mode)).
		Int("bytes", buf.Len()).
		Msg("Workbook written")
	return buf.Bytes(), nil
}

// sheetBuilder keeps the first error so the sheet code reads top to bottom.
type sheetBuilder struct {
	f      *excelize.File
	header int
	money  int
	err    error
}

func (b *sheetBuilder) sheet(name string, headers ...string) {
	if b.err != nil {
		return
	}
	if _, b.err = b.f.NewSheet(name); b.err != nil {
		return
	}
	b.row(name, 1, toAny(headers)...)
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	b.check(b.f.SetCellStyle(name, "A1", last, b.header))
	for i := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		b.check(b.f.SetColWidth(name, col, col, 20))
	}
}

func (b *sheetBuilder) row(sheet string, row int, values ...interface{}) {
	if b.err != nil {
		return
	}
	cell, _ := excelize.CoordinatesToCellName(1, row)
	b.check(b.f.SetSheetRow(sheet, cell, &values))
}

func (b *sheetBuilder) moneyCell(sheet string, col, row int) {
	if b.err != nil {
		return
	}
	cell, _ := excelize.CoordinatesToCellName(col, row)
	b.check(b.f.SetCellStyle(sheet, cell, cell, b.money))
}

func (b *sheetBuilder) check(err error) {
	if b.err == nil && err != nil {
		b.err = err
	}
}

func (b *sheetBuilder) invoiceItems(s *document.State) {
	b.sheet(SheetItems, "No", "Jenis", "Item Pekerjaan", "Nominal", "Keterangan")
	row := 2
	for i, item := range s.WorkItems {
		b.row(SheetItems, row, i+1, item.Category, item.Description, int64(item.Amount), item.Notes)
		b.moneyCell(SheetItems, 4, row)
		row++
	}
	b.row(SheetItems, row, "", "", "TOTAL", int64(s.BillableAmount()))
	b.moneyCell(SheetItems, 4, row)
	b.row(SheetItems, row+1, "", "", "Terbilang", rupiah.TerbilangRupiah(s.BillableAmount()))

	if s.InvoiceType == document.InvoiceTerminDP {
		dp := s.TerminDP
		row += 3
		b.row(SheetItems, row, "", "", "Total Nilai Pekerjaan", int64(dp.TotalProjectAmount))
		b.moneyCell(SheetItems, 4, row)
		b.row(SheetItems, row+1, "", "", fmt.Sprintf("DP (%s%%)", s.DPPercentageText()), int64(dp.DPAmount))
		b.moneyCell(SheetItems, 4, row+1)
		b.row(SheetItems, row+2, "", "", "Sisa", int64(s.RemainingAmount()))
		b.moneyCell(SheetItems, 4, row+2)
	}
}

func (b *sheetBuilder) proposalItems(s *document.State) {
	p := s.Proposal
	b.sheet(SheetItems, "No", "Item Pekerjaan", "Periode", "Nominal")
	row := 2
	for i, item := range p.WorkItems {
		b.row(SheetItems, row, i+1, item.Description, item.PeriodLabel(), int64(item.Amount))
		b.moneyCell(SheetItems, 4, row)
		row++
	}
	b.row(SheetItems, row, "", "", "TOTAL", int64(p.TotalNominal))
	b.moneyCell(SheetItems, 4, row)
	b.row(SheetItems, row+1, "", "", "Terbilang", rupiah.TerbilangRupiah(p.TotalNominal))
}

func (b *sheetBuilder) terminSchedule(s *document.State) {
	plan := s.Proposal.Termin
	b.sheet(SheetTermin, "No", "Termin", "Persentase", "Nominal")
	row := 2
	for i, item := range plan.Items {
		b.row(SheetTermin, row, i+1, item.Label, item.Percentage, int64(item.Amount))
		b.moneyCell(SheetTermin, 4, row)
		row++
	}

	v := s.TerminValidation()
	b.row(SheetTermin, row, "", "TOTAL", v.TotalPercentage, int64(v.AllocatedAmount))
	b.moneyCell(SheetTermin, 4, row)
	for _, warning := range v.Warnings {
		row++
		b.row(SheetTermin, row, "", warning.Message)
	}
}

func (b *sheetBuilder) packages(s *document.State) {
	b.sheet(SheetPackages, "Paket", "Harga", "Hosting per Tahun", "Fitur", "Dipilih")
	selected := s.Brochure.Selected().ID
	for i, pkg := range document.Packages() {
		row := i + 2
		features := ""
		for j, f := range pkg.Features {
			if j > 0 {
				features += "\n"
			}
			features += f.Text
		}
		mark := ""
		if pkg.ID == selected {
			mark = "✓"
		}
		b.row(SheetPackages, row, pkg.Name, int64(pkg.Price), int64(pkg.YearlyHosting), features, mark)
		b.moneyCell(SheetPackages, 2, row)
		b.moneyCell(SheetPackages, 3, row)
	}
}

func toAny(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func strPtr(s string) *string {
	return &s
}
