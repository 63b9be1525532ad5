package share

import (
	"fmt"
	"strings"

	"invoicekit/internal/document"
	"invoicekit/internal/rupiah"
	"invoicekit/pkg/models"
)

// ProposalNarrative writes the body text of a surat penawaran letter.
// Lines without a description are left out of the item list.
func ProposalNarrative(s *document.State, company models.Company) string {
	p := s.Proposal

	var items []string
	for _, item := range p.WorkItems {
		if item.Description == "" {
			continue
		}
		items = append(items, fmt.Sprintf("   %d. %s (%s): %s",
			len(items)+1, item.Description, item.PeriodLabel(), rupiah.FormatRupiah(item.Amount)))
	}
	itemText := strings.Join(items, "\n")
	if itemText == "" {
		itemText = "   (Belum ada item)"
	}

	var b strings.Builder
	b.WriteString("Dengan hormat,\n\n")
	fmt.Fprintf(&b, "Berdasarkan permintaan dari %s melalui %s, kami dari %s dengan ini mengajukan penawaran untuk pengerjaan %s.\n\n",
		orDefault(s.Client.CompanyName, "[Nama Perusahaan]"),
		orDefault(s.Client.PICName, "[Nama PIC]"),
		company.Name,
		orDefault(p.JenisPekerjaan, "[Jenis Pekerjaan]"))
	b.WriteString("Adapun rincian penawaran kami adalah sebagai berikut:\n\n")
	fmt.Fprintf(&b, "Jenis Pekerjaan: %s\n\n", orDash(p.JenisPekerjaan))
	fmt.Fprintf(&b, "Rincian Item Pekerjaan:\n%s\n\n", itemText)
	fmt.Fprintf(&b, "Total Biaya: %s\n", totalOrDash(p.TotalNominal))
	fmt.Fprintf(&b, "Mekanisme Pembayaran: Pembayaran %s\n", paymentClause(p))
	fmt.Fprintf(&b, "Estimasi Waktu Pengerjaan: %s\n\n", orDash(p.LamaPengerjaan))
	b.WriteString("Demikian surat penawaran ini kami sampaikan. Atas perhatian dan kerjasamanya, kami ucapkan terima kasih.\n\n")
	fmt.Fprintf(&b, "Hormat kami,\n%s", company.Name)

	return b.String()
}

func paymentClause(p document.Proposal) string {
	if !p.IsTermin() {
		return "dilakukan secara penuh (100%)"
	}
	stages := make([]string, len(p.Termin.Items))
	for i, t := range p.Termin.Items {
		stages[i] = fmt.Sprintf("%s: %d%% (%s)", t.Label, t.Percentage, rupiah.FormatRupiah(t.Amount))
	}
	return "dilakukan secara bertahap: " + strings.Join(stages, ", ")
}
