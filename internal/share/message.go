// Package share builds the plain-text forms of a document: WhatsApp
// messages, the proposal narrative and wa.me share links.
package share

import (
	"fmt"
	"strings"

	"invoicekit/internal/document"
	"invoicekit/internal/rupiah"
	"invoicekit/pkg/models"
)

const rule = "*━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━*"

// InvoiceMessage renders an invoice as a WhatsApp message. With details the
// work items are listed one per line.
func InvoiceMessage(s *document.State, company models.Company, details bool) string {
	var b strings.Builder

	header(&b, "📋 *"+strings.ToUpper(s.InvoiceType.Label())+"*")
	fmt.Fprintf(&b, "📄 *No. Invoice:* %s\n", orDash(s.InvoiceNumber))
	fmt.Fprintf(&b, "📅 *Tanggal:* %s\n\n", orDash(s.InvoiceDate))
	recipient(&b, s.Client)

	if s.InvoiceType == document.InvoiceTerminDP && s.TerminDP.TotalProjectAmount > 0 {
		dp := s.TerminDP
		b.WriteString("\n📊 *Detail Termin DP:*\n")
		fmt.Fprintf(&b, "   • Total Nilai Pekerjaan: %s\n", rupiah.FormatRupiah(dp.TotalProjectAmount))
		fmt.Fprintf(&b, "   • Nominal DP (%s%%): %s\n", s.DPPercentageText(), rupiah.FormatRupiah(dp.DPAmount))
		fmt.Fprintf(&b, "   • Termin Ke: #%d\n", dp.TerminNumber)
		fmt.Fprintf(&b, "   • Sisa: %s\n", rupiah.FormatRupiah(s.RemainingAmount()))
	}

	if details && len(s.WorkItems) > 0 {
		b.WriteString("\n")
		header(&b, "📝 *RINCIAN PEKERJAAN*")
		for i, item := range s.WorkItems {
			line := item.Category
			if item.Description != "" {
				line += " - " + item.Description
			}
			fmt.Fprintf(&b, "   %d. %s: %s\n", i+1, line, rupiah.FormatRupiah(item.Amount))
		}
	}

	b.WriteString("\n" + rule + "\n")
	fmt.Fprintf(&b, "💰 *TOTAL: %s*\n", rupiah.FormatRupiah(s.BillableAmount()))
	b.WriteString(rule + "\n\n")

	b.WriteString("🏦 *Transfer Pembayaran:*\n")
	b.WriteString("┌─────────────────────────\n")
	fmt.Fprintf(&b, "│  Bank: *%s*\n", company.BankName)
	fmt.Fprintf(&b, "│  No. Rek: *%s*\n", company.BankAccount)
	fmt.Fprintf(&b, "│  a.n: *%s*\n", company.AccountHolder)
	b.WriteString("└─────────────────────────\n\n")

	b.WriteString("Terima kasih atas kepercayaannya 🙏\n\n")
	signature(&b, company)

	return strings.TrimSpace(b.String())
}

// ProposalMessage renders a surat penawaran summary as a WhatsApp message.
func ProposalMessage(s *document.State, company models.Company) string {
	p := s.Proposal
	var b strings.Builder

	header(&b, "📋 *SURAT PENAWARAN*")
	fmt.Fprintf(&b, "📄 *No. Penawaran:* %s\n", orDash(p.Number))
	fmt.Fprintf(&b, "📅 *Tanggal:* %s\n\n", orDash(p.Date))
	recipient(&b, s.Client)

	b.WriteString("\n")
	header(&b, "📝 *DETAIL PENAWARAN*")
	fmt.Fprintf(&b, "💼 *Jenis Pekerjaan:* %s\n", orDash(p.JenisPekerjaan))
	fmt.Fprintf(&b, "💰 *Total Nominal:* %s\n", totalOrDash(p.TotalNominal))
	fmt.Fprintf(&b, "💳 *Mekanisme:* %s\n", mechanismText(p.Mechanism))
	fmt.Fprintf(&b, "⏱️ *Lama Pengerjaan:* %s\n\n", orDash(p.LamaPengerjaan))
	b.WriteString(rule + "\n\n")

	b.WriteString("Demikian penawaran ini kami sampaikan.\n")
	b.WriteString("Atas perhatian dan kerjasamanya, kami ucapkan terima kasih 🙏\n\n")
	signature(&b, company)

	return strings.TrimSpace(b.String())
}

// Message picks the message for the document's mode.
func Message(s *document.State, company models.Company, details bool) string {
	switch s.Mode {
	case document.ModeProposal:
		return ProposalMessage(s, company)
	case document.ModeBrochure:
		return BrochureMessage(s, company)
	}
	return InvoiceMessage(s, company, details)
}

// BrochureMessage lists the selected website package.
func BrochureMessage(s *document.State, company models.Company) string {
	pkg := s.Brochure.Selected()
	vendor := s.Brochure.Vendor
	var b strings.Builder

	header(&b, "🌐 *PAKET WEBSITE "+strings.ToUpper(pkg.Name)+"*")
	if s.Client.CompanyName != "" {
		fmt.Fprintf(&b, "🏢 %s\n\n", s.Client.CompanyName)
	}
	fmt.Fprintf(&b, "💰 *Harga:* %s\n", rupiah.FormatRupiah(pkg.Price))
	for _, f := range pkg.Features {
		if f.Highlighted {
			fmt.Fprintf(&b, "   ✨ *%s*\n", f.Text)
			continue
		}
		fmt.Fprintf(&b, "   ✓ %s\n", f.Text)
	}
	b.WriteString("\n" + rule + "\n\n")

	fmt.Fprintf(&b, "_%s_\n", orDefault(vendor.Name, company.Name))
	fmt.Fprintf(&b, "📞 %s\n", orDefault(vendor.WhatsApp, company.Phone))
	fmt.Fprintf(&b, "✉️ %s\n", orDefault(vendor.Email, company.Email))
	fmt.Fprintf(&b, "🌐 %s\n", orDefault(vendor.Website, company.Website))

	return strings.TrimSpace(b.String())
}

func header(b *strings.Builder, title string) {
	b.WriteString(rule + "\n")
	fmt.Fprintf(b, "       %s\n", title)
	b.WriteString(rule + "\n\n")
}

func recipient(b *strings.Builder, c models.ClientInfo) {
	b.WriteString(rule + "\n")
	b.WriteString("             🏢 *KEPADA*\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(b, "🏢 %s\n", orDash(c.CompanyName))
	fmt.Fprintf(b, "👤 PIC: %s\n", orDash(c.PICName))
	fmt.Fprintf(b, "📍 %s\n", orDash(c.Address))
}

func signature(b *strings.Builder, company models.Company) {
	fmt.Fprintf(b, "_%s_\n", company.Name)
	if company.Tagline != "" {
		fmt.Fprintf(b, "_%s_\n", company.Tagline)
	}
	if company.Phone != "" {
		fmt.Fprintf(b, "📞 %s\n", company.Phone)
	}
}

func mechanismText(m document.PaymentMechanism) string {
	if m == document.PaymentLunas {
		return "Pembayaran Lunas (100%)"
	}
	return "Pembayaran Termin (Bertahap)"
}

func totalOrDash(a models.Amount) string {
	if a > 0 {
		return rupiah.FormatRupiah(a)
	}
	return "Rp -"
}

func orDash(s string) string {
	return orDefault(s, "-")
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
