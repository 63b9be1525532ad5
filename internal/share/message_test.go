package share

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicekit/internal/document"
	"invoicekit/pkg/models"
)

func invoiceState() *document.State {
	s := document.New()
	s.InvoiceNumber = "INV-202601-02"
	s.InvoiceDate = "5 Januari 2026"
	s.Client = models.ClientInfo{CompanyName: "PT Maju Jaya", PICName: "Pak Budi", Address: "Jl. Sudirman 10"}
	s.SetWorkItems([]document.WorkItem{
		{ID: "1", Category: "Web Design", Description: "Landing page", Amount: 1500000},
		{ID: "2", Category: "Hosting", Amount: 650000},
	})
	return s
}

func TestInvoiceMessageWithDetails(t *testing.T) {
	msg := InvoiceMessage(invoiceState(), models.DefaultCompany(), true)

	assert.True(t, strings.HasPrefix(msg, rule))
	assert.Contains(t, msg, "📋 *PENAGIHAN*")
	assert.Contains(t, msg, "📄 *No. Invoice:* INV-202601-02")
	assert.Contains(t, msg, "👤 PIC: Pak Budi")
	assert.Contains(t, msg, "   1. Web Design - Landing page: Rp 1.500.000")
	assert.Contains(t, msg, "   2. Hosting: Rp 650.000")
	assert.Contains(t, msg, "💰 *TOTAL: Rp 2.150.000*")
	assert.Contains(t, msg, "│  No. Rek: *0249532534*")
	assert.True(t, strings.HasSuffix(msg, "📞 +62 812-2512-9109"))
	assert.NotContains(t, msg, "Detail Termin DP")
}

func TestInvoiceMessageWithoutDetails(t *testing.T) {
	msg := InvoiceMessage(invoiceState(), models.DefaultCompany(), false)
	assert.NotContains(t, msg, "RINCIAN PEKERJAAN")
	assert.NotContains(t, msg, "Landing page")
	assert.Contains(t, msg, "💰 *TOTAL: Rp 2.150.000*")
}

func TestInvoiceMessageTerminDP(t *testing.T) {
	s := invoiceState()
	s.InvoiceType = document.InvoiceTerminDP
	s.SetTerminDP(document.TerminDPInfo{TotalProjectAmount: 10000000, DPAmount: 3000000, TerminNumber: 1})

	msg := InvoiceMessage(s, models.DefaultCompany(), true)
	assert.Contains(t, msg, "📋 *TERMIN DP*")
	assert.Contains(t, msg, "   • Total Nilai Pekerjaan: Rp 10.000.000")
	assert.Contains(t, msg, "   • Nominal DP (30.0%): Rp 3.000.000")
	assert.Contains(t, msg, "   • Termin Ke: #1")
	assert.Contains(t, msg, "   • Sisa: Rp 7.000.000")
	assert.Contains(t, msg, "💰 *TOTAL: Rp 3.000.000*")
}

func TestInvoiceMessageEmptyFields(t *testing.T) {
	msg := InvoiceMessage(document.New(), models.DefaultCompany(), true)
	assert.Contains(t, msg, "📄 *No. Invoice:* -")
	assert.Contains(t, msg, "🏢 -")
	assert.Contains(t, msg, "💰 *TOTAL: Rp 0*")
}

func TestInvoiceMessageUsesConfiguredBank(t *testing.T) {
	company := models.DefaultCompany()
	company.BankName = "BCA"
	company.BankAccount = "1234567890"
	company.AccountHolder = "PT SEMESTA"

	msg := InvoiceMessage(invoiceState(), company, false)
	assert.Contains(t, msg, "│  Bank: *BCA*")
	assert.Contains(t, msg, "│  a.n: *PT SEMESTA*")
}

func TestProposalMessage(t *testing.T) {
	s := document.New()
	s.Mode = document.ModeProposal
	s.Proposal.Number = "SPN-202601-01"
	s.Proposal.JenisPekerjaan = "Website Sekolah"
	s.Proposal.LamaPengerjaan = "30 hari"
	s.SetPenawaranItems([]document.PenawaranWorkItem{{ID: "1", Description: "Website", Amount: 2500000, Period: document.PeriodOnce}})

	msg := Message(s, models.DefaultCompany(), true)
	assert.Contains(t, msg, "📋 *SURAT PENAWARAN*")
	assert.Contains(t, msg, "📄 *No. Penawaran:* SPN-202601-01")
	assert.Contains(t, msg, "💰 *Total Nominal:* Rp 2.500.000")
	assert.Contains(t, msg, "💳 *Mekanisme:* Pembayaran Lunas (100%)")
	assert.Contains(t, msg, "⏱️ *Lama Pengerjaan:* 30 hari")

	require.NoError(t, s.SetPaymentMechanism(document.PaymentTermin))
	msg = ProposalMessage(s, models.DefaultCompany())
	assert.Contains(t, msg, "💳 *Mekanisme:* Pembayaran Termin (Bertahap)")
}

func TestProposalMessageWithoutTotal(t *testing.T) {
	s := document.New()
	msg := ProposalMessage(s, models.DefaultCompany())
	assert.Contains(t, msg, "💰 *Total Nominal:* Rp -")
}

func TestBrochureMessage(t *testing.T) {
	s := document.New()
	s.Mode = document.ModeBrochure
	s.Brochure.SelectedPackage = "bisnis"
	s.Client.CompanyName = "SMA Harapan"

	msg := Message(s, models.DefaultCompany(), true)
	assert.Contains(t, msg, "🌐 *PAKET WEBSITE BISNIS*")
	assert.Contains(t, msg, "🏢 SMA Harapan")
	assert.Contains(t, msg, "💰 *Harga:* Rp 3.000.000")
	assert.Contains(t, msg, "   ✨ *FORM PPDB DATABASE SEKOLAH*")
	assert.Contains(t, msg, "   ✓ Support Maintenance 24/7")
	assert.Contains(t, msg, "📞 0812-3456-7890")
}
