package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicekit/internal/document"
	"invoicekit/pkg/models"
)

func sampleInvoice() *document.State {
	s := document.New()
	s.InvoiceNumber = "INV-202601-02"
	s.InvoiceDate = "5 Januari 2026"
	s.Client = models.ClientInfo{CompanyName: "PT Maju <Jaya>", PICName: "Pak Budi"}
	s.SetWorkItems([]document.WorkItem{
		{ID: "1", Category: "Web Design", Description: "Landing page", Amount: 1500000},
		{ID: "2", Category: "Hosting", Amount: 650000},
	})
	return s
}

func sampleProposal() *document.State {
	s := document.New()
	s.Mode = document.ModeProposal
	s.Proposal.Number = "SPN-202601-01"
	s.Proposal.JenisPekerjaan = "Website Sekolah"
	s.SetPenawaranItems([]document.PenawaranWorkItem{
		{ID: "1", Description: "Website", Amount: 2500000, Period: document.PeriodOnce},
		{ID: "2", Description: "Hosting", Amount: 1150000, Period: document.PeriodYearly},
	})
	return s
}

func TestRenderInvoiceHTML(t *testing.T) {
	engine, err := NewTemplateEngine()
	require.NoError(t, err)

	html, err := engine.Render(NewView(sampleInvoice(), models.DefaultCompany(), fixedNow))
	require.NoError(t, err)

	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "INVOICE PENAGIHAN")
	assert.Contains(t, html, "INV-202601-02")
	assert.Contains(t, html, "PT Maju &lt;Jaya&gt;")
	assert.Contains(t, html, "1.500.000")
	assert.Contains(t, html, "Rp 2.150.000")
	assert.Contains(t, html, "Dua Juta Seratus Lima Puluh Ribu Rupiah")
	assert.Contains(t, html, "0249532534")
	assert.NotContains(t, html, "Detail Termin DP")
	assert.NotContains(t, html, `class="stamp`)
}

func TestRenderTerminDPInvoiceHTML(t *testing.T) {
	s := sampleInvoice()
	s.InvoiceType = document.InvoiceTerminDP
	s.SetTerminDP(document.TerminDPInfo{TotalProjectAmount: 10000000, DPAmount: 2500000, TerminNumber: 1})

	engine, err := NewTemplateEngine()
	require.NoError(t, err)
	html, err := engine.Render(NewView(s, models.DefaultCompany(), fixedNow))
	require.NoError(t, err)

	assert.Contains(t, html, "INVOICE TERMIN DP")
	assert.Contains(t, html, "Detail Termin DP")
	assert.Contains(t, html, "Nominal DP (25.0%)")
	assert.Contains(t, html, "Rp 7.500.000")
	assert.Contains(t, html, `class="stamp termin_dp"`)
	assert.Contains(t, html, "Dua Juta Lima Ratus Ribu Rupiah")
}

func TestRenderProposalHTML(t *testing.T) {
	s := sampleProposal()
	require.NoError(t, s.SetPaymentMechanism(document.PaymentTermin))
	s.SetTerminPercentage("1", 60)

	engine, err := NewTemplateEngine()
	require.NoError(t, err)
	html, err := engine.Render(NewView(s, models.DefaultCompany(), fixedNow))
	require.NoError(t, err)

	assert.Contains(t, html, "SURAT PENAWARAN")
	assert.Contains(t, html, "SPN-202601-01")
	assert.Contains(t, html, "Tahunan")
	assert.Contains(t, html, "Rp 3.650.000")
	assert.Contains(t, html, "Termin 1 (DP)")
	assert.Contains(t, html, "60%")
	assert.Contains(t, html, "Total persentase 110% (harus 100%)")
	assert.Contains(t, html, "Dengan hormat,")
}

func TestRenderBrochureHTML(t *testing.T) {
	s := document.New()
	s.Mode = document.ModeBrochure
	s.Brochure.SelectedPackage = "reguler"

	engine, err := NewTemplateEngine()
	require.NoError(t, err)
	html, err := engine.Render(NewView(s, models.DefaultCompany(), fixedNow))
	require.NoError(t, err)

	assert.Contains(t, html, "PAKET WEBSITE SEKOLAH")
	assert.Contains(t, html, "Reguler")
	assert.Contains(t, html, "Bisnis")
	assert.Contains(t, html, "Rp 2.500.000")
	assert.Contains(t, html, "FORM PPDB DATABASE SEKOLAH")
	assert.Contains(t, html, "info@semestatekno.com")
	assert.Contains(t, html, "Paling Populer")
}

func TestTemplateFuncOverride(t *testing.T) {
	engine, err := NewTemplateEngine(WithFuncs(map[string]interface{}{
		"terbilang": func(models.Amount) string { return "WORDS" },
	}))
	require.NoError(t, err)

	html, err := engine.Render(NewView(sampleInvoice(), models.DefaultCompany(), fixedNow))
	require.NoError(t, err)
	assert.Contains(t, html, "WORDS")
}
