package document

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicekit/pkg/models"
)

const proposalJSON = `{
  "documentMode": "surat_penawaran",
  "clientInfo": {"companyName": "SMK Nusantara", "picName": "Bu Rina", "address": "Jl. Merdeka 1"},
  "suratPenawaranInfo": {
    "nomorPenawaran": "SPN-202601-03",
    "jenisPekerjaan": "Pembuatan Website Sekolah",
    "workItems": [
      {"description": "Website", "amount": 2500000},
      {"id": "h", "description": "Hosting", "amount": 1150000, "period": "tahunan"}
    ],
    "totalNominal": 1,
    "mekanismePembayaran": "termin",
    "terminCount": 3
  }
}`

func TestLoadProposal(t *testing.T) {
	s, err := Load(strings.NewReader(proposalJSON))
	require.NoError(t, err)

	assert.Equal(t, ModeProposal, s.Mode)
	assert.Equal(t, "SPN-202601-03", s.Number())
	assert.Equal(t, "SMK Nusantara", s.Client.CompanyName)

	p := s.Proposal
	assert.Equal(t, models.Amount(3650000), p.TotalNominal, "stored total is recomputed")
	require.Len(t, p.WorkItems, 2)
	assert.NotEmpty(t, p.WorkItems[0].ID)
	assert.Equal(t, PeriodOnce, p.WorkItems[0].Period)
	assert.Equal(t, "h", p.WorkItems[1].ID)

	require.Len(t, p.Termin.Items, 3)
	assert.Equal(t, models.Amount(1204500), p.Termin.Items[0].Amount)
	assert.Equal(t, models.Amount(1241000), p.Termin.Items[2].Amount)

	assert.Equal(t, InvoicePenagihan, s.InvoiceType)
	assert.Equal(t, DefaultVendor(), s.Brochure.Vendor)
}

func TestLoadKeepsCustomPlan(t *testing.T) {
	doc := `{
	  "suratPenawaranInfo": {
	    "workItems": [{"id": "1", "amount": 1000000}],
	    "mekanismePembayaran": "termin",
	    "terminCount": 2,
	    "termin": {"items": [
	      {"id": "1", "label": "Uang Muka", "percentage": 30},
	      {"id": "2", "label": "Pelunasan", "percentage": 70}
	    ]}
	  }
	}`
	s, err := Load(strings.NewReader(doc))
	require.NoError(t, err)

	items := s.Proposal.Termin.Items
	assert.Equal(t, "Uang Muka", items[0].Label)
	assert.Equal(t, models.Amount(300000), items[0].Amount)
	assert.Equal(t, models.Amount(700000), items[1].Amount)
}

func TestLoadInvoiceTotals(t *testing.T) {
	doc := `{"invoiceType": "termin_dp",
	  "workItems": [{"category": "Web", "amount": 4000000}, {"category": "SEO", "amount": 1000000}],
	  "terminDPInfo": {"totalProjectAmount": 5000000, "dpAmount": 1500000}}`
	s, err := Load(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, models.Amount(5000000), s.TotalAmount)
	assert.Equal(t, 1, s.TerminDP.TerminNumber)
	assert.Equal(t, models.Amount(1500000), s.BillableAmount())
	assert.Equal(t, "30.0", s.DPPercentageText())
}

func TestLoadRejectsBadJSON(t *testing.T) {
	_, err := Load(strings.NewReader(`{"workItems": [`))
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestLoadReportsEveryInvalidField(t *testing.T) {
	doc := `{"documentMode": "kwitansi", "workItems": [{"id": "1", "amount": -5}],
	  "suratPenawaranInfo": {"mekanismePembayaran": "cicilan"}}`
	_, err := Load(strings.NewReader(doc))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDocument)

	var fields []string
	var joined interface{ Unwrap() []error }
	require.True(t, errors.As(err, &joined))
	for _, e := range joined.Unwrap() {
		var ve *ValidationError
		require.True(t, errors.As(e, &ve))
		fields = append(fields, ve.Field)
	}
	assert.ElementsMatch(t, []string{"Mode", "WorkItems[0].Amount", "Proposal.Mechanism"}, fields)
}

func TestLoadRejectsSingleStagePlan(t *testing.T) {
	_, err := Load(strings.NewReader(`{"suratPenawaranInfo": {"terminCount": 1}}`))
	assert.ErrorIs(t, err, ErrInvalidDocument)
}
