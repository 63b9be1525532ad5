package document

import (
	"strings"

	"invoicekit/internal/termin"
	"invoicekit/pkg/models"
)

// Mode selects which document the state renders to.
type Mode string

const (
	ModeInvoice  Mode = "invoice"
	ModeProposal Mode = "surat_penawaran"
	ModeBrochure Mode = "brosur_digital"
)

// InvoiceType distinguishes a regular bill from down-payment and settlement bills.
type InvoiceType string

const (
	InvoicePenagihan InvoiceType = "penagihan"
	InvoiceTerminDP  InvoiceType = "termin_dp"
	InvoicePelunasan InvoiceType = "pelunasan"
)

// Label is the short name used in messages, e.g. "Termin DP".
func (t InvoiceType) Label() string {
	switch t {
	case InvoicePenagihan:
		return "Penagihan"
	case InvoiceTerminDP:
		return "Termin DP"
	case InvoicePelunasan:
		return "Pelunasan"
	}
	return "Invoice"
}

// Title is the document heading, e.g. "INVOICE TERMIN DP".
func (t InvoiceType) Title() string {
	switch t {
	case InvoicePenagihan, InvoiceTerminDP, InvoicePelunasan:
		return "INVOICE " + strings.ToUpper(t.Label())
	}
	return "INVOICE"
}

// Stamped reports whether the printed invoice carries a DP/LUNAS stamp.
func (t InvoiceType) Stamped() bool {
	return t == InvoiceTerminDP || t == InvoicePelunasan
}

// PaymentMechanism is how a proposal expects to be paid.
type PaymentMechanism string

const (
	PaymentLunas  PaymentMechanism = "lunas"
	PaymentTermin PaymentMechanism = "termin"
)

// Period is the billing period of a proposal line.
type Period string

const (
	PeriodOnce    Period = "sekali"
	PeriodMonthly Period = "bulanan"
	PeriodYearly  Period = "tahunan"
	PeriodCustom  Period = "custom"
)

// Label returns the display text; custom periods use their own text.
func (p Period) Label(custom string) string {
	switch p {
	case PeriodOnce:
		return "Satu Kali"
	case PeriodMonthly:
		return "Bulanan"
	case PeriodYearly:
		return "Tahunan"
	case PeriodCustom:
		if custom != "" {
			return custom
		}
		return "Custom"
	}
	return "-"
}

// WorkItem is one invoice line.
type WorkItem struct {
	ID          string        `json:"id"`
	Category    string        `json:"category"`
	Description string        `json:"description"`
	Amount      models.Amount `json:"amount" validate:"gte=0"`
	Notes       string        `json:"notes"`
}

// TerminDPInfo describes a down-payment invoice against a larger project.
type TerminDPInfo struct {
	TotalProjectAmount models.Amount `json:"totalProjectAmount" validate:"gte=0"`
	DPAmount           models.Amount `json:"dpAmount" validate:"gte=0"`
	TerminNumber       int           `json:"terminNumber" validate:"gte=1"`
}

// PenawaranWorkItem is one line of a surat penawaran.
type PenawaranWorkItem struct {
	ID           string        `json:"id"`
	Description  string        `json:"description"`
	Amount       models.Amount `json:"amount" validate:"gte=0"`
	Period       Period        `json:"period" validate:"oneof=sekali bulanan tahunan custom"`
	CustomPeriod string        `json:"customPeriod,omitempty"`
}

// PeriodLabel returns the display text of the line's period.
func (i PenawaranWorkItem) PeriodLabel() string {
	return i.Period.Label(i.CustomPeriod)
}

// Proposal holds the surat penawaran fields.
type Proposal struct {
	Number         string              `json:"nomorPenawaran"`
	Date           string              `json:"tanggal"`
	JenisPekerjaan string              `json:"jenisPekerjaan"`
	WorkItems      []PenawaranWorkItem `json:"workItems" validate:"dive"`
	TotalNominal   models.Amount       `json:"totalNominal"`
	Mechanism      PaymentMechanism    `json:"mekanismePembayaran" validate:"oneof=lunas termin"`
	LamaPengerjaan string              `json:"lamaPengerjaan"`
	TerminCount    int                 `json:"terminCount" validate:"gte=2"`
	Termin         termin.Plan         `json:"termin"`
}

// IsTermin reports whether the proposal is paid in stages.
func (p Proposal) IsTermin() bool {
	return p.Mechanism == PaymentTermin
}
