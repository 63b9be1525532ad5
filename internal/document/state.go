// Package document holds the editable state of one invoice, surat penawaran
// or digital brochure. Every mutation recomputes the derived totals before it
// returns, so renderers can read the struct directly.
package document

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"invoicekit/internal/numbering"
	"invoicekit/internal/termin"
	"invoicekit/pkg/models"
)

// NumberSource issues document numbers. *numbering.Numberer satisfies it.
type NumberSource interface {
	Next(ctx context.Context, kind numbering.Kind, prefix string) (string, error)
}

// State is the full form state of one document.
type State struct {
	Mode          Mode              `json:"documentMode" validate:"oneof=invoice surat_penawaran brosur_digital"`
	InvoiceNumber string            `json:"invoiceNumber"`
	InvoiceDate   string            `json:"invoiceDate"`
	InvoiceType   InvoiceType       `json:"invoiceType" validate:"oneof=penagihan termin_dp pelunasan"`
	Client        models.ClientInfo `json:"clientInfo"`
	WorkItems     []WorkItem        `json:"workItems" validate:"dive"`
	TotalAmount   models.Amount     `json:"totalAmount"`
	TerminDP      TerminDPInfo      `json:"terminDPInfo"`
	Proposal      Proposal          `json:"suratPenawaranInfo"`
	Brochure      Brochure          `json:"brosur"`
}

// New returns a blank invoice with one empty work item and a 50/50 proposal plan.
func New() *State {
	plan, _ := termin.DefaultPlan(termin.MinCount, 0)
	return &State{
		Mode:        ModeInvoice,
		InvoiceType: InvoicePenagihan,
		WorkItems: []WorkItem{
			{ID: "1", Category: "Web Design"},
		},
		TerminDP: TerminDPInfo{TerminNumber: 1},
		Proposal: Proposal{
			WorkItems:   []PenawaranWorkItem{{ID: "1", Period: PeriodOnce}},
			Mechanism:   PaymentLunas,
			TerminCount: termin.MinCount,
			Termin:      plan,
		},
		Brochure: Brochure{
			SelectedPackage: DefaultPackageID,
			Vendor:          DefaultVendor(),
		},
	}
}

// StampDates fills empty invoice and proposal dates with now.
func (s *State) StampDates(now time.Time) {
	if s.InvoiceDate == "" {
		s.InvoiceDate = FormatDate(now)
	}
	if s.Proposal.Date == "" {
		s.Proposal.Date = FormatDate(now)
	}
}

// Invoice items

// SetWorkItems replaces all invoice lines and returns the new total.
func (s *State) SetWorkItems(items []WorkItem) models.Amount {
	s.WorkItems = append([]WorkItem(nil), items...)
	return s.recalcInvoice()
}

// AddWorkItem appends a line. An empty ID is replaced by a generated one.
func (s *State) AddWorkItem(item WorkItem) models.Amount {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	s.WorkItems = append(s.WorkItems, item)
	return s.recalcInvoice()
}

// UpdateWorkItem applies fn to the line with the given id. The boolean is
// false when no such line exists.
func (s *State) UpdateWorkItem(id string, fn func(*WorkItem)) (models.Amount, bool) {
	found := false
	for i := range s.WorkItems {
		if s.WorkItems[i].ID == id {
			fn(&s.WorkItems[i])
			s.WorkItems[i].ID = id
			found = true
		}
	}
	return s.recalcInvoice(), found
}

// RemoveWorkItem drops the line with the given id.
func (s *State) RemoveWorkItem(id string) models.Amount {
	kept := make([]WorkItem, 0, len(s.WorkItems))
	for _, item := range s.WorkItems {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.WorkItems = kept
	return s.recalcInvoice()
}

func (s *State) recalcInvoice() models.Amount {
	var total models.Amount
	for _, item := range s.WorkItems {
		total += item.Amount.NonNegative()
	}
	s.TotalAmount = total
	return total
}

// Termin DP

// SetTerminDP replaces the down-payment details.
func (s *State) SetTerminDP(info TerminDPInfo) {
	if info.TerminNumber < 1 {
		info.TerminNumber = 1
	}
	s.TerminDP = info
}

// DPPercentage is the down payment as a share of the project total, 0 when
// the project total is unknown.
func (s *State) DPPercentage() float64 {
	if s.TerminDP.TotalProjectAmount <= 0 {
		return 0
	}
	return float64(s.TerminDP.DPAmount) / float64(s.TerminDP.TotalProjectAmount) * 100
}

// DPPercentageText formats DPPercentage with one decimal, e.g. "30.0".
func (s *State) DPPercentageText() string {
	return fmt.Sprintf("%.1f", s.DPPercentage())
}

// RemainingAmount is what is left of the project after the down payment.
func (s *State) RemainingAmount() models.Amount {
	return (s.TerminDP.TotalProjectAmount - s.TerminDP.DPAmount).NonNegative()
}

// BillableAmount is the amount the invoice asks for: the down payment on a
// termin DP invoice, the work item total otherwise or while no down payment
// is set.
func (s *State) BillableAmount() models.Amount {
	if s.InvoiceType == InvoiceTerminDP && s.TerminDP.DPAmount > 0 {
		return s.TerminDP.DPAmount
	}
	return s.TotalAmount
}

// Proposal items

// SetPenawaranItems replaces all proposal lines and returns the new total.
func (s *State) SetPenawaranItems(items []PenawaranWorkItem) models.Amount {
	s.Proposal.WorkItems = append([]PenawaranWorkItem(nil), items...)
	return s.recalcProposal()
}

// AddPenawaranItem appends a proposal line. An empty ID is replaced by a
// generated one and an empty period defaults to a one-off payment.
func (s *State) AddPenawaranItem(item PenawaranWorkItem) models.Amount {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Period == "" {
		item.Period = PeriodOnce
	}
	s.Proposal.WorkItems = append(s.Proposal.WorkItems, item)
	return s.recalcProposal()
}

// UpdatePenawaranItem applies fn to the proposal line with the given id.
func (s *State) UpdatePenawaranItem(id string, fn func(*PenawaranWorkItem)) (models.Amount, bool) {
	found := false
	for i := range s.Proposal.WorkItems {
		if s.Proposal.WorkItems[i].ID == id {
			fn(&s.Proposal.WorkItems[i])
			s.Proposal.WorkItems[i].ID = id
			found = true
		}
	}
	return s.recalcProposal(), found
}

// RemovePenawaranItem drops a proposal line. The last remaining line is never
// removed; the boolean reports whether anything changed.
func (s *State) RemovePenawaranItem(id string) (models.Amount, bool) {
	if len(s.Proposal.WorkItems) <= 1 {
		return s.Proposal.TotalNominal, false
	}
	kept := make([]PenawaranWorkItem, 0, len(s.Proposal.WorkItems))
	for _, item := range s.Proposal.WorkItems {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	removed := len(kept) != len(s.Proposal.WorkItems)
	s.Proposal.WorkItems = kept
	return s.recalcProposal(), removed
}

// recalcProposal sums the proposal lines. The termin plan follows the total
// only while the proposal is paid in stages.
func (s *State) recalcProposal() models.Amount {
	var total models.Amount
	for _, item := range s.Proposal.WorkItems {
		total += item.Amount.NonNegative()
	}
	s.Proposal.TotalNominal = total
	if s.Proposal.IsTermin() {
		s.Proposal.Termin = termin.Recompute(s.Proposal.Termin, total)
	}
	return total
}

// Payment plan

// SetPaymentMechanism switches between a single payment and a termin plan.
// Switching to termin brings the plan amounts up to date with the total.
func (s *State) SetPaymentMechanism(m PaymentMechanism) error {
	switch m {
	case PaymentLunas, PaymentTermin:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMechanism, string(m))
	}
	s.Proposal.Mechanism = m
	if m == PaymentTermin {
		s.Proposal.Termin = termin.Recompute(s.Proposal.Termin, s.Proposal.TotalNominal)
	}
	return nil
}

// SetTerminCount regenerates the plan from scratch for count stages. Custom
// labels and percentages are lost.
func (s *State) SetTerminCount(count int) (termin.Plan, error) {
	plan, err := termin.DefaultPlan(count, s.Proposal.TotalNominal)
	if err != nil {
		return s.Proposal.Termin, err
	}
	s.Proposal.TerminCount = count
	s.Proposal.Termin = plan
	return plan, nil
}

// SetTerminPercentage edits one stage against the current total nominal and
// returns the resulting validation.
func (s *State) SetTerminPercentage(id string, percentage int) termin.Validation {
	plan := termin.Recompute(s.Proposal.Termin, s.Proposal.TotalNominal)
	s.Proposal.Termin = termin.SetPercentage(plan, id, percentage)
	return termin.Validate(s.Proposal.Termin)
}

// SetTerminLabel renames one stage.
func (s *State) SetTerminLabel(id, label string) {
	s.Proposal.Termin = termin.SetLabel(s.Proposal.Termin, id, label)
}

// TerminValidation reports the soft checks of the current plan.
func (s *State) TerminValidation() termin.Validation {
	return termin.Validate(s.Proposal.Termin)
}

// Numbers

// AssignInvoiceNumber takes the next invoice number from src and stores it.
// When the counter could not be saved the number is still stored and the
// error is returned alongside it.
func (s *State) AssignInvoiceNumber(ctx context.Context, src NumberSource, prefix string) (string, error) {
	number, err := src.Next(ctx, numbering.KindInvoice, prefix)
	if number != "" {
		s.InvoiceNumber = number
	}
	return number, err
}

// AssignProposalNumber takes the next surat penawaran number from src and stores it.
func (s *State) AssignProposalNumber(ctx context.Context, src NumberSource, prefix string) (string, error) {
	number, err := src.Next(ctx, numbering.KindProposal, prefix)
	if number != "" {
		s.Proposal.Number = number
	}
	return number, err
}

// Number returns the document number of the active mode.
func (s *State) Number() string {
	if s.Mode == ModeProposal {
		return s.Proposal.Number
	}
	return s.InvoiceNumber
}

// Recalculate refreshes every derived total, e.g. after decoding a file.
// A plan whose stage count disagrees with TerminCount is regenerated.
func (s *State) Recalculate() {
	s.recalcInvoice()

	p := &s.Proposal
	if p.TerminCount < termin.MinCount {
		p.TerminCount = termin.MinCount
	}
	if len(p.Termin.Items) != p.TerminCount {
		plan, _ := termin.DefaultPlan(p.TerminCount, 0)
		p.Termin = plan
	}
	var total models.Amount
	for _, item := range p.WorkItems {
		total += item.Amount.NonNegative()
	}
	p.TotalNominal = total
	p.Termin = termin.Recompute(p.Termin, total)
}
