package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// Load decodes a document file. Missing fields take the defaults of New and
// items without an ID get a generated one. Derived totals are always
// recomputed, so totals stored in the file are ignored.
func Load(r io.Reader) (*State, error) {
	const op = "Load"

	var s State
	dec := json.NewDecoder(r)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrInvalidDocument, err)
	}

	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.Recalculate()
	return &s, nil
}

// Validate checks field constraints. All failing fields are reported, each
// as a *ValidationError.
func (s *State) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, NewValidationError(fieldPath(fe.Namespace()), fe.Value(), describe(fe)))
	}
	return errors.Join(errs...)
}

func (s *State) applyDefaults() {
	def := New()

	if s.Mode == "" {
		s.Mode = def.Mode
	}
	if s.InvoiceType == "" {
		s.InvoiceType = def.InvoiceType
	}
	if s.TerminDP.TerminNumber == 0 {
		s.TerminDP.TerminNumber = def.TerminDP.TerminNumber
	}
	for i := range s.WorkItems {
		if s.WorkItems[i].ID == "" {
			s.WorkItems[i].ID = uuid.NewString()
		}
	}

	p := &s.Proposal
	if p.Mechanism == "" {
		p.Mechanism = def.Proposal.Mechanism
	}
	if p.TerminCount == 0 {
		p.TerminCount = def.Proposal.TerminCount
	}
	if len(p.WorkItems) == 0 {
		p.WorkItems = def.Proposal.WorkItems
	}
	for i := range p.WorkItems {
		if p.WorkItems[i].ID == "" {
			p.WorkItems[i].ID = uuid.NewString()
		}
		if p.WorkItems[i].Period == "" {
			p.WorkItems[i].Period = PeriodOnce
		}
	}

	if s.Brochure.SelectedPackage == "" {
		s.Brochure.SelectedPackage = def.Brochure.SelectedPackage
	}
	if s.Brochure.Vendor == (VendorInfo{}) {
		s.Brochure.Vendor = def.Brochure.Vendor
	}
}

// fieldPath drops the root type name: "State.WorkItems[0].Amount" becomes
// "WorkItems[0].Amount".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return "must be one of " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "required":
		return "is required"
	}
	return "failed " + fe.Tag() + " check"
}
