package termin

import (
	"fmt"

	"invoicekit/pkg/models"
)

// WarningCode classifies a soft validation finding.
type WarningCode string

const (
	// WarnPercentageSum means the stage percentages do not add up to 100.
	WarnPercentageSum WarningCode = "percentage_sum"

	// WarnRoundingDrift means the rounded stage amounts do not add up to the total.
	WarnRoundingDrift WarningCode = "rounding_drift"
)

// Warning is a non-blocking finding shown next to the plan.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}

// Validation summarizes how far a plan is from a clean 100% split.
// It never blocks export.
type Validation struct {
	TotalPercentage int           `json:"totalPercentage"`
	AllocatedAmount models.Amount `json:"allocatedAmount"`
	// AmountDrift is AllocatedAmount minus the plan total.
	AmountDrift models.Amount `json:"amountDrift"`
	Warnings    []Warning     `json:"warnings,omitempty"`
}

// OK reports whether the plan produced no warnings.
func (v Validation) OK() bool {
	return len(v.Warnings) == 0
}

// Has reports whether a warning with the given code is present.
func (v Validation) Has(code WarningCode) bool {
	for _, w := range v.Warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

// Validate checks the soft invariants of a plan. Percentages that do not sum
// to 100 and rounding drift are reported, not corrected.
func Validate(plan Plan) Validation {
	v := Validation{
		TotalPercentage: plan.TotalPercentage(),
		AllocatedAmount: plan.AllocatedAmount(),
	}
	v.AmountDrift = v.AllocatedAmount - plan.Total

	if v.TotalPercentage != 100 {
		v.Warnings = append(v.Warnings, Warning{
			Code:    WarnPercentageSum,
			Message: fmt.Sprintf("Total persentase %d%% (harus 100%%)", v.TotalPercentage),
		})
		return v
	}

	// Drift only matters once the percentages themselves are consistent.
	if v.AmountDrift != 0 {
		v.Warnings = append(v.Warnings, Warning{
			Code:    WarnRoundingDrift,
			Message: fmt.Sprintf("Selisih pembulatan %d Rupiah terhadap total", int64(v.AmountDrift)),
		})
	}
	return v
}
