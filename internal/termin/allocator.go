// Package termin splits a project total into payment stages ("termin"): a
// down payment first, the final settlement last, and optional stages between.
//
// Plans are plain values. Every function returns a new Plan and leaves its
// argument untouched, so a plan held by a document can be recomputed freely.
package termin

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"invoicekit/pkg/models"
)

// ErrInvalidCount is returned when a plan with fewer than two stages is requested.
var ErrInvalidCount = errors.New("a termin plan needs at least two installments")

// MinCount is the smallest supported number of installments.
const MinCount = 2

var hundred = decimal.NewFromInt(100)

// Item is one payment stage.
type Item struct {
	ID         string        `json:"id" validate:"required"`
	Label      string        `json:"label"`
	Percentage int           `json:"percentage" validate:"gte=0,lte=100"`
	Amount     models.Amount `json:"amount" validate:"gte=0"`
}

// Plan is an ordered list of stages for one total.
type Plan struct {
	Total models.Amount `json:"total" validate:"gte=0"`
	Items []Item        `json:"items" validate:"dive"`
}

// DefaultPlan spreads 100% evenly over count stages. The remainder of the
// integer division goes to the last stage, e.g. 3 stages are 33/33/34.
func DefaultPlan(count int, total models.Amount) (Plan, error) {
	if count < MinCount {
		return Plan{}, fmt.Errorf("%w: got %d", ErrInvalidCount, count)
	}
	total = total.NonNegative()

	base := 100 / count
	remainder := 100 - base*count

	items := make([]Item, count)
	for i := range items {
		pct := base
		if i == count-1 {
			pct += remainder
		}
		items[i] = Item{
			ID:         strconv.Itoa(i + 1),
			Label:      DefaultLabel(i+1, count),
			Percentage: pct,
			Amount:     Portion(total, pct),
		}
	}
	return Plan{Total: total, Items: items}, nil
}

// DefaultLabel names stage n of count: the first is the down payment, the
// last the settlement.
func DefaultLabel(n, count int) string {
	switch n {
	case 1:
		return "Termin 1 (DP)"
	case count:
		return fmt.Sprintf("Termin %d (Pelunasan)", n)
	}
	return fmt.Sprintf("Termin %d", n)
}

// Recompute applies each stage's percentage to a new total. Labels and
// percentages are kept.
func Recompute(plan Plan, total models.Amount) Plan {
	total = total.NonNegative()
	out := Plan{Total: total, Items: make([]Item, len(plan.Items))}
	for i, item := range plan.Items {
		item.Amount = Portion(total, item.Percentage)
		out.Items[i] = item
	}
	return out
}

// SetPercentage changes one stage's percentage (clamped to 0..100) and
// recomputes only that stage's amount. Other stages are not rebalanced, so
// the sum may drift away from 100; see Validate.
func SetPercentage(plan Plan, id string, percentage int) Plan {
	percentage = clampPercentage(percentage)
	return update(plan, id, func(item *Item) {
		item.Percentage = percentage
		item.Amount = Portion(plan.Total, percentage)
	})
}

// SetLabel renames one stage.
func SetLabel(plan Plan, id, label string) Plan {
	return update(plan, id, func(item *Item) {
		item.Label = label
	})
}

// Portion returns round(percentage/100 * total), rounding half up to whole Rupiah.
func Portion(total models.Amount, percentage int) models.Amount {
	amount := decimal.NewFromInt(int64(total)).
		Mul(decimal.NewFromInt(int64(percentage))).
		Div(hundred).
		Round(0)
	return models.Amount(amount.IntPart())
}

// TotalPercentage sums the percentages of all stages.
func (p Plan) TotalPercentage() int {
	sum := 0
	for _, item := range p.Items {
		sum += item.Percentage
	}
	return sum
}

// AllocatedAmount sums the amounts of all stages.
func (p Plan) AllocatedAmount() models.Amount {
	var sum models.Amount
	for _, item := range p.Items {
		sum += item.Amount
	}
	return sum
}

// Find returns the stage with the given id.
func (p Plan) Find(id string) (Item, bool) {
	for _, item := range p.Items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

func update(plan Plan, id string, fn func(*Item)) Plan {
	out := Plan{Total: plan.Total, Items: make([]Item, len(plan.Items))}
	copy(out.Items, plan.Items)
	for i := range out.Items {
		if out.Items[i].ID == id {
			fn(&out.Items[i])
		}
	}
	return out
}

func clampPercentage(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
