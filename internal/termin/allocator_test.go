package termin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicekit/pkg/models"
)

func percentages(p Plan) []int {
	out := make([]int, len(p.Items))
	for i, item := range p.Items {
		out[i] = item.Percentage
	}
	return out
}

func amounts(p Plan) []models.Amount {
	out := make([]models.Amount, len(p.Items))
	for i, item := range p.Items {
		out[i] = item.Amount
	}
	return out
}

func TestDefaultPlan_ThreeWay(t *testing.T) {
	plan, err := DefaultPlan(3, 1000000)
	require.NoError(t, err)

	assert.Equal(t, []int{33, 33, 34}, percentages(plan))
	assert.Equal(t, []models.Amount{330000, 330000, 340000}, amounts(plan))
	assert.Equal(t, models.Amount(1000000), plan.AllocatedAmount())
}

func TestDefaultPlan_Labels(t *testing.T) {
	plan, err := DefaultPlan(4, 0)
	require.NoError(t, err)

	labels := []string{}
	ids := []string{}
	for _, item := range plan.Items {
		labels = append(labels, item.Label)
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []string{"Termin 1 (DP)", "Termin 2", "Termin 3", "Termin 4 (Pelunasan)"}, labels)
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids)
	assert.Equal(t, []int{25, 25, 25, 25}, percentages(plan))
}

func TestDefaultPlan_TwoWay(t *testing.T) {
	plan, err := DefaultPlan(2, 1000000)
	require.NoError(t, err)

	assert.Equal(t, "Termin 1 (DP)", plan.Items[0].Label)
	assert.Equal(t, "Termin 2 (Pelunasan)", plan.Items[1].Label)
	assert.Equal(t, []models.Amount{500000, 500000}, amounts(plan))
}

func TestDefaultPlan_RemainderOnLast(t *testing.T) {
	plan, err := DefaultPlan(7, 700)
	require.NoError(t, err)

	// floor(100/7) = 14, remainder 2 lands on the last stage.
	assert.Equal(t, []int{14, 14, 14, 14, 14, 14, 16}, percentages(plan))
	assert.Equal(t, 100, plan.TotalPercentage())
}

func TestDefaultPlan_InvalidCount(t *testing.T) {
	for _, count := range []int{-1, 0, 1} {
		_, err := DefaultPlan(count, 1000)
		assert.ErrorIs(t, err, ErrInvalidCount)
	}
}

func TestPortion_RoundsHalfUp(t *testing.T) {
	assert.Equal(t, models.Amount(2), Portion(3, 50))     // 1.5
	assert.Equal(t, models.Amount(0), Portion(1, 33))     // 0.33
	assert.Equal(t, models.Amount(330), Portion(1001, 33)) // 330.33
	assert.Equal(t, models.Amount(500), Portion(999, 50))  // 499.5
}

func TestRecompute(t *testing.T) {
	plan, err := DefaultPlan(3, 1000000)
	require.NoError(t, err)
	plan = SetLabel(plan, "2", "Termin 2 (Progress 50%)")

	recomputed := Recompute(plan, 2000000)

	assert.Equal(t, models.Amount(2000000), recomputed.Total)
	assert.Equal(t, []models.Amount{660000, 660000, 680000}, amounts(recomputed))
	assert.Equal(t, "Termin 2 (Progress 50%)", recomputed.Items[1].Label)

	// The input plan is untouched.
	assert.Equal(t, []models.Amount{330000, 330000, 340000}, amounts(plan))
}

func TestRecompute_Idempotent(t *testing.T) {
	plan, err := DefaultPlan(5, 1234567)
	require.NoError(t, err)

	assert.Equal(t, Recompute(plan, 7654321), Recompute(Recompute(plan, 7654321), 7654321))
}

func TestSetPercentage_DoesNotRebalance(t *testing.T) {
	plan, err := DefaultPlan(2, 1000000)
	require.NoError(t, err)

	updated := SetPercentage(plan, "1", 60)

	assert.Equal(t, 60, updated.Items[0].Percentage)
	assert.Equal(t, models.Amount(600000), updated.Items[0].Amount)
	assert.Equal(t, 50, updated.Items[1].Percentage)
	assert.Equal(t, models.Amount(500000), updated.Items[1].Amount)
	assert.Equal(t, 110, updated.TotalPercentage())

	// Original untouched.
	assert.Equal(t, 50, plan.Items[0].Percentage)
}

func TestSetPercentage_ClampsAndIgnoresUnknownID(t *testing.T) {
	plan, err := DefaultPlan(2, 1000)
	require.NoError(t, err)

	assert.Equal(t, 100, SetPercentage(plan, "2", 150).Items[1].Percentage)
	assert.Equal(t, 0, SetPercentage(plan, "2", -5).Items[1].Percentage)
	assert.Equal(t, plan, SetPercentage(plan, "9", 10))
}

func TestFind(t *testing.T) {
	plan, err := DefaultPlan(3, 900)
	require.NoError(t, err)

	item, ok := plan.Find("3")
	assert.True(t, ok)
	assert.Equal(t, "Termin 3 (Pelunasan)", item.Label)

	_, ok = plan.Find("4")
	assert.False(t, ok)
}
