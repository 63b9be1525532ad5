package rupiah

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicekit/pkg/models"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		amount models.Amount
		want   string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.000"},
		{1234567, "1.234.567"},
		{2500000, "2.500.000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.amount))
	}
}

func TestFormatRupiah(t *testing.T) {
	assert.Equal(t, "Rp 650.000", FormatRupiah(650000))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  models.Amount
	}{
		{"", 0},
		{"abc", 0},
		{"1.500.000", 1500000},
		{"Rp 2.000.000,-", 2000000},
		{"  42 ", 42},
	}

	for _, tt := range tests {
		got, err := ParseAmount(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestParseAmount_Overflow(t *testing.T) {
	_, err := ParseAmount("99999999999999999999999")
	assert.ErrorIs(t, err, ErrAmountTooLarge)
}
