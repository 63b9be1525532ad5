package rupiah

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"invoicekit/pkg/models"
)

func TestTerbilang(t *testing.T) {
	tests := []struct {
		amount models.Amount
		want   string
	}{
		{0, ""},
		{1, "Satu"},
		{10, "Sepuluh"},
		{11, "Sebelas"},
		{12, "Dua Belas"},
		{19, "Sembilan Belas"},
		{20, "Dua Puluh"},
		{21, "Dua Puluh Satu"},
		{99, "Sembilan Puluh Sembilan"},
		{100, "Seratus"},
		{101, "Seratus Satu"},
		{111, "Seratus Sebelas"},
		{200, "Dua Ratus"},
		{999, "Sembilan Ratus Sembilan Puluh Sembilan"},
		{1000, "Seribu"},
		{1001, "Seribu Satu"},
		{1999, "Seribu Sembilan Ratus Sembilan Puluh Sembilan"},
		{2000, "Dua Ribu"},
		{11000, "Sebelas Ribu"},
		{100000, "Seratus Ribu"},
		{250500, "Dua Ratus Lima Puluh Ribu Lima Ratus"},
		{1000000, "Satu Juta"},
		{1500000, "Satu Juta Lima Ratus Ribu"},
		{2000000000, "Dua Miliar"},
		{1000000000000, "Satu Triliun"},
		{3000000000001, "Tiga Triliun Satu"},
		{1000000000000000, "Seribu Triliun"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Terbilang(tt.amount))
		})
	}
}

func TestTerbilang_NegativeIsZero(t *testing.T) {
	assert.Equal(t, "", Terbilang(-5))
}

func TestTerbilang_NoStraySpaces(t *testing.T) {
	for n := models.Amount(1); n < 25000; n += 7 {
		w := Terbilang(n)
		assert.NotContains(t, w, "  ", "double space for %d", n)
		assert.Equal(t, strings.TrimSpace(w), w, "leading/trailing space for %d", n)
	}
	for _, n := range []models.Amount{1_000_001, 12_345_678, 999_999_999_999, 7_000_000_000_010} {
		w := Terbilang(n)
		assert.NotContains(t, w, "  ", "double space for %d", n)
		assert.Equal(t, strings.TrimSpace(w), w, "leading/trailing space for %d", n)
	}
}

func TestTerbilangRupiah(t *testing.T) {
	assert.Equal(t, "Nol Rupiah", TerbilangRupiah(0))
	assert.Equal(t, "Seratus Ribu Rupiah", TerbilangRupiah(100000))
}
