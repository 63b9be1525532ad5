package share

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0812-2512-9109", "6281225129109"},
		{"+62 812-2512-9109", "6281225129109"},
		{"081225129109", "6281225129109"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizePhone(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizePhoneRejectsGarbage(t *testing.T) {
	_, err := NormalizePhone("bukan nomor")
	assert.ErrorIs(t, err, ErrInvalidPhone)

	_, err = NormalizePhone("0812")
	assert.ErrorIs(t, err, ErrInvalidPhone)
}

func TestShareURL(t *testing.T) {
	u, err := ShareURL("Halo *Pak* & Bu 100%+", "")
	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/?text=Halo%20%2APak%2A%20%26%20Bu%20100%25%2B", u)

	u, err = ShareURL("a\nb", "0812-2512-9109")
	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/6281225129109?text=a%0Ab", u)

	u, err = ShareURL("Terima kasih! (Lunas)", "")
	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/?text=Terima%20kasih%21%20%28Lunas%29", u)

	_, err = ShareURL("x", "12")
	assert.ErrorIs(t, err, ErrInvalidPhone)
}
