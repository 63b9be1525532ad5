package rupiah

import "invoicekit/pkg/models"

var satuan = [...]string{
	"", "Satu", "Dua", "Tiga", "Empat", "Lima", "Enam",
	"Tujuh", "Delapan", "Sembilan", "Sepuluh", "Sebelas",
}

// scale is one magnitude tier above a thousand.
type scale struct {
	size int64
	word string
}

var scales = [...]scale{
	{1_000_000_000_000, "Triliun"},
	{1_000_000_000, "Miliar"},
	{1_000_000, "Juta"},
}

// Terbilang spells a non-negative amount in Indonesian words, e.g.
// 1500000 -> "Satu Juta Lima Ratus Ribu". Zero yields the empty string;
// use TerbilangRupiah for document text. Negative input is treated as zero.
func Terbilang(amount models.Amount) string {
	return words(int64(amount.NonNegative()))
}

// TerbilangRupiah returns the words followed by "Rupiah", with zero spelled
// as "Nol Rupiah".
func TerbilangRupiah(amount models.Amount) string {
	w := Terbilang(amount)
	if w == "" {
		return "Nol Rupiah"
	}
	return w + " Rupiah"
}

func words(n int64) string {
	switch {
	case n < 12:
		return satuan[n]
	case n < 20:
		return satuan[n-10] + " Belas"
	case n < 100:
		return withTail(satuan[n/10]+" Puluh", n%10)
	case n < 200:
		return withTail("Seratus", n%100)
	case n < 1000:
		return withTail(satuan[n/100]+" Ratus", n%100)
	case n < 2000:
		return withTail("Seribu", n%1000)
	case n < 1_000_000:
		return withTail(words(n/1000)+" Ribu", n%1000)
	}

	for _, s := range scales {
		if n >= s.size {
			return withTail(words(n/s.size)+" "+s.word, n%s.size)
		}
	}
	// unreachable: n >= 1_000_000 always matches the Juta tier
	return ""
}

// withTail appends the words for rest unless it is zero.
func withTail(head string, rest int64) string {
	if rest == 0 {
		return head
	}
	return head + " " + words(rest)
}
