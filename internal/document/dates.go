package document

import (
	"fmt"
	"time"
)

var (
	monthNames      = [12]string{"Januari", "Februari", "Maret", "April", "Mei", "Juni", "Juli", "Agustus", "September", "Oktober", "November", "Desember"}
	monthNamesShort = [12]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}
)

// FormatDate renders t the way dates are printed on documents, e.g. "5 Januari 2026".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), monthNames[t.Month()-1], t.Year())
}

// FormatDateShort renders t with an abbreviated month, e.g. "5 Jan 2026".
func FormatDateShort(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), monthNamesShort[t.Month()-1], t.Year())
}
