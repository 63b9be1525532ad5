// Package rupiah formats Rupiah amounts the way Indonesian billing documents
// print them: "." as the thousands separator, no fraction digits, and the
// amount spelled out in words ("terbilang").
package rupiah

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"invoicekit/pkg/models"
)

// Symbol is prefixed by callers, never by Format.
const Symbol = "Rp"

// ErrAmountTooLarge is returned when sanitized input does not fit an Amount.
var ErrAmountTooLarge = errors.New("amount exceeds supported range")

var printer = message.NewPrinter(language.Indonesian)

// Format groups the integer amount with Indonesian thousands separators.
//
//	Format(1234567) == "1.234.567"
func Format(amount models.Amount) string {
	return printer.Sprintf("%d", int64(amount))
}

// FormatRupiah returns the amount with the "Rp" symbol, e.g. "Rp 1.500.000".
func FormatRupiah(amount models.Amount) string {
	return Symbol + " " + Format(amount)
}

// ParseAmount strips every non-digit character from user input and parses the
// rest. An input without digits yields zero.
func ParseAmount(s string) (models.Amount, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return 0, nil
	}

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, ErrAmountTooLarge)
	}
	return models.Amount(n), nil
}
