package share

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/ttacon/libphonenumber"
)

// DefaultRegion is used for numbers written without a country code.
const DefaultRegion = "ID"

// ErrInvalidPhone is returned for numbers that cannot be dialled on WhatsApp.
var ErrInvalidPhone = errors.New("invalid phone number")

// NormalizePhone turns a local or international number into the digits
// wa.me expects, e.g. "0812-2512-9109" becomes "6281225129109".
func NormalizePhone(phone string) (string, error) {
	num, err := libphonenumber.Parse(phone, DefaultRegion)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrInvalidPhone, phone, err)
	}
	if !libphonenumber.IsValidNumber(num) {
		return "", fmt.Errorf("%w %q", ErrInvalidPhone, phone)
	}
	return strings.TrimPrefix(libphonenumber.Format(num, libphonenumber.E164), "+"), nil
}

// ShareURL builds a wa.me link carrying message. Without a phone number
// WhatsApp asks the user to pick a chat.
func ShareURL(message, phone string) (string, error) {
	target := "https://wa.me/"
	if strings.TrimSpace(phone) != "" {
		digits, err := NormalizePhone(phone)
		if err != nil {
			return "", err
		}
		target += digits
	}
	return target + "?text=" + escapeText(message), nil
}

// escapeText percent-encodes message text for a query value. Spaces become
// %20, never "+". Unlike encodeURIComponent it also escapes !'()*, which
// wa.me decodes the same way.
func escapeText(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
