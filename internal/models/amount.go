package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a raw amount string to a decimal. It tolerates comma
// or dot decimal separators, thousand separators and currency markers.
// Malformed amounts come back as zero together with ok=false; the lenient
// ingestion contract drops those records instead of failing.
func ParseAmount(amountStr string) (decimal.Decimal, bool) {
	amount := strings.TrimSpace(amountStr)
	amount = strings.ReplaceAll(amount, " ", "")
	amount = strings.ReplaceAll(amount, "Bs.", "")
	amount = strings.ReplaceAll(amount, "Bs", "")
	amount = strings.ReplaceAll(amount, "$", "")

	// "1.234,56" style: the dot is a thousands separator, the comma the
	// decimal mark. "1,234.56" style is the other way around.
	lastComma := strings.LastIndex(amount, ",")
	lastDot := strings.LastIndex(amount, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0 && lastComma > lastDot:
		amount = strings.ReplaceAll(amount, ".", "")
		amount = strings.ReplaceAll(amount, ",", ".")
	case lastComma >= 0 && lastDot >= 0:
		amount = strings.ReplaceAll(amount, ",", "")
	case lastComma >= 0:
		amount = strings.ReplaceAll(amount, ",", ".")
	}

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, false
	}
	return dec, true
}
