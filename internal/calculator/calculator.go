// Package calculator implements the derivation rules for transport rows.
//
// All functions operate on string-encoded numbers as they appear in the
// form: comma-grouped, possibly empty, possibly half-typed. Parse failures
// degrade to zero instead of returning errors so that partially filled
// rows never break the derived columns.
package calculator

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// taxRate is the fixed VAT rate applied to the supply price.
var taxRate = decimal.NewFromFloat(0.1)

var (
	printer      = message.NewPrinter(language.Korean)
	digitsOnly   = regexp.MustCompile(`[^0-9]`)
	validDecimal = regexp.MustCompile(`^\d*\.?\d{0,3}$`)
)

// Amount parses a comma-grouped number string. Unparseable input returns
// zero.
func Amount(value string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.ReplaceAll(value, ",", ""))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// SupplyPrice returns weight × unit price.
func SupplyPrice(weight, unitPrice string) decimal.Decimal {
	return Amount(weight).Mul(Amount(unitPrice))
}

// Tax returns the supply price times the fixed 10% rate, rounded to a
// whole amount.
func Tax(supplyPrice string) decimal.Decimal {
	return Amount(supplyPrice).Mul(taxRate).Round(0)
}

// Total returns the sum of supply price and tax.
func Total(supplyPrice, tax string) decimal.Decimal {
	return Amount(supplyPrice).Add(Amount(tax))
}

// FormatCurrency renders a number string with thousands separators as it
// is displayed in the form and in exported sheets. Empty and unparseable
// input renders as the empty string.
func FormatCurrency(value string) string {
	if value == "" {
		return ""
	}

	d, err := decimal.NewFromString(strings.ReplaceAll(value, ",", ""))
	if err != nil {
		return ""
	}

	formatted := printer.Sprintf("%d", d.IntPart())

	// Fractional digits are kept as typed, without grouping
	if d.Exponent() < 0 {
		plain := d.String()
		if i := strings.IndexByte(plain, '.'); i >= 0 {
			formatted += plain[i:]
		}
	}

	return formatted
}

// FormatDecimal renders a decimal the same way FormatCurrency renders a
// string-encoded number.
func FormatDecimal(d decimal.Decimal) string {
	return FormatCurrency(d.String())
}

// UniqueValues returns the distinct non-empty values in first-seen order.
// It powers the per-column autocomplete suggestion lists.
func UniqueValues(values []string) []string {
	seen := make(map[string]bool, len(values))
	unique := make([]string, 0, len(values))

	for _, value := range values {
		if value == "" || seen[value] {
			continue
		}
		seen[value] = true
		unique = append(unique, value)
	}

	return unique
}

// SanitizeInteger strips every non-digit character from the input.
func SanitizeInteger(value string) string {
	return digitsOnly.ReplaceAllString(value, "")
}

// ValidDecimal reports whether the input is a decimal number with at most
// three fractional digits. The empty string is valid so that a field can
// be cleared.
func ValidDecimal(value string) bool {
	return validDecimal.MatchString(value)
}
