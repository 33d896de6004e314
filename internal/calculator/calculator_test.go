package calculator_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/transport-ledger/backend/internal/calculator"
)

func TestSupplyPrice(t *testing.T) {
	tests := []struct {
		weight    string
		unitPrice string
		want      string
	}{
		{"2", "10000", "20000"},
		{"2.5", "10000", "25000"},
		{"0.125", "8000", "1000"},
		{"1,000", "1,000", "1000000"},
		{"", "10000", "0"},
		{"abc", "10000", "0"},
		{"2", "", "0"},
	}

	for _, tt := range tests {
		got := calculator.SupplyPrice(tt.weight, tt.unitPrice)
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "SupplyPrice(%q, %q) = %s", tt.weight, tt.unitPrice, got)
	}
}

func TestTax(t *testing.T) {
	tests := []struct {
		supplyPrice string
		want        string
	}{
		{"20000", "2000"},
		{"25000", "2500"},
		{"1", "0"},
		{"15", "2"},
		{"1,000,000", "100000"},
		{"", "0"},
		{"not a number", "0"},
	}

	for _, tt := range tests {
		got := calculator.Tax(tt.supplyPrice)
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "Tax(%q) = %s", tt.supplyPrice, got)
	}
}

func TestTotal(t *testing.T) {
	got := calculator.Total("25,000", "2,500")
	assert.True(t, got.Equal(decimal.NewFromInt(27500)))

	got = calculator.Total("", "")
	assert.True(t, got.IsZero())
}

// The derivation chain must satisfy the row invariant: deriving tax and
// total from a computed supply price yields tax == round(supply × 0.1)
// and total == supply + tax.
func TestDerivationChain(t *testing.T) {
	supply := calculator.SupplyPrice("3.375", "12000").Round(0)
	tax := calculator.Tax(supply.String())
	total := calculator.Total(supply.String(), tax.String())

	assert.True(t, supply.Equal(decimal.NewFromInt(40500)))
	assert.True(t, tax.Equal(decimal.NewFromInt(4050)))
	assert.True(t, total.Equal(decimal.NewFromInt(44550)))
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"1000", "1,000"},
		{"1234567", "1,234,567"},
		{"1,234", "1,234"},
		{"0", "0"},
		{"12.5", "12.5"},
		{"", ""},
		{"garbage", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, calculator.FormatCurrency(tt.value), "FormatCurrency(%q)", tt.value)
	}
}

// Formatting, stripping the separators and formatting again yields the
// same string.
func TestFormatCurrencyIdempotent(t *testing.T) {
	for _, value := range []string{"1", "999", "1000", "123456789", "0"} {
		formatted := calculator.FormatCurrency(value)
		stripped := strings.ReplaceAll(formatted, ",", "")
		assert.Equal(t, formatted, calculator.FormatCurrency(stripped))
	}
}

func TestUniqueValues(t *testing.T) {
	got := calculator.UniqueValues([]string{"서울", "", "부산", "서울", "인천", "부산"})
	assert.Equal(t, []string{"서울", "부산", "인천"}, got)
}

func TestUniqueValuesAllEmpty(t *testing.T) {
	assert.Empty(t, calculator.UniqueValues([]string{"", "", ""}))
}

func TestSanitizeInteger(t *testing.T) {
	assert.Equal(t, "12000", calculator.SanitizeInteger("12,000원"))
	assert.Equal(t, "", calculator.SanitizeInteger("abc"))
}

func TestValidDecimal(t *testing.T) {
	assert.True(t, calculator.ValidDecimal(""))
	assert.True(t, calculator.ValidDecimal("12"))
	assert.True(t, calculator.ValidDecimal("12.345"))
	assert.True(t, calculator.ValidDecimal("."))
	assert.False(t, calculator.ValidDecimal("12.3456"))
	assert.False(t, calculator.ValidDecimal("1,2"))
	assert.False(t, calculator.ValidDecimal("-5"))
}
