package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{"dot decimal", "1234.56", "1234.56", true},
		{"comma decimal", "1234,56", "1234.56", true},
		{"dot thousands comma decimal", "1.234,56", "1234.56", true},
		{"comma thousands dot decimal", "1,234.56", "1234.56", true},
		{"currency marker", "Bs. 500,00", "500", true},
		{"dollar marker", "$120.50", "120.5", true},
		{"surrounding spaces", "  80.00 ", "80", true},
		{"negative", "-45.10", "-45.1", true},
		{"integer", "250", "250", true},
		{"letters", "abc", "0", false},
		{"empty", "", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAmount(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)),
				"expected %s, got %s", tt.expected, got)
		})
	}
}

func TestTruncateReference(t *testing.T) {
	assert.Equal(t, "654321", TruncateReference("XXXX654321", 6))
	assert.Equal(t, "654321", TruncateReference("654321", 6))
	assert.Equal(t, "4321", TruncateReference("4321", 6))
	assert.Equal(t, "", TruncateReference("", 6))
}

func TestSourceRecordID(t *testing.T) {
	assert.Equal(t, "42", SourceRecordID("expense:42"))
	assert.Equal(t, "7", SourceRecordID("pettycash:7"))
	assert.Equal(t, "plain", SourceRecordID("plain"))
}

func TestAccountCloseEnd(t *testing.T) {
	c := AccountClose{EndBalance: "270.00"}
	assert.True(t, c.End().Equal(decimal.RequireFromString("270")))

	// Unreadable stored balances read as zero.
	broken := AccountClose{EndBalance: "garbage"}
	assert.True(t, broken.End().IsZero())
}
