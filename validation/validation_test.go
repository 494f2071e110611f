package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRequired(t *testing.T) {
	v := make(Violations)
	Required("name", "  ", v)
	Required("email", "a@b.in", v)
	assert.Equal(t, Violations{"name": "required"}, v)
	assert.False(t, v.Empty())
}

func TestEmail(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"billing@acme.in", true},
		{"", true},
		{"not-an-email", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			v := make(Violations)
			Email("email", tt.value, v)
			assert.Equal(t, tt.want, v.Empty())
		})
	}
}

func TestDecimalValidators(t *testing.T) {
	v := make(Violations)
	PositiveDecimal("qty_zero", decimal.Zero, v)
	PositiveDecimal("qty_ok", decimal.NewFromInt(2), v)
	NonNegativeDecimal("rate_neg", decimal.NewFromInt(-1), v)
	NonNegativeDecimal("rate_zero", decimal.Zero, v)
	assert.Equal(t, Violations{
		"qty_zero": "must_be_positive",
		"rate_neg": "must_not_be_negative",
	}, v)
}
