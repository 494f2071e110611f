package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	got := Currency(decimal.RequireFromString("1234.5"))
	assert.Contains(t, got, "₹")
	assert.Contains(t, got, "1,234")

	assert.Contains(t, Currency(decimal.Zero), "0")
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "18%", Percent(decimal.NewFromInt(18)))
	assert.Equal(t, "12.5%", Percent(decimal.RequireFromString("12.50")))
}
