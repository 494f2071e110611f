package billing

import (
	"strings"

	"github.com/diewo77/gst-invoices/internal/models"
	"github.com/shopspring/decimal"
)

// DefaultGSTRate is applied to newly added items.
var DefaultGSTRate = decimal.NewFromInt(18)

// StandardGSTRates lists the slab rates offered to users. Other rates are
// accepted; the list is a convention, not a closed set.
var StandardGSTRates = []decimal.Decimal{
	decimal.NewFromInt(0),
	decimal.NewFromInt(5),
	decimal.NewFromInt(12),
	decimal.NewFromInt(18),
	decimal.NewFromInt(28),
}

// IsStandardGSTRate reports whether rate is one of StandardGSTRates.
func IsStandardGSTRate(rate decimal.Decimal) bool {
	for _, r := range StandardGSTRates {
		if r.Equal(rate) {
			return true
		}
	}
	return false
}

// StateCode returns the two-digit state code that prefixes a GSTIN.
// The rest of the GSTIN is not inspected.
func StateCode(gstin string) (string, bool) {
	g := strings.TrimSpace(gstin)
	if len(g) < 2 {
		return "", false
	}
	code := g[:2]
	if code[0] < '0' || code[0] > '9' || code[1] < '0' || code[1] > '9' {
		return "", false
	}
	return code, true
}

// SupplyTypeFor picks inter-state supply when both GSTINs carry state codes
// and the codes differ. Anything it cannot decide is intra-state.
func SupplyTypeFor(supplierGSTIN, customerGSTIN string) models.SupplyType {
	s, ok1 := StateCode(supplierGSTIN)
	c, ok2 := StateCode(customerGSTIN)
	if ok1 && ok2 && s != c {
		return models.SupplyInterState
	}
	return models.SupplyIntraState
}
