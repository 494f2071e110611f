package billing

import (
	"testing"

	"github.com/diewo77/gst-invoices/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func line(id, qty, rate, gst string) models.InvoiceItem {
	q, r := d(qty), d(rate)
	return models.InvoiceItem{ID: id, Quantity: q, Rate: r, GSTRate: d(gst), Amount: q.Mul(r)}
}

func assertDec(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "%s = %s, want %s", field, got, want)
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name                                   string
		items                                  []models.InvoiceItem
		subTotal, gst, cgst, sgst, igst, total string
	}{
		{
			name:     "empty",
			subTotal: "0", gst: "0", cgst: "0", sgst: "0", igst: "0", total: "0",
		},
		{
			name:     "single item at 18%",
			items:    []models.InvoiceItem{line("1", "1", "100", "18")},
			subTotal: "100", gst: "18", cgst: "9", sgst: "9", igst: "0", total: "118",
		},
		{
			name: "mixed slabs",
			items: []models.InvoiceItem{
				line("1", "2", "50", "5"),
				line("2", "1", "200", "18"),
			},
			subTotal: "300", gst: "41", cgst: "20.5", sgst: "20.5", igst: "0", total: "341",
		},
		{
			name: "fractional quantities and zero rate slab",
			items: []models.InvoiceItem{
				line("1", "2.5", "40", "12"),
				line("2", "3", "10", "0"),
			},
			subTotal: "130", gst: "12", cgst: "6", sgst: "6", igst: "0", total: "142",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.items, models.SupplyIntraState)
			assertDec(t, tt.subTotal, got.SubTotal, "SubTotal")
			assertDec(t, tt.gst, got.GSTAmount, "GSTAmount")
			assertDec(t, tt.cgst, got.CGST, "CGST")
			assertDec(t, tt.sgst, got.SGST, "SGST")
			assertDec(t, tt.igst, got.IGST, "IGST")
			assertDec(t, tt.total, got.Total, "Total")
			assert.True(t, got.Total.Equal(got.SubTotal.Add(got.CGST).Add(got.SGST).Add(got.IGST)))
		})
	}
}

func TestComputeTotals_InterState(t *testing.T) {
	items := []models.InvoiceItem{line("1", "2", "50", "5"), line("2", "1", "200", "18")}
	got := ComputeTotals(items, models.SupplyInterState)
	assertDec(t, "41", got.IGST, "IGST")
	assertDec(t, "0", got.CGST, "CGST")
	assertDec(t, "0", got.SGST, "SGST")
	assertDec(t, "341", got.Total, "Total")
}

func TestComputeTotals_Idempotent(t *testing.T) {
	items := []models.InvoiceItem{line("1", "7", "13.37", "28")}
	first := ComputeTotals(items, models.SupplyIntraState)
	second := ComputeTotals(items, models.SupplyIntraState)
	assert.True(t, first.Total.Equal(second.Total))
	assert.True(t, first.CGST.Equal(second.CGST))
}

func TestSupplyTypeFor(t *testing.T) {
	tests := []struct {
		name               string
		supplier, customer string
		want               models.SupplyType
	}{
		{"same state", "27AAPFU0939F1ZV", "27AABCU9603R1ZM", models.SupplyIntraState},
		{"different state", "27AAPFU0939F1ZV", "29AABCU9603R1ZM", models.SupplyInterState},
		{"missing customer gstin", "27AAPFU0939F1ZV", "", models.SupplyIntraState},
		{"non numeric prefix", "XXAAPFU0939F1ZV", "29AABCU9603R1ZM", models.SupplyIntraState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SupplyTypeFor(tt.supplier, tt.customer))
		})
	}
}

func TestIsStandardGSTRate(t *testing.T) {
	assert.True(t, IsStandardGSTRate(d("12")))
	assert.True(t, IsStandardGSTRate(d("28.00")))
	assert.False(t, IsStandardGSTRate(d("3")))
}
