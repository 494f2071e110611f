package billing

import (
	"github.com/diewo77/gst-invoices/internal/models"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Totals are the document-level amounts derived from an item sequence.
type Totals struct {
	SubTotal  decimal.Decimal `json:"sub_total"`
	GSTAmount decimal.Decimal `json:"gst_amount"`
	CGST      decimal.Decimal `json:"cgst"`
	SGST      decimal.Decimal `json:"sgst"`
	IGST      decimal.Decimal `json:"igst"`
	Total     decimal.Decimal `json:"total"`
}

// ComputeTotals derives subtotal, GST split and total from items alone.
// An empty sequence yields all zeros.
func ComputeTotals(items []models.InvoiceItem, supply models.SupplyType) Totals {
	var t Totals
	for i := range items {
		t.SubTotal = t.SubTotal.Add(items[i].Amount)
		t.GSTAmount = t.GSTAmount.Add(items[i].GSTAmount())
	}
	if supply == models.SupplyInterState {
		t.IGST = t.GSTAmount
	} else {
		t.CGST = t.GSTAmount.Div(two)
		t.SGST = t.CGST
	}
	t.Total = t.SubTotal.Add(t.GSTAmount)
	return t
}
