package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/diewo77/gst-invoices/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleInvoice(supply models.SupplyType) models.Invoice {
	d := decimal.RequireFromString
	due := time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)
	inv := models.Invoice{
		ID:            1,
		InvoiceNumber: "INV-2024-0001",
		CustomerID:    9,
		Items: []models.InvoiceItem{
			{ID: "1", Description: "Design", Quantity: d("2"), Rate: d("50"), GSTRate: d("5"), Amount: d("100")},
			{ID: "2", Description: "Build", Quantity: d("1"), Rate: d("200"), GSTRate: d("18"), Amount: d("200")},
		},
		SubTotal:   d("300"),
		CGST:       d("20.5"),
		SGST:       d("20.5"),
		IGST:       decimal.Zero,
		Total:      d("341"),
		SupplyType: supply,
		Status:     models.InvoiceStatusPending,
		DueDate:    &due,
		CreatedAt:  time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}
	if supply == models.SupplyInterState {
		inv.CGST, inv.SGST, inv.IGST = decimal.Zero, decimal.Zero, d("41")
	}
	return inv
}

func TestInvoicePDF(t *testing.T) {
	customer := models.Customer{ID: 9, Name: "Tech Solutions Ltd", GSTIN: "27AABCT3518Q1Z2", Address: "123 Tech Park, Mumbai"}
	for _, supply := range []models.SupplyType{models.SupplyIntraState, models.SupplyInterState} {
		out, err := InvoicePDF(sampleInvoice(supply), customer, Seller{Name: "My Business", GSTIN: "27AAPFU0939F1ZV"})
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "not a pdf")
	}
}

func TestInvoicesXLSX(t *testing.T) {
	out, err := InvoicesXLSX([]models.Invoice{sampleInvoice(models.SupplyIntraState)}, map[int64]string{9: "Tech Solutions Ltd"})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(invoiceSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Invoice Number", header)

	rows, err := f.GetRows(invoiceSheet, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "INV-2024-0001", rows[1][0])
	assert.Equal(t, "Tech Solutions Ltd", rows[1][2])
	assert.Equal(t, "pending", rows[1][3])
	assert.Equal(t, "341", rows[1][8])
	assert.Equal(t, "2024-04-15", rows[1][9])
}

func TestInvoicesXLSX_Empty(t *testing.T) {
	out, err := InvoicesXLSX(nil, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
