// Package export renders finalized invoices as documents.
package export

import (
	"bytes"

	"github.com/diewo77/gst-invoices/internal/format"
	"github.com/diewo77/gst-invoices/internal/models"
	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Seller is the business printed in the invoice header.
type Seller struct {
	Name  string
	GSTIN string
}

const dateLayout = "02 Jan 2006"

// money prints an amount for the PDF core fonts, which lack the rupee sign.
func money(d decimal.Decimal) string {
	return "Rs. " + d.StringFixed(2)
}

// InvoicePDF renders one invoice as an A4 tax invoice.
func InvoicePDF(inv models.Invoice, customer models.Customer, seller Seller) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Tax Invoice "+inv.InvoiceNumber, true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "TAX INVOICE", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 6, tr(seller.Name))
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	if seller.GSTIN != "" {
		pdf.Cell(0, 5, "GSTIN: "+seller.GSTIN)
		pdf.Ln(5)
	}
	pdf.Ln(3)

	pdf.Cell(95, 5, "Invoice Number: "+inv.InvoiceNumber)
	pdf.Cell(0, 5, "Invoice Date: "+inv.CreatedAt.Format(dateLayout))
	pdf.Ln(5)
	due := "-"
	if inv.DueDate != nil {
		due = inv.DueDate.Format(dateLayout)
	}
	pdf.Cell(95, 5, "Status: "+string(inv.Status))
	pdf.Cell(0, 5, "Due Date: "+due)
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 5, "Bill To")
	pdf.Ln(5)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 5, tr(customer.Name))
	pdf.Ln(5)
	if customer.GSTIN != "" {
		pdf.Cell(0, 5, "GSTIN: "+customer.GSTIN)
		pdf.Ln(5)
	}
	if customer.Address != "" {
		pdf.MultiCell(0, 5, tr(customer.Address), "", "L", false)
	}
	pdf.Ln(4)

	widths := []float64{80, 20, 30, 20, 40}
	headers := []string{"Description", "Qty", "Rate", "GST", "Amount"}
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(widths[i], 7, h, "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, item := range inv.Items {
		pdf.CellFormat(widths[0], 6, tr(item.Description), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, item.Quantity.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 6, item.Rate.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, format.Percent(item.GSTRate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, item.Amount.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(3)

	totals := [][2]string{{"Sub Total", money(inv.SubTotal)}}
	if inv.SupplyType == models.SupplyInterState {
		totals = append(totals, [2]string{"IGST", money(inv.IGST)})
	} else {
		totals = append(totals,
			[2]string{"CGST", money(inv.CGST)},
			[2]string{"SGST", money(inv.SGST)})
	}
	for _, row := range totals {
		pdf.CellFormat(150, 6, row[0], "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, row[1], "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(150, 8, "Total", "T", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, money(inv.Total), "T", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrapf(err, "render pdf %s", inv.InvoiceNumber)
	}
	return buf.Bytes(), nil
}
