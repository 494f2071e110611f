package export

import (
	"github.com/diewo77/gst-invoices/internal/models"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const invoiceSheet = "Invoices"

var invoiceHeaders = []string{
	"Invoice Number",
	"Date",
	"Customer",
	"Status",
	"Sub Total",
	"CGST",
	"SGST",
	"IGST",
	"Total",
	"Due Date",
}

// InvoicesXLSX returns a workbook with one row per invoice. customerNames
// maps customer ids to display names; unknown ids print as blank.
func InvoicesXLSX(invoices []models.Invoice, customerNames map[int64]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", invoiceSheet); err != nil {
		return nil, errors.Wrap(err, "rename sheet")
	}
	for i, h := range invoiceHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(invoiceSheet, cell, h)
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetRowStyle(invoiceSheet, 1, 1, style)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, errors.Wrap(err, "money style")
	}

	for i, inv := range invoices {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(invoiceSheet, cell, v)
		}
		write(1, inv.InvoiceNumber)
		write(2, inv.CreatedAt.Format("2006-01-02"))
		write(3, customerNames[inv.CustomerID])
		write(4, string(inv.Status))
		write(5, inv.SubTotal.InexactFloat64())
		write(6, inv.CGST.InexactFloat64())
		write(7, inv.SGST.InexactFloat64())
		write(8, inv.IGST.InexactFloat64())
		write(9, inv.Total.InexactFloat64())
		if inv.DueDate != nil {
			write(10, inv.DueDate.Format("2006-01-02"))
		}
	}
	if n := len(invoices); n > 0 {
		last, _ := excelize.CoordinatesToCellName(9, n+1)
		_ = f.SetCellStyle(invoiceSheet, "E2", last, money)
	}

	_ = f.SetColWidth(invoiceSheet, "A", "A", 16)
	_ = f.SetColWidth(invoiceSheet, "B", "B", 12)
	_ = f.SetColWidth(invoiceSheet, "C", "C", 28)
	_ = f.SetColWidth(invoiceSheet, "E", "I", 14)
	_ = f.SetColWidth(invoiceSheet, "J", "J", 12)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "xlsx write")
	}
	return buf.Bytes(), nil
}
