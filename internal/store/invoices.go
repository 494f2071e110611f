package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/diewo77/gst-invoices/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InvoiceFilter narrows ListInvoices. Zero values match everything.
type InvoiceFilter struct {
	Status     models.InvoiceStatus
	CustomerID int64
	// Search matches the invoice number or the customer name.
	Search string
}

// CreateInvoice stores a finalized invoice with its items in one transaction.
// Its signature matches billing.AcceptFunc.
func (s *Store) CreateInvoice(ctx context.Context, inv models.Invoice) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Customer{}).Where("id = ?", inv.CustomerID).Count(&n).Error; err != nil {
			return translate(err, "check customer")
		}
		if n == 0 {
			return translate(gorm.ErrRecordNotFound, fmt.Sprintf("customer %d", inv.CustomerID))
		}
		return translate(tx.Create(&inv).Error, "create invoice")
	})
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}

// GetInvoice loads an invoice and its items in display order.
func (s *Store) GetInvoice(ctx context.Context, id int64) (models.Invoice, error) {
	var inv models.Invoice
	err := s.db.WithContext(ctx).Preload("Items", orderedItems).First(&inv, "id = ?", id).Error
	if err != nil {
		return models.Invoice{}, translate(err, "get invoice")
	}
	return inv, nil
}

// ListInvoices returns matching invoices, newest first.
func (s *Store) ListInvoices(ctx context.Context, f InvoiceFilter) ([]models.Invoice, error) {
	q := s.db.WithContext(ctx).Model(&models.Invoice{}).Preload("Items", orderedItems)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.CustomerID != 0 {
		q = q.Where("customer_id = ?", f.CustomerID)
	}
	if search := strings.ToLower(strings.TrimSpace(f.Search)); search != "" {
		p := likePattern(search)
		names := s.db.WithContext(ctx).Model(&models.Customer{}).Select("id").Where(like("LOWER(name)"), p)
		q = q.Where(like("LOWER(invoice_number)")+" OR customer_id IN (?)", p, names)
	}
	var out []models.Invoice
	if err := q.Order("created_at DESC").Order("id DESC").Find(&out).Error; err != nil {
		return nil, translate(err, "list invoices")
	}
	return out, nil
}

// NextInvoiceNumber increments the sequence for year and formats it as
// INV-YYYY-NNNN. Numbers are never handed out twice, even if the invoice
// they were allocated for is not stored.
func (s *Store) NextInvoiceNumber(ctx context.Context, year int) (string, error) {
	var seq models.InvoiceSequence
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.InvoiceSequence{Year: year}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.InvoiceSequence{}).Where("year = ?", year).
			UpdateColumn("last_value", gorm.Expr("last_value + ?", 1)).Error; err != nil {
			return err
		}
		return tx.First(&seq, "year = ?", year).Error
	})
	if err != nil {
		return "", translate(err, "next invoice number")
	}
	return fmt.Sprintf("INV-%04d-%04d", year, seq.LastValue), nil
}

// StatusTotal aggregates the invoices in one status.
type StatusTotal struct {
	Count int64           `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// Summary is the dashboard view over all invoices.
type Summary struct {
	Invoices        int64                                `json:"invoices"`
	Revenue         decimal.Decimal                      `json:"revenue"`
	ByStatus        map[models.InvoiceStatus]StatusTotal `json:"by_status"`
	ActiveCustomers int64                                `json:"active_customers"`
	Customers       int64                                `json:"customers"`
}

// Summary sums invoice totals per status. Revenue counts every invoice.
// Amounts are added as decimals in Go rather than in SQL.
func (s *Store) Summary(ctx context.Context) (Summary, error) {
	sum := Summary{
		Revenue: decimal.Zero,
		ByStatus: map[models.InvoiceStatus]StatusTotal{
			models.InvoiceStatusPaid:    {Total: decimal.Zero},
			models.InvoiceStatusPending: {Total: decimal.Zero},
			models.InvoiceStatusOverdue: {Total: decimal.Zero},
		},
	}
	var rows []struct {
		Status     models.InvoiceStatus
		CustomerID int64
		Total      decimal.Decimal
	}
	db := s.db.WithContext(ctx)
	if err := db.Model(&models.Invoice{}).Select("status", "customer_id", "total").Scan(&rows).Error; err != nil {
		return Summary{}, translate(err, "summary")
	}
	active := make(map[int64]struct{})
	for _, r := range rows {
		st := sum.ByStatus[r.Status]
		st.Count++
		st.Total = st.Total.Add(r.Total)
		sum.ByStatus[r.Status] = st
		sum.Revenue = sum.Revenue.Add(r.Total)
		active[r.CustomerID] = struct{}{}
	}
	sum.Invoices = int64(len(rows))
	sum.ActiveCustomers = int64(len(active))
	if err := db.Model(&models.Customer{}).Count(&sum.Customers).Error; err != nil {
		return Summary{}, translate(err, "count customers")
	}
	return sum, nil
}
