package billing

import (
	"context"
	"time"

	"github.com/diewo77/gst-invoices/internal/models"
	"github.com/diewo77/gst-invoices/validation"
	"github.com/pkg/errors"
)

// InvoiceNumberer hands out display numbers for finalized invoices.
type InvoiceNumberer interface {
	NextInvoiceNumber(ctx context.Context, year int) (string, error)
}

// AcceptFunc receives the finalized invoice. If it fails the draft stays open.
type AcceptFunc func(ctx context.Context, inv models.Invoice) error

// Finalizer bundles the collaborators Finalize needs to stamp an invoice.
type Finalizer struct {
	IDs     IDGenerator
	Numbers InvoiceNumberer
	Now     func() time.Time
}

func (f Finalizer) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

// Validate checks the fields required at save time: a description on every
// item, a positive quantity and non-negative rate and GST rate.
func (d *Draft) Validate() validation.Violations {
	v := make(validation.Violations)
	for _, item := range d.items {
		prefix := "items." + item.ID + "."
		validation.Required(prefix+"description", item.Description, v)
		validation.PositiveDecimal(prefix+"quantity", item.Quantity, v)
		validation.NonNegativeDecimal(prefix+"rate", item.Rate, v)
		validation.NonNegativeDecimal(prefix+"gst_rate", item.GSTRate, v)
	}
	return v
}

// Finalize turns the draft into an immutable pending invoice and passes it
// to accept. A draft without customer or items yields ErrCustomerRequired or
// ErrNoItems and nothing is emitted.
func (d *Draft) Finalize(ctx context.Context, f Finalizer, accept AcceptFunc) (models.Invoice, error) {
	if d.finalized {
		return models.Invoice{}, ErrFinalized
	}
	if d.customerID == 0 {
		return models.Invoice{}, ErrCustomerRequired
	}
	if len(d.items) == 0 {
		return models.Invoice{}, ErrNoItems
	}
	if v := d.Validate(); !v.Empty() {
		return models.Invoice{}, &ValidationError{Violations: v}
	}

	now := f.now()
	number, err := f.Numbers.NextInvoiceNumber(ctx, now.Year())
	if err != nil {
		return models.Invoice{}, errors.Wrap(err, "allocate invoice number")
	}
	inv := d.build(f.IDs.NextID(), number, now)
	if accept != nil {
		if err := accept(ctx, inv); err != nil {
			return models.Invoice{}, errors.Wrap(err, "accept invoice")
		}
	}
	d.finalized = true
	return inv, nil
}

func (d *Draft) build(id int64, number string, now time.Time) models.Invoice {
	totals := d.Totals()
	items := d.Items()
	for i := range items {
		items[i].InvoiceID = id
		items[i].Position = i
	}
	var due *time.Time
	if d.dueDate != nil {
		t := *d.dueDate
		due = &t
	}
	return models.Invoice{
		ID:            id,
		InvoiceNumber: number,
		CustomerID:    d.customerID,
		Items:         items,
		SubTotal:      totals.SubTotal,
		CGST:          totals.CGST,
		SGST:          totals.SGST,
		IGST:          totals.IGST,
		Total:         totals.Total,
		SupplyType:    d.supply,
		Status:        models.InvoiceStatusPending,
		DueDate:       due,
		CreatedAt:     now,
	}
}
