package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the payment status of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// Valid reports whether s is one of the known statuses.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusPaid, InvoiceStatusPending, InvoiceStatusOverdue:
		return true
	}
	return false
}

// SupplyType decides how GST is split between central, state and integrated tax.
type SupplyType string

const (
	// SupplyIntraState splits GST equally into CGST and SGST.
	SupplyIntraState SupplyType = "intra"
	// SupplyInterState routes the whole GST amount to IGST.
	SupplyInterState SupplyType = "inter"
)

// Valid reports whether s is a known supply type.
func (s SupplyType) Valid() bool {
	return s == SupplyIntraState || s == SupplyInterState
}

// Invoice is a finalized GST invoice. Once created it is never edited.
type Invoice struct {
	ID            int64         `gorm:"primaryKey;autoIncrement:false" json:"id,string"`
	InvoiceNumber string        `gorm:"size:50;uniqueIndex;not null" json:"invoice_number"`
	CustomerID    int64         `gorm:"index;not null" json:"customer_id,string"`
	Items         []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items"`

	SubTotal decimal.Decimal `gorm:"type:numeric;not null" json:"sub_total"`
	CGST     decimal.Decimal `gorm:"column:cgst;type:numeric;not null" json:"cgst"`
	SGST     decimal.Decimal `gorm:"column:sgst;type:numeric;not null" json:"sgst"`
	IGST     decimal.Decimal `gorm:"column:igst;type:numeric;not null" json:"igst"`
	Total    decimal.Decimal `gorm:"type:numeric;not null" json:"total"`

	SupplyType SupplyType    `gorm:"size:10;not null;default:'intra'" json:"supply_type"`
	Status     InvoiceStatus `gorm:"size:20;index;not null;default:'pending'" json:"status"`
	DueDate    *time.Time    `json:"due_date,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}

// GSTAmount returns the total tax across all three components.
func (i *Invoice) GSTAmount() decimal.Decimal {
	return i.CGST.Add(i.SGST).Add(i.IGST)
}

// InvoiceItem is one line of an invoice. Amount is always Quantity * Rate;
// GST is applied at the document level, never folded into Amount.
// Derived amounts use unconstrained numeric columns so they are stored at
// full scale.
type InvoiceItem struct {
	InvoiceID int64 `gorm:"primaryKey;autoIncrement:false" json:"-"`
	// ID is unique among the items of one invoice only.
	ID       string `gorm:"primaryKey;column:item_id;size:20" json:"id"`
	Position int    `gorm:"not null;default:0" json:"-"`

	Description string          `gorm:"size:500;not null" json:"description"`
	Quantity    decimal.Decimal `gorm:"type:numeric(12,3);not null" json:"quantity"`
	Rate        decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"rate"`
	GSTRate     decimal.Decimal `gorm:"column:gst_rate;type:numeric(5,2);not null" json:"gst_rate"`
	Amount      decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
}

// GSTAmount returns the tax owed on this line at its GST rate.
func (item *InvoiceItem) GSTAmount() decimal.Decimal {
	return item.Amount.Mul(item.GSTRate).Div(decimal.NewFromInt(100))
}

// InvoiceSequence tracks the last invoice number handed out for a year.
type InvoiceSequence struct {
	Year      int   `gorm:"primaryKey;autoIncrement:false"`
	LastValue int64 `gorm:"not null;default:0"`
	UpdatedAt time.Time
}
