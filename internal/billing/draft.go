package billing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/diewo77/gst-invoices/internal/models"
	"github.com/shopspring/decimal"
)

// Field names an editable column of a draft item.
type Field string

const (
	FieldDescription Field = "description"
	FieldQuantity    Field = "quantity"
	FieldRate        Field = "rate"
	FieldGSTRate     Field = "gstRate"
)

// ParseField accepts both the camelCase and snake_case spelling of a field.
func ParseField(s string) (Field, error) {
	switch strings.TrimSpace(s) {
	case "description":
		return FieldDescription, nil
	case "quantity":
		return FieldQuantity, nil
	case "rate":
		return FieldRate, nil
	case "gstRate", "gst_rate":
		return FieldGSTRate, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// Draft is an invoice under construction. It is not safe for concurrent use;
// Registry serializes access when drafts are shared.
type Draft struct {
	items      []models.InvoiceItem
	lastItemID int
	customerID int64
	dueDate    *time.Time
	supply     models.SupplyType
	finalized  bool
}

// NewDraft returns an intra-state draft holding one blank item.
func NewDraft() *Draft {
	d := &Draft{supply: models.SupplyIntraState}
	d.items = append(d.items, d.newItem())
	return d
}

func (d *Draft) newItem() models.InvoiceItem {
	d.lastItemID++
	return models.InvoiceItem{
		ID:       strconv.Itoa(d.lastItemID),
		Quantity: decimal.NewFromInt(1),
		Rate:     decimal.Zero,
		GSTRate:  DefaultGSTRate,
		Amount:   decimal.Zero,
	}
}

// AddItem appends a blank item (quantity 1, rate 0, GST 18%) and returns it.
func (d *Draft) AddItem() (models.InvoiceItem, error) {
	if d.finalized {
		return models.InvoiceItem{}, ErrFinalized
	}
	item := d.newItem()
	d.items = append(d.items, item)
	return item, nil
}

// RemoveItem drops the item with the given id. Unknown ids are ignored.
func (d *Draft) RemoveItem(id string) error {
	if d.finalized {
		return ErrFinalized
	}
	for i := range d.items {
		if d.items[i].ID == id {
			d.items = append(d.items[:i], d.items[i+1:]...)
			return nil
		}
	}
	return nil
}

// UpdateItem overwrites one field of one item. Changing quantity or rate
// recomputes that item's amount. Unknown ids are ignored.
//
// Numeric fields must parse as decimals that fit the stored column: at most
// 3 decimal places for quantity, 4 for rate and 2 for GST rate. An empty
// value counts as zero. Sign is not checked here, Finalize does that.
func (d *Draft) UpdateItem(id string, field Field, value string) error {
	if d.finalized {
		return ErrFinalized
	}
	switch field {
	case FieldDescription, FieldQuantity, FieldRate, FieldGSTRate:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	idx := d.indexOf(id)
	if idx < 0 {
		return nil
	}
	item := &d.items[idx]
	if field == FieldDescription {
		item.Description = value
		return nil
	}
	n, err := parseNumber(field, value)
	if err != nil {
		return fmt.Errorf("%w: %s=%q: %v", ErrInvalidNumber, field, value, err)
	}
	switch field {
	case FieldQuantity:
		item.Quantity = n
	case FieldRate:
		item.Rate = n
	case FieldGSTRate:
		item.GSTRate = n
		return nil
	}
	item.Amount = item.Quantity.Mul(item.Rate)
	return nil
}

// numberLimit is the scale and the count of integer digits a column holds.
type numberLimit struct {
	scale     int32
	intDigits int32
}

var numberLimits = map[Field]numberLimit{
	FieldQuantity: {scale: 3, intDigits: 9},
	FieldRate:     {scale: 4, intDigits: 14},
	FieldGSTRate:  {scale: 2, intDigits: 3},
}

const maxNumberLen = 32

func parseNumber(field Field, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	if len(s) > maxNumberLen {
		return decimal.Zero, fmt.Errorf("longer than %d characters", maxNumberLen)
	}
	n, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if n.IsZero() {
		return decimal.Zero, nil
	}
	lim := numberLimits[field]
	// The exponent is checked before anything rescales the coefficient.
	if exp := n.Exponent(); exp >= lim.intDigits || exp < -2*maxNumberLen {
		return decimal.Zero, fmt.Errorf("exponent %d out of range", exp)
	}
	if !n.Round(lim.scale).Equal(n) {
		return decimal.Zero, fmt.Errorf("more than %d decimal places", lim.scale)
	}
	if n.Abs().GreaterThanOrEqual(decimal.New(1, lim.intDigits)) {
		return decimal.Zero, fmt.Errorf("more than %d integer digits", lim.intDigits)
	}
	return n, nil
}

func (d *Draft) indexOf(id string) int {
	for i := range d.items {
		if d.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Item returns a copy of the item with the given id.
func (d *Draft) Item(id string) (models.InvoiceItem, bool) {
	if idx := d.indexOf(id); idx >= 0 {
		return d.items[idx], true
	}
	return models.InvoiceItem{}, false
}

// Items returns a copy of the item sequence in display order.
func (d *Draft) Items() []models.InvoiceItem {
	out := make([]models.InvoiceItem, len(d.items))
	copy(out, d.items)
	return out
}

// SelectCustomer sets the customer the invoice will be raised against.
// Zero clears the selection.
func (d *Draft) SelectCustomer(id int64) error {
	if d.finalized {
		return ErrFinalized
	}
	d.customerID = id
	return nil
}

// SetDueDate sets or, with nil, clears the due date.
func (d *Draft) SetDueDate(t *time.Time) error {
	if d.finalized {
		return ErrFinalized
	}
	if t == nil {
		d.dueDate = nil
		return nil
	}
	due := *t
	d.dueDate = &due
	return nil
}

// SetSupplyType switches between the CGST/SGST and IGST split.
func (d *Draft) SetSupplyType(s models.SupplyType) error {
	if d.finalized {
		return ErrFinalized
	}
	if !s.Valid() {
		return fmt.Errorf("invalid supply type %q", s)
	}
	d.supply = s
	return nil
}

func (d *Draft) CustomerID() int64             { return d.customerID }
func (d *Draft) SupplyType() models.SupplyType { return d.supply }
func (d *Draft) Finalized() bool               { return d.finalized }

// Totals recomputes the document totals from the current items.
func (d *Draft) Totals() Totals {
	return ComputeTotals(d.items, d.supply)
}

// CanFinalize reports whether a customer is selected and there is at least one item.
func (d *Draft) CanFinalize() bool {
	return !d.finalized && d.customerID != 0 && len(d.items) > 0
}

// Snapshot is a read-only view of a draft for callers outside the package.
type Snapshot struct {
	CustomerID  int64                `json:"customer_id,string,omitempty"`
	DueDate     *time.Time           `json:"due_date,omitempty"`
	SupplyType  models.SupplyType    `json:"supply_type"`
	Items       []models.InvoiceItem `json:"items"`
	Totals      Totals               `json:"totals"`
	CanFinalize bool                 `json:"can_finalize"`
}

func (d *Draft) Snapshot() Snapshot {
	var due *time.Time
	if d.dueDate != nil {
		t := *d.dueDate
		due = &t
	}
	return Snapshot{
		CustomerID:  d.customerID,
		DueDate:     due,
		SupplyType:  d.supply,
		Items:       d.Items(),
		Totals:      d.Totals(),
		CanFinalize: d.CanFinalize(),
	}
}
