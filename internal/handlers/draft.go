package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/diewo77/gst-invoices/httpx"
	"github.com/diewo77/gst-invoices/internal/billing"
	"github.com/diewo77/gst-invoices/internal/models"
	"github.com/diewo77/gst-invoices/internal/store"
	"go.uber.org/zap"
)

// DraftHandler exposes the invoice drafts held in memory by a billing.Registry.
type DraftHandler struct {
	drafts        *billing.Registry
	store         *store.Store
	finalizer     billing.Finalizer
	supplierGSTIN string
}

func NewDraftHandler(drafts *billing.Registry, s *store.Store, f billing.Finalizer, supplierGSTIN string) *DraftHandler {
	return &DraftHandler{drafts: drafts, store: s, finalizer: f, supplierGSTIN: supplierGSTIN}
}

type draftResponse struct {
	ID int64 `json:"id,string"`
	billing.Snapshot
}

type updateItemRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// updateDraftRequest carries the header fields; absent fields are left alone.
type updateDraftRequest struct {
	CustomerID *parseID           `json:"customer_id"`
	DueDate    *string            `json:"due_date"`
	SupplyType *models.SupplyType `json:"supply_type"`
}

func (h *DraftHandler) Create(w http.ResponseWriter, r *http.Request) {
	id := h.drafts.Create()
	h.respond(w, r, http.StatusCreated, id)
}

func (h *DraftHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	h.respond(w, r, http.StatusOK, id)
}

// Discard throws a draft away without creating an invoice.
func (h *DraftHandler) Discard(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if !h.drafts.Discard(id) {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *DraftHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	err := h.drafts.With(id, func(d *billing.Draft) error {
		_, err := d.AddItem()
		return err
	})
	if err != nil {
		writeDraftError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusCreated, id)
}

// UpdateItem sets one field of one item from {"field": ..., "value": ...}.
func (h *DraftHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var req updateItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	field, err := billing.ParseField(req.Field)
	if err != nil {
		writeDraftError(w, r, err)
		return
	}
	itemID := chiParam(r, "itemID")
	err = h.drafts.With(id, func(d *billing.Draft) error {
		return d.UpdateItem(itemID, field, req.Value)
	})
	if err != nil {
		writeDraftError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, id)
}

func (h *DraftHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	itemID := chiParam(r, "itemID")
	if err := h.drafts.With(id, func(d *billing.Draft) error { return d.RemoveItem(itemID) }); err != nil {
		writeDraftError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, id)
}

// Update sets the customer, due date and supply type. Choosing a customer
// without an explicit supply type derives it from the two GSTINs.
func (h *DraftHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var req updateDraftRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}

	var customer *models.Customer
	if req.CustomerID != nil && *req.CustomerID != 0 {
		c, err := h.store.GetCustomer(r.Context(), int64(*req.CustomerID))
		if errors.Is(err, store.ErrNotFound) {
			httpx.JSONError(w, http.StatusUnprocessableEntity, "validation_failed", map[string]string{"customer_id": "not_found"})
			return
		}
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		customer = &c
	}
	var due *time.Time
	if req.DueDate != nil && strings.TrimSpace(*req.DueDate) != "" {
		t, err := parseDate(*req.DueDate)
		if err != nil {
			httpx.JSONError(w, http.StatusUnprocessableEntity, "validation_failed", map[string]string{"due_date": "invalid_date"})
			return
		}
		due = &t
	}
	if req.SupplyType != nil && !req.SupplyType.Valid() {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "validation_failed", map[string]string{"supply_type": "invalid"})
		return
	}

	err := h.drafts.With(id, func(d *billing.Draft) error {
		if req.CustomerID != nil {
			if err := d.SelectCustomer(int64(*req.CustomerID)); err != nil {
				return err
			}
		}
		if req.DueDate != nil {
			if err := d.SetDueDate(due); err != nil {
				return err
			}
		}
		switch {
		case req.SupplyType != nil:
			return d.SetSupplyType(*req.SupplyType)
		case customer != nil:
			return d.SetSupplyType(billing.SupplyTypeFor(h.supplierGSTIN, customer.GSTIN))
		}
		return nil
	})
	if err != nil {
		writeDraftError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, id)
}

// Finalize stores the draft as a pending invoice and closes the draft.
func (h *DraftHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	inv, err := h.drafts.Finalize(r.Context(), id, h.finalizer, h.store.CreateInvoice)
	if err != nil {
		writeDraftError(w, r, err)
		return
	}
	zap.L().Info("invoice finalized",
		zap.Int64("invoice_id", inv.ID),
		zap.String("number", inv.InvoiceNumber),
		zap.String("total", inv.Total.String()))
	httpx.JSON(w, http.StatusCreated, inv)
}

func (h *DraftHandler) respond(w http.ResponseWriter, r *http.Request, status int, id int64) {
	var snap billing.Snapshot
	err := h.drafts.With(id, func(d *billing.Draft) error {
		snap = d.Snapshot()
		return nil
	})
	if err != nil {
		writeDraftError(w, r, err)
		return
	}
	httpx.JSON(w, status, draftResponse{ID: id, Snapshot: snap})
}

func writeDraftError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *billing.ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.JSONError(w, http.StatusUnprocessableEntity, "validation_failed", verr.Violations)
	case errors.Is(err, billing.ErrDraftNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	case errors.Is(err, billing.ErrNotReady):
		httpx.JSONError(w, http.StatusConflict, "not_ready", err.Error())
	case errors.Is(err, billing.ErrFinalized):
		httpx.JSONError(w, http.StatusConflict, "finalized", nil)
	case errors.Is(err, billing.ErrUnknownField):
		httpx.JSONError(w, http.StatusBadRequest, "unknown_field", err.Error())
	case errors.Is(err, billing.ErrInvalidNumber):
		httpx.JSONError(w, http.StatusBadRequest, "invalid_number", err.Error())
	case errors.Is(err, store.ErrNotFound):
		httpx.JSONError(w, http.StatusUnprocessableEntity, "validation_failed", map[string]string{"customer_id": "not_found"})
	default:
		writeStoreError(w, r, err)
	}
}

// parseDate accepts a calendar date or an RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
