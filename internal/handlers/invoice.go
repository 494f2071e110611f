package handlers

import (
	"net/http"
	"strconv"

	"github.com/diewo77/gst-invoices/httpx"
	"github.com/diewo77/gst-invoices/internal/export"
	"github.com/diewo77/gst-invoices/internal/models"
	"github.com/diewo77/gst-invoices/internal/store"
)

type InvoiceHandler struct {
	store  *store.Store
	seller export.Seller
}

func NewInvoiceHandler(s *store.Store, seller export.Seller) *InvoiceHandler {
	return &InvoiceHandler{store: s, seller: seller}
}

// filterFromQuery reads ?status=, ?customer_id= and ?q=.
func filterFromQuery(r *http.Request) (store.InvoiceFilter, bool) {
	q := r.URL.Query()
	f := store.InvoiceFilter{
		Status: models.InvoiceStatus(q.Get("status")),
		Search: q.Get("q"),
	}
	if f.Status != "" && !f.Status.Valid() {
		return f, false
	}
	if raw := q.Get("customer_id"); raw != "" {
		id, ok := positiveID(raw)
		if !ok {
			return f, false
		}
		f.CustomerID = id
	}
	return f, true
}

func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	f, ok := filterFromQuery(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_filter", nil)
		return
	}
	invoices, err := h.store.ListInvoices(r.Context(), f)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	if invoices == nil {
		invoices = []models.Invoice{}
	}
	httpx.JSON(w, http.StatusOK, invoices)
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	inv, err := h.store.GetInvoice(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

// PDF streams the invoice as an attachment.
func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	inv, err := h.store.GetInvoice(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	customer, err := h.store.GetCustomer(r.Context(), inv.CustomerID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	body, err := export.InvoicePDF(inv, customer, h.seller)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+inv.InvoiceNumber+`.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
