package handlers

import (
	"net/http"
	"strconv"

	"github.com/diewo77/gst-invoices/httpx"
	"github.com/diewo77/gst-invoices/internal/export"
	"github.com/diewo77/gst-invoices/internal/format"
	"github.com/diewo77/gst-invoices/internal/models"
	"github.com/diewo77/gst-invoices/internal/store"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	store *store.Store
}

func NewReportHandler(s *store.Store) *ReportHandler {
	return &ReportHandler{store: s}
}

// InvoicesXLSX exports the invoices matching the list filters as a workbook.
func (h *ReportHandler) InvoicesXLSX(w http.ResponseWriter, r *http.Request) {
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
	customers, err := h.store.ListCustomers(r.Context(), "")
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	names := make(map[int64]string, len(customers))
	for _, c := range customers {
		names[c.ID] = c.Name
	}
	body, err := export.InvoicesXLSX(invoices, names)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="invoices.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

type statusCard struct {
	Count     int64  `json:"count"`
	Total     string `json:"total"`
	Formatted string `json:"formatted"`
}

type dashboardResponse struct {
	store.Summary
	RevenueFormatted string                              `json:"revenue_formatted"`
	Cards            map[models.InvoiceStatus]statusCard `json:"cards"`
}

// Dashboard returns invoice counts and amounts per status.
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sum, err := h.store.Summary(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	cards := make(map[models.InvoiceStatus]statusCard, len(sum.ByStatus))
	for status, st := range sum.ByStatus {
		cards[status] = statusCard{Count: st.Count, Total: st.Total.String(), Formatted: format.Currency(st.Total)}
	}
	httpx.JSON(w, http.StatusOK, dashboardResponse{
		Summary:          sum,
		RevenueFormatted: format.Currency(sum.Revenue),
		Cards:            cards,
	})
}
