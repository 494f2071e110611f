// Package handlers implements the JSON API under /api/v1.
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/diewo77/gst-invoices/httpx"
	"github.com/diewo77/gst-invoices/internal/store"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// idParam reads a numeric path parameter.
func idParam(r *http.Request, name string) (int64, bool) {
	return positiveID(chi.URLParam(r, name))
}

// positiveID parses a base-10 id. Leading zeros and prefixes like 0x are
// not interpreted.
func positiveID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	return id, err == nil && id > 0 && strconv.FormatInt(id, 10) == s
}

func chiParam(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}

// parseID accepts an id as a JSON string or a bare number.
type parseID int64

func (p *parseID) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*p = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	*p = parseID(n)
	return nil
}

// writeStoreError maps repository errors onto HTTP statuses.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	case errors.Is(err, store.ErrDuplicate):
		httpx.JSONError(w, http.StatusConflict, "already_exists", nil)
	case errors.Is(err, store.ErrInUse):
		httpx.JSONError(w, http.StatusConflict, "in_use", err.Error())
	default:
		zap.L().Error("request failed",
			zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}
