// Package server wires the HTTP routes.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/diewo77/gst-invoices/auth"
	"github.com/diewo77/gst-invoices/httpx"
	"github.com/diewo77/gst-invoices/internal/billing"
	"github.com/diewo77/gst-invoices/internal/db"
	"github.com/diewo77/gst-invoices/internal/export"
	"github.com/diewo77/gst-invoices/internal/handlers"
	"github.com/diewo77/gst-invoices/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Deps are the collaborators the routes need.
type Deps struct {
	Store     *store.Store
	Sessions  *auth.Manager
	Drafts    *billing.Registry
	Finalizer billing.Finalizer
	Seller    export.Seller
	// RequireAuth gates everything except /auth and /healthz behind a login.
	RequireAuth bool
}

// New constructs the root http.Handler with all routes and middlewares applied.
func New(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx, d.Store.DB()); err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	ah := handlers.NewAuthHandler(d.Store, d.Sessions)
	ch := handlers.NewCustomerHandler(d.Store)
	dh := handlers.NewDraftHandler(d.Drafts, d.Store, d.Finalizer, d.Seller.GSTIN)
	ih := handlers.NewInvoiceHandler(d.Store, d.Seller)
	rh := handlers.NewReportHandler(d.Store)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(d.Sessions.Middleware)

		r.Post("/auth/register", ah.Register)
		r.Post("/auth/login", ah.Login)
		r.Post("/auth/logout", ah.Logout)
		r.Get("/auth/me", ah.Me)

		r.Group(func(r chi.Router) {
			if d.RequireAuth {
				r.Use(auth.RequireAuth)
			}

			r.Get("/customers", ch.List)
			r.Post("/customers", ch.Create)
			r.Get("/customers/{id}", ch.Get)
			r.Put("/customers/{id}", ch.Update)
			r.Delete("/customers/{id}", ch.Delete)

			r.Post("/drafts", dh.Create)
			r.Get("/drafts/{id}", dh.Get)
			r.Put("/drafts/{id}", dh.Update)
			r.Delete("/drafts/{id}", dh.Discard)
			r.Post("/drafts/{id}/items", dh.AddItem)
			r.Patch("/drafts/{id}/items/{itemID}", dh.UpdateItem)
			r.Delete("/drafts/{id}/items/{itemID}", dh.RemoveItem)
			r.Post("/drafts/{id}/finalize", dh.Finalize)

			r.Get("/invoices", ih.List)
			r.Get("/invoices/{id}", ih.Get)
			r.Get("/invoices/{id}/pdf", ih.PDF)

			r.Get("/reports/invoices.xlsx", rh.InvoicesXLSX)
			r.Get("/dashboard", rh.Dashboard)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	})
	return r
}

// requestLogger logs one zap line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
