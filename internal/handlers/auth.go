package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/diewo77/gst-invoices/auth"
	"github.com/diewo77/gst-invoices/httpx"
	"github.com/diewo77/gst-invoices/internal/models"
	"github.com/diewo77/gst-invoices/internal/store"
	"github.com/diewo77/gst-invoices/validation"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 8

type AuthHandler struct {
	store    *store.Store
	sessions *auth.Manager
}

func NewAuthHandler(s *store.Store, sessions *auth.Manager) *AuthHandler {
	return &AuthHandler{store: s, sessions: sessions}
}

type registerRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	BusinessName string `json:"business_name"`
	BusinessType string `json:"business_type"`
	GSTIN        string `json:"gstin"`
	Address      string `json:"address"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and logs it in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := make(validation.Violations)
	validation.Required("name", req.Name, v)
	validation.Required("email", req.Email, v)
	validation.Email("email", req.Email, v)
	if len(req.Password) < minPasswordLen {
		v["password"] = "too_short"
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "validation_failed", v)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	user := models.User{
		Email:        req.Email,
		Password:     string(hash),
		Name:         strings.TrimSpace(req.Name),
		BusinessName: req.BusinessName,
		BusinessType: req.BusinessType,
		GSTIN:        strings.ToUpper(strings.TrimSpace(req.GSTIN)),
		Address:      req.Address,
	}
	if err := h.store.CreateUser(r.Context(), &user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			httpx.JSONError(w, http.StatusConflict, "email_taken", nil)
			return
		}
		writeStoreError(w, r, err)
		return
	}
	if !h.startSession(w, r, user) {
		return
	}
	zap.L().Info("user registered", zap.Int64("user_id", user.ID))
	httpx.JSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	user, err := h.store.UserByEmail(r.Context(), req.Email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		writeStoreError(w, r, err)
		return
	}
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}
	if !h.startSession(w, r, user) {
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Save(w, r, auth.Logout()); err != nil {
		writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the logged-in user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess := auth.FromContext(r.Context())
	if !sess.Authenticated() {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	user, err := h.store.UserByID(r.Context(), sess.UserID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, user models.User) bool {
	if err := h.sessions.Save(w, r, auth.Login(user.ID, user.Email, user.Name)); err != nil {
		writeStoreError(w, r, err)
		return false
	}
	return true
}
