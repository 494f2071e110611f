package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"name": "required"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"validation_failed","details":{"name":"required"}}`, w.Body.String())
}

func TestJSONNilPayload(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusOK, nil)
	assert.Equal(t, "null", w.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Acme"}`))
	r.Header.Set("Content-Type", "application/json")
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "Acme", dst.Name)

	bad := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	assert.ErrorIs(t, DecodeJSON(bad, &dst), ErrInvalidJSON)

	form := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`name=x`))
	form.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	assert.ErrorIs(t, DecodeJSON(form, &dst), ErrInvalidJSON)
}
