package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{`{"id":"1234567890123456789"}`, 1234567890123456789, false},
		{`{"id":42}`, 42, false},
		{`{"id":""}`, 0, false},
		{`{"id":"x1"}`, 0, true},
	}
	for _, tt := range tests {
		var v struct {
			ID parseID `json:"id"`
		}
		err := json.Unmarshal([]byte(tt.in), &v)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, int64(v.ID), tt.in)
	}
}

func TestFilterFromQuery(t *testing.T) {
	tests := []struct {
		query    string
		customer int64
		ok       bool
	}{
		{"", 0, true},
		{"customer_id=10", 10, true},
		{"customer_id=1234567890123456789", 1234567890123456789, true},
		{"customer_id=010", 0, false},
		{"customer_id=0x10", 0, false},
		{"customer_id=%2B10", 0, false},
		{"customer_id=0", 0, false},
		{"customer_id=-3", 0, false},
		{"status=paid&customer_id=7", 7, true},
		{"status=void", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/v1/invoices?"+tt.query, nil)
			f, ok := filterFromQuery(r)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.customer, f.CustomerID)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2024-04-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC), d)

	d, err = parseDate("2024-04-15T10:30:00+05:30")
	require.NoError(t, err)
	assert.Equal(t, 5, d.UTC().Hour())

	_, err = parseDate("15/04/2024")
	assert.Error(t, err)
}

func TestCustomerRequestValidate(t *testing.T) {
	v := customerRequest{Name: "Acme", Email: "not-an-email", GSTIN: ""}.validate()
	assert.Equal(t, "invalid_email", v["email"])
	assert.Equal(t, "required", v["gstin"])
	assert.NotContains(t, v, "name")

	ok := customerRequest{Name: "Acme", Email: "a@acme.in", GSTIN: "27AABCT3518Q1Z2"}.validate()
	assert.True(t, ok.Empty())
}
