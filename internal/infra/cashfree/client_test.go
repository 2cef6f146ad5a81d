package cashfree

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePaymentLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "app-1", r.Header.Get("x-client-id"))
		assert.Equal(t, "secret-1", r.Header.Get("x-client-secret"))
		assert.Equal(t, apiVersion, r.Header.Get("x-api-version"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "order_42", body["order_id"])
		assert.Equal(t, "INR", body["order_currency"])
		assert.Equal(t, 100.0, body["order_amount"])

		_ = json.NewEncoder(w).Encode(map[string]any{"payment_link": "https://payments.cashfree.com/order_42"})
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "app-1", "secret-1", "https://example.com/return", "https://example.com/notify")

	link, err := c.CreatePaymentLink(context.Background(), "order_42", 100, CustomerDetails{
		CustomerID:    "cust_7",
		CustomerEmail: "user@example.com",
		CustomerPhone: "9999999999",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://payments.cashfree.com/order_42", link)
}

func TestCreatePaymentLinkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{"message": "authentication failed"})
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "bad", "bad", "", "")

	_, err := c.CreatePaymentLink(context.Background(), "order_1", 50, CustomerDetails{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication failed")
}

func TestGetOrderStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders/order_42", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"order_status": "PAID"})
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "app-1", "secret-1", "", "")

	status, err := c.GetOrderStatus(context.Background(), "order_42")
	require.NoError(t, err)
	assert.Equal(t, "PAID", status)
}
