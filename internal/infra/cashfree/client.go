// Package cashfree is a thin client for the Cashfree payment-link API.
package cashfree

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const apiVersion = "2022-09-01"

// Client calls the Cashfree orders API to create payment links and to
// verify order status on webhook callbacks.
type Client struct {
	httpClient *http.Client
	baseURL    string
	appID      string
	secretKey  string
	returnURL  string
	notifyURL  string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func NewClient(baseURL, appID, secretKey, returnURL, notifyURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		appID:      appID,
		secretKey:  secretKey,
		returnURL:  returnURL,
		notifyURL:  notifyURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CustomerDetails identifies the paying user to the gateway.
type CustomerDetails struct {
	CustomerID    string `json:"customer_id"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
}

type orderRequest struct {
	OrderAmount     float64         `json:"order_amount"`
	OrderID         string          `json:"order_id"`
	OrderCurrency   string          `json:"order_currency"`
	CustomerDetails CustomerDetails `json:"customer_details"`
	OrderMeta       struct {
		ReturnURL string `json:"return_url"`
		NotifyURL string `json:"notify_url"`
	} `json:"order_meta"`
}

type orderResponse struct {
	PaymentLink string `json:"payment_link"`
	OrderStatus string `json:"order_status"`
	Message     string `json:"message"`
}

// CreatePaymentLink creates an INR order and returns its payment link.
func (c *Client) CreatePaymentLink(ctx context.Context, orderID string, amount float64, customer CustomerDetails) (string, error) {
	body := orderRequest{
		OrderAmount:     amount,
		OrderID:         orderID,
		OrderCurrency:   "INR",
		CustomerDetails: customer,
	}
	body.OrderMeta.ReturnURL = c.returnURL
	body.OrderMeta.NotifyURL = c.notifyURL

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	c.setHeaders(req)

	var resp orderResponse
	if err := c.do(req, &resp); err != nil {
		return "", err
	}
	if resp.PaymentLink == "" {
		return "", fmt.Errorf("create order: %s", nonEmpty(resp.Message, "no payment link in response"))
	}

	return resp.PaymentLink, nil
}

// GetOrderStatus fetches the current status of an order, e.g. "PAID".
func (c *Client) GetOrderStatus(ctx context.Context, orderID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/orders/"+orderID, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	c.setHeaders(req)

	var resp orderResponse
	if err := c.do(req, &resp); err != nil {
		return "", err
	}
	if resp.OrderStatus == "" {
		return "", fmt.Errorf("get order %s: %s", orderID, nonEmpty(resp.Message, "no status in response"))
	}

	return resp.OrderStatus, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-version", apiVersion)
	req.Header.Set("x-client-id", c.appID)
	req.Header.Set("x-client-secret", c.secretKey)
}

func (c *Client) do(req *http.Request, out *orderResponse) error {
	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("cashfree request: %w", err)
	}
	defer res.Body.Close()

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("cashfree status %d: %s", res.StatusCode, out.Message)
	}

	return nil
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
