// Package webhook receives payment-gateway callbacks, re-verifies the
// order with the gateway and notifies the payer and the admin.
package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/itzfew/eduhub-bot/internal/service"
)

// OrderVerifier re-checks an order's status with the gateway; webhook
// bodies alone are not trusted.
type OrderVerifier interface {
	GetOrderStatus(ctx context.Context, orderID string) (string, error)
}

type Handler struct {
	verifier    OrderVerifier
	messenger   service.Messenger
	logger      *zap.Logger
	adminChatID int64
}

func NewHandler(verifier OrderVerifier, messenger service.Messenger, logger *zap.Logger, adminChatID int64) *Handler {
	return &Handler{
		verifier:    verifier,
		messenger:   messenger,
		logger:      logger,
		adminChatID: adminChatID,
	}
}

type payload struct {
	Data struct {
		Order struct {
			OrderID         string  `json:"order_id"`
			OrderAmount     float64 `json:"order_amount"`
			OrderNote       string  `json:"order_note"`
			CustomerDetails struct {
				CustomerID string `json:"customer_id"`
			} `json:"customer_details"`
		} `json:"order"`
	} `json:"data"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, false, "Method Not Allowed")
		return
	}

	var body payload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Data.Order.OrderID == "" {
		writeJSON(w, http.StatusBadRequest, false, "Invalid webhook data")
		return
	}
	order := body.Data.Order

	status, err := h.verifier.GetOrderStatus(r.Context(), order.OrderID)
	if err != nil {
		h.logger.Error("failed to verify order",
			zap.String("order_id", order.OrderID),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, false, "Failed to process webhook")
		return
	}

	if status != "PAID" {
		writeJSON(w, http.StatusBadRequest, false, "Payment not completed")
		return
	}

	userID, err := strconv.ParseInt(strings.TrimPrefix(order.CustomerDetails.CustomerID, "cust_"), 10, 64)
	if err != nil {
		h.logger.Error("webhook carries malformed customer id",
			zap.String("customer_id", order.CustomerDetails.CustomerID),
		)
		writeJSON(w, http.StatusBadRequest, false, "Invalid webhook data")
		return
	}

	h.notify(r.Context(), userID, order.OrderID, order.OrderAmount, order.OrderNote)
	writeJSON(w, http.StatusOK, true, "Webhook processed")
}

// notify tells the payer and the admin about the completed payment.
// Notification failures are logged, not returned: the gateway already
// got its acknowledgment and will not meaningfully retry for us.
func (h *Handler) notify(ctx context.Context, userID int64, orderID string, amount float64, groupLink string) {
	userMsg := fmt.Sprintf(
		"Payment Successful!\n\nThank you for your support of ₹%.0f!\n", amount)
	if groupLink != "" {
		userMsg += fmt.Sprintf("You can now join the Telegram group: %s\n", groupLink)
	}
	userMsg += fmt.Sprintf("\nDetails:\n- Order ID: %s\n- Amount: ₹%.0f", orderID, amount)

	if err := h.messenger.SendText(ctx, userID, userMsg); err != nil {
		h.logger.Error("failed to notify payer",
			zap.Int64("user_id", userID),
			zap.String("order_id", orderID),
			zap.Error(err),
		)
	}

	adminMsg := fmt.Sprintf(
		"Payment Success Notification!\n\n- User ID: %d\n- Order ID: %s\n- Amount: ₹%.0f",
		userID, orderID, amount)
	if err := h.messenger.SendText(ctx, h.adminChatID, adminMsg); err != nil {
		h.logger.Error("failed to notify admin",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
	}
}

func writeJSON(w http.ResponseWriter, code int, success bool, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	body := map[string]any{"success": success}
	if success {
		body["message"] = message
	} else {
		body["error"] = message
	}
	_ = json.NewEncoder(w).Encode(body)
}
