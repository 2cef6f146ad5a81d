package webhook

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/itzfew/eduhub-bot/internal/domain/entities"
)

type fakeVerifier struct {
	status string
	err    error
}

func (v *fakeVerifier) GetOrderStatus(_ context.Context, _ string) (string, error) {
	return v.status, v.err
}

type fakeMessenger struct {
	sent map[int64][]string
}

func (m *fakeMessenger) SendText(_ context.Context, chatID int64, text string) error {
	if m.sent == nil {
		m.sent = map[int64][]string{}
	}
	m.sent[chatID] = append(m.sent[chatID], text)
	return nil
}

func (m *fakeMessenger) SendHTML(_ context.Context, _ int64, _ string) error  { return nil }
func (m *fakeMessenger) SendPhoto(_ context.Context, _ int64, _ string) error { return nil }
func (m *fakeMessenger) SendQuizPoll(_ context.Context, _ int64, _ entities.Question) error {
	return nil
}

const paidBody = `{"data":{"order":{
	"order_id":"order_42",
	"order_amount":100,
	"order_note":"https://t.me/joinchat/abc",
	"customer_details":{"customer_id":"cust_777"}
}}}`

func TestWebhookPaidOrderNotifiesUserAndAdmin(t *testing.T) {
	messenger := &fakeMessenger{}
	h := NewHandler(&fakeVerifier{status: "PAID"}, messenger, zap.NewNop(), 99)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/webhook", strings.NewReader(paidBody)))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, messenger.sent[777], 1)
	assert.Contains(t, messenger.sent[777][0], "Payment Successful")
	assert.Contains(t, messenger.sent[777][0], "https://t.me/joinchat/abc")
	require.Len(t, messenger.sent[99], 1)
	assert.Contains(t, messenger.sent[99][0], "order_42")
}

func TestWebhookUnpaidOrderRejected(t *testing.T) {
	messenger := &fakeMessenger{}
	h := NewHandler(&fakeVerifier{status: "ACTIVE"}, messenger, zap.NewNop(), 99)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/webhook", strings.NewReader(paidBody)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, messenger.sent)
}

func TestWebhookRejectsBadRequests(t *testing.T) {
	h := NewHandler(&fakeVerifier{status: "PAID"}, &fakeMessenger{}, zap.NewNop(), 99)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/webhook", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/webhook", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
