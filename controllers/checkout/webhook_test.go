package checkoutControllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codedevify/Urbansolz/events"
	"github.com/codedevify/Urbansolz/models"
	"github.com/codedevify/Urbansolz/payment"
)

func postWebhook(f *fixture, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Stripe-Signature", "t=1,v1=test")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

const completedEvent = `{"type":"checkout.session.completed","data":{"object":{"id":"cs_test_123"}}}`

func TestWebhook_ConfirmsPendingOrder(t *testing.T) {
	f := newFixture(t)
	id := f.seedOrder(t, models.Order{
		Status:          models.OrderStatusPending,
		StripeSessionID: "cs_test_123",
	})

	w := postWebhook(f, completedEvent)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received":true}`, w.Body.String())

	order, err := f.orders.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, order.Status)
	assert.Empty(t, f.mail.sent, "webhook confirmation sends no email")
}

func TestWebhook_DuplicateDeliveryIsAcknowledgedNoOp(t *testing.T) {
	f := newFixture(t)
	id := f.seedOrder(t, models.Order{
		Status:          models.OrderStatusPending,
		StripeSessionID: "cs_test_123",
	})

	first := postWebhook(f, completedEvent)
	second := postWebhook(f, completedEvent)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code, "replays are acknowledged, not errored")

	order, _ := f.orders.FindByID(context.Background(), id)
	assert.Equal(t, models.OrderStatusConfirmed, order.Status)
	assert.Empty(t, f.mail.sent)

	var confirmed int
	for _, ev := range f.pub.events {
		if ev.Type == events.TypeOrderConfirmed {
			confirmed++
		}
	}
	assert.Equal(t, 1, confirmed, "exactly one effective transition event")
}

func TestWebhook_WebhookBeatsConfirmLink(t *testing.T) {
	f := newFixture(t)
	id := f.seedOrder(t, models.Order{
		Status:          models.OrderStatusPending,
		StripeSessionID: "cs_test_123",
	})

	postWebhook(f, completedEvent)
	w := getPath(f, "/order/cancel/"+id.Hex())

	assert.Equal(t, http.StatusOK, w.Code)
	order, _ := f.orders.FindByID(context.Background(), id)
	assert.Equal(t, models.OrderStatusConfirmed, order.Status)
	assert.Empty(t, f.hosted.refundedWith)
}

func TestWebhook_InvalidSignature(t *testing.T) {
	f := newFixture(t)
	f.hosted.verifyErr = payment.ErrInvalidSignature
	id := f.seedOrder(t, models.Order{
		Status:          models.OrderStatusPending,
		StripeSessionID: "cs_test_123",
	})

	w := postWebhook(f, completedEvent)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	order, _ := f.orders.FindByID(context.Background(), id)
	assert.Equal(t, models.OrderStatusPending, order.Status, "unverified signal changes nothing")
}

func TestWebhook_NotConfigured(t *testing.T) {
	f := newFixture(t)
	f.hosted.verifyErr = payment.ErrNotConfigured

	w := postWebhook(f, completedEvent)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhook_IgnoredEventTypeIsAcknowledged(t *testing.T) {
	f := newFixture(t)

	w := postWebhook(f, `{"type":"invoice.paid","data":{"object":{"id":"in_1"}}}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received":true}`, w.Body.String())
}

func TestWebhook_UnknownSessionIsAcknowledged(t *testing.T) {
	f := newFixture(t)

	w := postWebhook(f, `{"type":"checkout.session.completed","data":{"object":{"id":"cs_unknown"}}}`)
	assert.Equal(t, http.StatusOK, w.Code)
}
