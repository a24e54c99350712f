package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPayPal(srvURL string) *PayPal {
	return &PayPal{
		baseURL:      srvURL,
		clientID:     "client",
		clientSecret: "secret",
		httpClient:   &http.Client{Timeout: 5 * time.Second},
	}
}

func paypalHandler(t *testing.T, tokenCalls *int, handle func(w http.ResponseWriter, r *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/oauth2/token" {
			*tokenCalls++
			user, pass, ok := r.BasicAuth()
			require.True(t, ok)
			require.Equal(t, "client", user)
			require.Equal(t, "secret", pass)
			fmt.Fprint(w, `{"access_token":"tok_1","expires_in":3600}`)
			return
		}
		require.Equal(t, "Bearer tok_1", r.Header.Get("Authorization"))
		handle(w, r)
	}
}

func TestPayPalCreateOrder(t *testing.T) {
	var tokenCalls int
	var gotBody map[string]any
	srv := httptest.NewServer(paypalHandler(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/checkout/orders", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, `{"id":"PP-ORDER-1","status":"CREATED"}`)
	}))
	defer srv.Close()

	client := newTestPayPal(srv.URL)
	id, err := client.CreateOrder(context.Background(), 50.00, "GBP", []LineItem{
		{Name: "Runner (Size 42)", UnitPrice: 25.00, Quantity: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, "PP-ORDER-1", id)
	assert.Equal(t, "CAPTURE", gotBody["intent"])
	units := gotBody["purchase_units"].([]any)
	amount := units[0].(map[string]any)["amount"].(map[string]any)
	assert.Equal(t, "50.00", amount["value"])
	assert.Equal(t, "GBP", amount["currency_code"])
}

func TestPayPalTokenIsCached(t *testing.T) {
	var tokenCalls int
	srv := httptest.NewServer(paypalHandler(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"PP-ORDER-1"}`)
	}))
	defer srv.Close()

	client := newTestPayPal(srv.URL)
	_, err := client.CreateOrder(context.Background(), 10, "GBP", nil)
	require.NoError(t, err)
	_, err = client.CreateOrder(context.Background(), 10, "GBP", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, tokenCalls)
}

func TestPayPalCaptureOrder(t *testing.T) {
	var tokenCalls int
	srv := httptest.NewServer(paypalHandler(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/checkout/orders/PP-ORDER-1/capture", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		fmt.Fprint(w, `{
			"status":"COMPLETED",
			"payer":{"email_address":"buyer@example.com"},
			"purchase_units":[{"payments":{"captures":[{"id":"CAP-9"}]}}]
		}`)
	}))
	defer srv.Close()

	client := newTestPayPal(srv.URL)
	capture, err := client.CaptureOrder(context.Background(), "PP-ORDER-1")
	require.NoError(t, err)
	assert.Equal(t, "CAP-9", capture.ID)
	assert.Equal(t, "buyer@example.com", capture.PayerEmail)
}

func TestPayPalCaptureOrder_NotCompleted(t *testing.T) {
	var tokenCalls int
	srv := httptest.NewServer(paypalHandler(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"DECLINED"}`)
	}))
	defer srv.Close()

	client := newTestPayPal(srv.URL)
	_, err := client.CaptureOrder(context.Background(), "PP-ORDER-1")
	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Contains(t, provErr.Message, "DECLINED")
}

func TestPayPalRetrieveCaptureID(t *testing.T) {
	var tokenCalls int
	srv := httptest.NewServer(paypalHandler(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/checkout/orders/PP-ORDER-1", r.URL.Path)
		require.Equal(t, http.MethodGet, r.Method)
		fmt.Fprint(w, `{"status":"COMPLETED","purchase_units":[{"payments":{"captures":[{"id":"CAP-9"}]}}]}`)
	}))
	defer srv.Close()

	client := newTestPayPal(srv.URL)
	id, err := client.RetrieveCaptureID(context.Background(), "PP-ORDER-1")
	require.NoError(t, err)
	assert.Equal(t, "CAP-9", id)
}

func TestPayPalNotConfigured(t *testing.T) {
	client := &PayPal{baseURL: "http://unused", httpClient: http.DefaultClient}
	_, err := client.CreateOrder(context.Background(), 10, "GBP", nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
