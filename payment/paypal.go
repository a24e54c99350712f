package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"
)

const defaultPayPalBaseURL = "https://api-m.sandbox.paypal.com"

type PayPal struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewPayPalFromEnv reads PAYPAL_CLIENT_ID, PAYPAL_CLIENT_SECRET and
// PAYPAL_BASE_URL. Missing credentials are reported on first use, before any
// network call.
func NewPayPalFromEnv() *PayPal {
	base := os.Getenv("PAYPAL_BASE_URL")
	if base == "" {
		base = defaultPayPalBaseURL
	}
	return &PayPal{
		baseURL:      base,
		clientID:     os.Getenv("PAYPAL_CLIENT_ID"),
		clientSecret: os.Getenv("PAYPAL_CLIENT_SECRET"),
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *PayPal) token(ctx context.Context) (string, error) {
	if p.clientID == "" || p.clientSecret == "" {
		return "", ErrNotConfigured
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.accessToken != "" && time.Now().Before(p.tokenExpiry) {
		return p.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build paypal token request: %w", err)
	}
	req.SetBasicAuth(p.clientID, p.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach paypal: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", &ProviderError{Provider: "paypal", StatusCode: resp.StatusCode, Message: string(raw)}
	}

	var out struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("failed to parse paypal token response: %w", err)
	}

	p.accessToken = out.AccessToken
	// renew a minute early so in-flight calls never carry a stale token
	p.tokenExpiry = time.Now().Add(time.Duration(out.ExpiresIn)*time.Second - time.Minute)
	return p.accessToken, nil
}

// CreateOrder registers a provider-side order for the cart total and returns
// its id. No local state is touched.
func (p *PayPal) CreateOrder(ctx context.Context, total float64, currency string, lines []LineItem) (string, error) {
	value := FromMinorUnits(ToMinorUnits(total))

	items := make([]map[string]any, 0, len(lines))
	for _, line := range lines {
		items = append(items, map[string]any{
			"name":     line.Name,
			"quantity": fmt.Sprintf("%d", line.Quantity),
			"unit_amount": map[string]string{
				"currency_code": currency,
				"value":         FromMinorUnits(ToMinorUnits(line.UnitPrice)),
			},
		})
	}

	payload := map[string]any{
		"intent": "CAPTURE",
		"purchase_units": []map[string]any{{
			"amount": map[string]any{
				"currency_code": currency,
				"value":         value,
				"breakdown": map[string]any{
					"item_total": map[string]string{
						"currency_code": currency,
						"value":         value,
					},
				},
			},
			"items": items,
		}},
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := p.do(ctx, http.MethodPost, "/v2/checkout/orders", payload, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", &ProviderError{Provider: "paypal", StatusCode: http.StatusOK, Message: "empty order id"}
	}
	return out.ID, nil
}

type paypalOrder struct {
	Status string `json:"status"`
	Payer  struct {
		EmailAddress string `json:"email_address"`
	} `json:"payer"`
	PurchaseUnits []struct {
		Payments struct {
			Captures []struct {
				ID string `json:"id"`
			} `json:"captures"`
		} `json:"payments"`
	} `json:"purchase_units"`
}

func (o *paypalOrder) captureID() string {
	for _, unit := range o.PurchaseUnits {
		for _, capture := range unit.Payments.Captures {
			if capture.ID != "" {
				return capture.ID
			}
		}
	}
	return ""
}

// CaptureOrder executes the capture for a previously created provider order.
func (p *PayPal) CaptureOrder(ctx context.Context, providerOrderID string) (*Capture, error) {
	var out paypalOrder
	path := "/v2/checkout/orders/" + url.PathEscape(providerOrderID) + "/capture"
	if err := p.do(ctx, http.MethodPost, path, map[string]any{}, &out); err != nil {
		return nil, err
	}
	if out.Status != "COMPLETED" {
		return nil, &ProviderError{Provider: "paypal", StatusCode: http.StatusOK, Message: "capture not completed: " + out.Status}
	}
	captureID := out.captureID()
	if captureID == "" {
		return nil, &ProviderError{Provider: "paypal", StatusCode: http.StatusOK, Message: "capture id missing from response"}
	}
	return &Capture{ID: captureID, PayerEmail: out.Payer.EmailAddress}, nil
}

// RetrieveCaptureID re-queries the provider order for its capture id, the
// refundable handle for this rail.
func (p *PayPal) RetrieveCaptureID(ctx context.Context, providerOrderID string) (string, error) {
	var out paypalOrder
	if err := p.do(ctx, http.MethodGet, "/v2/checkout/orders/"+url.PathEscape(providerOrderID), nil, &out); err != nil {
		return "", err
	}
	captureID := out.captureID()
	if captureID == "" {
		return "", &ProviderError{Provider: "paypal", StatusCode: http.StatusOK, Message: "order has no capture"}
	}
	return captureID, nil
}

func (p *PayPal) Refund(ctx context.Context, captureID string) error {
	path := "/v2/payments/captures/" + url.PathEscape(captureID) + "/refund"
	return p.do(ctx, http.MethodPost, path, map[string]any{}, nil)
}

func (p *PayPal) do(ctx context.Context, method, path string, payload any, out any) error {
	token, err := p.token(ctx)
	if err != nil {
		return err
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode paypal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build paypal request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach paypal: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ProviderError{Provider: "paypal", StatusCode: resp.StatusCode, Message: string(raw)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse paypal response: %w", err)
	}
	return nil
}
