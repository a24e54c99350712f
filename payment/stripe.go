package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultStripeBaseURL = "https://api.stripe.com"
	currencyCode         = "gbp"

	// How far a webhook timestamp may drift before the signature is rejected.
	webhookTolerance = 5 * time.Minute
)

var ErrInvalidSignature = errors.New("webhook signature verification failed")

// StripeCredentials are resolved per call so that an admin key update takes
// effect without a restart.
type StripeCredentials struct {
	SecretKey     string
	WebhookSecret string
}

type Stripe struct {
	baseURL    string
	creds      func(ctx context.Context) (StripeCredentials, error)
	httpClient *http.Client
	now        func() time.Time
}

func NewStripe(creds func(ctx context.Context) (StripeCredentials, error)) *Stripe {
	return &Stripe{
		baseURL:    defaultStripeBaseURL,
		creds:      creds,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
	}
}

func (s *Stripe) secretKey(ctx context.Context) (string, error) {
	creds, err := s.creds(ctx)
	if err != nil {
		return "", err
	}
	if creds.SecretKey == "" {
		return "", ErrNotConfigured
	}
	return creds.SecretKey, nil
}

// CreateSession opens a hosted checkout session for the given lines.
func (s *Stripe) CreateSession(ctx context.Context, lines []LineItem, successURL, cancelURL string) (*Session, error) {
	key, err := s.secretKey(ctx)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", successURL)
	form.Set("cancel_url", cancelURL)
	form.Set("payment_method_types[0]", "card")
	for i, line := range lines {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[price_data][currency]", currencyCode)
		form.Set(prefix+"[price_data][product_data][name]", line.Name)
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(ToMinorUnits(line.UnitPrice), 10))
		form.Set(prefix+"[quantity]", strconv.Itoa(line.Quantity))
	}

	var out struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	if err := s.do(ctx, key, http.MethodPost, "/v1/checkout/sessions", form, &out); err != nil {
		return nil, err
	}
	if out.URL == "" {
		return nil, &ProviderError{Provider: "stripe", StatusCode: http.StatusOK, Message: "empty checkout URL"}
	}
	return &Session{ID: out.ID, URL: out.URL}, nil
}

// RetrieveSession reports whether a session was paid and which payment
// intent settled it. The intent, not the session id, is the refundable handle.
func (s *Stripe) RetrieveSession(ctx context.Context, sessionID string) (*SessionStatus, error) {
	key, err := s.secretKey(ctx)
	if err != nil {
		return nil, err
	}
	var out struct {
		PaymentIntent string `json:"payment_intent"`
		PaymentStatus string `json:"payment_status"`
	}
	if err := s.do(ctx, key, http.MethodGet, "/v1/checkout/sessions/"+url.PathEscape(sessionID), nil, &out); err != nil {
		return nil, err
	}
	return &SessionStatus{PaymentIntent: out.PaymentIntent, Paid: out.PaymentStatus == "paid"}, nil
}

func (s *Stripe) Refund(ctx context.Context, paymentIntent string) error {
	key, err := s.secretKey(ctx)
	if err != nil {
		return err
	}
	form := url.Values{}
	form.Set("payment_intent", paymentIntent)
	return s.do(ctx, key, http.MethodPost, "/v1/refunds", form, nil)
}

// VerifyWebhook checks the signature header against the raw, unparsed body.
// The body must not have been consumed or re-encoded before this point.
func (s *Stripe) VerifyWebhook(payload []byte, signature string) error {
	creds, err := s.creds(context.Background())
	if err != nil {
		return err
	}
	if creds.WebhookSecret == "" {
		return ErrNotConfigured
	}

	var timestamp string
	var candidates []string
	for _, part := range strings.Split(signature, ",") {
		k, v, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch k {
		case "t":
			timestamp = v
		case "v1":
			candidates = append(candidates, v)
		}
	}
	if timestamp == "" || len(candidates) == 0 {
		return ErrInvalidSignature
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return ErrInvalidSignature
	}
	drift := s.now().Sub(time.Unix(ts, 0))
	if drift < -webhookTolerance || drift > webhookTolerance {
		return ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, []byte(creds.WebhookSecret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, candidate := range candidates {
		if hmac.Equal([]byte(expected), []byte(candidate)) {
			return nil
		}
	}
	return ErrInvalidSignature
}

func (s *Stripe) do(ctx context.Context, key, method, path string, form url.Values, out any) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build stripe request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+key)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach stripe: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ProviderError{Provider: "stripe", StatusCode: resp.StatusCode, Message: apiErrorMessage(raw)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse stripe response: %w", err)
	}
	return nil
}

func apiErrorMessage(raw []byte) string {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	return string(raw)
}
