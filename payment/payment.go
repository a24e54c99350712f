package payment

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotConfigured is returned before any network call when a provider's
// credentials are missing.
var ErrNotConfigured = errors.New("payment provider is not configured")

// ProviderError carries a provider rejection back to the caller.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s error (%d): %s", e.Provider, e.StatusCode, e.Message)
}

// LineItem is a buyer-visible order line in major currency units. Conversion
// to minor units happens inside the provider clients, nowhere else.
type LineItem struct {
	Name      string
	UnitPrice float64
	Quantity  int
}

type Session struct {
	ID  string
	URL string
}

type SessionStatus struct {
	PaymentIntent string
	Paid          bool
}

type Capture struct {
	ID         string
	PayerEmail string
}

// HostedCheckout is the card rail: the provider hosts the payment page and
// signals completion through a signed webhook.
type HostedCheckout interface {
	CreateSession(ctx context.Context, lines []LineItem, successURL, cancelURL string) (*Session, error)
	RetrieveSession(ctx context.Context, sessionID string) (*SessionStatus, error)
	Refund(ctx context.Context, paymentIntent string) error
	VerifyWebhook(payload []byte, signature string) error
}

// OrderCapture is the wallet rail: the caller creates a provider-side order
// and captures funds in a second synchronous call.
type OrderCapture interface {
	CreateOrder(ctx context.Context, total float64, currency string, lines []LineItem) (string, error)
	CaptureOrder(ctx context.Context, providerOrderID string) (*Capture, error)
	RetrieveCaptureID(ctx context.Context, providerOrderID string) (string, error)
	Refund(ctx context.Context, captureID string) error
}
