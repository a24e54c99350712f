package checkoutControllers

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/codedevify/Urbansolz/events"
	"github.com/codedevify/Urbansolz/models"
	"github.com/codedevify/Urbansolz/payment"
	"github.com/codedevify/Urbansolz/repository"
)

// mockOrders implements repository.OrderStore in memory with the same
// conditional-transition semantics as the Mongo implementation.
type mockOrders struct {
	mu        sync.Mutex
	orders    map[primitive.ObjectID]*models.Order
	createErr error
}

func newMockOrders() *mockOrders {
	return &mockOrders{orders: make(map[primitive.ObjectID]*models.Order)}
}

func (m *mockOrders) Create(_ context.Context, order *models.Order) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return primitive.NilObjectID, m.createErr
	}
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	clone := *order
	m.orders[order.ID] = &clone
	return order.ID, nil
}

func (m *mockOrders) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	clone := *order
	return &clone, nil
}

func (m *mockOrders) FindBySessionID(_ context.Context, sessionID string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, order := range m.orders {
		if order.StripeSessionID == sessionID {
			clone := *order
			return &clone, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (m *mockOrders) FindByProviderOrderID(_ context.Context, providerOrderID string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, order := range m.orders {
		if order.PayPalOrderID == providerOrderID {
			clone := *order
			return &clone, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (m *mockOrders) List(_ context.Context) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Order, 0, len(m.orders))
	for _, order := range m.orders {
		out = append(out, *order)
	}
	return out, nil
}

func (m *mockOrders) TransitionStatus(_ context.Context, id primitive.ObjectID, to models.OrderStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return false, repository.ErrOrderNotFound
	}
	if order.Status != models.OrderStatusPending {
		return false, nil
	}
	order.Status = to
	return true, nil
}

// mockHosted implements payment.HostedCheckout.
type mockHosted struct {
	session       *payment.Session
	createErr     error
	sessionStatus *payment.SessionStatus
	retrieveErr   error
	refundErr     error

	createCalls   int
	refundedWith  []string
	verifyErr     error
	verifiedCalls int
}

func (m *mockHosted) CreateSession(context.Context, []payment.LineItem, string, string) (*payment.Session, error) {
	m.createCalls++
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.session, nil
}

func (m *mockHosted) RetrieveSession(context.Context, string) (*payment.SessionStatus, error) {
	if m.retrieveErr != nil {
		return nil, m.retrieveErr
	}
	return m.sessionStatus, nil
}

func (m *mockHosted) Refund(_ context.Context, paymentIntent string) error {
	if m.refundErr != nil {
		return m.refundErr
	}
	m.refundedWith = append(m.refundedWith, paymentIntent)
	return nil
}

func (m *mockHosted) VerifyWebhook([]byte, string) error {
	m.verifiedCalls++
	return m.verifyErr
}

// mockCapture implements payment.OrderCapture.
type mockCapture struct {
	orderID    string
	createErr  error
	capture    *payment.Capture
	captureErr error
	captureID  string

	refundedWith []string
}

func (m *mockCapture) CreateOrder(context.Context, float64, string, []payment.LineItem) (string, error) {
	if m.createErr != nil {
		return "", m.createErr
	}
	return m.orderID, nil
}

func (m *mockCapture) CaptureOrder(context.Context, string) (*payment.Capture, error) {
	if m.captureErr != nil {
		return nil, m.captureErr
	}
	return m.capture, nil
}

func (m *mockCapture) RetrieveCaptureID(context.Context, string) (string, error) {
	return m.captureID, nil
}

func (m *mockCapture) Refund(_ context.Context, captureID string) error {
	m.refundedWith = append(m.refundedWith, captureID)
	return nil
}

// recordingSender captures outbound mail.
type sentMail struct {
	To      string
	Subject string
}

type recordingSender struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (r *recordingSender) Send(_ context.Context, to, subject, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, sentMail{To: to, Subject: subject})
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingPublisher) Publish(ev events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

type stubEmailSettings struct{}

func (stubEmailSettings) EmailConfig(context.Context) (*models.EmailConfig, error) {
	return &models.EmailConfig{
		EmailUser:   "shop@example.com",
		EmailPass:   "pass",
		SellerEmail: "owner@example.com",
	}, nil
}
