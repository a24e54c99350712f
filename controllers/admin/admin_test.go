package adminControllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/codedevify/Urbansolz/models"
	"github.com/codedevify/Urbansolz/repository"
)

type stubAdmins struct {
	username string
	password string
}

func (s *stubAdmins) FindByCredentials(_ context.Context, username, password string) (*models.Admin, error) {
	if username != s.username || password != s.password {
		return nil, repository.ErrNotFound
	}
	return &models.Admin{ID: primitive.NewObjectID(), Username: username}, nil
}

func (s *stubAdmins) Seed(context.Context, models.Admin) error { return nil }

type stubOrders struct {
	mu     sync.Mutex
	orders map[primitive.ObjectID]*models.Order
}

func newStubOrders() *stubOrders {
	return &stubOrders{orders: map[primitive.ObjectID]*models.Order{}}
}

func (s *stubOrders) Create(_ context.Context, order *models.Order) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order.ID = primitive.NewObjectID()
	s.orders[order.ID] = order
	return order.ID, nil
}

func (s *stubOrders) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	copied := *o
	return &copied, nil
}

func (s *stubOrders) FindBySessionID(context.Context, string) (*models.Order, error) {
	return nil, repository.ErrOrderNotFound
}

func (s *stubOrders) FindByProviderOrderID(context.Context, string) (*models.Order, error) {
	return nil, repository.ErrOrderNotFound
}

func (s *stubOrders) List(context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (s *stubOrders) TransitionStatus(_ context.Context, id primitive.ObjectID, to models.OrderStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return false, repository.ErrOrderNotFound
	}
	if o.Status != models.OrderStatusPending {
		return false, nil
	}
	o.Status = to
	return true, nil
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func putJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	r := gin.New()
	r.POST("/admin/login", Login(&stubAdmins{username: "admin", password: "letmein"}))

	w := postJSON(r, "/admin/login", `{"username":"admin","password":"letmein"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "token")

	w = postJSON(r, "/admin/login", `{"username":"admin","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(r, "/admin/login", `{"username":"admin"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateOrderStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	orders := newStubOrders()
	id, err := orders.Create(context.Background(), &models.Order{Status: models.OrderStatusPending})
	require.NoError(t, err)

	r := gin.New()
	r.PUT("/admin/orders/:id/status", UpdateOrderStatus(orders))

	w := putJSON(r, "/admin/orders/"+id.Hex()+"/status", `{"status":"Confirmed"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	o, _ := orders.FindByID(context.Background(), id)
	assert.Equal(t, models.OrderStatusConfirmed, o.Status)
}

func TestUpdateOrderStatus_AlreadyProcessed(t *testing.T) {
	gin.SetMode(gin.TestMode)

	orders := newStubOrders()
	id, err := orders.Create(context.Background(), &models.Order{Status: models.OrderStatusConfirmed})
	require.NoError(t, err)

	r := gin.New()
	r.PUT("/admin/orders/:id/status", UpdateOrderStatus(orders))

	w := putJSON(r, "/admin/orders/"+id.Hex()+"/status", `{"status":"Cancelled"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	o, _ := orders.FindByID(context.Background(), id)
	assert.Equal(t, models.OrderStatusConfirmed, o.Status)
}

func TestUpdateOrderStatus_Validation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	orders := newStubOrders()
	r := gin.New()
	r.PUT("/admin/orders/:id/status", UpdateOrderStatus(orders))

	assert.Equal(t, http.StatusNotFound, putJSON(r, "/admin/orders/not-hex/status", `{"status":"Confirmed"}`).Code)
	assert.Equal(t, http.StatusNotFound, putJSON(r, "/admin/orders/"+primitive.NewObjectID().Hex()+"/status", `{"status":"Confirmed"}`).Code)

	id, _ := orders.Create(context.Background(), &models.Order{Status: models.OrderStatusPending})
	assert.Equal(t, http.StatusBadRequest, putJSON(r, "/admin/orders/"+id.Hex()+"/status", `{"status":"Pending"}`).Code)
}
