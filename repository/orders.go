package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/codedevify/Urbansolz/models"
)

// OrderStore is the single source of truth for order lifecycle state.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindBySessionID(ctx context.Context, sessionID string) (*models.Order, error)
	FindByProviderOrderID(ctx context.Context, providerOrderID string) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)

	// TransitionStatus applies the status only if the order is currently
	// Pending. It reports whether the transition actually took effect, which
	// is what makes duplicate settlement signals harmless.
	TransitionStatus(ctx context.Context, id primitive.ObjectID, to models.OrderStatus) (bool, error)
}

type mongoOrders struct {
	col *mongo.Collection
}

func NewOrders(db *mongo.Database) OrderStore {
	return &mongoOrders{col: db.Collection("orders")}
}

func (m *mongoOrders) Create(ctx context.Context, order *models.Order) (primitive.ObjectID, error) {
	if (order.StripeSessionID == "") == (order.PayPalOrderID == "") {
		return primitive.NilObjectID, fmt.Errorf("order must carry exactly one payment reference")
	}
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	res, err := m.col.InsertOne(ctx, order)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: create order: %v", ErrPersistence, err)
	}
	id := res.InsertedID.(primitive.ObjectID)
	order.ID = id
	return id, nil
}

func (m *mongoOrders) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	return m.findOne(ctx, bson.M{"_id": id})
}

func (m *mongoOrders) FindBySessionID(ctx context.Context, sessionID string) (*models.Order, error) {
	return m.findOne(ctx, bson.M{"stripe_session_id": sessionID})
}

func (m *mongoOrders) FindByProviderOrderID(ctx context.Context, providerOrderID string) (*models.Order, error) {
	return m.findOne(ctx, bson.M{"paypal_order_id": providerOrderID})
}

func (m *mongoOrders) findOne(ctx context.Context, filter bson.M) (*models.Order, error) {
	var order models.Order
	err := m.col.FindOne(ctx, filter).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

func (m *mongoOrders) List(ctx context.Context) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := m.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cur.Close(ctx)

	var orders []models.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

func (m *mongoOrders) TransitionStatus(ctx context.Context, id primitive.ObjectID, to models.OrderStatus) (bool, error) {
	res, err := m.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.OrderStatusPending},
		bson.M{"$set": bson.M{"status": to}},
	)
	if err != nil {
		return false, fmt.Errorf("%w: transition order status: %v", ErrPersistence, err)
	}
	if res.MatchedCount == 1 {
		return true, nil
	}

	// no Pending match: distinguish "already terminal" from "no such order"
	err = m.col.FindOne(ctx, bson.M{"_id": id}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, ErrOrderNotFound
	}
	if err != nil {
		return false, fmt.Errorf("failed to get order: %w", err)
	}
	return false, nil
}
