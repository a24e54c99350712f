package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"   // payment initiated, awaiting a settlement signal
	OrderStatusConfirmed OrderStatus = "Confirmed" // buyer or provider confirmed the payment
	OrderStatusCancelled OrderStatus = "Cancelled" // buyer cancelled, refund attempted
)

// IsTerminal reports whether no further transition may leave the status.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusConfirmed || s == OrderStatusCancelled
}

func (s OrderStatus) String() string { return string(s) }

type OrderItem struct {
	ProductID   primitive.ObjectID `bson:"product_id" json:"product_id"`
	DisplayName string             `bson:"display_name" json:"display_name"`
	UnitPrice   float64            `bson:"unit_price" json:"unit_price"`
	Quantity    int                `bson:"quantity" json:"quantity"`
}

// Order is the durable record of a checkout. Exactly one of StripeSessionID
// and PayPalOrderID is set, depending on which payment rail produced it.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Items           []OrderItem        `bson:"items" json:"items"`
	Total           float64            `bson:"total" json:"total"`
	Email           string             `bson:"email" json:"email"`
	Status          OrderStatus        `bson:"status" json:"status"`
	StripeSessionID string             `bson:"stripe_session_id,omitempty" json:"stripe_session_id,omitempty"`
	PayPalOrderID   string             `bson:"paypal_order_id,omitempty" json:"paypal_order_id,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
}
