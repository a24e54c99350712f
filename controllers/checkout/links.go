package checkoutControllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/codedevify/Urbansolz/events"
	"github.com/codedevify/Urbansolz/models"
	"github.com/codedevify/Urbansolz/repository"
)

// The confirm/cancel links are keyed by order id alone: anyone who can guess
// an id can drive someone else's order to a terminal state. Known weakness of
// this design; a possession token would be the hardening step.

func orderIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "Order not found")
		return primitive.NilObjectID, false
	}
	return id, true
}

// ConfirmOrder handles the buyer's confirm link. The transition is
// conditional on Pending, so revisiting the link changes nothing and sends
// nothing.
func (ctl *Controller) ConfirmOrder(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := orderIDParam(c)
	if !ok {
		return
	}

	applied, err := ctl.Orders.TransitionStatus(ctx, id, models.OrderStatusConfirmed)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			c.String(http.StatusNotFound, "Order not found")
			return
		}
		c.String(http.StatusInternalServerError, "Error")
		return
	}
	if !applied {
		c.Data(http.StatusOK, "text/html; charset=utf-8",
			[]byte("<h1>Order Already Processed</h1><p>This order is no longer pending.</p>"))
		return
	}

	ctl.notifySeller(ctx, fmt.Sprintf("Order Confirmed #%s", id.Hex()), "<p>Customer confirmed the order.</p>")
	ctl.publishTransition(ctx, id, events.TypeOrderConfirmed, models.OrderStatusConfirmed)

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte("<h1>Order Confirmed!</h1><p>Thank you!</p>"))
}

// CancelOrder handles the buyer's cancel link. Refund and seller notification
// fire only when the transition actually applied.
func (ctl *Controller) CancelOrder(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := orderIDParam(c)
	if !ok {
		return
	}

	applied, err := ctl.Orders.TransitionStatus(ctx, id, models.OrderStatusCancelled)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			c.String(http.StatusNotFound, "Order not found")
			return
		}
		c.String(http.StatusInternalServerError, "Error")
		return
	}
	if !applied {
		c.Data(http.StatusOK, "text/html; charset=utf-8",
			[]byte("<h1>Order Already Processed</h1><p>This order is no longer pending.</p>"))
		return
	}

	order, err := ctl.Orders.FindByID(ctx, id)
	if err != nil {
		log.Printf("warning: cancelled order %s could not be reloaded for refund: %v", id.Hex(), err)
	} else {
		ctl.refund(ctx, order)
	}

	ctl.notifySeller(ctx, fmt.Sprintf("Order Cancelled #%s", id.Hex()), "<p>Customer cancelled. Refund processed.</p>")
	ctl.publishTransition(ctx, id, events.TypeOrderCancelled, models.OrderStatusCancelled)

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte("<h1>Order Cancelled</h1><p>Refunded.</p>"))
}

// refund resolves the refundable handle for whichever rail the order used and
// issues the refund. Failures are logged, never surfaced: the cancellation
// stands even when the money movement has to be retried manually.
func (ctl *Controller) refund(ctx context.Context, order *models.Order) {
	switch {
	case order.StripeSessionID != "":
		// the session id is not refundable; resolve the payment intent first
		status, err := ctl.Stripe.RetrieveSession(ctx, order.StripeSessionID)
		if err != nil {
			log.Printf("warning: refund failed for order %s: %v", order.ID.Hex(), err)
			return
		}
		if status.PaymentIntent == "" {
			log.Printf("warning: order %s has no payment to refund", order.ID.Hex())
			return
		}
		if err := ctl.Stripe.Refund(ctx, status.PaymentIntent); err != nil {
			log.Printf("warning: refund failed for order %s: %v", order.ID.Hex(), err)
		}
	case order.PayPalOrderID != "":
		captureID, err := ctl.PayPal.RetrieveCaptureID(ctx, order.PayPalOrderID)
		if err != nil {
			log.Printf("warning: refund failed for order %s: %v", order.ID.Hex(), err)
			return
		}
		if err := ctl.PayPal.Refund(ctx, captureID); err != nil {
			log.Printf("warning: refund failed for order %s: %v", order.ID.Hex(), err)
		}
	default:
		log.Printf("warning: order %s carries no payment reference", order.ID.Hex())
	}
}

func (ctl *Controller) publishTransition(ctx context.Context, id primitive.ObjectID, eventType string, status models.OrderStatus) {
	ev := events.Event{Type: eventType, OrderID: id.Hex(), Status: status}
	if order, err := ctl.Orders.FindByID(ctx, id); err == nil {
		ev.Total = order.Total
	}
	ctl.Events.Publish(ev)
}
